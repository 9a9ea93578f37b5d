package gtfsrt

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/uq-transit/uqlakes-board/internal/logging"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// CacheWriter persists the filtered feed payloads as indented JSON, one file
// per feed. Writes are fire-and-forget: failures are logged and never
// propagated, since the cache is a convenience, not a dependency.
type CacheWriter struct {
	dir    string
	logger *slog.Logger
}

// NewCacheWriter creates a writer rooted at dir.
func NewCacheWriter(dir string, logger *slog.Logger) *CacheWriter {
	return &CacheWriter{dir: dir, logger: logger}
}

// Write stores each of the snapshot's three collections under
// <dir>/<feed>.json.
func (w *CacheWriter) Write(s *Snapshot) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		logging.LogError(w.logger, "cache dir unavailable", err, slog.String("dir", w.dir))
		return
	}

	msgs := make([]proto.Message, 0, len(s.Alerts))
	for _, a := range s.Alerts {
		msgs = append(msgs, a)
	}
	w.writeFeed(FeedAlerts, msgs)

	msgs = msgs[:0]
	for _, tu := range s.TripUpdates {
		msgs = append(msgs, tu)
	}
	w.writeFeed(FeedTripUpdates, msgs)

	msgs = msgs[:0]
	for _, vp := range s.VehiclePositions {
		msgs = append(msgs, vp)
	}
	w.writeFeed(FeedVehiclePositions, msgs)
}

func (w *CacheWriter) writeFeed(feed string, msgs []proto.Message) {
	mo := protojson.MarshalOptions{AllowPartial: true}
	raw := make([]json.RawMessage, 0, len(msgs))
	for _, m := range msgs {
		b, err := mo.Marshal(m)
		if err != nil {
			logging.LogError(w.logger, "cache marshal failed", err, slog.String("feed", feed))
			return
		}
		raw = append(raw, b)
	}

	data, err := json.MarshalIndent(raw, "", "    ")
	if err != nil {
		logging.LogError(w.logger, "cache marshal failed", err, slog.String("feed", feed))
		return
	}
	path := filepath.Join(w.dir, feed+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		logging.LogError(w.logger, "cache write failed", err, slog.String("path", path))
	}
}
