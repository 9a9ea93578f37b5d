package gtfsrt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feedServer serves the three feed endpoints, optionally failing every
// request.
func feedServer(t *testing.T, failing *atomic.Bool) *httptest.Server {
	t.Helper()

	feeds := map[string]string{
		"/alerts.json": `{"header":{"gtfsRealtimeVersion":"2.0"},"entity":[
			{"id":"a1","alert":{"informedEntity":[{"routeId":"R1"}]}}]}`,
		"/trip_updates.json": `{"header":{"gtfsRealtimeVersion":"2.0"},"entity":[
			{"id":"t1","tripUpdate":{"trip":{"tripId":"T1","routeId":"R1"},
			"stopTimeUpdate":[{"stopId":"1853","arrival":{"time":"1696210020"}}]}}]}`,
		"/vehicle_positions.json": `{"header":{"gtfsRealtimeVersion":"2.0"},"entity":[
			{"id":"v1","vehicle":{"trip":{"tripId":"T1","routeId":"R1"},
			"position":{"latitude":-27.49,"longitude":153.01}}}]}`,
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing != nil && failing.Load() {
			http.Error(w, "upstream down", http.StatusBadGateway)
			return
		}
		body, ok := feeds[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRefreshOncePublishesSnapshot(t *testing.T) {
	srv := feedServer(t, nil)
	client := NewClient(srv.URL, time.Second)
	holder := NewHolder()
	r := NewRefresher(client, holder, nil, []string{"R1"}, time.Hour, time.Second, nil)

	require.NoError(t, r.RefreshOnce(context.Background()))

	snap := holder.Current()
	require.Len(t, snap.TripUpdates, 1)
	require.Len(t, snap.VehiclePositions, 1)
	require.Len(t, snap.Alerts, 1)
	assert.Equal(t, "T1", snap.TripUpdates[0].GetTrip().GetTripId())
}

func TestFailedRefreshKeepsPreviousSnapshot(t *testing.T) {
	var failing atomic.Bool
	srv := feedServer(t, &failing)
	client := NewClient(srv.URL, time.Second)
	holder := NewHolder()
	r := NewRefresher(client, holder, nil, []string{"R1"}, time.Hour, time.Second, nil)

	require.NoError(t, r.RefreshOnce(context.Background()))
	good := holder.Current()

	failing.Store(true)
	err := r.RefreshOnce(context.Background())
	assert.Error(t, err)
	assert.Same(t, good, holder.Current(), "failed refresh must leave the last good snapshot in place")
}

func TestRefreshSnapshotFiltersRoutes(t *testing.T) {
	srv := feedServer(t, nil)
	client := NewClient(srv.URL, time.Second)
	holder := NewHolder()
	r := NewRefresher(client, holder, nil, []string{"R999"}, time.Hour, time.Second, nil)

	require.NoError(t, r.RefreshOnce(context.Background()))
	snap := holder.Current()
	assert.Empty(t, snap.TripUpdates)
	assert.Empty(t, snap.VehiclePositions)
	assert.Empty(t, snap.Alerts)
}

func TestRefresherShutdownIsIdempotent(t *testing.T) {
	srv := feedServer(t, nil)
	client := NewClient(srv.URL, time.Second)
	r := NewRefresher(client, NewHolder(), nil, []string{"R1"}, 10*time.Millisecond, time.Second, nil)

	r.Start()
	time.Sleep(30 * time.Millisecond)
	r.Shutdown()
	r.Shutdown()
}

func TestCacheWriterWritesAllFeeds(t *testing.T) {
	srv := feedServer(t, nil)
	client := NewClient(srv.URL, time.Second)
	snap, err := client.FetchSnapshot(context.Background(), []string{"R1"})
	require.NoError(t, err)

	dir := t.TempDir()
	NewCacheWriter(dir, nil).Write(snap)

	for _, feed := range []string{FeedAlerts, FeedTripUpdates, FeedVehiclePositions} {
		data, err := os.ReadFile(filepath.Join(dir, feed+".json"))
		require.NoError(t, err, feed)

		var entries []json.RawMessage
		require.NoError(t, json.Unmarshal(data, &entries), feed)
		assert.Len(t, entries, 1, feed)
	}
}

func TestCacheWriterFailureIsNonFatal(t *testing.T) {
	// Point the writer at a path that cannot be a directory.
	dir := t.TempDir()
	blocked := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

	w := NewCacheWriter(filepath.Join(blocked, "nested"), nil)
	w.Write(&Snapshot{}) // must not panic or return an error
}
