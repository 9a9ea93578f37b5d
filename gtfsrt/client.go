package gtfsrt

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/encoding/protojson"
)

// Feed names as exposed by the realtime endpoint ("<base>/<name>.json").
// They double as cache file names.
const (
	FeedAlerts           = "alerts"
	FeedTripUpdates      = "trip_updates"
	FeedVehiclePositions = "vehicle_positions"
)

// Client fetches GTFS-RT feeds from an endpoint that serves FeedMessages
// rendered as JSON.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the given endpoint base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves and decodes a single feed.
func (c *Client) Fetch(ctx context.Context, feed string) (*gtfsrtpb.FeedMessage, error) {
	url := c.baseURL + feed + ".json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	fm, err := DecodeFeed(body)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", feed, err)
	}
	return fm, nil
}

// FetchSnapshot retrieves all three feeds and assembles a Snapshot filtered
// to the given route ids.
func (c *Client) FetchSnapshot(ctx context.Context, routeIDs []string) (*Snapshot, error) {
	alerts, err := c.Fetch(ctx, FeedAlerts)
	if err != nil {
		return nil, err
	}
	tripUpdates, err := c.Fetch(ctx, FeedTripUpdates)
	if err != nil {
		return nil, err
	}
	vehiclePositions, err := c.Fetch(ctx, FeedVehiclePositions)
	if err != nil {
		return nil, err
	}
	return NewSnapshot(alerts, tripUpdates, vehiclePositions, routeIDs), nil
}

// DecodeFeed parses a FeedMessage rendered as JSON. Unknown fields are
// discarded and required-field checks are relaxed; feeds in the wild omit
// both header fields and proto2 required members.
func DecodeFeed(data []byte) (*gtfsrtpb.FeedMessage, error) {
	opts := protojson.UnmarshalOptions{
		DiscardUnknown: true,
		AllowPartial:   true,
	}
	var fm gtfsrtpb.FeedMessage
	if err := opts.Unmarshal(data, &fm); err != nil {
		return nil, err
	}
	return &fm, nil
}
