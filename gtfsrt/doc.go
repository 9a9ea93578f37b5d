// Package gtfsrt handles fetching and holding GTFS-Realtime feed data.
//
// It supports three feed types:
//   - Trip Updates: real-time arrival/departure predictions
//   - Vehicle Positions: current vehicle locations
//   - Service Alerts: disruptions and service changes
//
// Feeds are served as GTFS-RT FeedMessages rendered as JSON and are decoded
// with protojson into the official bindings. Each fetch produces an immutable
// Snapshot filtered to the active route-id set; a Holder swaps the current
// snapshot atomically so readers never observe a partial refresh.
package gtfsrt
