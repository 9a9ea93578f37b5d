// Package board implements the schedule-correlation engine behind the
// arrival board: resolving which scheduled trips serve the target stop in a
// time window, and joining each scheduled arrival to its realtime trip
// update and vehicle position by trip id.
//
// Both Resolve and Correlate are pure functions over immutable inputs and
// are safe to call concurrently.
package board
