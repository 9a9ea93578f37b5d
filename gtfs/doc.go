/*
Package gtfs provides GTFS static data loading and indexing.

The package reads the six schedule tables (stops, stop_times, trips,
calendar, calendar_dates, routes) from a directory of GTFS text files and
builds an in-memory ScheduleIndex restricted to the rows reachable from one
target stop. Parse once at startup and keep the index in memory; it is
immutable after Load and safe for concurrent reads.
*/
package gtfs
