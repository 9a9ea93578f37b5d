package gtfs

import "strings"

// Stop is one row of stops.txt.
type Stop struct {
	ID   string
	Name string
}

// StopTime is one stop visit within one trip. Arrival and departure times
// are raw GTFS HH:MM:SS strings; either may be empty.
type StopTime struct {
	TripID        string
	StopID        string
	ArrivalTime   string
	DepartureTime string
}

// Trip is one scheduled run of a vehicle along a route.
type Trip struct {
	ID        string
	RouteID   string
	ServiceID string
	Headsign  string
}

// Valid reports whether the trip carries every field the arrival board needs.
// Partial static feeds are expected in practice; invalid trips are skipped,
// not reported.
func (t Trip) Valid() bool {
	return t.ID != "" && t.RouteID != "" && t.ServiceID != "" && t.Headsign != ""
}

// CalendarEntry is one row of calendar.txt. Days is indexed by time.Weekday
// (Sunday = 0).
type CalendarEntry struct {
	ServiceID string
	Days      [7]bool
	StartDate string
	EndDate   string
}

// CalendarDate is one row of calendar_dates.txt (a service exception).
type CalendarDate struct {
	ServiceID     string
	Date          string
	ExceptionType string
}

// Route is one row of routes.txt.
type Route struct {
	ID        string
	ShortName string
	LongName  string
}

// Valid reports whether the route is presentable on the arrival board.
func (r Route) Valid() bool {
	return r.ShortName != "" && r.LongName != ""
}

// ShortForm returns the user-facing route token: the route_id segment before
// the first dash (route_id "412-5926" has short form "412").
func (r Route) ShortForm() string {
	return strings.SplitN(r.ID, "-", 2)[0]
}
