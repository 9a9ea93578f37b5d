package gtfs

// ScheduleIndex holds the static schedule tables, restricted at load time to
// rows transitively reachable from the target stop. It is built once at
// startup and read-only thereafter, so concurrent reads need no
// synchronization.
type ScheduleIndex struct {
	// TargetStop is the stop the arrival board reports on: the first
	// stops.txt row whose name matches the configured pattern and whose id
	// contains a digit.
	TargetStop Stop

	Stops         []Stop
	StopTimes     []StopTime
	Trips         []Trip
	Calendar      []CalendarEntry
	CalendarDates []CalendarDate
	Routes        []Route

	tripByID  map[string]Trip
	routeByID map[string]Route
}

// BuildLookups (re)derives the by-id lookup maps from the table slices.
// Load calls it automatically; callers assembling an index directly must
// call it before using TripByID or RouteByID.
func (idx *ScheduleIndex) BuildLookups() {
	idx.tripByID = make(map[string]Trip, len(idx.Trips))
	for _, t := range idx.Trips {
		idx.tripByID[t.ID] = t
	}
	idx.routeByID = make(map[string]Route, len(idx.Routes))
	for _, r := range idx.Routes {
		idx.routeByID[r.ID] = r
	}
}

// TripByID returns the trip with the given id, if loaded.
func (idx *ScheduleIndex) TripByID(id string) (Trip, bool) {
	t, ok := idx.tripByID[id]
	return t, ok
}

// RouteByID returns the route with the given id, if loaded.
func (idx *ScheduleIndex) RouteByID(id string) (Route, bool) {
	r, ok := idx.routeByID[id]
	return r, ok
}

// RouteIDs returns the ids of every route serving the target stop, in table
// order. This is the active route-id set the realtime snapshot filters on.
func (idx *ScheduleIndex) RouteIDs() []string {
	ids := make([]string, 0, len(idx.Routes))
	for _, r := range idx.Routes {
		ids = append(ids, r.ID)
	}
	return ids
}

// RouteShortForms returns the short form of every loaded route, in table
// order. Used to validate the user's route selection.
func (idx *ScheduleIndex) RouteShortForms() []string {
	forms := make([]string, 0, len(idx.Routes))
	for _, r := range idx.Routes {
		forms = append(forms, r.ShortForm())
	}
	return forms
}

// ExceptionsForService returns the calendar_dates rows for one service id.
func (idx *ScheduleIndex) ExceptionsForService(serviceID string) []CalendarDate {
	var out []CalendarDate
	for _, cd := range idx.CalendarDates {
		if cd.ServiceID == serviceID {
			out = append(out, cd)
		}
	}
	return out
}
