package gtfs

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var hasDigit = regexp.MustCompile(`\d`)

// Load reads the six GTFS tables from dir and builds a ScheduleIndex
// restricted to rows reachable from the stops whose name matches
// stopNamePattern. The restriction runs in dependency order: matching stops
// pick the stop_times, stop_times pick the trips, trips pick the calendar,
// calendar_dates and routes. Row order within each table is preserved.
func Load(dir, stopNamePattern string) (*ScheduleIndex, error) {
	namePattern, err := regexp.Compile(stopNamePattern)
	if err != nil {
		return nil, fmt.Errorf("stop name pattern: %w", err)
	}

	idx := &ScheduleIndex{}

	stops, err := readTable(filepath.Join(dir, "stops.txt"))
	if err != nil {
		return nil, err
	}
	target, found := Stop{}, false
	stopIDs := map[string]struct{}{}
	for _, row := range stops.rows {
		s := Stop{ID: row.get("stop_id"), Name: row.get("stop_name")}
		if s.Name == "" || !namePattern.MatchString(s.Name) || !hasDigit.MatchString(s.ID) {
			continue
		}
		if !found {
			target, found = s, true
		}
		idx.Stops = append(idx.Stops, s)
		stopIDs[s.ID] = struct{}{}
	}
	if !found {
		return nil, fmt.Errorf("no stop matches %q", stopNamePattern)
	}
	idx.TargetStop = target

	stopTimes, err := readTable(filepath.Join(dir, "stop_times.txt"))
	if err != nil {
		return nil, err
	}
	tripIDs := map[string]struct{}{}
	for _, row := range stopTimes.rows {
		st := StopTime{
			TripID:        row.get("trip_id"),
			StopID:        row.get("stop_id"),
			ArrivalTime:   row.get("arrival_time"),
			DepartureTime: row.get("departure_time"),
		}
		if _, ok := stopIDs[st.StopID]; !ok {
			continue
		}
		idx.StopTimes = append(idx.StopTimes, st)
		tripIDs[st.TripID] = struct{}{}
	}

	trips, err := readTable(filepath.Join(dir, "trips.txt"))
	if err != nil {
		return nil, err
	}
	serviceIDs := map[string]struct{}{}
	routeIDs := map[string]struct{}{}
	for _, row := range trips.rows {
		t := Trip{
			ID:        row.get("trip_id"),
			RouteID:   row.get("route_id"),
			ServiceID: row.get("service_id"),
			Headsign:  row.get("trip_headsign"),
		}
		if _, ok := tripIDs[t.ID]; !ok {
			continue
		}
		idx.Trips = append(idx.Trips, t)
		serviceIDs[t.ServiceID] = struct{}{}
		routeIDs[t.RouteID] = struct{}{}
	}

	calendarDates, err := readTable(filepath.Join(dir, "calendar_dates.txt"))
	if err != nil {
		return nil, err
	}
	for _, row := range calendarDates.rows {
		cd := CalendarDate{
			ServiceID:     row.get("service_id"),
			Date:          row.get("date"),
			ExceptionType: row.get("exception_type"),
		}
		if _, ok := serviceIDs[cd.ServiceID]; !ok {
			continue
		}
		idx.CalendarDates = append(idx.CalendarDates, cd)
	}

	calendar, err := readTable(filepath.Join(dir, "calendar.txt"))
	if err != nil {
		return nil, err
	}
	for _, row := range calendar.rows {
		ce := CalendarEntry{
			ServiceID: row.get("service_id"),
			StartDate: row.get("start_date"),
			EndDate:   row.get("end_date"),
		}
		for wd, col := range weekdayColumns {
			ce.Days[wd] = row.get(col) == "1"
		}
		if _, ok := serviceIDs[ce.ServiceID]; !ok {
			continue
		}
		idx.Calendar = append(idx.Calendar, ce)
	}

	routes, err := readTable(filepath.Join(dir, "routes.txt"))
	if err != nil {
		return nil, err
	}
	for _, row := range routes.rows {
		r := Route{
			ID:        row.get("route_id"),
			ShortName: row.get("route_short_name"),
			LongName:  row.get("route_long_name"),
		}
		if _, ok := routeIDs[r.ID]; !ok {
			continue
		}
		idx.Routes = append(idx.Routes, r)
	}

	idx.BuildLookups()
	return idx, nil
}

// weekdayColumns maps time.Weekday values (Sunday = 0) to calendar.txt
// column names.
var weekdayColumns = [7]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

type table struct {
	head []string
	rows []record
}

type record struct {
	head   []string
	fields []string
}

func (r record) get(col string) string {
	for i, h := range r.head {
		if strings.EqualFold(h, col) && i < len(r.fields) {
			return r.fields[i]
		}
	}
	return ""
}

func readTable(path string) (table, error) {
	f, err := os.Open(path)
	if err != nil {
		return table{}, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	csvr := csv.NewReader(f)
	csvr.FieldsPerRecord = -1
	rec, err := csvr.ReadAll()
	if err != nil {
		return table{}, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if len(rec) == 0 {
		return table{}, nil
	}
	t := table{head: rec[0]}
	for _, fields := range rec[1:] {
		t.rows = append(t.rows, record{head: t.head, fields: fields})
	}
	return t, nil
}
