package board

import (
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/uq-transit/uqlakes-board/gtfs"
)

// ErrInvalidDate reports a query date that cannot yield a weekday. It is a
// defensive invariant check; any real calendar date has one.
var ErrInvalidDate = errors.New("invalid date")

// TimeOfDay is a wall-clock hour and minute.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) minutes() int {
	return t.Hour*60 + t.Minute
}

// ScheduledArrival is one qualifying stop visit at the target stop.
type ScheduledArrival struct {
	RouteShortName string
	RouteLongName  string
	ServiceID      string
	TripID         string
	Headsign       string
	Scheduled      TimeOfDay
}

// Resolve selects the scheduled arrivals at the index's target stop for the
// given date, starting at `at` and looking ahead `window` minutes.
//
// A stop time qualifies when its trip's service runs on the date's weekday,
// it has a departure time (no departure means the trip terminates there),
// its reference time (arrival time if present, else departure time) falls
// within [at, at+window] by minute-of-day arithmetic with no midnight wrap,
// and it has an arrival time (a departure-only row is a trip origin, not an
// arrival). Stop times whose trip or route fails its validity check are
// skipped silently; incomplete static feeds are a fact of life, not an
// error. "No service today" and "nothing due" both yield an empty, non-nil
// result.
func Resolve(idx *gtfs.ScheduleIndex, date time.Time, at TimeOfDay, window int) ([]ScheduledArrival, error) {
	if date.IsZero() {
		return nil, ErrInvalidDate
	}
	weekday := date.Weekday()
	if weekday < time.Sunday || weekday > time.Saturday {
		return nil, ErrInvalidDate
	}

	activeServices := map[string]struct{}{}
	for _, ce := range idx.Calendar {
		if ce.Days[weekday] {
			activeServices[ce.ServiceID] = struct{}{}
		}
	}

	activeTrips := map[string]struct{}{}
	for _, t := range idx.Trips {
		if _, ok := activeServices[t.ServiceID]; ok {
			activeTrips[t.ID] = struct{}{}
		}
	}

	result := []ScheduledArrival{}
	for _, st := range idx.StopTimes {
		if _, ok := activeTrips[st.TripID]; !ok {
			continue
		}
		if st.StopID != idx.TargetStop.ID {
			continue
		}
		// A row with no departure time terminates here: not boardable and
		// not approaching.
		if st.DepartureTime == "" {
			continue
		}

		ref := st.ArrivalTime
		if ref == "" {
			ref = st.DepartureTime
		}
		refTime, ok := parseClock(ref)
		if !ok {
			continue
		}
		diff := refTime.minutes() - at.minutes()
		if diff < 0 || diff > window {
			continue
		}

		// Departure-only rows survive the window test but are trip origins,
		// not arrivals.
		if st.ArrivalTime == "" {
			continue
		}
		arrival, ok := parseClock(st.ArrivalTime)
		if !ok {
			continue
		}

		trip, ok := idx.TripByID(st.TripID)
		if !ok || !trip.Valid() {
			continue
		}
		route, ok := idx.RouteByID(trip.RouteID)
		if !ok || !route.Valid() {
			continue
		}

		result = append(result, ScheduledArrival{
			RouteShortName: route.ShortName,
			RouteLongName:  route.LongName,
			ServiceID:      trip.ServiceID,
			TripID:         trip.ID,
			Headsign:       trip.Headsign,
			Scheduled:      arrival,
		})
	}

	// Two stable passes, minute then hour. Equivalent to one composite
	// (hour, minute) sort because both passes are stable.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Scheduled.Minute < result[j].Scheduled.Minute
	})
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Scheduled.Hour < result[j].Scheduled.Hour
	})

	return result, nil
}

// parseClock reads the hour and minute out of a GTFS HH:MM:SS string.
func parseClock(s string) (TimeOfDay, bool) {
	if len(s) < 5 || s[2] != ':' {
		return TimeOfDay{}, false
	}
	hour, err := strconv.Atoi(s[0:2])
	if err != nil {
		return TimeOfDay{}, false
	}
	minute, err := strconv.Atoi(s[3:5])
	if err != nil {
		return TimeOfDay{}, false
	}
	return TimeOfDay{Hour: hour, Minute: minute}, true
}
