package board

import (
	"fmt"
	"strings"
	"time"

	"github.com/uq-transit/uqlakes-board/gtfsrt"
)

// Sentinels shown when no realtime data matches a scheduled arrival.
const (
	OnTime     = "On Time"
	NoPosition = "n/a"
)

// ShowAllRoutes is the route selector that disables filtering. Matched
// case-insensitively.
const ShowAllRoutes = "show all routes"

// Row is one presentation-ready line of the arrival board.
type Row struct {
	RouteShortName string
	RouteLongName  string
	ServiceID      string
	Headsign       string
	ScheduledTime  string
	ArrivalTime    string
	LivePosition   string
}

// Correlate joins each scheduled arrival to the snapshot's realtime data by
// trip id and renders the result for display, preserving input order.
//
// The live arrival time comes from the first trip update matching the trip
// id, at the stop-time update entry for the target stop, when that entry
// carries an arrival time; otherwise the row reads "On Time". The live
// position comes from the first matching vehicle position, else "n/a".
// Finally the route selector is applied: ShowAllRoutes keeps every row, any
// other token keeps only exact (case-sensitive) short-name matches.
//
// Correlate is pure: identical inputs produce an identical row list.
func Correlate(arrivals []ScheduledArrival, snap *gtfsrt.Snapshot, targetStopID, routeSelector string) []Row {
	showAll := strings.EqualFold(routeSelector, ShowAllRoutes)

	rows := []Row{}
	for _, arrival := range arrivals {
		if !showAll && arrival.RouteShortName != routeSelector {
			continue
		}

		live := OnTime
		if tu := snap.TripUpdateFor(arrival.TripID); tu != nil {
			for _, stu := range tu.GetStopTimeUpdate() {
				if stu.GetStopId() != targetStopID {
					continue
				}
				if stu.GetArrival() != nil && stu.GetArrival().Time != nil {
					at := time.Unix(stu.GetArrival().GetTime(), 0)
					live = clockString(at.Hour(), at.Minute())
				}
				break
			}
		}

		position := NoPosition
		if vp := snap.VehiclePositionFor(arrival.TripID); vp != nil && vp.GetPosition() != nil {
			pos := vp.GetPosition()
			position = fmt.Sprintf("%v, %v", pos.GetLatitude(), pos.GetLongitude())
		}

		rows = append(rows, Row{
			RouteShortName: arrival.RouteShortName,
			RouteLongName:  arrival.RouteLongName,
			ServiceID:      arrival.ServiceID,
			Headsign:       arrival.Headsign,
			ScheduledTime:  clockString(arrival.Scheduled.Hour, arrival.Scheduled.Minute),
			ArrivalTime:    live,
			LivePosition:   position,
		})
	}
	return rows
}

// clockString renders "H:M" with no zero padding, matching the board's
// display convention.
func clockString(hour, minute int) string {
	return fmt.Sprintf("%d:%d", hour, minute)
}
