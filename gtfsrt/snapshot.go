package gtfsrt

import (
	"sync/atomic"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
)

// Snapshot is one refresh's worth of realtime data, filtered to the active
// route-id set. A Snapshot is never mutated after construction; each refresh
// builds a new one and swaps it into the Holder wholesale, so a reader sees
// either the old refresh or the new one, never a mix.
type Snapshot struct {
	Alerts           []*gtfsrtpb.Alert
	TripUpdates      []*gtfsrtpb.TripUpdate
	VehiclePositions []*gtfsrtpb.VehiclePosition
	FetchedAt        time.Time
}

// NewSnapshot extracts the typed payloads from the three feed messages and
// keeps the entries relevant to routeIDs:
//   - alerts that inform at least one active route
//   - trip updates whose trip has an active route id
//   - vehicle positions with a trip descriptor carrying an active route id
//
// Entity order within each feed is preserved.
func NewSnapshot(alerts, tripUpdates, vehiclePositions *gtfsrtpb.FeedMessage, routeIDs []string) *Snapshot {
	active := make(map[string]struct{}, len(routeIDs))
	for _, id := range routeIDs {
		active[id] = struct{}{}
	}

	s := &Snapshot{FetchedAt: time.Now()}
	if alerts != nil {
		for _, e := range alerts.Entity {
			a := e.GetAlert()
			if a == nil {
				continue
			}
			if alertInformsAny(a, active) {
				s.Alerts = append(s.Alerts, a)
			}
		}
	}
	if tripUpdates != nil {
		for _, e := range tripUpdates.Entity {
			tu := e.GetTripUpdate()
			if tu == nil {
				continue
			}
			rid := tu.GetTrip().GetRouteId()
			if rid == "" {
				continue
			}
			if _, ok := active[rid]; ok {
				s.TripUpdates = append(s.TripUpdates, tu)
			}
		}
	}
	if vehiclePositions != nil {
		for _, e := range vehiclePositions.Entity {
			vp := e.GetVehicle()
			if vp == nil || vp.GetTrip() == nil {
				continue
			}
			rid := vp.GetTrip().GetRouteId()
			if rid == "" {
				continue
			}
			if _, ok := active[rid]; ok {
				s.VehiclePositions = append(s.VehiclePositions, vp)
			}
		}
	}
	return s
}

func alertInformsAny(a *gtfsrtpb.Alert, active map[string]struct{}) bool {
	for _, ie := range a.GetInformedEntity() {
		if _, ok := active[ie.GetRouteId()]; ok && ie.GetRouteId() != "" {
			return true
		}
	}
	return false
}

// TripUpdateFor returns the first trip update for the given trip id, or nil.
// Feeds should carry at most one update per trip; if a feed contains
// duplicates, the first in snapshot order wins.
func (s *Snapshot) TripUpdateFor(tripID string) *gtfsrtpb.TripUpdate {
	for _, tu := range s.TripUpdates {
		if tu.GetTrip().GetTripId() == tripID {
			return tu
		}
	}
	return nil
}

// VehiclePositionFor returns the first vehicle position for the given trip
// id, or nil.
func (s *Snapshot) VehiclePositionFor(tripID string) *gtfsrtpb.VehiclePosition {
	for _, vp := range s.VehiclePositions {
		if vp.GetTrip().GetTripId() == tripID {
			return vp
		}
	}
	return nil
}

// Holder publishes the current Snapshot to readers. The refresher replaces
// the whole snapshot through a single atomic pointer swap.
type Holder struct {
	current atomic.Pointer[Snapshot]
}

// NewHolder returns a Holder seeded with an empty snapshot, so readers never
// see nil before the first successful fetch.
func NewHolder() *Holder {
	h := &Holder{}
	h.current.Store(&Snapshot{})
	return h
}

// Current returns the latest snapshot.
func (h *Holder) Current() *Snapshot {
	return h.current.Load()
}

// Swap publishes a new snapshot.
func (h *Holder) Swap(s *Snapshot) {
	if s == nil {
		return
	}
	h.current.Store(s)
}
