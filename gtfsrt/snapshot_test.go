package gtfsrt

import (
	"testing"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
)

func tripUpdateEntity(id, tripID, routeID string) *gtfsrtpb.FeedEntity {
	return &gtfsrtpb.FeedEntity{
		Id: proto.String(id),
		TripUpdate: &gtfsrtpb.TripUpdate{
			Trip: &gtfsrtpb.TripDescriptor{
				TripId:  proto.String(tripID),
				RouteId: proto.String(routeID),
			},
		},
	}
}

func vehicleEntity(id, tripID, routeID string, lat, lon float32) *gtfsrtpb.FeedEntity {
	vp := &gtfsrtpb.VehiclePosition{
		Position: &gtfsrtpb.Position{
			Latitude:  proto.Float32(lat),
			Longitude: proto.Float32(lon),
		},
	}
	if tripID != "" {
		vp.Trip = &gtfsrtpb.TripDescriptor{
			TripId:  proto.String(tripID),
			RouteId: proto.String(routeID),
		}
	}
	return &gtfsrtpb.FeedEntity{Id: proto.String(id), Vehicle: vp}
}

func alertEntity(id string, routeIDs ...string) *gtfsrtpb.FeedEntity {
	a := &gtfsrtpb.Alert{}
	for _, rid := range routeIDs {
		a.InformedEntity = append(a.InformedEntity, &gtfsrtpb.EntitySelector{
			RouteId: proto.String(rid),
		})
	}
	return &gtfsrtpb.FeedEntity{Id: proto.String(id), Alert: a}
}

func feed(entities ...*gtfsrtpb.FeedEntity) *gtfsrtpb.FeedMessage {
	return &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{GtfsRealtimeVersion: proto.String("2.0")},
		Entity: entities,
	}
}

func TestNewSnapshotFiltersByRouteSet(t *testing.T) {
	alerts := feed(
		alertEntity("a1", "R1", "R9"),
		alertEntity("a2", "R9"),
		alertEntity("a3"),
	)
	tripUpdates := feed(
		tripUpdateEntity("t1", "T1", "R1"),
		tripUpdateEntity("t2", "T2", "R9"),
		&gtfsrtpb.FeedEntity{
			Id:         proto.String("t3"),
			TripUpdate: &gtfsrtpb.TripUpdate{Trip: &gtfsrtpb.TripDescriptor{TripId: proto.String("T3")}},
		},
	)
	vehicles := feed(
		vehicleEntity("v1", "T1", "R1", -27.5, 153.01),
		vehicleEntity("v2", "T2", "R9", -27.4, 153.02),
		vehicleEntity("v3", "", "", -27.3, 153.03), // no trip descriptor
	)

	s := NewSnapshot(alerts, tripUpdates, vehicles, []string{"R1", "R2"})

	require.Len(t, s.Alerts, 1)
	require.Len(t, s.TripUpdates, 1)
	assert.Equal(t, "T1", s.TripUpdates[0].GetTrip().GetTripId())
	require.Len(t, s.VehiclePositions, 1)
	assert.Equal(t, "T1", s.VehiclePositions[0].GetTrip().GetTripId())
}

func TestNewSnapshotNilFeeds(t *testing.T) {
	s := NewSnapshot(nil, nil, nil, []string{"R1"})
	assert.Empty(t, s.Alerts)
	assert.Empty(t, s.TripUpdates)
	assert.Empty(t, s.VehiclePositions)
}

func TestTripUpdateForFirstMatchWins(t *testing.T) {
	first := tripUpdateEntity("t1", "T1", "R1")
	first.TripUpdate.StopTimeUpdate = []*gtfsrtpb.TripUpdate_StopTimeUpdate{
		{StopId: proto.String("S1")},
	}
	duplicate := tripUpdateEntity("t2", "T1", "R1")

	s := NewSnapshot(nil, feed(first, duplicate), nil, []string{"R1"})
	require.Len(t, s.TripUpdates, 2)

	got := s.TripUpdateFor("T1")
	require.NotNil(t, got)
	assert.Len(t, got.GetStopTimeUpdate(), 1, "first update in snapshot order should win")
	assert.Nil(t, s.TripUpdateFor("T404"))
}

func TestVehiclePositionFor(t *testing.T) {
	s := NewSnapshot(nil, nil, feed(vehicleEntity("v1", "T1", "R1", -27.49, 153.01)), []string{"R1"})

	vp := s.VehiclePositionFor("T1")
	require.NotNil(t, vp)
	assert.InDelta(t, -27.49, vp.GetPosition().GetLatitude(), 0.0001)
	assert.Nil(t, s.VehiclePositionFor("T404"))
}

func TestDecodeFeedJSON(t *testing.T) {
	body := []byte(`{
		"header": {"gtfsRealtimeVersion": "2.0", "timestamp": "1696206000"},
		"entity": [
			{
				"id": "1",
				"tripUpdate": {
					"trip": {"tripId": "T1", "routeId": "R1"},
					"stopTimeUpdate": [
						{"stopId": "1853", "arrival": {"time": "1696210020"}}
					]
				},
				"somethingUnknown": true
			}
		]
	}`)

	fm, err := DecodeFeed(body)
	require.NoError(t, err)
	require.Len(t, fm.Entity, 1)

	tu := fm.Entity[0].GetTripUpdate()
	require.NotNil(t, tu)
	assert.Equal(t, "T1", tu.GetTrip().GetTripId())
	require.Len(t, tu.GetStopTimeUpdate(), 1)
	assert.Equal(t, int64(1696210020), tu.GetStopTimeUpdate()[0].GetArrival().GetTime())
}

func TestDecodeFeedRejectsGarbage(t *testing.T) {
	_, err := DecodeFeed([]byte("not json"))
	assert.Error(t, err)
}

func TestHolderSwap(t *testing.T) {
	h := NewHolder()
	require.NotNil(t, h.Current(), "holder must never expose nil")
	assert.Empty(t, h.Current().TripUpdates)

	next := NewSnapshot(nil, feed(tripUpdateEntity("t1", "T1", "R1")), nil, []string{"R1"})
	h.Swap(next)
	assert.Same(t, next, h.Current())

	// Nil swaps are ignored so a buggy caller cannot blank the board.
	h.Swap(nil)
	assert.Same(t, next, h.Current())
}
