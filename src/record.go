package scm

/*-------------------------------------------------------------
 *
 * Purpose:	Decoded transmission records in physical units.
 *
 *		This is what callers consume: dequantized sensor
 *		values, absolute coordinates and timestamps, plus
 *		the checksum verdicts and a provenance tag saying
 *		whether the verdicts were recomputed here (raw) or
 *		declared upstream (processed).
 *
 *--------------------------------------------------------------*/

import (
	"encoding/json"
	"time"

	"github.com/golang/geo/s2"
	"github.com/shopspring/decimal"
)

// DecodeType records where a frame's checksum verdicts came from.
type DecodeType string

const (
	DecodeTypeRaw       DecodeType = "raw"
	DecodeTypeProcessed DecodeType = "processed"
)

// PayloadKind discriminates the payload variants.
type PayloadKind int

const (
	PayloadNone PayloadKind = iota
	PayloadTrackingV1
	PayloadTrackingV2
	PayloadStatusV1
)

// Payload is the closed set of decoded payload variants.  A Record
// for an unrecognized packet type carries a nil Payload.
type Payload interface {
	Kind() PayloadKind
}

func (*TrackingV1Payload) Kind() PayloadKind { return PayloadTrackingV1 }
func (*TrackingV2Payload) Kind() PayloadKind { return PayloadTrackingV2 }
func (*StatusV1Payload) Kind() PayloadKind   { return PayloadStatusV1 }

// Record is one fully decoded transmission.
type Record struct {
	ID             uint32
	CRC16          uint32
	ServiceFlag    uint32
	MessageCounter uint32
	PacketType     uint32

	Payload Payload

	BCH32         uint32
	CRC16Verified bool
	BCH32Verified bool
	DecodeType    DecodeType
}

// TrackPoint is a dead-reckoning offset from the payload anchor,
// resolved to an absolute position.  The wire form is defined by
// MarshalJSON; dequantized values serialize at their step precision.
type TrackPoint struct {
	DeltaKm     int
	DeltaM      decimal.Decimal
	TotalDeltaM decimal.Decimal
	Bearing     decimal.Decimal
	Activity    int
	TempAlert   bool
	Position    s2.LatLng
}

// TrackingV1Payload is the original tracking packet: one anchor fix
// and three offset points within the same day.
type TrackingV1Payload struct {
	Flags       int
	Timeslot    int // hour of day
	Longitude   decimal.Decimal
	Latitude    decimal.Decimal
	Anchor      s2.LatLng
	Orientation int
	Activity    int
	Battery     decimal.Decimal
	TempMin     decimal.Decimal
	TempMax     decimal.Decimal
	TempAlert   bool
	Points      []TrackPoint
}

// TrackPointV2 adds the day offset and timeslot that v2 packets
// carry per point, and the absolute timestamp derived from them.
type TrackPointV2 struct {
	TrackPoint
	DayOffset int
	Timeslot  int
	Timestamp time.Time
}

// TrackingV2Payload replaces the flags with a day counter from the
// device epoch, giving every fix an absolute timestamp.
type TrackingV2Payload struct {
	DaysSinceEpoch int
	Timeslot       int
	Timestamp      time.Time
	Longitude      decimal.Decimal
	Latitude       decimal.Decimal
	Anchor         s2.LatLng
	Orientation    int
	Activity       int
	Battery        decimal.Decimal
	TempMin        decimal.Decimal
	TempMax        decimal.Decimal
	TempAlert      bool
	Points         []TrackPointV2
}

// StatusV1Payload reports collar health and configuration.
type StatusV1Payload struct {
	Timestamp             time.Time      `json:"timestamp"` // local to the collar's timezone
	Epoch                 time.Time      `json:"epoch"`
	Mode                  OperatingMode  `json:"mode"`
	Timezone              *time.Location `json:"-"`
	TimezoneOffsetMinutes int            `json:"timezone_offset_m"`
}

// recordJSON fixes the wire names and flattens the payload under a
// key named for its variant, the shape downstream consumers ingest.
type recordJSON struct {
	ID             uint32           `json:"id"`
	CRC16          uint32           `json:"crc16"`
	ServiceFlag    uint32           `json:"SF"`
	MessageCounter uint32           `json:"MC"`
	PacketType     uint32           `json:"packet_type"`
	Payload        *payloadEnvelope `json:"payload,omitempty"`
	BCH32          uint32           `json:"bch32"`
	CRC16Verified  bool             `json:"crc16_verified"`
	BCH32Verified  bool             `json:"bch32_verified"`
	DecodeType     DecodeType       `json:"decode_type"`
}

type payloadEnvelope struct {
	TrackingV1 *TrackingV1Payload `json:"tracking_v1_0,omitempty"`
	TrackingV2 *TrackingV2Payload `json:"tracking_v2_0,omitempty"`
	StatusV1   *StatusV1Payload   `json:"status_v1_0,omitempty"`
}

func (r *Record) MarshalJSON() ([]byte, error) {
	var out = recordJSON{
		ID:             r.ID,
		CRC16:          r.CRC16,
		ServiceFlag:    r.ServiceFlag,
		MessageCounter: r.MessageCounter,
		PacketType:     r.PacketType,
		BCH32:          r.BCH32,
		CRC16Verified:  r.CRC16Verified,
		BCH32Verified:  r.BCH32Verified,
		DecodeType:     r.DecodeType,
	}

	switch p := r.Payload.(type) {
	case *TrackingV1Payload:
		out.Payload = &payloadEnvelope{TrackingV1: p}
	case *TrackingV2Payload:
		out.Payload = &payloadEnvelope{TrackingV2: p}
	case *StatusV1Payload:
		out.Payload = &payloadEnvelope{StatusV1: p}
	}

	return json.Marshal(out)
}

// MarshalJSON fixes the wire form: dequantized values as strings at
// their quantization-step precision, resolved coordinates in degrees
// next to the offset fields (s2.LatLng itself marshals as radians).
func (p TrackingV1Payload) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Flags       int             `json:"flags"`
		Timeslot    int             `json:"timeslot"`
		Longitude   decimal.Decimal `json:"longitude"`
		Latitude    decimal.Decimal `json:"latitude"`
		Orientation int             `json:"orientation"`
		Activity    int             `json:"activity"`
		Battery     string          `json:"battery"`
		TempMin     string          `json:"temp_min"`
		TempMax     string          `json:"temp_max"`
		TempAlert   bool            `json:"temp_alert"`
		Points      []TrackPoint    `json:"points"`
	}{
		Flags:       p.Flags,
		Timeslot:    p.Timeslot,
		Longitude:   p.Longitude,
		Latitude:    p.Latitude,
		Orientation: p.Orientation,
		Activity:    p.Activity,
		Battery:     p.Battery.StringFixed(batteryPlaces()),
		TempMin:     p.TempMin.StringFixed(tempPlacesV1()),
		TempMax:     p.TempMax.StringFixed(tempPlacesV1()),
		TempAlert:   p.TempAlert,
		Points:      p.Points,
	})
}

func (p TrackingV2Payload) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		DaysSinceEpoch int             `json:"days_since_epoch"`
		Timeslot       int             `json:"timeslot"`
		Timestamp      time.Time       `json:"timestamp"`
		Longitude      decimal.Decimal `json:"longitude"`
		Latitude       decimal.Decimal `json:"latitude"`
		Orientation    int             `json:"orientation"`
		Activity       int             `json:"activity"`
		Battery        string          `json:"battery"`
		TempMin        string          `json:"temp_min"`
		TempMax        string          `json:"temp_max"`
		TempAlert      bool            `json:"temp_alert"`
		Points         []TrackPointV2  `json:"points"`
	}{
		DaysSinceEpoch: p.DaysSinceEpoch,
		Timeslot:       p.Timeslot,
		Timestamp:      p.Timestamp,
		Longitude:      p.Longitude,
		Latitude:       p.Latitude,
		Orientation:    p.Orientation,
		Activity:       p.Activity,
		Battery:        p.Battery.StringFixed(batteryPlaces()),
		TempMin:        p.TempMin.StringFixed(tempPlacesV2()),
		TempMax:        p.TempMax.StringFixed(tempPlacesV2()),
		TempAlert:      p.TempAlert,
		Points:         p.Points,
	})
}

func (p TrackPointV2) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		DayOffset   int       `json:"day_offset"`
		Timeslot    int       `json:"timeslot"`
		Timestamp   time.Time `json:"timestamp"`
		DeltaKm     int       `json:"delta_km"`
		DeltaM      string    `json:"delta_m"`
		TotalDeltaM string    `json:"total_delta_m"`
		Bearing     string    `json:"delta_angle"`
		Activity    int       `json:"activity"`
		TempAlert   bool      `json:"temp_alert"`
		Latitude    float64   `json:"latitude"`
		Longitude   float64   `json:"longitude"`
	}{
		DayOffset:   p.DayOffset,
		Timeslot:    p.Timeslot,
		Timestamp:   p.Timestamp,
		DeltaKm:     p.DeltaKm,
		DeltaM:      p.DeltaM.StringFixed(pointDeltaMPlaces()),
		TotalDeltaM: p.TotalDeltaM.StringFixed(pointDeltaMPlaces()),
		Bearing:     p.Bearing.StringFixed(pointBearingPlaces()),
		Activity:    p.Activity,
		TempAlert:   p.TempAlert,
		Latitude:    p.Position.Lat.Degrees(),
		Longitude:   p.Position.Lng.Degrees(),
	})
}

func (p TrackPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		DeltaKm     int     `json:"delta_km"`
		DeltaM      string  `json:"delta_m"`
		TotalDeltaM string  `json:"total_delta_m"`
		Bearing     string  `json:"delta_angle"`
		Activity    int     `json:"activity"`
		TempAlert   bool    `json:"temp_alert"`
		Latitude    float64 `json:"latitude"`
		Longitude   float64 `json:"longitude"`
	}{
		DeltaKm:     p.DeltaKm,
		DeltaM:      p.DeltaM.StringFixed(pointDeltaMPlaces()),
		TotalDeltaM: p.TotalDeltaM.StringFixed(pointDeltaMPlaces()),
		Bearing:     p.Bearing.StringFixed(pointBearingPlaces()),
		Activity:    p.Activity,
		TempAlert:   p.TempAlert,
		Latitude:    p.Position.Lat.Degrees(),
		Longitude:   p.Position.Lng.Degrees(),
	})
}
