package scm

/*-------------------------------------------------------------
 *
 * Purpose:	Full decode of collar transmissions: hex in,
 *		physical-unit record out.
 *
 *		Raw frames come off the satellite uplink complete,
 *		so both checksums are recomputed here.  Processed
 *		frames arrive with the header and trailer stripped
 *		by the ground segment; their checksum verdicts and
 *		header fields are taken on faith from the caller and
 *		the record is tagged accordingly.
 *
 *--------------------------------------------------------------*/

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang/geo/s2"
	"github.com/shopspring/decimal"
)

var gpsMultiplier = decimal.NewFromInt(GPSMultiplier)

// Decoder turns hex frames into Records.  The zero value is not
// usable; call NewDecoder.
type Decoder struct {
	Codec  FieldCodec
	Epochs EpochLookup
}

func NewDecoder() *Decoder {
	return &Decoder{
		Codec:  DefaultCodec,
		Epochs: NewDeviceEpochs(),
	}
}

/*-------------------------------------------------------------
 *
 * Name:	DecodeRaw
 *
 * Purpose:	Decode a complete 31-byte frame.
 *
 * Inputs:	frameHex  - 62 hex digits, case insensitive.
 *		epochYear - Device epoch year for v2 timestamps.
 *
 * Returns:	Record with recomputed checksum verdicts.  Checksum
 *		mismatch is reported in the record, not as an error.
 *
 *--------------------------------------------------------------*/

func (d *Decoder) DecodeRaw(frameHex string, epochYear int) (*Record, error) {
	var frame, err = ParseFrameHex(frameHex)
	if err != nil {
		return nil, err
	}

	var tree *FieldTree
	tree, err = d.Codec.Decode(frame)
	if err != nil {
		return nil, err
	}

	var crc16OK, bch32OK, vErr = ValidateChecksums(tree, d.Codec)
	if vErr != nil {
		return nil, vErr
	}
	if !crc16OK || !bch32OK {
		log.Debug("Transmission checksum mismatch",
			"crc16_verified", crc16OK, "bch32_verified", bch32OK)
	}

	var record = &Record{
		ID:             tree.ID,
		CRC16:          tree.CRC16,
		ServiceFlag:    tree.ServiceFlag,
		MessageCounter: tree.MessageCounter,
		PacketType:     tree.PacketType,
		BCH32:          tree.BCH32,
		CRC16Verified:  crc16OK,
		BCH32Verified:  bch32OK,
		DecodeType:     DecodeTypeRaw,
	}

	switch {
	case tree.TrackingV1 != nil:
		record.Payload = decodeTrackingV1Payload(tree.TrackingV1)
	case tree.TrackingV2 != nil:
		record.Payload, err = decodeTrackingV2Payload(tree.TrackingV2, epochYear)
		if err != nil {
			return nil, err
		}
	case tree.StatusV1 != nil:
		record.Payload, err = decodeStatusV1Payload(tree.StatusV1)
		if err != nil {
			return nil, err
		}
	}

	return record, nil
}

// ProcessedMeta carries the out-of-band fields a ground station
// strips from a processed frame.
type ProcessedMeta struct {
	ID             uint32
	ServiceFlag    uint32
	MessageCounter uint32
	CRC16OK        bool
	BCH32OK        bool
	EpochYear      int // zero means DefaultEpochYear
}

/*-------------------------------------------------------------
 *
 * Name:	DecodeProcessed
 *
 * Purpose:	Decode a processed (abbreviated) frame.
 *
 * Inputs:	frameHex  - Payload region hex as delivered by the
 *			    ground segment, 46 digits.  A full-length
 *			    frame is also accepted.
 *		meta	  - Stripped header fields and the upstream
 *			    checksum verdicts.
 *
 * Returns:	Record tagged DecodeTypeProcessed.  The checksum
 *		verdicts are meta's, never recomputed; the zero
 *		padding makes recomputation meaningless.
 *
 *--------------------------------------------------------------*/

func (d *Decoder) DecodeProcessed(frameHex string, meta ProcessedMeta) (*Record, error) {
	var padded, err = NormalizeFrameHex(frameHex)
	if err != nil {
		return nil, err
	}

	var epochYear = meta.EpochYear
	if epochYear == 0 {
		epochYear = DefaultEpochYear
	}

	var record *Record
	record, err = d.DecodeRaw(padded, epochYear)
	if err != nil {
		return nil, err
	}

	record.ID = meta.ID
	record.ServiceFlag = meta.ServiceFlag
	record.MessageCounter = meta.MessageCounter
	record.CRC16Verified = meta.CRC16OK
	record.BCH32Verified = meta.BCH32OK
	record.DecodeType = DecodeTypeProcessed

	return record, nil
}

func decodeTrackingV1Payload(f *TrackingV1Fields) *TrackingV1Payload {
	var longitude = decimal.NewFromInt(int64(signExtend(f.Longitude, TrackingV1LongitudeSize))).Div(gpsMultiplier)
	var latitude = decimal.NewFromInt(int64(signExtend(f.Latitude, TrackingV1LatitudeSize))).Div(gpsMultiplier)
	var anchor = LatLngFromDegrees(latitude.InexactFloat64(), longitude.InexactFloat64())

	var p = &TrackingV1Payload{
		Flags:       int(f.Flags),
		Timeslot:    int(f.Timeslot) * TimeslotHours,
		Longitude:   longitude,
		Latitude:    latitude,
		Anchor:      anchor,
		Orientation: int(f.Orientation),
		Activity:    int(f.Activity),
		Battery:     dequantize(f.Battery, batteryStepV1(), BatteryRangeLow),
		TempMin:     dequantize(f.TempMin, tempMinStepV1(), TempMinRangeLow),
		TempMax:     dequantize(f.TempMax, tempMaxStepV1(), TempMaxRangeLow),
		TempAlert:   f.TempAlert == 1,
	}

	for _, point := range f.Points {
		p.Points = append(p.Points, resolveTrackPoint(
			anchor,
			int(point.DeltaKm), point.DeltaM, point.DeltaAngle,
			int(point.Activity), point.TempAlert == 1,
			pointDeltaMStepV1(), pointBearingStepV1()))
	}

	return p
}

func decodeTrackingV2Payload(f *TrackingV2Fields, epochYear int) (*TrackingV2Payload, error) {
	if err := checkTimeslot(f.Timeslot); err != nil {
		return nil, err
	}
	for _, point := range f.Points {
		if err := checkTimeslot(point.Timeslot); err != nil {
			return nil, err
		}
	}

	var longitude = decimal.NewFromInt(int64(signExtend(f.Longitude, TrackingV2LongitudeSize))).Div(gpsMultiplier)
	var latitude = decimal.NewFromInt(int64(signExtend(f.Latitude, TrackingV2LatitudeSize))).Div(gpsMultiplier)
	var anchor = LatLngFromDegrees(latitude.InexactFloat64(), longitude.InexactFloat64())

	var timeslot = int(f.Timeslot) * TimeslotHours
	var focus = time.Date(epochYear, 1, 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, int(f.DaysSinceEpoch)).
		Add(time.Duration(timeslot) * time.Hour)

	var p = &TrackingV2Payload{
		DaysSinceEpoch: int(f.DaysSinceEpoch),
		Timeslot:       timeslot,
		Timestamp:      focus,
		Longitude:      longitude,
		Latitude:       latitude,
		Anchor:         anchor,
		Orientation:    int(f.Orientation),
		Activity:       int(f.Activity),
		Battery:        dequantize(f.Battery, batteryStepV2(), BatteryRangeLow),
		TempMin:        dequantize(f.TempMin, tempMinStepV2(), TempMinRangeLow),
		TempMax:        dequantize(f.TempMax, tempMaxStepV2(), TempMaxRangeLow),
		TempAlert:      f.TempAlert == 1,
	}

	for _, point := range f.Points {
		var pointTimeslot = int(point.Timeslot) * TimeslotHours
		var day = focus.AddDate(0, 0, -int(point.DayOffset))
		var pointTime = time.Date(day.Year(), day.Month(), day.Day(),
			pointTimeslot, day.Minute(), day.Second(), 0, time.UTC)

		p.Points = append(p.Points, TrackPointV2{
			TrackPoint: resolveTrackPoint(
				anchor,
				int(point.DeltaKm), point.DeltaM, point.DeltaAngle,
				int(point.Activity), point.TempAlert == 1,
				pointDeltaMStepV2(), pointBearingStepV2()),
			DayOffset: int(point.DayOffset),
			Timeslot:  pointTimeslot,
			Timestamp: pointTime,
		})
	}

	return p, nil
}

// InvalidTimeslotError reports a timeslot count whose hour falls
// past the end of the day.  Slots are two hours wide, so counts
// above 11 name no real time and indicate a corrupt payload.
type InvalidTimeslotError struct {
	Timeslot uint32
}

func (e *InvalidTimeslotError) Error() string {
	return fmt.Sprintf("timeslot %d maps to hour %d, past the end of the day",
		e.Timeslot, int(e.Timeslot)*TimeslotHours)
}

func checkTimeslot(timeslot uint32) error {
	if int(timeslot)*TimeslotHours >= 24 {
		return &InvalidTimeslotError{Timeslot: timeslot}
	}
	return nil
}

func decodeStatusV1Payload(f *StatusV1Fields) (*StatusV1Payload, error) {
	var mode, err = OperatingModeFromCode(f.Mode)
	if err != nil {
		return nil, err
	}

	var offsetMin = int(signExtend(f.TZOffsetMin, StatusV1TZOffsetSize) >> (32 - StatusV1TZOffsetSize))
	var tz = time.FixedZone(timezoneName(offsetMin), offsetMin*60)

	return &StatusV1Payload{
		Timestamp:             time.Unix(int64(f.Timestamp), 0).In(tz),
		Epoch:                 time.Date(int(f.EpochYear), 1, 1, 0, 0, 0, 0, time.UTC),
		Mode:                  mode,
		Timezone:              tz,
		TimezoneOffsetMinutes: offsetMin,
	}, nil
}

func timezoneName(offsetMin int) string {
	var sign = "+"
	if offsetMin < 0 {
		sign = "-"
		offsetMin = -offsetMin
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, offsetMin/60, offsetMin%60)
}

// resolveTrackPoint dequantizes one dead-reckoning offset and walks
// it out from the anchor.  Every point offsets from the anchor
// directly, points never chain off each other.
func resolveTrackPoint(anchor s2.LatLng, deltaKm int, deltaMRaw, deltaAngleRaw uint32,
	activity int, tempAlert bool, deltaMStep, bearingStep decimal.Decimal) TrackPoint {

	var deltaM = decimal.NewFromInt(int64(deltaMRaw)).Mul(deltaMStep)
	var total = decimal.NewFromInt(int64(deltaKm)).Mul(decimal.NewFromInt(1000)).Add(deltaM)
	var bearing = decimal.NewFromInt(int64(deltaAngleRaw)).Mul(bearingStep)

	return TrackPoint{
		DeltaKm:     deltaKm,
		DeltaM:      deltaM,
		TotalDeltaM: total,
		Bearing:     bearing,
		Activity:    activity,
		TempAlert:   tempAlert,
		Position:    GreatCircleDestination(anchor, bearing.InexactFloat64(), total.InexactFloat64()),
	}
}

// Package-level convenience entry points sharing one decoder.
var defaultDecoder = NewDecoder()

func DecodeRawMessage(frameHex string, epochYear int) (*Record, error) {
	return defaultDecoder.DecodeRaw(frameHex, epochYear)
}

func DecodeProcessedMessage(frameHex string, meta ProcessedMeta) (*Record, error) {
	return defaultDecoder.DecodeProcessed(frameHex, meta)
}
