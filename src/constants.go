package scm

/*-------------------------------------------------------------
 *
 * Purpose:	Field widths and quantization parameters for the
 *		collar transmission format.
 *
 *		A transmission is always 31 bytes (248 bits) on the
 *		satellite uplink.  Fields are packed MSB first with
 *		no alignment padding.
 *
 *--------------------------------------------------------------*/

// Overall frame geometry.
const (
	FrameSize     = 31            // bytes
	FrameSizeBits = FrameSize * 8 // 248
)

// Header and trailer field widths in bits.
const (
	TransmissionIDSize    = 4
	TransmissionCRC16Size = 16
	TransmissionSFSize    = 4
	TransmissionMCSize    = 8
	PacketTypeSize        = 5

	TransmissionBCH32Size = 32
)

// The payload region sits between the header and the BCH32 trailer.
const PayloadSizeBits = FrameSizeBits -
	TransmissionIDSize - TransmissionCRC16Size - TransmissionSFSize -
	TransmissionMCSize - PacketTypeSize - TransmissionBCH32Size // 179

// Packet type codes.  Anything else carries no payload we know how
// to interpret; the header and checksums still decode.
const (
	PacketTypeTrackingV1 = 0
	PacketTypeTrackingV2 = 1
	PacketTypeStatusV1   = 2
)

// Tracking v1 payload field widths.
const (
	TrackingV1FlagsSize       = 4
	TrackingV1TimeslotSize    = 4
	TrackingV1LongitudeSize   = 22
	TrackingV1LatitudeSize    = 25
	TrackingV1OrientationSize = 3
	TrackingV1ActivitySize    = 7
	TrackingV1BatterySize     = 6
	TrackingV1TempMinSize     = 4
	TrackingV1TempMaxSize     = 4
	TrackingV1TempAlertSize   = 1

	TrackingV1PointCount = 3

	PointV1DeltaKmSize    = 6
	PointV1DeltaMSize     = 7
	PointV1DeltaAngleSize = 11
	PointV1ActivitySize   = 8
	PointV1TempAlertSize  = 1
)

// Tracking v2 payload field widths.
const (
	TrackingV2DaysSize        = 12
	TrackingV2TimeslotSize    = 4
	TrackingV2LongitudeSize   = 24
	TrackingV2LatitudeSize    = 25
	TrackingV2OrientationSize = 3
	TrackingV2ActivitySize    = 8
	TrackingV2BatterySize     = 6
	TrackingV2TempMinSize     = 5
	TrackingV2TempMaxSize     = 5
	TrackingV2TempAlertSize   = 1

	TrackingV2PointCount = 2

	PointV2DayOffsetSize  = 5
	PointV2TimeslotSize   = 4
	PointV2DeltaKmSize    = 7
	PointV2DeltaMSize     = 7
	PointV2DeltaAngleSize = 11
	PointV2ActivitySize   = 8
	PointV2TempAlertSize  = 1
)

// Status v1 payload field widths.  The reserved regions are carried
// through decode and encode verbatim so re-encoding reproduces the
// original frame bit for bit.
const (
	StatusV1TimestampSize = 32
	StatusV1Reserved0Size = 21
	StatusV1EpochYearSize = 11
	StatusV1ModeSize      = 5
	StatusV1Reserved1Size = 4
	StatusV1TZOffsetSize  = 12
	StatusV1Reserved2Size = 47
	StatusV1Reserved3Size = 47
)

// GPS coordinates travel as signed fixed-point millionths of a degree.
const GPSMultiplier = 1000000

// A timeslot count is two hours of the day.
const TimeslotHours = 2

// Quantization ranges.  Step sizes derive from these and the field
// widths above, see quantize.go.
const (
	BatteryRangeLow  = "3.00" // volts
	BatteryRangeHigh = "4.28"

	TempMinRangeLow  = "0"
	TempMinRangeHigh = "24"

	TempMaxRangeLow  = "20"
	TempMaxRangeHigh = "44"

	PointDeltaMRange     = "1000" // metres below the km count
	PointDeltaFullCircle = "360"
)
