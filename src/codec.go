package scm

/*-------------------------------------------------------------
 *
 * Purpose:	Bit-level codec between 31-byte frames and the raw
 *		field tree.
 *
 *		Decode and Encode are exact inverses: for any
 *		31-byte input, Encode(Decode(frame)) reproduces the
 *		frame bit for bit.  That property is what makes
 *		checksum re-verification by re-encoding possible.
 *
 *--------------------------------------------------------------*/

import "fmt"

// FieldCodec converts between wire frames and field trees.
type FieldCodec interface {
	Decode(frame []byte) (*FieldTree, error)
	Encode(tree *FieldTree) ([]byte, error)
}

// DefaultCodec implements the current uplink data format.
var DefaultCodec FieldCodec = dfCodec{}

type dfCodec struct{}

func (dfCodec) Decode(frame []byte) (*FieldTree, error) {
	if len(frame) != FrameSize {
		return nil, &InvalidFrameLengthError{Expected: FrameSize, Actual: float64(len(frame))}
	}

	var r = newBitReader(frame)
	var t = new(FieldTree)

	t.ID = r.take(TransmissionIDSize)
	t.CRC16 = r.take(TransmissionCRC16Size)
	t.ServiceFlag = r.take(TransmissionSFSize)
	t.MessageCounter = r.take(TransmissionMCSize)
	t.PacketType = r.take(PacketTypeSize)

	switch t.PacketType {
	case PacketTypeTrackingV1:
		t.TrackingV1 = decodeTrackingV1(r)
	case PacketTypeTrackingV2:
		t.TrackingV2 = decodeTrackingV2(r)
	case PacketTypeStatusV1:
		t.StatusV1 = decodeStatusV1(r)
	default:
		t.Opaque = r.takeBytes(PayloadSizeBits)
	}

	t.BCH32 = r.take(TransmissionBCH32Size)

	return t, nil
}

func (dfCodec) Encode(tree *FieldTree) ([]byte, error) {
	var frame = make([]byte, FrameSize)
	var w = newBitWriter(frame)

	w.put(TransmissionIDSize, tree.ID)
	w.put(TransmissionCRC16Size, tree.CRC16)
	w.put(TransmissionSFSize, tree.ServiceFlag)
	w.put(TransmissionMCSize, tree.MessageCounter)
	w.put(PacketTypeSize, tree.PacketType)

	switch tree.PacketType {
	case PacketTypeTrackingV1:
		if tree.TrackingV1 == nil {
			return nil, fmt.Errorf("packet type %d requires tracking v1 fields", tree.PacketType)
		}
		encodeTrackingV1(w, tree.TrackingV1)
	case PacketTypeTrackingV2:
		if tree.TrackingV2 == nil {
			return nil, fmt.Errorf("packet type %d requires tracking v2 fields", tree.PacketType)
		}
		encodeTrackingV2(w, tree.TrackingV2)
	case PacketTypeStatusV1:
		if tree.StatusV1 == nil {
			return nil, fmt.Errorf("packet type %d requires status v1 fields", tree.PacketType)
		}
		encodeStatusV1(w, tree.StatusV1)
	default:
		if tree.Opaque != nil {
			w.putBytes(PayloadSizeBits, tree.Opaque)
		}
	}

	w.pos = FrameSizeBits - TransmissionBCH32Size
	w.put(TransmissionBCH32Size, tree.BCH32)

	return frame, nil
}

func decodeTrackingV1(r *bitReader) *TrackingV1Fields {
	var p = new(TrackingV1Fields)
	p.Flags = r.take(TrackingV1FlagsSize)
	p.Timeslot = r.take(TrackingV1TimeslotSize)
	p.Longitude = r.take(TrackingV1LongitudeSize)
	p.Latitude = r.take(TrackingV1LatitudeSize)
	p.Orientation = r.take(TrackingV1OrientationSize)
	p.Activity = r.take(TrackingV1ActivitySize)
	p.Battery = r.take(TrackingV1BatterySize)
	p.TempMin = r.take(TrackingV1TempMinSize)
	p.TempMax = r.take(TrackingV1TempMaxSize)
	p.TempAlert = r.take(TrackingV1TempAlertSize)
	for i := range p.Points {
		p.Points[i].DeltaKm = r.take(PointV1DeltaKmSize)
		p.Points[i].DeltaM = r.take(PointV1DeltaMSize)
		p.Points[i].DeltaAngle = r.take(PointV1DeltaAngleSize)
		p.Points[i].Activity = r.take(PointV1ActivitySize)
		p.Points[i].TempAlert = r.take(PointV1TempAlertSize)
	}
	return p
}

func encodeTrackingV1(w *bitWriter, p *TrackingV1Fields) {
	w.put(TrackingV1FlagsSize, p.Flags)
	w.put(TrackingV1TimeslotSize, p.Timeslot)
	w.put(TrackingV1LongitudeSize, p.Longitude)
	w.put(TrackingV1LatitudeSize, p.Latitude)
	w.put(TrackingV1OrientationSize, p.Orientation)
	w.put(TrackingV1ActivitySize, p.Activity)
	w.put(TrackingV1BatterySize, p.Battery)
	w.put(TrackingV1TempMinSize, p.TempMin)
	w.put(TrackingV1TempMaxSize, p.TempMax)
	w.put(TrackingV1TempAlertSize, p.TempAlert)
	for i := range p.Points {
		w.put(PointV1DeltaKmSize, p.Points[i].DeltaKm)
		w.put(PointV1DeltaMSize, p.Points[i].DeltaM)
		w.put(PointV1DeltaAngleSize, p.Points[i].DeltaAngle)
		w.put(PointV1ActivitySize, p.Points[i].Activity)
		w.put(PointV1TempAlertSize, p.Points[i].TempAlert)
	}
}

func decodeTrackingV2(r *bitReader) *TrackingV2Fields {
	var p = new(TrackingV2Fields)
	p.DaysSinceEpoch = r.take(TrackingV2DaysSize)
	p.Timeslot = r.take(TrackingV2TimeslotSize)
	p.Longitude = r.take(TrackingV2LongitudeSize)
	p.Latitude = r.take(TrackingV2LatitudeSize)
	p.Orientation = r.take(TrackingV2OrientationSize)
	p.Activity = r.take(TrackingV2ActivitySize)
	p.Battery = r.take(TrackingV2BatterySize)
	p.TempMin = r.take(TrackingV2TempMinSize)
	p.TempMax = r.take(TrackingV2TempMaxSize)
	p.TempAlert = r.take(TrackingV2TempAlertSize)
	for i := range p.Points {
		p.Points[i].DayOffset = r.take(PointV2DayOffsetSize)
		p.Points[i].Timeslot = r.take(PointV2TimeslotSize)
		p.Points[i].DeltaKm = r.take(PointV2DeltaKmSize)
		p.Points[i].DeltaM = r.take(PointV2DeltaMSize)
		p.Points[i].DeltaAngle = r.take(PointV2DeltaAngleSize)
		p.Points[i].Activity = r.take(PointV2ActivitySize)
		p.Points[i].TempAlert = r.take(PointV2TempAlertSize)
	}
	return p
}

func encodeTrackingV2(w *bitWriter, p *TrackingV2Fields) {
	w.put(TrackingV2DaysSize, p.DaysSinceEpoch)
	w.put(TrackingV2TimeslotSize, p.Timeslot)
	w.put(TrackingV2LongitudeSize, p.Longitude)
	w.put(TrackingV2LatitudeSize, p.Latitude)
	w.put(TrackingV2OrientationSize, p.Orientation)
	w.put(TrackingV2ActivitySize, p.Activity)
	w.put(TrackingV2BatterySize, p.Battery)
	w.put(TrackingV2TempMinSize, p.TempMin)
	w.put(TrackingV2TempMaxSize, p.TempMax)
	w.put(TrackingV2TempAlertSize, p.TempAlert)
	for i := range p.Points {
		w.put(PointV2DayOffsetSize, p.Points[i].DayOffset)
		w.put(PointV2TimeslotSize, p.Points[i].Timeslot)
		w.put(PointV2DeltaKmSize, p.Points[i].DeltaKm)
		w.put(PointV2DeltaMSize, p.Points[i].DeltaM)
		w.put(PointV2DeltaAngleSize, p.Points[i].DeltaAngle)
		w.put(PointV2ActivitySize, p.Points[i].Activity)
		w.put(PointV2TempAlertSize, p.Points[i].TempAlert)
	}
}

func decodeStatusV1(r *bitReader) *StatusV1Fields {
	var p = new(StatusV1Fields)
	p.Timestamp = r.take(StatusV1TimestampSize)
	p.Reserved0 = r.take(StatusV1Reserved0Size)
	p.EpochYear = r.take(StatusV1EpochYearSize)
	p.Mode = r.take(StatusV1ModeSize)
	p.Reserved1 = r.take(StatusV1Reserved1Size)
	p.TZOffsetMin = r.take(StatusV1TZOffsetSize)
	p.Reserved2 = r.take64(StatusV1Reserved2Size)
	p.Reserved3 = r.take64(StatusV1Reserved3Size)
	return p
}

func encodeStatusV1(w *bitWriter, p *StatusV1Fields) {
	w.put(StatusV1TimestampSize, p.Timestamp)
	w.put(StatusV1Reserved0Size, p.Reserved0)
	w.put(StatusV1EpochYearSize, p.EpochYear)
	w.put(StatusV1ModeSize, p.Mode)
	w.put(StatusV1Reserved1Size, p.Reserved1)
	w.put(StatusV1TZOffsetSize, p.TZOffsetMin)
	w.put64(StatusV1Reserved2Size, p.Reserved2)
	w.put64(StatusV1Reserved3Size, p.Reserved3)
}

// signExtend reinterprets the low size bits of raw as a two's
// complement value by shifting them to the top of a 32-bit word.
// The result keeps the shift, matching the packed fixed-point scale.
func signExtend(raw uint32, size int) int32 {
	return int32(raw << (32 - size))
}
