package scm

/*-------------------------------------------------------------
 *
 * Purpose:	Raw field tree for one transmission.
 *
 *		This is the quantized view: every field holds the
 *		integer counts exactly as packed on the uplink, no
 *		dequantization, no sign interpretation.  Conversion
 *		to physical units happens in decode.go.
 *
 *		Exactly one of TrackingV1 / TrackingV2 / StatusV1 /
 *		Opaque is populated, selected by PacketType.
 *
 *--------------------------------------------------------------*/

type FieldTree struct {
	ID             uint32
	CRC16          uint32
	ServiceFlag    uint32
	MessageCounter uint32
	PacketType     uint32

	TrackingV1 *TrackingV1Fields
	TrackingV2 *TrackingV2Fields
	StatusV1   *StatusV1Fields
	Opaque     []byte // payload bits of an unrecognized packet type, left aligned

	BCH32 uint32
}

type TrackingV1Fields struct {
	Flags       uint32
	Timeslot    uint32
	Longitude   uint32 // signed fixed point, see signExtend
	Latitude    uint32
	Orientation uint32
	Activity    uint32
	Battery     uint32
	TempMin     uint32
	TempMax     uint32
	TempAlert   uint32
	Points      [TrackingV1PointCount]PointV1Fields
}

type PointV1Fields struct {
	DeltaKm    uint32
	DeltaM     uint32
	DeltaAngle uint32
	Activity   uint32
	TempAlert  uint32
}

type TrackingV2Fields struct {
	DaysSinceEpoch uint32
	Timeslot       uint32
	Longitude      uint32
	Latitude       uint32
	Orientation    uint32
	Activity       uint32
	Battery        uint32
	TempMin        uint32
	TempMax        uint32
	TempAlert      uint32
	Points         [TrackingV2PointCount]PointV2Fields
}

type PointV2Fields struct {
	DayOffset  uint32
	Timeslot   uint32
	DeltaKm    uint32
	DeltaM     uint32
	DeltaAngle uint32
	Activity   uint32
	TempAlert  uint32
}

type StatusV1Fields struct {
	Timestamp   uint32 // unix seconds
	Reserved0   uint32
	EpochYear   uint32
	Mode        uint32
	Reserved1   uint32
	TZOffsetMin uint32 // signed minutes, see signExtend
	Reserved2   uint64
	Reserved3   uint64
}

/*-------------------------------------------------------------
 *
 * Name:	Clone
 *
 * Purpose:	Deep copy of the field tree.
 *
 *		Checksum validation re-encodes a tree with the crc16
 *		field zeroed.  That must never touch the caller's
 *		tree, so it works on a clone.
 *
 *--------------------------------------------------------------*/

func (t *FieldTree) Clone() *FieldTree {
	var c = *t

	if t.TrackingV1 != nil {
		var p = *t.TrackingV1
		c.TrackingV1 = &p
	}
	if t.TrackingV2 != nil {
		var p = *t.TrackingV2
		c.TrackingV2 = &p
	}
	if t.StatusV1 != nil {
		var p = *t.StatusV1
		c.StatusV1 = &p
	}
	if t.Opaque != nil {
		c.Opaque = append([]byte(nil), t.Opaque...)
	}

	return &c
}
