package chk

import (
	"encoding/binary"
	"fmt"
)

// EncodeCondition writes one 20-byte condition record in this package's
// fixed little-endian layout (not the engine's on-disk field order).
func EncodeCondition(c Condition) [ConditionSize]byte {
	var buf [ConditionSize]byte
	binary.LittleEndian.PutUint32(buf[0:4], c.Location)
	binary.LittleEndian.PutUint32(buf[4:8], c.Player)
	binary.LittleEndian.PutUint32(buf[8:12], c.Quantity)
	binary.LittleEndian.PutUint16(buf[12:14], c.UnitID)
	buf[14] = uint8(c.Comparison)
	buf[15] = uint8(c.Kind)
	binary.LittleEndian.PutUint16(buf[16:18], c.Arg0)
	buf[18] = c.Flags
	// buf[19] reserved padding, always zero
	return buf
}

// DecodeCondition is the inverse of EncodeCondition.
func DecodeCondition(buf [ConditionSize]byte) Condition {
	return Condition{
		Location:   binary.LittleEndian.Uint32(buf[0:4]),
		Player:     binary.LittleEndian.Uint32(buf[4:8]),
		Quantity:   binary.LittleEndian.Uint32(buf[8:12]),
		UnitID:     binary.LittleEndian.Uint16(buf[12:14]),
		Comparison: TriggerComparisonType(buf[14]),
		Kind:       TriggerConditionType(buf[15]),
		Arg0:       binary.LittleEndian.Uint16(buf[16:18]),
		Flags:      buf[18],
	}
}

// EncodeAction writes one 32-byte action record in this package's fixed
// little-endian layout (not the engine's on-disk field order).
func EncodeAction(a Action) [ActionSize]byte {
	var buf [ActionSize]byte
	binary.LittleEndian.PutUint32(buf[0:4], a.SourceLocation)
	binary.LittleEndian.PutUint32(buf[4:8], a.StringID)
	binary.LittleEndian.PutUint32(buf[8:12], a.WavStringID)
	binary.LittleEndian.PutUint32(buf[12:16], a.Milliseconds)
	binary.LittleEndian.PutUint32(buf[16:20], a.Player)
	binary.LittleEndian.PutUint32(buf[20:24], a.Arg0)
	binary.LittleEndian.PutUint16(buf[24:26], a.Arg1)
	buf[26] = uint8(a.Kind)
	buf[27] = a.Modifier
	buf[28] = a.Flags
	// buf[29:32] reserved padding, always zero
	return buf
}

// DecodeAction is the inverse of EncodeAction.
func DecodeAction(buf [ActionSize]byte) Action {
	return Action{
		SourceLocation: binary.LittleEndian.Uint32(buf[0:4]),
		StringID:       binary.LittleEndian.Uint32(buf[4:8]),
		WavStringID:    binary.LittleEndian.Uint32(buf[8:12]),
		Milliseconds:   binary.LittleEndian.Uint32(buf[12:16]),
		Player:         binary.LittleEndian.Uint32(buf[16:20]),
		Arg0:           binary.LittleEndian.Uint32(buf[20:24]),
		Arg1:           binary.LittleEndian.Uint16(buf[24:26]),
		Kind:           TriggerActionType(buf[26]),
		Modifier:       buf[27],
		Flags:          buf[28],
	}
}

// EncodeTrigger writes one 2400-byte trigger record.
func EncodeTrigger(t Trigger) [TriggerSize]byte {
	var buf [TriggerSize]byte
	binary.LittleEndian.PutUint32(buf[0:4], t.ExecutionFlags)
	copy(buf[4:4+ExecutionMaskSize], t.ExecutionMask[:])

	off := ExecutionFlagsSize + ExecutionMaskSize
	for _, c := range t.Conditions {
		enc := EncodeCondition(c)
		copy(buf[off:off+ConditionSize], enc[:])
		off += ConditionSize
	}
	for _, a := range t.Actions {
		enc := EncodeAction(a)
		copy(buf[off:off+ActionSize], enc[:])
		off += ActionSize
	}
	return buf
}

// DecodeTrigger is the inverse of EncodeTrigger.
func DecodeTrigger(buf [TriggerSize]byte) Trigger {
	var t Trigger
	t.ExecutionFlags = binary.LittleEndian.Uint32(buf[0:4])
	copy(t.ExecutionMask[:], buf[4:4+ExecutionMaskSize])

	off := ExecutionFlagsSize + ExecutionMaskSize
	for i := range t.Conditions {
		var enc [ConditionSize]byte
		copy(enc[:], buf[off:off+ConditionSize])
		t.Conditions[i] = DecodeCondition(enc)
		off += ConditionSize
	}
	for i := range t.Actions {
		var enc [ActionSize]byte
		copy(enc[:], buf[off:off+ActionSize])
		t.Actions[i] = DecodeAction(enc)
		off += ActionSize
	}
	return t
}

// EncodeTriggers serializes an ordered trigger vector to the bytes of a
// TRIG chunk: record_count * TriggerSize bytes, back to back.
func EncodeTriggers(triggers []Trigger) []byte {
	out := make([]byte, 0, len(triggers)*TriggerSize)
	for _, t := range triggers {
		enc := EncodeTrigger(t)
		out = append(out, enc[:]...)
	}
	return out
}

// DecodeTriggers parses a TRIG chunk's bytes back into a trigger vector.
// It returns an error if the byte count isn't a multiple of TriggerSize.
func DecodeTriggers(data []byte) ([]Trigger, error) {
	if len(data)%TriggerSize != 0 {
		return nil, fmt.Errorf("chk: TRIG chunk length %d is not a multiple of %d", len(data), TriggerSize)
	}

	count := len(data) / TriggerSize
	out := make([]Trigger, count)
	for i := 0; i < count; i++ {
		var buf [TriggerSize]byte
		copy(buf[:], data[i*TriggerSize:(i+1)*TriggerSize])
		out[i] = DecodeTrigger(buf)
	}
	return out, nil
}
