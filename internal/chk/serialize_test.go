package chk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTriggerRoundTrip(t *testing.T) {
	trig := Trigger{ExecutionFlags: 0}
	trig.SetOwner(7)
	trig.Conditions[0] = Condition{
		Kind:       Deaths,
		Comparison: Exactly,
		Quantity:   42,
		Player:     7,
		UnitID:     201,
		Flags:      conditionEnabledFlag,
	}
	trig.Actions[0] = Action{
		Kind:     SetDeaths,
		Modifier: uint8(SetTo),
		Player:   7,
		Arg0:     5,
		Arg1:     201,
		Flags:    conditionEnabledFlag,
	}
	trig.Actions[1] = Action{Kind: PreserveTrigger}

	enc := EncodeTrigger(trig)
	require.Len(t, enc, TriggerSize)

	got := DecodeTrigger(enc)
	require.Equal(t, trig, got)
}

func TestEncodeTriggersSizeIsExact(t *testing.T) {
	triggers := make([]Trigger, 3)
	data := EncodeTriggers(triggers)
	require.Len(t, data, 3*TriggerSize)

	back, err := DecodeTriggers(data)
	require.NoError(t, err)
	require.Equal(t, triggers, back)
}

func TestDecodeTriggersRejectsMisalignedLength(t *testing.T) {
	_, err := DecodeTriggers(make([]byte, TriggerSize+1))
	require.Error(t, err)
}

func TestTriggerIsEmpty(t *testing.T) {
	var t1 Trigger
	require.True(t, t1.IsEmpty())

	t1.Actions[0].Kind = PreserveTrigger
	require.False(t, t1.IsEmpty())
}
