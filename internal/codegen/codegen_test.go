package codegen

import (
	"testing"

	"github.com/mna/langums/internal/chk"
	"github.com/mna/langums/internal/ir"
	"github.com/mna/langums/internal/regmap"
	"github.com/stretchr/testify/require"
)

func newTestMap(t *testing.T) *regmap.Map {
	t.Helper()
	m, _ := regmap.Build(nil)
	return m
}

func TestGenerateLiteralSetRegEmitsSetDeathsAction(t *testing.T) {
	regs := newTestMap(t)
	g := New(regs, 1, Config{})

	prog := &ir.Program{Instructions: []ir.Instruction{
		{Kind: ir.SetReg, RegA: 5, Imm: 42},
	}}

	triggers, err := g.Generate(prog)
	require.NoError(t, err)
	require.Len(t, triggers, 1+DefaultHyperTriggerCount)

	def, err := regs.Lookup(5)
	require.NoError(t, err)

	found := false
	for _, a := range triggers[0].Actions {
		if a.Kind == chk.SetDeaths && a.Player == uint32(def.PlayerID) && a.Arg1 == uint16(def.UnitType) {
			require.Equal(t, uint32(42), a.Arg0)
			require.Equal(t, uint8(chk.SetTo), a.Modifier)
			found = true
		}
	}
	require.True(t, found, "expected a SetDeaths action writing register 5")
}

func TestGenerateEmptyProgramYieldsOnlyHyperTriggers(t *testing.T) {
	regs := newTestMap(t)
	g := New(regs, 1, Config{})

	prog := &ir.Program{}

	triggers, err := g.Generate(prog)
	require.NoError(t, err)
	require.Len(t, triggers, DefaultHyperTriggerCount)

	for _, tr := range triggers {
		require.Equal(t, chk.Always, tr.Conditions[0].Kind)
		require.Equal(t, chk.PreserveTrigger, tr.Actions[0].Kind)
	}
}

func TestGenerateSingleUnconditionalJumpToSelfYieldsOneReachableTrigger(t *testing.T) {
	regs := newTestMap(t)
	g := New(regs, 1, Config{})

	prog := &ir.Program{Instructions: []ir.Instruction{
		{Kind: ir.Jmp, Target: 0, Absolute: true},
	}}

	triggers, err := g.Generate(prog)
	require.NoError(t, err)
	require.Len(t, triggers, 1+DefaultHyperTriggerCount)

	def, err := regs.Lookup(regmap.InstructionCounter)
	require.NoError(t, err)

	foundSelfJump := false
	for _, a := range triggers[0].Actions {
		if a.Kind == chk.SetDeaths && a.Player == uint32(def.PlayerID) && a.Arg1 == uint16(def.UnitType) && a.Arg0 == 0 {
			foundSelfJump = true
		}
	}
	require.True(t, foundSelfJump, "expected the sole reachable trigger to jump back to its own address")
}

func TestGenerateHonorsCustomHyperTriggerCount(t *testing.T) {
	regs := newTestMap(t)
	g := New(regs, 1, Config{HyperTriggerCount: 2})

	triggers, err := g.Generate(&ir.Program{})
	require.NoError(t, err)
	require.Len(t, triggers, 2)
}

func TestGenerateAppendsExistingTriggersWhenPreserving(t *testing.T) {
	regs := newTestMap(t)
	existing := []chk.Trigger{{}}
	existing[0].Conditions[0].Kind = chk.Always
	existing[0].Actions[0].Kind = chk.PreserveTrigger

	g := New(regs, 1, Config{HyperTriggerCount: 1, PreserveTriggers: true, ExistingTriggers: existing})

	triggers, err := g.Generate(&ir.Program{})
	require.NoError(t, err)
	require.Len(t, triggers, 2)
	require.Equal(t, existing[0], triggers[len(triggers)-1])
}

func TestGenerateChkPlayersRefreshesPerPlayerSwitches(t *testing.T) {
	regs := newTestMap(t)
	g := New(regs, 3, Config{})

	prog := &ir.Program{Instructions: []ir.Instruction{
		{Kind: ir.ChkPlayers},
	}}

	triggers, err := g.Generate(prog)
	require.NoError(t, err)

	clearsAllEight := false
	ownerSelfTestsWithWait := false
	otherPlayerSwitches := map[int]bool{}

	for _, tr := range triggers {
		clearCount := 0
		for _, a := range tr.Actions {
			if a.Kind == chk.SetSwitch && a.Modifier == uint8(chk.ClearSwitch) &&
				int(a.Arg0) >= SwitchPlayer1 && int(a.Arg0) < SwitchPlayer1+8 {
				clearCount++
			}
		}
		if clearCount == 8 {
			clearsAllEight = true
		}

		ownsOnlyPlayer3 := tr.ExecutionMask[2] != 0
		for i, b := range tr.ExecutionMask {
			if i != 2 && b != 0 {
				ownsOnlyPlayer3 = false
			}
		}

		hasWait, setsOwnSwitch := false, false
		for _, a := range tr.Actions {
			if a.Kind == chk.Wait && a.Milliseconds == 0 {
				hasWait = true
			}
			if a.Kind == chk.SetSwitch && a.Modifier == uint8(chk.SetSwitch) && a.Arg0 == SwitchPlayer1+2 {
				setsOwnSwitch = true
			}
		}
		if ownsOnlyPlayer3 && hasWait && setsOwnSwitch {
			ownerSelfTestsWithWait = true
		}

		for i := 0; i < 8; i++ {
			if i == 2 {
				continue
			}
			ownsOnlyPlayerI := tr.ExecutionMask[i] != 0
			for j, b := range tr.ExecutionMask {
				if j != i && b != 0 {
					ownsOnlyPlayerI = false
				}
			}
			if !ownsOnlyPlayerI {
				continue
			}
			for _, a := range tr.Actions {
				if a.Kind == chk.SetSwitch && a.Modifier == uint8(chk.SetSwitch) && int(a.Arg0) == SwitchPlayer1+i {
					otherPlayerSwitches[i] = true
				}
			}
		}
	}

	require.True(t, clearsAllEight, "expected one trigger clearing all eight SwitchPlayer1.. switches")
	require.True(t, ownerSelfTestsWithWait, "expected the owner's own trigger to set its switch and wait 0")
	for i := 0; i < 8; i++ {
		if i == 2 {
			continue
		}
		require.True(t, otherPlayerSwitches[i], "expected a one-shot trigger owned solely by player %d setting its own switch", i+1)
	}
}

func TestGenerateForwardJumpResolvesAddress(t *testing.T) {
	regs := newTestMap(t)
	g := New(regs, 1, Config{})

	prog := &ir.Program{Instructions: []ir.Instruction{
		{Kind: ir.Jmp, Target: 2, Absolute: true},
		{Kind: ir.SetReg, RegA: 5, Imm: 1},
		{Kind: ir.SetReg, RegA: 6, Imm: 2},
	}}

	triggers, err := g.Generate(prog)
	require.NoError(t, err)
	require.NotEmpty(t, triggers)

	def, err := regs.Lookup(regmap.InstructionCounter)
	require.NoError(t, err)

	jumpWritten := false
	for _, tr := range triggers {
		for _, a := range tr.Actions {
			if a.Kind == chk.SetDeaths && a.Player == uint32(def.PlayerID) && a.Arg1 == uint16(def.UnitType) && a.Arg0 > 0 {
				jumpWritten = true
			}
		}
	}
	require.True(t, jumpWritten, "expected the deferred jump patch to have written a non-zero instruction-counter target")
}

func TestGenerateDivIsNotImplemented(t *testing.T) {
	regs := newTestMap(t)
	g := New(regs, 1, Config{})

	prog := &ir.Program{Instructions: []ir.Instruction{
		{Kind: ir.Div},
	}}

	_, err := g.Generate(prog)
	require.Error(t, err)

	var ce *Error
	require.ErrorAs(t, err, &ce)
	require.Equal(t, NotImplemented, ce.Kind)
}

func TestGenerateUnknownKindIsMalformed(t *testing.T) {
	regs := newTestMap(t)
	g := New(regs, 1, Config{})

	prog := &ir.Program{Instructions: []ir.Instruction{
		{Kind: ir.NumKinds},
	}}

	_, err := g.Generate(prog)
	require.Error(t, err)

	var ce *Error
	require.ErrorAs(t, err, &ce)
	require.Equal(t, MalformedIR, ce.Kind)
}

func TestGenerateEventConsumesNestedConditions(t *testing.T) {
	regs := newTestMap(t)
	g := New(regs, 1, Config{})

	prog := &ir.Program{Instructions: []ir.Instruction{
		{Kind: ir.BringCond, PlayerID: 0, Comparison: chk.AtLeast, UnitID: 1, LocationID: 1, Quantity: 1},
		{Kind: ir.Event, Operands: []int{0}, SwitchID: 42},
		{Kind: ir.SetReg, RegA: 5, Imm: 1},
	}}

	triggers, err := g.Generate(prog)
	require.NoError(t, err)

	sawEventTrigger := false
	for _, tr := range triggers {
		hasEventsMutexTest, hasBring := false, false
		for _, c := range tr.Conditions {
			if c.Kind == chk.Switch && c.Arg0 == SwitchEventsMutex && c.Comparison == chk.SwitchCleared {
				hasEventsMutexTest = true
			}
			if c.Kind == chk.Bring {
				hasBring = true
			}
		}
		if hasBring {
			sawEventTrigger = true
			require.True(t, hasEventsMutexTest, "expected the event trigger to test EventsMutex cleared")
			foundSwitch := false
			for _, a := range tr.Actions {
				if a.Kind == chk.SetSwitch && a.Arg0 == 42 {
					foundSwitch = true
				}
			}
			require.True(t, foundSwitch, "expected the event trigger to set its switch")
		}
	}
	require.True(t, sawEventTrigger, "expected one trigger built from the nested Bring condition")
}

func TestHiScoreConditionUsesHighestScoreNotLowest(t *testing.T) {
	regs := newTestMap(t)
	g := New(regs, 1, Config{})

	prog := &ir.Program{Instructions: []ir.Instruction{
		{Kind: ir.HiScoreCond, PlayerID: 0, ScoreType: chk.ScoreTotal},
		{Kind: ir.Event, Operands: []int{0}, SwitchID: 1},
	}}

	triggers, err := g.Generate(prog)
	require.NoError(t, err)

	sawScoreCondition := false
	for _, tr := range triggers {
		for _, c := range tr.Conditions {
			if c.Kind == chk.Score {
				sawScoreCondition = true
				// CondHighestScore uses AtLeast; CondLowestScore (the original's
				// mistaken call for HiScoreCond) would have used AtMost instead.
				require.Equal(t, chk.AtLeast, c.Comparison)
			}
		}
	}
	require.True(t, sawScoreCondition, "expected one trigger built from the HiScoreCond condition")
}
