package codegen

import (
	"github.com/mna/langums/internal/chk"
	"github.com/mna/langums/internal/ir"
	"github.com/mna/langums/internal/trigbuild"
)

// preEmitEvents is Pass 1: every ir.Event instruction names a set of
// nested condition instructions (Instruction.Operands, each index into the
// same stream) plus a SwitchID to set when all of them hold. These
// triggers have no instruction-counter gate (address -1) and keep their
// PreserveTrigger action, so they fire on every evaluation in which
// EventsMutex is clear and their conditions hold, independent of the main
// addressed instruction stream, which is why they're emitted before Pass
// 2/3 even look at addresses. Bring/Accumulate/LeastResources/
// MostResources/Score/HiScore/LowScore conditions re-point the trigger's
// owner to their own player (the last such condition wins). Returns the set of instruction indices consumed as nested
// conditions, so Pass 3 skips re-processing them as standalone ops.
//
// Grounded on Compiler's Pass 1 Event handling in compiler.cpp, which
// walks each IREventInstruction's nested conditions through exactly the
// Cond_* family used here. HiScoreCond/LowScoreCond are deliberately
// routed to two distinct Builder methods (CondHighestScore,
// CondLowestScore) rather than one parameterized call, because the
// original made HiScoreCond call the lowest-score condition by mistake.
func (g *Generator) preEmitEvents(instrs []ir.Instruction) (map[int]bool, error) {
	consumed := make(map[int]bool)

	for idx := range instrs {
		in := &instrs[idx]
		if in.Kind != ir.Event {
			continue
		}

		eventTrigger := trigbuild.New(-1, g.owner, g.regs)
		if err := eventTrigger.CondTestSwitch(SwitchEventsMutex, false, 0); err != nil {
			return nil, g.wrap(err, in.Index)
		}
		for _, condIdx := range in.Operands {
			if condIdx < 0 || condIdx >= len(instrs) {
				return nil, newError(MalformedIR, in.Index, "event references out-of-range condition instruction %d", condIdx)
			}
			consumed[condIdx] = true
			if err := g.emitEventCondition(eventTrigger, &instrs[condIdx]); err != nil {
				return nil, g.wrap(err, instrs[condIdx].Index)
			}
			switch c := &instrs[condIdx]; c.Kind {
			case ir.BringCond, ir.AccumCond, ir.LeastResCond, ir.MostResCond, ir.ScoreCond, ir.HiScoreCond, ir.LowScoreCond:
				if c.PlayerID < 8 {
					eventTrigger.SetOwner(uint8(c.PlayerID) + 1)
				}
			}
		}

		if err := eventTrigger.ActionSetSwitch(in.SwitchID, chk.SetSwitch); err != nil {
			return nil, g.wrap(err, in.Index)
		}
		g.push(eventTrigger)
	}

	return consumed, nil
}

func (g *Generator) emitEventCondition(b *trigbuild.Builder, cond *ir.Instruction) error {
	switch cond.Kind {
	case ir.BringCond:
		return b.CondBring(cond.PlayerID, cond.Comparison, cond.UnitID, uint32(cond.LocationID), cond.Quantity)
	case ir.AccumCond:
		return b.CondAccumulate(cond.PlayerID, cond.Comparison, cond.ResourceType, cond.Quantity)
	case ir.LeastResCond:
		return b.CondLeastResources(cond.PlayerID, cond.ResourceType)
	case ir.MostResCond:
		return b.CondMostResources(cond.PlayerID, cond.ResourceType)
	case ir.ScoreCond:
		return b.CondScore(cond.PlayerID, cond.Comparison, cond.ScoreType, cond.Quantity)
	case ir.HiScoreCond:
		return b.CondHighestScore(cond.PlayerID, cond.ScoreType)
	case ir.LowScoreCond:
		return b.CondLowestScore(cond.PlayerID, cond.ScoreType)
	case ir.TimeCond:
		return b.CondElapsedTime(cond.Comparison, cond.Quantity)
	case ir.CmdCond:
		return b.CondCommands(cond.PlayerID, cond.Comparison, cond.UnitID, cond.Quantity)
	case ir.CmdLeastCond:
		return b.CondCommandsLeast(cond.PlayerID, cond.UnitID, cond.LocationID)
	case ir.CmdMostCond:
		return b.CondCommandsMost(cond.PlayerID, cond.UnitID, cond.LocationID)
	case ir.KillCond:
		return b.CondKills(cond.PlayerID, cond.Comparison, cond.UnitID, cond.Quantity)
	case ir.KillLeastCond:
		return b.CondKillsLeast(cond.PlayerID, cond.UnitID)
	case ir.KillMostCond:
		return b.CondKillsMost(cond.PlayerID, cond.UnitID)
	case ir.DeathCond:
		return b.CondDeaths(cond.PlayerID, cond.Comparison, cond.UnitID, cond.Quantity)
	case ir.CountdownCond:
		return b.CondCountdown(cond.Comparison, cond.Quantity)
	case ir.OpponentsCond:
		return b.CondOpponents(cond.PlayerID, cond.Comparison, cond.Quantity)
	default:
		return newError(MalformedIR, cond.Index, "instruction kind %d is not a valid nested event condition", cond.Kind)
	}
}
