package codegen

import (
	"github.com/mna/langums/internal/chk"
	"github.com/mna/langums/internal/ir"
	"github.com/mna/langums/internal/trigbuild"
)

// jumpSingle writes a jump to target into b's next free action slot,
// either immediately (target already has a known address) or by deferring
// it to the end-of-stream patch pass.
func (g *Generator) jumpSingle(b *trigbuild.Builder, target int) error {
	if addr, ok := g.jumpAddressOf.Get(target); ok {
		if err := b.ActionJumpTo(addr); err != nil {
			return err
		}
		g.push(b)
		return nil
	}
	g.pushWithTarget(b, target)
	return nil
}

// notEqualBranch builds the "taken when reg != value" half of a branch.
// A single condition slot can't express inequality (only AtLeast/AtMost/
// Exactly), so value>0 forks ifTrue into two physical triggers - one
// testing AtMost(value-1), one testing AtLeast(value+1) - sharing the same
// jump action, via Builder.AddSecondary.
func (g *Generator) notEqualBranch(ifTrue *trigbuild.Builder, reg, value, target int) error {
	if value == 0 {
		if err := ifTrue.CondTestReg(reg, 1, chk.AtLeast); err != nil {
			return err
		}
		return g.jumpSingle(ifTrue, target)
	}

	secondaryCopy := *ifTrue
	secondary := &secondaryCopy

	if err := ifTrue.CondTestReg(reg, value-1, chk.AtMost); err != nil {
		return err
	}
	if err := secondary.CondTestReg(reg, value+1, chk.AtLeast); err != nil {
		return err
	}

	if addr, ok := g.jumpAddressOf.Get(target); ok {
		if err := ifTrue.ActionJumpTo(addr); err != nil {
			return err
		}
		if err := secondary.ActionJumpTo(addr); err != nil {
			return err
		}
		ifTrue.AddSecondary(secondary)
		g.push(ifTrue)
		return nil
	}

	ifTrue.AddSecondary(secondary)
	g.pushWithTarget(ifTrue, target)
	return nil
}

func (g *Generator) lowerJmp(in *ir.Instruction, i, length int, cur **trigbuild.Builder, nextAddress *int) error {
	target := clampTarget(in, i, length)
	if err := g.jumpSingle(*cur, target); err != nil {
		return err
	}

	retAddress := *nextAddress
	*nextAddress++
	*cur = trigbuild.New(retAddress, g.owner, g.regs)
	return nil
}

// lowerJmpIfEq: reg == imm is a single Exactly test, so the taken branch is
// simple; the fallthrough (not equal) needs the dual-trigger encoding.
func (g *Generator) lowerJmpIfEq(in *ir.Instruction, i, length int, cur **trigbuild.Builder, nextAddress *int) error {
	target := clampTarget(in, i, length)
	reg := g.resolveReg(in.RegA)

	ifTrueCopy := *(*cur)
	ifTrue := &ifTrueCopy
	if err := ifTrue.CondTestReg(reg, in.Imm, chk.Exactly); err != nil {
		return err
	}
	if err := g.jumpSingle(ifTrue, target); err != nil {
		return err
	}

	retAddress := *nextAddress
	*nextAddress++
	fallthroughBuilder := *cur
	*cur = trigbuild.New(retAddress, g.owner, g.regs)
	return g.notEqualFallthrough(fallthroughBuilder, reg, in.Imm, retAddress)
}

// lowerJmpIfNotEq: reg != imm is the dual-trigger condition, so the taken
// branch needs it; the fallthrough (equal) is a single Exactly test.
func (g *Generator) lowerJmpIfNotEq(in *ir.Instruction, i, length int, cur **trigbuild.Builder, nextAddress *int) error {
	target := clampTarget(in, i, length)
	reg := g.resolveReg(in.RegA)

	ifTrueCopy := *(*cur)
	ifTrue := &ifTrueCopy
	if err := g.notEqualBranch(ifTrue, reg, in.Imm, target); err != nil {
		return err
	}

	if err := (*cur).CondTestReg(reg, in.Imm, chk.Exactly); err != nil {
		return err
	}

	retAddress := *nextAddress
	*nextAddress++
	if err := (*cur).ActionJumpTo(retAddress); err != nil {
		return err
	}
	g.push(*cur)
	*cur = trigbuild.New(retAddress, g.owner, g.regs)
	return nil
}

// notEqualFallthrough gates b on reg != value, makes it jump to retAddress
// (the freshly-opened current where execution continues) and pushes it -
// used for the "not equal" fallthrough half of lowerJmpIfEq.
func (g *Generator) notEqualFallthrough(b *trigbuild.Builder, reg, value, retAddress int) error {
	if value == 0 {
		if err := b.CondTestReg(reg, 1, chk.AtLeast); err != nil {
			return err
		}
		if err := b.ActionJumpTo(retAddress); err != nil {
			return err
		}
		g.push(b)
		return nil
	}

	secondaryCopy := *b
	secondary := &secondaryCopy
	if err := b.CondTestReg(reg, value-1, chk.AtMost); err != nil {
		return err
	}
	if err := secondary.CondTestReg(reg, value+1, chk.AtLeast); err != nil {
		return err
	}
	if err := b.ActionJumpTo(retAddress); err != nil {
		return err
	}
	if err := secondary.ActionJumpTo(retAddress); err != nil {
		return err
	}
	b.AddSecondary(secondary)
	g.push(b)
	return nil
}

// lowerConditionalJmp handles the four ordering comparisons, each of which
// (unlike equality) splits cleanly into one AtLeast/AtMost test per side.
func (g *Generator) lowerConditionalJmp(in *ir.Instruction, i, length int, cur **trigbuild.Builder, nextAddress *int,
	trueCmp chk.TriggerComparisonType, trueValue int,
	falseCmp chk.TriggerComparisonType, falseValue int) error {

	target := clampTarget(in, i, length)
	reg := g.resolveReg(in.RegA)

	ifTrueCopy := *(*cur)
	ifTrue := &ifTrueCopy
	if err := ifTrue.CondTestReg(reg, trueValue, trueCmp); err != nil {
		return err
	}
	if err := g.jumpSingle(ifTrue, target); err != nil {
		return err
	}

	if err := (*cur).CondTestReg(reg, falseValue, falseCmp); err != nil {
		return err
	}

	retAddress := *nextAddress
	*nextAddress++
	if err := (*cur).ActionJumpTo(retAddress); err != nil {
		return err
	}
	g.push(*cur)
	*cur = trigbuild.New(retAddress, g.owner, g.regs)
	return nil
}

func (g *Generator) lowerJmpIfGrt(in *ir.Instruction, i, length int, cur **trigbuild.Builder, nextAddress *int) error {
	return g.lowerConditionalJmp(in, i, length, cur, nextAddress, chk.AtLeast, in.Imm+1, chk.AtMost, in.Imm)
}

func (g *Generator) lowerJmpIfGrtOrEq(in *ir.Instruction, i, length int, cur **trigbuild.Builder, nextAddress *int) error {
	return g.lowerConditionalJmp(in, i, length, cur, nextAddress, chk.AtLeast, in.Imm, chk.AtMost, in.Imm-1)
}

func (g *Generator) lowerJmpIfLess(in *ir.Instruction, i, length int, cur **trigbuild.Builder, nextAddress *int) error {
	return g.lowerConditionalJmp(in, i, length, cur, nextAddress, chk.AtMost, in.Imm-1, chk.AtLeast, in.Imm)
}

func (g *Generator) lowerJmpIfLessOrEq(in *ir.Instruction, i, length int, cur **trigbuild.Builder, nextAddress *int) error {
	return g.lowerConditionalJmp(in, i, length, cur, nextAddress, chk.AtMost, in.Imm, chk.AtLeast, in.Imm+1)
}

func (g *Generator) lowerJmpIfSwNotSet(in *ir.Instruction, i, length int, cur **trigbuild.Builder, nextAddress *int) error {
	target := clampTarget(in, i, length)

	ifTrueCopy := *(*cur)
	ifTrue := &ifTrueCopy
	if err := ifTrue.CondTestSwitch(in.SwitchID, false, 0); err != nil {
		return err
	}
	if err := g.jumpSingle(ifTrue, target); err != nil {
		return err
	}

	if err := (*cur).CondTestSwitch(in.SwitchID, true, 0); err != nil {
		return err
	}

	retAddress := *nextAddress
	*nextAddress++
	if err := (*cur).ActionJumpTo(retAddress); err != nil {
		return err
	}
	g.push(*cur)
	*cur = trigbuild.New(retAddress, g.owner, g.regs)
	return nil
}

func (g *Generator) lowerJmpIfSwSet(in *ir.Instruction, i, length int, cur **trigbuild.Builder, nextAddress *int) error {
	target := clampTarget(in, i, length)

	ifTrueCopy := *(*cur)
	ifTrue := &ifTrueCopy
	if err := ifTrue.CondTestSwitch(in.SwitchID, true, 0); err != nil {
		return err
	}
	if err := g.jumpSingle(ifTrue, target); err != nil {
		return err
	}

	if err := (*cur).CondTestSwitch(in.SwitchID, false, 0); err != nil {
		return err
	}

	retAddress := *nextAddress
	*nextAddress++
	if err := (*cur).ActionJumpTo(retAddress); err != nil {
		return err
	}
	g.push(*cur)
	*cur = trigbuild.New(retAddress, g.owner, g.regs)
	return nil
}

// lowerChkPlayers refreshes the eight per-player presence switches
// (SwitchPlayer1..+7): it clears all eight on the in-flight trigger, jumps
// forward to a fresh address, self-tests the triggers owner's own switch
// inline (no condition needed - the owner is always present while its
// triggers still run), and emits one zero-wait, one-shot-per-tick trigger
// owned by each other player that sets its own switch. A tick later every
// switch reflects which players are still in the game. Grounded on
// Compiler's ChkPlayers branch in compiler.cpp.
func (g *Generator) lowerChkPlayers(cur **trigbuild.Builder, nextAddress *int) error {
	startAddress := *nextAddress
	*nextAddress++

	for i := 0; i < 8; i++ {
		if err := (*cur).ActionSetSwitch(SwitchPlayer1+i, chk.ClearSwitch); err != nil {
			return err
		}
	}
	if err := (*cur).ActionJumpTo(startAddress); err != nil {
		return err
	}
	g.push(*cur)

	next := trigbuild.New(startAddress, g.owner, g.regs)
	var es errset
	es.try(next.ActionSetSwitch(SwitchPlayer1+int(g.owner)-1, chk.SetSwitch))
	es.try(next.ActionWait(0))
	if es.err != nil {
		return es.err
	}

	for i := 0; i < 8; i++ {
		if i+1 == int(g.owner) {
			continue
		}
		other := trigbuild.New(startAddress, uint8(i+1), g.regs)
		if err := other.ActionSetSwitch(SwitchPlayer1+i, chk.SetSwitch); err != nil {
			return err
		}
		g.push(other)
	}

	*cur = next
	return nil
}

// lowerIsPresent tests that every named player still has at least one unit
// of the map's "present" marker - the condition family used to gate logic
// on whether a player is still in the game.
func (g *Generator) lowerIsPresent(in *ir.Instruction, cur **trigbuild.Builder, nextAddress *int) error {
	for _, playerID := range in.Operands {
		if err := (*cur).CondBring(uint32(playerID), chk.AtLeast, in.UnitID, chk.AnyLocation, 1); err != nil {
			return err
		}
	}
	return nil
}

const allPlayersSentinel = 0xffffffff

// lowerDisplayMsg shows a text message, synchronizing with an explicit
// Wait(0) when the message targets a player other than this generator's
// own, matching the way the engine requires a message trigger to run on
// the viewing player to be seen by them.
func (g *Generator) lowerDisplayMsg(in *ir.Instruction, cur **trigbuild.Builder, nextAddress *int) error {
	if in.PlayerID == allPlayersSentinel || in.PlayerID+1 == uint32(g.owner) {
		return (*cur).ActionDisplayMsg(in.StringID)
	}

	msgAddress := *nextAddress
	*nextAddress++

	if err := (*cur).ActionJumpTo(msgAddress); err != nil {
		return err
	}
	g.push(*cur)

	retAddress := *nextAddress
	*nextAddress++

	msgTrigger := trigbuild.New(msgAddress, uint8(in.PlayerID+1), g.regs)
	var es errset
	es.try(msgTrigger.ActionDisplayMsg(in.StringID))
	es.try(msgTrigger.ActionWait(0))
	es.try(msgTrigger.ActionJumpTo(retAddress))
	if es.err != nil {
		return es.err
	}
	g.push(msgTrigger)

	*cur = trigbuild.New(retAddress, g.owner, g.regs)
	return nil
}
