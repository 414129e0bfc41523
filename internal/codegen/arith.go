package codegen

import (
	"math"

	"github.com/mna/langums/internal/chk"
	"github.com/mna/langums/internal/regmap"
	"github.com/mna/langums/internal/trigbuild"
)

// codeGenCopyReg emits the drain-and-refill sequence that copies srcReg
// into dstReg without destroying srcReg's value: srcReg drains into the
// shared CopyStorage cell in descending powers of two, then CopyStorage
// drains back out into both srcReg and dstReg at once. Grounded on
// Compiler::CodeGen_CopyReg; every register operation in this VM that
// isn't a plain literal assignment reduces to this.
func (g *Generator) codeGenCopyReg(dstReg, srcReg int, nextAddress *int, retAddress int) (int, error) {
	copyAddress := *nextAddress
	*nextAddress++
	copy2Address := *nextAddress
	*nextAddress++

	for i := g.copyBatchSize; i >= 1; i /= 2 {
		b := trigbuild.New(copyAddress, g.owner, g.regs)
		var es errset
		es.try(b.CondTestReg(srcReg, i, chk.AtLeast))
		es.try(b.ActionDecReg(srcReg, i))
		es.try(b.ActionIncReg(regmap.CopyStorage, i))
		if es.err != nil {
			return 0, g.wrap(es.err, -1)
		}
		g.push(b)
	}

	finish := trigbuild.New(copyAddress, g.owner, g.regs)
	{
		var es errset
		es.try(finish.CondTestReg(srcReg, 0, chk.Exactly))
		es.try(finish.ActionSetReg(dstReg, 0))
		es.try(finish.ActionJumpTo(copy2Address))
		if es.err != nil {
			return 0, g.wrap(es.err, -1)
		}
	}
	g.push(finish)

	for i := g.copyBatchSize; i >= 1; i /= 2 {
		b := trigbuild.New(copy2Address, g.owner, g.regs)
		var es errset
		es.try(b.CondTestReg(regmap.CopyStorage, i, chk.AtLeast))
		es.try(b.ActionDecReg(regmap.CopyStorage, i))
		es.try(b.ActionIncReg(srcReg, i))
		es.try(b.ActionIncReg(dstReg, i))
		if es.err != nil {
			return 0, g.wrap(es.err, -1)
		}
		g.push(b)
	}

	finish2 := trigbuild.New(copy2Address, g.owner, g.regs)
	{
		var es errset
		es.try(finish2.CondTestReg(regmap.CopyStorage, 0, chk.Exactly))
		es.try(finish2.ActionJumpTo(retAddress))
		if es.err != nil {
			return 0, g.wrap(es.err, -1)
		}
	}
	g.push(finish2)

	return copyAddress, nil
}

// doIndirectJump sets the mutex switch and zeroes the instruction counter
// register on b, which (once the indirect-jump drain triggers built by
// emitIndirectJumpCode see the mutex set) re-adds Reg_IndirectJumpAddress
// back into the counter - the only way this VM can jump to an address it
// doesn't know until runtime, used by the shared multiply routine to
// return to its caller.
func doIndirectJump(b *trigbuild.Builder) error {
	var es errset
	es.try(b.ActionSetSwitch(SwitchInstructionCounterMutex, chk.SetSwitch))
	es.try(b.ActionSetReg(regmap.InstructionCounter, 0))
	return es.err
}

// emitIndirectJumpCode emits the drain triggers that perform a jump to
// whatever address Reg_IndirectJumpAddress holds, once doIndirectJump has
// armed the mutex switch.
func (g *Generator) emitIndirectJumpCode(nextAddress *int) error {
	for i := g.copyBatchSize; i >= 1; i /= 2 {
		b := trigbuild.New(-1, g.owner, g.regs)
		var es errset
		es.try(b.CondTestSwitch(SwitchInstructionCounterMutex, true, 0))
		es.try(b.CondTestReg(regmap.IndirectJumpAddress, i, chk.AtLeast))
		es.try(b.ActionDecReg(regmap.IndirectJumpAddress, i))
		es.try(b.ActionIncReg(regmap.InstructionCounter, i))
		if es.err != nil {
			return g.wrap(es.err, -1)
		}
		g.push(b)
	}

	finish := trigbuild.New(-1, g.owner, g.regs)
	var es errset
	es.try(finish.CondTestSwitch(SwitchInstructionCounterMutex, true, 0))
	es.try(finish.CondTestReg(regmap.IndirectJumpAddress, 0, chk.Exactly))
	es.try(finish.ActionSetSwitch(SwitchInstructionCounterMutex, chk.ClearSwitch))
	if es.err != nil {
		return g.wrap(es.err, -1)
	}
	g.push(finish)
	return nil
}

// emitMulInstructionCode emits the single shared multiply routine every
// Mul instruction's expansion jumps into (indirectly, via
// Reg_IndirectJumpAddress) rather than duplicating: it counts the bits of
// MulRight, shuffles bit-weighted copies of MulLeft between the two
// operand registers, and accumulates the product in MulRight before
// indirect-jumping back to its caller. Grounded on
// Compiler::EmitMulInstructionCode.
func (g *Generator) emitMulInstructionCode(nextAddress *int) error {
	next := func() int {
		v := *nextAddress
		*nextAddress++
		return v
	}

	mulAddress := next()
	rightToLeftAddress := next()
	leftToRightAddress := next()
	checkAddress := next()
	moveAddress := next()
	finishAddress := next()
	g.multiplyAddress = next()

	prepare := trigbuild.New(g.multiplyAddress, g.owner, g.regs)
	{
		var es errset
		es.try(prepare.ActionSetReg(regmap.Temp0, 0))
		es.try(prepare.ActionSetReg(regmap.Temp1, 0))
		es.try(prepare.ActionJumpTo(mulAddress))
		if es.err != nil {
			return g.wrap(es.err, -1)
		}
	}
	g.push(prepare)

	zeroR := trigbuild.New(mulAddress, g.owner, g.regs)
	if err := zeroR.CondTestReg(regmap.MulRight, 0, chk.Exactly); err != nil {
		return g.wrap(err, -1)
	}
	if err := doIndirectJump(zeroR); err != nil {
		return g.wrap(err, -1)
	}
	g.push(zeroR)

	zeroL := trigbuild.New(mulAddress, g.owner, g.regs)
	{
		var es errset
		es.try(zeroL.CondTestReg(regmap.MulLeft, 0, chk.Exactly))
		es.try(zeroL.ActionSetReg(regmap.MulRight, 0))
		if es.err != nil {
			return g.wrap(es.err, -1)
		}
	}
	if err := doIndirectJump(zeroL); err != nil {
		return g.wrap(err, -1)
	}
	g.push(zeroL)

	oneL := trigbuild.New(mulAddress, g.owner, g.regs)
	if err := oneL.CondTestReg(regmap.MulLeft, 1, chk.Exactly); err != nil {
		return g.wrap(err, -1)
	}
	if err := doIndirectJump(oneL); err != nil {
		return g.wrap(err, -1)
	}
	g.push(oneL)

	for i := g.copyBatchSize; i >= 2; i /= 2 {
		b := trigbuild.New(mulAddress, g.owner, g.regs)
		var es errset
		es.try(b.CondTestReg(regmap.MulRight, i, chk.AtLeast))
		es.try(b.ActionDecReg(regmap.MulRight, i))
		es.try(b.ActionIncReg(regmap.Temp0, int(math.Log2(float64(i)))))
		if es.err != nil {
			return g.wrap(es.err, -1)
		}
		g.push(b)
	}

	copyAddress, err := g.codeGenCopyReg(regmap.Temp2, regmap.MulLeft, nextAddress, checkAddress)
	if err != nil {
		return err
	}

	finishCountBits := trigbuild.New(mulAddress, g.owner, g.regs)
	{
		var es errset
		es.try(finishCountBits.CondTestReg(regmap.MulRight, 1, chk.Exactly))
		es.try(finishCountBits.ActionSetReg(regmap.Temp2, 0))
		es.try(finishCountBits.ActionJumpTo(copyAddress))
		if es.err != nil {
			return g.wrap(es.err, -1)
		}
	}
	g.push(finishCountBits)

	finishCountBits2 := trigbuild.New(mulAddress, g.owner, g.regs)
	{
		var es errset
		es.try(finishCountBits2.CondTestReg(regmap.MulRight, 0, chk.Exactly))
		es.try(finishCountBits2.ActionSetReg(regmap.Temp2, 0))
		es.try(finishCountBits2.ActionJumpTo(checkAddress))
		if es.err != nil {
			return g.wrap(es.err, -1)
		}
	}
	g.push(finishCountBits2)

	for i := g.copyBatchSize; i >= 1; i /= 2 {
		b := trigbuild.New(rightToLeftAddress, g.owner, g.regs)
		var es errset
		es.try(b.CondTestReg(regmap.MulRight, i, chk.AtLeast))
		es.try(b.ActionDecReg(regmap.MulRight, i))
		es.try(b.ActionIncReg(regmap.MulLeft, i*2))
		if es.err != nil {
			return g.wrap(es.err, -1)
		}
		g.push(b)
	}

	shiftAFinish := trigbuild.New(rightToLeftAddress, g.owner, g.regs)
	{
		var es errset
		es.try(shiftAFinish.CondTestReg(regmap.MulRight, 0, chk.Exactly))
		es.try(shiftAFinish.ActionSetReg(regmap.Temp1, 0))
		es.try(shiftAFinish.ActionJumpTo(checkAddress))
		if es.err != nil {
			return g.wrap(es.err, -1)
		}
	}
	g.push(shiftAFinish)

	for i := g.copyBatchSize; i >= 1; i /= 2 {
		b := trigbuild.New(leftToRightAddress, g.owner, g.regs)
		var es errset
		es.try(b.CondTestReg(regmap.MulLeft, i, chk.AtLeast))
		es.try(b.ActionDecReg(regmap.MulLeft, i))
		es.try(b.ActionIncReg(regmap.MulRight, i*2))
		if es.err != nil {
			return g.wrap(es.err, -1)
		}
		g.push(b)
	}

	shiftBFinish := trigbuild.New(leftToRightAddress, g.owner, g.regs)
	{
		var es errset
		es.try(shiftBFinish.CondTestReg(regmap.MulLeft, 0, chk.Exactly))
		es.try(shiftBFinish.ActionSetReg(regmap.Temp1, 1))
		es.try(shiftBFinish.ActionJumpTo(checkAddress))
		if es.err != nil {
			return g.wrap(es.err, -1)
		}
	}
	g.push(shiftBFinish)

	for i := g.copyBatchSize; i >= 1; i /= 2 {
		b := trigbuild.New(moveAddress, g.owner, g.regs)
		var es errset
		es.try(b.CondTestReg(regmap.MulLeft, i, chk.AtLeast))
		es.try(b.ActionDecReg(regmap.MulLeft, i))
		es.try(b.ActionIncReg(regmap.MulRight, i))
		if es.err != nil {
			return g.wrap(es.err, -1)
		}
		g.push(b)
	}

	moveFinish := trigbuild.New(moveAddress, g.owner, g.regs)
	{
		var es errset
		es.try(moveFinish.CondTestReg(regmap.MulLeft, 0, chk.Exactly))
		es.try(moveFinish.ActionJumpTo(finishAddress))
		if es.err != nil {
			return g.wrap(es.err, -1)
		}
	}
	g.push(moveFinish)

	checkA := trigbuild.New(checkAddress, g.owner, g.regs)
	{
		var es errset
		es.try(checkA.CondTestReg(regmap.Temp0, 0, chk.Exactly))
		es.try(checkA.CondTestReg(regmap.Temp1, 0, chk.Exactly))
		es.try(checkA.ActionJumpTo(moveAddress))
		if es.err != nil {
			return g.wrap(es.err, -1)
		}
	}
	g.push(checkA)

	checkB := trigbuild.New(checkAddress, g.owner, g.regs)
	{
		var es errset
		es.try(checkB.CondTestReg(regmap.Temp0, 0, chk.Exactly))
		es.try(checkB.CondTestReg(regmap.Temp1, 1, chk.Exactly))
		es.try(checkB.ActionJumpTo(finishAddress))
		if es.err != nil {
			return g.wrap(es.err, -1)
		}
	}
	g.push(checkB)

	checkNotDoneA := trigbuild.New(checkAddress, g.owner, g.regs)
	{
		var es errset
		es.try(checkNotDoneA.CondTestReg(regmap.Temp0, 1, chk.AtLeast))
		es.try(checkNotDoneA.CondTestReg(regmap.Temp1, 0, chk.Exactly))
		es.try(checkNotDoneA.ActionDecReg(regmap.Temp0, 1))
		es.try(checkNotDoneA.ActionSetReg(regmap.MulRight, 0))
		es.try(checkNotDoneA.ActionJumpTo(leftToRightAddress))
		if es.err != nil {
			return g.wrap(es.err, -1)
		}
	}
	g.push(checkNotDoneA)

	checkNotDoneB := trigbuild.New(checkAddress, g.owner, g.regs)
	{
		var es errset
		es.try(checkNotDoneB.CondTestReg(regmap.Temp0, 1, chk.AtLeast))
		es.try(checkNotDoneB.CondTestReg(regmap.Temp1, 1, chk.Exactly))
		es.try(checkNotDoneB.ActionDecReg(regmap.Temp0, 1))
		es.try(checkNotDoneB.ActionSetReg(regmap.MulLeft, 0))
		es.try(checkNotDoneB.ActionJumpTo(rightToLeftAddress))
		if es.err != nil {
			return g.wrap(es.err, -1)
		}
	}
	g.push(checkNotDoneB)

	for i := g.copyBatchSize; i >= 1; i /= 2 {
		b := trigbuild.New(finishAddress, g.owner, g.regs)
		var es errset
		es.try(b.CondTestReg(regmap.Temp2, i, chk.AtLeast))
		es.try(b.ActionDecReg(regmap.Temp2, i))
		es.try(b.ActionIncReg(regmap.MulRight, i))
		if es.err != nil {
			return g.wrap(es.err, -1)
		}
		g.push(b)
	}

	finishMul := trigbuild.New(finishAddress, g.owner, g.regs)
	if err := finishMul.CondTestReg(regmap.Temp2, 0, chk.Exactly); err != nil {
		return g.wrap(err, -1)
	}
	if err := doIndirectJump(finishMul); err != nil {
		return g.wrap(err, -1)
	}
	g.push(finishMul)

	return nil
}
