package codegen

import (
	"github.com/mna/langums/internal/chk"
	"github.com/mna/langums/internal/ir"
	"github.com/mna/langums/internal/regmap"
	"github.com/mna/langums/internal/trigbuild"
)

// lower is Pass 3's per-instruction-kind dispatch. cur points at the
// in-flight trigger builder; most cases just add to it, a handful replace
// it outright (PushTriggers + TriggerBuilder(...) in the original).
func (g *Generator) lower(in *ir.Instruction, i int, instrs []ir.Instruction, cur **trigbuild.Builder, nextAddress *int) error {
	switch in.Kind {
	case ir.Nop, ir.Unit, ir.UnitProp, ir.Event:
		return nil

	case ir.Push:
		return g.lowerPush(in, cur, nextAddress)
	case ir.Pop:
		return g.lowerPop(in, cur, nextAddress)
	case ir.SetReg:
		return (*cur).ActionSetReg(g.resolveReg(in.RegA), in.Imm)
	case ir.IncReg:
		return (*cur).ActionIncReg(g.resolveReg(in.RegA), in.Imm)
	case ir.DecReg:
		return (*cur).ActionDecReg(g.resolveReg(in.RegA), in.Imm)
	case ir.CopyReg:
		return g.lowerCopyReg(in, cur, nextAddress)
	case ir.Add:
		return g.lowerAdd(in, cur, nextAddress)
	case ir.Sub:
		return g.lowerSub(in, cur, nextAddress)
	case ir.Mul:
		return g.lowerMul(in, cur, nextAddress)
	case ir.MulConst:
		return g.lowerMulConst(in, cur, nextAddress)
	case ir.Div:
		return newError(NotImplemented, in.Index, "native division is not implemented")
	case ir.Rnd256:
		return g.lowerRnd256(in, cur, nextAddress)

	case ir.Jmp:
		return g.lowerJmp(in, i, len(instrs), cur, nextAddress)
	case ir.JmpIfEq:
		return g.lowerJmpIfEq(in, i, len(instrs), cur, nextAddress)
	case ir.JmpIfNotEq:
		return g.lowerJmpIfNotEq(in, i, len(instrs), cur, nextAddress)
	case ir.JmpIfGrt:
		return g.lowerJmpIfGrt(in, i, len(instrs), cur, nextAddress)
	case ir.JmpIfGrtOrEq:
		return g.lowerJmpIfGrtOrEq(in, i, len(instrs), cur, nextAddress)
	case ir.JmpIfLess:
		return g.lowerJmpIfLess(in, i, len(instrs), cur, nextAddress)
	case ir.JmpIfLessOrEq:
		return g.lowerJmpIfLessOrEq(in, i, len(instrs), cur, nextAddress)
	case ir.JmpIfSwNotSet:
		return g.lowerJmpIfSwNotSet(in, i, len(instrs), cur, nextAddress)
	case ir.JmpIfSwSet:
		return g.lowerJmpIfSwSet(in, i, len(instrs), cur, nextAddress)
	case ir.SetSw:
		state := chk.ClearSwitch
		if in.Imm != 0 {
			state = chk.SetSwitch
		}
		return (*cur).ActionSetSwitch(in.SwitchID, state)

	case ir.ChkPlayers:
		return g.lowerChkPlayers(cur, nextAddress)
	case ir.IsPresent:
		return g.lowerIsPresent(in, cur, nextAddress)
	case ir.DisplayMsg:
		return g.lowerDisplayMsg(in, cur, nextAddress)
	case ir.Wait:
		return (*cur).ActionWait(in.Milliseconds)
	case ir.Talk:
		return (*cur).ActionTalkingPortrait(in.UnitID, in.Milliseconds)
	case ir.Transmission:
		return (*cur).ActionTransmission(in.UnitID, in.WavID, in.StringID, in.Milliseconds, uint32(in.LocationID))

	case ir.Spawn:
		return g.lowerSpawn(in, cur, nextAddress)
	case ir.Kill:
		return g.lowerKill(in, cur, nextAddress)
	case ir.Remove:
		return g.lowerRemove(in, cur, nextAddress)
	case ir.Move:
		return g.lowerMove(in, cur, nextAddress)
	case ir.Order:
		return (*cur).ActionOrderUnit(in.PlayerID, in.UnitID, in.State, uint32(in.SrcLocationID), uint32(in.DstLocationID))
	case ir.Modify:
		return g.lowerModify(in, cur)
	case ir.Give:
		dst := in.PlayerID
		if len(in.Operands) > 0 {
			dst = uint32(in.Operands[0])
		}
		return (*cur).ActionGiveUnits(in.PlayerID, dst, in.UnitID, uint8(in.Quantity), uint32(in.LocationID))
	case ir.MoveLoc:
		return (*cur).ActionMoveLocation(in.PlayerID, in.UnitID, uint32(in.SrcLocationID), uint32(in.DstLocationID))

	case ir.EndGame:
		switch chk.EndGameType(in.Imm) {
		case chk.EndGameVictory:
			return (*cur).ActionVictory()
		case chk.EndGameDefeat:
			return (*cur).ActionDefeat()
		default:
			return (*cur).ActionDraw()
		}
	case ir.CenterView:
		return (*cur).ActionCenterView(uint32(in.LocationID))
	case ir.Ping:
		return (*cur).ActionPing(uint32(in.LocationID))
	case ir.SetResource:
		return (*cur).ActionSetResources(in.PlayerID, in.Quantity, chk.SetTo, in.ResourceType)
	case ir.IncResource:
		return (*cur).ActionSetResources(in.PlayerID, in.Quantity, chk.Add, in.ResourceType)
	case ir.DecResource:
		return (*cur).ActionSetResources(in.PlayerID, in.Quantity, chk.Subtract, in.ResourceType)
	case ir.SetScore:
		return (*cur).ActionSetScore(in.PlayerID, in.Quantity, chk.SetTo, in.ScoreType)
	case ir.IncScore:
		return (*cur).ActionSetScore(in.PlayerID, in.Quantity, chk.Add, in.ScoreType)
	case ir.DecScore:
		return (*cur).ActionSetScore(in.PlayerID, in.Quantity, chk.Subtract, in.ScoreType)
	case ir.SetCountdown:
		return (*cur).ActionSetCountdown(in.Milliseconds, chk.SetTo)
	case ir.AddCountdown:
		return (*cur).ActionSetCountdown(in.Milliseconds, chk.Add)
	case ir.SubCountdown:
		return (*cur).ActionSetCountdown(in.Milliseconds, chk.Subtract)
	case ir.PauseCountdown:
		if in.Imm != 0 {
			return (*cur).ActionPauseCountdown()
		}
		return (*cur).ActionUnpauseCountdown()
	case ir.MuteUnitSpeech:
		if in.Imm != 0 {
			return (*cur).ActionMuteUnitSpeech()
		}
		return (*cur).ActionUnmuteUnitSpeech()
	case ir.SetDeaths:
		return (*cur).ActionSetDeaths(in.PlayerID, in.UnitID, in.Quantity, chk.SetTo)
	case ir.IncDeaths:
		return (*cur).ActionSetDeaths(in.PlayerID, in.UnitID, in.Quantity, chk.Add)
	case ir.DecDeaths:
		return (*cur).ActionSetDeaths(in.PlayerID, in.UnitID, in.Quantity, chk.Subtract)
	case ir.SetDoodad:
		return (*cur).ActionSetDoodadState(in.PlayerID, in.UnitID, in.State, uint32(in.LocationID))
	case ir.SetInvincible:
		return (*cur).ActionSetInvincible(in.PlayerID, in.UnitID, in.State, uint32(in.LocationID))
	case ir.AIScript:
		return (*cur).ActionRunAIScript(in.PlayerID, in.StringID, in.LocationID)
	case ir.SetAlly:
		target := in.PlayerID
		if len(in.Operands) > 0 {
			target = uint32(in.Operands[0])
		}
		return (*cur).ActionSetAllianceStatus(target, in.Alliance)
	case ir.SetObj:
		return (*cur).ActionSetMissionObjectives(in.StringID)
	case ir.PauseGame:
		if in.Imm != 0 {
			return (*cur).ActionPauseGame()
		}
		return (*cur).ActionUnpauseGame()
	case ir.NextScen:
		return (*cur).ActionSetNextScenario(in.StringID)
	case ir.Leaderboard:
		goalQuantity := uint32(0)
		if len(in.Operands) > 0 {
			goalQuantity = uint32(in.Operands[0])
		}
		return (*cur).ActionLeaderboard(in.LeaderboardT, in.UnitID, in.StringID, in.Imm != 0, goalQuantity)
	case ir.LeaderboardCpu:
		state := chk.Disable
		if in.Imm != 0 {
			state = chk.Enable
		}
		return (*cur).ActionLeaderboardComputerPlayers(state)
	case ir.PlayWAV:
		return (*cur).ActionPlayWAV(in.WavID, in.Milliseconds)
	}

	return newError(MalformedIR, in.Index, "unhandled instruction kind %d", in.Kind)
}

func (g *Generator) lowerPush(in *ir.Instruction, cur **trigbuild.Builder, nextAddress *int) error {
	if in.RegA < 0 {
		stackTop := g.stackPointer
		g.stackPointer--
		return (*cur).ActionSetReg(stackTop, in.Imm)
	}

	retAddress := *nextAddress
	*nextAddress++

	stackTop := g.stackPointer
	g.stackPointer--
	copyAddress, err := g.codeGenCopyReg(stackTop, in.RegA, nextAddress, retAddress)
	if err != nil {
		return err
	}

	var es errset
	es.try((*cur).ActionSetReg(regmap.CopyStorage, 0))
	es.try((*cur).ActionJumpTo(copyAddress))
	if es.err != nil {
		return es.err
	}
	g.push(*cur)
	*cur = trigbuild.New(retAddress, g.owner, g.regs)
	return nil
}

func (g *Generator) lowerPop(in *ir.Instruction, cur **trigbuild.Builder, nextAddress *int) error {
	if in.RegA < 0 {
		g.stackPointer++
		return nil
	}

	regID := g.resolveReg(in.RegA)
	copyAddress := *nextAddress
	*nextAddress++
	g.stackPointer++
	stackTop := g.stackPointer

	var es errset
	es.try((*cur).ActionSetReg(regID, 0))
	es.try((*cur).ActionJumpTo(copyAddress))
	if es.err != nil {
		return es.err
	}
	g.push(*cur)

	for i := g.copyBatchSize; i >= 1; i /= 2 {
		b := trigbuild.New(copyAddress, g.owner, g.regs)
		var es2 errset
		es2.try(b.CondTestReg(stackTop, i, chk.AtLeast))
		es2.try(b.ActionDecReg(stackTop, i))
		es2.try(b.ActionIncReg(regID, i))
		if es2.err != nil {
			return es2.err
		}
		g.push(b)
	}

	*cur = trigbuild.New(copyAddress, g.owner, g.regs)
	return (*cur).CondTestReg(stackTop, 0, chk.Exactly)
}

func (g *Generator) lowerCopyReg(in *ir.Instruction, cur **trigbuild.Builder, nextAddress *int) error {
	retAddress := *nextAddress
	*nextAddress++

	dst := g.resolveReg(in.RegA)
	src := g.resolveReg(in.RegB)
	copyAddress, err := g.codeGenCopyReg(dst, src, nextAddress, retAddress)
	if err != nil {
		return err
	}

	var es errset
	es.try((*cur).ActionSetReg(regmap.CopyStorage, 0))
	es.try((*cur).ActionJumpTo(copyAddress))
	if es.err != nil {
		return es.err
	}
	g.push(*cur)
	*cur = trigbuild.New(retAddress, g.owner, g.regs)
	return nil
}

func (g *Generator) lowerAdd(in *ir.Instruction, cur **trigbuild.Builder, nextAddress *int) error {
	addAddress := *nextAddress
	*nextAddress++
	if err := (*cur).ActionJumpTo(addAddress); err != nil {
		return err
	}
	g.push(*cur)

	retAddress := *nextAddress
	*nextAddress++
	*cur = trigbuild.New(retAddress, g.owner, g.regs)

	g.stackPointer++
	left := g.stackPointer
	right := g.stackPointer + 1

	for i := g.copyBatchSize; i >= 1; i /= 2 {
		b := trigbuild.New(addAddress, g.owner, g.regs)
		var es errset
		es.try(b.CondTestReg(left, i, chk.AtLeast))
		es.try(b.ActionDecReg(left, i))
		es.try(b.ActionIncReg(right, i))
		if es.err != nil {
			return es.err
		}
		g.push(b)
	}

	finish := trigbuild.New(addAddress, g.owner, g.regs)
	var es errset
	es.try(finish.CondTestReg(left, 0, chk.Exactly))
	es.try(finish.ActionJumpTo(retAddress))
	if es.err != nil {
		return es.err
	}
	g.push(finish)
	return nil
}

func (g *Generator) lowerSub(in *ir.Instruction, cur **trigbuild.Builder, nextAddress *int) error {
	subAddress := *nextAddress
	*nextAddress++

	var es0 errset
	es0.try((*cur).ActionSetSwitch(SwitchArithmeticUnderflow, chk.ClearSwitch))
	es0.try((*cur).ActionJumpTo(subAddress))
	if es0.err != nil {
		return es0.err
	}
	g.push(*cur)

	retAddress := *nextAddress
	*nextAddress++
	*cur = trigbuild.New(retAddress, g.owner, g.regs)

	g.stackPointer++
	left := g.stackPointer
	right := g.stackPointer + 1

	for i := g.copyBatchSize; i >= 1; i /= 2 {
		b := trigbuild.New(subAddress, g.owner, g.regs)
		var es errset
		es.try(b.CondTestReg(left, i, chk.AtLeast))
		es.try(b.CondTestReg(right, i, chk.AtLeast))
		es.try(b.ActionDecReg(left, i))
		es.try(b.ActionDecReg(right, i))
		if es.err != nil {
			return es.err
		}
		g.push(b)
	}

	finish := trigbuild.New(subAddress, g.owner, g.regs)
	var es errset
	es.try(finish.CondTestReg(left, 0, chk.Exactly))
	es.try(finish.ActionSetSwitch(SwitchArithmeticUnderflow, chk.ClearSwitch))
	es.try(finish.ActionJumpTo(retAddress))
	if es.err != nil {
		return es.err
	}
	g.push(finish)

	underflow := trigbuild.New(subAddress, g.owner, g.regs)
	var es2 errset
	es2.try(underflow.CondTestReg(left, 1, chk.AtLeast))
	es2.try(underflow.CondTestReg(right, 0, chk.Exactly))
	es2.try(underflow.ActionSetSwitch(SwitchArithmeticUnderflow, chk.SetSwitch))
	es2.try(underflow.ActionJumpTo(retAddress))
	if es2.err != nil {
		return es2.err
	}
	g.push(underflow)
	return nil
}

func (g *Generator) lowerMul(in *ir.Instruction, cur **trigbuild.Builder, nextAddress *int) error {
	g.stackPointer++
	left := g.stackPointer
	right := g.stackPointer + 1

	mulAddress := *nextAddress + 1
	mul2Address := *nextAddress + 2
	mul3Address := *nextAddress + 3
	*nextAddress += 4

	var es0 errset
	es0.try((*cur).ActionSetReg(regmap.MulLeft, 0))
	es0.try((*cur).ActionSetReg(regmap.MulRight, 0))
	es0.try((*cur).ActionJumpTo(mulAddress))
	if es0.err != nil {
		return es0.err
	}
	g.push(*cur)

	retAddress := *nextAddress
	*nextAddress++
	*cur = trigbuild.New(retAddress, g.owner, g.regs)

	for i := g.copyBatchSize; i >= 1; i /= 2 {
		b := trigbuild.New(mulAddress, g.owner, g.regs)
		var es errset
		es.try(b.CondTestReg(left, i, chk.AtLeast))
		es.try(b.ActionDecReg(left, i))
		es.try(b.ActionIncReg(regmap.MulLeft, i))
		if es.err != nil {
			return es.err
		}
		g.push(b)
	}
	moveLeftFinish := trigbuild.New(mulAddress, g.owner, g.regs)
	var es1 errset
	es1.try(moveLeftFinish.CondTestReg(left, 0, chk.Exactly))
	es1.try(moveLeftFinish.ActionJumpTo(mul2Address))
	if es1.err != nil {
		return es1.err
	}
	g.push(moveLeftFinish)

	for i := g.copyBatchSize; i >= 1; i /= 2 {
		b := trigbuild.New(mul2Address, g.owner, g.regs)
		var es errset
		es.try(b.CondTestReg(right, i, chk.AtLeast))
		es.try(b.ActionDecReg(right, i))
		es.try(b.ActionIncReg(regmap.MulRight, i))
		if es.err != nil {
			return es.err
		}
		g.push(b)
	}
	moveRightFinish := trigbuild.New(mul2Address, g.owner, g.regs)
	var es2 errset
	es2.try(moveRightFinish.CondTestReg(right, 0, chk.Exactly))
	es2.try(moveRightFinish.ActionSetReg(regmap.IndirectJumpAddress, mul3Address))
	es2.try(moveRightFinish.ActionJumpTo(g.multiplyAddress))
	if es2.err != nil {
		return es2.err
	}
	g.push(moveRightFinish)

	for i := g.copyBatchSize; i >= 1; i /= 2 {
		b := trigbuild.New(mul3Address, g.owner, g.regs)
		var es errset
		es.try(b.CondTestReg(regmap.MulRight, i, chk.AtLeast))
		es.try(b.ActionDecReg(regmap.MulRight, i))
		es.try(b.ActionIncReg(right, i))
		if es.err != nil {
			return es.err
		}
		g.push(b)
	}
	pushDone := trigbuild.New(mul3Address, g.owner, g.regs)
	var es3 errset
	es3.try(pushDone.CondTestReg(regmap.MulRight, 0, chk.Exactly))
	es3.try(pushDone.ActionJumpTo(retAddress))
	if es3.err != nil {
		return es3.err
	}
	g.push(pushDone)
	return nil
}

func (g *Generator) lowerMulConst(in *ir.Instruction, cur **trigbuild.Builder, nextAddress *int) error {
	value := in.Imm
	isOdd := value%2 != 0
	regID := g.stackPointer + 1

	mulAddress := *nextAddress + 1
	mulAddress2 := *nextAddress + 2
	*nextAddress += 3

	var es0 errset
	es0.try((*cur).ActionSetReg(regmap.MulLeft, 0))
	es0.try((*cur).ActionSetReg(regmap.MulRight, 0))
	es0.try((*cur).ActionJumpTo(mulAddress))
	if es0.err != nil {
		return es0.err
	}
	g.push(*cur)

	retAddress := *nextAddress
	*nextAddress++
	*cur = trigbuild.New(retAddress, g.owner, g.regs)

	for i := g.copyBatchSize; i >= 1; i /= 2 {
		b := trigbuild.New(mulAddress, g.owner, g.regs)
		var es errset
		es.try(b.CondTestReg(regID, i, chk.AtLeast))
		es.try(b.ActionDecReg(regID, i))
		es.try(b.ActionIncReg(regmap.MulLeft, i))
		es.try(b.ActionIncReg(regmap.MulRight, i))
		if es.err != nil {
			return es.err
		}
		g.push(b)
	}
	copyFinish := trigbuild.New(mulAddress, g.owner, g.regs)
	var es1 errset
	es1.try(copyFinish.CondTestReg(regID, 0, chk.Exactly))
	es1.try(copyFinish.ActionJumpTo(mulAddress2))
	if es1.err != nil {
		return es1.err
	}
	g.push(copyFinish)

	for i := g.copyBatchSize; i >= 1; i /= 2 {
		b := trigbuild.New(mulAddress2, g.owner, g.regs)
		var es errset
		es.try(b.CondTestReg(regmap.MulLeft, i, chk.AtLeast))
		es.try(b.ActionDecReg(regmap.MulLeft, i))
		es.try(b.ActionIncReg(regID, i*(value&^1)))
		if es.err != nil {
			return es.err
		}
		g.push(b)
	}

	mulFinish := trigbuild.New(mulAddress2, g.owner, g.regs)
	if err := mulFinish.CondTestReg(regmap.MulLeft, 0, chk.Exactly); err != nil {
		return err
	}

	if !isOdd {
		if err := mulFinish.ActionJumpTo(retAddress); err != nil {
			return err
		}
		g.push(mulFinish)
		return nil
	}

	mulAddress3 := *nextAddress
	*nextAddress++
	if err := mulFinish.ActionJumpTo(mulAddress3); err != nil {
		return err
	}
	g.push(mulFinish)

	for i := g.copyBatchSize; i >= 1; i /= 2 {
		b := trigbuild.New(mulAddress3, g.owner, g.regs)
		var es errset
		es.try(b.CondTestReg(regmap.MulRight, i, chk.AtLeast))
		es.try(b.ActionDecReg(regmap.MulRight, i))
		es.try(b.ActionIncReg(regID, i))
		if es.err != nil {
			return es.err
		}
		g.push(b)
	}
	addOddFinish := trigbuild.New(mulAddress3, g.owner, g.regs)
	var es2 errset
	es2.try(addOddFinish.CondTestReg(regmap.MulRight, 0, chk.Exactly))
	es2.try(addOddFinish.ActionJumpTo(retAddress))
	if es2.err != nil {
		return es2.err
	}
	g.push(addOddFinish)
	return nil
}

func (g *Generator) lowerRnd256(in *ir.Instruction, cur **trigbuild.Builder, nextAddress *int) error {
	rndAddress := *nextAddress
	*nextAddress++

	var es0 errset
	for i := 0; i < 8; i++ {
		es0.try((*cur).ActionSetSwitch(SwitchRandom0+i, chk.RandomizeSwitch))
	}
	stackTop := g.stackPointer
	g.stackPointer--
	es0.try((*cur).ActionSetReg(stackTop, 0))
	es0.try((*cur).ActionJumpTo(rndAddress))
	if es0.err != nil {
		return es0.err
	}
	g.push(*cur)

	retAddress := *nextAddress
	*nextAddress++
	*cur = trigbuild.New(retAddress, g.owner, g.regs)

	for i := 0; i < 8; i++ {
		b := trigbuild.New(rndAddress, g.owner, g.regs)
		var es errset
		es.try(b.CondTestSwitch(SwitchRandom0+i, true, 0))
		es.try(b.ActionIncReg(stackTop, 1<<uint(i)))
		if es.err != nil {
			return es.err
		}
		g.push(b)
	}

	finish := trigbuild.New(rndAddress, g.owner, g.regs)
	if err := finish.ActionJumpTo(retAddress); err != nil {
		return err
	}
	g.push(finish)
	return nil
}
