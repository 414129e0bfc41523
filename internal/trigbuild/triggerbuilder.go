// Package trigbuild assembles chk.Trigger records one condition/action slot
// at a time: the thin layer between the code generator's instruction-kind
// lowering switch and the raw, fixed-width trigger record format.
package trigbuild

import (
	"fmt"

	"github.com/mna/langums/internal/chk"
	"github.com/mna/langums/internal/regmap"
)

// Builder accumulates conditions and actions into one logical trigger. Its
// primary chk.Trigger has 16 condition and 64 action slots; adding past
// either limit returns an error. AddSecondary folds in extra physical
// triggers (e.g. the second half of a "not equal" test), and GetTriggers
// returns all of them in emission order.
type Builder struct {
	address       int
	hasChanges    bool
	nextCondition int
	nextAction    int
	trigger       chk.Trigger
	secondaries   []chk.Trigger
	regs          *regmap.Map
}

// New starts a builder for the trigger at the given instruction-counter
// address, owned by playerID (1-based). A negative address means "no
// instruction-counter gate" (used for Event and indirect-jump triggers). The new
// trigger always opens with a PreserveTrigger action so it survives past
// its first evaluation.
func New(address int, playerID uint8, regs *regmap.Map) *Builder {
	b := &Builder{address: address, regs: regs}
	b.trigger.SetOwner(playerID)

	if address >= 0 {
		// the error is unreachable here: InstructionCounter is always the
		// first reserved handle, present in every register map build.
		_ = b.CondTestReg(regmap.InstructionCounter, address, chk.Exactly)
	}
	b.ActionPreserveTrigger()
	b.hasChanges = false

	return b
}

// Address returns the instruction-counter address this builder was opened
// for.
func (b *Builder) Address() int { return b.address }

// LastActionIndex returns the slot index of the most recently added action
// on the primary trigger, or -1 when it has none.
func (b *Builder) LastActionIndex() int { return b.nextAction - 1 }

// HasChanges reports whether any condition or action beyond the
// constructor's own instruction-counter gate and PreserveTrigger has been
// added.
func (b *Builder) HasChanges() bool { return b.hasChanges }

// SetOwner reassigns which player executes the (primary) trigger.
func (b *Builder) SetOwner(playerID uint8) { b.trigger.SetOwner(playerID) }

// SetExecuteForAllPlayers makes the (primary) trigger run for every human
// and computer player slot.
func (b *Builder) SetExecuteForAllPlayers() { b.trigger.ExecuteForAllPlayers() }

// AddSecondary folds another builder's trigger(s) into this one's output as
// additional physical triggers sharing this builder's logical identity.
func (b *Builder) AddSecondary(other *Builder) {
	b.secondaries = append(b.secondaries, other.trigger)
	b.secondaries = append(b.secondaries, other.secondaries...)
	b.hasChanges = b.hasChanges || other.hasChanges
}

// GetTriggers returns every physical trigger this builder has accumulated,
// primary first.
func (b *Builder) GetTriggers() []chk.Trigger {
	out := make([]chk.Trigger, 0, 1+len(b.secondaries))
	out = append(out, b.trigger)
	out = append(out, b.secondaries...)
	return out
}

func (b *Builder) nextConditionSlot() (*chk.Condition, error) {
	if b.nextCondition >= chk.ConditionsPerTrigger {
		return nil, fmt.Errorf("trigbuild: trigger at address %d has no free condition slots", b.address)
	}
	c := &b.trigger.Conditions[b.nextCondition]
	b.nextCondition++
	b.hasChanges = true
	return c, nil
}

func (b *Builder) nextActionSlot() (*chk.Action, error) {
	if b.nextAction >= chk.ActionsPerTrigger {
		return nil, fmt.Errorf("trigbuild: trigger at address %d has no free action slots", b.address)
	}
	a := &b.trigger.Actions[b.nextAction]
	b.nextAction++
	b.hasChanges = true
	return a, nil
}

// --- conditions ---

// CondTestReg emits the death-counter comparison every register read
// lowers to: "does player P's death count for unit type U satisfy
// comparison against value".
func (b *Builder) CondTestReg(regID int, value int, comparison chk.TriggerComparisonType) error {
	def, err := b.regs.Lookup(regID)
	if err != nil {
		return err
	}
	c, err := b.nextConditionSlot()
	if err != nil {
		return err
	}
	c.Comparison = comparison
	c.Kind = chk.Deaths
	c.Quantity = uint32(value)
	c.Flags = chk.ConditionEnabledFlag
	c.Player = uint32(def.PlayerID)
	c.UnitID = uint16(def.UnitType)
	return nil
}

// CondTestSwitch emits a boolean switch test, owned by the registers'
// owning player.
func (b *Builder) CondTestSwitch(switchID int, expectedState bool, registersOwner uint32) error {
	c, err := b.nextConditionSlot()
	if err != nil {
		return err
	}
	c.Arg0 = uint16(switchID)
	if expectedState {
		c.Comparison = chk.SwitchSet
	} else {
		c.Comparison = chk.SwitchCleared
	}
	c.Kind = chk.Switch
	c.Flags = chk.ConditionEnabledFlag
	c.Player = registersOwner
	return nil
}

// CondAlways emits an unconditionally-true condition.
func (b *Builder) CondAlways() error {
	c, err := b.nextConditionSlot()
	if err != nil {
		return err
	}
	c.Kind = chk.Always
	c.Flags = chk.ConditionEnabledFlag
	return nil
}

// CondBring emits a "bring N units of type to location" condition.
func (b *Builder) CondBring(playerID uint32, comparison chk.TriggerComparisonType, unitID uint16, locationID, quantity uint32) error {
	c, err := b.nextConditionSlot()
	if err != nil {
		return err
	}
	c.Kind = chk.Bring
	c.UnitID = unitID
	c.Location = locationID + 1
	c.Quantity = quantity
	c.Comparison = comparison
	c.Player = playerID
	c.Flags = chk.ConditionEnabledFlag
	return nil
}

// CondAccumulate emits an ore/gas/both resource threshold condition.
func (b *Builder) CondAccumulate(playerID uint32, comparison chk.TriggerComparisonType, resource chk.ResourceType, quantity uint32) error {
	c, err := b.nextConditionSlot()
	if err != nil {
		return err
	}
	c.Kind = chk.Accumulate
	c.Arg0 = uint16(resource)
	c.Quantity = quantity
	c.Comparison = comparison
	c.Player = playerID
	c.Flags = chk.ConditionEnabledFlag
	return nil
}

// CondLeastResources emits the "this player has the least of resource"
// condition.
func (b *Builder) CondLeastResources(playerID uint32, resource chk.ResourceType) error {
	c, err := b.nextConditionSlot()
	if err != nil {
		return err
	}
	c.Kind = chk.LeastResources
	c.Arg0 = uint16(resource)
	c.Player = playerID
	c.Flags = chk.ConditionEnabledFlag
	return nil
}

// CondMostResources emits the "this player has the most of resource"
// condition.
func (b *Builder) CondMostResources(playerID uint32, resource chk.ResourceType) error {
	c, err := b.nextConditionSlot()
	if err != nil {
		return err
	}
	c.Kind = chk.MostResources
	c.Arg0 = uint16(resource)
	c.Player = playerID
	c.Flags = chk.ConditionEnabledFlag
	return nil
}

// CondElapsedTime emits an elapsed-game-time condition.
func (b *Builder) CondElapsedTime(comparison chk.TriggerComparisonType, quantity uint32) error {
	c, err := b.nextConditionSlot()
	if err != nil {
		return err
	}
	c.Kind = chk.ElapsedTime
	c.Quantity = quantity
	c.Comparison = comparison
	c.Flags = chk.ConditionEnabledFlag
	return nil
}

// CondCommands emits a "commands N units of type" condition.
func (b *Builder) CondCommands(playerID uint32, comparison chk.TriggerComparisonType, unitID uint16, quantity uint32) error {
	c, err := b.nextConditionSlot()
	if err != nil {
		return err
	}
	c.Kind = chk.Command
	c.UnitID = unitID
	c.Quantity = quantity
	c.Comparison = comparison
	c.Player = playerID
	c.Flags = chk.ConditionEnabledFlag
	return nil
}

// CondCommandsLeast emits "commands the least of unit type", optionally
// restricted to a location (locationID < 0 means map-wide).
func (b *Builder) CondCommandsLeast(playerID uint32, unitID uint16, locationID int) error {
	c, err := b.nextConditionSlot()
	if err != nil {
		return err
	}
	if locationID < 0 {
		c.Kind = chk.CommandTheLeast
	} else {
		c.Kind = chk.CommandTheLeastAt
		c.Location = uint32(locationID) + 1
	}
	c.UnitID = unitID
	c.Player = playerID
	c.Flags = chk.ConditionEnabledFlag
	return nil
}

// CondCommandsMost emits "commands the most of unit type", optionally
// restricted to a location.
func (b *Builder) CondCommandsMost(playerID uint32, unitID uint16, locationID int) error {
	c, err := b.nextConditionSlot()
	if err != nil {
		return err
	}
	if locationID < 0 {
		c.Kind = chk.CommandTheMost
	} else {
		c.Kind = chk.CommandsTheMostAt
		c.Location = uint32(locationID) + 1
	}
	c.UnitID = unitID
	c.Player = playerID
	c.Flags = chk.ConditionEnabledFlag
	return nil
}

// CondKills emits a "killed N units of type" condition.
func (b *Builder) CondKills(playerID uint32, comparison chk.TriggerComparisonType, unitID uint16, quantity uint32) error {
	c, err := b.nextConditionSlot()
	if err != nil {
		return err
	}
	c.Kind = chk.Kill
	c.UnitID = unitID
	c.Quantity = quantity
	c.Comparison = comparison
	c.Player = playerID
	c.Flags = chk.ConditionEnabledFlag
	return nil
}

// CondKillsLeast emits "has the fewest kills of unit type".
func (b *Builder) CondKillsLeast(playerID uint32, unitID uint16) error {
	c, err := b.nextConditionSlot()
	if err != nil {
		return err
	}
	c.Kind = chk.LeastKills
	c.UnitID = unitID
	c.Player = playerID
	c.Flags = chk.ConditionEnabledFlag
	return nil
}

// CondKillsMost emits "has the most kills of unit type".
func (b *Builder) CondKillsMost(playerID uint32, unitID uint16) error {
	c, err := b.nextConditionSlot()
	if err != nil {
		return err
	}
	c.Kind = chk.MostKills
	c.UnitID = unitID
	c.Player = playerID
	c.Flags = chk.ConditionEnabledFlag
	return nil
}

// CondDeaths emits a raw death-counter comparison against a real unit
// type id (not a register cell) - used by user-facing "deaths" IR
// conditions, distinct from CondTestReg's register reads.
func (b *Builder) CondDeaths(playerID uint32, comparison chk.TriggerComparisonType, unitID uint16, quantity uint32) error {
	c, err := b.nextConditionSlot()
	if err != nil {
		return err
	}
	c.Kind = chk.Deaths
	c.UnitID = unitID
	c.Quantity = quantity
	c.Comparison = comparison
	c.Player = playerID
	c.Flags = chk.ConditionEnabledFlag
	return nil
}

// CondCountdown emits a countdown-timer comparison.
func (b *Builder) CondCountdown(comparison chk.TriggerComparisonType, time uint32) error {
	c, err := b.nextConditionSlot()
	if err != nil {
		return err
	}
	c.Kind = chk.CountdownTimer
	c.Quantity = time
	c.Comparison = comparison
	c.Flags = chk.ConditionEnabledFlag
	return nil
}

// CondOpponents emits an "opponents remaining" comparison.
func (b *Builder) CondOpponents(playerID uint32, comparison chk.TriggerComparisonType, quantity uint32) error {
	c, err := b.nextConditionSlot()
	if err != nil {
		return err
	}
	c.Kind = chk.Opponents
	c.Quantity = quantity
	c.Comparison = comparison
	c.Player = playerID
	c.Flags = chk.ConditionEnabledFlag
	return nil
}

// CondScore emits a score-column comparison against a literal quantity.
func (b *Builder) CondScore(playerID uint32, comparison chk.TriggerComparisonType, scoreType chk.ScoreType, quantity uint32) error {
	c, err := b.nextConditionSlot()
	if err != nil {
		return err
	}
	c.Kind = chk.Score
	c.Arg0 = uint16(scoreType)
	c.Quantity = quantity
	c.Comparison = comparison
	c.Player = playerID
	c.Flags = chk.ConditionEnabledFlag
	return nil
}

// CondLowestScore emits "this player has the lowest score" - the
// rank-relative counterpart of CondScore, in the same family as
// CondLeastResources/CondMostResources.
func (b *Builder) CondLowestScore(playerID uint32, scoreType chk.ScoreType) error {
	c, err := b.nextConditionSlot()
	if err != nil {
		return err
	}
	c.Kind = chk.Score
	c.Arg0 = uint16(scoreType)
	c.Comparison = chk.AtMost
	c.Player = playerID
	c.Flags = chk.ConditionEnabledFlag
	return nil
}

// CondHighestScore emits "this player has the highest score". Kept as its
// own method, distinct from CondLowestScore, specifically so the code
// generator can never again call the wrong one for a HiScoreCond IR node.
func (b *Builder) CondHighestScore(playerID uint32, scoreType chk.ScoreType) error {
	c, err := b.nextConditionSlot()
	if err != nil {
		return err
	}
	c.Kind = chk.Score
	c.Arg0 = uint16(scoreType)
	c.Comparison = chk.AtLeast
	c.Player = playerID
	c.Flags = chk.ConditionEnabledFlag
	return nil
}

// CondNever emits an unconditionally-false condition.
func (b *Builder) CondNever() error {
	c, err := b.nextConditionSlot()
	if err != nil {
		return err
	}
	c.Kind = chk.Never
	c.Flags = chk.ConditionEnabledFlag
	return nil
}

// --- actions ---

// ActionSetReg writes a literal value into a register cell.
func (b *Builder) ActionSetReg(regID int, value int) error {
	return b.regAction(regID, value, chk.SetTo)
}

// ActionIncReg adds amount to a register cell.
func (b *Builder) ActionIncReg(regID int, amount int) error {
	return b.regAction(regID, amount, chk.Add)
}

// ActionDecReg subtracts amount from a register cell, clamped at zero by
// the engine's own death-counter semantics.
func (b *Builder) ActionDecReg(regID int, amount int) error {
	return b.regAction(regID, amount, chk.Subtract)
}

func (b *Builder) regAction(regID int, value int, state chk.TriggerActionState) error {
	def, err := b.regs.Lookup(regID)
	if err != nil {
		return err
	}
	a, err := b.nextActionSlot()
	if err != nil {
		return err
	}
	a.Kind = chk.SetDeaths
	a.Modifier = uint8(state)
	a.Flags = chk.ActionEnabledFlag
	a.Player = uint32(def.PlayerID)
	a.Arg0 = uint32(value)
	a.Arg1 = uint16(def.UnitType)
	return nil
}

// ActionDisplayMsg shows a text message to its owning player(s).
func (b *Builder) ActionDisplayMsg(stringID uint32) error {
	a, err := b.nextActionSlot()
	if err != nil {
		return err
	}
	a.Kind = chk.DisplayTextMessage
	a.StringID = stringID + 1
	a.Flags = chk.ActionEnabledFlag
	return nil
}

// ActionJumpTo sets the instruction-counter register, the fundamental
// building block every control-flow lowering (Jmp, JmpIf*, calls) reduces
// to.
func (b *Builder) ActionJumpTo(address int) error {
	return b.ActionSetReg(regmap.InstructionCounter, address)
}

// ActionPreserveTrigger marks the trigger as repeating (not one-shot).
func (b *Builder) ActionPreserveTrigger() error {
	a, err := b.nextActionSlot()
	if err != nil {
		return err
	}
	a.Kind = chk.PreserveTrigger
	return nil
}

// ActionWait emits a blocking delay.
func (b *Builder) ActionWait(milliseconds uint32) error {
	a, err := b.nextActionSlot()
	if err != nil {
		return err
	}
	a.Kind = chk.Wait
	a.Milliseconds = milliseconds
	return nil
}

// ActionComment attaches a comment string, never visible in-game.
func (b *Builder) ActionComment(stringID uint32) error {
	a, err := b.nextActionSlot()
	if err != nil {
		return err
	}
	a.Kind = chk.Comment
	a.StringID = stringID + 1
	a.Flags = chk.ActionEnabledFlag
	return nil
}

// ActionSetSwitch sets, clears, toggles or randomizes a boolean switch.
func (b *Builder) ActionSetSwitch(switchID int, state chk.TriggerActionState) error {
	a, err := b.nextActionSlot()
	if err != nil {
		return err
	}
	a.Kind = chk.SetSwitch
	a.Arg0 = uint32(switchID)
	a.Modifier = uint8(state)
	a.Flags = chk.ActionEnabledFlag
	return nil
}

// ActionCreateUnit spawns quantity units of type at a location.
func (b *Builder) ActionCreateUnit(playerID uint32, unitID uint16, quantity uint8, locationID uint32) error {
	a, err := b.nextActionSlot()
	if err != nil {
		return err
	}
	a.Kind = chk.CreateUnit
	a.SourceLocation = locationID + 1
	a.Player = playerID
	a.Arg1 = unitID
	a.Modifier = quantity
	a.Flags = chk.ActionEnabledFlag
	return nil
}

// ActionKillUnit kills quantity units of type, optionally restricted to a
// location (locationID < 0 means map-wide).
func (b *Builder) ActionKillUnit(playerID uint32, unitID uint16, quantity uint8, locationID int) error {
	a, err := b.nextActionSlot()
	if err != nil {
		return err
	}
	if locationID >= 0 {
		a.Kind = chk.KillUnitAtLocation
		a.SourceLocation = uint32(locationID) + 1
	} else {
		a.Kind = chk.KillUnit
	}
	a.Player = playerID
	a.Arg1 = unitID
	a.Modifier = quantity
	return nil
}

// ActionRemoveUnit removes quantity units of type, optionally restricted
// to a location.
func (b *Builder) ActionRemoveUnit(playerID uint32, unitID uint16, quantity uint8, locationID int) error {
	a, err := b.nextActionSlot()
	if err != nil {
		return err
	}
	if locationID >= 0 {
		a.Kind = chk.RemoveUnitAtLocation
		a.SourceLocation = uint32(locationID) + 1
	} else {
		a.Kind = chk.RemoveUnit
	}
	a.Player = playerID
	a.Arg1 = unitID
	a.Modifier = quantity
	a.Flags = chk.ActionEnabledFlag
	return nil
}

// ActionMoveUnit moves quantity units of type from one location to
// another.
func (b *Builder) ActionMoveUnit(playerID uint32, unitID uint16, quantity uint8, srcLocationID, dstLocationID uint32) error {
	a, err := b.nextActionSlot()
	if err != nil {
		return err
	}
	a.Kind = chk.MoveUnit
	a.SourceLocation = srcLocationID + 1
	a.Arg0 = dstLocationID + 1
	a.Player = playerID
	a.Arg1 = unitID
	a.Modifier = quantity
	a.Flags = chk.ActionEnabledFlag
	return nil
}

// ActionOrderUnit issues a move/attack/patrol order to units of type from
// one location to another.
func (b *Builder) ActionOrderUnit(playerID uint32, unitID uint16, order chk.TriggerActionState, srcLocationID, dstLocationID uint32) error {
	a, err := b.nextActionSlot()
	if err != nil {
		return err
	}
	a.Kind = chk.Order
	a.SourceLocation = srcLocationID + 1
	a.Arg0 = dstLocationID + 1
	a.Player = playerID
	a.Arg1 = unitID
	a.Modifier = uint8(order)
	a.Flags = chk.ActionEnabledFlag
	return nil
}

// ActionModifyUnitHP sets units of type at a location to quantity percent
// hit points (amount is the request's raw percentage/value argument).
func (b *Builder) ActionModifyUnitHP(playerID uint32, unitID uint16, quantity uint8, amount, locationID uint32) error {
	return b.modifyUnit(chk.ModifyUnitHitPoints, playerID, unitID, quantity, amount, locationID)
}

// ActionModifyUnitEnergy is ActionModifyUnitHP's energy-stat counterpart.
func (b *Builder) ActionModifyUnitEnergy(playerID uint32, unitID uint16, quantity uint8, amount, locationID uint32) error {
	return b.modifyUnit(chk.ModifyUnitEnergy, playerID, unitID, quantity, amount, locationID)
}

// ActionModifyUnitShields is ActionModifyUnitHP's shield-stat counterpart.
func (b *Builder) ActionModifyUnitShields(playerID uint32, unitID uint16, quantity uint8, amount, locationID uint32) error {
	return b.modifyUnit(chk.ModifyUnitShieldPoints, playerID, unitID, quantity, amount, locationID)
}

// ActionModifyUnitHangar is ActionModifyUnitHP's hangar-count counterpart
// (carrier/reaver interceptor or scarab count).
func (b *Builder) ActionModifyUnitHangar(playerID uint32, unitID uint16, quantity uint8, amount, locationID uint32) error {
	return b.modifyUnit(chk.ModifyUnitHangerCount, playerID, unitID, quantity, amount, locationID)
}

func (b *Builder) modifyUnit(kind chk.TriggerActionType, playerID uint32, unitID uint16, quantity uint8, amount, locationID uint32) error {
	a, err := b.nextActionSlot()
	if err != nil {
		return err
	}
	a.Kind = kind
	a.SourceLocation = locationID + 1
	a.Player = playerID
	a.Arg0 = amount
	a.Arg1 = unitID
	a.Modifier = quantity
	a.Flags = chk.ActionEnabledFlag
	return nil
}

// ActionGiveUnits transfers quantity units of type at a location from one
// player to another.
func (b *Builder) ActionGiveUnits(srcPlayerID, dstPlayerID uint32, unitID uint16, quantity uint8, locationID uint32) error {
	a, err := b.nextActionSlot()
	if err != nil {
		return err
	}
	a.Kind = chk.GiveUnitsToPlayer
	a.SourceLocation = locationID + 1
	a.Player = srcPlayerID
	a.Arg0 = dstPlayerID
	a.Arg1 = unitID
	a.Modifier = quantity
	a.Flags = chk.ActionEnabledFlag
	return nil
}

// ActionMoveLocation recenters a location on units of type owned by
// playerID.
func (b *Builder) ActionMoveLocation(playerID uint32, unitID uint16, srcLocationID, dstLocationID uint32) error {
	a, err := b.nextActionSlot()
	if err != nil {
		return err
	}
	a.Kind = chk.MoveLocation
	a.SourceLocation = srcLocationID + 1
	a.Arg0 = dstLocationID + 1
	a.Player = playerID
	a.Arg1 = unitID
	a.Flags = chk.ActionEnabledFlag
	return nil
}

// ActionVictory ends the scenario in victory for the trigger's owner(s).
func (b *Builder) ActionVictory() error { return b.bareAction(chk.Victory) }

// ActionDefeat ends the scenario in defeat for the trigger's owner(s).
func (b *Builder) ActionDefeat() error { return b.bareAction(chk.Defeat) }

// ActionDraw ends the scenario in a draw for everyone.
func (b *Builder) ActionDraw() error { return b.bareAction(chk.Draw) }

func (b *Builder) bareAction(kind chk.TriggerActionType) error {
	a, err := b.nextActionSlot()
	if err != nil {
		return err
	}
	a.Kind = kind
	a.Flags = chk.ActionEnabledFlag
	return nil
}

// ActionCenterView scrolls the owning player's viewport to a location.
func (b *Builder) ActionCenterView(locationID uint32) error {
	a, err := b.nextActionSlot()
	if err != nil {
		return err
	}
	a.Kind = chk.CenterView
	a.SourceLocation = locationID + 1
	a.Flags = chk.ActionEnabledFlag
	return nil
}

// ActionPing drops a minimap ping at a location.
func (b *Builder) ActionPing(locationID uint32) error {
	a, err := b.nextActionSlot()
	if err != nil {
		return err
	}
	a.Kind = chk.MinimapPing
	a.SourceLocation = locationID + 1
	a.Flags = chk.ActionEnabledFlag
	return nil
}

// ActionPlayWAV plays a sound file for the trigger's owner(s).
func (b *Builder) ActionPlayWAV(wavStringID uint32, durationMs uint32) error {
	a, err := b.nextActionSlot()
	if err != nil {
		return err
	}
	a.Kind = chk.PlayWAV
	a.WavStringID = wavStringID + 1
	a.Milliseconds = durationMs
	a.Flags = chk.ActionEnabledFlag
	return nil
}

// ActionSetResources sets, adds to, or subtracts from a player's resource
// stockpile.
func (b *Builder) ActionSetResources(playerID uint32, quantity uint32, action chk.TriggerActionState, resource chk.ResourceType) error {
	a, err := b.nextActionSlot()
	if err != nil {
		return err
	}
	a.Kind = chk.SetResources
	a.Arg1 = uint16(resource)
	a.Player = playerID
	a.Modifier = uint8(action)
	a.Arg0 = quantity
	return nil
}

// ActionSetScore sets, adds to, or subtracts from a score column.
func (b *Builder) ActionSetScore(playerID uint32, quantity uint32, action chk.TriggerActionState, scoreType chk.ScoreType) error {
	a, err := b.nextActionSlot()
	if err != nil {
		return err
	}
	a.Kind = chk.SetScore
	a.Arg1 = uint16(scoreType)
	a.Player = playerID
	a.Modifier = uint8(action)
	a.Arg0 = quantity
	return nil
}

// ActionSetDeaths writes a real unit type's death counter directly - the
// user-facing counterpart of regAction's register writes.
func (b *Builder) ActionSetDeaths(playerID uint32, unitID uint16, quantity uint32, action chk.TriggerActionState) error {
	a, err := b.nextActionSlot()
	if err != nil {
		return err
	}
	a.Kind = chk.SetDeaths
	a.Arg1 = unitID
	a.Player = playerID
	a.Modifier = uint8(action)
	a.Arg0 = quantity
	return nil
}

// ActionSetCountdown sets or adjusts the countdown timer.
func (b *Builder) ActionSetCountdown(time uint32, action chk.TriggerActionState) error {
	a, err := b.nextActionSlot()
	if err != nil {
		return err
	}
	a.Kind = chk.SetCountdownTimer
	a.Milliseconds = time
	a.Modifier = uint8(action)
	return nil
}

// ActionPauseCountdown pauses the countdown timer.
func (b *Builder) ActionPauseCountdown() error { return b.bareAction(chk.PauseTimer) }

// ActionUnpauseCountdown resumes the countdown timer.
func (b *Builder) ActionUnpauseCountdown() error { return b.bareAction(chk.UnpauseTimer) }

// ActionPauseGame pauses the whole game.
func (b *Builder) ActionPauseGame() error { return b.bareAction(chk.PauseGame) }

// ActionUnpauseGame resumes the whole game.
func (b *Builder) ActionUnpauseGame() error { return b.bareAction(chk.UnpauseGame) }

// ActionMuteUnitSpeech silences unit acknowledgement sounds.
func (b *Builder) ActionMuteUnitSpeech() error { return b.bareAction(chk.MuteUnitSpeech) }

// ActionUnmuteUnitSpeech restores unit acknowledgement sounds.
func (b *Builder) ActionUnmuteUnitSpeech() error { return b.bareAction(chk.UnmuteUnitSpeech) }

// ActionTalkingPortrait shows a unit's talking portrait for a duration.
func (b *Builder) ActionTalkingPortrait(unitID uint16, time uint32) error {
	a, err := b.nextActionSlot()
	if err != nil {
		return err
	}
	a.Kind = chk.TalkingPortrait
	a.Milliseconds = time
	a.Arg1 = unitID
	return nil
}

// ActionSetDoodadState enables/disables a doodad unit at a location.
func (b *Builder) ActionSetDoodadState(playerID uint32, unitID uint16, state chk.TriggerActionState, locationID uint32) error {
	a, err := b.nextActionSlot()
	if err != nil {
		return err
	}
	a.Kind = chk.SetDoodadState
	a.Arg1 = unitID
	a.Player = playerID + 1
	a.SourceLocation = locationID + 1
	a.Modifier = uint8(state)
	return nil
}

// ActionSetInvincible enables/disables invincibility for units of type at
// a location.
func (b *Builder) ActionSetInvincible(playerID uint32, unitID uint16, state chk.TriggerActionState, locationID uint32) error {
	a, err := b.nextActionSlot()
	if err != nil {
		return err
	}
	a.Kind = chk.SetInvincibility
	a.Arg1 = unitID
	a.Player = playerID + 1
	a.SourceLocation = locationID + 1
	a.Modifier = uint8(state)
	return nil
}

// ActionRunAIScript runs a 4-character AI script name for playerID,
// optionally restricted to a location.
func (b *Builder) ActionRunAIScript(playerID uint32, scriptName uint32, locationID int) error {
	a, err := b.nextActionSlot()
	if err != nil {
		return err
	}
	if locationID >= 0 {
		a.Kind = chk.RunAIScriptAtLocation
		a.SourceLocation = uint32(locationID) + 1
	} else {
		a.Kind = chk.RunAIScript
	}
	a.Arg0 = scriptName
	a.Player = playerID + 1
	return nil
}

// ActionSetAllianceStatus sets the trigger owner's alliance status toward
// targetPlayerID.
func (b *Builder) ActionSetAllianceStatus(targetPlayerID uint32, status chk.AllianceStatus) error {
	a, err := b.nextActionSlot()
	if err != nil {
		return err
	}
	a.Kind = chk.SetAllianceStatus
	a.Player = targetPlayerID
	a.Arg1 = uint16(status)
	return nil
}
