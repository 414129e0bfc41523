package trigbuild

import "github.com/mna/langums/internal/chk"

// The engine action kinds below have no counterpart in the retrieved
// original_source/triggerbuilder.cpp (that file only covers the subset the
// original compiler happened to reach through named builder methods; other
// call sites built these actions inline). They're added here, in the same
// style, so every chk.TriggerActionType this repo targets goes through the
// builder rather than being constructed ad hoc in the code generator.

// ActionSetMissionObjectives replaces the mission objectives text.
func (b *Builder) ActionSetMissionObjectives(stringID uint32) error {
	a, err := b.nextActionSlot()
	if err != nil {
		return err
	}
	a.Kind = chk.SetMissionObjectives
	a.StringID = stringID + 1
	a.Flags = chk.ActionEnabledFlag
	return nil
}

// ActionSetNextScenario points the campaign at the next scenario file.
func (b *Builder) ActionSetNextScenario(stringID uint32) error {
	a, err := b.nextActionSlot()
	if err != nil {
		return err
	}
	a.Kind = chk.SetNextScenario
	a.StringID = stringID + 1
	a.Flags = chk.ActionEnabledFlag
	return nil
}

// ActionLeaderboardComputerPlayers shows/hides computer players on the
// leaderboard.
func (b *Builder) ActionLeaderboardComputerPlayers(state chk.TriggerActionState) error {
	a, err := b.nextActionSlot()
	if err != nil {
		return err
	}
	a.Kind = chk.LeaderboardComputerPlayers
	a.Modifier = uint8(state)
	a.Flags = chk.ActionEnabledFlag
	return nil
}

// ActionLeaderboardGreed switches the leaderboard to greed (resource race)
// mode.
func (b *Builder) ActionLeaderboardGreed(quantity uint32) error {
	a, err := b.nextActionSlot()
	if err != nil {
		return err
	}
	a.Kind = chk.LeaderboardGreed
	a.Arg0 = quantity
	a.Flags = chk.ActionEnabledFlag
	return nil
}

// leaderboardKindFor maps a LeaderboardType plus "is a goal" flag to the
// matching engine action kind: the live or goal variant of kills, score or
// resources, and of control for any other type.
func leaderboardKindFor(lt chk.LeaderboardType, isGoal bool) chk.TriggerActionType {
	switch lt {
	case chk.LeaderboardKillsType:
		if isGoal {
			return chk.LeaderboardGoalKills
		}
		return chk.LeaderboardKills
	case chk.LeaderboardScoreType:
		if isGoal {
			return chk.LeaderboardGoalScore
		}
		return chk.LeaderboardScore
	case chk.LeaderboardResourcesType:
		if isGoal {
			return chk.LeaderboardGoalResources
		}
		return chk.LeaderboardResources
	default:
		if isGoal {
			return chk.LeaderboardGoalControl
		}
		return chk.LeaderboardControl
	}
}

// ActionLeaderboard shows the per-player ranking for the given leaderboard
// type. unitID selects the tracked unit for the "control" family; stringID
// is the leaderboard title; isGoal requests the "goal" (target value)
// variant rather than the live-ranking variant.
func (b *Builder) ActionLeaderboard(lt chk.LeaderboardType, unitID uint16, stringID uint32, isGoal bool, goalQuantity uint32) error {
	a, err := b.nextActionSlot()
	if err != nil {
		return err
	}
	a.Kind = leaderboardKindFor(lt, isGoal)
	a.Arg1 = unitID
	a.StringID = stringID + 1
	a.Flags = chk.ActionEnabledFlag
	if isGoal {
		a.Arg0 = goalQuantity
	}
	return nil
}

// ActionTransmission plays a WAV-backed unit transmission: talking
// portrait, message text and sound together, optionally preceded by
// centering the view on a unit/location.
func (b *Builder) ActionTransmission(unitID uint16, wavStringID, textStringID, durationMs uint32, locationID uint32) error {
	a, err := b.nextActionSlot()
	if err != nil {
		return err
	}
	a.Kind = chk.Transmission
	a.SourceLocation = locationID + 1
	a.WavStringID = wavStringID + 1
	a.StringID = textStringID + 1
	a.Milliseconds = durationMs
	a.Arg1 = unitID
	a.Flags = chk.ActionEnabledFlag
	return nil
}
