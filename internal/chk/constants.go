// Package chk defines the binary schema of a StarCraft: Brood War scenario's
// TRIG chunk: the fixed-size trigger record and the engine-native condition
// and action kinds a trigger can hold. Every magic number the code generator
// emits into a record is named here once, so the bit-exact layout has a
// single place to check against the engine's on-disk format.
package chk

// TriggerConditionType is the engine's condition opcode (one byte on disk).
type TriggerConditionType uint8

const (
	NoCondition TriggerConditionType = iota
	CountdownTimer
	Command
	Bring
	Accumulate
	Kill
	CommandTheLeast
	CommandTheLeastAt
	CommandTheMost
	CommandsTheMostAt
	MostKills
	LeastKills
	LeastResources
	MostResources
	Score
	Always
	Never
	Opponents
	Deaths
	ElapsedTime
	Switch
)

// TriggerActionType is the engine's action opcode (one byte on disk).
type TriggerActionType uint8

const (
	NoAction TriggerActionType = iota
	Victory
	Defeat
	PreserveTrigger
	Wait
	PauseGame
	UnpauseGame
	Transmission
	PlayWAV
	DisplayTextMessage
	CenterView
	CreateUnitWithProperties
	SetMissionObjectives
	SetSwitch
	SetCountdownTimer
	RunAIScript
	RunAIScriptAtLocation
	LeaderboardControl
	LeaderboardControlAtLocation
	LeaderboardResources
	LeaderboardKills
	LeaderboardScore
	KillUnit
	KillUnitAtLocation
	RemoveUnit
	RemoveUnitAtLocation
	SetResources
	SetScore
	MinimapPing
	TalkingPortrait
	MuteUnitSpeech
	UnmuteUnitSpeech
	LeaderboardComputerPlayers
	LeaderboardGoalControl
	LeaderboardGoalControlAtLocation
	LeaderboardGoalResources
	LeaderboardGoalKills
	LeaderboardGoalScore
	MoveLocation
	MoveUnit
	LeaderboardGreed
	SetNextScenario
	SetDoodadState
	SetInvincibility
	CreateUnit
	SetDeaths
	Order
	Comment
	GiveUnitsToPlayer
	ModifyUnitHitPoints
	ModifyUnitEnergy
	ModifyUnitShieldPoints
	ModifyUnitHangerCount
	PauseTimer
	UnpauseTimer
	Draw
	SetAllianceStatus
	DisableDebugMode
	EnableDebugMode
)

// TriggerComparisonType is the engine's condition comparator (one byte).
type TriggerComparisonType uint8

const (
	AtLeast TriggerComparisonType = 0
	AtMost  TriggerComparisonType = 1
	Exactly TriggerComparisonType = 10

	SwitchSet     TriggerComparisonType = 2
	SwitchCleared TriggerComparisonType = 3
)

// TriggerActionState is the "modifier"/state byte shared by set/toggle
// actions (SetTo, Add, Subtract for quantities; Set/Clear/Toggle/Randomize
// for switches; enable/disable for orders).
type TriggerActionState uint8

const (
	SetTo TriggerActionState = 7
	Add   TriggerActionState = 8
	Subtract TriggerActionState = 9

	SetSwitch       TriggerActionState = 4
	ClearSwitch     TriggerActionState = 5
	ToggleSwitch    TriggerActionState = 6
	RandomizeSwitch TriggerActionState = 11

	Enable  TriggerActionState = 4
	Disable TriggerActionState = 5
	Move    TriggerActionState = 2
)

// ResourceType selects ore, gas or both for resource conditions/actions.
type ResourceType uint8

const (
	Ore ResourceType = iota
	Gas
	OreAndGas
)

// ScoreType selects which per-player score column a Score condition/action
// reads or writes.
type ScoreType uint8

const (
	ScoreTotal ScoreType = iota
	ScoreUnitsTotal
	ScoreBuildingsTotal
	ScoreUnitsAndBuildings
	ScoreKills
	ScoreRazings
	ScoreKillsAndRazings
	ScoreCustom
)

// AllianceStatus is the SetAllianceStatus modifier.
type AllianceStatus uint8

const (
	AllianceEnemy AllianceStatus = iota
	AllianceAlly
	AllianceAlliedVictory
)

// EndGameType selects which end-game action a EndGame instruction lowers to.
type EndGameType uint8

const (
	EndGameVictory EndGameType = iota
	EndGameDefeat
	EndGameDraw
)

// ModifyType selects which unit attribute a Modify instruction targets.
type ModifyType uint8

const (
	ModifyHitPoints ModifyType = iota
	ModifyEnergy
	ModifyShieldPoints
	ModifyHangarCount
)

// LeaderboardType selects which leaderboard action family to emit.
type LeaderboardType uint8

const (
	LeaderboardKillsType LeaderboardType = iota
	LeaderboardScoreType
	LeaderboardResourcesType
	LeaderboardGreedType
)

// AnyLocation is the reserved location id meaning "anywhere on the map".
const AnyLocation = 63

// Fixed binary widths of a trigger record and its condition/action slots,
// totalling 2400 bytes per record. The field order and offsets inside a
// slot are this package's own fixed layout; they are not the engine's
// on-disk TRIG field order.
const (
	ConditionsPerTrigger = 16
	ActionsPerTrigger    = 64
	ConditionSize        = 20
	ActionSize           = 32
	ExecutionFlagsSize   = 4
	ExecutionMaskSize    = 28
	TriggerSize          = ExecutionFlagsSize + ExecutionMaskSize +
		ConditionsPerTrigger*ConditionSize + ActionsPerTrigger*ActionSize // 2400
)

// ConditionEnabledFlag/ActionEnabledFlag are the fixed per-record "enabled"
// flag the original engine expects set on every populated condition (16) or
// action (4) slot.
const (
	ConditionEnabledFlag = 16
	ActionEnabledFlag    = 4

	// conditionEnabledFlag/actionEnabledFlag are unexported aliases kept for
	// this package's own internal use.
	conditionEnabledFlag = ConditionEnabledFlag
	actionEnabledFlag    = ActionEnabledFlag
)
