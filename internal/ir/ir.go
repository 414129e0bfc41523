// Package ir defines the intermediate representation the code generator
// consumes: a flat, already-resolved instruction stream produced by an
// external front end (lexer, parser, optimizer). This package owns only the
// instruction shape, not how it's produced.
package ir

import "github.com/mna/langums/internal/chk"

// Kind identifies what an Instruction does. The code generator's Pass 3
// lowering switch has one arm per Kind.
type Kind uint8

const (
	Nop Kind = iota

	// stream structure
	Unit     // marks the start of a named unit-of-compilation (function/block)
	UnitProp // a property attached to the enclosing Unit
	Event    // a trigger built once up front, gated on its own condition set

	// conditions (only meaningful nested under an Event)
	BringCond
	AccumCond
	LeastResCond
	MostResCond
	ScoreCond
	HiScoreCond
	LowScoreCond
	TimeCond
	CmdCond
	CmdLeastCond
	CmdMostCond
	KillCond
	KillLeastCond
	KillMostCond
	DeathCond
	CountdownCond
	OpponentsCond

	// control flow
	Jmp
	JmpIfEq
	JmpIfNotEq
	JmpIfGrt
	JmpIfGrtOrEq
	JmpIfLess
	JmpIfLessOrEq
	JmpIfSwNotSet
	JmpIfSwSet

	// stack and register ops
	Push
	Pop
	SetReg
	IncReg
	DecReg
	CopyReg
	Add
	Sub
	Mul
	MulConst
	Div
	Rnd256
	SetSw

	// misc control/query
	ChkPlayers
	IsPresent
	DisplayMsg
	Wait
	Talk
	Transmission

	// unit actions
	Spawn
	Kill
	Remove
	Move
	Order
	Modify
	Give
	MoveLoc

	// scenario-level state
	EndGame
	CenterView
	Ping
	SetResource
	IncResource
	DecResource
	SetScore
	IncScore
	DecScore
	SetCountdown
	AddCountdown
	SubCountdown
	PauseCountdown
	MuteUnitSpeech
	SetDeaths
	IncDeaths
	DecDeaths
	SetDoodad
	SetInvincible
	AIScript
	SetAlly
	SetObj
	PauseGame
	NextScen
	Leaderboard
	LeaderboardCpu
	PlayWAV

	// NumKinds is the count of defined instruction kinds.
	NumKinds
)

// Instruction is one IR op. Not every field is meaningful for every Kind;
// which ones a Kind reads is determined by the code generator's lowering
// switch, not by this type.
type Instruction struct {
	Kind Kind

	// Index is this instruction's position in its owning stream; the code
	// generator uses it to report errors against the offending IR node
	// without needing to keep the whole stream reachable.
	Index int

	PlayerID   uint32
	Comparison chk.TriggerComparisonType
	UnitID     uint16
	Quantity   uint32
	LocationID int // -1 means "no location" / "map-wide" where applicable

	RegA int // destination/left register id (may encode ir.StackTop-relative ids)
	RegB int // source/right register id
	Imm  int // literal operand (SetReg/IncReg/DecReg/MulConst value, JmpIf* comparison value, etc)

	// Target and Absolute describe where a Jmp/JmpIf*/JmpIfSw* instruction
	// goes: Target is an absolute instruction index when Absolute is true,
	// otherwise an offset relative to this instruction's own Index.
	Target   int
	Absolute bool

	SwitchID int
	State    chk.TriggerActionState

	StringID    uint32
	WavID       uint32
	Milliseconds uint32

	ResourceType chk.ResourceType
	ScoreType    chk.ScoreType
	ModifyType   chk.ModifyType
	Alliance     chk.AllianceStatus
	LeaderboardT chk.LeaderboardType

	SrcLocationID int
	DstLocationID int

	// Operands is a small scratch slice for instructions whose arity isn't
	// captured by the named fields above (e.g. Event's condition list,
	// IsPresent's player list).
	Operands []int
}

// Program is a fully-resolved instruction stream plus the side tables the
// code generator needs but that don't belong on any single instruction.
type Program struct {
	Instructions []Instruction
	// WavFilenames holds every distinct sound file referenced by a PlayWAV
	// instruction, in first-reference order, so a downstream MPQ writer can
	// stage them alongside the compiled scenario.
	WavFilenames []string
}
