package ir

import (
	"encoding/json"
	"fmt"
)

// kindNames holds every Kind's name in declaration order; kindNames[k] is
// the name printed for Kind(k). Keep in lockstep with the const block in
// ir.go - NumKinds below guards against the two falling out of sync.
var kindNames = [...]string{
	"Nop",
	"Unit", "UnitProp", "Event",
	"BringCond", "AccumCond", "LeastResCond", "MostResCond", "ScoreCond",
	"HiScoreCond", "LowScoreCond", "TimeCond", "CmdCond", "CmdLeastCond",
	"CmdMostCond", "KillCond", "KillLeastCond", "KillMostCond", "DeathCond",
	"CountdownCond", "OpponentsCond",
	"Jmp", "JmpIfEq", "JmpIfNotEq", "JmpIfGrt", "JmpIfGrtOrEq", "JmpIfLess",
	"JmpIfLessOrEq", "JmpIfSwNotSet", "JmpIfSwSet",
	"Push", "Pop", "SetReg", "IncReg", "DecReg", "CopyReg", "Add", "Sub",
	"Mul", "MulConst", "Div", "Rnd256", "SetSw",
	"ChkPlayers", "IsPresent", "DisplayMsg", "Wait", "Talk", "Transmission",
	"Spawn", "Kill", "Remove", "Move", "Order", "Modify", "Give", "MoveLoc",
	"EndGame", "CenterView", "Ping", "SetResource", "IncResource",
	"DecResource", "SetScore", "IncScore", "DecScore", "SetCountdown",
	"AddCountdown", "SubCountdown", "PauseCountdown", "MuteUnitSpeech",
	"SetDeaths", "IncDeaths", "DecDeaths", "SetDoodad", "SetInvincible",
	"AIScript", "SetAlly", "SetObj", "PauseGame", "NextScen", "Leaderboard",
	"LeaderboardCpu", "PlayWAV",
}

func init() {
	if len(kindNames) != int(NumKinds) {
		panic(fmt.Sprintf("ir: kindNames has %d entries, want %d (NumKinds)", len(kindNames), NumKinds))
	}
}

// String returns the Kind's declared name, or a numeric fallback for an
// out-of-range value (e.g. one synthesized by a test to exercise the
// unhandled-kind error path).
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// MarshalJSON encodes a Kind as its declared name, so an IR program handed
// to the compiler reads as "SetReg" rather than a magic number.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON accepts either a Kind's declared name or its numeric value.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var n uint8
	if err := json.Unmarshal(data, &n); err == nil {
		*k = Kind(n)
		return nil
	}

	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("ir: invalid Kind %s", data)
	}
	for i, n := range kindNames {
		if n == name {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("ir: unknown Kind %q", name)
}
