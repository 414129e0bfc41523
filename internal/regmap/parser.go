package regmap

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// ParseError reports a malformed line in a custom register map text file,
// carrying the 1-based line number for diagnostics.
type ParseError struct {
	Line   int
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("regmap: line %d: %s", e.Line, e.Detail)
}

// playerNames mirrors the engine's player slot names, index == player id.
var playerNames = []string{
	"Player 1", "Player 2", "Player 3", "Player 4",
	"Player 5", "Player 6", "Player 7", "Player 8",
	"Neutral", "Current Player", "Foes", "Allies",
	"All Players",
}

// unitNames mirrors the engine's unit type names, index == unit type id.
// Only the handful of entries a register map is ever built from need to be
// real; unlisted slots are simply never matched by name.
var unitNames = []string{
	"Terran Marine",
}

// ParseCustomMap parses a text register map: one "PlayerName, UnitName" pair
// per non-blank line, in the order later used to allocate register handles.
func ParseCustomMap(input string) ([]Def, error) {
	var defs []Def

	lines := strings.Split(input, "\n")
	for i, raw := range lines {
		lineNumber := i + 1
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		comma := strings.IndexByte(line, ',')
		if comma < 0 {
			return nil, &ParseError{Line: lineNumber, Detail: fmt.Sprintf("malformed line - %q", raw)}
		}

		playerName := strings.TrimSpace(line[:comma])
		unitName := strings.TrimSpace(line[comma+1:])

		playerID := slices.Index(playerNames, playerName)
		if playerID < 0 {
			return nil, &ParseError{Line: lineNumber, Detail: fmt.Sprintf("invalid player name %q", playerName)}
		}

		unitID := slices.Index(unitNames, unitName)
		if unitID < 0 {
			return nil, &ParseError{Line: lineNumber, Detail: fmt.Sprintf("invalid unit name %q", unitName)}
		}

		defs = append(defs, Def{PlayerID: uint8(playerID), UnitType: uint8(unitID)})
	}

	return defs, nil
}
