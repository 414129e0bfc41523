// Package regmap builds and resolves the virtual register map: the binding
// of each virtual register handle to a unique (player, unit type)
// death-counter cell (spec §3, §4.A).
package regmap

import (
	"fmt"
	"sort"
)

// Def is one cell binding: a player id (0-11) and a unit type (0-227) whose
// death counter that player owns and the code generator repurposes as a
// register.
type Def struct {
	PlayerID uint8
	UnitType uint8
}

// Reserved virtual register handles. These are allocated deterministically
// at the start of the map, before the descending compile-time stack.
const (
	InstructionCounter = iota
	CopyStorage
	MulLeft
	MulRight
	Temp0
	Temp1
	Temp2
	IndirectJumpAddress

	// NumReserved is the count of reserved handles preceding the stack.
	NumReserved
)

// StackTop is a sentinel register handle meaning "the current top of the
// compile-time stack"; callers must resolve it against the live stack
// pointer before using it as an index into the register map.
const StackTop = 1 << 30

// MinCells is the minimum register map size below which Build emits a
// non-fatal warning (the generated program will be starved for stack and
// scratch space, but nothing here forces a hard failure).
const MinCells = 24

// unusedUnitTypes is the default pool of unit type ids the original game
// never spawns or tracks deaths for on its own, safe to repurpose as
// register cells. The set intentionally avoids hero units, critters and
// any unit type with special client-side rendering hooks.
var unusedUnitTypes = []uint8{
	131, 132, 133, 134, 135, 136, 137, 138, 139, 140,
	141, 142, 143, 144, 145, 146, 147, 148, 149, 150,
	151, 152, 153, 154, 155, 156, 157, 158, 159, 160,
	161, 162, 163, 164, 165, 166, 167, 168,
}

// playerPoolCount is the number of distinct players whose death-counter
// cells are repurposed by the default pool.
const playerPoolCount = 8

// Map is the ordered, immutable vector of register cells built once at
// compile start (Data Model, Lifecycles: "built once and never mutated").
type Map struct {
	defs []Def
}

// Build assembles the register map. With a non-empty custom list, it's
// used verbatim (Operation build, §4.A). Otherwise the default unused-unit
// pool is repeated across playerPoolCount players.
//
// Build never fails; a map smaller than MinCells is returned along with a
// warning string the caller may choose to surface (non-fatal per spec).
func Build(custom []Def) (*Map, string) {
	if len(custom) > 0 {
		defs := make([]Def, len(custom))
		copy(defs, custom)
		return &Map{defs: defs}, warnIfTooSmall(len(defs))
	}

	pool := make([]uint8, len(unusedUnitTypes))
	copy(pool, unusedUnitTypes)
	sort.Slice(pool, func(i, j int) bool { return pool[i] < pool[j] })

	defs := make([]Def, 0, playerPoolCount*len(pool))
	for player := uint8(0); player < playerPoolCount; player++ {
		for _, unit := range pool {
			defs = append(defs, Def{PlayerID: player, UnitType: unit})
		}
	}

	return &Map{defs: defs}, warnIfTooSmall(len(defs))
}

func warnIfTooSmall(n int) string {
	if n >= MinCells {
		return ""
	}
	return fmt.Sprintf("register map has only %d cells, fewer than the recommended minimum of %d", n, MinCells)
}

// Len returns the number of register cells in the map.
func (m *Map) Len() int {
	return len(m.defs)
}

// Lookup resolves a register handle to its (player, unit type) cell.
// handle must be < Len(); StackTop must be resolved by the caller first.
func (m *Map) Lookup(handle int) (Def, error) {
	if handle < 0 || handle >= len(m.defs) {
		return Def{}, fmt.Errorf("regmap: out of registers: handle %d exceeds map size %d", handle, len(m.defs))
	}
	return m.defs[handle], nil
}

// Resolve translates a raw IR register id into a concrete handle given the
// live compile-time stack pointer: StackTop becomes stackPointer+1, and
// values relative to StackTop (used by the Push/Pop/jump lowering to refer
// to the Nth register below the top) are offset the same way. Any other
// value passes through unchanged.
func Resolve(regID, stackPointer int) int {
	if regID >= StackTop {
		return stackPointer + (regID - StackTop) + 1
	}
	return regID
}
