// Package codegen lowers a resolved instruction stream into the fixed-width
// trigger records that make up a scenario's TRIG chunk. It's the only
// package in this module that knows how to turn "add two registers" or
// "jump if equal" into a sequence of condition/action slots the engine can
// actually evaluate - everything upstream of it (parsing, optimization,
// register allocation choices baked into the IR) is somebody else's job.
package codegen

import (
	"github.com/dolthub/swiss"

	"github.com/mna/langums/internal/chk"
	"github.com/mna/langums/internal/ir"
	"github.com/mna/langums/internal/regmap"
	"github.com/mna/langums/internal/trigbuild"
)

// DefaultCopyBatchSize is the drain fan-out upper bound used when a
// Config leaves CopyBatchSize unset. Must stay a power of two - see
// Config.CopyBatchSize.
const DefaultCopyBatchSize = 8192

// DefaultHyperTriggerCount is how many extra always-true/preserve triggers
// are appended after the compiled program when a Config leaves
// HyperTriggerCount unset.
const DefaultHyperTriggerCount = 5

// Config bundles the per-compile knobs a caller may override; the zero
// value of every field means "use the documented default". This is the
// explicit, per-compile context the source's process-wide globals (the
// register map and the triggers-owner player) get threaded through as,
// alongside the Generator itself.
type Config struct {
	// CopyBatchSize bounds the drain fan-out used by arithmetic macros
	// (push/pop/add/mul). Must be a power of two; 1 degrades to a linear
	// scan and is the slowest but cheapest-to-reason-about setting.
	// Zero means DefaultCopyBatchSize.
	CopyBatchSize int

	// HyperTriggerCount is how many trailing always-true/preserve
	// triggers are appended so the engine re-evaluates the compiled
	// program more than once per displayed frame. A value <= 0 means
	// DefaultHyperTriggerCount.
	HyperTriggerCount int

	// PreserveTriggers, when set, appends ExistingTriggers after the
	// generated ones instead of discarding them.
	PreserveTriggers bool
	ExistingTriggers []chk.Trigger

	// ForceComputerOwner records that the triggers-owner player's map
	// slot should be switched to a Computer allegiance. Codegen itself
	// never touches a map's player-allegiance chunk (that's the MPQ I/O
	// layer's job); this flag only rides along in Config so the caller
	// that does own that chunk can act on it.
	ForceComputerOwner bool
}

func (c Config) copyBatchSize() int {
	if c.CopyBatchSize <= 0 {
		return DefaultCopyBatchSize
	}
	return c.CopyBatchSize
}

func (c Config) hyperTriggerCount() int {
	if c.HyperTriggerCount <= 0 {
		return DefaultHyperTriggerCount
	}
	return c.HyperTriggerCount
}

// patch records one or more triggers whose next free action slot is a
// deferred jump: the triggers were already pushed to the output before
// their destination instruction had been assigned a final address, so the
// action gets written in once every instruction has been visited. More
// than one index shows up when a single logical jump lowers to more than
// one physical trigger (the not-equal dual-trigger encoding needs the same
// jump patched into both halves).
type patch struct {
	triggerIndices []int
	target         int
}

// Generator lowers one resolved ir.Program into trigger records for a
// single owning player.
type Generator struct {
	regs  *regmap.Map
	owner uint8
	cfg   Config

	copyBatchSize int
	stackPointer  int

	triggers []chk.Trigger
	patches  []patch

	// jumpAddressOf maps an instruction's stream index to the address of
	// the trigger that was current when that instruction was reached -
	// the only addresses a jump can ever legally target. Backed by
	// swiss.Map rather than a plain map, same int-keyed table shape as
	// internal/strtab's string interning table.
	jumpAddressOf *swiss.Map[int, int]

	multiplyAddress int
	cuwpSlots       int
}

// New builds a Generator that emits triggers owned by playerID (1-based),
// using cfg's batch size, hyper-trigger count and preservation settings
// (the zero Config uses every documented default).
func New(regs *regmap.Map, playerID uint8, cfg Config) *Generator {
	return &Generator{
		regs:          regs,
		owner:         playerID,
		cfg:           cfg,
		copyBatchSize: cfg.copyBatchSize(),
		stackPointer:  regs.Len() - 1,
		jumpAddressOf: swiss.NewMap[int, int](uint32(8)),
	}
}

// Generate lowers prog into a flat list of trigger records, ready for
// serialization into a TRIG chunk.
func (g *Generator) Generate(prog *ir.Program) ([]chk.Trigger, error) {
	instrs := prog.Instructions

	consumed, err := g.preEmitEvents(instrs)
	if err != nil {
		return nil, err
	}

	targets := g.discoverJumpTargets(instrs)

	nextAddress := 0
	hasMul := false
	for i := range instrs {
		if instrs[i].Kind == ir.Mul {
			hasMul = true
			break
		}
	}

	current := trigbuild.New(nextAddress, g.owner, g.regs)
	nextAddress++

	if hasMul {
		if err := g.emitMulInstructionCode(&nextAddress); err != nil {
			return nil, err
		}
		if err := g.emitIndirectJumpCode(&nextAddress); err != nil {
			return nil, err
		}
	}

	for i := range instrs {
		in := &instrs[i]
		if consumed[i] {
			continue
		}

		if targets[i] {
			if current.HasChanges() {
				address := nextAddress
				nextAddress++
				g.jumpAddressOf.Put(i, address)

				if err := current.ActionJumpTo(address); err != nil {
					return nil, g.wrap(err, in.Index)
				}
				g.push(current)
				current = trigbuild.New(address, g.owner, g.regs)
			} else {
				g.jumpAddressOf.Put(i, current.Address())
			}
		}

		if err := g.lower(in, i, instrs, &current, &nextAddress); err != nil {
			return nil, g.wrap(err, in.Index)
		}
	}

	// The final "current" builder may have received nothing of its own,
	// e.g. when the last lowered instruction opened a fresh builder for
	// its continuation. If it never picked up any changes, it carries
	// nothing but the constructor's own IC-gate and PreserveTrigger and
	// no instruction ever targets its address (jump targets are only
	// ever addresses of triggers that exist because an instruction was
	// lowered into them) - drop it rather than emit dead weight. An
	// empty ir.Program, or one ending in an unconditional jump, hits
	// this every time (Testable Properties, boundary behaviors).
	if current.HasChanges() {
		g.push(current)
	}

	if err := g.resolvePatches(); err != nil {
		return nil, err
	}

	for q := 0; q < g.cfg.hyperTriggerCount(); q++ {
		var t chk.Trigger
		t.ExecutionMask[g.owner-1] = 1
		t.Conditions[0].Kind = chk.Always
		t.Conditions[0].Flags = chk.ConditionEnabledFlag
		t.Actions[0].Kind = chk.PreserveTrigger
		g.triggers = append(g.triggers, t)
	}

	if g.cfg.PreserveTriggers {
		g.triggers = append(g.triggers, g.cfg.ExistingTriggers...)
	}

	return g.triggers, nil
}

func (g *Generator) wrap(err error, index int) error {
	if ce, ok := err.(*Error); ok {
		return ce
	}
	return newError(TriggerActionsFull, index, "%s", err)
}

func (g *Generator) push(b *trigbuild.Builder) {
	g.triggers = append(g.triggers, b.GetTriggers()...)
}

// pushWithTarget pushes b's triggers and remembers that each one's next
// free action slot should become a jump to targetIndex once every
// instruction has been visited and targetIndex's final address is known.
func (g *Generator) pushWithTarget(b *trigbuild.Builder, targetIndex int) {
	first := len(g.triggers)
	triggers := b.GetTriggers()
	g.triggers = append(g.triggers, triggers...)

	indices := make([]int, len(triggers))
	for i := range triggers {
		indices[i] = first + i
	}
	g.patches = append(g.patches, patch{triggerIndices: indices, target: targetIndex})
}

func (g *Generator) resolvePatches() error {
	def, err := g.regs.Lookup(regmap.InstructionCounter)
	if err != nil {
		return err
	}

	for _, p := range g.patches {
		addr, ok := g.jumpAddressOf.Get(p.target)
		if !ok {
			return newError(MalformedIR, p.target, "jump target instruction %d was never reached by the main stream", p.target)
		}

		for _, triggerIndex := range p.triggerIndices {
			t := &g.triggers[triggerIndex]
			slot := -1
			for i := range t.Actions {
				if t.Actions[i].Kind == chk.NoAction {
					slot = i
					break
				}
			}
			if slot == -1 {
				return newError(TriggerActionsFull, p.target, "no free action slot to patch in a jump to address %d", addr)
			}

			t.Actions[slot] = chk.Action{
				Kind:     chk.SetDeaths,
				Modifier: uint8(chk.SetTo),
				Player:   uint32(def.PlayerID),
				Arg1:     uint16(def.UnitType),
				Arg0:     uint32(addr),
				Flags:    chk.ActionEnabledFlag,
			}
		}
	}
	return nil
}

// discoverJumpTargets is Pass 2: every Jmp/JmpIf*/JmpIfSw* instruction
// names a destination; destinations beyond the end of the stream clamp to
// the last instruction, same as a fallthrough into program end.
func (g *Generator) discoverJumpTargets(instrs []ir.Instruction) map[int]bool {
	targets := make(map[int]bool)
	for i := range instrs {
		if !isJumpKind(instrs[i].Kind) {
			continue
		}
		targets[clampTarget(&instrs[i], i, len(instrs))] = true
	}
	return targets
}

func isJumpKind(k ir.Kind) bool {
	switch k {
	case ir.Jmp, ir.JmpIfEq, ir.JmpIfNotEq, ir.JmpIfGrt, ir.JmpIfGrtOrEq,
		ir.JmpIfLess, ir.JmpIfLessOrEq, ir.JmpIfSwNotSet, ir.JmpIfSwSet:
		return true
	}
	return false
}

func clampTarget(in *ir.Instruction, index, length int) int {
	target := in.Target
	if !in.Absolute {
		target = index + in.Target
	}
	if target >= length {
		target = length - 1
	}
	if target < 0 {
		target = 0
	}
	return target
}

// resolveReg maps an ir.StackTop-relative register id to the concrete
// death-counter handle the current stack pointer addresses.
func (g *Generator) resolveReg(regID int) int {
	return regmap.Resolve(regID, g.stackPointer)
}
