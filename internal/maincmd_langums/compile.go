package maincmd_langums

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/mna/langums/internal/chk"
	"github.com/mna/langums/internal/codegen"
	"github.com/mna/langums/internal/ir"
)

// Compile reads a JSON-encoded ir.Program from args[0] and writes the
// compiled TRIG chunk to c.Out (or stdout, if unset).
func (c *Cmd) Compile(ctx context.Context, stdio mainer.Stdio, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading IR program: %w", err)
	}

	var prog ir.Program
	if err := json.Unmarshal(data, &prog); err != nil {
		return fmt.Errorf("decoding IR program: %w", err)
	}

	regs, err := c.buildRegisterMap(stdio)
	if err != nil {
		return err
	}

	cfg := codegen.Config{
		CopyBatchSize:      c.CopyBatchSize,
		HyperTriggerCount:  c.HyperTriggers,
		ForceComputerOwner: c.ForceComputer,
	}
	if c.PreserveFile != "" {
		existing, err := os.ReadFile(c.PreserveFile)
		if err != nil {
			return fmt.Errorf("reading existing TRIG chunk to preserve: %w", err)
		}
		cfg.ExistingTriggers, err = chk.DecodeTriggers(existing)
		if err != nil {
			return fmt.Errorf("decoding existing TRIG chunk to preserve: %w", err)
		}
		cfg.PreserveTriggers = true
	}

	gen := codegen.New(regs, uint8(c.Owner), cfg)
	triggers, err := gen.Generate(&prog)
	if err != nil {
		return fmt.Errorf("generating triggers: %w", err)
	}

	if cfg.ForceComputerOwner {
		fmt.Fprintf(stdio.Stderr, "note: --force-computer recorded for player %d; the OWNR chunk flip is the map writer's job, not codegen's\n", c.Owner)
	}

	out := chk.EncodeTriggers(triggers)

	if c.Out == "" {
		_, err := stdio.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(c.Out, out, 0o644); err != nil {
		return fmt.Errorf("writing TRIG chunk: %w", err)
	}
	fmt.Fprintf(stdio.Stderr, "wrote %d triggers (%d bytes) to %s\n", len(triggers), len(out), c.Out)
	return nil
}
