package maincmd_langums

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/mna/langums/internal/chk"
)

// Disasm reads a TRIG chunk from args[0] and prints every non-empty trigger
// record's owning mask, conditions and actions.
func (c *Cmd) Disasm(ctx context.Context, stdio mainer.Stdio, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading TRIG chunk: %w", err)
	}

	triggers, err := chk.DecodeTriggers(data)
	if err != nil {
		return fmt.Errorf("decoding TRIG chunk: %w", err)
	}

	for i, t := range triggers {
		if t.IsEmpty() {
			continue
		}

		fmt.Fprintf(stdio.Stdout, "trigger %d: owners=%v\n", i, ownerList(t.ExecutionMask))
		for _, cnd := range t.Conditions {
			if cnd.Kind == chk.NoCondition {
				continue
			}
			fmt.Fprintf(stdio.Stdout, "  cond  kind=%-2d cmp=%-2d player=%-3d unit=%-3d qty=%-4d arg0=%-5d loc=%d\n",
				cnd.Kind, cnd.Comparison, cnd.Player, cnd.UnitID, cnd.Quantity, cnd.Arg0, cnd.Location)
		}
		for _, act := range t.Actions {
			if act.Kind == chk.NoAction {
				continue
			}
			fmt.Fprintf(stdio.Stdout, "  act   kind=%-2d mod=%-2d player=%-3d arg0=%-8d arg1=%-5d\n",
				act.Kind, act.Modifier, act.Player, act.Arg0, act.Arg1)
		}
	}
	return nil
}

func ownerList(mask [chk.ExecutionMaskSize]byte) []int {
	var owners []int
	for i, b := range mask {
		if b != 0 {
			owners = append(owners, i+1)
		}
	}
	return owners
}
