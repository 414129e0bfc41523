// Package codegentest_test runs the code generator end-to-end against
// small IR programs and diffs the resulting trigger records against
// golden files, using the generic source-file/golden-file harness in
// internal/filetest.
package codegentest_test

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mna/langums/internal/chk"
	"github.com/mna/langums/internal/codegen"
	"github.com/mna/langums/internal/filetest"
	"github.com/mna/langums/internal/ir"
	"github.com/mna/langums/internal/regmap"
)

var testUpdateCodegenTests = flag.Bool("test.update-codegen-tests", false, "If set, replace expected codegen test results with actual results.")

func TestScenarios(t *testing.T) {
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".json") {
		t.Run(fi.Name(), func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(srcDir, fi.Name()))
			if err != nil {
				t.Fatal(err)
			}

			var prog ir.Program
			if err := json.Unmarshal(data, &prog); err != nil {
				t.Fatal(err)
			}

			regs, _ := regmap.Build(nil)
			gen := codegen.New(regs, 1, codegen.Config{})
			triggers, err := gen.Generate(&prog)
			if err != nil {
				t.Fatal(err)
			}

			filetest.DiffOutput(t, fi, formatTriggers(triggers), resultDir, testUpdateCodegenTests)
		})
	}
}

// formatTriggers renders the fields that matter for program correctness -
// owning mask plus every populated condition/action slot - in a stable,
// field-by-field layout that changes only when the generator's actual
// output changes.
func formatTriggers(triggers []chk.Trigger) string {
	var buf strings.Builder
	for i, t := range triggers {
		if t.IsEmpty() {
			continue
		}

		fmt.Fprintf(&buf, "trigger %d owners=%v\n", i, owningPlayers(t.ExecutionMask))
		for _, c := range t.Conditions {
			if c.Kind == chk.NoCondition {
				continue
			}
			fmt.Fprintf(&buf, "  cond kind=%d cmp=%d player=%d unit=%d qty=%d arg0=%d flags=%d\n",
				c.Kind, c.Comparison, c.Player, c.UnitID, c.Quantity, c.Arg0, c.Flags)
		}
		for _, a := range t.Actions {
			if a.Kind == chk.NoAction {
				continue
			}
			fmt.Fprintf(&buf, "  act  kind=%d mod=%d player=%d arg0=%d arg1=%d flags=%d\n",
				a.Kind, a.Modifier, a.Player, a.Arg0, a.Arg1, a.Flags)
		}
	}
	fmt.Fprintf(&buf, "total triggers: %d\n", len(triggers))
	return buf.String()
}

func owningPlayers(mask [chk.ExecutionMaskSize]byte) []int {
	var out []int
	for i, b := range mask {
		if b != 0 {
			out = append(out, i+1)
		}
	}
	return out
}
