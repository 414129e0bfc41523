package maincmd_langums

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mna/mainer"
	"github.com/mna/langums/internal/regmap"
)

// buildRegisterMap loads c.RegmapFile if set, otherwise builds the default
// pool, and surfaces Build's non-fatal undersized-map warning on stderr.
func (c *Cmd) buildRegisterMap(stdio mainer.Stdio) (*regmap.Map, error) {
	var custom []regmap.Def
	if c.RegmapFile != "" {
		data, err := os.ReadFile(c.RegmapFile)
		if err != nil {
			return nil, fmt.Errorf("reading register map file: %w", err)
		}
		custom, err = regmap.ParseCustomMap(string(data))
		if err != nil {
			return nil, fmt.Errorf("parsing register map file: %w", err)
		}
	}

	m, warn := regmap.Build(custom)
	if warn != "" {
		fmt.Fprintf(stdio.Stderr, "warning: %s\n", warn)
	}
	return m, nil
}

func (c *Cmd) Regmap(ctx context.Context, stdio mainer.Stdio, args []string) error {
	m, err := c.buildRegisterMap(stdio)
	if err != nil {
		return err
	}
	return printRegisterMap(stdio.Stdout, m)
}

func printRegisterMap(w io.Writer, m *regmap.Map) error {
	reservedNames := map[int]string{
		regmap.InstructionCounter:  "InstructionCounter",
		regmap.CopyStorage:         "CopyStorage",
		regmap.MulLeft:             "MulLeft",
		regmap.MulRight:            "MulRight",
		regmap.Temp0:               "Temp0",
		regmap.Temp1:               "Temp1",
		regmap.Temp2:               "Temp2",
		regmap.IndirectJumpAddress: "IndirectJumpAddress",
	}

	for handle := 0; handle < m.Len(); handle++ {
		def, err := m.Lookup(handle)
		if err != nil {
			return err
		}

		name := reservedNames[handle]
		if name == "" && handle >= regmap.NumReserved {
			name = fmt.Sprintf("stack[%d]", m.Len()-1-handle)
		}
		if _, err := fmt.Fprintf(w, "%4d  player=%-2d unit=%-3d  %s\n", handle, def.PlayerID, def.UnitType, name); err != nil {
			return err
		}
	}
	return nil
}
