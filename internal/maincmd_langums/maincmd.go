// Package maincmd_langums wires the register map, trigger builder and code
// generator into the command-line tool: it owns flag parsing and command
// dispatch, not any compilation logic of its own.
package maincmd_langums

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
)

const binName = "langums"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <command> [<path>...]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <command> [<path>...]
       %[1]s -h|--help
       %[1]s -v|--version

Lowers a resolved instruction stream into a scenario's trigger chunk.

The <command> can be one of:
       compile                   Read an IR program (JSON) and emit a
                                 compiled TRIG chunk.
       regmap                    Build the register map and print its
                                 cell assignments.
       disasm                    Decode a TRIG chunk and print its
                                 trigger records.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       --owner N                 Owning player of the compiled program's
                                 executive logic, 1-based (default 1).
       --force-computer          Record that --owner's map slot should be
                                 switched to a Computer allegiance.
       --copy-batch-size N       Power-of-two upper bound on arithmetic
                                 drain fan-out (default 8192).
       --hyper-trigger-count N   Trailing always-true/preserve triggers
                                 appended after the program (default 5).
       --preserve-triggers PATH  Existing TRIG chunk file whose triggers
                                 are appended after the generated ones.
       --regmap-file PATH        Custom register map text file (one
                                 "PlayerName, UnitName" pair per line);
                                 overrides the default cell pool.
       -o --out PATH             Output file for <compile> (default:
                                 write the raw TRIG chunk to stdout).

More information on the %[1]s repository:
       https://github.com/mna/langums
`, binName)
)

// Cmd is the root command, populated by flag parsing and dispatched to one
// of its exported methods by name (see buildCmds).
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Owner         int    `flag:"owner"`
	ForceComputer bool   `flag:"force-computer"`
	CopyBatchSize int    `flag:"copy-batch-size"`
	HyperTriggers int    `flag:"hyper-trigger-count"`
	PreserveFile  string `flag:"preserve-triggers"`
	RegmapFile    string `flag:"regmap-file"`
	Out           string `flag:"o,out"`

	args  []string
	flags map[string]bool
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) SetFlags(flags map[string]bool) {
	c.flags = flags
}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	if c.Owner == 0 {
		c.Owner = 1
	}
	if c.Owner < 1 || c.Owner > 8 {
		return fmt.Errorf("invalid --owner %d: must be 1..8", c.Owner)
	}

	if c.CopyBatchSize != 0 && (c.CopyBatchSize < 1 || c.CopyBatchSize&(c.CopyBatchSize-1) != 0) {
		return fmt.Errorf("invalid --copy-batch-size %d: must be a power of two", c.CopyBatchSize)
	}
	if c.HyperTriggers < 0 {
		return fmt.Errorf("invalid --hyper-trigger-count %d: must be >= 0", c.HyperTriggers)
	}

	if len(c.args) == 0 {
		return errors.New("no command specified")
	}

	cmdName := c.args[0]
	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", c.args[0])
	}

	if cmdName == "compile" && len(c.args[1:]) != 1 {
		return fmt.Errorf("%s: exactly one IR program file must be provided", cmdName)
	}
	if cmdName == "disasm" && len(c.args[1:]) != 1 {
		return fmt.Errorf("%s: exactly one TRIG chunk file must be provided", cmdName)
	}

	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
		return mainer.Failure
	}
	return mainer.Success
}

// valid commands are those that take a mainer.Stdio and a slice of strings
// as input, and return an error as output.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
