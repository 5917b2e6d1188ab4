// Package maincmd implements the loxwalk command-line driver: flag
// parsing, subcommand dispatch and process exit codes, structured the way
// the teacher's own CLI driver is (one exported method per subcommand,
// discovered by reflection).
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
)

const binName = "loxwalk"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] [<command>] [<path>]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] [<command>] [<path>]
       %[1]s -h|--help
       %[1]s -v|--version

Tree-walking interpreter for the Lox programming language.

With no <command> and no <path>, starts an interactive REPL. With no
<command> and a <path>, runs the script at <path> and exits.

The <command> can be one of:
       run                       Run the script at <path> (the default
                                 when a bare <path> is given).
       repl                      Start the interactive REPL (the default
                                 when no arguments are given).
       tokenize <path>           Run only the scanner and print its
                                 tokens.
       parse <path>              Run the scanner and parser and print
                                 the resulting AST.
       resolve <path>            Run the scanner, parser and resolver and
                                 print the AST followed by a count of
                                 local and global references (the
                                 per-node scope distances are not
                                 printed).

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.

More information on the loxwalk repository:
       https://github.com/mna/loxwalk
`, binName)
)

// Cmd holds the parsed command-line flags and dispatches to the matching
// subcommand method. It implements the mainer.Cmd contract used by
// cmd/lox's main().
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	args  []string
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string)          { c.args = args }
func (c *Cmd) SetFlags(flags map[string]bool) {}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	commands := buildCmds(c)

	// bare invocation: no command name, dispatch on whether a path follows.
	if len(c.args) == 0 {
		c.cmdFn = commands["repl"]
		return nil
	}
	if _, isCmd := commands[c.args[0]]; !isCmd {
		c.cmdFn = commands["run"]
		return nil
	}

	cmdName := c.args[0]
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	if cmdName == "tokenize" || cmdName == "parse" || cmdName == "resolve" || cmdName == "run" {
		if len(c.args[1:]) == 0 {
			return errors.New(cmdName + ": a script path is required")
		}
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

	cmdArgs := c.args
	if len(cmdArgs) > 0 {
		if _, isCmd := buildCmds(c)[cmdArgs[0]]; isCmd {
			cmdArgs = cmdArgs[1:]
		}
	}

	if err := c.cmdFn(ctx, stdio, cmdArgs); err != nil {
		if ec, ok := err.(exitCoder); ok {
			return ec.ExitCode()
		}
		return mainer.Failure
	}
	return mainer.Success
}

// exitCoder lets a subcommand request a specific exit code (65 for a
// compile error, 70 for a runtime error, per spec.md §6) instead of the
// generic mainer.Failure.
type exitCoder interface {
	ExitCode() mainer.ExitCode
}

type codedError struct {
	code mainer.ExitCode
}

func (e codedError) Error() string             { return "exit" }
func (e codedError) ExitCode() mainer.ExitCode { return e.code }

// valid commands are methods with signature
// func(*Cmd) (context.Context, mainer.Stdio, []string) error.
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
