package concierge

import (
	"context"
	"io"
	"os"
	"strings"
)

// CommandFlags is a bit-set of command modes.
type CommandFlags uint8

const (
	// FlagDefault marks the command selected when no input token matches a
	// registered path. At most one command may carry it.
	FlagDefault CommandFlags = 1 << iota

	// FlagProxy makes the command swallow every remaining token verbatim
	// once it is unambiguously selected.
	FlagProxy

	// FlagHidden keeps the command out of the top-level listing.
	FlagHidden
)

// Command is one registered command: a literal path, declared arguments,
// local options, and the handler invoked once resolution succeeds. Commands
// are created by Concierge.Command from a compiled pattern and configured
// through the chainable methods; they are not mutated after Run begins.
type Command struct {
	c *Concierge

	path       []string
	required   []string
	optional   []string
	spread     string
	options    OptionSet
	flags      CommandFlags
	desc       string
	validators Schema
	handler    HandlerFunc
}

// Name returns the last path segment.
func (cmd *Command) Name() string {
	return cmd.path[len(cmd.path)-1]
}

// FullName returns the full space-joined command path.
func (cmd *Command) FullName() string {
	return strings.Join(cmd.path, " ")
}

// Path returns the command's path segments.
func (cmd *Command) Path() []string {
	return append([]string(nil), cmd.path...)
}

// Description returns the text set by Describe.
func (cmd *Command) Description() string {
	return cmd.desc
}

// Describe sets the command's one-line description, shown in the top-level
// listing and on its usage page.
func (cmd *Command) Describe(desc string) *Command {
	cmd.desc = desc
	return cmd
}

// Option declares a command-local option from a usage spec such as
// "-f, --force" or "-m, --message <text>".
func (cmd *Command) Option(spec, description string, params ...OptionParam) *Command {
	opt, err := parseOptionSpec(spec)
	if err != nil {
		panic(err)
	}
	opt.Description = description
	for _, param := range params {
		param(&opt)
	}
	cmd.options = append(cmd.options, opt)
	return cmd
}

// Default marks the command as the one selected when no input token matches
// any registered path.
func (cmd *Command) Default() *Command {
	cmd.flags |= FlagDefault
	return cmd
}

// Proxy makes the command consume all remaining tokens without further
// option parsing once it is unambiguously selected.
func (cmd *Command) Proxy() *Command {
	cmd.flags |= FlagProxy
	return cmd
}

// Hidden removes the command from the top-level listing.
func (cmd *Command) Hidden() *Command {
	cmd.flags |= FlagHidden
	return cmd
}

// Validate attaches a rule to the named option or argument. The name is
// given in its declared kebab-case spelling.
func (cmd *Command) Validate(name string, rule Rule) *Command {
	if cmd.validators == nil {
		cmd.validators = Schema{}
	}
	cmd.validators[camelName(name)] = rule
	return cmd
}

// Handler sets the command's invocation callback.
func (cmd *Command) Handler(fn HandlerFunc) *Command {
	cmd.handler = fn
	return cmd
}

// Concierge returns the registry the command belongs to, so registration
// chains can continue with further commands.
func (cmd *Command) Concierge() *Concierge {
	return cmd.c
}

func (cmd *Command) is(flag CommandFlags) bool {
	return cmd.flags&flag != 0
}

// Invocation represents one run of the framework: the raw arguments going
// in and, after resolution, the selected command and its environment.
type Invocation struct {
	ctx context.Context

	c *Concierge

	// Command is the resolved command. It is nil until resolution locks.
	Command *Command

	// Env is the invocation environment after binding and validation. The
	// same map is shared with every hook and the handler.
	Env Env

	// Args is the raw argument list being resolved.
	Args []string

	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
}

// WithOS fills the invocation's stdio and arguments with OS defaults, for
// use from a main package.
func (inv *Invocation) WithOS() *Invocation {
	return inv.with(func(i *Invocation) {
		i.Stdout = os.Stdout
		i.Stderr = os.Stderr
		i.Stdin = os.Stdin
		i.Args = os.Args[1:]
	})
}

// WithContext returns a copy of the Invocation with the given context.
func (inv *Invocation) WithContext(ctx context.Context) *Invocation {
	return inv.with(func(i *Invocation) {
		i.ctx = ctx
	})
}

func (inv *Invocation) Context() context.Context {
	if inv.ctx == nil {
		return context.Background()
	}
	return inv.ctx
}

// with returns a copy of the Invocation with the given function applied.
func (inv *Invocation) with(fn func(*Invocation)) *Invocation {
	i2 := *inv
	fn(&i2)
	return &i2
}
