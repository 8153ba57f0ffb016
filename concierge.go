package concierge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Concierge owns the registered command surface: the command list, the
// global option set, global validation rules, and the before/after hook
// chains. Registration happens through chained calls during a setup phase;
// once Run begins the registry is treated as read-only, and consistency is
// re-checked on every run rather than trusting registration order.
type Concierge struct {
	name string
	desc string

	commands   []*Command
	options    OptionSet
	validators Schema
	before     []HandlerFunc
	after      []HandlerFunc
}

// New creates an empty registry for the named program. The global option
// set always starts with the built-in help option.
func New(name string) *Concierge {
	return &Concierge{
		name: name,
		options: OptionSet{{
			Short:       "h",
			Long:        "help",
			Initial:     false,
			Description: "Output usage information.",
		}},
		validators: Schema{},
	}
}

// Describe sets the program description shown at the top of the usage
// listing.
func (c *Concierge) Describe(desc string) *Concierge {
	c.desc = desc
	return c
}

// Command registers a command from a pattern string and returns it for
// chained configuration. It panics with a ConfigurationError when the
// pattern does not compile or declares no path.
func (c *Concierge) Command(pattern string) *Command {
	def, err := ParsePattern(pattern)
	if err != nil {
		panic(err)
	}
	if len(def.Path) == 0 {
		panic(configErrorf("pattern %q declares no command path", pattern))
	}
	cmd := &Command{
		c:        c,
		path:     def.Path,
		required: def.Required,
		optional: def.Optional,
		spread:   def.Spread,
		options:  OptionSet(def.Options),
	}
	c.commands = append(c.commands, cmd)
	return cmd
}

// Global registers global options from an options-only pattern. A path or
// declared arguments in the pattern is a ConfigurationError.
func (c *Concierge) Global(pattern string) *Concierge {
	def, err := parseTopPattern(pattern)
	if err != nil {
		panic(err)
	}
	c.options = append(c.options, def.Options...)
	return c
}

// Option declares one global option from a usage spec such as
// "-v, --verbose".
func (c *Concierge) Option(spec, description string, params ...OptionParam) *Concierge {
	opt, err := parseOptionSpec(spec)
	if err != nil {
		panic(err)
	}
	opt.Description = description
	for _, param := range params {
		param(&opt)
	}
	c.options = append(c.options, opt)
	return c
}

// Validate attaches a global rule to the named option or argument.
func (c *Concierge) Validate(name string, rule Rule) *Concierge {
	c.validators[camelName(name)] = rule
	return c
}

// BeforeEach registers a hook that runs before every command handler.
// Hooks run in registration order and share the invocation environment
// with the handler.
func (c *Concierge) BeforeEach(fn HandlerFunc) *Concierge {
	c.before = append(c.before, fn)
	return c
}

// AfterEach registers a hook that runs after every command handler.
func (c *Concierge) AfterEach(fn HandlerFunc) *Concierge {
	c.after = append(c.after, fn)
	return c
}

// Commands returns the registered commands in registration order.
func (c *Concierge) Commands() []*Command {
	return append([]*Command(nil), c.commands...)
}

// Name returns the program name.
func (c *Concierge) Name() string {
	return c.name
}

// Check verifies registry consistency: at most one default command, no
// option-name collisions among the global options, and none within any
// single command's local options. A command shadowing a global name is
// permitted. Check runs on every Run before any token is processed.
func (c *Concierge) Check() error {
	if err := checkScope("global options", c.options); err != nil {
		return err
	}
	var defaults []string
	for _, cmd := range c.commands {
		if cmd.is(FlagDefault) {
			defaults = append(defaults, cmd.FullName())
		}
		if err := checkScope(fmt.Sprintf("command %q", cmd.FullName()), cmd.options); err != nil {
			return err
		}
	}
	if len(defaults) > 1 {
		return configErrorf("multiple default commands: %s", strings.Join(defaults, ", "))
	}
	return nil
}

func checkScope(scope string, opts OptionSet) error {
	shorts := map[string]bool{}
	longs := map[string]bool{}
	for _, opt := range opts {
		if opt.Short != "" {
			if shorts[opt.Short] {
				return configErrorf("%s: duplicate short option -%s", scope, opt.Short)
			}
			shorts[opt.Short] = true
		}
		if opt.Long != "" {
			if longs[opt.Long] {
				return configErrorf("%s: duplicate long option --%s", scope, opt.Long)
			}
			longs[opt.Long] = true
		}
	}
	return nil
}

// Invoke creates a new invocation with stdio discarded. The invocation is
// not live until Run is called.
func (c *Concierge) Invoke(args ...string) *Invocation {
	return &Invocation{
		c:      c,
		Args:   args,
		Stdout: io.Discard,
		Stderr: io.Discard,
		Stdin:  strings.NewReader(""),
	}
}

// Run resolves and dispatches the given arguments.
func (c *Concierge) Run(ctx context.Context, args []string) error {
	return c.Invoke(args...).WithContext(ctx).Run()
}

// Main resolves os.Args, renders any usage error, and terminates the
// process: status 0 on success, status 1 on a usage error. Unexpected
// errors are reported with full detail before terminating.
func (c *Concierge) Main() {
	err := c.Invoke().WithOS().Run()
	if err == nil {
		return
	}
	var uerr *UsageError
	if errors.As(err, &uerr) {
		// Already rendered through the usage printer.
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "%s: %+v\n", c.name, err)
	os.Exit(1)
}

// Run resolves the invocation's arguments into a command and environment,
// validates, and dispatches the hook/handler sequence. Usage errors are
// rendered to Stdout and returned; unexpected errors from hooks or the
// handler are wrapped in a RunError and returned unrendered.
func (inv *Invocation) Run() error {
	if err := inv.c.Check(); err != nil {
		return err
	}

	r := newResolver(inv.c)
	if err := r.resolve(inv.Args); err != nil {
		// A lone --help is answered even when resolution cannot settle on
		// a command.
		if r.env.Bool("help") {
			inv.c.renderUsage(inv.Stdout, r.selected, nil)
			return nil
		}
		return inv.reportUsage(err)
	}
	cmd := r.selected

	// Help short-circuits everything downstream of resolution.
	if r.env.Bool("help") {
		inv.c.renderUsage(inv.Stdout, cmd, nil)
		return nil
	}

	if err := bindArgs(cmd, inv.c.options, r.env, r.rest); err != nil {
		return inv.reportUsage(err)
	}

	env, err := validateEnv(cmd, r.env, inv.c.validators.merged(cmd.validators))
	if err != nil {
		return inv.reportUsage(err)
	}

	inv.Command = cmd
	inv.Env = env

	ctx := inv.Context()
	// A failing before-hook skips the handler and the after-hooks.
	for _, hook := range inv.c.before {
		if err := hook(ctx, inv); err != nil {
			return &RunError{Cmd: cmd, Err: err}
		}
	}
	if cmd.handler == nil {
		inv.c.renderUsage(inv.Stdout, cmd, nil)
		return nil
	}
	if err := cmd.handler(ctx, inv); err != nil {
		return &RunError{Cmd: cmd, Err: err}
	}
	for _, hook := range inv.c.after {
		if err := hook(ctx, inv); err != nil {
			return &RunError{Cmd: cmd, Err: err}
		}
	}
	return nil
}

func (inv *Invocation) reportUsage(err error) error {
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		return err
	}
	inv.c.renderUsage(inv.Stdout, uerr.Command, uerr)
	return uerr
}
