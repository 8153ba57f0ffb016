package concierge

import "strings"

// resolver is the state machine that walks the tokenized input once, left to
// right with one token of lookahead, narrowing the candidate command set,
// binding options to the command or global scope, and collecting leftover
// positional tokens.
type resolver struct {
	c *Concierge

	// selected starts as the default command, when one exists.
	selected   *Command
	candidates []*Command

	// buffer holds the raw path segments seen so far; path holds the
	// segments of the selected command once its full path has matched.
	buffer []string
	path   []string

	locked bool
	rest   []string
	env    Env
}

func newResolver(c *Concierge) *resolver {
	r := &resolver{
		c:          c,
		candidates: append([]*Command(nil), c.commands...),
		env:        Env{},
	}
	for _, cmd := range c.commands {
		if cmd.is(FlagDefault) {
			r.selected = cmd
			break
		}
	}
	return r
}

// resolve processes the argument list. On success the resolver holds the
// locked command, the incrementally built environment, and the leftover
// positional tokens.
func (r *resolver) resolve(args []string) error {
	for i := 0; i < len(args); i++ {
		tok := tokenize(args[i])
		switch tok.kind {
		case tokenStop:
			if err := r.lock(); err != nil {
				return err
			}
			r.rest = append(r.rest, args[i+1:]...)
			return nil

		case tokenMalformed:
			return usagef(r.selected, "malformed option %q", tok.text)

		case tokenShort:
			consumed, err := r.bindShort(tok, args, i)
			if err != nil {
				return err
			}
			i += consumed

		case tokenLong:
			consumed, err := r.bindLong(tok, args, i)
			if err != nil {
				return err
			}
			i += consumed

		case tokenRaw:
			if r.locked {
				r.rest = append(r.rest, tok.text)
				continue
			}
			swallowed, err := r.matchSegment(tok.text, args, i)
			if err != nil {
				return err
			}
			if swallowed {
				return nil
			}
		}
	}
	return r.lock()
}

// lock freezes the selected command. Leftover path segments beyond the
// matched path become the first positional tokens, and every subsequent raw
// string goes straight to rest. Idempotent.
func (r *resolver) lock() error {
	if r.locked {
		return nil
	}
	if r.selected == nil {
		return usagef(nil, "no command matches the given arguments")
	}
	r.rest = append(r.rest, r.buffer[len(r.path):]...)
	r.locked = true
	return nil
}

// matchSegment narrows the candidate set with one more path segment. It
// reports swallowed=true when a proxy command consumed the remaining input.
func (r *resolver) matchSegment(seg string, args []string, i int) (swallowed bool, err error) {
	r.buffer = append(r.buffer, seg)
	depth := len(r.buffer) - 1

	kept := r.candidates[:0]
	for _, cand := range r.candidates {
		if len(cand.path) > depth && cand.path[depth] == seg {
			kept = append(kept, cand)
		}
	}
	r.candidates = kept

	// A candidate whose full path just matched becomes the selection; its
	// siblings keep competing for deeper matches.
	var full *Command
	fullCount := 0
	for _, cand := range r.candidates {
		if len(cand.path) == len(r.buffer) {
			full = cand
			fullCount++
		}
	}
	if fullCount == 1 {
		r.selected = full
		r.path = append([]string(nil), r.buffer...)
		kept = r.candidates[:0]
		for _, cand := range r.candidates {
			if cand != full {
				kept = append(kept, cand)
			}
		}
		r.candidates = kept
	}

	// A proxy command stops parsing as soon as the next token is anything
	// but a plain string.
	if r.selected != nil && r.selected.is(FlagProxy) && i+1 < len(args) && tokenize(args[i+1]).kind != tokenRaw {
		if err := r.lock(); err != nil {
			return false, err
		}
		r.rest = append(r.rest, args[i+1:]...)
		return true, nil
	}

	if len(r.candidates) == 0 {
		if err := r.lock(); err != nil {
			return false, err
		}
	}
	return false, nil
}

// lookupShort resolves a short letter against the selected command's options
// first, then the global set. onCommand reports which scope won.
func (r *resolver) lookupShort(letter string) (opt *Option, onCommand bool) {
	if r.selected != nil {
		if opt := r.selected.options.findShort(letter); opt != nil {
			return opt, true
		}
	}
	return r.c.options.findShort(letter), false
}

func (r *resolver) lookupLong(name string) (opt *Option, onCommand bool) {
	if r.selected != nil {
		if opt := r.selected.options.findLong(name); opt != nil {
			return opt, true
		}
	}
	return r.c.options.findLong(name), false
}

// bindShort handles a short option token: the leading letter, an optional
// value (inline, clustered, or the following raw token), or a cluster of
// further flag letters. consumed reports how many extra arguments were
// taken via lookahead.
func (r *resolver) bindShort(tok token, args []string, i int) (consumed int, err error) {
	opt, onCommand := r.lookupShort(tok.name)
	if opt == nil {
		return 0, usagef(r.selected, "unknown option %q", "-"+tok.name)
	}
	if onCommand {
		if err := r.lock(); err != nil {
			return 0, err
		}
	}

	if opt.takesArg() {
		switch {
		case tok.hasValue:
			r.env[opt.envKey()] = tok.value
		case tok.rest != "":
			r.env[opt.envKey()] = tok.rest
		case i+1 < len(args) && tokenize(args[i+1]).kind == tokenRaw:
			r.env[opt.envKey()] = args[i+1]
			consumed = 1
		default:
			return 0, usagef(r.selected, "option -%s cannot be used without argument", tok.name)
		}
		return consumed, nil
	}

	if tok.hasValue {
		return 0, usagef(r.selected, "malformed option %q", tok.text)
	}
	r.applyFlag(opt)

	// Remaining letters are a cluster: each one resolves independently,
	// command scope first.
	for _, c := range tok.rest {
		letter := string(c)
		clustered, onCommand := r.lookupShort(letter)
		if clustered == nil {
			return 0, usagef(r.selected, "malformed option %q", tok.text)
		}
		if onCommand {
			if err := r.lock(); err != nil {
				return 0, err
			}
		}
		if clustered.takesArg() {
			return 0, usagef(r.selected, "option -%s cannot be used without argument", letter)
		}
		r.applyFlag(clustered)
	}
	return 0, nil
}

// applyFlag binds a no-argument option: capped counters increment their
// current value, plain flags flip their initial value. The flip is computed
// from the initial rather than the current binding, so repeating a flag is
// idempotent instead of toggling it back off.
func (r *resolver) applyFlag(opt *Option) {
	key := opt.envKey()
	if opt.Max > 0 {
		cur := 0
		if v, ok := r.env[key]; ok {
			cur, _ = v.(int)
		} else if n, ok := opt.Initial.(int); ok {
			cur = n
		}
		if cur < opt.Max {
			cur++
		}
		r.env[key] = cur
		return
	}
	initial, _ := opt.Initial.(bool)
	r.env[key] = !initial
}

// bindLong handles a long option token, honoring negation: a negated valued
// option binds nil, a negated flag binds false.
func (r *resolver) bindLong(tok token, args []string, i int) (consumed int, err error) {
	opt, onCommand := r.lookupLong(tok.name)
	if opt == nil {
		return 0, usagef(r.selected, "unknown option %q", tok.text)
	}
	if onCommand {
		if err := r.lock(); err != nil {
			return 0, err
		}
	}
	key := opt.envKey()

	if opt.takesArg() {
		if !tok.enabled {
			if tok.hasValue {
				return 0, usagef(r.selected, "option %s cannot have a value", tok.text)
			}
			r.env[key] = nil
			return 0, nil
		}
		switch {
		case tok.hasValue:
			r.env[key] = tok.value
		case i+1 < len(args) && tokenize(args[i+1]).kind == tokenRaw:
			r.env[key] = args[i+1]
			consumed = 1
		default:
			return 0, usagef(r.selected, "option --%s requires a value (or %s to unset it)",
				opt.Long, negatedSpelling(opt.Long))
		}
		return consumed, nil
	}

	if tok.hasValue {
		return 0, usagef(r.selected, "option --%s does not expect a value", opt.Long)
	}
	r.env[key] = tok.enabled
	return 0, nil
}

// negatedSpelling returns the disabling form of a long option name:
// "--no-name", or "--without-name" when the canonical name already begins
// with "with-".
func negatedSpelling(name string) string {
	if strings.HasPrefix(name, "with-") {
		return "--without-" + strings.TrimPrefix(name, "with-")
	}
	return "--no-" + name
}
