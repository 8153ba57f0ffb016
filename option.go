package concierge

import (
	"regexp"
	"strings"

	"github.com/spf13/pflag"
)

// Option describes one flag: a short and/or long name, an optional argument
// name (present means the option takes a value), the value it defaults to,
// and an optional cap turning it into a repeatable counter.
type Option struct {
	// Short is a single letter, or empty.
	Short string

	// Long is a kebab-case word, or empty. Every option has at least one of
	// Short and Long.
	Long string

	// ArgName names the option's value placeholder. Empty means the option
	// is a plain flag.
	ArgName string

	// Initial is the value bound when the option does not appear on the
	// command line. Flags default to false.
	Initial any

	// Max, when positive, makes the option a counter: each occurrence
	// increments the bound value by one, capped at Max.
	Max int

	Description string
}

// OptionSet is a group of options belonging to one scope, either the global
// surface or a single command.
type OptionSet []Option

// Name returns the option's canonical name: the long name when present,
// else the short letter.
func (o Option) Name() string {
	if o.Long != "" {
		return o.Long
	}
	return o.Short
}

// Spell returns the option as it is written on the command line, for error
// messages and usage text.
func (o Option) Spell() string {
	var parts []string
	if o.Short != "" {
		parts = append(parts, "-"+o.Short)
	}
	if o.Long != "" {
		parts = append(parts, "--"+o.Long)
	}
	s := strings.Join(parts, ", ")
	if o.ArgName != "" {
		s += " <" + o.ArgName + ">"
	}
	return s
}

func (o Option) envKey() string {
	return camelName(o.Name())
}

func (o Option) takesArg() bool {
	return o.ArgName != ""
}

// findShort returns the option with the given short letter, or nil.
func (optSet OptionSet) findShort(letter string) *Option {
	for i := range optSet {
		if optSet[i].Short == letter {
			return &optSet[i]
		}
	}
	return nil
}

// findLong returns the option with the given long name, or nil.
func (optSet OptionSet) findLong(name string) *Option {
	for i := range optSet {
		if optSet[i].Long == name {
			return &optSet[i]
		}
	}
	return nil
}

// FlagSet bridges the options into a standard pflag set, for programs that
// embed the registry but parse with pflag. Counters surface as int64 flags
// whose bare form sets 1.
func (optSet OptionSet) FlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	for i := range optSet {
		opt := optSet[i]

		var (
			val         pflag.Value
			noOptDefVal string
		)
		switch {
		case opt.Max > 0:
			var n int64
			if start, ok := opt.Initial.(int); ok {
				n = int64(start)
			}
			val = Int64Of(&n)
			noOptDefVal = "1"
		case opt.takesArg():
			s, _ := opt.Initial.(string)
			val = StringOf(&s)
		default:
			b, _ := opt.Initial.(bool)
			val = BoolOf(&b)
			noOptDefVal = "true"
		}

		fs.AddFlag(&pflag.Flag{
			Name:        opt.Name(),
			Shorthand:   opt.Short,
			Usage:       opt.Description,
			Value:       val,
			DefValue:    val.String(),
			NoOptDefVal: noOptDefVal,
		})
	}
	fs.Usage = func() {}
	return fs
}

// OptionParam adjusts an option at declaration time.
type OptionParam func(*Option)

// WithDefault sets the option's initial value.
func WithDefault(v any) OptionParam {
	return func(o *Option) { o.Initial = v }
}

// WithMax turns the option into a counter capped at n. Counters bind ints,
// so the flag default of false is replaced with 0.
func WithMax(n int) OptionParam {
	return func(o *Option) {
		o.Max = n
		if o.Initial == nil || o.Initial == false {
			o.Initial = 0
		}
	}
}

var (
	shortSpecRe = regexp.MustCompile(`^-([a-zA-Z])$`)
	longSpecRe  = regexp.MustCompile(`^--([a-zA-Z][a-zA-Z0-9-]*)$`)
	argSpecRe   = regexp.MustCompile(`^<([a-zA-Z][a-zA-Z0-9-]*)>$`)
)

// parseOptionSpec compiles an option usage string such as "-f, --force" or
// "-m, --message <text>" into an Option. Name parts may be separated by
// commas, pipes, or plain spaces.
func parseOptionSpec(spec string) (Option, error) {
	var opt Option
	fields := strings.FieldsFunc(spec, func(r rune) bool {
		return r == ' ' || r == ',' || r == '|' || r == '='
	})
	if len(fields) == 0 {
		return opt, configErrorf("empty option spec")
	}
	for _, field := range fields {
		switch {
		case shortSpecRe.MatchString(field):
			if opt.Short != "" {
				return opt, configErrorf("option spec %q declares two short names", spec)
			}
			opt.Short = field[1:]
		case longSpecRe.MatchString(field):
			if opt.Long != "" {
				return opt, configErrorf("option spec %q declares two long names", spec)
			}
			opt.Long = field[2:]
		case argSpecRe.MatchString(field):
			if opt.ArgName != "" {
				return opt, configErrorf("option spec %q declares two argument names", spec)
			}
			opt.ArgName = field[1 : len(field)-1]
		default:
			return opt, configErrorf("option spec %q has an unrecognized part %q", spec, field)
		}
	}
	if opt.Short == "" && opt.Long == "" {
		return opt, configErrorf("option spec %q declares no option name", spec)
	}
	if opt.ArgName == "" {
		opt.Initial = false
	}
	return opt, nil
}
