package concierge

import "regexp"

type tokenKind int

const (
	// tokenRaw is any argument that is not option-like: a command path
	// segment, a positional argument, or an option value.
	tokenRaw tokenKind = iota

	// tokenStop is the literal "--"; everything after it is raw text.
	tokenStop

	// tokenLong is "--name", "--name=value", or a negated "--no-name" /
	// "--without-name".
	tokenLong

	// tokenShort is "-x", "-x=value", or a cluster like "-abc".
	tokenShort

	// tokenMalformed starts with a dash but matches neither option shape.
	tokenMalformed
)

var (
	longOptionRe  = regexp.MustCompile(`^--(no-|without-)?([a-zA-Z][a-zA-Z0-9-]*)(=(.*))?$`)
	shortOptionRe = regexp.MustCompile(`^-([a-zA-Z])(=(.*))?(.*)$`)
)

// token is the classification of one raw argument. Tokenization is pure and
// total: every string maps to exactly one token, independent of its
// neighbors.
type token struct {
	kind tokenKind

	// text is the argument as given.
	text string

	// name is the canonical option name: the long name with any negation
	// prefix folded away ("--without-colors" stores "with-colors"), or the
	// single short letter.
	name string

	// enabled is false when a long option was spelled in its negated form.
	enabled bool

	// value is the inline "=value", valid only when hasValue is set.
	value    string
	hasValue bool

	// rest is the trailing cluster text of a short option ("bc" in "-abc").
	rest string
}

func tokenize(arg string) token {
	if arg == "--" {
		return token{kind: tokenStop, text: arg}
	}
	if m := longOptionRe.FindStringSubmatch(arg); m != nil {
		tok := token{
			kind:    tokenLong,
			text:    arg,
			name:    m[2],
			enabled: m[1] == "",
		}
		// "--without-colors" disables the option registered as
		// "with-colors".
		if m[1] == "without-" {
			tok.name = "with-" + tok.name
		}
		if m[3] != "" {
			tok.hasValue = true
			tok.value = m[4]
		}
		return tok
	}
	if m := shortOptionRe.FindStringSubmatch(arg); m != nil {
		tok := token{
			kind:    tokenShort,
			text:    arg,
			name:    m[1],
			enabled: true,
			rest:    m[4],
		}
		if m[2] != "" {
			tok.hasValue = true
			tok.value = m[3]
		}
		return tok
	}
	if len(arg) > 0 && arg[0] == '-' {
		return token{kind: tokenMalformed, text: arg}
	}
	return token{kind: tokenRaw, text: arg}
}
