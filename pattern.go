package concierge

import (
	"regexp"
	"strings"
)

// Definition is the compiled form of a command pattern: the literal path,
// the declared arguments, and any option clauses found in the pattern.
type Definition struct {
	Path     []string
	Required []string
	Optional []string
	Spread   string
	Options  []Option
}

var (
	pathSegmentRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*$`)
	requiredArgRe = regexp.MustCompile(`^<([a-zA-Z][a-zA-Z0-9-]*)>$`)
	optionalArgRe = regexp.MustCompile(`^\[([a-zA-Z][a-zA-Z0-9-]*)\]$`)
	spreadArgRe   = regexp.MustCompile(`^[<\[]([a-zA-Z][a-zA-Z0-9-]*)\.\.\.[>\]]$`)
)

// ParsePattern compiles a pattern string into a Definition.
//
// A pattern is a space-separated sequence of segments:
//
//	remote add <name> <url> [branch] [tags...] [-f|--force] [-m|--message <text>]
//
// Leading bare words form the command path; <name> declares a required
// argument, [name] an optional one, and <name...> or [name...] a spread
// collecting every leftover positional token. Bracketed clauses beginning
// with a dash declare options local to the command.
func ParsePattern(pattern string) (Definition, error) {
	var def Definition
	segments, err := splitPattern(pattern)
	if err != nil {
		return def, err
	}
	for _, seg := range segments {
		switch {
		case strings.HasPrefix(seg, "[-"):
			opt, err := parseOptionSpec(strings.Trim(seg, "[]"))
			if err != nil {
				return def, err
			}
			def.Options = append(def.Options, opt)

		case spreadArgRe.MatchString(seg):
			if def.Spread != "" {
				return def, configErrorf("pattern %q declares two spread arguments", pattern)
			}
			def.Spread = spreadArgRe.FindStringSubmatch(seg)[1]

		case requiredArgRe.MatchString(seg):
			if len(def.Optional) > 0 || def.Spread != "" {
				return def, configErrorf("pattern %q declares a required argument after an optional one", pattern)
			}
			def.Required = append(def.Required, requiredArgRe.FindStringSubmatch(seg)[1])

		case optionalArgRe.MatchString(seg):
			if def.Spread != "" {
				return def, configErrorf("pattern %q declares an argument after the spread", pattern)
			}
			def.Optional = append(def.Optional, optionalArgRe.FindStringSubmatch(seg)[1])

		case pathSegmentRe.MatchString(seg):
			if len(def.Required) > 0 || len(def.Optional) > 0 || def.Spread != "" || len(def.Options) > 0 {
				return def, configErrorf("pattern %q has a path segment %q after arguments or options", pattern, seg)
			}
			def.Path = append(def.Path, seg)

		default:
			return def, configErrorf("pattern %q has an unrecognized segment %q", pattern, seg)
		}
	}
	return def, nil
}

// parseTopPattern compiles a top-level pattern, which may declare only
// options.
func parseTopPattern(pattern string) (Definition, error) {
	def, err := ParsePattern(pattern)
	if err != nil {
		return def, err
	}
	if len(def.Path) > 0 {
		return def, configErrorf("top-level pattern %q must not declare a command path", pattern)
	}
	if len(def.Required) > 0 || len(def.Optional) > 0 || def.Spread != "" {
		return def, configErrorf("top-level pattern %q must not declare arguments", pattern)
	}
	return def, nil
}

// splitPattern splits a pattern on spaces, keeping bracketed option clauses
// (which may contain spaces) together.
func splitPattern(pattern string) ([]string, error) {
	var segments []string
	var cur strings.Builder
	depth := 0
	for _, r := range pattern {
		switch {
		case r == '[':
			depth++
			cur.WriteRune(r)
		case r == ']':
			depth--
			if depth < 0 {
				return nil, configErrorf("pattern %q has an unbalanced %q", pattern, "]")
			}
			cur.WriteRune(r)
		case r == ' ' && depth == 0:
			if cur.Len() > 0 {
				segments = append(segments, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if depth != 0 {
		return nil, configErrorf("pattern %q has an unbalanced %q", pattern, "[")
	}
	if cur.Len() > 0 {
		segments = append(segments, cur.String())
	}
	return segments, nil
}
