package concierge

import "strings"

// Env is the invocation environment: every option and argument value for one
// run, keyed by camel-cased name. The same map instance flows through every
// hook and the handler, so values injected by a BeforeEach hook are visible
// downstream.
type Env map[string]any

// Bool reports whether the named value is a true boolean.
func (e Env) Bool(name string) bool {
	v, _ := e[name].(bool)
	return v
}

// String returns the named value as a string, or "" when unset or not a
// string.
func (e Env) String(name string) string {
	v, _ := e[name].(string)
	return v
}

// Strings returns the named value as a string slice, the shape a spread
// argument is bound with.
func (e Env) Strings(name string) []string {
	v, _ := e[name].([]string)
	return v
}

// Int returns the named value as an int64 after schema coercion.
func (e Env) Int(name string) int64 {
	switch v := e[name].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}

// camelName converts a kebab-case option or argument name to the camel-cased
// key it is stored under: "with-colors" becomes "withColors".
func camelName(name string) string {
	parts := strings.Split(name, "-")
	var sb strings.Builder
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i == 0 {
			sb.WriteString(part)
			continue
		}
		sb.WriteString(strings.ToUpper(part[:1]))
		sb.WriteString(part[1:])
	}
	return sb.String()
}
