package concierge

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Rule checks and coerces one environment value. Rules are attached to
// option and argument names via Concierge.Validate and Command.Validate;
// environment keys without a rule pass through untouched.
type Rule interface {
	Coerce(v any) (any, error)
}

// Schema maps camel-cased environment keys to their rules.
type Schema map[string]Rule

// merged returns the global rules overlaid with the command-local ones.
func (s Schema) merged(local Schema) Schema {
	out := make(Schema, len(s)+len(local))
	for k, r := range s {
		out[k] = r
	}
	for k, r := range local {
		out[k] = r
	}
	return out
}

// validateEnv applies rules to env and returns the coerced environment.
// Keys absent from env are skipped, as are nil values (the documented
// binding of a negated option). All violations are reported in one
// UsageError with the messages joined Oxford-comma style.
func validateEnv(cmd *Command, env Env, rules Schema) (Env, error) {
	out := make(Env, len(env))
	for k, v := range env {
		out[k] = v
	}

	keys := make([]string, 0, len(rules))
	for k := range rules {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var violations []string
	for _, key := range keys {
		v, ok := env[key]
		if !ok || v == nil {
			continue
		}
		coerced, err := rules[key].Coerce(v)
		if err != nil {
			violations = append(violations, fmt.Sprintf("%q %s", key, err))
			continue
		}
		out[key] = coerced
	}
	if len(violations) > 0 {
		return nil, usagef(cmd, "%s", oxfordJoin(violations))
	}
	return out, nil
}

type ruleFunc func(v any) (any, error)

func (f ruleFunc) Coerce(v any) (any, error) {
	return f(v)
}

// IntRule coerces a value to int64.
func IntRule() Rule {
	return ruleFunc(func(v any) (any, error) {
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int64:
			return n, nil
		}
		var n int64
		if err := Int64Of(&n).Set(fmt.Sprint(v)); err != nil {
			return nil, errors.New("must be an integer")
		}
		return n, nil
	})
}

// FloatRule coerces a value to float64.
func FloatRule() Rule {
	return ruleFunc(func(v any) (any, error) {
		var f float64
		if err := Float64Of(&f).Set(fmt.Sprint(v)); err != nil {
			return nil, errors.New("must be a number")
		}
		return f, nil
	})
}

// BoolRule coerces a value to bool.
func BoolRule() Rule {
	return ruleFunc(func(v any) (any, error) {
		if b, ok := v.(bool); ok {
			return b, nil
		}
		var b bool
		if err := BoolOf(&b).Set(fmt.Sprint(v)); err != nil {
			return nil, errors.New("must be a boolean")
		}
		return b, nil
	})
}

// DurationRule coerces a value to time.Duration.
func DurationRule() Rule {
	return ruleFunc(func(v any) (any, error) {
		var d time.Duration
		if err := DurationOf(&d).Set(fmt.Sprint(v)); err != nil {
			return nil, errors.New("must be a duration such as 30s or 5m")
		}
		return d, nil
	})
}

// StringRule coerces a value to its string form.
func StringRule() Rule {
	return ruleFunc(func(v any) (any, error) {
		if s, ok := v.(string); ok {
			return s, nil
		}
		return fmt.Sprint(v), nil
	})
}

// EnumRule accepts only one of the given choices.
func EnumRule(choices ...string) Rule {
	return ruleFunc(func(v any) (any, error) {
		var s string
		enum := EnumOf(&s, choices...)
		if err := enum.Set(fmt.Sprint(v)); err != nil {
			return nil, err
		}
		return s, nil
	})
}

// EachRule applies an element rule to every entry of a spread value.
func EachRule(elem Rule) Rule {
	return ruleFunc(func(v any) (any, error) {
		items, ok := v.([]string)
		if !ok {
			return nil, errors.New("must be a list")
		}
		out := make([]any, 0, len(items))
		for _, item := range items {
			coerced, err := elem.Coerce(item)
			if err != nil {
				return nil, err
			}
			out = append(out, coerced)
		}
		return out, nil
	})
}
