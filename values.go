package concierge

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// The typed values below implement pflag.Value so they can be shared with
// any pflag-based surface. The schema rules in schema.go are built on them.

var (
	_ pflag.Value = (*String)(nil)
	_ pflag.Value = (*Bool)(nil)
	_ pflag.Value = (*Int64)(nil)
	_ pflag.Value = (*Float64)(nil)
	_ pflag.Value = (*Duration)(nil)
	_ pflag.Value = (*StringArray)(nil)
	_ pflag.Value = (*EnumValue)(nil)
)

type String string

func StringOf(s *string) *String {
	return (*String)(s)
}

func (s *String) Set(v string) error {
	*s = String(v)
	return nil
}

func (s *String) String() string {
	return string(*s)
}

func (String) Type() string {
	return "string"
}

type Bool bool

func BoolOf(b *bool) *Bool {
	return (*Bool)(b)
}

func (b *Bool) Set(v string) error {
	if v == "" {
		*b = false
		return nil
	}
	parsed, err := strconv.ParseBool(v)
	*b = Bool(parsed)
	return err
}

func (b *Bool) String() string {
	return strconv.FormatBool(bool(*b))
}

func (Bool) Type() string {
	return "bool"
}

type Int64 int64

func Int64Of(i *int64) *Int64 {
	return (*Int64)(i)
}

func (i *Int64) Set(v string) error {
	parsed, err := strconv.ParseInt(v, 10, 64)
	*i = Int64(parsed)
	return err
}

func (i *Int64) String() string {
	return strconv.FormatInt(int64(*i), 10)
}

func (Int64) Type() string {
	return "int64"
}

type Float64 float64

func Float64Of(f *float64) *Float64 {
	return (*Float64)(f)
}

func (f *Float64) Set(v string) error {
	parsed, err := strconv.ParseFloat(v, 64)
	*f = Float64(parsed)
	return err
}

func (f *Float64) String() string {
	return strconv.FormatFloat(float64(*f), 'g', -1, 64)
}

func (Float64) Type() string {
	return "float64"
}

type Duration time.Duration

func DurationOf(d *time.Duration) *Duration {
	return (*Duration)(d)
}

func (d *Duration) Set(v string) error {
	parsed, err := time.ParseDuration(v)
	*d = Duration(parsed)
	return err
}

func (d *Duration) String() string {
	return time.Duration(*d).String()
}

func (Duration) Type() string {
	return "duration"
}

type StringArray []string

func StringArrayOf(ss *[]string) *StringArray {
	return (*StringArray)(ss)
}

func (ss *StringArray) Set(v string) error {
	*ss = append(*ss, v)
	return nil
}

func (ss *StringArray) String() string {
	return strings.Join(*ss, ",")
}

func (StringArray) Type() string {
	return "string-array"
}

// EnumValue accepts only one of a fixed set of choices.
type EnumValue struct {
	Choices []string
	Value   *string
}

func EnumOf(v *string, choices ...string) *EnumValue {
	return &EnumValue{
		Choices: choices,
		Value:   v,
	}
}

func (e *EnumValue) Set(v string) error {
	for _, c := range e.Choices {
		if v == c {
			*e.Value = v
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(e.Choices, ", "))
}

func (e *EnumValue) String() string {
	return *e.Value
}

func (e *EnumValue) Type() string {
	return fmt.Sprintf("enum[%s]", strings.Join(e.Choices, "|"))
}
