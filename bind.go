package concierge

// bindArgs maps the leftover positional tokens onto the command's declared
// argument names and fills in every absent option with its initial value.
// Required names are taken in declaration order, then optional names while
// tokens remain; the spread collects the rest. Optional names that go
// unfilled stay out of the environment entirely.
func bindArgs(cmd *Command, globals OptionSet, env Env, rest []string) error {
	for _, name := range cmd.required {
		if len(rest) == 0 {
			return usagef(cmd, "missing required argument <%s>", name)
		}
		env[camelName(name)] = rest[0]
		rest = rest[1:]
	}
	for _, name := range cmd.optional {
		if len(rest) == 0 {
			break
		}
		env[camelName(name)] = rest[0]
		rest = rest[1:]
	}
	if cmd.spread != "" {
		env[camelName(cmd.spread)] = append([]string(nil), rest...)
		rest = nil
	}
	if len(rest) > 0 {
		return usagef(cmd, "too many arguments")
	}

	// Command-local options default first so a shadowed global name keeps
	// the command's value.
	for _, opt := range cmd.options {
		if _, ok := env[opt.envKey()]; !ok {
			env[opt.envKey()] = opt.Initial
		}
	}
	for _, opt := range globals {
		if _, ok := env[opt.envKey()]; !ok {
			env[opt.envKey()] = opt.Initial
		}
	}
	return nil
}
