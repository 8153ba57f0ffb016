// Command proxy forwards everything after its own name to a child process,
// options included, without interpreting any of it.
package main

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/concierge-cli/concierge"
)

func main() {
	c := concierge.New("proxy").
		Describe("Run other programs without touching their flags.")

	c.Command("run <program> [args...]").
		Describe("Execute a program, passing the remaining tokens through verbatim.").
		Proxy().
		Option("-q, --quiet", "Suppress the command banner.").
		Handler(func(ctx context.Context, inv *concierge.Invocation) error {
			program := inv.Env.String("program")
			args := inv.Env.Strings("args")
			if !inv.Env.Bool("quiet") {
				fmt.Fprintf(inv.Stderr, "+ %s %v\n", program, args)
			}
			cmd := exec.CommandContext(ctx, program, args...)
			cmd.Stdin = inv.Stdin
			cmd.Stdout = inv.Stdout
			cmd.Stderr = inv.Stderr
			return cmd.Run()
		})

	c.Main()
}
