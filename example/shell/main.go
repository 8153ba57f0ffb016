// Command shell resolves each line read from an interactive prompt through
// the same registry, showing that the engine is reusable outside os.Args.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/concierge-cli/concierge"
)

func newRegistry() *concierge.Concierge {
	c := concierge.New("shell")

	c.Command("say <words...>").
		Describe("Echo the given words.").
		Option("-u, --upper", "Uppercase the output.").
		Handler(func(ctx context.Context, inv *concierge.Invocation) error {
			line := strings.Join(inv.Env.Strings("words"), " ")
			if inv.Env.Bool("upper") {
				line = strings.ToUpper(line)
			}
			fmt.Fprintln(inv.Stdout, line)
			return nil
		})

	c.Command("quit").
		Describe("Leave the shell.").
		Handler(func(ctx context.Context, inv *concierge.Invocation) error {
			return io.EOF
		})

	return c
}

func main() {
	rl, err := readline.New("shell> ")
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	c := newRegistry()
	ctx := context.Background()

	for {
		line, err := rl.Readline()
		if err != nil {
			return
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		// WithOS would reset Args from os.Args; wire the stdio directly so
		// the line just read stays the argument list.
		inv := c.Invoke(args...).WithContext(ctx)
		inv.Stdin = os.Stdin
		inv.Stdout = os.Stdout
		inv.Stderr = os.Stderr
		err = inv.Run()

		var uerr *concierge.UsageError
		switch {
		case errors.As(err, &uerr):
			// Usage text was already printed; stay in the loop.
		case errors.Is(err, io.EOF):
			return
		case err != nil:
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
}
