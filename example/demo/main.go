package main

import (
	"context"
	"fmt"

	"github.com/concierge-cli/concierge"
)

func main() {
	c := concierge.New("demo").
		Describe("A walkthrough of the command surface.").
		Option("-v, --verbose", "Print extra detail.", concierge.WithMax(3))

	c.Command("greet <name> [greeting]").
		Describe("Greet somebody.").
		Option("-s, --shout", "Shout the greeting.").
		Handler(func(ctx context.Context, inv *concierge.Invocation) error {
			greeting := inv.Env.String("greeting")
			if greeting == "" {
				greeting = "hello"
			}
			line := fmt.Sprintf("%s, %s!", greeting, inv.Env.String("name"))
			if inv.Env.Bool("shout") {
				line = fmt.Sprintf("%s!!", line)
			}
			fmt.Fprintln(inv.Stdout, line)
			return nil
		})

	c.Command("remote").
		Describe("Show configured remotes.").
		Handler(func(ctx context.Context, inv *concierge.Invocation) error {
			fmt.Fprintln(inv.Stdout, "origin")
			return nil
		})

	c.Command("remote add <name> <url>").
		Describe("Add a remote.").
		Option("-f, --fetch", "Fetch immediately after adding.").
		Handler(func(ctx context.Context, inv *concierge.Invocation) error {
			fmt.Fprintf(inv.Stdout, "added %s -> %s\n",
				inv.Env.String("name"), inv.Env.String("url"))
			return nil
		})

	c.BeforeEach(func(ctx context.Context, inv *concierge.Invocation) error {
		if inv.Env.Int("verbose") > 1 {
			fmt.Fprintf(inv.Stderr, "debug: running %q with %v\n",
				inv.Command.FullName(), inv.Env)
		}
		return nil
	})

	c.Main()
}
