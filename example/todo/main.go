// Command todo is a small task list showing a default command with a spread
// argument, schema validation, and a YAML config wired through a global
// option.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/concierge-cli/concierge"
	"gopkg.in/yaml.v3"
)

type config struct {
	DataFile string `yaml:"data_file"`
	Accent   string `yaml:"accent"`
}

func loadConfig(path string) (config, error) {
	cfg := config{DataFile: "todo.txt", Accent: "212"}
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

func main() {
	var cfg config

	c := concierge.New("todo").
		Describe("Keep a list of things to do.").
		Option("-c, --config <file>", "Path to a YAML configuration file.").
		Option("--with-style", "Style the output.", concierge.WithDefault(true))

	c.BeforeEach(func(ctx context.Context, inv *concierge.Invocation) error {
		loaded, err := loadConfig(inv.Env.String("config"))
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	})

	header := func(env concierge.Env, s string) string {
		if env["withStyle"] == false {
			return s
		}
		return lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(cfg.Accent)).
			Render(s)
	}

	c.Command("add <words...>").
		Describe("Add a task.").
		Default().
		Handler(func(ctx context.Context, inv *concierge.Invocation) error {
			task := strings.Join(inv.Env.Strings("words"), " ")
			f, err := os.OpenFile(cfg.DataFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
			if err != nil {
				return err
			}
			defer f.Close()
			if _, err := fmt.Fprintln(f, task); err != nil {
				return err
			}
			fmt.Fprintf(inv.Stdout, "%s %s\n", header(inv.Env, "added:"), task)
			return nil
		})

	c.Command("list [count]").
		Describe("List tasks.").
		Validate("count", concierge.IntRule()).
		Handler(func(ctx context.Context, inv *concierge.Invocation) error {
			raw, err := os.ReadFile(cfg.DataFile)
			if os.IsNotExist(err) {
				fmt.Fprintln(inv.Stdout, "nothing to do")
				return nil
			}
			if err != nil {
				return err
			}
			lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
			if n := inv.Env.Int("count"); n > 0 && int(n) < len(lines) {
				lines = lines[:n]
			}
			fmt.Fprintln(inv.Stdout, header(inv.Env, "tasks:"))
			for i, line := range lines {
				fmt.Fprintf(inv.Stdout, "  %d. %s\n", i+1, line)
			}
			return nil
		})

	c.Main()
}
