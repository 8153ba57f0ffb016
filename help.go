package concierge

import (
	"bufio"
	_ "embed"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"text/tabwriter"
	"text/template"

	"github.com/coder/pretty"
	"github.com/mitchellh/go-wordwrap"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

//go:embed help.tpl
var helpTemplateRaw string

func ttyWidth() int {
	width, _, err := term.GetSize(0)
	if err != nil {
		return 80
	}
	return width
}

// wrapTTY wraps a string to the width of the terminal, or 80 when no
// terminal is detected.
func wrapTTY(s string) string {
	return wordwrap.WrapString(s, uint(ttyWidth()))
}

var (
	helpColorProfile termenv.Profile
	helpColorOnce    sync.Once
)

func helpColor(s string) termenv.Color {
	helpColorOnce.Do(func() {
		helpColorProfile = termenv.NewOutput(os.Stdout).ColorProfile()
		if flag.Lookup("test.v") != nil {
			// Use a consistent colorless profile in tests so that results
			// are deterministic.
			helpColorProfile = termenv.Ascii
		}
	})
	return helpColorProfile.Color(s)
}

// prettyHeader formats a section header: uppercased, colon-suffixed, and
// colored.
func prettyHeader(s string) string {
	headerFg := pretty.FgColor(helpColor("#337CA0"))
	s = strings.ToUpper(s)
	txt := pretty.String(s, ":")
	headerFg.Format(txt)
	return txt.String()
}

var usageTemplate = func() *template.Template {
	optionFg := pretty.FgColor(
		helpColor("#04A777"),
	)
	return template.Must(
		template.New("usage").Funcs(
			template.FuncMap{
				"wrapTTY": wrapTTY,
				"keyword": func(s string) string {
					txt := pretty.String(s)
					optionFg.Format(txt)
					return txt.String()
				},
				"prettyHeader": prettyHeader,
			},
		).Parse(helpTemplateRaw),
	)
}()

// usagePage is the data handed to the usage template.
type usagePage struct {
	Name        string
	Description string
	Error       string
	UsageLine   string

	// Command is the target command, or nil for the top-level page.
	Command        *Command
	CommandOptions OptionSet

	// Commands is the visible top-level listing.
	Commands []*Command

	Globals OptionSet
}

// renderUsage prints the usage page for the given command (or the top-level
// listing when cmd is nil), preceded by the error when one is given.
func (c *Concierge) renderUsage(w io.Writer, cmd *Command, usageErr error) {
	page := usagePage{
		Name:      c.name,
		UsageLine: c.usageLine(cmd),
		Command:   cmd,
		Globals:   c.options,
	}
	if usageErr != nil {
		page.Error = usageErr.Error()
	}
	if cmd != nil {
		page.CommandOptions = cmd.options
		page.Description = cmd.desc
	} else {
		page.Description = c.desc
		for _, registered := range c.commands {
			if !registered.is(FlagHidden) {
				page.Commands = append(page.Commands, registered)
			}
		}
	}

	// The newline limiter keeps template whitespace wrangling bearable;
	// buffer the writes since it works byte-wise.
	outBuf := bufio.NewWriter(w)
	out := newlineLimiter{w: outBuf, limit: 2}
	tw := tabwriter.NewWriter(&out, 0, 0, 2, ' ', 0)
	if err := usageTemplate.Execute(tw, page); err != nil {
		fmt.Fprintf(w, "render usage: %v\n", err)
		return
	}
	_ = tw.Flush()
	_ = outBuf.Flush()
}

// usageLine synthesizes the one-line invocation summary: program name,
// global option marker, command path, and argument placeholders.
func (c *Concierge) usageLine(cmd *Command) string {
	parts := []string{c.name, "[options]"}
	if cmd == nil {
		parts = append(parts, "<command>", "[arguments]")
		return strings.Join(parts, " ")
	}
	parts = append(parts, cmd.path...)
	for _, name := range cmd.required {
		parts = append(parts, "<"+name+">")
	}
	for _, name := range cmd.optional {
		parts = append(parts, "["+name+"]")
	}
	if cmd.spread != "" {
		parts = append(parts, "["+cmd.spread+"...]")
	}
	if len(cmd.options) > 0 {
		parts = append(parts, "[command options]")
	}
	return strings.Join(parts, " ")
}

// newlineLimiter caps runs of blank lines in template output.
type newlineLimiter struct {
	w     *bufio.Writer
	limit int

	newLineCounter int
}

// isSpace is based on unicode.IsSpace, but only checks ASCII characters.
func isSpace(b byte) bool {
	switch b {
	case '\t', '\n', '\v', '\f', '\r', ' ':
		return true
	}
	return false
}

func (lm *newlineLimiter) Write(p []byte) (int, error) {
	for _, b := range p {
		switch {
		case b == '\r':
			continue
		case b == '\n':
			lm.newLineCounter++
			if lm.newLineCounter > lm.limit {
				continue
			}
		case !isSpace(b):
			lm.newLineCounter = 0
		}
		if err := lm.w.WriteByte(b); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}
