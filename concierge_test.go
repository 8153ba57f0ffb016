package concierge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestCheckDuplicateDefault(t *testing.T) {
	c := New("app")
	c.Command("one").Default()
	c.Command("two").Default()

	err := c.Check()
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *ConfigurationError, got %v", err)
	}
	if !strings.Contains(cerr.Message, "default") {
		t.Errorf("message = %q, want a default-command report", cerr.Message)
	}
}

func TestCheckGlobalCollision(t *testing.T) {
	c := New("app").
		Option("-v, --verbose", "Noisy.").
		Option("-v, --version", "Version.")

	if err := c.Check(); err == nil {
		t.Fatal("expected collision error for duplicate short -v")
	}
}

func TestCheckCommandLocalCollision(t *testing.T) {
	c := New("app")
	c.Command("build").
		Option("--output <file>", "Output.").
		Option("-o, --output <file>", "Output again.")

	if err := c.Check(); err == nil {
		t.Fatal("expected collision error for duplicate long --output")
	}
}

func TestCheckAllowsShadowingGlobals(t *testing.T) {
	c := New("app").Option("-f, --force", "Global force.")
	c.Command("push").Option("-f, --force", "Command force.")
	c.Command("pull").Option("-f, --force", "Another command force.")

	if err := c.Check(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckRunsBeforeParsing(t *testing.T) {
	c := New("app")
	c.Command("one").Default()
	c.Command("two").Default()

	// Even a malformed invocation reports the configuration problem first.
	err := c.Invoke("---garbage").Run()
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *ConfigurationError, got %v", err)
	}
}

func TestHookOrderAndSharedEnv(t *testing.T) {
	var order []string
	c := New("app").
		BeforeEach(func(ctx context.Context, inv *Invocation) error {
			order = append(order, "before1")
			inv.Env["injected"] = "from-hook"
			return nil
		}).
		BeforeEach(func(ctx context.Context, inv *Invocation) error {
			order = append(order, "before2")
			return nil
		}).
		AfterEach(func(ctx context.Context, inv *Invocation) error {
			order = append(order, "after")
			if inv.Env["handled"] != true {
				t.Error("after-hook should observe handler mutations")
			}
			return nil
		})
	c.Command("go").Handler(func(ctx context.Context, inv *Invocation) error {
		order = append(order, "handler")
		if inv.Env["injected"] != "from-hook" {
			t.Error("handler should observe before-hook mutations")
		}
		inv.Env["handled"] = true
		return nil
	})

	if err := c.Invoke("go").Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"before1", "before2", "handler", "after"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestFailingBeforeHookSkipsHandlerAndAfterHooks(t *testing.T) {
	boom := errors.New("boom")
	var handled, after bool
	c := New("app").
		BeforeEach(func(ctx context.Context, inv *Invocation) error {
			return boom
		}).
		AfterEach(func(ctx context.Context, inv *Invocation) error {
			after = true
			return nil
		})
	c.Command("go").Handler(func(ctx context.Context, inv *Invocation) error {
		handled = true
		return nil
	})

	err := c.Invoke("go").Run()
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want it to wrap the hook failure", err)
	}
	if handled || after {
		t.Errorf("handled=%v after=%v, want neither to run", handled, after)
	}
}

func TestHandlerErrorIsNotAUsageError(t *testing.T) {
	boom := errors.New("boom")
	c := New("app")
	c.Command("go").Handler(func(ctx context.Context, inv *Invocation) error {
		return boom
	})

	err := c.Invoke("go").Run()
	var rerr *RunError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *RunError, got %T: %v", err, err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want it to wrap the handler failure", err)
	}
	var uerr *UsageError
	if errors.As(err, &uerr) {
		t.Error("handler failures must not be reported as usage errors")
	}
}

func TestUsageErrorSkipsHandler(t *testing.T) {
	var handled bool
	c := New("app")
	c.Command("go").Handler(func(ctx context.Context, inv *Invocation) error {
		handled = true
		return nil
	})

	var stdout bytes.Buffer
	inv := c.Invoke("go", "--bogus")
	inv.Stdout = &stdout

	err := inv.Run()
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected *UsageError, got %v", err)
	}
	if handled {
		t.Error("handler must not run on a usage error")
	}
	if !strings.Contains(stdout.String(), "bogus") {
		t.Errorf("usage output %q should name the unknown option", stdout.String())
	}
}

func TestHelpSkipsDispatch(t *testing.T) {
	var handled bool
	c := New("app").Describe("A test application.")
	c.Command("go <dest>").Describe("Travel somewhere.").Handler(func(ctx context.Context, inv *Invocation) error {
		handled = true
		return nil
	})

	var stdout bytes.Buffer
	inv := c.Invoke("go", "--help")
	inv.Stdout = &stdout

	if err := inv.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if handled {
		t.Error("handler must not run when --help is set")
	}
	out := stdout.String()
	if !strings.Contains(out, "USAGE") {
		t.Errorf("help output %q should contain a usage section", out)
	}
	if !strings.Contains(out, "go") {
		t.Errorf("help output %q should name the command", out)
	}
}

func TestInvocationKeepsArgsAcrossCopies(t *testing.T) {
	// The embedding pattern: feed one line at a time through Invoke with
	// explicit stdio. WithContext must not disturb the argument list.
	c := New("app")
	c.Command("say <word>").Handler(func(ctx context.Context, inv *Invocation) error {
		fmt.Fprintln(inv.Stdout, inv.Env.String("word"))
		return nil
	})

	var stdout bytes.Buffer
	for _, word := range []string{"first", "second"} {
		inv := c.Invoke("say", word).WithContext(context.Background())
		inv.Stdout = &stdout
		if err := inv.Run(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if got := stdout.String(); got != "first\nsecond\n" {
		t.Errorf("output = %q, want each line's own argument echoed", got)
	}
}

func TestTopLevelHelpListsVisibleCommands(t *testing.T) {
	c := New("app").Describe("A test application.")
	c.Command("visible").Describe("Shown.")
	c.Command("secret").Describe("Not shown.").Hidden()

	var stdout bytes.Buffer
	inv := c.Invoke("--help")
	inv.Stdout = &stdout

	if err := inv.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, "visible") {
		t.Errorf("help output %q should list visible commands", out)
	}
	if strings.Contains(out, "secret") {
		t.Errorf("help output %q must not list hidden commands", out)
	}
}

func TestCommandWithoutHandlerPrintsUsage(t *testing.T) {
	c := New("app")
	c.Command("stub").Describe("No handler yet.")

	var stdout bytes.Buffer
	inv := c.Invoke("stub")
	inv.Stdout = &stdout

	if err := inv.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout.String(), "USAGE") {
		t.Errorf("output %q should fall back to usage text", stdout.String())
	}
}

func TestGlobalPatternRegistration(t *testing.T) {
	c := New("app").Global("[-v|--verbose] [--color <mode>]")
	c.Command("go")

	env, _ := runCapture(t, c, "--verbose", "go")
	if env["verbose"] != true {
		t.Errorf("verbose = %v, want true", env["verbose"])
	}
}

func TestGlobalPatternRejectsPathAndArgs(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a ConfigurationError panic")
		}
		if _, ok := r.(*ConfigurationError); !ok {
			t.Fatalf("recovered %T, want *ConfigurationError", r)
		}
	}()
	New("app").Global("serve [-v|--verbose]")
}

func TestCommandPatternRequiresPath(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a ConfigurationError panic")
		}
	}()
	New("app").Command("<orphan>")
}

func TestValidationCoercesEnvironment(t *testing.T) {
	c := New("app")
	c.Command("serve [host]").
		Option("-p, --port <n>", "Port.", WithDefault("8080")).
		Validate("port", IntRule())

	env, _ := runCapture(t, c, "serve", "-p", "9090")
	if got := env.Int("port"); got != 9090 {
		t.Fatalf("port = %v, want the coerced 9090", env["port"])
	}
}

func TestValidationFailureJoinsMessages(t *testing.T) {
	c := New("app").Validate("retries", IntRule())
	c.Command("fetch").
		Option("--retries <n>", "Retry count.").
		Option("--timeout <d>", "Timeout.").
		Option("--mode <m>", "Mode.").
		Validate("timeout", DurationRule()).
		Validate("mode", EnumRule("fast", "safe"))

	uerr := runUsageError(t, c, "fetch", "--retries", "abc", "--timeout", "xyz", "--mode", "weird")
	msg := uerr.Message
	if !strings.Contains(msg, ", and ") {
		t.Errorf("message = %q, want Oxford-comma joining", msg)
	}
	for _, fragment := range []string{"retries", "timeout", "mode"} {
		if !strings.Contains(msg, fragment) {
			t.Errorf("message = %q, want it to mention %q", msg, fragment)
		}
	}
}

func TestValidationPassesUnknownKeysThrough(t *testing.T) {
	c := New("app").Validate("port", IntRule())
	c.Command("note <text>")

	env, _ := runCapture(t, c, "note", "hello")
	if got := env.String("text"); got != "hello" {
		t.Fatalf("text = %q, want the untouched %q", got, "hello")
	}
}

func TestValidationSkipsNegatedNil(t *testing.T) {
	c := New("app")
	c.Command("serve").
		Option("-p, --port <n>", "Port.").
		Validate("port", IntRule())

	env, _ := runCapture(t, c, "serve", "--no-port")
	if got, ok := env["port"]; !ok || got != nil {
		t.Fatalf("port = %v, want the nil disabled value to survive validation", got)
	}
}

func TestCamelName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"verbose", "verbose"},
		{"with-colors", "withColors"},
		{"dry-run", "dryRun"},
		{"a-b-c", "aBC"},
	}
	for _, tt := range tests {
		if got := camelName(tt.in); got != tt.want {
			t.Errorf("camelName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
