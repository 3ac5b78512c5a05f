package recommender

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/festhub/eventhub/internal/domain/recommendation"
	"github.com/festhub/eventhub/internal/pkg/logger"
)

// TestHelperProcess is not a real test. It stands in for the decision
// procedure when re-executed by helperInvoker.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	arg := os.Args[len(os.Args)-1]

	switch os.Getenv("HELPER_MODE") {
	case "echo":
		fmt.Print(arg)
	case "select":
		var req recommendation.Request
		if err := json.Unmarshal([]byte(arg), &req); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		time.Sleep(20 * time.Millisecond)
		fmt.Printf(`{"selected_events":[],"total_estimated_cost":0,"budget":%v,"events_selected":0}`, req.Budget)
	case "fail":
		fmt.Print("partial output")
		fmt.Fprintln(os.Stderr, "ModuleNotFoundError: no pandas")
		os.Exit(1)
	case "silent-fail":
		os.Exit(3)
	case "not-json":
		fmt.Println("not json")
	case "pwd":
		dir, _ := os.Getwd()
		fmt.Print(dir)
	case "env":
		fmt.Print(os.Getenv("EVENTHUB_INHERITED"))
	case "sleep":
		time.Sleep(30 * time.Second)
	case "flood":
		fmt.Print(strings.Repeat("x", 1<<20))
	}
	os.Exit(0)
}

func helperInvoker(mode string, mutate func(*Config)) *Invoker {
	cfg := Config{
		Command: os.Args[0],
		Args:    []string{"-test.run=^TestHelperProcess$", "--"},
		Env:     []string{"GO_WANT_HELPER_PROCESS=1", "HELPER_MODE=" + mode},
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return NewInvoker(cfg, logger.New(logger.Config{Level: "error", Format: "json"}))
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestInvoker_PassesExactArgument(t *testing.T) {
	req := &recommendation.Request{
		Budget:        50000,
		MinEvents:     floatPtr(2),
		EventTypes:    []string{"Concert", "Workshop"},
		MinPopularity: floatPtr(5),
	}

	out, err := helperInvoker("echo", nil).Invoke(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"budget":50000,"min_events":2,"event_types":["Concert","Workshop"],"min_popularity":5}`
	if string(out) != want {
		t.Errorf("expected argument %s, got %s", want, out)
	}
}

func TestInvoker_NonZeroExitCarriesStderr(t *testing.T) {
	_, err := helperInvoker("fail", nil).Invoke(context.Background(), &recommendation.Request{Budget: 10})
	if !errors.Is(err, recommendation.ErrFailed) {
		t.Fatalf("expected procedure failed, got %v", err)
	}

	var recErr *recommendation.Error
	errors.As(err, &recErr)
	if recErr.Detail != "ModuleNotFoundError: no pandas" {
		t.Errorf("expected trimmed stderr as detail, got %q", recErr.Detail)
	}
}

func TestInvoker_RepeatedFailuresKeepTheirOwnStderr(t *testing.T) {
	inv := helperInvoker("fail", nil)

	for i := 0; i < 12; i++ {
		_, err := inv.Invoke(context.Background(), &recommendation.Request{Budget: float64(i + 1)})

		var recErr *recommendation.Error
		if !errors.As(err, &recErr) || recErr.Kind != recommendation.ErrProcedureFailed {
			t.Fatalf("call %d: expected procedure failed, got %v", i, err)
		}
		if recErr.Detail != "ModuleNotFoundError: no pandas" {
			t.Errorf("call %d: expected stderr detail, got %q", i, recErr.Detail)
		}
	}
}

func TestInvoker_NonZeroExitWithoutStderr(t *testing.T) {
	_, err := helperInvoker("silent-fail", nil).Invoke(context.Background(), &recommendation.Request{Budget: 10})

	var recErr *recommendation.Error
	if !errors.As(err, &recErr) || recErr.Kind != recommendation.ErrProcedureFailed {
		t.Fatalf("expected procedure failed, got %v", err)
	}
	if recErr.Detail != "Unknown error" {
		t.Errorf("expected generic marker, got %q", recErr.Detail)
	}
}

func TestInvoker_LaunchFailure(t *testing.T) {
	inv := helperInvoker("echo", func(cfg *Config) {
		cfg.Command = filepath.Join(t.TempDir(), "does-not-exist")
	})

	_, err := inv.Invoke(context.Background(), &recommendation.Request{Budget: 10})
	if !errors.Is(err, recommendation.ErrUnavailable) {
		t.Fatalf("expected procedure unavailable, got %v", err)
	}
	var recErr *recommendation.Error
	errors.As(err, &recErr)
	if recErr.Detail == "" {
		t.Error("expected launch error detail")
	}
}

func TestInvoker_UsesWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	inv := helperInvoker("pwd", func(cfg *Config) {
		cfg.Dir = dir
	})

	out, err := inv.Invoke(context.Background(), &recommendation.Request{Budget: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := filepath.EvalSymlinks(string(out))
	want, _ := filepath.EvalSymlinks(dir)
	if got != want {
		t.Errorf("expected working directory %s, got %s", want, got)
	}
}

func TestInvoker_InheritsEnvironment(t *testing.T) {
	t.Setenv("EVENTHUB_INHERITED", "from-parent")

	out, err := helperInvoker("env", nil).Invoke(context.Background(), &recommendation.Request{Budget: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "from-parent" {
		t.Errorf("expected inherited variable, got %q", out)
	}
}

func TestInvoker_StdoutIsReturnedUntrimmed(t *testing.T) {
	out, err := helperInvoker("not-json", nil).Invoke(context.Background(), &recommendation.Request{Budget: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "not json\n" {
		t.Errorf("expected raw stdout, got %q", out)
	}

	_, err = Translate(out)
	var recErr *recommendation.Error
	if !errors.As(err, &recErr) || recErr.Detail != "not json" {
		t.Errorf("expected malformed result with detail 'not json', got %v", err)
	}
}

func TestInvoker_Timeout(t *testing.T) {
	inv := helperInvoker("sleep", func(cfg *Config) {
		cfg.Timeout = 200 * time.Millisecond
	})

	start := time.Now()
	_, err := inv.Invoke(context.Background(), &recommendation.Request{Budget: 10})
	if !errors.Is(err, recommendation.ErrFailed) {
		t.Fatalf("expected procedure failed, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded in chain, got %v", err)
	}
	if time.Since(start) > 10*time.Second {
		t.Error("process was not killed on timeout")
	}
}

func TestInvoker_ContextCancelKillsProcess(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := helperInvoker("sleep", nil).Invoke(ctx, &recommendation.Request{Budget: 10})
	if !errors.Is(err, recommendation.ErrFailed) {
		t.Fatalf("expected procedure failed, got %v", err)
	}
}

func TestInvoker_OutputCap(t *testing.T) {
	inv := helperInvoker("flood", func(cfg *Config) {
		cfg.MaxOutputBytes = 1024
	})

	_, err := inv.Invoke(context.Background(), &recommendation.Request{Budget: 10})
	var recErr *recommendation.Error
	if !errors.As(err, &recErr) || recErr.Kind != recommendation.ErrProcedureFailed {
		t.Fatalf("expected procedure failed, got %v", err)
	}
	if !strings.Contains(recErr.Detail, "1024") {
		t.Errorf("expected limit in detail, got %q", recErr.Detail)
	}
}

func TestInvoker_ConcurrentRequestsAreIsolated(t *testing.T) {
	inv := helperInvoker("select", nil)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 1; i <= 8; i++ {
		wg.Add(1)
		go func(budget float64) {
			defer wg.Done()
			out, err := inv.Invoke(context.Background(), &recommendation.Request{Budget: budget})
			if err != nil {
				errs <- err
				return
			}
			res, err := Translate(out)
			if err != nil {
				errs <- err
				return
			}
			if res.Selection == nil || res.Selection.Budget != budget {
				errs <- fmt.Errorf("budget %v: got %s", budget, res.Raw)
			}
		}(float64(i * 1000))
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestCappedBuffer(t *testing.T) {
	b := &cappedBuffer{limit: 4}
	n, err := b.Write([]byte("abcdef"))
	if err != nil || n != 6 {
		t.Fatalf("expected full write accepted, got n=%d err=%v", n, err)
	}
	if b.buf.String() != "abcd" || !b.overflow {
		t.Errorf("expected truncated buffer with overflow, got %q overflow=%v", b.buf.String(), b.overflow)
	}

	unbounded := &cappedBuffer{}
	unbounded.Write([]byte("abcdef"))
	if unbounded.overflow || unbounded.buf.String() != "abcdef" {
		t.Errorf("expected unbounded buffer, got %q", unbounded.buf.String())
	}
}
