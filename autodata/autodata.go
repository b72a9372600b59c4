package autodata

import (
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/pumped-fn/autofixture"
	"github.com/pumped-fn/autofixture/extensions"
	"github.com/pumped-fn/autofixture/pkg/config"
)

// ConfigEnv names the environment variable holding a YAML config path.
const ConfigEnv = "AUTOFIXTURE_CONFIG"

// NewFixture creates a default fixture for one test. Settings come from the
// file named by ConfigEnv when set; logs go to tb.Log, and a failed
// resolution logs its resolution tree. The fixture is disposed on cleanup.
func NewFixture(tb testing.TB, opts ...autofixture.Option) *autofixture.Fixture {
	tb.Helper()

	cfg := config.Default()
	if path := os.Getenv(ConfigEnv); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			tb.Fatalf("autodata: %v", err)
		}
		cfg = loaded
	}

	logger := slog.New(extensions.NewHumanHandler(testWriter{tb}, cfg.Level()))
	base := []autofixture.Option{
		autofixture.WithConfig(cfg),
		autofixture.WithLogger(logger),
		autofixture.WithExtension(extensions.NewTreeExtension(logger)),
	}

	f, err := autofixture.NewDefault(append(base, opts...)...)
	if err != nil {
		tb.Fatalf("autodata: %v", err)
	}
	tb.Cleanup(func() {
		if err := f.Dispose(); err != nil {
			tb.Errorf("autodata: %v", err)
		}
	})
	return f
}

// New returns a T with every field generated by a fresh fixture.
func New[T any](tb testing.TB, opts ...autofixture.Option) T {
	tb.Helper()
	var v T
	if err := Fill(NewFixture(tb, opts...), &v); err != nil {
		tb.Fatalf("autodata: %v", err)
	}
	return v
}

// NewInline is New with the leading fields set to inline.
func NewInline[T any](tb testing.TB, inline ...any) T {
	tb.Helper()
	var v T
	if err := Fill(NewFixture(tb), &v, inline...); err != nil {
		tb.Fatalf("autodata: %v", err)
	}
	return v
}

type testWriter struct {
	tb testing.TB
}

func (w testWriter) Write(p []byte) (int, error) {
	w.tb.Helper()
	w.tb.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
