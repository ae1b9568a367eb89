package lifecycle_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/JaimeStill/promptiverse/pkg/lifecycle"
)

func TestStartupSetsReady(t *testing.T) {
	lc := lifecycle.New()

	var ran atomic.Int32
	for _, name := range []string{"database", "storage", "http"} {
		lc.OnStartup(name, func(ctx context.Context) error {
			ran.Add(1)
			return nil
		})
	}

	if err := lc.WaitForStartup(); err != nil {
		t.Fatalf("WaitForStartup() error = %v", err)
	}
	if !lc.Ready() {
		t.Error("Ready() = false after successful startup")
	}
	if ran.Load() != 3 {
		t.Errorf("startup hooks ran %d times, want 3", ran.Load())
	}
	for name, status := range lc.Status() {
		if status != "ok" {
			t.Errorf("status[%s] = %q, want ok", name, status)
		}
	}
}

func TestStartupFailure(t *testing.T) {
	lc := lifecycle.New()
	refused := errors.New("connection refused")

	lc.OnStartup("database", func(ctx context.Context) error { return refused })
	lc.OnStartup("storage", func(ctx context.Context) error { return nil })

	err := lc.WaitForStartup()
	if !errors.Is(err, refused) {
		t.Fatalf("WaitForStartup() error = %v, want %v", err, refused)
	}
	if !strings.Contains(err.Error(), "database: connection refused") {
		t.Errorf("error = %q, want hook name prefix", err)
	}
	if lc.Ready() {
		t.Error("Ready() = true with a failed startup hook")
	}

	status := lc.Status()
	if status["database"] != "connection refused" || status["storage"] != "ok" {
		t.Errorf("Status() = %v", status)
	}
}

func TestStatusWhileStarting(t *testing.T) {
	lc := lifecycle.New()
	release := make(chan struct{})

	lc.OnStartup("storage", func(ctx context.Context) error {
		<-release
		return nil
	})

	if got := lc.Status()["storage"]; got != lifecycle.ErrStarting.Error() {
		t.Errorf("status = %q, want %q", got, lifecycle.ErrStarting)
	}
	if lc.Ready() {
		t.Error("Ready() = true before startup finished")
	}

	close(release)
	if err := lc.WaitForStartup(); err != nil {
		t.Fatalf("WaitForStartup() error = %v", err)
	}
	if !lc.Ready() {
		t.Error("Ready() = false after startup finished")
	}
}

func TestShutdownRunsHooks(t *testing.T) {
	lc := lifecycle.New()

	var closed atomic.Bool
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		closed.Store(true)
	})

	if err := lc.Shutdown(time.Second); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if !closed.Load() {
		t.Error("shutdown hook did not run")
	}
	if lc.Context().Err() == nil {
		t.Error("context should be cancelled after shutdown")
	}
}

func TestShutdownTimeout(t *testing.T) {
	lc := lifecycle.New()

	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		<-release
	})

	if err := lc.Shutdown(20 * time.Millisecond); err == nil {
		t.Error("expected timeout error")
	}
}

func TestCoordinatorIsReadinessChecker(t *testing.T) {
	var checker lifecycle.ReadinessChecker = lifecycle.New()
	if checker.Ready() {
		t.Error("new coordinator should not be ready")
	}
	if len(checker.Status()) != 0 {
		t.Errorf("Status() = %v, want empty", checker.Status())
	}
}
