package logger

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}
}

func TestLoggerBasic(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	l := Get()
	ctx := context.Background()
	l.Info(ctx, "test message", String("k", "v"))
	l.Warn(ctx, "warn message", Int("n", 1), Float64("f", 2.5))
	l.Debug(ctx, "debug message", Duration("elapsed", time.Second))
	l.Error(ctx, "error message", Error(errors.New("boom")))

	named := l.Named("subsystem")
	if named == nil {
		t.Fatal("named logger is nil")
	}
	named.Info(ctx, "named message", Any("v", []int{1, 2}))
}

func TestSetLevelString(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	for _, lvl := range []string{"debug", "info", "warn", "warning", "error", ""} {
		if err := SetLevelString(lvl); err != nil {
			t.Errorf("SetLevelString(%q) returned error: %v", lvl, err)
		}
	}

	if err := SetLevelString("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}
