package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestSetMirror_ReceivesRecords(t *testing.T) {
	var gotMsg string
	var gotLevel Level
	var gotArgs []any
	SetMirror(func(_ context.Context, level Level, msg string, args ...any) {
		gotLevel = level
		gotMsg = msg
		gotArgs = args
	})
	t.Cleanup(func() { SetMirror(nil) })

	logger := NewNop()
	logger.InfoContext(context.Background(), "fixture saved", "fixture_id", "fx-01")

	if gotMsg != "fixture saved" {
		t.Fatalf("unexpected mirrored message %q", gotMsg)
	}
	if gotLevel != LevelInfo {
		t.Fatalf("unexpected mirrored level %v", gotLevel)
	}
	if len(gotArgs) != 2 || gotArgs[1] != "fx-01" {
		t.Fatalf("unexpected mirrored args %v", gotArgs)
	}
}

func TestSetMirror_NilRemovesMirror(t *testing.T) {
	called := false
	SetMirror(func(context.Context, Level, string, ...any) {
		called = true
	})
	SetMirror(nil)

	NewNop().Info("should not mirror")

	if called {
		t.Fatal("mirror should have been removed")
	}
}

func TestSlogLevel(t *testing.T) {
	cases := map[Level]slog.Level{
		LevelDebug: slog.LevelDebug,
		LevelInfo:  slog.LevelInfo,
		LevelWarn:  slog.LevelWarn,
		LevelError: slog.LevelError,
	}
	for in, want := range cases {
		if got := SlogLevel(in); got != want {
			t.Fatalf("SlogLevel(%v): expected %v, got %v", in, want, got)
		}
	}
}
