package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_WritesJSONWithAppAndComponent(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	Init(Options{Level: "debug", Output: &buf, App: "kiosk"})

	log := For("session")
	log.Debug().Str("state", "anonymous").Msg("transition")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not json: %v (%q)", err, buf.String())
	}
	if entry["app"] != "kiosk" {
		t.Fatalf("expected app=kiosk, got %v", entry["app"])
	}
	if entry["component"] != "session" {
		t.Fatalf("expected component=session, got %v", entry["component"])
	}
	if entry["message"] != "transition" {
		t.Fatalf("unexpected message: %v", entry["message"])
	}
}

func TestInit_OnlyFirstCallWins(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	Init(Options{Output: &second})

	l := Get()
	l.Info().Msg("hello")

	if first.Len() == 0 {
		t.Fatalf("expected output on the first writer")
	}
	if second.Len() != 0 {
		t.Fatalf("second Init must not replace the logger")
	}
}

func TestGet_BeforeInitIsNop(t *testing.T) {
	Reset()

	log := Get()
	if log.GetLevel() != zerolog.Disabled {
		t.Fatalf("expected disabled logger before Init, got %v", log.GetLevel())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
