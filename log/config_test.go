package log

import (
	"slices"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{" TRACE ", LevelTrace},
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"debug+2", LevelDebug + 2},
		{"bogus", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLevel_String_RoundTrips(t *testing.T) {
	for name := range Levels() {
		if got := ParseLevel(name).String(); got != name {
			t.Errorf("ParseLevel(%q).String() = %q", name, got)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{" text ", FormatText},
		{"xml", DefaultFormat},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseFormat(tt.in); got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormats_ListsEveryFormat(t *testing.T) {
	got := slices.Collect(Formats())
	if !slices.Equal(got, []string{"json", "text"}) {
		t.Errorf("Formats() = %v", got)
	}

	if s := Format(9).String(); s != "Format(9)" {
		t.Errorf("unknown format string = %q", s)
	}
}

func TestConfig_Options(t *testing.T) {
	c := makeConfig(nil,
		WithLevel(LevelWarn),
		WithFormat(FormatText),
		WithCaller(true),
		WithPretty(false),
	)

	if c.level != LevelWarn {
		t.Errorf("level = %v, want warn", c.level)
	}

	if c.format != FormatText {
		t.Errorf("format = %v, want text", c.format)
	}

	if !c.caller {
		t.Error("caller not enabled")
	}

	if c.pretty {
		t.Error("pretty not disabled")
	}

	if c.output == nil {
		t.Error("nil writer not replaced")
	}
}

func TestConfig_NilOptionIgnored(t *testing.T) {
	c := makeConfig(nil, nil, WithLevel(LevelError), nil)
	if c.level != LevelError {
		t.Errorf("level = %v, want error", c.level)
	}
}

func TestMakeFormatTimeFunc(t *testing.T) {
	when := time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)

	tests := []struct {
		layout string
		want   string
	}{
		{"RFC3339", "2024-03-09T14:05:06Z"},
		{"rfc-3339", "2024-03-09T14:05:06Z"},
		{"Kitchen", "2:05PM"},
		{"2006/01/02", "2024/03/09"},
		{"none", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			if got := makeFormatTimeFunc(tt.layout)(when); got != tt.want {
				t.Errorf("format %q = %q, want %q", tt.layout, got, tt.want)
			}
		})
	}
}
