package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestResolveColorMode(t *testing.T) {
	tests := []struct {
		name      string
		colorMode string
		isTTY     bool
		want      bool
	}{
		{name: "never disables on TTY", colorMode: ColorNever, isTTY: true, want: false},
		{name: "always enables on non-TTY", colorMode: ColorAlways, isTTY: false, want: true},
		{name: "auto follows TTY", colorMode: ColorAuto, isTTY: true, want: true},
		{name: "auto follows non-TTY", colorMode: ColorAuto, isTTY: false, want: false},
		{name: "empty string is auto", colorMode: "", isTTY: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveColorMode(tt.colorMode, tt.isTTY); got != tt.want {
				t.Errorf("ResolveColorMode(%q, %v) = %v, want %v", tt.colorMode, tt.isTTY, got, tt.want)
			}
		})
	}
}

func TestCheckColorMode(t *testing.T) {
	for _, mode := range []string{"", ColorAuto, ColorAlways, ColorNever} {
		if err := CheckColorMode(mode); err != nil {
			t.Errorf("CheckColorMode(%q) = %v", mode, err)
		}
	}
	err := CheckColorMode("rainbow")
	if err == nil {
		t.Fatal("CheckColorMode(rainbow) should fail")
	}
	if GetExitCode(err) != ExitUserError {
		t.Errorf("exit code = %d, want %d", GetExitCode(err), ExitUserError)
	}
	if !strings.Contains(err.Error(), "rainbow") {
		t.Errorf("error should name the value: %v", err)
	}
}

func TestIsTTY_Buffer(t *testing.T) {
	var buf bytes.Buffer
	if IsTTY(&buf) {
		t.Error("IsTTY(buffer) should return false")
	}
}

func TestResolveColorMode_Styles(t *testing.T) {
	empty := lipgloss.NewStyle()

	never := NewPrinter(&bytes.Buffer{}, false, ResolveColorMode(ColorNever, true))
	if never.IsTTY() {
		t.Error("printer should report non-TTY when color=never")
	}
	if never.Styles().Error.GetForeground() != empty.GetForeground() {
		t.Error("Error style should have no foreground color when color=never")
	}

	always := NewPrinter(&bytes.Buffer{}, false, ResolveColorMode(ColorAlways, false))
	if !always.IsTTY() {
		t.Error("printer should report TTY when color=always")
	}
	if always.Styles().ID.GetForeground() == empty.GetForeground() {
		t.Error("ID style should be colored when color=always")
	}
}

func TestResolveColorMode_NeverNoANSI(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, ResolveColorMode(ColorNever, true))

	printer.Error(NewUserError("test error"))
	printer.CommitHeader("0006")

	if out := buf.String(); strings.Contains(out, "\033[") {
		t.Errorf("--color never should produce no ANSI codes, got: %q", out)
	}
}
