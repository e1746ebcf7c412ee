package output

import (
	"fmt"
	"io"
	"os"
	"slices"
)

// Color modes accepted by the --color flag.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var colorModes = []string{ColorAuto, ColorAlways, ColorNever}

// CheckColorMode rejects values other than auto, always and never.
// The empty string is treated as auto.
func CheckColorMode(mode string) error {
	if mode == "" || slices.Contains(colorModes, mode) {
		return nil
	}
	return NewUserError(fmt.Sprintf("invalid --color value %q (want auto, always or never)", mode))
}

// ResolveColorMode turns the --color flag and the detected terminal state
// into the isTTY value handed to NewPrinter.
func ResolveColorMode(colorMode string, isTTY bool) bool {
	switch colorMode {
	case ColorNever:
		return false
	case ColorAlways:
		return true
	default:
		return isTTY
	}
}

// IsTTY reports whether writer is a terminal. Only *os.File can be one.
func IsTTY(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
