// Package detector decides whether terminal output should be colored.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents the rendering mode for log output.
type OutputMode int

const (
	// ModeAuto defers to environment detection.
	ModeAuto OutputMode = iota
	// ModeColor renders styled output.
	ModeColor
	// ModePlain renders uncolored output.
	ModePlain
)

// DetectEnvironment returns ModePlain when stderr is not a terminal, CI is set
// or NO_COLOR is set, and ModeColor otherwise.
func DetectEnvironment() OutputMode {
	return detect(term.IsTerminal(int(os.Stderr.Fd())), os.Getenv)
}

func detect(isTTY bool, getenv func(string) string) OutputMode {
	ci := getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI || getenv("NO_COLOR") != "" {
		return ModePlain
	}
	return ModeColor
}

// ResolveMode applies the --color flag to the detected mode.
// userFlag should be one of "auto", "always", "never" or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "always":
		return ModeColor
	case "never":
		return ModePlain
	default:
		return autoDetected
	}
}
