package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type colorMode string

const (
	colorModeAuto colorMode = "auto"
	colorModeOn   colorMode = "on"
	colorModeOff  colorMode = "off"
)

func readColorMode(value string) (colorMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return colorModeAuto, nil
	case "on":
		return colorModeOn, nil
	case "off":
		return colorModeOff, nil
	default:
		return "", fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

func shouldColor(mode colorMode) bool {
	switch mode {
	case colorModeOn:
		return true
	case colorModeOff:
		return false
	default:
		return isTerminal(os.Stderr)
	}
}

// applyColorMode reads the persistent --color flag and configures the
// process-wide color state.
func applyColorMode(cmd *cobra.Command) (bool, error) {
	raw, err := cmd.Flags().GetString("color")
	if err != nil {
		return false, err
	}
	mode, err := readColorMode(raw)
	if err != nil {
		return false, err
	}
	enabled := shouldColor(mode)
	color.NoColor = !enabled
	return enabled, nil
}
