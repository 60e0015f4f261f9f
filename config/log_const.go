package config

import "github.com/gookit/color"

// Color constants for logger prefixes
const (
	ColorGreen   = color.FgGreen
	ColorBlue    = color.FgBlue
	ColorMagenta = color.FgMagenta
	ColorCyan    = color.FgCyan
	ColorYellow  = color.FgYellow
)

// Color is the foreground color of a logger prefix.
type Color = color.Color
