// compass/utils/color/color.go
package color

import (
	"github.com/fatih/color"
)

var (
	promptColor  = color.New(color.FgCyan, color.Bold)
	infoColor    = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	headingColor = color.New(color.FgHiMagenta, color.Bold, color.Underline)
	linkColor    = color.New(color.FgBlue)
	mutedColor   = color.New(color.FgHiBlack)
)

func ColorPrompt(s string) string {
	return promptColor.Sprint(s)
}

func ColorInfo(s string) string {
	return infoColor.Sprint(s)
}

func ColorWarning(s string) string {
	return warningColor.Sprint(s)
}

func ColorError(s string) string {
	return errorColor.Sprint(s)
}

func ColorHeading(s string) string {
	return headingColor.Sprint(s)
}

func ColorLink(s string) string {
	return linkColor.Sprint(s)
}

func ColorMuted(s string) string {
	return mutedColor.Sprint(s)
}

// DisableColor turns colored output off, e.g. when stdout is not a terminal.
func DisableColor() {
	color.NoColor = true
}
