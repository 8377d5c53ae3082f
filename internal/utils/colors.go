package utils

// Terminal color codes using ANSI escape sequences
const (
	ResetColor   = "\033[0m"
	RedColor     = "\033[31m"
	GreenColor   = "\033[32m"
	YellowColor  = "\033[33m"
	MagentaColor = "\033[35m"
	CyanColor    = "\033[36m"
	DimColor     = "\033[2m"
)

// ColorEnabled toggles ANSI colors for CLI result output (--no-color clears it)
var ColorEnabled = true

// ColoredText wraps text with color codes and reset at the end
func ColoredText(text string, color string) string {
	if !ColorEnabled {
		return text
	}
	return color + text + ResetColor
}

// Success returns green-colored text
func Success(text string) string {
	return ColoredText(text, GreenColor)
}

// Warning returns yellow-colored text
func Warning(text string) string {
	return ColoredText(text, YellowColor)
}

// Error returns red-colored text
func Error(text string) string {
	return ColoredText(text, RedColor)
}

// Highlight returns magenta-colored text, used for generated captions
func Highlight(text string) string {
	return ColoredText(text, MagentaColor)
}

// Hashtag returns cyan-colored text, used for hashtag lists
func Hashtag(text string) string {
	return ColoredText(text, CyanColor)
}

// Dim returns faint text for secondary details such as scores
func Dim(text string) string {
	return ColoredText(text, DimColor)
}
