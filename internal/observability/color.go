package observability

// ANSI color codes for pass/fail narration.
const (
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
	colorReset  = "\x1b[0m"
)

// Pass colors a message green with a check mark.
func Pass(msg string) string {
	return colorGreen + "✓ " + msg + colorReset
}

// Fail colors a message red with a cross.
func Fail(msg string) string {
	return colorRed + "✗ " + msg + colorReset
}

// Warn colors a message yellow.
func Warn(msg string) string {
	return colorYellow + msg + colorReset
}
