package app

import "os"

// ANSI SGR codes for CLI output.
const (
	ColorOK    = "1;32"
	ColorWarn  = "1;33"
	ColorTitle = "1;36"
)

// Color highlights a CLI label. Plain text is returned when output is piped,
// NO_COLOR is set or TERM=dumb, so files written by `render -` stay clean.
func Color(text, code string) string {
	if code == "" || !isTerminal() {
		return text
	}
	return "\x1b[" + code + "m" + text + "\x1b[0m"
}

func isTerminal() bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	fi, err := os.Stdout.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
