package app

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

var ErrNoBrowser = errors.New("no browser launcher found")

// browserCommand returns the launcher for the current OS.
func browserCommand(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}

// OpenBrowser asks the desktop to open url. Headless hosts return ErrNoBrowser.
func OpenBrowser(url string) error {
	name, args := browserCommand(runtime.GOOS, url)
	if !CommandExists(name) {
		return fmt.Errorf("%w: %s", ErrNoBrowser, name)
	}
	out, _, err := Exec(name, args...)
	if err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(out))
	}
	return nil
}
