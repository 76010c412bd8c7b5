package tracker

import (
	"fmt"
	"os"
	"path"
	"runtime"
	"strings"
)

// DefaultLogPath returns where the game client writes EE.log for the given
// operating system and home directory. Non-Windows systems are assumed to run
// the game under Wine or Proton.
func DefaultLogPath(goos, home string) string {
	if goos == "windows" {
		return strings.TrimRight(home, `\/`) + `\AppData\Local\Warframe\EE.log`
	}
	return path.Join(home, ".local", "share", "Warframe", "EE.log")
}

// HostDefaultLogPath is DefaultLogPath for the running machine.
func HostDefaultLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return DefaultLogPath(runtime.GOOS, home), nil
}
