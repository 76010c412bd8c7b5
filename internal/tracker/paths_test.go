package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLogPath(t *testing.T) {
	assert.Equal(t,
		`C:\Users\tenno\AppData\Local\Warframe\EE.log`,
		DefaultLogPath("windows", `C:\Users\tenno\`))
	assert.Equal(t,
		"/home/tenno/.local/share/Warframe/EE.log",
		DefaultLogPath("linux", "/home/tenno"))
	assert.Equal(t,
		"/Users/tenno/.local/share/Warframe/EE.log",
		DefaultLogPath("darwin", "/Users/tenno"))
}

func TestHostDefaultLogPath(t *testing.T) {
	t.Setenv("HOME", "/home/tenno")
	t.Setenv("USERPROFILE", `C:\Users\tenno`)
	p, err := HostDefaultLogPath()
	assert.NoError(t, err)
	assert.Contains(t, p, "EE.log")
}
