package launcher

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

func newTestLauncher(command string, args []string, goos string, installed ...string) (*Launcher, *[]call) {
	var calls []call
	l := New(command, args, nil)
	l.goos = goos
	l.lookPath = func(name string) (string, error) {
		for _, i := range installed {
			if i == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errors.New("not found")
	}
	l.start = func(name string, args ...string) error {
		calls = append(calls, call{name: name, args: args})
		return nil
	}
	return l, &calls
}

const url = "https://www.youtube.com/watch?v=abc"

func TestOpenConfiguredPlayer(t *testing.T) {
	l, calls := newTestLauncher("mpv", []string{"--fs"}, "linux")

	require.NoError(t, l.Open(url))
	require.Len(t, *calls, 1)
	assert.Equal(t, call{name: "mpv", args: []string{"--fs", url}}, (*calls)[0])
}

func TestOpenDetectedPlayer(t *testing.T) {
	l, calls := newTestLauncher("", nil, "linux", "haruna")

	require.NoError(t, l.Open(url))
	require.Len(t, *calls, 1)
	assert.Equal(t, "haruna", (*calls)[0].name)
}

func TestOpenFallsBackToSystemDefault(t *testing.T) {
	l, calls := newTestLauncher("", nil, "linux")

	require.NoError(t, l.Open(url))
	require.Len(t, *calls, 1)
	assert.Equal(t, call{name: "xdg-open", args: []string{url}}, (*calls)[0])
}

func TestOpenMacApp(t *testing.T) {
	l, calls := newTestLauncher("", nil, "darwin")

	require.NoError(t, l.Open(url))
	require.Len(t, *calls, 1)
	assert.Equal(t, call{name: "open", args: []string{"-n", "-a", "IINA", url}}, (*calls)[0])
}

func TestOpenEmptyURL(t *testing.T) {
	l, calls := newTestLauncher("mpv", nil, "linux")
	assert.Error(t, l.Open(""))
	assert.Empty(t, *calls)
}
