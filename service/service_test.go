package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// memLogger records messages instead of printing them.
type memLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *memLogger) Info(msg string)    { l.add("INFO " + msg) }
func (l *memLogger) Warning(msg string) { l.add("WARNING " + msg) }
func (l *memLogger) Error(msg string)   { l.add("ERROR " + msg) }

func (l *memLogger) add(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, line)
}

func newKeeper(t *testing.T) *MazeKeeper {
	t.Helper()
	k, err := NewMazeKeeper(&MazeKeeperConfig{Seed: 1, Logger: &memLogger{}})
	require.NoError(t, err)
	return k
}
