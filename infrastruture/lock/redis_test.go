package lock

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
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

func (l *memLogger) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string{}, l.lines...)
}

func newRedisLocker(t *testing.T, ttlSeconds int) (*RedisLocker, *miniredis.Miniredis, *memLogger) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := &memLogger{}
	l, err := NewRedisLocker(client, ttlSeconds, logger)
	require.NoError(t, err)
	return l, server, logger
}

func TestNewRedisLocker(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	l, err := NewRedisLocker(client, 0, &memLogger{})
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, l.ttl)

	l, err = NewRedisLocker(client, 30, &memLogger{})
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, l.ttl)

	_, err = NewRedisLocker(nil, 5, &memLogger{})
	assert.ErrorIs(t, err, ErrMissingClient)

	_, err = NewRedisLocker(client, 5, nil)
	assert.ErrorIs(t, err, ErrMissingLogger)
}

func TestRedisLocker(t *testing.T) {
	t.Run("serializes holders of the same key", func(t *testing.T) {
		l, _, logger := newRedisLocker(t, 5)
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			inside  int
			maxSeen int
		)

		for n := 0; n < 4; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock, err := l.Lock(context.Background(), "walker:a")
				if !assert.NoError(t, err) {
					return
				}

				mu.Lock()
				inside++
				maxSeen = max(maxSeen, inside)
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				inside--
				mu.Unlock()
				unlock()
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, maxSeen)
		assert.Empty(t, logger.all())
	})

	t.Run("lock is stored under the prefixed key and released", func(t *testing.T) {
		l, server, logger := newRedisLocker(t, 5)
		unlock, err := l.Lock(context.Background(), "walker:b")
		require.NoError(t, err)
		assert.True(t, server.Exists("pathfinder:walker:b:lock"))

		unlock()
		assert.False(t, server.Exists("pathfinder:walker:b:lock"))
		assert.Empty(t, logger.all())
	})

	t.Run("different keys do not block", func(t *testing.T) {
		l, _, _ := newRedisLocker(t, 5)
		unlockA, err := l.Lock(context.Background(), "a")
		require.NoError(t, err)
		defer unlockA()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		unlockB, err := l.Lock(ctx, "b")
		require.NoError(t, err)
		unlockB()
	})

	t.Run("context cancels waiting", func(t *testing.T) {
		l, _, _ := newRedisLocker(t, 5)
		unlock, err := l.Lock(context.Background(), "a")
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		_, err = l.Lock(ctx, "a")
		assert.Error(t, err)

		unlock()
		again, err := l.Lock(context.Background(), "a")
		require.NoError(t, err)
		again()
	})

	t.Run("expired lock is reported on release", func(t *testing.T) {
		l, server, logger := newRedisLocker(t, 1)
		unlock, err := l.Lock(context.Background(), "walker:slow")
		require.NoError(t, err)

		server.FastForward(2 * time.Second)
		require.False(t, server.Exists("pathfinder:walker:slow:lock"))
		unlock()

		lines := logger.all()
		require.Len(t, lines, 1)
		assert.True(t, strings.HasPrefix(lines[0], "ERROR "), lines[0])
		assert.Contains(t, lines[0], "pathfinder:walker:slow:lock")
	})
}

func TestRedisLockerUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	l, err := NewRedisLocker(client, 1, &memLogger{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	unlock, err := l.Lock(ctx, "walker:unreachable")
	assert.Error(t, err)
	assert.Nil(t, unlock)
}
