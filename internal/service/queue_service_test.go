package service

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"analysis/toolutil/internal/store"
	"analysis/toolutil/internal/tmpdir"
)

func newTestService(t *testing.T) (QueueService, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	conn, err := store.Open(context.Background(), s.Host(), s.Port(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewQueueService(conn, tmpdir.New()), s
}

func TestQueueService_ConcurrentPush(t *testing.T) {
	svc, s := newTestService(t)
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- svc.Push(ctx, "results", fmt.Sprintf("r-%d", i))
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	list, err := s.DB(0).List("results")
	require.NoError(t, err)
	assert.Len(t, list, n)
}

func TestQueueService_ConcurrentPopDeliversOnce(t *testing.T) {
	svc, s := newTestService(t)
	ctx := context.Background()

	members := make([]string, 20)
	for i := range members {
		members[i] = fmt.Sprintf("job-%d", i)
	}
	_, err := s.SAdd("work", members...)
	require.NoError(t, err)

	var (
		mu   sync.Mutex
		seen = map[string]int{}
		wg   sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				m, found, err := svc.PopRandom(ctx, "work")
				if err != nil || !found {
					return
				}
				mu.Lock()
				seen[m]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, seen, len(members))
	for _, m := range members {
		assert.Equal(t, 1, seen[m], m)
	}
}

func TestQueueService_TempDir(t *testing.T) {
	svc, _ := newTestService(t)
	assert.Equal(t, os.TempDir(), svc.TempDir())
}
