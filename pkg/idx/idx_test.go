package idx_test

import (
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/usermgmt/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewAndParse(t *testing.T) {
	id := idx.New()
	require.NotEmpty(t, id.String())

	parsed, err := idx.Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
	require.NotEqual(t, idx.Zero, id)
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "   ", "not-a-ulid", "507f1f77bcf86cd799439011"} {
		_, err := idx.Parse(s)
		require.ErrorIs(t, err, idx.ErrInvalid, s)
	}
}

func TestMonotonicWithinMillisecond(t *testing.T) {
	tm := time.Unix(1700000000, 0)
	a := idx.NewAt(tm)
	b := idx.NewAt(tm)
	require.Less(t, a.String(), b.String())
}

func TestConcurrentNew(t *testing.T) {
	const n = 200
	var (
		mu   sync.Mutex
		seen = make(map[idx.ID]struct{}, n)
		wg   sync.WaitGroup
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := idx.New()
			mu.Lock()
			seen[id] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()
	require.Len(t, seen, n)
}
