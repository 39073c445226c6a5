package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/mmcdole/tvshelf/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type refreshMsg struct{}

func pending(e *Events) int {
	return len(e.ch)
}

func TestInvalidationFilter(t *testing.T) {
	tests := []struct {
		name string
		snap resource.Snapshot[int]
		want bool
	}{
		{"stale", resource.Snapshot[int]{Stale: true}, true},
		{"loading", resource.Snapshot[int]{Stale: true, IsLoading: true}, false},
		{"failed", resource.Snapshot[int]{Stale: true, Err: errors.New("boom")}, false},
		{"fresh", resource.Snapshot[int]{Data: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEvents(1)
			invalidation[int](e, refreshMsg{})(tt.snap)
			if tt.want {
				assert.Equal(t, 1, pending(e))
			} else {
				assert.Equal(t, 0, pending(e))
			}
		})
	}
}

func TestInvalidationFiresAfterInterruptedLoad(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	calls := 0
	r := resource.New(func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			close(started)
			<-release
		}
		return calls, nil
	})

	e := NewEvents(4)
	r.Subscribe(invalidation[int](e, refreshMsg{}))

	done := make(chan struct{})
	go func() {
		r.Revalidate(context.Background())
		close(done)
	}()

	<-started
	r.Invalidate()
	require.Equal(t, 0, pending(e), "invalidation while loading is held back")
	close(release)
	<-done

	require.Equal(t, 1, pending(e))
	assert.IsType(t, refreshMsg{}, <-e.ch)
}
