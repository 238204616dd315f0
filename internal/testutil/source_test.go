package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/drizzle/internal/event"
)

func TestSliceSource_ReplaysThenEnds(t *testing.T) {
	t.Parallel()

	src := NewSliceSource(event.Init(), event.Tick(), event.Quit())
	ctx := context.Background()

	events := CollectEvents(t, ctx, src.Next, 3)
	require.Len(t, events, 3)
	assert.Equal(t, event.KindInit, events[0].Kind)
	assert.Equal(t, event.KindTick, events[1].Kind)
	assert.Equal(t, event.KindQuit, events[2].Kind)

	_, ok := src.Next(ctx)
	assert.False(t, ok)
	assert.Equal(t, 3, src.Served())
}
