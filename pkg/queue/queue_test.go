package queue_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/remat/pkg/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is the shared target: commands append their tag to it.
type recorder struct {
	applied []string
}

type tagCmd struct {
	tag  string
	fail error
	// enqueue, when set, is called during Apply to simulate a command that
	// queues follow-up work mid-drain.
	enqueue func()
}

func (c tagCmd) Name() string { return c.tag }

func (c tagCmd) Apply(_ context.Context, r *recorder) error {
	r.applied = append(r.applied, c.tag)
	if c.enqueue != nil {
		c.enqueue()
	}
	return c.fail
}

func TestDrainExecutesInInsertionOrder(t *testing.T) {
	q := queue.New[*recorder]()
	q.Enqueue(tagCmd{tag: "a"})
	q.Enqueue(tagCmd{tag: "b"})
	q.Enqueue(tagCmd{tag: "c"})
	require.Equal(t, 3, q.Len())

	rec := &recorder{}
	err := q.Drain(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, rec.applied)
	assert.Equal(t, 0, q.Len(), "drain must empty the queue")
}

func TestDrainRunsEachCommandExactlyOnce(t *testing.T) {
	q := queue.New[*recorder]()
	q.Enqueue(tagCmd{tag: "once"})

	rec := &recorder{}
	require.NoError(t, q.Drain(context.Background(), rec))
	require.NoError(t, q.Drain(context.Background(), rec), "second drain is a no-op")
	assert.Equal(t, []string{"once"}, rec.applied)
}

func TestCommandsEnqueuedDuringDrainWaitForNextDrain(t *testing.T) {
	q := queue.New[*recorder]()
	q.Enqueue(tagCmd{tag: "first", enqueue: func() {
		q.Enqueue(tagCmd{tag: "late"})
	}})
	q.Enqueue(tagCmd{tag: "second"})

	rec := &recorder{}
	require.NoError(t, q.Drain(context.Background(), rec))
	assert.Equal(t, []string{"first", "second"}, rec.applied, "late command must not join the running drain")
	require.Equal(t, 1, q.Len())

	require.NoError(t, q.Drain(context.Background(), rec))
	assert.Equal(t, []string{"first", "second", "late"}, rec.applied)
}

func TestDrainStopsOnFailureAndDiscardsRemainder(t *testing.T) {
	boom := errors.New("boom")

	q := queue.New[*recorder]()
	q.Enqueue(tagCmd{tag: "ok"})
	q.Enqueue(tagCmd{tag: "bad", fail: boom})
	q.Enqueue(tagCmd{tag: "never"})

	rec := &recorder{}
	err := q.Drain(context.Background(), rec)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "bad")

	// The failing snapshot is lost: nothing was requeued.
	assert.Equal(t, []string{"ok", "bad"}, rec.applied)
	assert.Equal(t, 0, q.Len())
}

func TestQueueAfterFailedDrainOnlyHoldsNewCommands(t *testing.T) {
	q := queue.New[*recorder]()
	q.Enqueue(tagCmd{tag: "bad", fail: errors.New("boom")})
	q.Enqueue(tagCmd{tag: "lost"})

	rec := &recorder{}
	require.Error(t, q.Drain(context.Background(), rec))

	q.Enqueue(tagCmd{tag: "fresh"})
	rec2 := &recorder{}
	require.NoError(t, q.Drain(context.Background(), rec2))
	assert.Equal(t, []string{"fresh"}, rec2.applied, "no repeat of the drained snapshot")
}
