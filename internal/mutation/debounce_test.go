package mutation

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/chrona/internal/repository"
	"github.com/alexanderramin/chrona/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutator_EditTaskTitle_CoalescesRapidKeystrokes(t *testing.T) {
	env := newTestEnv(t)
	task := env.seedTask(t, testutil.NewTestTask(env.project.ID, "T", "2024-03-01"))

	updates := make(chan repository.TaskPatch, 8)
	env.repos.Tasks = &testutil.CountingTaskRepo{TaskRepo: env.repos.Tasks, Updates: updates}
	m := env.mutator(WithDebounce(30 * time.Millisecond))
	ctx := context.Background()

	for _, title := range []string{"Ti", "Tit", "Titl", "Title", "Title!"} {
		require.NoError(t, m.EditTaskTitle(ctx, task.ID, title))
	}
	assert.Equal(t, "Title!", env.store.State().Tasks[task.ID].Title, "every keystroke lands locally")

	select {
	case patch := <-updates:
		require.NotNil(t, patch.Title)
		assert.Equal(t, "Title!", *patch.Title, "only the final value reaches the backend")
	case <-time.After(2 * time.Second):
		t.Fatal("debounced update never fired")
	}

	select {
	case <-updates:
		t.Fatal("expected exactly one backend update")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestMutator_EditTaskTitle_SeparateKeysFireIndependently(t *testing.T) {
	env := newTestEnv(t)
	a := env.seedTask(t, testutil.NewTestTask(env.project.ID, "A", "2024-03-01"))
	b := env.seedTask(t, testutil.NewTestTask(env.project.ID, "B", "2024-03-01"))

	updates := make(chan repository.TaskPatch, 8)
	env.repos.Tasks = &testutil.CountingTaskRepo{TaskRepo: env.repos.Tasks, Updates: updates}
	m := env.mutator(WithDebounce(20 * time.Millisecond))
	ctx := context.Background()

	require.NoError(t, m.EditTaskTitle(ctx, a.ID, "Alpha"))
	require.NoError(t, m.EditTaskTitle(ctx, b.ID, "Beta"))

	got := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case patch := <-updates:
			got[*patch.Title] = true
		case <-time.After(2 * time.Second):
			t.Fatal("missing debounced update")
		}
	}
	assert.True(t, got["Alpha"])
	assert.True(t, got["Beta"])
}

func TestMutator_Flush_DrainsPendingEdits(t *testing.T) {
	env := newTestEnv(t)
	task := env.seedTask(t, testutil.NewTestTask(env.project.ID, "T", "2024-03-01"))

	updates := make(chan repository.TaskPatch, 1)
	env.repos.Tasks = &testutil.CountingTaskRepo{TaskRepo: env.repos.Tasks, Updates: updates}
	m := env.mutator(WithDebounce(time.Hour))
	ctx := context.Background()

	require.NoError(t, m.EditTaskTitle(ctx, task.ID, "Final"))
	m.Flush()

	select {
	case patch := <-updates:
		assert.Equal(t, "Final", *patch.Title)
	case <-time.After(time.Second):
		t.Fatal("flush did not run the pending edit")
	}
}

func TestMutator_EditTaskTitle_FailureReportsAndRollsBack(t *testing.T) {
	env := newTestEnv(t)
	task := env.seedTask(t, testutil.NewTestTask(env.project.ID, "Original", "2024-03-01"))

	env.repos.Tasks = &testutil.FailingTaskRepo{TaskRepo: env.repos.Tasks, ErrUpdate: assert.AnError}
	reported := make(chan error, 1)
	m := env.mutator(WithDebounce(10*time.Millisecond), WithErrorHandler(func(err error) {
		reported <- err
	}))

	require.NoError(t, m.EditTaskTitle(context.Background(), task.ID, "Edited"))

	select {
	case err := <-reported:
		var failed *MutationFailed
		require.ErrorAs(t, err, &failed)
		assert.Equal(t, OpUpdate, failed.Op)
	case <-time.After(2 * time.Second):
		t.Fatal("error handler never called")
	}
	assert.Equal(t, "Original", env.store.State().Tasks[task.ID].Title)
}

func TestDebouncer_CancelStopsPendingWork(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var fired atomic.Int32

	d.Schedule("k", func() { fired.Add(1) })
	d.Cancel("k")

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, fired.Load())
}

func TestDebouncer_LastScheduledWins(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	got := make(chan int, 2)

	d.Schedule("k", func() { got <- 1 })
	d.Schedule("k", func() { got <- 2 })

	select {
	case v := <-got:
		assert.Equal(t, 2, v)
	case <-time.After(2 * time.Second):
		t.Fatal("debounced fn never fired")
	}
	select {
	case <-got:
		t.Fatal("superseded fn must not fire")
	case <-time.After(60 * time.Millisecond):
	}
}
