// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package queuetest

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ava-labs/pqueue/queue"
)

func TestMain(m *testing.M) {
	NoLeak(m)
}

func TestLogRecorder(t *testing.T) {
	rec := NewLogRecorder(logging.Info)
	rec.Debug("dropped")
	rec.Info("kept", zap.Int("n", 1))
	rec.With(zap.String("k", "v")).Warn("with")

	require.Len(t, rec.Records, 2)
	assert.Equal(t, "kept", rec.Records[0].Msg)
	assert.Len(t, rec.At(logging.Warn), 1)
	assert.Len(t, rec.At(logging.Warn)[0].Fields, 1, "With() fields propagated")
}

func TestHeapViolation(t *testing.T) {
	order := cmp.Compare[int]

	// A Circular keeps insertion order so can hold a non-heap layout.
	notHeap, err := queue.NewCircularFrom([]int{1, 2, 3, 0})
	require.NoError(t, err)
	assert.Equal(t, 1, HeapViolation[int](notHeap, order), "child at index 3 of parent 1")

	h, err := queue.NewHeapFrom([]int{5, 4, 3, 2, 1, 0})
	require.NoError(t, err)
	assert.Equal(t, -1, HeapViolation[int](h, order))
}

func TestRunners(t *testing.T) {
	gen := func(rng *rand.Rand) int { return rng.IntN(10) }
	rec := NewLogRecorder(logging.Debug)

	c, err := queue.NewCircular[int](queue.WithCapacity(0))
	require.NoError(t, err)
	RunDeque[int](t, rec, c, rand.New(rand.NewPCG(0, 0)), gen, 100) //nolint:gosec // Reproducibility is valuable for tests
	assert.Len(t, rec.At(logging.Debug), 100, "one log per step")

	h, err := queue.NewHeap[int]()
	require.NoError(t, err)
	heapLog := NewLogRecorder(logging.Debug)
	RunHeap[int](t, heapLog, h, cmp.Compare[int], rand.New(rand.NewPCG(1, 1)), gen, 100) //nolint:gosec // Reproducibility is valuable for tests
	require.Len(t, heapLog.Records, 100)

	last := heapLog.Records[99].String()
	for _, key := range []string{"step:99", "op:", "len:", "queue:[", "cap:"} {
		assert.Containsf(t, last, key, "%T.String()", heapLog.Records[99])
	}
}

// recordingTB captures the parts of [testing.TB] used by [ReplayOnFailure].
type recordingTB struct {
	testing.TB
	failed   bool
	cleanups []func()
	logs     []string
}

func (tb *recordingTB) Helper()          {}
func (tb *recordingTB) Failed() bool     { return tb.failed }
func (tb *recordingTB) Cleanup(f func()) { tb.cleanups = append(tb.cleanups, f) }

func (tb *recordingTB) Logf(format string, args ...any) {
	tb.logs = append(tb.logs, fmt.Sprintf(format, args...))
}

func (tb *recordingTB) cleanup() {
	for _, f := range slices.Backward(tb.cleanups) {
		f()
	}
}

func TestReplayOnFailure(t *testing.T) {
	for _, failed := range []bool{false, true} {
		tb := &recordingTB{failed: failed}
		log := ReplayOnFailure(tb, 2)
		for i := range 3 {
			log.Debug("step", zap.Int("i", i))
		}
		require.Len(t, log.Records, 2, "only most recent entries kept")
		tb.cleanup()

		if !failed {
			assert.Empty(t, tb.logs, "logs replayed after passing test")
			continue
		}
		want := []string{
			"Replaying 2 log entries:",
			fmt.Sprintf("[%s] step map[i:1]", logging.Debug),
			fmt.Sprintf("[%s] step map[i:2]", logging.Debug),
		}
		assert.Equal(t, want, tb.logs, "logs replayed after failure")
	}
}
