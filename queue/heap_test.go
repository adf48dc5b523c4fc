// Copyright (C) 2025-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package queue

import (
	"math/rand/v2"
	"slices"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Int int

func (i Int) LessThan(j Int) bool {
	return i < j
}

// requireHeap is a local equivalent of queuetest.RequireHeapInvariant, which
// can't be imported here without a cycle.
func requireHeap[T comparable](tb testing.TB, h *Heap[T]) {
	tb.Helper()
	for i := range h.Len() {
		for _, c := range [2]int{2*i + 1, 2*i + 2} {
			if c < h.Len() {
				require.LessOrEqualf(tb, h.order(h.buf[i], h.buf[c]), 0, "order(buf[%d], buf[%d]) of %v", i, c, h)
			}
		}
	}
}

func TestPriority(t *testing.T) {
	p, err := NewHeapFunc(ComparatorOf[Int]())
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(0, 0)) //nolint:gosec // Reproducibility is useful in tests
	var want []Int
	for range 32 {
		i := Int(rng.IntN(100))
		p.Enqueue(i)
		want = append(want, i)
		requireHeap(t, p)
	}
	sort.Slice(want, func(i, j int) bool {
		return want[i].LessThan(want[j])
	})

	if diff := cmp.Diff(want, all[Int](t, p)); diff != "" {
		t.Error(diff)
	}
}

func TestHeapNaturalOrder(t *testing.T) {
	h, err := NewHeap[int]()
	require.NoError(t, err)
	for _, x := range []int{5, 1, 4, 2} {
		h.Enqueue(x)
	}

	for _, want := range []int{1, 2, 4, 5} {
		got, err := h.Dequeue()
		require.NoError(t, err)
		require.Equal(t, want, got, "Dequeue()")
		requireHeap(t, h)
	}
	assert.True(t, h.IsEmpty())
	assert.Nil(t, h.Comparator(), "Comparator() with natural ordering")

	_, err = h.Dequeue()
	assert.ErrorIs(t, err, ErrEmptyQueue, "Dequeue() when empty")
	_, err = h.First()
	assert.ErrorIs(t, err, ErrEmptyQueue, "First() when empty")
}

func TestWrapHeap(t *testing.T) {
	buf := []int{3, 1, 2}
	h, err := WrapHeap(buf, 3)
	require.NoError(t, err)

	got, err := h.Peek(0)
	require.NoError(t, err)
	assert.Equal(t, 1, got, "Peek(0) after wrapping unsorted buffer")
	assert.Equal(t, 1, buf[0], "buffer heapified in place")
	requireHeap(t, h)

	// Modifying the adopted buffer directly requires OnChanged().
	buf[0] = 10
	h.OnChanged()
	requireHeap(t, h)
	got, err = h.First()
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	for _, n := range []int{-1, 4} {
		_, err := WrapHeap(make([]int, 3), n)
		assert.ErrorIsf(t, err, ErrInvalidArgument, "WrapHeap([len 3], %d)", n)
	}
	_, err = WrapHeapFunc(buf, 3, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument, "WrapHeapFunc(..., nil)")
}

func TestWrapHeapPartial(t *testing.T) {
	buf := []int{9, 8, 7, 6, 5, -1, -2}
	h, err := WrapHeap(buf, 5)
	require.NoError(t, err)
	requireHeap(t, h)
	if diff := cmp.Diff([]int{5, 6, 7, 8, 9}, all[int](t, h)); diff != "" {
		t.Errorf("Dequeue() until empty; diff (-want +got):\n%s", diff)
	}
	assert.Equal(t, []int{-1, -2}, buf[5:], "elements beyond declared size untouched")
}

func TestHeapRemove(t *testing.T) {
	// The last element (3) is smaller than the parent of the removal slot's
	// new position, so removal must sift up as well as down.
	h, err := NewHeapFrom([]int{0, 10, 1, 11, 12, 2, 3})
	require.NoError(t, err)
	require.Equal(t, []int{0, 10, 1, 11, 12, 2, 3}, h.ToSlice(nil), "already a heap")

	require.True(t, h.RemoveFirst(11))
	requireHeap(t, h)
	assert.Equal(t, 3, h.buf[1], "moved element sifted up")

	require.False(t, h.RemoveFirst(11), "RemoveFirst() of absent value")

	dup, err := NewHeapFrom([]int{1, 5, 5, 6, 5})
	require.NoError(t, err)
	require.True(t, dup.RemoveLast(5))
	assert.Equal(t, []int{1, 5, 5, 6}, dup.ToSlice(nil), "RemoveLast() removes highest index")
	require.True(t, dup.RemoveFirst(5))
	requireHeap(t, dup)
	assert.Equal(t, 3, dup.Len())
}

func TestHeapUint256(t *testing.T) {
	h, err := NewHeapFunc(func(a, b uint256.Int) int {
		return a.Cmp(&b)
	}, WithCapacity(1))
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(0, 1)) //nolint:gosec // Reproducibility is useful in tests
	var want []uint256.Int
	for range 100 {
		var x uint256.Int
		for i := range x {
			x[i] = rng.Uint64()
		}
		h.Enqueue(x)
		want = append(want, x)
	}
	requireHeap(t, h)
	assert.GreaterOrEqual(t, h.Cap(), 100, "grown from capacity 1")

	slices.SortFunc(want, func(a, b uint256.Int) int {
		return a.Cmp(&b)
	})
	got := all[uint256.Int](t, h)
	require.Len(t, got, len(want))
	for i := range want {
		require.Truef(t, want[i].Eq(&got[i]), "Dequeue() #%d got %v; want %v", i, &got[i], &want[i])
	}
}

func TestHeapReverseComparator(t *testing.T) {
	rev := func(a, b string) int {
		switch {
		case a > b:
			return -1
		case a < b:
			return 1
		}
		return 0
	}
	h, err := NewHeapFromFunc([]string{"b", "d", "a", "c"}, rev)
	require.NoError(t, err)
	require.NotNil(t, h.Comparator())

	if diff := cmp.Diff([]string{"d", "c", "b", "a"}, all[string](t, h)); diff != "" {
		t.Errorf("Dequeue() until empty; diff (-want +got):\n%s", diff)
	}

	_, err = NewHeapFunc[string](nil)
	assert.ErrorIs(t, err, ErrInvalidArgument, "NewHeapFunc(nil)")
	_, err = NewHeap[string](WithCapacity(-1))
	assert.ErrorIs(t, err, ErrInvalidArgument, "NewHeap(WithCapacity(-1))")
}

func TestHeapPeekIsRaw(t *testing.T) {
	h, err := NewHeapFrom([]int{4, 3, 2, 1})
	require.NoError(t, err)

	got, err := h.Peek(0)
	require.NoError(t, err)
	assert.Equal(t, 1, got)
	for i := range h.Len() {
		x, err := h.Peek(i)
		require.NoError(t, err)
		assert.Equal(t, h.buf[i], x, "Peek(%d)", i)
	}
	for _, i := range []int{-1, 4} {
		_, err := h.Peek(i)
		assert.ErrorIsf(t, err, ErrIndexOutOfRange, "Peek(%d)", i)
	}
}

func TestHeapCapacity(t *testing.T) {
	h, err := NewHeap[int](WithCapacity(2))
	require.NoError(t, err)

	const n = 500
	for i := range n {
		h.Enqueue(n - i)
		requireHeap(t, h)
	}
	require.Equal(t, n, h.Len())
	c := h.Cap()

	for i := range n {
		got, err := h.Dequeue()
		require.NoError(t, err)
		require.Equal(t, i+1, got)
	}
	assert.Equal(t, c, h.Cap(), "heap never shrinks")

	h.EnqueueAll(3, 1, 2)
	h.Clear()
	assert.True(t, h.IsEmpty())
	assert.Equal(t, c, h.Cap(), "Clear() must not resize")
}
