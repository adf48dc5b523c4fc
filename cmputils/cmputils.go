// Copyright (C) 2025-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

//go:build !prod && !nocmpopts

// Package cmputils provides [cmp] options for comparing queues and utilities
// for their creation.
package cmputils

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/exp/constraints"

	"github.com/ava-labs/pqueue/queue"
)

// IfIn returns a filtered equivalent of `opt` such that it is only evaluated if
// the [cmp.Path] includes at least one `T`. This is typically used for struct
// fields (and sub-fields).
func IfIn[T any](opt cmp.Option) cmp.Option {
	return cmp.FilterPath(func(p cmp.Path) bool {
		t := reflect.TypeFor[T]()
		for _, step := range p {
			if step.Type() == t {
				return true
			}
		}
		return false
	}, opt)
}

const queueToSlice = "queue_to_slice"

// QueueContents returns a [cmp.Transformer] that compares [queue.Queue] values
// by their elements in `Peek` order. This is equivalent to [queue.Equal], which
// [cmp] already uses by default, but reports element-level diffs.
func QueueContents[T comparable]() cmp.Option {
	return cmp.Transformer(queueToSlice, func(q queue.Queue[T]) []T {
		if q == nil {
			return nil
		}
		return q.ToSlice(nil)
	})
}

// QueueElements returns options that compare [queue.Queue] values as multisets,
// ignoring both order and buffer layout, i.e. as [queue.SameElements].
func QueueElements[T constraints.Ordered]() cmp.Option {
	return cmp.Options{
		QueueContents[T](),
		cmp.FilterPath(
			underQueueTransform,
			cmpopts.SortSlices(func(a, b T) bool { return a < b }),
		),
	}
}

func underQueueTransform(p cmp.Path) bool {
	for _, step := range p {
		if tr, ok := step.(cmp.Transform); ok && tr.Name() == queueToSlice {
			return true
		}
	}
	return false
}

// HeapsAsMultisets returns [QueueElements] limited to [queue.Heap] values and
// their sub-paths. Other queues are still compared in `Peek` order.
func HeapsAsMultisets[T constraints.Ordered]() cmp.Option {
	return IfIn[*queue.Heap[T]](QueueElements[T]())
}
