// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package queue_test

import (
	"fmt"

	"github.com/ava-labs/pqueue/queue"
)

func ExampleCircular() {
	q, err := queue.NewCircular[int](queue.WithCapacity(4))
	if err != nil {
		panic(err)
	}
	q.EnqueueAll(1, 2, 3)
	x, _ := q.Dequeue()
	q.EnqueueFirst(0)

	fmt.Println(x, q)
	// Output: 1 [0, 2, 3]
}

func ExampleHeap() {
	h, err := queue.NewHeap[int]()
	if err != nil {
		panic(err)
	}
	h.EnqueueAll(5, 1, 4, 2)

	for x := range h.All() {
		fmt.Print(x, " ")
	}
	fmt.Println(h.IsEmpty())
	// Output: 1 2 4 5 true
}

func ExampleWrapHeap() {
	h, err := queue.WrapHeap([]int{3, 1, 2}, 3)
	if err != nil {
		panic(err)
	}
	fmt.Println(h.First())
	// Output: 1 <nil>
}
