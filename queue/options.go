// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package queue

import (
	"fmt"

	"github.com/ava-labs/libevm/libevm/options"
)

// DefaultCapacity is the initial buffer length of queues constructed without
// [WithCapacity].
const DefaultCapacity = 16

type config struct {
	capacity int
}

// An Option configures the construction of a queue.
type Option = options.Option[config]

// WithCapacity sets the initial length of the backing buffer. A [Circular]
// queue is never allocated with less than [MinCapacity]. Negative values result
// in [ErrInvalidArgument] from the constructor.
func WithCapacity(n int) Option {
	return options.Func[config](func(c *config) {
		c.capacity = n
	})
}

func newConfig(opts ...Option) (*config, error) {
	c := options.ApplyTo(&config{capacity: DefaultCapacity}, opts...)
	if c.capacity < 0 {
		return nil, fmt.Errorf("%w: capacity %d", ErrInvalidArgument, c.capacity)
	}
	return c, nil
}
