// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package buffer

import (
	"sync"

	"go.uber.org/atomic"
)

// Pool is a free list of segments shared by every buffer attached to it.
// Segments come back zeroed from [Pool.Get] and are never returned to the
// Go allocator once created.
//
// Pool is safe for concurrent use by multiple goroutines.
type Pool struct {
	mu    sync.Mutex
	free  *Segment
	limit int
	total int

	acquired atomic.Int64
	released atomic.Int64
	blocks   atomic.Int64
	idle     atomic.Int64
}

// PoolOption configures a [Pool].
type PoolOption func(*Pool)

// WithMaxSegments caps the number of segments the pool will ever create.
// Zero means unlimited.
func WithMaxSegments(n int) PoolOption {
	return func(p *Pool) {
		if n > 0 {
			p.limit = n
		}
	}
}

// NewPool creates an empty pool. Segments are allocated on first use.
func NewPool(opts ...PoolOption) *Pool {
	p := &Pool{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var (
	defaultPool     *Pool
	defaultPoolOnce sync.Once
)

// DefaultPool returns the process-wide pool used by buffers created without
// [WithPool]. It is created on first call.
func DefaultPool() *Pool {
	defaultPoolOnce.Do(func() { defaultPool = NewPool() })
	return defaultPool
}

// Get returns a zeroed, empty segment, or nil if the pool is exhausted.
func (p *Pool) Get() *Segment {
	p.mu.Lock()
	if p.free == nil && !p.grow() {
		p.mu.Unlock()
		return nil
	}
	s := p.free
	p.free = s.next
	p.mu.Unlock()

	s.reset()
	p.acquired.Inc()
	p.idle.Dec()
	return s
}

// grow adds up to AllocBatch segments backed by one slab. Caller holds mu.
func (p *Pool) grow() bool {
	count := AllocBatch
	if p.limit > 0 {
		count = min(count, p.limit-p.total)
	}
	if count <= 0 {
		return false
	}

	slab := make([]byte, count*SegmentCapacity)
	segs := make([]Segment, count)
	for i := range segs {
		segs[i].data = slab[i*SegmentCapacity : (i+1)*SegmentCapacity : (i+1)*SegmentCapacity]
		segs[i].next = p.free
		segs[i].pool = p
		p.free = &segs[i]
	}
	p.total += count
	p.blocks.Inc()
	p.idle.Add(int64(count))
	return true
}

// Put returns a single segment to the pool. A segment created by another
// pool, for example one spliced in from a buffer on a different pool, goes
// back to the pool that created it, so a capped pool never holds more than
// its limit.
func (p *Pool) Put(s *Segment) {
	if s == nil {
		return
	}
	if s.pool != nil && s.pool != p {
		s.pool.Put(s)
		return
	}
	p.mu.Lock()
	s.next = p.free
	p.free = s
	p.mu.Unlock()

	p.released.Inc()
	p.idle.Inc()
}

// PutChain returns every segment from head to the end of its chain.
func (p *Pool) PutChain(head *Segment) {
	for head != nil {
		next := head.next
		p.Put(head)
		head = next
	}
}

// PoolStats is a snapshot of pool counters.
type PoolStats struct {
	// Segments is the number of segments ever created.
	Segments int
	// Idle is the number of segments currently on the free list.
	Idle int64
	// Acquired counts successful Get calls.
	Acquired int64
	// Released counts segments returned with Put.
	Released int64
	// Blocks counts slab allocations.
	Blocks int64
	// Limit is the configured segment cap (0 = unlimited).
	Limit int
}

// Stats returns the current counters.
func (p *Pool) Stats() PoolStats {
	p.mu.Lock()
	total := p.total
	p.mu.Unlock()
	return PoolStats{
		Segments: total,
		Idle:     p.idle.Load(),
		Acquired: p.acquired.Load(),
		Released: p.released.Load(),
		Blocks:   p.blocks.Load(),
		Limit:    p.limit,
	}
}
