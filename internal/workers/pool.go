// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package workers runs batches of independent jobs on a fixed set of
// goroutines.
package workers

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a set of worker goroutines. Each worker owns a queue and steals
// from the others when its own queue is empty.
//
// Run may be called from several goroutines at once. Close must not race
// with Run.
type Pool struct {
	size   int
	queues []chan func()
	done   chan struct{}
	wg     sync.WaitGroup
	open   atomic.Bool
}

// New starts a pool of size workers. A non-positive size uses GOMAXPROCS.
func New(size int) *Pool {
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
	}
	depth := max(size*4, 8)

	p := &Pool{
		size:   size,
		queues: make([]chan func(), size),
		done:   make(chan struct{}),
	}
	for i := range size {
		p.queues[i] = make(chan func(), depth)
	}
	p.open.Store(true)

	p.wg.Add(size)
	for i := range size {
		go p.loop(i)
	}
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return p.size
}

// Run executes every job and returns when all have finished. Jobs are
// dealt round-robin to the worker queues. After Close, jobs run on the
// calling goroutine.
func (p *Pool) Run(jobs []func()) {
	if len(jobs) == 0 {
		return
	}
	if !p.open.Load() {
		for _, job := range jobs {
			job()
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(jobs))
	for i, job := range jobs {
		wrapped := func() {
			defer wg.Done()
			job()
		}
		select {
		case p.queues[i%p.size] <- wrapped:
		case <-p.done:
			wrapped()
		}
	}
	wg.Wait()
}

// Close stops the workers after their queues drain. It is idempotent.
func (p *Pool) Close() {
	if !p.open.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

func (p *Pool) loop(id int) {
	defer p.wg.Done()
	own := p.queues[id]

	for {
		select {
		case <-p.done:
			drain(own)
			return
		case job := <-own:
			job()
			continue
		default:
		}

		if job := p.steal(id); job != nil {
			job()
			continue
		}

		select {
		case <-p.done:
			drain(own)
			return
		case job := <-own:
			job()
		}
	}
}

// steal takes one job from another worker's queue, or returns nil.
func (p *Pool) steal(id int) func() {
	for i := 1; i < p.size; i++ {
		select {
		case job := <-p.queues[(id+i)%p.size]:
			return job
		default:
		}
	}
	return nil
}

func drain(q chan func()) {
	for {
		select {
		case job := <-q:
			job()
		default:
			return
		}
	}
}
