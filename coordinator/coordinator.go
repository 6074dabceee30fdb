// Package coordinator implements the rank-0 process: directory setup, the
// phase-1 per-document dispatch loop, the phase-2 token-scheduling loop, and
// the final KILL broadcast.
package coordinator

import (
	"context"
	"fmt"

	"github.com/ygrebnov/revidx/document"
	"github.com/ygrebnov/revidx/log"
	"github.com/ygrebnov/revidx/metrics"
	"github.com/ygrebnov/revidx/pool"
	"github.com/ygrebnov/revidx/storage"
	"github.com/ygrebnov/revidx/transport"
)

// FilenameMax bounds the scratch buffer the poll loop recycles on every
// iteration: each polled receive borrows a fresh buffer and returns it
// whether the poll succeeds or fails. 4096 matches the common Linux libc
// value the original was built against.
const FilenameMax = 4096

// Coordinator is the rank-0 pipeline driver.
type Coordinator struct {
	bus     *transport.Bus
	table   *document.Table
	layout  storage.Layout
	metrics metrics.Provider
	bufPool pool.Pool

	dispatched  metrics.Counter
	completed   metrics.Counter
	reverseDone metrics.Counter
}

// New builds a Coordinator for the given input documents. provider may be
// metrics.NoopProvider{} when metrics are disabled.
func New(bus *transport.Bus, layout storage.Layout, filenames []string, provider metrics.Provider) *Coordinator {
	return &Coordinator{
		bus:     bus,
		table:   document.New(filenames),
		layout:  layout,
		metrics: provider,
		bufPool: pool.NewDynamic(func() interface{} { return make([]byte, FilenameMax) }),

		dispatched:  provider.Counter("revidx_tasks_dispatched_total", metrics.WithDescription("pipeline tasks dispatched by the coordinator")),
		completed:   provider.Counter("revidx_tasks_completed_total", metrics.WithDescription("pipeline tasks acknowledged complete")),
		reverseDone: provider.Counter("revidx_tokens_reverse_indexed_total", metrics.WithDescription("tokens whose reverse-index entry has been written")),
	}
}

// Run creates the four output directories, drives phase 1 to completion,
// runs phase 2 over the resulting token set, and broadcasts KILL. It
// returns the first fatal error encountered; directory-creation failure
// still broadcasts KILL before returning.
func (c *Coordinator) Run(ctx context.Context) error {
	if err := c.createOutputDirs(); err != nil {
		log.Errorf("output directory creation failed", err)
		if kerr := c.bus.Broadcast(ctx, document.TagKill); kerr != nil {
			return fmt.Errorf("coordinator: create dirs: %w (kill broadcast also failed: %v)", err, kerr)
		}
		return nil
	}

	if err := c.runPhase1(ctx); err != nil {
		return fmt.Errorf("coordinator: phase 1: %w", err)
	}

	if err := c.runPhase2(ctx); err != nil {
		return fmt.Errorf("coordinator: phase 2: %w", err)
	}

	return c.bus.Broadcast(ctx, document.TagKill)
}

func (c *Coordinator) createOutputDirs() error {
	for _, dir := range c.layout.Dirs() {
		if err := storage.CreateDirFresh(dir); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// scratch recycles a FILENAME_MAX buffer from the pool for the duration of
// fn, returning it afterward regardless of how fn completes: a buffer is
// borrowed on every poll iteration and returned whether or not a message
// was actually pending.
func (c *Coordinator) scratch(fn func(buf []byte)) {
	buf := c.bufPool.Get().([]byte)
	defer c.bufPool.Put(buf)
	fn(buf)
}
