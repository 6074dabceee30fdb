package coordinator

import (
	"context"

	"github.com/ygrebnov/revidx/document"
	"github.com/ygrebnov/revidx/log"
	"github.com/ygrebnov/revidx/storage"
)

// runPhase2 enumerates reverse-index-temporary/ for the global token set
// and distributes token-level ReverseIndex work across all workers. It
// begins only after runPhase1 has returned, i.e. strictly after every
// document has reached Done.
func (c *Coordinator) runPhase2(ctx context.Context) error {
	tokens, err := storage.ListSorted(c.layout.ReverseTempDir)
	if err != nil {
		return err
	}

	n := c.bus.Ranks()
	available := make([]bool, n) // index 0 unused; ranks 1..n-1 are workers
	for r := 1; r < n; r++ {
		available[r] = true
	}

	busy := 0
	i := 0
	for i < len(tokens) || busy > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if msg, ok := c.bus.Poll(0); ok && msg.Tag == document.TagReverseIndexWord {
			available[msg.Source] = true
			busy--
			c.reverseDone.Add(1)
		}

		if i < len(tokens) {
			if r := lowestAvailable(available); r != 0 {
				if err := c.bus.Send(ctx, r, 0, document.TagReverseIndexWord, tokens[i]); err != nil {
					log.WithToken(tokens[i]).Errorf("phase 2 dispatch failed", err)
				} else {
					available[r] = false
					busy++
					c.dispatched.Add(1)
					i++
				}
			}
		}
	}

	return nil
}

// lowestAvailable returns the lowest rank with available[r] == true, or 0
// (never a valid worker rank) if none is available: the lowest-rank
// available worker always wins dispatch.
func lowestAvailable(available []bool) int {
	for r := 1; r < len(available); r++ {
		if available[r] {
			return r
		}
	}
	return 0
}
