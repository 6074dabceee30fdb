package coordinator

import (
	"context"

	"github.com/ygrebnov/revidx/document"
	"github.com/ygrebnov/revidx/log"
	"github.com/ygrebnov/revidx/transport"
)

// runPhase1 drives every document through GetWords -> DirectIndex ->
// PreReverse. Each iteration posts a non-blocking poll; on a miss it
// simply loops (there is nothing to cancel, see transport.Bus.Poll), on a
// hit it treats the message as a completion ACK, updates the table, and
// dispatches the next eligible document to the worker that just freed up.
func (c *Coordinator) runPhase1(ctx context.Context) error {
	for c.table.Doable() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		var msg transport.Message
		var ok bool
		c.scratch(func(buf []byte) {
			msg, ok = c.bus.Poll(0)
			if ok && len(msg.Payload) <= len(buf) {
				copy(buf, msg.Payload)
			}
		})
		if !ok {
			continue
		}

		c.completed.Add(1)
		c.handleCompletion(msg)
		c.dispatchNext(ctx, msg.Source)
	}
	return nil
}

// handleCompletion applies the state transition for a completion message.
// A completion naming a document absent from the table is an invariant
// violation: log and skip, never crash.
func (c *Coordinator) handleCompletion(msg transport.Message) {
	if msg.Tag == document.TagAck {
		// Initial readiness ACK; no document transition, the worker is simply
		// available for its first dispatch.
		return
	}

	rec := c.table.Get(msg.Payload)
	if rec == nil {
		log.WithDocument(msg.Payload).Warn("completion for unknown document, ignoring")
		return
	}

	switch msg.Tag {
	case document.TagProcessWords:
		c.table.CompleteGetWords(msg.Payload)
	case document.TagIndexFile:
		c.table.CompleteDirectIndex(msg.Payload)
	case document.TagReverseIndexFile:
		c.table.CompleteReverseIndexFile(msg.Payload)
	default:
		log.WithDocument(msg.Payload).Warn("unexpected tag in phase 1 completion")
	}
}

// dispatchNext picks the next eligible document via the canonical linear
// scan and sends it to worker, tagged with the next stage for that
// document's lastOperation. If no document is eligible right now (every
// remaining one is InProgress elsewhere), worker is sent nothing and stays
// idle for the rest of phase 1, since an idle worker sends no further
// message that would bring it back here.
func (c *Coordinator) dispatchNext(ctx context.Context, worker int) {
	rec := c.table.NextOperation()
	if rec == nil {
		return
	}
	tag, ok := document.NextTag(rec.Last)
	if !ok {
		log.WithDocument(rec.Filename).Warn("no reachable next task for document state")
		return
	}

	c.table.Dispatch(rec.Filename, worker)
	if err := c.bus.Send(ctx, worker, 0, tag, rec.Filename); err != nil {
		log.Errorf("dispatch failed", err)
		return
	}
	c.dispatched.Add(1)
}
