// Package pipeline implements the worker side of the protocol: the
// per-rank dispatch loop and the four task handlers (Tokenize,
// DirectIndex, PreReverse, ReverseIndex).
package pipeline

import (
	"context"

	"github.com/ygrebnov/revidx/document"
	"github.com/ygrebnov/revidx/log"
	"github.com/ygrebnov/revidx/storage"
	"github.com/ygrebnov/revidx/transport"
)

// Runner is one worker rank's receive-dispatch-reply loop: a
// single-threaded blocking receive loop. Workers are stateless between
// tasks: Runner carries no per-document state across iterations.
type Runner struct {
	bus    *transport.Bus
	rank   int
	layout storage.Layout
}

// New builds a Runner for rank, talking to bus.
func New(bus *transport.Bus, rank int, layout storage.Layout) *Runner {
	return &Runner{bus: bus, rank: rank, layout: layout}
}

// Run sends the initial readiness ACK and then loops, executing whatever
// task the coordinator dispatches, until it receives TagKill or ctx is
// cancelled. It returns nil on a clean KILL, and the context error on
// cancellation.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.bus.Send(ctx, 0, r.rank, document.TagAck, ""); err != nil {
		return err
	}

	logger := log.WithRank(r.rank)
	for {
		msg, err := r.bus.Recv(ctx, r.rank)
		if err != nil {
			return err
		}

		switch msg.Tag {
		case document.TagProcessWords:
			r.handleProcessWords(ctx, msg.Payload)
		case document.TagIndexFile:
			r.handleIndexFile(ctx, msg.Payload)
		case document.TagReverseIndexFile:
			r.handleReverseIndexFile(ctx, msg.Payload)
		case document.TagReverseIndexWord:
			r.handleReverseIndexWord(ctx, msg.Payload)
		case document.TagKill:
			logger.Debug("received kill, exiting")
			return nil
		default:
			logger.Warn("unexpected tag, ignoring")
		}
	}
}

// reply sends a completion message back to the coordinator: a reply whose
// tag equals the request tag and whose payload echoes the input
// filename/token.
func (r *Runner) reply(ctx context.Context, tag int, payload string) {
	if err := r.bus.Send(ctx, 0, r.rank, tag, payload); err != nil {
		log.WithRank(r.rank).Errorf("reply failed", err)
	}
}
