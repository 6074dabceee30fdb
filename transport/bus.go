// Package transport implements the in-process message-passing fabric the
// rest of the pipeline is built against: reliable, ordered, point-to-point
// send/receive with tag and source matching, a non-blocking poll, and a
// broadcast primitive.
//
// Ranks are goroutines. Rank 0 is always the coordinator; ranks 1..N-1 are
// workers. There is no network and no serialization beyond the Message
// struct itself: this is deliberately the smallest thing that satisfies the
// contract, treating the transport as a self-contained collaborator rather
// than a design surface of its own.
package transport

import "context"

// Message is the unit exchanged between ranks. Payload is either empty or
// an ASCII filename/token, bounded by FILENAME_MAX — Go strings already
// carry their own length, so no terminator or bound is encoded explicitly,
// only implied by callers never producing longer values.
type Message struct {
	Tag     int
	Source  int
	Payload string
}

// Bus is a fixed set of ranks, each with its own inbox.
type Bus struct {
	inboxes []chan Message
}

// New creates a Bus for n ranks (rank 0 plus n-1 workers), each inbox
// buffered to capacity buf so a Send never blocks the coordinator's dispatch
// loop waiting on a slow worker to drain its previous message.
func New(n, buf int) *Bus {
	b := &Bus{inboxes: make([]chan Message, n)}
	for i := range b.inboxes {
		b.inboxes[i] = make(chan Message, buf)
	}
	return b
}

// Ranks reports the number of ranks the bus serves, coordinator included.
func (b *Bus) Ranks() int { return len(b.inboxes) }

// Send delivers a message to dest, blocking only if dest's inbox is full or
// ctx is cancelled first.
func (b *Bus) Send(ctx context.Context, dest, source, tag int, payload string) error {
	select {
	case b.inboxes[dest] <- Message{Tag: tag, Source: source, Payload: payload}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Broadcast sends an empty-payload message with the given tag, from the
// coordinator (rank 0), to every rank other than the coordinator. Used once
// the pipeline finishes, to dispatch TagKill.
func (b *Bus) Broadcast(ctx context.Context, tag int) error {
	for r := 1; r < len(b.inboxes); r++ {
		if err := b.Send(ctx, r, 0, tag, ""); err != nil {
			return err
		}
	}
	return nil
}

// Poll makes one non-blocking attempt to receive a message addressed to
// rank. It returns ok == false immediately if nothing is pending: there is
// no request object to cancel because a channel receive with a default
// case never posts one in the first place.
func (b *Bus) Poll(rank int) (Message, bool) {
	select {
	case m := <-b.inboxes[rank]:
		return m, true
	default:
		return Message{}, false
	}
}

// Recv blocks until a message addressed to rank arrives or ctx is
// cancelled. Workers use this at the head of their dispatch loop.
func (b *Bus) Recv(ctx context.Context, rank int) (Message, error) {
	select {
	case m := <-b.inboxes[rank]:
		return m, nil
	case <-ctx.Done():
		return Message{}, ctx.Err()
	}
}
