// Package document implements the coordinator's per-document state machine:
// the table of input documents, their progress through the pipeline, and the
// linear-scan dispatch policy used to pick the next document to hand out.
package document

import "sort"

// Operation names a stage of the pipeline, or one of the two document
// states (Available/InProgress). The two enumerations share a type because
// the original design does too: a document's lastOperation and
// currentOperation are drawn from overlapping tag spaces.
type Operation int

const (
	None Operation = iota
	GetWords
	DirectIndex
	Done

	Available
	InProgress
)

func (o Operation) String() string {
	switch o {
	case None:
		return "none"
	case GetWords:
		return "get-words"
	case DirectIndex:
		return "direct-index"
	case Done:
		return "done"
	case Available:
		return "available"
	case InProgress:
		return "in-progress"
	default:
		return "unknown"
	}
}

// Record is one document's row in the coordinator's table.
type Record struct {
	Filename  string
	Current   Operation // Available | InProgress | Done (after the last stage)
	Last      Operation // None | GetWords | DirectIndex | Done
	Owner     int       // rank holding the task when Current == InProgress
}

// Table is the coordinator's document table. It is not safe for concurrent
// use; the coordinator owns it exclusively and mutates it only in response
// to received completion messages, per the single-writer invariant.
type Table struct {
	order   []string       // insertion order == storage order == linear-scan order
	records map[string]*Record
}

// New builds a table from a list of input filenames, which it sorts into
// storage order. Every document starts Available with lastOperation None.
func New(filenames []string) *Table {
	names := append([]string(nil), filenames...)
	sort.Strings(names)

	t := &Table{
		order:   names,
		records: make(map[string]*Record, len(names)),
	}
	for _, name := range names {
		t.records[name] = &Record{Filename: name, Current: Available, Last: None}
	}
	return t
}

// Len reports the number of documents in the table.
func (t *Table) Len() int { return len(t.order) }

// Get returns the record for filename, or nil if it is not present. An
// unknown filename in a completion message is an invariant violation:
// callers must log and skip rather than treating nil as a panic condition.
func (t *Table) Get(filename string) *Record {
	return t.records[filename]
}

// Doable reports whether phase 1 still has work to do: some document is
// eligible for dispatch, or some document is currently being processed by a
// worker. Phase 1 terminates the first time this returns false.
func (t *Table) Doable() bool {
	for _, name := range t.order {
		r := t.records[name]
		if r.Current == InProgress {
			return true
		}
		if r.Current == Available && r.Last != Done {
			return true
		}
	}
	return false
}

// NextOperation performs the canonical linear scan and returns the first
// record, in storage order, with Current == Available && Last != Done. It
// returns nil if no such record exists. Linear-scan order is the tie-break
// and must never be replaced by a different selection strategy (e.g. a
// priority queue) without changing observable dispatch order.
func (t *Table) NextOperation() *Record {
	for _, name := range t.order {
		r := t.records[name]
		if r.Current == Available && r.Last != Done {
			return r
		}
	}
	return nil
}

// Dispatch marks filename InProgress, owned by rank. Callers must have just
// obtained the record from NextOperation (or otherwise verified eligibility)
// before calling this.
func (t *Table) Dispatch(filename string, rank int) {
	r := t.records[filename]
	if r == nil {
		return
	}
	r.Current = InProgress
	r.Owner = rank
}

// CompleteGetWords advances filename past the Tokenize stage.
func (t *Table) CompleteGetWords(filename string) {
	t.complete(filename, GetWords)
}

// CompleteDirectIndex advances filename past the DirectIndex stage.
func (t *Table) CompleteDirectIndex(filename string) {
	t.complete(filename, DirectIndex)
}

// CompleteReverseIndexFile marks filename fully Done after PreReverse.
func (t *Table) CompleteReverseIndexFile(filename string) {
	r := t.records[filename]
	if r == nil {
		return
	}
	r.Current = Done
	r.Last = Done
}

func (t *Table) complete(filename string, last Operation) {
	r := t.records[filename]
	if r == nil {
		return
	}
	r.Current = Available
	r.Last = last
}

// NextTag returns the tag of the task to dispatch next for a document whose
// lastOperation is last. Any value outside {None, GetWords, DirectIndex} is
// unreachable per the table's own state transitions and NextOperation's
// Last != Done filter, so callers that hit the zero-value return here have
// an invariant violation to log, not a case to handle silently.
func NextTag(last Operation) (tag int, ok bool) {
	switch last {
	case None:
		return TagProcessWords, true
	case GetWords:
		return TagIndexFile, true
	case DirectIndex:
		return TagReverseIndexFile, true
	default:
		return 0, false
	}
}

// Tag values for the phase-1/phase-2 wire protocol.
const (
	TagAck               = 101
	TagIndexFile         = 102
	TagProcessWords      = 103
	TagReverseIndexFile  = 104
	TagReverseIndexWord  = 105
	TagKill              = 999
)
