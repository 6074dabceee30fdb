package document

import "testing"

func TestNew_AllAvailableNone(t *testing.T) {
	tbl := New([]string{"b.txt", "a.txt"})

	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tbl.Len())
	}

	for _, name := range []string{"a.txt", "b.txt"} {
		rec := tbl.Get(name)
		if rec == nil {
			t.Fatalf("Get(%q) = nil", name)
		}
		if rec.Current != Available || rec.Last != None {
			t.Fatalf("%s: Current=%v Last=%v, want Available/None", name, rec.Current, rec.Last)
		}
	}
}

func TestNew_StorageOrderIsSorted(t *testing.T) {
	tbl := New([]string{"c.txt", "a.txt", "b.txt"})

	// NextOperation must return records in sorted (storage) order
	// regardless of the order filenames were supplied in.
	var order []string
	for i := 0; i < 3; i++ {
		rec := tbl.NextOperation()
		if rec == nil {
			t.Fatalf("NextOperation() returned nil at step %d", i)
		}
		order = append(order, rec.Filename)
		tbl.Dispatch(rec.Filename, 1)
		tbl.CompleteGetWords(rec.Filename)
		tbl.CompleteDirectIndex(rec.Filename)
		tbl.CompleteReverseIndexFile(rec.Filename)
	}

	want := []string{"a.txt", "b.txt", "c.txt"}
	for i, name := range want {
		if order[i] != name {
			t.Fatalf("dispatch order = %v, want %v", order, want)
		}
	}
}

func TestNextOperation_SkipsInProgressAndDone(t *testing.T) {
	tbl := New([]string{"a.txt", "b.txt"})

	rec := tbl.NextOperation()
	if rec.Filename != "a.txt" {
		t.Fatalf("first NextOperation() = %s, want a.txt", rec.Filename)
	}
	tbl.Dispatch("a.txt", 1)

	rec = tbl.NextOperation()
	if rec.Filename != "b.txt" {
		t.Fatalf("NextOperation() with a.txt InProgress = %s, want b.txt", rec.Filename)
	}
	tbl.Dispatch("b.txt", 2)

	if got := tbl.NextOperation(); got != nil {
		t.Fatalf("NextOperation() with both InProgress = %v, want nil", got)
	}
}

func TestCompletionChain_AdvancesLastOperation(t *testing.T) {
	tbl := New([]string{"a.txt"})

	tbl.Dispatch("a.txt", 1)
	tbl.CompleteGetWords("a.txt")
	rec := tbl.Get("a.txt")
	if rec.Current != Available || rec.Last != GetWords {
		t.Fatalf("after CompleteGetWords: Current=%v Last=%v", rec.Current, rec.Last)
	}

	tbl.Dispatch("a.txt", 1)
	tbl.CompleteDirectIndex("a.txt")
	if rec.Current != Available || rec.Last != DirectIndex {
		t.Fatalf("after CompleteDirectIndex: Current=%v Last=%v", rec.Current, rec.Last)
	}

	tbl.Dispatch("a.txt", 1)
	tbl.CompleteReverseIndexFile("a.txt")
	if rec.Current != Done || rec.Last != Done {
		t.Fatalf("after CompleteReverseIndexFile: Current=%v Last=%v, want Done/Done", rec.Current, rec.Last)
	}
}

func TestDoable(t *testing.T) {
	tbl := New([]string{"a.txt"})
	if !tbl.Doable() {
		t.Fatal("fresh table must be doable")
	}

	tbl.Dispatch("a.txt", 1)
	if !tbl.Doable() {
		t.Fatal("table with an InProgress document must be doable")
	}

	tbl.CompleteGetWords("a.txt")
	tbl.Dispatch("a.txt", 1)
	tbl.CompleteDirectIndex("a.txt")
	tbl.Dispatch("a.txt", 1)
	tbl.CompleteReverseIndexFile("a.txt")

	if tbl.Doable() {
		t.Fatal("table with every document Done must not be doable")
	}
}

func TestDoable_ZeroDocuments(t *testing.T) {
	tbl := New(nil)
	if tbl.Doable() {
		t.Fatal("empty table must never be doable")
	}
}

func TestGet_UnknownFilenameReturnsNil(t *testing.T) {
	tbl := New([]string{"a.txt"})
	if got := tbl.Get("missing.txt"); got != nil {
		t.Fatalf("Get(missing) = %v, want nil", got)
	}
}

func TestComplete_UnknownFilenameIsNoop(t *testing.T) {
	tbl := New([]string{"a.txt"})
	// None of these must panic, and a.txt's own record must stay untouched.
	tbl.Dispatch("missing.txt", 1)
	tbl.CompleteGetWords("missing.txt")
	tbl.CompleteDirectIndex("missing.txt")
	tbl.CompleteReverseIndexFile("missing.txt")

	rec := tbl.Get("a.txt")
	if rec.Current != Available || rec.Last != None {
		t.Fatalf("a.txt mutated by unknown-filename calls: Current=%v Last=%v", rec.Current, rec.Last)
	}
}

func TestNextTag(t *testing.T) {
	cases := []struct {
		last    Operation
		wantTag int
		wantOK  bool
	}{
		{None, TagProcessWords, true},
		{GetWords, TagIndexFile, true},
		{DirectIndex, TagReverseIndexFile, true},
		{Done, 0, false},
	}
	for _, c := range cases {
		tag, ok := NextTag(c.last)
		if tag != c.wantTag || ok != c.wantOK {
			t.Errorf("NextTag(%v) = (%d, %v), want (%d, %v)", c.last, tag, ok, c.wantTag, c.wantOK)
		}
	}
}

func TestOperation_String(t *testing.T) {
	cases := map[Operation]string{
		None:        "none",
		GetWords:    "get-words",
		DirectIndex: "direct-index",
		Done:        "done",
		Available:   "available",
		InProgress:  "in-progress",
		Operation(42): "unknown",
	}
	for op, want := range cases {
		if got := op.String(); got != want {
			t.Errorf("Operation(%d).String() = %q, want %q", op, got, want)
		}
	}
}
