package pipeline

import (
	"context"
	"os"
	"testing"

	"github.com/ygrebnov/revidx/document"
	"github.com/ygrebnov/revidx/storage"
	"github.com/ygrebnov/revidx/transport"
)

func TestHandleIndexFile_RunLengthEncodesSortedMarkers(t *testing.T) {
	l := newTestLayout(t)
	writeInput(t, l, "a.txt", "hello hello world")

	bus := transport.New(2, 4)
	r := New(bus, 1, l)
	r.handleProcessWords(context.Background(), "a.txt")
	drainReply(t, bus)

	r.handleIndexFile(context.Background(), "a.txt")
	msg := drainReply(t, bus)
	if msg.Tag != document.TagIndexFile || msg.Payload != "a.txt" {
		t.Fatalf("reply = %+v", msg)
	}

	data, err := os.ReadFile(l.DirectIndexPath("a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	want1 := "hello 2\nworld 1\n"
	if got != want1 {
		t.Fatalf("direct-index/a.txt = %q, want %q", got, want1)
	}
}

func TestHandleIndexFile_EmptyTempDirSkipsOutput(t *testing.T) {
	l := newTestLayout(t)
	if err := storage.EnsureDir(l.TempDocDir("empty.txt")); err != nil {
		t.Fatal(err)
	}

	bus := transport.New(2, 4)
	r := New(bus, 1, l)
	r.handleIndexFile(context.Background(), "empty.txt")
	drainReply(t, bus)

	if _, err := os.Stat(l.DirectIndexPath("empty.txt")); !os.IsNotExist(err) {
		t.Fatalf("direct-index/empty.txt must not be created, stat err = %v", err)
	}
}

func TestHandleIndexFile_SingleToken(t *testing.T) {
	l := newTestLayout(t)
	writeInput(t, l, "a.txt", "hello")

	bus := transport.New(2, 4)
	r := New(bus, 1, l)
	r.handleProcessWords(context.Background(), "a.txt")
	drainReply(t, bus)
	r.handleIndexFile(context.Background(), "a.txt")
	drainReply(t, bus)

	data, err := os.ReadFile(l.DirectIndexPath("a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello 1\n" {
		t.Fatalf("direct-index/a.txt = %q, want %q", string(data), "hello 1\n")
	}
}

func drainReply(t *testing.T, bus *transport.Bus) transport.Message {
	t.Helper()
	msg, err := bus.Recv(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	return msg
}
