package pipeline

import (
	"bufio"
	"context"
	"os"

	"github.com/ygrebnov/revidx/document"
	"github.com/ygrebnov/revidx/log"
	"github.com/ygrebnov/revidx/storage"
)

// handleIndexFile implements the DirectIndex stage: collapse the sorted
// marker filenames in temp/{D}/ into run-length-encoded "token count"
// records written to direct-index/{D}.
func (r *Runner) handleIndexFile(ctx context.Context, doc string) {
	logger := log.WithDocument(doc)

	names, err := storage.ListSorted(r.layout.TempDocDir(doc))
	if err != nil {
		logger.Errorf("list temp dir failed", err)
		r.reply(ctx, document.TagIndexFile, doc)
		return
	}
	if len(names) == 0 {
		// Empty intermediate short-circuits: direct-index/D is not created.
		r.reply(ctx, document.TagIndexFile, doc)
		return
	}

	out, err := os.Create(r.layout.DirectIndexPath(doc))
	if err != nil {
		logger.Errorf("create direct-index file failed", err)
		r.reply(ctx, document.TagIndexFile, doc)
		return
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	defer w.Flush()

	var lastWord string
	wordCount := 0
	started := false

	for _, name := range names {
		tok, ok := storage.SplitTokenMarker(name)
		if !ok {
			continue
		}
		// Copy the extracted token into its own string value (Go strings
		// are immutable, so this conversion already owns its bytes rather
		// than aliasing any shared buffer — the fix for the aliasing risk
		// flagged against the original's C strtok usage).
		word := string([]byte(tok))

		if started && word == lastWord {
			wordCount++
			continue
		}
		if started {
			w.WriteString(storage.DirectIndexRecord(lastWord, wordCount))
		}
		lastWord = word
		wordCount = 1
		started = true
	}
	if started {
		w.WriteString(storage.DirectIndexRecord(lastWord, wordCount))
	}

	r.reply(ctx, document.TagIndexFile, doc)
}
