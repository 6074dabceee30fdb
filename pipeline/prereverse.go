package pipeline

import (
	"bufio"
	"context"
	"os"
	"strconv"

	"github.com/ygrebnov/revidx/document"
	"github.com/ygrebnov/revidx/log"
	"github.com/ygrebnov/revidx/storage"
	"github.com/ygrebnov/revidx/tokenizer"
)

// handleReverseIndexFile implements the PreReverse stage: read
// direct-index/{D} as (word, count) pairs and, for each, create a marker
// file inside reverse-index-temporary/{word}/.
func (r *Runner) handleReverseIndexFile(ctx context.Context, doc string) {
	logger := log.WithDocument(doc)

	f, err := os.Open(r.layout.DirectIndexPath(doc))
	if err != nil {
		// Missing direct-index/D happens for documents with no tokens at
		// all: reply immediately, nothing to do.
		r.reply(ctx, document.TagReverseIndexFile, doc)
		return
	}
	defer f.Close()

	scanner := tokenizer.New(bufio.NewReader(f))
	for {
		word, ok := scanner.Next()
		if !ok {
			break
		}
		countStr, ok := scanner.Next()
		if !ok {
			logger.Warn("direct-index file ended mid-pair, ignoring trailing word")
			break
		}
		count, err := strconv.Atoi(countStr)
		if err != nil {
			logger.Warn("malformed direct-index count, skipping pair")
			continue
		}

		tokenDir := r.layout.ReverseTempTokenDir(word)
		if err := storage.EnsureDir(tokenDir); err != nil {
			logger.Errorf("create reverse-temp token dir failed", err)
			continue
		}
		name := storage.PreReverseMarkerName(doc, count, storage.NowMicros())
		if err := storage.CreateMarkerExclusive(tokenDir, name); err != nil {
			logger.Errorf("create reverse-temp marker failed", err)
		}
	}

	r.reply(ctx, document.TagReverseIndexFile, doc)
}
