package pipeline

import (
	"bufio"
	"context"
	"os"

	"github.com/ygrebnov/revidx/document"
	"github.com/ygrebnov/revidx/log"
	"github.com/ygrebnov/revidx/storage"
)

// handleReverseIndexWord implements the ReverseIndex stage: fold every
// marker under reverse-index-temporary/{token}/ into reverse-index/{token}.
func (r *Runner) handleReverseIndexWord(ctx context.Context, token string) {
	logger := log.WithToken(token)

	out, err := os.OpenFile(r.layout.ReverseIndexPath(token), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Errorf("open reverse-index file failed", err)
		r.reply(ctx, document.TagReverseIndexWord, token)
		return
	}
	defer out.Close()

	names, err := storage.ListSorted(r.layout.ReverseTempTokenDir(token))
	if err != nil {
		logger.Errorf("list reverse-temp token dir failed", err)
		r.reply(ctx, document.TagReverseIndexWord, token)
		return
	}

	w := bufio.NewWriter(out)
	for _, name := range names {
		parent, count, ok := storage.SplitPreReverseMarker(name)
		if !ok {
			logger.Warn("malformed reverse-temp marker name, skipping")
			continue
		}
		w.WriteString(storage.DirectIndexRecord(parent, count))
	}
	w.Flush()

	r.reply(ctx, document.TagReverseIndexWord, token)
}
