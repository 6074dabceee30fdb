package pipeline

import (
	"bufio"
	"context"
	"os"

	"github.com/ygrebnov/revidx/document"
	"github.com/ygrebnov/revidx/log"
	"github.com/ygrebnov/revidx/storage"
	"github.com/ygrebnov/revidx/tokenizer"
)

// markerRetries is the number of attempts a marker-creating handler makes
// before giving up on a single occurrence when two occurrences of the same
// token sample the same microsecond.
const markerRetries = 5

// handleProcessWords implements the Tokenize stage: read the input
// document, emit one zero-byte marker file per token occurrence into
// temp/{D}/.
func (r *Runner) handleProcessWords(ctx context.Context, doc string) {
	logger := log.WithDocument(doc)

	f, err := os.Open(r.layout.InputPath(doc))
	if err != nil {
		logger.Warn("input document unreadable, replying anyway")
		r.reply(ctx, document.TagProcessWords, doc)
		return
	}
	defer f.Close()

	tempDir := r.layout.TempDocDir(doc)
	if err := storage.EnsureDir(tempDir); err != nil {
		logger.Errorf("create temp dir failed", err)
		r.reply(ctx, document.TagProcessWords, doc)
		return
	}

	scanner := tokenizer.New(bufio.NewReader(f))
	for {
		tok, ok := scanner.Next()
		if !ok {
			break
		}
		createMarkerWithRetry(tempDir, tok, markerRetries)
	}

	r.reply(ctx, document.TagProcessWords, doc)
}

// createMarkerWithRetry attempts to create a uniquely-timestamped marker
// file for token inside dir, resampling the timestamp on a collision, up to
// attempts times. A marker that still collides after all attempts is
// dropped silently: this mirrors the original's behavior of giving up after
// a fixed retry budget, trading a rare dropped occurrence for liveness.
func createMarkerWithRetry(dir, token string, attempts int) {
	for i := 0; i < attempts; i++ {
		name := storage.TokenMarkerName(token, storage.NowMicros())
		err := storage.CreateMarkerExclusive(dir, name)
		if err == nil {
			return
		}
		if !storage.IsExist(err) {
			return
		}
	}
}
