// Package tokenizer implements the scanner used by every stage that needs to
// split text into alphanumeric tokens: Tokenize reading an input document,
// and PreReverse reading a direct-index file's whitespace-separated
// "token count" pairs.
package tokenizer

import "bufio"

// MaxTokenLength is the scanner's buffer cap. A run of alphanumeric
// characters longer than this is truncated: the scanner stops accumulating
// at MaxTokenLength and resumes scanning immediately after, so the
// remaining characters of an overlong run start a new token.
const MaxTokenLength = 254

// Scanner reads a maximal run of [A-Za-z0-9] at a time from the underlying
// reader, skipping any leading non-alphanumeric run first.
type Scanner struct {
	r *bufio.Reader
}

// New wraps r in a token Scanner.
func New(r *bufio.Reader) *Scanner {
	return &Scanner{r: r}
}

func isAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// Next returns the next token and true, or "" and false at end of input with
// no pending token.
func (s *Scanner) Next() (string, bool) {
	// Skip any leading non-alphanumeric run.
	for {
		b, err := s.r.ReadByte()
		if err != nil {
			return "", false
		}
		if isAlnum(b) {
			if err := s.r.UnreadByte(); err != nil {
				return "", false
			}
			break
		}
	}

	buf := make([]byte, 0, MaxTokenLength)
	for len(buf) < MaxTokenLength {
		b, err := s.r.ReadByte()
		if err != nil {
			break
		}
		if !isAlnum(b) {
			break
		}
		buf = append(buf, b)
	}
	return string(buf), true
}

// All drains the scanner into a slice of tokens, preserving stream order.
func (s *Scanner) All() []string {
	var tokens []string
	for {
		tok, ok := s.Next()
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
