package sentiment

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// ErrInvalidEncoding is returned when an upload is not valid UTF-8.
var ErrInvalidEncoding = errors.New("uploaded file is not valid UTF-8")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CommentBatch is an ordered list of comments. Position ties a comment to the
// label returned for it. Batches built by NewSingleBatch or BatchFromReader
// never contain blank elements.
type CommentBatch []string

// NewSingleBatch builds a batch from one text entry. Whitespace-only input
// yields an empty batch.
func NewSingleBatch(text string) CommentBatch {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return CommentBatch{}
	}
	return CommentBatch{trimmed}
}

// BatchFromReader reads newline-delimited comments. Each line is trimmed and
// blank lines are dropped.
func BatchFromReader(r io.Reader) (CommentBatch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read comments: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, ErrInvalidEncoding
	}

	return BatchFromLines(strings.Split(string(data), "\n")), nil
}

// BatchFromLines trims every line and keeps the non-blank ones in order.
func BatchFromLines(lines []string) CommentBatch {
	batch := make(CommentBatch, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			batch = append(batch, trimmed)
		}
	}
	return batch
}

func (b CommentBatch) Len() int { return len(b) }

func (b CommentBatch) IsEmpty() bool { return len(b) == 0 }
