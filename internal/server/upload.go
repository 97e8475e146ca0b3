package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/spacesedan/commentsense/internal/sentiment"
)

const uploadField = "file"

var errNotText = errors.New("only .txt files are accepted")

// readUpload turns the uploaded .txt file into a batch.
func (s *Server) readUpload(c *gin.Context) (sentiment.CommentBatch, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUploadBytes+1024)

	header, err := c.FormFile(uploadField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, s.errTooLarge()
		}
		return nil, fmt.Errorf("missing upload field %q: %w", uploadField, err)
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".txt") {
		return nil, errNotText
	}
	if header.Size > s.maxUploadBytes {
		return nil, s.errTooLarge()
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	return sentiment.BatchFromReader(io.LimitReader(f, s.maxUploadBytes))
}

func (s *Server) errTooLarge() error {
	return fmt.Errorf("file exceeds %d bytes", s.maxUploadBytes)
}
