package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/spacesedan/commentsense/internal/models"
)

const (
	CSV_FILE_NAME = "sentiment_results.csv"
	CSV_MIME_TYPE = "text/csv"
)

var csvHeader = []string{"Comment", "Sentiment"}

// WriteCSV writes rows as UTF-8 CSV with a Comment,Sentiment header and no
// index column.
func WriteCSV(w io.Writer, rows []models.ResultRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for i, row := range rows {
		if err := cw.Write([]string{row.Comment, row.Sentiment}); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeCSV is WriteCSV into a byte slice.
func EncodeCSV(rows []models.ResultRow) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadCSV parses output of WriteCSV.
func ReadCSV(r io.Reader) ([]models.ResultRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	if header[0] != csvHeader[0] || header[1] != csvHeader[1] {
		return nil, fmt.Errorf("unexpected csv header %q", header)
	}

	var rows []models.ResultRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}
		rows = append(rows, models.ResultRow{Comment: record[0], Sentiment: record[1]})
	}
	return rows, nil
}
