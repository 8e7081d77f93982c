package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/finchley/lexi/internal/domain"
)

// ParseWordList parses a pasted word list into raw records. One entry per
// line; a line may carry a definition and an example separated by tabs or
// by " - ". Blank lines are skipped. As a convenience a single line with
// no separators but containing commas is treated as a comma-separated
// term list.
func ParseWordList(text string) []domain.WordRecord {
	lines := strings.Split(text, "\n")

	if len(lines) == 1 && !strings.Contains(lines[0], "\t") &&
		!strings.Contains(lines[0], " - ") && strings.Contains(lines[0], ",") {
		var records []domain.WordRecord
		for _, t := range strings.Split(lines[0], ",") {
			records = append(records, domain.WordRecord{Term: strings.TrimSpace(t)})
		}
		return records
	}

	records := make([]domain.WordRecord, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		records = append(records, splitEntry(line))
	}
	return records
}

// splitEntry breaks a single word-list line into term, definition and
// example fields.
func splitEntry(line string) domain.WordRecord {
	var fields []string
	if strings.Contains(line, "\t") {
		fields = strings.Split(line, "\t")
	} else {
		fields = strings.Split(line, " - ")
	}

	rec := domain.WordRecord{Term: strings.TrimSpace(fields[0])}
	if len(fields) > 1 {
		rec.Definition = strings.TrimSpace(fields[1])
	}
	if len(fields) > 2 {
		rec.Example = strings.TrimSpace(fields[2])
	}
	return rec
}

// ParseExcel parses an xlsx workbook into raw records. The first sheet is
// read with fixed column positions: term, definition, example. If the
// first row looks like a header (first cell is "term" or "word",
// case-insensitive) it is skipped.
func ParseExcel(data []byte) ([]domain.WordRecord, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	records := make([]domain.WordRecord, 0, len(rows))
	for idx, row := range rows {
		if len(row) == 0 {
			continue
		}
		if idx == 0 && isHeaderRow(row) {
			continue
		}

		rec := domain.WordRecord{Term: strings.TrimSpace(row[0])}
		if len(row) > 1 {
			rec.Definition = strings.TrimSpace(row[1])
		}
		if len(row) > 2 {
			rec.Example = strings.TrimSpace(row[2])
		}
		records = append(records, rec)
	}
	return records, nil
}

func isHeaderRow(row []string) bool {
	first := strings.ToLower(strings.TrimSpace(row[0]))
	return first == "term" || first == "word"
}
