package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// ReadCSV loads a delimited-text table. Every cell is kept as a string;
// empty cells become nil so null handling matches the parquet reader.
func ReadCSV(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readCSV(f, path)
}

func readCSV(r io.Reader, path string) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = false

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("read %s: empty file", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", path, err)
	}

	frame := &Frame{Columns: append([]string(nil), header...)}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		row := make(map[string]any, len(header))
		for i, col := range header {
			if i >= len(rec) || rec[i] == "" {
				row[col] = nil
				continue
			}
			row[col] = rec[i]
		}
		frame.Rows = append(frame.Rows, row)
	}
	return frame, nil
}
