package table

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
)

// ColumnType enumerates the physical types the canonical outputs use.
type ColumnType int

const (
	TypeString ColumnType = iota
	TypeInt64
	TypeFloat64
)

// Column describes one output column of a canonical table.
type Column struct {
	Name     string
	Type     ColumnType
	Optional bool
}

func (c Column) node() parquet.Node {
	var n parquet.Node
	switch c.Type {
	case TypeInt64:
		n = parquet.Int(64)
	case TypeFloat64:
		n = parquet.Leaf(parquet.DoubleType)
	default:
		n = parquet.String()
	}
	if c.Optional {
		n = parquet.Optional(n)
	}
	return n
}

// WriteParquet persists rows to a parquet file, overwriting any existing
// file at path. A zero-row slice still produces a valid file whose schema
// carries all columns.
func WriteParquet(path, name string, columns []Column, rows []map[string]any) error {
	group := parquet.Group{}
	for _, c := range columns {
		group[c.Name] = c.node()
	}
	schema := parquet.NewSchema(name, group)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := parquet.NewGenericWriter[map[string]any](f, schema)
	if len(rows) > 0 {
		if _, err := w.Write(rows); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("close %s: %w", path, err)
	}
	return f.Close()
}

// ReadParquet loads one parquet file into a Frame. Map rows carry no
// schema of their own, so the reader takes its schema from the file.
func ReadParquet(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	r := parquet.NewGenericReader[map[string]any](f, pf.Schema())
	defer r.Close()

	frame := &Frame{}
	for _, field := range pf.Schema().Fields() {
		frame.Columns = append(frame.Columns, field.Name())
	}

	buf := make([]map[string]any, 256)
	for {
		for i := range buf {
			buf[i] = make(map[string]any)
		}
		n, err := r.Read(buf)
		for i := 0; i < n; i++ {
			frame.Rows = append(frame.Rows, buf[i])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	return frame, nil
}

// ReadTable dispatches on file extension: .parquet or delimited text.
func ReadTable(path string) (*Frame, error) {
	if filepath.Ext(path) == ".parquet" {
		return ReadParquet(path)
	}
	return ReadCSV(path)
}

// ReadTables reads and concatenates several same-schema tables (HiRID
// ships its observation table as a partitioned directory). Columns come
// from the first file; later files may order theirs differently.
func ReadTables(paths []string) (*Frame, error) {
	var out *Frame
	for _, p := range paths {
		frame, err := ReadTable(p)
		if err != nil {
			return nil, err
		}
		if out == nil {
			out = frame
			continue
		}
		out.Rows = append(out.Rows, frame.Rows...)
	}
	if out == nil {
		return nil, fmt.Errorf("no tables to read")
	}
	return out, nil
}
