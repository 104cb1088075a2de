package predictor

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Dataset is a read-only numeric table stored column by column. Cells that
// are empty or not numeric are NaN. "True" and "False" read as 1 and 0.
type Dataset struct {
	columns []string
	index   map[string]int
	data    [][]float64
	rows    int
}

// ReadDataset parses a CSV with a header row.
func ReadDataset(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	ds := &Dataset{
		columns: append([]string(nil), header...),
		index:   make(map[string]int, len(header)),
		data:    make([][]float64, len(header)),
	}
	for i, c := range ds.columns {
		ds.index[c] = i
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", ds.rows+2, err)
		}
		for i := range ds.columns {
			ds.data[i] = append(ds.data[i], parseCell(rec[i]))
		}
		ds.rows++
	}
	return ds, nil
}

func parseCell(s string) float64 {
	s = strings.TrimSpace(s)
	switch s {
	case "True", "true":
		return 1
	case "False", "false":
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Rows returns the number of data rows.
func (d *Dataset) Rows() int { return d.rows }

// Columns returns the header in file order.
func (d *Dataset) Columns() []string { return append([]string(nil), d.columns...) }

// HasColumn reports whether name is in the header.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Column returns the values of name. The slice must not be modified.
func (d *Dataset) Column(name string) ([]float64, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.data[i], true
}

// Mean averages the non-NaN values of name. It is NaN when there are none.
func (d *Dataset) Mean(name string) float64 {
	col, ok := d.Column(name)
	if !ok {
		return math.NaN()
	}
	return meanOf(col, nil)
}

// Where returns the indexes of the rows whose name column equals value.
func (d *Dataset) Where(name string, value float64) []int {
	col, ok := d.Column(name)
	if !ok {
		return nil
	}
	var idx []int
	for i, v := range col {
		if v == value {
			idx = append(idx, i)
		}
	}
	return idx
}

// ColumnsWithPrefix returns the header names starting with prefix, in file
// order.
func (d *Dataset) ColumnsWithPrefix(prefix string) []string {
	var out []string
	for _, c := range d.columns {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

// meanOf averages col over rows, or over every row when rows is nil. NaN
// values are skipped.
func meanOf(col []float64, rows []int) float64 {
	sum, n := 0.0, 0
	add := func(v float64) {
		if !math.IsNaN(v) {
			sum += v
			n++
		}
	}
	if rows == nil {
		for _, v := range col {
			add(v)
		}
	} else {
		for _, i := range rows {
			add(col[i])
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}
