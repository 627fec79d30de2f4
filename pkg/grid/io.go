package grid

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// ReadCSV loads a volume from cell records with the header i,j,k,value.
// Cell indices are zero-based; the grid shape is the smallest box
// containing every listed cell. Cells that are absent, or whose value
// parses to NaN, are left missing.
func ReadCSV(r io.Reader) (*Grid3D, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("grid: reading csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("grid: csv has no data rows")
	}

	type cell struct {
		i, j, k int
		v       float64
	}
	cells := make([]cell, 0, len(rows)-1)
	nx, ny, nz := 0, 0, 0
	for n, row := range rows[1:] {
		if len(row) != 4 {
			return nil, fmt.Errorf("grid: row %d has %d fields, want 4", n+2, len(row))
		}
		var c cell
		if c.i, err = strconv.Atoi(row[0]); err != nil {
			return nil, fmt.Errorf("grid: row %d: %w", n+2, err)
		}
		if c.j, err = strconv.Atoi(row[1]); err != nil {
			return nil, fmt.Errorf("grid: row %d: %w", n+2, err)
		}
		if c.k, err = strconv.Atoi(row[2]); err != nil {
			return nil, fmt.Errorf("grid: row %d: %w", n+2, err)
		}
		if c.v, err = strconv.ParseFloat(row[3], 64); err != nil {
			return nil, fmt.Errorf("grid: row %d: %w", n+2, err)
		}
		if c.i < 0 || c.j < 0 || c.k < 0 {
			return nil, fmt.Errorf("grid: row %d: negative cell index", n+2)
		}
		if c.i >= nx {
			nx = c.i + 1
		}
		if c.j >= ny {
			ny = c.j + 1
		}
		if c.k >= nz {
			nz = c.k + 1
		}
		cells = append(cells, c)
	}

	g := NewGrid3D(nx, ny, nz)
	for _, c := range cells {
		g.Set(c.i, c.j, c.k, c.v)
	}
	return g, nil
}

// WriteCSV writes every cell of the volume, missing cells included, in
// the same i,j,k,value layout ReadCSV accepts.
func WriteCSV(w io.Writer, g *Grid3D) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"i", "j", "k", "value"}); err != nil {
		return fmt.Errorf("grid: writing csv: %w", err)
	}
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			for k := 0; k < g.Nz; k++ {
				row := []string{
					strconv.Itoa(i),
					strconv.Itoa(j),
					strconv.Itoa(k),
					strconv.FormatFloat(g.At(i, j, k), 'g', -1, 64),
				}
				if err := cw.Write(row); err != nil {
					return fmt.Errorf("grid: writing csv: %w", err)
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
