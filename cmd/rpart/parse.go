package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/bdripley/rpart/cart"
)

// parsedInput is the CLI's intermediate representation between CSV text
// and a cart.Dataset: every column is still a raw string until
// encode decides, per column, whether it's continuous or categorical.
type parsedInput struct {
	varNames []string
	rows     [][]string // predictor columns only, one slice per row
	y        []string
}

// parseCSV reads a CSV file whose first column is the response and every
// other column a predictor. A row is treated as a header if any of its
// non-first fields fails to parse as a float.
func parseCSV(r io.Reader) (*parsedInput, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	p := &parsedInput{}

	first, err := reader.Read()
	if err != nil {
		return nil, err
	}
	if isHeaderRow(first) {
		p.varNames = append([]string(nil), first[1:]...)
	} else {
		for i := range first[1:] {
			p.varNames = append(p.varNames, fmt.Sprintf("X%d", i+1))
		}
		p.y = append(p.y, first[0])
		p.rows = append(p.rows, append([]string(nil), first[1:]...))
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		p.y = append(p.y, row[0])
		p.rows = append(p.rows, append([]string(nil), row[1:]...))
	}

	return p, nil
}

func isHeaderRow(row []string) bool {
	if len(row) < 2 {
		return false
	}
	for _, v := range row[1:] {
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return true
		}
	}
	return false
}

// encode converts the parsed string matrix into a cart.Dataset, choosing
// per-column between a continuous encoding (plain float64, empty field =
// missing) and a categorical encoding (1-based level codes assigned in
// sorted label order, empty field = missing). classLabels is nil for a
// regression target.
func (p *parsedInput) encode(forceClf bool) (ds *cart.Dataset, classLabels []string, err error) {
	n := len(p.rows)
	nCols := len(p.varNames)

	x := make([]float64, n*nCols)
	levels := make([]int, nCols)

	for col := 0; col < nCols; col++ {
		continuous := !forceClf
		if continuous {
			for _, row := range p.rows {
				v := row[col]
				if v == "" {
					continue
				}
				if _, ferr := strconv.ParseFloat(v, 64); ferr != nil {
					continuous = false
					break
				}
			}
		}

		if continuous {
			for i, row := range p.rows {
				v := row[col]
				if v == "" {
					x[i+n*col] = math.NaN()
					continue
				}
				fv, _ := strconv.ParseFloat(v, 64)
				x[i+n*col] = fv
			}
			continue
		}

		labels := distinctSorted(p.rows, col)
		if len(labels) > 32 {
			return nil, nil, fmt.Errorf("column %s has %d levels, factor predictors must have at most 32", p.varNames[col], len(labels))
		}
		code := make(map[string]int, len(labels))
		for i, l := range labels {
			code[l] = i + 1
		}
		levels[col] = len(labels)
		for i, row := range p.rows {
			v := row[col]
			if v == "" {
				x[i+n*col] = math.NaN()
				continue
			}
			x[i+n*col] = float64(code[v])
		}
	}

	y := make([]float64, n)
	isRegression := !forceClf
	if isRegression {
		for _, v := range p.y {
			if _, ferr := strconv.ParseFloat(v, 64); ferr != nil {
				isRegression = false
				break
			}
		}
	}

	classes := 0
	if isRegression {
		for i, v := range p.y {
			fv, _ := strconv.ParseFloat(v, 64)
			y[i] = fv
		}
	} else {
		classLabels = distinctSortedStrings(p.y)
		classes = len(classLabels)
		code := make(map[string]int, classes)
		for i, l := range classLabels {
			code[l] = i + 1
		}
		for i, v := range p.y {
			y[i] = float64(code[v])
		}
	}

	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}

	ds, err = cart.NewDataset(x, n, nCols, y, w, levels, nil, classes)
	return ds, classLabels, err
}

func distinctSorted(rows [][]string, col int) []string {
	set := map[string]bool{}
	for _, row := range rows {
		if row[col] != "" {
			set[row[col]] = true
		}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func distinctSortedStrings(vals []string) []string {
	set := map[string]bool{}
	for _, v := range vals {
		set[v] = true
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

