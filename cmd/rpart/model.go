package main

import (
	"encoding/gob"
	"fmt"
	"io"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/bdripley/rpart/cart"
)

// Model bundles a grown (and possibly pruned) tree with the bookkeeping
// needed to report on and predict from it using the original CSV labels.
type Model struct {
	IsRegression bool
	Tree         *cart.Tree
	VarNames     []string
	ClassLabels  []string // nil for regression
	Steps        []cart.PruneStep
	fitTime      time.Duration
	nSample      int
	trainDS      *cart.Dataset // kept for reporting only, not persisted
}

func fitModel(ds *cart.Dataset, varNames, classLabels []string, cfg cart.Config, targetLeaves int) (*Model, error) {
	start := time.Now()
	tree, err := cart.Grow(cfg, ds, nil)
	if err != nil {
		return nil, err
	}

	m := &Model{
		IsRegression: ds.Classes == 0,
		Tree:         tree,
		VarNames:     varNames,
		ClassLabels:  classLabels,
		nSample:      ds.N,
		trainDS:      ds,
	}

	m.Steps = cart.Prune(tree)
	if targetLeaves > 0 {
		m.Tree = selectByLeafCount(tree, m.Steps, targetLeaves)
	}
	m.fitTime = time.Since(start)
	return m, nil
}

// selectByLeafCount returns the smallest pruned tree with at least
// targetLeaves leaves, or the fully grown tree if none qualifies.
func selectByLeafCount(full *cart.Tree, steps []cart.PruneStep, targetLeaves int) *cart.Tree {
	best := full
	for _, s := range steps {
		if s.Leaves >= targetLeaves {
			best = s.Tree
		}
	}
	return best
}

func (m *Model) Predict(ds *cart.Dataset) ([]string, error) {
	values, err := m.predictValues(ds)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(values))
	for i, yval := range values {
		if m.IsRegression {
			out[i] = formatFloat(yval)
		} else {
			out[i] = m.ClassLabels[int(yval)-1]
		}
	}
	return out, nil
}

func (m *Model) predictValues(ds *cart.Dataset) ([]float64, error) {
	out := make([]float64, ds.N)
	row := make([]float64, ds.P)
	for i := 0; i < ds.N; i++ {
		for j := 0; j < ds.P; j++ {
			row[j] = ds.X[i+ds.N*j]
		}
		yval, _, err := m.Tree.Predict(row)
		if err != nil {
			return nil, err
		}
		out[i] = yval
	}
	return out, nil
}

func (m *Model) Report(w io.Writer) {
	fmt.Fprintf(w, "Grew a tree over %d examples in %.3f seconds\n", m.nSample, m.fitTime.Seconds())
	fmt.Fprintf(w, "Leaves: %d   Total deviance: %.4f\n\n", countLeaves(m.Tree), m.Tree.TotalDeviance())

	m.reportVarImp(w)
	m.reportPruneSequence(w)

	if m.IsRegression {
		m.reportRegression(w)
	} else {
		m.reportClassification(w)
	}
}

func countLeaves(t *cart.Tree) int {
	var rec func(idx int) int
	rec = func(idx int) int {
		node := &t.Nodes[idx]
		if node.IsLeaf() {
			return 1
		}
		return rec(node.Left) + rec(node.Right)
	}
	return rec(0)
}

func (m *Model) reportVarImp(w io.Writer) {
	fmt.Fprintf(w, "Variable Importance\n")
	fmt.Fprintf(w, "-------------------\n")

	imp := m.Tree.VarImp(len(m.VarNames))
	names := append([]string(nil), m.VarNames...)
	idx := make([]int, len(imp))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return imp[idx[a]] > imp[idx[b]] })

	for _, i := range idx {
		if imp[i] <= 0 {
			continue
		}
		fmt.Fprintf(w, "%-15s: %-10.3f\n", names[i], imp[i])
	}
	fmt.Fprintf(w, "\n")
}

func (m *Model) reportPruneSequence(w io.Writer) {
	fmt.Fprintf(w, "Pruning Sequence\n")
	fmt.Fprintf(w, "----------------\n")
	fmt.Fprintf(w, "%-10s %-10s\n", "leaves", "alpha")
	for _, s := range m.Steps {
		fmt.Fprintf(w, "%-10d %-10.4f\n", s.Leaves, s.Alpha)
	}
	fmt.Fprintf(w, "\n")
}

func (m *Model) reportClassification(w io.Writer) {
	c := len(m.ClassLabels)
	confusion := make([][]int, c)
	for i := range confusion {
		confusion[i] = make([]int, c)
	}

	predicted, err := m.predictValues(m.trainDS)
	if err == nil {
		for i, p := range predicted {
			actual := int(m.trainDS.Y[i]) - 1
			confusion[actual][int(p)-1]++
		}
	}

	fmt.Fprintf(w, "Confusion Matrix\n")
	fmt.Fprintf(w, "----------------\n")
	fmt.Fprintf(w, "%-14s ", "")
	for _, class := range m.ClassLabels {
		fmt.Fprintf(w, "%-14s ", class)
	}
	fmt.Fprintf(w, "\n")
	for predicted, class := range m.ClassLabels {
		fmt.Fprintf(w, "%-14s ", class)
		for actual := range m.ClassLabels {
			fmt.Fprintf(w, "%-14d ", confusion[actual][predicted])
		}
		fmt.Fprintf(w, "\n")
	}
	fmt.Fprintf(w, "\n")
}

func (m *Model) reportRegression(w io.Writer) {
	fmt.Fprintf(w, "Mean Squared Error (training): %.4f\n", m.Tree.TotalDeviance()/float64(m.nSample))

	actual := make([]float64, m.nSample)
	predicted := make([]float64, m.nSample)
	row := make([]float64, m.trainDS.P)
	for j := 0; j < m.nSample; j++ {
		for v := 0; v < m.trainDS.P; v++ {
			row[v] = m.trainDS.X[j+m.trainDS.N*v]
		}
		yval, _, err := m.Tree.Predict(row)
		if err != nil {
			continue
		}
		actual[j] = m.trainDS.Y[j]
		predicted[j] = yval
	}
	r2 := stat.RSquaredFrom(predicted, actual, m.trainDS.W)
	fmt.Fprintf(w, "R-squared (training): %.4f\n", r2)
}

func (m *Model) Load(r io.Reader) error {
	return gob.NewDecoder(r).Decode(m)
}

func (m *Model) Save(w io.Writer) error {
	return gob.NewEncoder(w).Encode(m)
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}
