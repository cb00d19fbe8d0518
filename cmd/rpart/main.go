package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/davecheney/profile"

	flag "github.com/docker/docker/pkg/mflag"

	"github.com/bdripley/rpart/cart"
)

var (
	dataFile    = flag.String([]string{"d", "-data"}, "", "example data")
	predictFile = flag.String([]string{"p", "-predictions"}, "", "file to output predictions")
	modelFile   = flag.String([]string{"f", "-final_model"}, "rpart.model", "file to output the fitted model")

	minSize  = flag.Float64([]string{"-min_size"}, 10, "node weight below which a node is never split")
	minCut   = flag.Float64([]string{"-min_cut"}, 5, "minimum weight required in either child of a split")
	minDev   = flag.Float64([]string{"-min_dev"}, 0.01, "minimum relative deviance improvement, scaled by root deviance")
	nMax     = flag.Int([]string{"-max_nodes"}, 200, "maximum number of node records")
	useGini  = flag.Bool([]string{"-gini"}, false, "use Gini impurity instead of deviance (classification only)")
	leaves   = flag.Int([]string{"-leaves"}, 0, "prune to the smallest tree with at least this many leaves (0 = no pruning)")
	forceClf = flag.Bool([]string{"c", "-classification"}, false, "force parser to treat every column as categorical")

	runProfile = flag.Bool([]string{"-profile"}, false, "cpu profile")
)

func main() {
	flag.Parse()

	if *runProfile {
		defer profile.Start(profile.CPUProfile).Stop()
	}

	if *dataFile == "" {
		fmt.Fprintf(os.Stderr, "Usage of rpart:\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	f, err := os.Open(*dataFile)
	if err != nil {
		fatal("error opening data file", err.Error())
	}
	defer f.Close()

	p, err := parseCSV(f)
	if err != nil {
		fatal("error parsing input data", err.Error())
	}

	ds, classLabels, err := p.encode(*forceClf)
	if err != nil {
		fatal("error encoding input data", err.Error())
	}

	if *predictFile != "" {
		m, err := loadModel(*modelFile)
		if err != nil {
			fatal("error opening model file", err.Error())
		}

		pred, err := m.Predict(ds)
		if err != nil {
			fatal(err.Error())
		}

		o, err := os.Create(*predictFile)
		if err != nil {
			fatal("error creating", *predictFile, err.Error())
		}
		defer o.Close()

		if err := writePred(o, pred); err != nil {
			fatal("error writing predictions", err.Error())
		}
		os.Exit(0)
	}

	criterion := cart.DevianceCriterion
	if *useGini {
		criterion = cart.GiniCriterion
	}
	cfg := cart.NewConfig(
		cart.MinSize(*minSize),
		cart.MinCut(*minCut),
		cart.MinDev(*minDev),
		cart.NMax(*nMax),
		cart.UseCriterion(criterion),
	)

	m, err := fitModel(ds, p.varNames, classLabels, cfg, *leaves)
	if err != nil {
		fatal("error growing tree", err.Error())
	}

	o, err := os.Create(*modelFile)
	if err != nil {
		fatal("error saving model", err.Error())
	}
	defer o.Close()

	if err := m.Save(o); err != nil {
		fatal("error saving model", err.Error())
	}

	m.Report(os.Stderr)
}

func loadModel(fName string) (*Model, error) {
	f, err := os.Open(fName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m := new(Model)
	err = m.Load(f)
	return m, err
}

func fatal(a ...interface{}) {
	fmt.Fprintln(os.Stderr, a...)
	os.Exit(1)
}

func writePred(w io.Writer, predictions []string) error {
	wtr := bufio.NewWriter(w)
	for _, pred := range predictions {
		if _, err := wtr.WriteString(pred); err != nil {
			return err
		}
		if err := wtr.WriteByte('\n'); err != nil {
			return err
		}
	}
	return wtr.Flush()
}
