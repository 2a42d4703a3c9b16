// Command bladecost evaluates a blade design document and prints its cost breakdown.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/Simplici0/bladecost/internal/bladecost"
	"github.com/Simplici0/bladecost/internal/config"
	"github.com/Simplici0/bladecost/internal/db"
	"github.com/Simplici0/bladecost/internal/design"
	"github.com/Simplici0/bladecost/internal/migrations"
	"github.com/Simplici0/bladecost/internal/store"
)

type options struct {
	designPath  string
	asJSON      bool
	dbPath      string
	preset      string
	maxSections int
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("bladecost: ")

	cfg := config.Load()

	opts := options{maxSections: cfg.MaxSections}
	flag.StringVar(&opts.designPath, "design", "", "path to the YAML or JSON design document")
	flag.BoolVar(&opts.asJSON, "json", false, "print the result as JSON")
	flag.StringVar(&opts.dbPath, "db", "", "SQLite database to read presets from and store the evaluation in")
	flag.StringVar(&opts.preset, "preset", store.DefaultPreset, "economic preset used under the document's economics (requires -db)")
	flag.Parse()

	if opts.designPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(context.Background(), opts, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, opts options, out io.Writer) error {
	doc, err := design.Load(opts.designPath)
	if err != nil {
		return err
	}

	var (
		st   *store.Store
		base bladecost.EconomicParams
	)
	if opts.dbPath != "" {
		database, err := db.Open(opts.dbPath)
		if err != nil {
			return err
		}
		defer database.Close()
		if err := migrations.Up(database); err != nil {
			return err
		}
		if st, err = store.New(database, 1); err != nil {
			return err
		}
		base, err = st.GetPreset(ctx, opts.preset)
		if err != nil && !(errors.Is(err, store.ErrNotFound) && opts.preset == store.DefaultPreset) {
			return err
		}
	}

	assembly, err := doc.Assembly(base, opts.maxSections)
	if err != nil {
		return err
	}
	res, err := bladecost.Evaluate(assembly)
	if err != nil {
		return err
	}

	if st != nil {
		ev, err := st.SaveEvaluation(ctx, doc.Name, res)
		if err != nil {
			return err
		}
		log.Printf("stored evaluation %s", ev.ID)
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	return writeTable(out, res)
}

// writeTable prints one line per output, sections first and the combined breakdown
// last, each in field order, followed by the joint cost of a combined breakdown.
func writeTable(out io.Writer, res bladecost.Result) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	write := func(prefix string, b bladecost.Breakdown) {
		for _, f := range bladecost.Fields {
			fmt.Fprintf(tw, "%s.%s\t%.2f\n", prefix, f, b.Value(f))
		}
	}
	for _, s := range res.Sections {
		write(s.Name, s.Breakdown)
	}
	if res.Total != nil {
		write(res.TotalName, *res.Total)
		fmt.Fprintf(tw, "%s.%s\t%.2f\n", res.TotalName, bladecost.JointCostOutput, res.JointCost)
	}
	return tw.Flush()
}
