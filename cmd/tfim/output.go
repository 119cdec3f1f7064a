package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/alexshd/tfim"
	"gopkg.in/yaml.v3"
)

type writeFunc func(w io.Writer, points []tfim.SweepPoint) error

func writerFor(format string) (writeFunc, error) {
	switch format {
	case "", "table":
		return writeTable, nil
	case "json":
		return writeJSON, nil
	case "yaml":
		return writeYAML, nil
	}
	return nil, fmt.Errorf("unknown format %q (want table, json or yaml)", format)
}

func writeTable(w io.Writer, points []tfim.SweepPoint) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "g\tenergy\tabs_err\tsubintervals\tevaluations")
	for _, p := range points {
		fmt.Fprintf(tw, "%.4f\t%.12f\t%.2e\t%d\t%d\n",
			p.G, p.Energy, p.AbsErr, p.Subintervals, p.Evaluations)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, points []tfim.SweepPoint) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(points)
}

func writeYAML(w io.Writer, points []tfim.SweepPoint) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(points); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}
