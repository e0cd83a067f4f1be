package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tessera-ui/tessera/pkg/block"
	"github.com/tessera-ui/tessera/pkg/dom"
	"github.com/tessera-ui/tessera/pkg/vdom"
)

func benchCmd() *cobra.Command {
	var iterations int

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark the compile/mount/patch pipeline",
		Long: `Time template compilation, instance mounts, and patches.

The patch loop alternates one dirty slot per iteration, which is the
steady-state cost of a live session update.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(iterations)
		},
	}

	cmd.Flags().IntVarP(&iterations, "iterations", "i", 100_000, "Iterations per phase")

	return cmd
}

func benchTemplate(props block.Getter) *vdom.VNode {
	return vdom.H("tr", vdom.Props{"class": "row", "data-id": props.Get("id")},
		vdom.H("td", nil, props.Get("name")),
		vdom.H("td", nil, props.Get("count")),
		vdom.H("td", vdom.Props{"class": "status"}, props.Get("status")),
	)
}

func benchProps(i int) block.Props {
	return block.Props{
		"id":     i,
		"name":   "row",
		"count":  i,
		"status": "ok",
	}
}

func runBench(iterations int) error {
	printBanner()
	info("%d iterations per phase", iterations)
	fmt.Println()

	// Compile
	start := time.Now()
	for i := 0; i < iterations; i++ {
		if _, err := block.Define(benchTemplate); err != nil {
			return err
		}
	}
	report("compile", iterations, time.Since(start))

	def := block.MustDefine(benchTemplate)

	// Mount
	doc := dom.NewDocument()
	parent := doc.CreateElement("tbody")
	start = time.Now()
	for i := 0; i < iterations; i++ {
		if err := def.Instance(benchProps(0)).Mount(parent); err != nil {
			return err
		}
	}
	report("mount", iterations, time.Since(start))

	// Patch, one dirty slot per iteration
	inst := def.Instance(benchProps(0))
	if err := inst.Mount(parent); err != nil {
		return err
	}
	start = time.Now()
	for i := 0; i < iterations; i++ {
		props := benchProps(0)
		props["count"] = i + 1
		if err := inst.Patch(def.Instance(props)); err != nil {
			return err
		}
	}
	report("patch (1 dirty slot)", iterations, time.Since(start))

	// Patch, nothing dirty
	start = time.Now()
	for i := 0; i < iterations; i++ {
		if err := inst.Patch(def.Instance(inst.Props())); err != nil {
			return err
		}
	}
	report("patch (clean)", iterations, time.Since(start))

	return nil
}

func report(phase string, iterations int, elapsed time.Duration) {
	perOp := elapsed / time.Duration(iterations)
	fmt.Printf("  %-22s %12v total  %10v/op\n", phase, elapsed.Round(time.Millisecond), perOp)
}
