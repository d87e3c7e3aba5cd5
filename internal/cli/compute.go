// Package cli — compute.go implements single-shot mode: one list of prefix
// lengths in, one parent prefix length out.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shinji-kodama/max-parent-pfx-len/internal/model"
	"github.com/shinji-kodama/max-parent-pfx-len/internal/sizer"
)

// runCompute parses the comma-separated list, computes the parent length
// and prints it. Validation and computation errors are returned unchanged
// so Run can print their message and exit with code 1.
func runCompute(w io.Writer, list string, width model.BitWidth) error {
	lengths := sizer.SplitList(list)
	VerboseLog("Computing parent for %d prefix length(s) as %s", len(lengths), width)

	agg, err := sizer.Analyze(lengths, width)
	if err != nil {
		VerboseLog("Rejected: %s", model.KindOf(err))
		return err
	}

	logAggregate(agg)
	printComputeResult(w, agg)
	return nil
}

// logAggregate traces the intermediate values of a computation.
func logAggregate(agg *model.Aggregate) {
	for i, pl := range agg.Lengths {
		VerboseLog("  /%d -> %s addresses", pl, agg.BlockSizes[i])
	}
	VerboseLog("Aggregate size %s fits in /%d (%s addresses, %s spare)",
		agg.Size, agg.ParentLength, agg.ParentSize, agg.Spare())
}

// printComputeResult outputs the result in text or JSON format,
// depending on the global --json flag.
func printComputeResult(w io.Writer, agg *model.Aggregate) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(agg, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}
	fmt.Fprintln(w, agg.ParentLength)
}
