// Package cli — batch.go implements --file mode, computing every set of a
// batch plan and reporting each outcome.
//
// A failing set does not stop the others. The command exits with code 1
// if any set failed, so scripts can still detect partial failure.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shinji-kodama/max-parent-pfx-len/internal/batch"
	"github.com/shinji-kodama/max-parent-pfx-len/internal/model"
)

// runBatch loads the plan at path, runs it and prints the results.
func runBatch(w io.Writer, path string, width model.BitWidth) error {
	plan, err := batch.Load(path)
	if err != nil {
		return err
	}
	VerboseLog("Loaded %d set(s) from %s", len(plan.Sets), path)

	results, err := batch.Run(plan, width)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "invalid plan", err)
	}

	for _, r := range results {
		if r.Err != nil {
			VerboseLog("Set %q failed: %v", r.Name, r.Err)
			continue
		}
		logAggregate(r.Aggregate)
	}

	printBatchResult(w, results)

	if failed := batch.CountFailed(results); failed > 0 {
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("%d of %d set(s) failed", failed, len(results)))
	}
	return nil
}

// printBatchResult outputs the batch results in text or JSON format.
func printBatchResult(w io.Writer, results []batch.Result) {
	if IsJSONOutput() {
		printBatchResultJSON(w, results)
	} else {
		printBatchResultText(w, results)
	}
}

// batchResultJSON is the JSON output structure for one set.
type batchResultJSON struct {
	Name   string `json:"name"`
	Family string `json:"family,omitempty"`

	// Result is embedded so its fields sit beside the name.
	*model.Aggregate

	Error *errorJSON `json:"error,omitempty"`
}

// printBatchResultJSON outputs all results under a "results" key.
func printBatchResultJSON(w io.Writer, results []batch.Result) {
	type resultJSON struct {
		Results []batchResultJSON `json:"results"`
	}

	out := resultJSON{Results: make([]batchResultJSON, 0, len(results))}
	for _, r := range results {
		entry := batchResultJSON{Name: r.Name, Aggregate: r.Aggregate}
		if r.Width != 0 {
			entry.Family = r.Width.String()
		}
		if r.Err != nil {
			e := newErrorJSON(r.Err.Error(), nil, r.Err)
			entry.Error = &e
		}
		out.Results = append(out.Results, entry)
	}

	data, _ := json.MarshalIndent(out, "", "  ")
	fmt.Fprintln(w, string(data))
}

// printBatchResultText outputs one line per set:
//
//	line 1               ipv4   25
//	line 2               ipv4   only numbers are accepted: "x" is not an integer
func printBatchResultText(w io.Writer, results []batch.Result) {
	for _, r := range results {
		family := "-"
		if r.Width != 0 {
			family = r.Width.String()
		}

		if r.Err != nil {
			fmt.Fprintf(w, "%-20s %-6s %s\n", r.Name, family, r.Err)
			continue
		}
		fmt.Fprintf(w, "%-20s %-6s %d\n", r.Name, family, r.Aggregate.ParentLength)
	}
}
