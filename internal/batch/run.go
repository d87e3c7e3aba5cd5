package batch

import (
	"fmt"

	"github.com/shinji-kodama/max-parent-pfx-len/internal/model"
	"github.com/shinji-kodama/max-parent-pfx-len/internal/sizer"
)

// Result is the outcome of one set.
type Result struct {
	// Name is the set name (defaulted when the plan left it empty).
	Name string

	// Width is the address family the set was computed against. Zero if
	// the family itself could not be resolved.
	Width model.BitWidth

	// Aggregate holds the breakdown on success; nil when Err is set.
	Aggregate *model.Aggregate

	// Err is the reason the set failed, if any.
	Err error
}

// Run computes every set in the plan. fallback is the address family used
// when neither the set nor the plan names one.
//
// Results are returned in plan order, one per set.
func Run(plan *Plan, fallback model.BitWidth) ([]Result, error) {
	planWidth := fallback
	if plan.Family != "" {
		w, err := model.ParseBitWidth(plan.Family)
		if err != nil {
			return nil, fmt.Errorf("plan: %w", err)
		}
		planWidth = w
	}

	results := make([]Result, 0, len(plan.Sets))
	for i, set := range plan.Sets {
		results = append(results, runSet(i, set, planWidth))
	}
	return results, nil
}

// runSet resolves the set's family and lengths, then computes it.
func runSet(index int, set Set, planWidth model.BitWidth) Result {
	res := Result{Name: set.Name}
	if res.Name == "" {
		res.Name = fmt.Sprintf("set %d", index+1)
	}

	width := planWidth
	if set.Family != "" {
		w, err := model.ParseBitWidth(set.Family)
		if err != nil {
			res.Err = err
			return res
		}
		width = w
	}
	res.Width = width

	lengths, err := lengthStrings(set.Lengths)
	if err != nil {
		res.Err = err
		return res
	}

	agg, err := sizer.Analyze(lengths, width)
	if err != nil {
		res.Err = err
		return res
	}
	res.Aggregate = agg
	return res
}

// CountFailed returns how many results carry an error.
func CountFailed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
