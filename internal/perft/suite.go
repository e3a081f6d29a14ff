// Package perft runs move generator correctness suites against known node counts.
package perft

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"netchess/internal/board"
)

// DefaultDepth keeps a full suite run to a few minutes.
const DefaultDepth = 3

// Case is one suite position and its reference node counts.
type Case struct {
	FEN   string
	Nodes []int64 // Nodes[d-1] is the expected count at depth d
}

// Expected returns the reference count for depth, if the case has one.
func (c Case) Expected(depth int) (int64, bool) {
	if depth < 1 || depth > len(c.Nodes) {
		return 0, false
	}
	return c.Nodes[depth-1], true
}

// ParseCase reads a "FEN;d1;d2;..." line.
func ParseCase(line string) (Case, error) {
	parts := strings.Split(strings.TrimSpace(line), ";")
	if len(parts) < 2 {
		return Case{}, fmt.Errorf("perft case %q: no node counts", line)
	}
	c := Case{FEN: strings.TrimSpace(parts[0])}
	for i, s := range parts[1:] {
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return Case{}, fmt.Errorf("perft case %q: depth %d: %w", line, i+1, err)
		}
		c.Nodes = append(c.Nodes, n)
	}
	return c, nil
}

// Suite is the built-in position table.
var Suite = mustParseSuite(suiteData)

func mustParseSuite(lines []string) []Case {
	out := make([]Case, 0, len(lines))
	for _, l := range lines {
		c, err := ParseCase(l)
		if err != nil {
			panic(err)
		}
		out = append(out, c)
	}
	return out
}

// Result is the outcome of one case.
type Result struct {
	Index    int
	Case     Case
	Depth    int
	Nodes    int64
	Expected int64
	Elapsed  time.Duration
	Err      error
}

func (r Result) Passed() bool {
	return r.Err == nil && r.Nodes == r.Expected
}

// Summary totals a run.
type Summary struct {
	Passed  int
	Failed  int
	Skipped int
	Elapsed time.Duration
	Results []Result
}

// Failures returns the results that did not match.
func (s Summary) Failures() []Result {
	var out []Result
	for _, r := range s.Results {
		if !r.Passed() {
			out = append(out, r)
		}
	}
	return out
}

// Run executes Suite[start..end] (inclusive) at depth and writes one line
// per case to w. Out of range bounds are clamped. With divide set, each root
// move's subtotal is printed too.
func Run(w io.Writer, start, end, depth int, divide bool) Summary {
	return RunCases(w, Suite, start, end, depth, divide)
}

// RunCases is Run over an arbitrary table.
func RunCases(w io.Writer, cases []Case, start, end, depth int, divide bool) Summary {
	var sum Summary
	if len(cases) == 0 {
		return sum
	}
	if start < 0 {
		fmt.Fprintln(w, "start index too small, using first case")
		start = 0
	}
	if end < 0 || end >= len(cases) {
		fmt.Fprintln(w, "end index out of range, using last case")
		end = len(cases) - 1
	}

	for i := start; i <= end; i++ {
		c := cases[i]
		expected, ok := c.Expected(depth)
		if !ok {
			fmt.Fprintf(w, "Test: %d\tskipped, no reference count at depth %d\n", i, depth)
			sum.Skipped++
			continue
		}

		r := runCase(w, i, c, depth, expected, divide)
		sum.Results = append(sum.Results, r)
		sum.Elapsed += r.Elapsed

		switch {
		case r.Err != nil:
			fmt.Fprintf(w, "Test: %d\terror: %v\n", i, r.Err)
			sum.Failed++
		case r.Passed():
			fmt.Fprintf(w, "Test: %d\tDepth: %d\tResult: %d\tTime: %dms\t--  Passed\n",
				i, depth, r.Nodes, r.Elapsed.Milliseconds())
			sum.Passed++
		default:
			fmt.Fprintf(w, "Test: %d\tDepth: %d\tResult: %d\tTime: %dms\t--  FAILED (expected %d)\n",
				i, depth, r.Nodes, r.Elapsed.Milliseconds(), expected)
			sum.Failed++
		}
	}

	pct := 0.0
	if total := sum.Passed + sum.Failed; total > 0 {
		pct = float64(sum.Passed) / float64(total) * 100
	}
	fmt.Fprintf(w, "Passed: %d\tFailed: %d\tTotal Time: %dms\t--  %.1f%%\n",
		sum.Passed, sum.Failed, sum.Elapsed.Milliseconds(), pct)
	return sum
}

func runCase(w io.Writer, index int, c Case, depth int, expected int64, divide bool) Result {
	r := Result{Index: index, Case: c, Depth: depth, Expected: expected}

	b, err := board.NewBoardFromFEN(c.FEN)
	if err != nil {
		r.Err = err
		return r
	}

	started := time.Now()
	if divide {
		counts := board.Divide(b, depth)
		moves := make([]string, 0, len(counts))
		for m := range counts {
			moves = append(moves, m)
		}
		sort.Strings(moves)
		for _, m := range moves {
			fmt.Fprintf(w, "\tMove: %s\tNodes: %d\n", m, counts[m])
			r.Nodes += counts[m]
		}
	} else {
		r.Nodes = board.Perft(b, depth)
	}
	r.Elapsed = time.Since(started)
	return r
}
