// Command chess-perft checks the move generator against the perft suite.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"netchess/internal/board"
	"netchess/internal/perft"
)

func main() {
	start := flag.Int("start", 0, "Index of the first suite case")
	end := flag.Int("end", len(perft.Suite)-1, "Index of the last suite case")
	depth := flag.Int("depth", 4, "Maximum depth per case")
	divide := flag.Bool("divide", false, "Print node counts per root move")
	fen := flag.String("fen", "", "Run a single position instead of the suite (uses -depth)")
	cpuProfile := flag.String("cpuprofile", "", "Write a CPU profile to this file")
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("Failed to create profile: %v", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatalf("Failed to start profile: %v", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			f.Close()
		}()
	}

	began := time.Now()
	failed := 0
	if *fen != "" {
		b, err := board.NewBoardFromFEN(*fen)
		if err != nil {
			log.Fatalf("Bad FEN: %v", err)
		}
		if *divide {
			for move, nodes := range board.Divide(b, *depth) {
				fmt.Printf("Move: %s\tNodes: %d\n", move, nodes)
			}
		}
		fmt.Printf("Depth %d: %d nodes\n", *depth, board.Perft(b, *depth))
	} else {
		sum := perft.Run(os.Stdout, *start, *end, *depth, *divide)
		for _, r := range sum.Failures() {
			fmt.Printf("FAILED case %d (%s): got %d, want %d\n", r.Index, r.Case.FEN, r.Nodes, r.Expected)
		}
		failed = sum.Failed
	}
	fmt.Printf("Elapsed: %s\n", time.Since(began).Round(time.Millisecond))

	if failed > 0 {
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}
