// WeRecCover — low-cost rectangle covers of rectilinear polygons.
//
// Reads a WKT MULTIPOLYGON instance, covers every polygon with axis-aligned
// rectangles under a creation + area cost model, and writes the results as
// JSON, CSV, XLSX, PDF or DXF.
//
// Build:
//
//	go build -o wereccover ./cmd/wereccover
//
// Example:
//
//	wereccover --input instances/corridor.wkt --costs "100 1" \
//	    --algorithm greedy+prune+trim --output results/corridor.json
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/WeRecCover/WeRecCover/internal/cover"
	"github.com/WeRecCover/WeRecCover/internal/engine"
	"github.com/WeRecCover/WeRecCover/internal/export"
	"github.com/WeRecCover/WeRecCover/internal/instance"
	"github.com/WeRecCover/WeRecCover/internal/logging"
)

const timeFormat = "2006-01-02 15:04:05"

func main() {
	os.Exit(run())
}

func run() int {
	inputPath := flag.String("input", "", "path to this problem instance's polygon's WKT file")
	costsArg := flag.String("costs", "", `"CREATION AREA" cost pair for this problem instance`)
	algorithmArg := flag.String("algorithm", "", "algorithm to use, optionally with postprocessors appended as algo+post+post")
	postprocessorsArg := flag.String("postprocessors", "", "postprocessors to run on the cover, in order (space or comma separated)")
	outputPath := flag.String("output", "", "path of the JSON, CSV, XLSX, PDF or DXF result file; parent folders are created")
	verifyCover := flag.Bool("verify", true, "verify that the result is a valid cover; verification time is not counted")
	timeoutSecs := flag.Float64("timeout", 0, "timeout in seconds per polygon (exact solver only)")
	logFile := flag.String("log-file", "", "path to write logs to")
	flag.Parse()

	if *inputPath == "" || *costsArg == "" || *algorithmArg == "" || *outputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: wereccover --input FILE.wkt --costs \"CREATION AREA\" --algorithm NAME --output FILE")
		flag.PrintDefaults()
		return 1
	}

	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		logging.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
		fmt.Printf("Log file: %s\n", *logFile)
	} else {
		fmt.Println("Log file: -")
	}

	costs, err := parseCosts(*costsArg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Printf("Problem instance:\n\tInput WKT: %s\n\tCreation cost: %d\n\tArea cost: %d\n",
		*inputPath, costs.Creation, costs.Area)

	inst, err := instance.Load(*inputPath, costs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	tokens := strings.Split(strings.ToLower(*algorithmArg), "+")
	algorithmName := tokens[0]
	postprocessorNames := append(tokens[1:], splitNames(*postprocessorsArg)...)

	timeout := time.Duration(*timeoutSecs * float64(time.Second))
	provider, err := buildProvider(algorithmName, postprocessorNames, timeout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	algorithmFullName := algorithmName
	if len(postprocessorNames) > 0 {
		algorithmFullName += "+" + strings.Join(postprocessorNames, "+")
	}
	fmt.Printf("\nUsing:\n\tAlgorithm: %s\n\tPostprocessors: %s\n\tFull algorithm name: %s\n",
		algorithmName, postprocessorSummary(postprocessorNames), algorithmFullName)
	fmt.Printf("Output path: %s\nCover verification: %s\n", *outputPath, onOff(*verifyCover))

	start := time.Now()
	fmt.Printf("\nStart creating cover at %s...\n", start.Format(timeFormat))
	results := engine.Run(provider, inst.Polygons, inst.Costs, *verifyCover)
	end := time.Now()
	fmt.Printf("Finished at %s.\n\nResults:\n", end.Format(timeFormat))

	for i, result := range results[1:] {
		fmt.Printf("Polygon %d/%d:\n", i+1, len(results)-1)
		printResult(result)
		if result.Err != nil {
			fmt.Fprintf(os.Stderr, "Algorithm %q failed on polygon %d/%d of instance %q: %v\n",
				algorithmFullName, i+1, len(results)-1, inst.Name, result.Err)
		}
	}
	fmt.Println("\nTotal for all polygons in this instance:")
	printResult(results[0])

	rec := export.NewRecord(inst, results, algorithmFullName, start.Format(timeFormat), end.Format(timeFormat))
	fmt.Printf("\nWriting result to: %s\n", *outputPath)
	if err := writeOutput(*outputPath, inst, results, rec); err != nil {
		fmt.Fprintf(os.Stderr, "writing result: %v\n", err)
		return 1
	}

	return engine.ExitCode(results)
}

// parseCosts accepts the creation and area cost as two non-negative integers
// separated by whitespace or a comma.
func parseCosts(arg string) (cover.Costs, error) {
	fields := strings.FieldsFunc(arg, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' })
	if len(fields) != 2 {
		return cover.Costs{}, fmt.Errorf("expected two cost values, got %q", arg)
	}
	creation, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil || creation < 0 {
		return cover.Costs{}, fmt.Errorf("invalid creation cost %q", fields[0])
	}
	area, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil || area < 0 {
		return cover.Costs{}, fmt.Errorf("invalid area cost %q", fields[1])
	}
	return cover.Costs{Creation: creation, Area: area}, nil
}

func splitNames(arg string) []string {
	return strings.FieldsFunc(strings.ToLower(arg), func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
}

func buildAlgorithm(name string, timeout time.Duration) (cover.Provider, error) {
	switch name {
	case "greedy":
		return engine.NewGreedy(), nil
	case "strip":
		return engine.NewStrip(), nil
	case "partition":
		return engine.NewPartition(), nil
	case "ilp":
		return engine.NewILP(false, timeout), nil
	case "ilp-pixel":
		return engine.NewILP(true, timeout), nil
	default:
		return nil, fmt.Errorf("unknown algorithm name specified: %q", name)
	}
}

func buildProvider(algorithmName string, postprocessorNames []string, timeout time.Duration) (cover.Provider, error) {
	provider, err := buildAlgorithm(algorithmName, timeout)
	if err != nil {
		return nil, err
	}

	pruneUsed := false
	for _, name := range postprocessorNames {
		switch name {
		case "prune":
			pruneUsed = true
		case "trim":
			if !pruneUsed {
				fmt.Fprintln(os.Stderr, "WARNING: 'trim' assumes there are no fully redundant rectangles in the cover; "+
					"you may want to prune first")
			}
		}
		switch name {
		case "prune":
			provider = engine.NewPruner(provider)
		case "trim":
			provider = engine.NewTrimmer(provider)
		case "join":
			provider = engine.NewJoiner(provider)
		case "join-full":
			provider = engine.NewFullJoiner(provider)
		case "bbox-split":
			provider = engine.NewBBoxSplitter(provider)
		case "partition-split":
			provider = engine.NewPartitionSplitter(provider)
		default:
			return nil, fmt.Errorf("unknown postprocessor name specified: %q", name)
		}
	}
	return provider, nil
}

func postprocessorSummary(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, " ")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func printResult(result engine.Result) {
	validity := "not checked (specify --verify to enable verification)"
	switch result.Validity {
	case engine.Valid:
		validity = "yes"
	case engine.Invalid:
		validity = "NO"
	case engine.TimedOut:
		validity = "TIMEOUT"
	}
	fmt.Printf("\tTotal cost: %d\n\tCreation cost: %d\n\tArea cost: %d\n\tCover size: %d\n\tExecution time: %gs\n\tValid: %s\n",
		result.Cost.Sum(), result.Cost.Creation, result.Cost.Area,
		result.CoverSize, result.ExecutionTime.Seconds(), validity)
}

func writeOutput(path string, inst *instance.Instance, results []engine.Result, rec export.Record) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return export.WritePDF(path, inst, results, rec)
	case ".dxf":
		return export.WriteDXF(path, inst.Polygons, export.TotalCoverOf(results))
	default:
		return export.Write(path, rec)
	}
}
