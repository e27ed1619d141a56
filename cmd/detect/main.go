package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/FrancoBrice/sales-metrics-sub001/internal/detect"
)

// Runs the deterministic detectors over one transcript and prints the
// resulting signals as JSON. Reads the file given by -file, or stdin.
func main() {
	file := flag.String("file", "", "transcript file to analyze (defaults to stdin)")
	flag.Parse()

	var (
		raw []byte
		err error
	)
	if *file != "" {
		raw, err = os.ReadFile(*file)
	} else {
		raw, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "read transcript: %v\n", err)
		os.Exit(1)
	}

	res := detect.Detect(string(raw))
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode result: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
