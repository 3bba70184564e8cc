package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tcp-export/metalyzer"
	"tcp-export/pipeline"
)

func main() {
	_ = godotenv.Load()

	var (
		xmlPath   = flag.String("xml", "", "Path to the MetaLyzer TCP export XML file")
		profile   = flag.String("profile", "", "Path to the athlete profile JSON")
		outDir    = flag.String("out", defaultOutputDir(), "Output directory for artifacts")
		outName   = flag.String("name", "", "Override the derived result file name")
		format    = flag.String("format", "parquet", "Curve sample format: parquet|csv")
		report    = flag.Bool("report", false, "Also write an XLSX summary report")
		overwrite = flag.Bool("overwrite", true, "Allow replacing an existing result file")
		scanDir   = flag.String("scan", "", "List TCP export files in a folder and exit")
		verbose   = flag.Bool("v", false, "Verbose logging")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Usage: %s --xml export.xml [--profile profile.json] [--out dir] [--format parquet|csv] [--report]\n",
			filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if *scanDir != "" {
		if err := scanFolder(*scanDir); err != nil {
			fmt.Fprintf(os.Stderr, "scan failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if strings.TrimSpace(*xmlPath) == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger := zap.NewNop()
	if *verbose {
		if l, err := zap.NewDevelopment(); err == nil {
			logger = l
		}
	}
	defer func() { _ = logger.Sync() }()

	result, err := pipeline.Run(pipeline.Options{
		XMLPath:     *xmlPath,
		ProfilePath: *profile,
		OutDir:      *outDir,
		OutName:     *outName,
		Format:      *format,
		Report:      *report,
		Overwrite:   *overwrite,
		Logger:      logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "tcp_export failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("tcp_export complete\n")
	fmt.Printf("result document: %s\n", result.ResultPath)
	if result.CurveSamplesPath != "" {
		fmt.Printf("curve samples:   %s\n", result.CurveSamplesPath)
	}
	if result.ReportPath != "" {
		fmt.Printf("xlsx report:     %s\n", result.ReportPath)
	}
	for _, e := range result.Validation.Errors {
		fmt.Printf("validation error: %s\n", e)
	}
	for _, w := range result.Validation.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	if !result.Validation.Valid {
		os.Exit(1)
	}
}

func scanFolder(dir string) error {
	tests, err := metalyzer.ListTests(dir)
	if err != nil {
		return err
	}
	if len(tests) == 0 {
		fmt.Println("no TCP export files found")
		return nil
	}
	for _, t := range tests {
		name := strings.TrimSpace(t.LastName + " " + t.FirstName)
		if name == "" {
			name = "(unrecognized name)"
		}
		fmt.Printf("%-30s %s %s  %s\n", name, t.Date, t.Time, t.Filename)
	}
	return nil
}

func defaultOutputDir() string {
	if dir := os.Getenv("TCP_OUTPUT_DIR"); dir != "" {
		return dir
	}
	return "Output"
}
