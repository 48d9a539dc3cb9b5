package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/credlens/credlens/internal/document"
	"github.com/credlens/credlens/internal/report"
)

func main() {
	fs := ff.NewFlagSet("credlens-cli")
	var (
		reportPath  = fs.StringLong("report", "", "Credit report PDF path (required)")
		recordPaths = fs.StringLong("records", "", "Comma-separated CSV paths of bank/payment records (optional)")
		outputPath  = fs.StringLong("output", "summary.json", "Consolidated summary output path")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("CREDLENS"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *reportPath == "" {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintln(os.Stderr, "error: --report is required")
		os.Exit(1)
	}

	data, err := os.ReadFile(*reportPath)
	if err != nil {
		slog.Error("Failed to read report", "path", *reportPath, "error", err)
		os.Exit(1)
	}

	converter := document.PDFConverter{}
	text, err := converter.ExtractText(data, "application/pdf")
	if err != nil {
		slog.Error("Failed to extract text from report", "path", *reportPath, "error", err)
		os.Exit(1)
	}

	fields := report.ExtractFields(text)
	textSubs := report.DetectSubscriptions(text)

	var tabular []*report.TabularData
	if *recordPaths != "" {
		for _, path := range strings.Split(*recordPaths, ",") {
			path = strings.TrimSpace(path)
			if path == "" {
				continue
			}
			f, err := os.Open(path)
			if err != nil {
				slog.Error("Failed to open records file", "path", path, "error", err)
				os.Exit(1)
			}
			td, err := report.ParseRecords(f)
			f.Close()
			if err != nil {
				slog.Error("Failed to parse records file", "path", path, "error", err)
				os.Exit(1)
			}
			tabular = append(tabular, td)
		}
	}

	summary := report.Consolidate(fields, textSubs, tabular...)

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		slog.Error("Failed to encode summary", "error", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*outputPath, out, 0644); err != nil {
		slog.Error("Failed to write summary", "path", *outputPath, "error", err)
		os.Exit(1)
	}

	fmt.Println(string(out))
	slog.Info("Summary written", "path", *outputPath)
}
