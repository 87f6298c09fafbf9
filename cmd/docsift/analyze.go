package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/archivelabs/docsift/internal/domain"
	"github.com/archivelabs/docsift/internal/domain/catalog"
	"github.com/archivelabs/docsift/internal/transport/solr"
	analyzeuc "github.com/archivelabs/docsift/internal/usecase/analyze"
)

var (
	analyzeQuery         string
	analyzeTarget        int
	analyzeFilters       []string
	analyzeSummarizeTop  int
	analyzeSkipSummaries bool
	analyzeJSONOutput    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run one research pass and print the ranked report",
	Long: `Generate search strategies for the query, retrieve and deduplicate
matching documents, classify each with the judge, and print the
tier-ranked report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if analyzeQuery == "" {
			return fmt.Errorf("--query is required")
		}

		extra, err := parseFilterFlags(analyzeFilters)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, err := buildApp(ctx)
		if err != nil {
			return err
		}
		defer app.Close()

		report, err := app.pipeline.Run(ctx, analyzeuc.Request{
			Query:             analyzeQuery,
			TargetPerStrategy: analyzeTarget,
			ExtraFilters:      extra,
			SummarizeTop:      analyzeSummarizeTop,
			SkipSummaries:     analyzeSkipSummaries,
		})
		if err != nil {
			return fmt.Errorf("research run failed: %w", err)
		}

		if analyzeJSONOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		printReport(report)
		return nil
	},
}

// parseFilterFlags converts repeated field=value flags into backend filter
// expressions, rejecting fields outside the curated catalog.
func parseFilterFlags(flags []string) ([]string, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	known := catalog.Fields()
	out := make([]string, 0, len(flags))
	for _, f := range flags {
		field, value, ok := strings.Cut(f, "=")
		if !ok || field == "" || value == "" {
			return nil, fmt.Errorf("filter must be field=value, got %q", f)
		}
		if _, found := known[field]; !found {
			return nil, fmt.Errorf("unknown filter field %q", field)
		}
		out = append(out, solr.FilterExpr(field, value))
	}
	return out, nil
}

func printReport(report *analyzeuc.Report) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	fmt.Printf("\n%s\n\n", cyan("=== Research Report ==="))
	fmt.Printf("Run:   %s\n", report.RunID)
	fmt.Printf("Query: %s\n\n", report.Query)

	fmt.Printf("%s\n", yellow("Strategies:"))
	for _, st := range report.Strategies {
		fmt.Printf("  %s\n", st.SearchTerms)
		if st.Rationale != "" {
			fmt.Printf("    %s\n", gray(st.Rationale))
		}
	}
	fmt.Println()

	fmt.Printf("%s %d documents\n", yellow("Ranked:"), report.DocumentCount)
	for i, doc := range report.Ranked {
		fmt.Printf("  %2d. %s %s\n", i+1, labelColor(doc.Label)(string(doc.Label)), doc.Title)
		fmt.Printf("      %s\n", gray(fmt.Sprintf("%s  %s  %s  confidence %.2f",
			doc.ID, doc.Type, doc.Date, float64(doc.Confidence))))
	}

	if len(report.Summaries) > 0 {
		fmt.Printf("\n%s\n", yellow("Summaries:"))
		for _, s := range report.Summaries {
			fmt.Printf("  %s\n    %s\n", s.ID, s.Summary)
		}
	}
	fmt.Println()
}

func labelColor(label domain.Label) func(a ...interface{}) string {
	switch label {
	case domain.LabelSmokingGun:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case domain.LabelStrong:
		return color.New(color.FgGreen).SprintFunc()
	case domain.LabelRelated:
		return color.New(color.FgYellow).SprintFunc()
	default:
		return color.New(color.FgHiBlack).SprintFunc()
	}
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeQuery, "query", "q", "", "research question (required)")
	analyzeCmd.Flags().IntVar(&analyzeTarget, "target", 0, "documents to keep per strategy (0 = configured default)")
	analyzeCmd.Flags().StringArrayVar(&analyzeFilters, "filter", nil, "extra filter as field=value (repeatable)")
	analyzeCmd.Flags().IntVar(&analyzeSummarizeTop, "summarize-top", 0, "ranked documents to summarize (0 = configured default)")
	analyzeCmd.Flags().BoolVar(&analyzeSkipSummaries, "skip-summaries", false, "skip the summary stage")
	analyzeCmd.Flags().BoolVar(&analyzeJSONOutput, "json", false, "emit the report as JSON")
	rootCmd.AddCommand(analyzeCmd)
}
