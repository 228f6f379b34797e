package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/naka-gawa/starz/internal/domain"
	"github.com/naka-gawa/starz/internal/usecase"
	"github.com/naka-gawa/starz/internal/widget"
	"github.com/spf13/cobra"
)

// listOutput is the JSON shape of a single lookup.
type listOutput struct {
	Name         string          `json:"name"`
	Result       string          `json:"result"`
	Repositories []domain.Entry  `json:"repositories"`
	Summary      *domain.Summary `json:"summary,omitempty"`
	Error        string          `json:"error,omitempty"`
}

var listCmd = &cobra.Command{
	Use:   "list NAME...",
	Short: "Looks up one or more users and prints their repositories",
	Long: `Looks up the repositories of every given user concurrently and prints
them as a table, as the HTML widget fragment, or as JSON. A user without
repositories, or whose lookup fails, is reported as "user not found".`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		logger := newLogger(cmd)

		format, _ := cmd.Flags().GetString("format")
		if format != "table" && format != "html" && format != "json" {
			return fmt.Errorf("invalid --format %q: use table, html or json", format)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		// Inject dependencies and run the main business logic.
		source, closeSource, err := newSource(cfg, logger)
		if err != nil {
			return err
		}
		defer closeSource()
		lookup := usecase.NewLookup(source, logger)

		// Names that fail validation are not sent to the source.
		results := make([]domain.Result, len(args))
		var pending []string
		var pendingIdx []int
		for i, name := range args {
			if !widget.Valid(name) {
				results[i] = domain.Failure(name, errors.New(widget.AlertEmptyName))
				continue
			}
			pending = append(pending, name)
			pendingIdx = append(pendingIdx, i)
		}
		for j, r := range lookup.LookupAll(ctx, pending) {
			results[pendingIdx[j]] = r
		}

		return writeResults(cmd.OutOrStdout(), format, args, results)
	},
}

func writeResults(w io.Writer, format string, names []string, results []domain.Result) error {
	switch format {
	case "json":
		outputs := make([]listOutput, 0, len(results))
		for i, r := range results {
			out := listOutput{Name: names[i], Result: r.Kind.String(), Repositories: r.Entries}
			if r.Err != nil {
				out.Error = r.Err.Error()
			}
			if out.Repositories == nil {
				out.Repositories = []domain.Entry{}
			}
			if r.Kind == domain.ResultOK {
				summary, err := usecase.Summarize(r.Entries)
				if err != nil {
					return err
				}
				out.Summary = &summary
			}
			outputs = append(outputs, out)
		}
		// Marshal the results into a pretty-printed JSON string.
		jsonData, err := json.MarshalIndent(outputs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(jsonData))
		return err
	case "html":
		for i, r := range results {
			if err := widget.RenderHTML(w, widget.Settle(names[i], r)); err != nil {
				return err
			}
		}
		return nil
	default:
		theme := widget.DefaultTheme()
		for i, r := range results {
			s := widget.Settle(names[i], r)
			fmt.Fprintln(w, theme.Header.Render(names[i]))
			if s.AlertVisible() {
				fmt.Fprintln(w, theme.Alert.Render(s.Alert))
				continue
			}
			fmt.Fprintln(w, widget.RenderTable(s, theme))
			if r.Kind == domain.ResultOK {
				summary, err := usecase.Summarize(r.Entries)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%d repositories, %d stars (mean %.1f, median %.1f)\n",
					summary.Repositories, summary.TotalStars, summary.MeanStars, summary.MedianStars)
			}
		}
		return nil
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringP("format", "f", "table", "Output format: table, html or json")
}
