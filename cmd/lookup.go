package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/naka-gawa/starz/internal/usecase"
	"github.com/naka-gawa/starz/internal/widget"
	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Runs the interactive lookup widget",
	Long: `Runs the lookup widget in the terminal. Type a user name and press enter
(or ctrl+s) to list the user's repositories and their stars.

With --plain, names are read one per line from standard input and the
widget is printed after each lookup completes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		logger := newLogger(cmd)

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		source, closeSource, err := newSource(cfg, logger)
		if err != nil {
			return err
		}
		defer closeSource()
		lookup := usecase.NewLookup(source, logger)

		plain, _ := cmd.Flags().GetBool("plain")
		if plain {
			controller := widget.NewController(lookup, logger)
			return runPlain(ctx, controller, cmd.InOrStdin(), cmd.OutOrStdout())
		}

		program := tea.NewProgram(widget.NewModel(ctx, lookup), tea.WithContext(ctx))
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run lookup widget: %w", err)
		}
		return nil
	},
}

// runPlain feeds each input line to the controller as a typed name followed
// by Enter and prints the settled widget.
func runPlain(ctx context.Context, controller *widget.Controller, in io.Reader, out io.Writer) error {
	theme := widget.DefaultTheme()
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		s := controller.Submit(ctx, line)
		fmt.Fprint(out, widget.RenderText(s, theme, "name: "+line))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read names: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().Bool("plain", false, "Read names from standard input instead of running the interactive widget")
}
