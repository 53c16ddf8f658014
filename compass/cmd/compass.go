// Command-line entrypoint for the company research assistant
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"compass/compass/config"
	"compass/compass/controllers"
	"compass/compass/services/research"
	"compass/compass/tui"
	"compass/compass/utils/color"
	"compass/compass/utils/jsonutils"
	"compass/compass/utils/logging"
	"compass/compass/utils/types"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	if len(args) == 0 {
		usage(out)
		return 1
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(out, color.ColorError("config error: "+err.Error()))
		return 1
	}
	if err := logging.InitLogger(cfg.LogDir); err != nil {
		fmt.Fprintln(out, color.ColorError("logger error: "+err.Error()))
		return 1
	}
	defer logging.Sync()

	if err := cfg.Validate(); err != nil {
		logging.ErrorLogger.Error("invalid configuration", zap.Error(err))
		fmt.Fprintln(out, color.ColorError("invalid configuration: "+err.Error()))
		return 1
	}

	pipeline, closeFetcher, err := research.NewFromConfig(cfg)
	if err != nil {
		logging.ErrorLogger.Error("pipeline setup error", zap.Error(err))
		fmt.Fprintln(out, color.ColorError(err.Error()))
		return 1
	}
	defer closeFetcher()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch args[0] {
	case "research":
		return runResearch(ctx, pipeline, args[1:], out)
	case "tui":
		program := tea.NewProgram(tui.NewModel(controllers.NewResearchController(pipeline)))
		if _, err := program.Run(); err != nil {
			fmt.Fprintf(out, "Error running program: %v\n", err)
			return 1
		}
		return 0
	default:
		usage(out)
		return 1
	}
}

func usage(out io.Writer) {
	fmt.Fprintln(out, "Compass CLI usage:")
	fmt.Fprintln(out, "  compass research [-json] <company>   # Research a company and print the result")
	fmt.Fprintln(out, "  compass tui                          # Interactive terminal UI")
}

func runResearch(ctx context.Context, r controllers.Researcher, args []string, out io.Writer) int {
	fs := flag.NewFlagSet("research", flag.ContinueOnError)
	fs.SetOutput(out)
	asJSON := fs.Bool("json", false, "print the report as JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	company := strings.Join(fs.Args(), " ")

	var rep research.Reporter = &cliReporter{out: out, company: strings.TrimSpace(company)}
	if *asJSON {
		rep = research.NopReporter{}
	}
	report, err := r.Run(ctx, company, rep)
	if errors.Is(err, research.ErrEmptyCompany) {
		if *asJSON {
			fmt.Fprintln(out, color.ColorWarning("Please enter a company name."))
		}
		return 2
	}
	if err != nil {
		fmt.Fprintln(out, color.ColorError(err.Error()))
		return 1
	}
	if *asJSON {
		fmt.Fprintln(out, jsonutils.ToJSON(report))
	}
	return 0
}

// cliReporter prints pipeline progress as colored lines.
type cliReporter struct {
	out     io.Writer
	company string
}

func (c *cliReporter) Status(msg string) {
	switch {
	case strings.HasPrefix(msg, "No "), strings.HasPrefix(msg, "Please "):
		fmt.Fprintln(c.out, color.ColorWarning(msg))
	case strings.HasPrefix(msg, "Could not"):
		fmt.Fprintln(c.out, color.ColorError(msg))
	default:
		fmt.Fprintln(c.out, color.ColorPrompt(msg))
	}
}

func (c *cliReporter) Progress(fraction float64) {
	fmt.Fprintln(c.out, color.ColorMuted(fmt.Sprintf("  scraped %3.0f%%", fraction*100)))
}

func (c *cliReporter) Results(results []types.SearchResult) {
	fmt.Fprintln(c.out, color.ColorHeading("URLs identified"))
	for _, r := range results {
		fmt.Fprintln(c.out, "  "+color.ColorLink(r.URL))
		if r.Snippet != "" {
			fmt.Fprintln(c.out, "    "+color.ColorMuted(r.Snippet))
		}
	}
	fmt.Fprintln(c.out)
}

func (c *cliReporter) Summary(text string) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, color.ColorHeading(fmt.Sprintf("Summary for %s:", c.company)))
	fmt.Fprintln(c.out, color.ColorInfo(text))
	fmt.Fprintln(c.out)
}

func (c *cliReporter) News(items []types.NewsItem) {
	fmt.Fprintln(c.out, color.ColorHeading("Latest news"))
	for _, n := range items {
		fmt.Fprintln(c.out, "  "+n.Title)
		fmt.Fprintln(c.out, "    "+color.ColorLink(n.URL))
		if n.Snippet != "" {
			fmt.Fprintln(c.out, "    "+color.ColorMuted(n.Snippet))
		}
	}
}

func (c *cliReporter) Done() {}
