package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/slidelens/slidelens/internal/report"
	"github.com/slidelens/slidelens/internal/service"
	"github.com/slidelens/slidelens/internal/static"
	"github.com/slidelens/slidelens/internal/types"
	"github.com/slidelens/slidelens/internal/utils/log"
	"github.com/spf13/cobra"
)

// Analyzer is the part of the service the analyze command drives.
type Analyzer interface {
	Quick(ctx context.Context, upload service.Upload) (*types.QuickResult, error)
	Full(ctx context.Context, upload service.Upload, options types.AnalysisOptions) (*types.Report, error)
}

type analyzeParams struct {
	stdout   io.Writer
	analyzer Analyzer
	path     string
	full     bool
	json     bool
	options  types.AnalysisOptions
}

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <file.pdf>",
		Short: "Analyze a presentation locally and print the result",
		Example: `  # text preview and slide count
  slidelens analyze deck.pdf

  # full report rendered in the terminal
  slidelens analyze deck.pdf --full

  # full report as json
  slidelens analyze deck.pdf --full --json --llm 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config_path, _ := cmd.Flags().GetString("config")
			if _, err := os.Stat(config_path); err != nil {
				config_path = ""
			}
			if err := static.InitConfig(config_path); err != nil {
				return err
			}
			log.SetShowLog(false)

			svc, err := service.New(cmd.Context(), static.GetSlideLensGlobalConfigurations())
			if err != nil {
				return err
			}
			defer svc.Close()

			p := analyzeParams{
				stdout:   cmd.OutOrStdout(),
				analyzer: svc,
				path:     args[0],
				options:  types.AnalysisOptions{Temperature: -1},
			}
			p.full, _ = cmd.Flags().GetBool("full")
			p.json, _ = cmd.Flags().GetBool("json")
			p.options.LLMModelID, _ = cmd.Flags().GetInt("llm")
			p.options.VLMModelID, _ = cmd.Flags().GetInt("vlm")
			p.options.MaxTokens, _ = cmd.Flags().GetInt("max-tokens")
			if cmd.Flags().Changed("temperature") {
				p.options.Temperature, _ = cmd.Flags().GetFloat64("temperature")
			}
			return runAnalyze(cmd.Context(), p)
		},
	}
	cmd.Flags().Bool("full", false, "run every analyzer instead of the quick text preview")
	cmd.Flags().Bool("json", false, "print json instead of rendered markdown")
	cmd.Flags().Int("llm", 0, "llm model id, see slidelens models")
	cmd.Flags().Int("vlm", 0, "vlm model id, see slidelens models")
	cmd.Flags().Int("max-tokens", 0, "max tokens of the structure analysis")
	cmd.Flags().Float64("temperature", 0, "sampling temperature of the structure analysis")
	return cmd
}

func runAnalyze(ctx context.Context, p analyzeParams) error {
	file, err := os.Open(p.path)
	if err != nil {
		return err
	}
	defer file.Close()

	upload := service.Upload{Filename: filepath.Base(p.path), Reader: file}

	if !p.full {
		result, err := p.analyzer.Quick(ctx, upload)
		if err != nil {
			return err
		}
		if p.json {
			return writeJSON(p.stdout, result)
		}
		return writeMarkdown(p.stdout, fmt.Sprintf("# %s\n\n**Слайдов:** %d\n\n```\n%s\n```\n",
			result.Filename, result.CountSlides, strings.TrimSpace(result.TextPreview)))
	}

	result, err := p.analyzer.Full(ctx, upload, p.options)
	if err != nil {
		return err
	}
	if p.json {
		return writeJSON(p.stdout, result)
	}
	return writeMarkdown(p.stdout, report.Markdown(result))
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// writeMarkdown falls back to the raw markdown when glamour cannot render it.
func writeMarkdown(w io.Writer, markdown string) error {
	rendered := markdown
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		if out, err := renderer.Render(markdown); err == nil {
			rendered = out
		}
	}
	_, err = io.WriteString(w, rendered)
	return err
}
