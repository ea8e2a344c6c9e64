package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/chriscorrea/scriptsift/internal/app"
	"github.com/chriscorrea/scriptsift/internal/config"
)

// buildConfig constructs an app.Config from resolved settings, command flags and arguments
func buildConfig(command app.Command, flags *pflag.FlagSet, args []string) (app.Config, error) {
	configFile, _ := flags.GetString("config")
	settings, err := config.Loader{ConfigFile: configFile}.Load(flags)
	if err != nil {
		return app.Config{}, err
	}

	format, err := app.ParseOutputFormat(settings.Format)
	if err != nil {
		return app.Config{}, err
	}

	// lookups of flags a command does not define return zero values
	text, _ := flags.GetString("text")
	forceHTML, _ := flags.GetBool("html")
	selector, _ := flags.GetString("selector")
	fullHTML, _ := flags.GetBool("full-html")
	scripts, _ := flags.GetStringSlice("scripts")
	math, _ := flags.GetBool("math")
	code, _ := flags.GetBool("code")
	keepWhitespace, _ := flags.GetBool("keep-whitespace")
	stats, _ := flags.GetBool("stats")
	includeAll, _ := flags.GetBool("include-all")

	return app.Config{
		Command:        command,
		Sources:        args, // empty means stdin
		Text:           text,
		UseText:        flags.Changed("text"),
		HTML:           forceHTML,
		Selector:       selector,
		FullHTML:       fullHTML,
		Scripts:        scripts,
		Math:           math,
		Code:           code,
		KeepWhitespace: keepWhitespace,
		MathThreshold:  settings.MathThreshold,
		CodeThreshold:  settings.CodeThreshold,
		Stats:          stats,
		ChunkSize:      settings.ChunkSize,
		MinLength:      settings.MinLength,
		IncludeAll:     includeAll,
		OutputFormat:   format,
		Quiet:          settings.Quiet,
		Debug:          settings.Debug,
	}, nil
}

// setupLogger configures the default slog logger based on debug mode
func setupLogger(debug bool) {
	var level slog.Level
	if debug {
		level = slog.LevelDebug
	} else {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// runCommand returns the RunE shared by every analysis subcommand.
func runCommand(command app.Command) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(command, cmd.Flags(), args)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		setupLogger(cfg.Debug)

		// create context with signal handling for graceful shutdown
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		result, err := app.Run(ctx, cfg)
		if err != nil {
			return fmt.Errorf("%s failed: %w", command, err)
		}

		fmt.Print(result)
		return nil
	}
}

var rootCmd = &cobra.Command{
	Use:   "scriptsift",
	Short: "Classify, detect and filter text by writing system",
	Long: `Scriptsift measures which writing systems a text uses, detects math and code,
and removes or extracts characters by script. Sources may include URLs, local files,
or standard input.

Examples:
  scriptsift classify article.txt
  scriptsift classify --text "Hello Привет 123"
  scriptsift remove -s russe,grec notes.md
  scriptsift extract --math --keep-whitespace paper.txt
  curl -s https://example.com | scriptsift passages --html -s japonais`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func newAnalysisCommand(command app.Command, short string) *cobra.Command {
	return &cobra.Command{
		Use:   command.String() + " [sources...]",
		Short: short,
		RunE:  runCommand(command),
	}
}

func addFilterFlags(cmd *cobra.Command, verb string) {
	cmd.Flags().StringSliceP("scripts", "s", nil, "Script names to "+verb+" (see 'scriptsift scripts')")
	cmd.Flags().Bool("math", false, "Also "+verb+" math symbols")
	cmd.Flags().Bool("code", false, "Also "+verb+" code spans and code symbols")
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (YAML, TOML or JSON)")
	flags.String("text", "", "Analyze this text instead of sources")
	flags.Bool("html", false, "Treat every input as HTML")
	flags.String("selector", "", "CSS selector for HTML inputs")
	flags.Bool("full-html", false, "Convert whole HTML documents instead of their main content")
	flags.StringP(config.KeyFormat, "f", config.FormatJSON, "Output format: json or text")
	flags.BoolP(config.KeyQuiet, "q", false, "Suppress warnings and progress output")
	flags.BoolP(config.KeyDebug, "D", false, "Enable debug logging")
	_ = flags.MarkHidden(config.KeyDebug)

	defaults := config.Default()

	classifyCmd := newAnalysisCommand(app.Classify, "Report the share of each script category")
	classifyCmd.Flags().Bool("stats", false, "Add character, word and token counts")

	mathCmd := newAnalysisCommand(app.DetectMath, "Measure the density of math symbols")
	mathCmd.Flags().Float64(config.KeyMathThreshold, defaults.MathThreshold, "Percent of math symbols from which text is math-like")

	codeCmd := newAnalysisCommand(app.DetectCode, "Measure the density of code symbols and keywords")
	codeCmd.Flags().Float64(config.KeyCodeThreshold, defaults.CodeThreshold, "Percent of code symbols from which text is code-like")

	removeCmd := newAnalysisCommand(app.Remove, "Remove the characters of given scripts")
	addFilterFlags(removeCmd, "remove")

	extractCmd := newAnalysisCommand(app.Extract, "Keep only the characters of given scripts")
	addFilterFlags(extractCmd, "keep")
	extractCmd.Flags().Bool("keep-whitespace", false, "Keep whitespace between extracted characters")

	passagesCmd := newAnalysisCommand(app.Passages, "List the passages containing given scripts")
	passagesCmd.Flags().StringSliceP("scripts", "s", nil, "Script names a passage must contain")
	passagesCmd.Flags().Int(config.KeyChunkSize, defaults.ChunkSize, "Maximum passage length in characters")
	passagesCmd.Flags().Int(config.KeyMinLength, defaults.MinLength, "Minimum passage length in characters")
	passagesCmd.Flags().BoolP("include-all", "i", false, "Keep headers, footers and other boilerplate passages")

	scriptsCmd := &cobra.Command{
		Use:   "scripts",
		Short: "List the script names accepted by --scripts",
		Args:  cobra.NoArgs,
		RunE:  runCommand(app.Scripts),
	}

	rootCmd.AddCommand(classifyCmd, mathCmd, codeCmd, removeCmd, extractCmd, passagesCmd, scriptsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
