// Package commands implements the CLI commands for keel.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/keel/internal/adapters/detector"
	"go.trai.ch/keel/internal/app"
	"go.trai.ch/keel/internal/build"
	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports"
	"go.trai.ch/zerr"
)

// CLI represents the command line interface for keel.
type CLI struct {
	app     Application
	logger  ports.Logger
	rootCmd *cobra.Command
	opts    app.Options
}

// Application represents the application logic interface.
type Application interface {
	Resolve(ctx context.Context, opts app.Options) error
	Emit(ctx context.Context, opts app.Options) error
	Check(ctx context.Context, opts app.Options) error
	Explain(ctx context.Context, opts app.Options) error
	Watch(ctx context.Context, opts app.Options) error
	Clean(ctx context.Context, opts app.Options) error
}

// logConfigurer is implemented by loggers that can switch output style.
type logConfigurer interface {
	SetJSON(enable bool)
	SetColor(enable bool)
}

// New creates a new CLI instance with the given app and logger.
func New(a Application, log ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "keel",
		Short:         "Resolve build configuration into a validated build descriptor",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		logger:  log,
		rootCmd: rootCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.opts.Root, "dir", "C", ".", "Project directory")
	flags.StringVar(&c.opts.ProjectFile, "project", "", "Path to the project file (default <dir>/keel.yaml)")
	flags.StringArrayVar(&c.opts.OverrideFiles, "overrides", nil,
		"Override file, repeatable; later files win (default local.properties, keel.local.properties)")
	flags.StringVar(&c.opts.Variant, "variant", string(domain.VariantDebug), "Build variant: debug or release")
	flags.BoolVar(&c.opts.AllowDebugSigning, "allow-debug-signing", false,
		"Allow a release build to be signed with the debug key")
	flags.BoolVar(&c.opts.Trace, "trace", false, "Log the duration of each resolution step")
	flags.String("log-format", "pretty", "Log format: pretty or json")
	flags.String("color", "auto", "Colored output: auto, always or never")

	rootCmd.PersistentPreRunE = c.configureLogger

	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newEmitCmd())
	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newExplainCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) configureLogger(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("log-format")
	color, _ := cmd.Flags().GetString("color")

	switch format {
	case "pretty", "json":
	default:
		return zerr.With(zerr.New("unknown log format"), "log-format", format)
	}

	lc, ok := c.logger.(logConfigurer)
	if !ok {
		return nil
	}
	lc.SetJSON(format == "json")
	lc.SetColor(detector.ResolveMode(detector.DetectEnvironment(), color) == detector.ModeColor)
	return nil
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// options returns the persistent options merged with a command's output flags.
func (c *CLI) options(cmd *cobra.Command) app.Options {
	opts := c.opts
	if f := cmd.Flags().Lookup("format"); f != nil {
		opts.Format = f.Value.String()
	}
	if f := cmd.Flags().Lookup("out"); f != nil {
		opts.Output = f.Value.String()
	}
	return opts
}

func addOutputFlags(cmd *cobra.Command, defaultFormat, defaultOut, outUsage string) {
	cmd.Flags().StringP("format", "f", defaultFormat, "Output format: gradle, json or yaml")
	cmd.Flags().StringP("out", "o", defaultOut, outUsage)
}
