package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/keel/internal/app"
	"go.trai.ch/keel/internal/core/domain"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the build descriptor and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Resolve(cmd.Context(), c.options(cmd))
		},
	}
	addOutputFlags(cmd, app.DefaultResolveFormat, "-", "Output file, - for stdout")
	return cmd
}

func (c *CLI) newEmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emit",
		Short: "Write the build descriptor for the host build platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Emit(cmd.Context(), c.options(cmd))
		},
	}
	addOutputFlags(cmd, app.DefaultEmitFormat, domain.DefaultOutputFileName, "Output file, - for stdout")
	return cmd
}

func (c *CLI) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Fail if the emitted descriptor is out of date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Check(cmd.Context(), c.options(cmd))
		},
	}
	addOutputFlags(cmd, app.DefaultEmitFormat, domain.DefaultOutputFileName, "Emitted file to verify")
	return cmd
}

func (c *CLI) newExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain",
		Short: "Show where each descriptor value comes from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Explain(cmd.Context(), c.options(cmd))
		},
	}
}

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-emit the descriptor whenever an override or project file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Watch(cmd.Context(), c.options(cmd))
		},
	}
	addOutputFlags(cmd, app.DefaultEmitFormat, domain.DefaultOutputFileName, "Output file")
	return cmd
}

func (c *CLI) newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove the descriptor store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Clean(cmd.Context(), c.options(cmd))
		},
	}
}
