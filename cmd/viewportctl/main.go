// viewportctl computes Web Mercator viewport projections, bounds and
// shader uniforms from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Faultbox/geoview/internal/config"
	"github.com/Faultbox/geoview/internal/logger"
)

// app carries the state shared by every subcommand.
type app struct {
	flags  *config.Flags
	cfg    *config.Config
	format string
}

func main() {
	a := &app{}
	root := a.rootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "viewportctl",
		Short:         "Web Mercator viewport and projection uniform tool",
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "init" && cmd.Parent() != nil && cmd.Parent().Name() == "config" {
				return nil
			}
			cfg, err := config.Load("", a.flags)
			if err != nil {
				return err
			}
			if err := cfg.Logging.InitLogger(); err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			a.cfg = cfg
			logger.Debug("config loaded")
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	a.flags = config.RegisterFlags(root.PersistentFlags())
	root.PersistentFlags().StringVarP(&a.format, "output", "o", "json", "Output format: json or yaml")

	root.AddCommand(
		a.projectCommand(),
		a.unprojectCommand(),
		a.boundsCommand(),
		a.centerCommand(),
		a.frustumCommand(),
		a.tilesCommand(),
		a.uniformsCommand(),
		a.injectCommand(),
		a.configCommand(),
	)
	return root
}
