// Command tagdump prints the tags and audio properties of FLAC and MP3 files.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/simonhull/audiotag"
	"github.com/simonhull/audiotag/internal/cliconfig"
)

// app carries the resolved configuration to subcommands.
type app struct {
	cfg cliconfig.Config
	log zerolog.Logger
}

func (a *app) openOptions() []audiotag.Option {
	opts := []audiotag.Option{audiotag.WithLogger(a.log)}
	if a.cfg.Strict {
		opts = append(opts, audiotag.WithStrictParsing())
	}
	if a.cfg.IgnoreWarnings {
		opts = append(opts, audiotag.WithIgnoreWarnings())
	}
	if a.cfg.Concurrency > 0 {
		opts = append(opts, audiotag.WithConcurrency(a.cfg.Concurrency))
	}
	return opts
}

func newRootCommand() *cobra.Command {
	a := &app{cfg: cliconfig.DefaultConfig(), log: zerolog.Nop()}
	var cfgPath string

	root := &cobra.Command{
		Use:           "tagdump",
		Short:         "Print tags and audio properties of FLAC and MP3 files",
		Version:       audiotag.GetVersionInfo().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&a.cfg, fc, changed); err != nil {
					return err
				}
			}
			if err := cliconfig.ApplyEnvConfig(&a.cfg, changed); err != nil {
				return err
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			log, err := cliconfig.Logger(cmd.ErrOrStderr(), a.cfg.LogLevel)
			if err != nil {
				return err
			}
			a.log = log
			a.log.Debug().Interface("config", a.cfg).Msg("configuration")
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.tagdump/config.toml)")
	flags.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.StringVarP(&a.cfg.Output, "output", "o", a.cfg.Output, "output format: text or json")
	flags.IntVar(&a.cfg.Concurrency, "concurrency", a.cfg.Concurrency, "files parsed in parallel (default: number of CPUs)")
	flags.BoolVar(&a.cfg.Strict, "strict", a.cfg.Strict, "fail on any warning")
	flags.BoolVar(&a.cfg.IgnoreWarnings, "ignore-warnings", a.cfg.IgnoreWarnings, "do not report warnings")

	root.AddCommand(newShowCommand(a), newFramesCommand(a), newWatchCommand(a))
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "tagdump:", err)
		os.Exit(1)
	}
}
