package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/five82/ticktock/internal/app"
	"github.com/five82/ticktock/internal/logging"
	"github.com/five82/ticktock/internal/logtail"
	"github.com/five82/ticktock/internal/state"
)

type rootOptions struct {
	configPath string
	ephemeral  bool
}

func (o rootOptions) appOptions() app.Options {
	return app.Options{ConfigPath: o.configPath, Ephemeral: o.ephemeral}
}

func (o *rootOptions) bindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.configPath, "config", "", "config file (default ~/.config/ticktock/config.toml)")
	fs.BoolVar(&o.ephemeral, "ephemeral", false, "keep state in memory for this run only")
}

func newRootCommand() *cobra.Command {
	var opts rootOptions

	root := &cobra.Command{
		Use:   "ticktock",
		Short: "See your life in weeks",
		Long: "ticktock shows how much time you have lived and how much is left,\n" +
			"down to the current year, month, week and your next deadline.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !stdoutIsTerminal() {
				return withEnv(cmd, opts, func(env *app.Env) error {
					return printSummary(cmd.OutOrStdout(), env.Store.Snapshot(), env.Store.Persistent())
				})
			}
			return app.Run(cmd.Context(), opts.appOptions())
		},
	}

	opts.bindFlags(root.PersistentFlags())

	root.AddCommand(
		newShowCommand(&opts),
		newResetCommand(&opts),
		newUpdateCommand(&opts),
		newModeCommand(&opts),
		newViewCommand(&opts),
		newLogsCommand(&opts),
	)
	return root
}

func newShowCommand(opts *rootOptions) *cobra.Command {
	var asJSON, asYAML bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, *opts, func(env *app.Env) error {
				st := env.Store.Snapshot()
				switch {
				case asJSON:
					return writeJSON(cmd.OutOrStdout(), st)
				case asYAML:
					return writeYAML(cmd.OutOrStdout(), st)
				default:
					return printSummary(cmd.OutOrStdout(), st, env.Store.Persistent())
				}
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the stored snapshot as JSON")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the stored snapshot as YAML")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")
	return cmd
}

func newResetCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Erase stored state and return to defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, *opts, func(env *app.Env) error {
				if err := env.Store.Reset(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "State reset to defaults.")
				return nil
			})
		},
	}
}

func newUpdateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "update '<json>'",
		Short: "Merge fields into the user data",
		Long: "update merges a JSON object into the user data, e.g.\n\n" +
			"  ticktock update '{\"age\": 34, \"country\": \"Japan\"}'\n\n" +
			"Changing age or country recomputes lifeExpectancy unless it is set too.\n" +
			"A null age or deadline clears it.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch state.UserDataPatch
			if err := json.Unmarshal([]byte(args[0]), &patch); err != nil {
				return fmt.Errorf("parse patch: %w", err)
			}
			return withEnv(cmd, *opts, func(env *app.Env) error {
				if err := env.Store.UpdateUserData(patch); err != nil {
					return err
				}
				return printSummary(cmd.OutOrStdout(), env.Store.Snapshot(), env.Store.Persistent())
			})
		},
	}
}

func newModeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "mode <intro|age-input|dashboard>",
		Short:     "Set the screen shown on next launch",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(state.ModeIntro), string(state.ModeAgeInput), string(state.ModeDashboard)},
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := state.ParseMode(args[0])
			if err != nil {
				return err
			}
			return withEnv(cmd, *opts, func(env *app.Env) error {
				if err := env.Store.SetMode(m); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Mode: %s\n", m)
				return nil
			})
		},
	}
}

func newViewCommand(opts *rootOptions) *cobra.Command {
	valid := make([]string, 0, len(state.Views()))
	for _, v := range state.Views() {
		valid = append(valid, string(v))
	}
	return &cobra.Command{
		Use:       "view <" + strings.Join(valid, "|") + ">",
		Short:     "Set the dashboard view",
		Args:      cobra.ExactArgs(1),
		ValidArgs: valid,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := state.ParseView(args[0])
			if err != nil {
				return err
			}
			return withEnv(cmd, *opts, func(env *app.Env) error {
				if err := env.Store.SetView(v); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "View: %s\n", v.Label())
				return nil
			})
		},
	}
}

func newLogsCommand(opts *rootOptions) *cobra.Command {
	var (
		lines  int
		level  string
		follow bool
	)
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, *opts, func(env *app.Env) error {
				out, err := logtail.Read(env.Config.Log.File, lines)
				if err != nil {
					return err
				}
				keep := func(string) bool { return true }
				if level != "" {
					keep = logtail.NewLevelFilter(logging.ParseLevel(level)).Keep
				}
				emit := func(line string) {
					if keep(line) {
						fmt.Fprintln(cmd.OutOrStdout(), line)
					}
				}
				for _, line := range out {
					emit(line)
				}
				if !follow {
					return nil
				}
				return logtail.Follow(cmd.Context(), env.Config.Log.File, emit)
			})
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines to read (0 for all)")
	cmd.Flags().StringVar(&level, "level", "", "only show entries at this level or more severe")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "keep printing entries as they are written")
	return cmd
}

// withEnv opens the application environment for a subcommand.
func withEnv(cmd *cobra.Command, opts rootOptions, fn func(*app.Env) error) error {
	env, err := app.Open(opts.appOptions())
	if err != nil {
		return err
	}
	defer env.Close()
	if env.LogErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "ticktock: logging disabled: %v\n", env.LogErr)
	}
	return fn(env)
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
