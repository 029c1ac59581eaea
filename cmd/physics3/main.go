package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/physics3/internal/config"
	"github.com/san-kum/physics3/internal/physics3"
	"github.com/san-kum/physics3/internal/storage"
)

// app carries the resolved configuration shared by every subcommand.
type app struct {
	configFile string
	profile    string
	strict     bool
	verbose    bool

	cfg *config.Config
	log *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "physics3",
		Short:        "inspect and validate Live2D .physics3.json documents",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&a.profile, "profile", "default", "named configuration profile")
	rootCmd.PersistentFlags().BoolVar(&a.strict, "strict", false, "reject unknown fields")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(
		a.inspectCmd(),
		a.validateCmd(),
		a.dumpCmd(),
		a.normalizeCmd(),
		a.curveCmd(),
		a.svgCmd(),
		a.auditCmd(),
		a.listCmd(),
		a.browseCmd(),
		a.profilesCmd(),
		a.schemaCmd(),
	)
	return rootCmd
}

// setup resolves the profile, then the config file, then explicit flags.
func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.GetProfile(a.profile)
	if cfg == nil {
		return fmt.Errorf("unknown profile: %s (available: %v)", a.profile, config.ListProfiles())
	}
	if a.configFile != "" {
		loaded, err := config.Load(a.configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("strict") {
		cfg.Strict = a.strict
	}
	a.cfg = cfg

	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.log.Debug("configuration resolved",
		"profile", a.profile, "config", a.configFile, "strict", cfg.Strict, "format", cfg.Format)
	return nil
}

func (a *app) decodeOptions() []physics3.Option {
	if a.cfg.Strict {
		return []physics3.Option{physics3.WithStrict()}
	}
	return nil
}

func (a *app) store(dir string) *storage.Store {
	return storage.New(dir,
		storage.WithPattern(a.cfg.Pattern),
		storage.WithWorkers(a.cfg.Workers),
		storage.WithDecodeOptions(a.decodeOptions()...),
		storage.WithLogger(a.log),
	)
}

// load reads one document; "-" reads standard input.
func (a *app) load(cmd *cobra.Command, path string) (*physics3.Physics3, error) {
	if path == "-" {
		doc, err := physics3.Decode(cmd.InOrStdin(), a.decodeOptions()...)
		if err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}
		return doc, nil
	}
	return a.store(".").Load(path)
}

func (a *app) setting(doc *physics3.Physics3, id string) (physics3.Setting, error) {
	s, ok := doc.Setting(id)
	if !ok {
		ids := make([]string, 0, len(doc.Settings))
		for _, st := range doc.Settings {
			ids = append(ids, st.ID)
		}
		return physics3.Setting{}, fmt.Errorf("unknown setting: %s (available: %v)", id, ids)
	}
	return s, nil
}

func rangeFor(s physics3.Setting, kind string) (physics3.RangeParam, error) {
	if s.Normalization == nil {
		return physics3.RangeParam{}, fmt.Errorf("setting %s has no normalization", s.ID)
	}
	switch kind {
	case "position":
		return s.Normalization.Position, nil
	case "angle":
		return s.Normalization.Angle, nil
	}
	return physics3.RangeParam{}, fmt.Errorf("unknown kind: %s (want position or angle)", kind)
}

func writeOut(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	return err
}
