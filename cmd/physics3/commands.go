package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/physics3/internal/analysis"
	"github.com/san-kum/physics3/internal/config"
	"github.com/san-kum/physics3/internal/export"
	"github.com/san-kum/physics3/internal/physics3"
	"github.com/san-kum/physics3/internal/storage"
	"github.com/san-kum/physics3/internal/tui"
)

func (a *app) inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file]",
		Short: "summarize a physics document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			f := doc.Meta.EffectiveForces
			fmt.Fprintf(out, "version:  %d\n", doc.Version)
			fmt.Fprintf(out, "settings: %d  inputs: %d  outputs: %d  vertices: %d\n",
				doc.Meta.SettingCount, doc.Meta.TotalInputCount, doc.Meta.TotalOutputCount, doc.Meta.TotalVertices)
			fmt.Fprintf(out, "gravity:  (%g, %g)  wind: (%g, %g)\n\n", f.Gravity.X, f.Gravity.Y, f.Wind.X, f.Wind.Y)

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tIN\tOUT\tVERT\tPOSITION\tANGLE")
			for _, s := range doc.Settings {
				name, _ := doc.Name(s.ID)
				pos, ang := "-", "-"
				if n := s.Normalization; n != nil {
					pos = formatRange(n.Position)
					ang = formatRange(n.Angle)
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
					s.ID, name, len(s.Inputs), len(s.Outputs), len(s.Vertices), pos, ang)
			}
			return w.Flush()
		},
	}
}

func formatRange(r physics3.RangeParam) string {
	return fmt.Sprintf("[%g, %g] @%g", r.Minimum, r.Maximum, r.Default)
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file...]",
		Short: "decode documents and report errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				if _, err := a.load(cmd, path); err != nil {
					failed++
					fmt.Fprintf(out, "FAIL  %s: %s\n", path, errorKind(err))
					fmt.Fprintf(out, "      %v\n", err)
					continue
				}
				fmt.Fprintf(out, "ok    %s\n", path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d documents invalid", failed, len(args))
			}
			return nil
		},
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, physics3.ErrSyntax):
		return "syntax"
	case errors.Is(err, physics3.ErrUnknownVariant):
		return "unknown variant"
	case errors.Is(err, physics3.ErrSchema):
		return "schema"
	case errors.Is(err, os.ErrNotExist):
		return "not found"
	}
	return "io"
}

func (a *app) dumpCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "dump [file]",
		Short: "re-encode a document as json or yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("format") && a.cfg.Format != "text" {
				format = a.cfg.Format
			}
			switch format {
			case "json":
				return export.JSON(cmd.OutOrStdout(), doc, a.cfg.Indent)
			case "yaml":
				data, err := export.YAML(doc)
				if err != nil {
					return err
				}
				return writeOut(cmd.OutOrStdout(), data)
			}
			return fmt.Errorf("unknown format: %s (want json or yaml)", format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json, yaml)")
	return cmd
}

func (a *app) normalizeCmd() *cobra.Command {
	var (
		kind  string
		value float64
	)
	cmd := &cobra.Command{
		Use:   "normalize [file] [setting]",
		Short: "normalize a value against a setting's range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}
			s, err := a.setting(doc, args[1])
			if err != nil {
				return err
			}
			r, err := rangeFor(s, kind)
			if err != nil {
				return err
			}

			var in *float64
			if cmd.Flags().Changed("value") {
				in = &value
			}
			got := r.Normalize(in)
			a.log.Debug("normalized", "setting", s.ID, "kind", kind, "input", in != nil, "result", got)
			fmt.Fprintf(cmd.OutOrStdout(), "%g\n", got)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "position", "range to use (position, angle)")
	cmd.Flags().Float64Var(&value, "value", 0, "value to normalize (default: range default)")
	return cmd
}

func (a *app) curveCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "curve [file] [setting]",
		Short: "plot the normalization curve",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}
			s, err := a.setting(doc, args[1])
			if err != nil {
				return err
			}
			r, err := rangeFor(s, kind)
			if err != nil {
				return err
			}

			xs, ys := analysis.SampleCurve(r, a.cfg.Plot.Samples)
			graph := asciigraph.Plot(ys,
				asciigraph.Height(a.cfg.Plot.Height),
				asciigraph.Width(a.cfg.Plot.Width),
				asciigraph.Caption(fmt.Sprintf("%s %s, input %g .. %g", s.ID, kind, xs[0], xs[len(xs)-1])),
			)
			fmt.Fprintln(cmd.OutOrStdout(), graph)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "position", "range to plot (position, angle)")
	return cmd
}

func (a *app) svgCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "svg [file] [setting]",
		Short: "render a setting's vertex chain as svg",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}
			s, err := a.setting(doc, args[1])
			if err != nil {
				return err
			}

			svg := export.ChainToSVG(s, a.cfg.SVG.Width, a.cfg.SVG.Height, a.cfg.SVG.Stroke)
			if svg == "" {
				return fmt.Errorf("setting %s has no vertices", s.ID)
			}
			if output == "" {
				fmt.Fprintln(cmd.OutOrStdout(), svg)
				return nil
			}
			if err := os.WriteFile(output, []byte(svg+"\n"), 0644); err != nil {
				return err
			}
			a.log.Info("svg written", "path", output)
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func (a *app) auditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "audit [file]",
		Short: "report inconsistencies the decoder accepts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}
			findings := analysis.Audit(doc)
			out := cmd.OutOrStdout()
			if len(findings) == 0 {
				fmt.Fprintln(out, "no findings")
				return nil
			}

			warnings := 0
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SEVERITY\tPATH\tMESSAGE")
			for _, f := range findings {
				if f.Severity == analysis.SeverityWarning {
					warnings++
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", f.Severity, f.Path, f.Message)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if a.cfg.Strict && warnings > 0 {
				return fmt.Errorf("%d warnings", warnings)
			}
			return nil
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [dir]",
		Short: "summarize every document in a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			entries, err := a.store(dir).LoadAll(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(out, "no documents matching %s in %s\n", a.cfg.Pattern, dir)
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tVER\tSETTINGS\tIN\tOUT\tVERT\tNORM\tSTATUS")
			for _, e := range entries {
				if e.Err != nil {
					fmt.Fprintf(w, "%s\t-\t-\t-\t-\t-\t-\t%s\n", e.Name, errorKind(e.Err))
					continue
				}
				sum := storage.Summarize(e.Name, e.Doc)
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%d\tok\n",
					sum.Name, sum.Version, sum.Settings, sum.Inputs, sum.Outputs, sum.Vertices, sum.Normalized)
			}
			return w.Flush()
		},
	}
}

func (a *app) browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [file]",
		Short: "browse settings interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}
			return tui.Run(doc)
		},
	}
}

func (a *app) profilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "list configuration profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range config.ListProfiles() {
				cfg := config.GetProfile(name)
				fmt.Fprintf(out, "  %-8s strict=%t format=%s indent=%d workers=%d\n",
					name, cfg.Strict, cfg.Format, cfg.Indent, cfg.Workers)
			}
			return nil
		},
	}
}

func (a *app) schemaCmd() *cobra.Command {
	var openapi bool
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "print the json key to field mapping",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if openapi {
				data, err := json.MarshalIndent(physics3.DocumentSchema(a.cfg.Strict), "", "  ")
				if err != nil {
					return err
				}
				return writeOut(cmd.OutOrStdout(), append(data, '\n'))
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "RECORD\tKEY\tFIELD\tREQUIRED")
			for _, f := range physics3.Schema() {
				req := ""
				if f.Required {
					req = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Record, f.Key, f.Name, req)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&openapi, "openapi", false, "print the validation schema as OpenAPI json")
	return cmd
}
