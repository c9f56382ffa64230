package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"StockDash/internal/chart"
	"StockDash/internal/model"
	"StockDash/internal/render"
	"StockDash/internal/report"
	"StockDash/internal/scheduler"
	"StockDash/internal/server"
)

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			dash, err := a.load()
			if err != nil {
				return err
			}

			srv := server.New(dash, server.Options{
				Addr:      a.cfg.Server.Addr,
				RateLimit: a.cfg.Server.RateLimit,
				Burst:     a.cfg.Server.Burst,
				Width:     a.cfg.Render.Width,
				Height:    a.cfg.Render.Height,
			})

			ctx, stop := signalContext()
			defer stop()
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	return cmd
}

func summaryCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print summary statistics of the numeric columns",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			dash, err := a.load()
			if err != nil {
				return err
			}
			sum, err := dash.Summary()
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(sum)
			}
			fmt.Print(report.FormatSummary("Summary Statistics", sum))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func overviewCmd() *cobra.Command {
	var (
		columns string
		rows    int
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Print the dataset restricted to selected columns",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			dash, err := a.load()
			if err != nil {
				return err
			}

			selected := dash.DefaultColumns()
			if cmd.Flags().Changed("columns") {
				selected = splitColumns(columns)
			}
			ov, err := dash.Overview(selected)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(ov)
			}
			fmt.Print(report.FormatOverview(ov, rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&columns, "columns", "", "Comma-separated columns to show; empty selects none")
	cmd.Flags().IntVar(&rows, "rows", 20, "Rows to print, 0 for all")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func splitColumns(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func chartsCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "charts",
		Short: "Print chart specifications as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			dash, err := a.load()
			if err != nil {
				return err
			}
			if kind == "" {
				specs, err := dash.Charts()
				if err != nil {
					return err
				}
				return writeJSON(specs)
			}
			k, err := chart.ParseKind(kind)
			if err != nil {
				return err
			}
			spec, err := dash.Chart(k)
			if err != nil {
				return err
			}
			return writeJSON(spec)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "Single chart kind to print")
	return cmd
}

func renderCmd() *cobra.Command {
	var (
		kind string
		out  string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render charts to PNG files",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			dash, err := a.load()
			if err != nil {
				return err
			}

			kinds := chart.DefaultKinds
			if kind != "" {
				k, err := chart.ParseKind(kind)
				if err != nil {
					return err
				}
				kinds = []model.ChartKind{k}
			}
			if err := os.MkdirAll(out, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}

			for _, k := range kinds {
				if !render.Supported(k) {
					log.Warn().Str("kind", string(k)).Msg("skipping chart with no image rendering")
					continue
				}
				spec, err := dash.Chart(k)
				if err != nil {
					return err
				}
				path := filepath.Join(out, string(k)+".png")
				if err := renderFile(spec, path, a.cfg.Render.Width, a.cfg.Render.Height); err != nil {
					return err
				}
				log.Info().Str("kind", string(k)).Str("path", path).Msg("chart rendered")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "Single chart kind to render")
	cmd.Flags().StringVar(&out, "out", "charts", "Output directory")
	return cmd
}

func renderFile(spec model.ChartSpec, path string, width, height int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.PNG(spec, f, width, height); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func watchCmd() *cobra.Command {
	var cronSpec string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reload the CSV on a schedule and print a digest when it changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			if cronSpec != "" {
				a.cfg.Watch.Cron = cronSpec
			}

			sched := scheduler.NewScheduler(a.collector, a.generator, a.settings, os.Stdout)
			if err := sched.Register(a.cfg.Watch.Cron); err != nil {
				return err
			}
			if err := sched.RunNow(); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			ctx, stop := signalContext()
			defer stop()
			<-ctx.Done()
			log.Info().Msg("shutdown signal received")
			return nil
		},
	}
	cmd.Flags().StringVar(&cronSpec, "cron", "", "Cron schedule with seconds field (overrides config)")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("stockdash version %s\n", versionString)
		},
	}
}
