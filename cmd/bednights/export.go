package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/bednights/internal/cli"
	"github.com/Veraticus/bednights/internal/config"
	"github.com/Veraticus/bednights/internal/export"
	"github.com/Veraticus/bednights/internal/model"
	"github.com/Veraticus/bednights/internal/service"
	"github.com/Veraticus/bednights/internal/sheets"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <entity>",
		Short: "Export a filtered list or the bed-night report",
		Long: `Export the filtered, sorted records of an entity to an Excel workbook or
Google Sheets. Exporting the bed-night report adds a summary tab and one tab
per series.`,
		Example: `  bednights export report --start-date 2024-01-01 --xlsx q1.xlsx
  bednights export properties --sheets`,
		Args: cobra.ExactArgs(1),
		RunE: runExport,
	}

	addFilterFlags(cmd)
	cmd.Flags().String("xlsx", "", "Write an Excel workbook to this path")
	cmd.Flags().Bool("sheets", false, "Publish to Google Sheets")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	xlsxPath, _ := cmd.Flags().GetString("xlsx")
	toSheets, _ := cmd.Flags().GetBool("sheets")
	if xlsxPath == "" && !toSheets {
		return fmt.Errorf("choose a destination with --xlsx or --sheets")
	}

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx, stop := handler.HandleInterrupts(cmd.Context(), "Export")
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	state, err := a.openPage(ctx, cmd.ErrOrStderr(), args[0])
	if err != nil {
		return err
	}
	if err := applyFilterFlags(cmd, cmd.ErrOrStderr(), state); err != nil {
		return err
	}

	tabs := buildTabs(state, time.Now())
	out := cmd.OutOrStdout()

	if xlsxPath != "" {
		if err := writeWorkbook(config.ExpandPath(xlsxPath), tabs); err != nil {
			return err
		}
		fmt.Fprintln(out, cli.FormatSuccess("Wrote "+xlsxPath))
	}

	if toSheets {
		sheetsCfg, err := config.LoadSheetsConfig(viper.GetViper())
		if err != nil {
			return fmt.Errorf("google sheets: %w", err)
		}
		writer, err := sheets.NewWriter(ctx, *sheetsCfg, slog.Default())
		if err != nil {
			return fmt.Errorf("failed to create sheets writer: %w", err)
		}
		url, err := publish(ctx, out, writer, tabs)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, cli.FormatSuccess("Published to "+url))
	}
	return nil
}

// buildTabs turns the page's current view into export tabs.
func buildTabs(state *service.PageState, now time.Time) []export.Tab {
	view := state.View()
	if state.Page.Entity != model.EntityBedNightReport {
		return []export.Tab{export.TableTab(state.Page, view.Sorted)}
	}
	tabs := export.ReportTabs(state.Report(), state.Filters(), now)
	records := export.TableTab(state.Page, view.Sorted)
	records.Name = "Records"
	return append(tabs, records)
}

func writeWorkbook(path string, tabs []export.Tab) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	return export.WriteXLSX(f, tabs)
}

// publish writes tabs with w, showing a one-step-per-tab progress bar.
func publish(ctx context.Context, out io.Writer, w service.ReportWriter, tabs []export.Tab) (string, error) {
	names := make([]string, len(tabs))
	rows := 0
	for i, t := range tabs {
		names[i] = t.Name
		rows += t.Len()
	}
	bar := cli.NewProgressBar(out, 1, fmt.Sprintf("Publishing %d rows (%s)...", rows, strings.Join(names, ", ")))

	url, err := w.Write(ctx, tabs)
	if err != nil {
		return "", fmt.Errorf("failed to publish: %w", err)
	}
	cli.Step(bar, "")
	return url, nil
}
