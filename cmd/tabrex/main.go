// Package main provides the CLI entry point for tabrex.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hgadco/tabrex/pkg/report"
	"github.com/hgadco/tabrex/pkg/report/assets"
	"github.com/hgadco/tabrex/pkg/report/models"
	"github.com/hgadco/tabrex/pkg/report/source"
)

var (
	outputPath   string
	format       string
	configPath   string
	title        string
	sectionTitle string
	summaryPath  string
	bannerPath   string
	inputSheet   string
	dropColumns  []string
	filterExpr   string
	verbose      bool
)

// config mirrors the optional YAML configuration file.
type config struct {
	Banner    string   `yaml:"banner"`
	Fonts     []string `yaml:"fonts"`
	LinkLabel string   `yaml:"link_label"`
	Title     string   `yaml:"title"`
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "tabrex [input]",
		Short: "Export tabular data as styled XLSX, PDF, or CSV",
		Long: `tabrex reads a tabular result set (CSV, JSON, or XLSX) and renders it
into a styled spreadsheet, a paginated landscape PDF with Arabic text
support, or flat UTF-8 CSV.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: derived from input name)")
	rootCmd.Flags().StringVarP(&format, "format", "f", "xlsx", "Output format: xlsx, pdf, csv")
	rootCmd.Flags().StringVar(&configPath, "config", "", "YAML config file (banner, fonts, link label, title)")
	rootCmd.Flags().StringVar(&title, "title", "", "Document title line (PDF)")
	rootCmd.Flags().StringVar(&sectionTitle, "section-title", "", "Section title (default: input file base name)")
	rootCmd.Flags().StringVar(&summaryPath, "summary", "", "Optional summary table rendered as the first section")
	rootCmd.Flags().StringVar(&bannerPath, "banner", "", "Banner image path")
	rootCmd.Flags().StringVar(&inputSheet, "sheet", "", "Sheet name for xlsx input (default: first sheet)")
	rootCmd.Flags().StringSliceVar(&dropColumns, "drop", nil, "Technical columns to drop before export")
	rootCmd.Flags().StringVar(&filterExpr, "filter", "", "Row filter as column=term (case-insensitive contains)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	inputPath := args[0]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if title == "" {
		title = cfg.Title
	}
	if bannerPath == "" {
		bannerPath = cfg.Banner
	}

	table, err := loadTable(inputPath, inputSheet)
	if err != nil {
		return fmt.Errorf("load input: %w", err)
	}
	if len(dropColumns) > 0 {
		table = table.Drop(dropColumns...)
	}
	if filterExpr != "" {
		col, term, ok := strings.Cut(filterExpr, "=")
		if !ok {
			return fmt.Errorf("invalid filter %q (want column=term)", filterExpr)
		}
		table = table.FilterContains(col, term)
	}

	if sectionTitle == "" {
		sectionTitle = baseName(inputPath)
	}
	sections := []models.Section{{Title: sectionTitle, Table: table}}
	if summaryPath != "" {
		summary, err := loadTable(summaryPath, "")
		if err != nil {
			return fmt.Errorf("load summary: %w", err)
		}
		sections = append([]models.Section{{Title: baseName(summaryPath), Table: summary}}, sections...)
	}

	exporter := report.Exporter{
		Fonts:     assets.NewFontRegistry(cfg.Fonts...),
		LinkLabel: cfg.LinkLabel,
		Logger:    logger,
	}
	if bannerPath != "" {
		banner, err := assets.LoadBanner(bannerPath)
		if err != nil {
			logger.Warn().Err(err).Msg("banner unavailable, continuing without it")
		} else {
			exporter.Banner = banner
		}
	}

	name := baseName(inputPath)
	var doc *models.ExportDocument
	switch format {
	case "xlsx":
		doc, err = exporter.Excel(name, sections...)
	case "pdf":
		doc, err = exporter.PDF(name, title, sections...)
	case "csv":
		doc, err = exporter.CSV(name, table)
	default:
		return fmt.Errorf("invalid format: %s (must be xlsx, pdf, or csv)", format)
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	out := outputPath
	if out == "" {
		out = doc.Filename
	}
	if err := os.WriteFile(out, doc.Data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Info().Str("output", out).Int("bytes", len(doc.Data)).Msg("export written")
	return nil
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func loadConfig(path string) (config, error) {
	var cfg config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func loadTable(path, sheet string) (*models.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return source.ReadCSV(f)
	case ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return source.ReadJSON(f)
	case ".xlsx":
		return source.ReadXLSX(path, sheet)
	default:
		return nil, fmt.Errorf("unsupported input format: %s", path)
	}
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
