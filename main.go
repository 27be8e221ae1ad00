package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"baureport/internal/budget"
	"baureport/internal/export"
	"baureport/internal/loader"
	"baureport/internal/observability/metrics"
	"baureport/internal/report"
	"baureport/internal/takeoff"
	"baureport/internal/taxonomy"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	metrics.Init()
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
		go func() {
			logger.Printf("metrics listening on %s", cfg.MetricsAddr)
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				logger.Printf("metrics listener error: %v", err)
			}
		}()
	}

	catalog, err := taxonomy.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		logger.Fatalf("catalog error: %v", err)
	}

	table := budget.Table{}
	if cfg.BudgetPath != "" {
		table, err = budget.LoadTable(cfg.BudgetPath)
		if err != nil {
			logger.Fatalf("budget table error: %v", err)
		}
	}

	records, stats, err := loader.ReadFile(cfg.WorkbookPath)
	if err != nil {
		logger.Fatalf("workbook load error: %v", err)
	}
	logger.Printf("loaded %d records from %s (%d empty rows skipped)", stats.Loaded, cfg.WorkbookPath, stats.Skipped)

	service, err := report.NewService(catalog, table, report.WithMeta(report.ProjectMeta{
		Name:      cfg.ProjectName,
		Number:    cfg.ProjectNumber,
		Client:    cfg.ProjectClient,
		Architect: cfg.ProjectArchitect,
	}))
	if err != nil {
		logger.Fatalf("report service error: %v", err)
	}

	filter := takeoff.FilterSet{
		Discipline:  cfg.Discipline,
		SourceModel: cfg.SourceModel,
		Floor:       cfg.Floor,
		Type:        cfg.Type,
	}
	result := service.Compute(records, filter)
	logger.Printf("report computed: %d records, %d component groups, %d disciplines", result.RecordCount, len(result.ByComponentCode), len(result.ByDiscipline))
	for _, row := range result.BudgetRows {
		if row.IsTotalRow {
			logger.Printf("total actual %.2f against planned %.2f", row.Actual, *row.Planned)
		}
	}
	if len(result.Disagreements) > 0 {
		logger.Printf("%d records where code and name classification disagree", len(result.Disagreements))
	}

	if cfg.OutXLSX != "" {
		writeExport(logger, "xlsx", cfg.OutXLSX, func() ([]byte, error) { return export.BuildReportXLSX(result) })
	}
	if cfg.OutPDF != "" {
		writeExport(logger, "pdf", cfg.OutPDF, func() ([]byte, error) { return export.BuildReportPDF(result) })
	}

	if cfg.MetricsAddr != "" {
		logger.Printf("report done, keeping metrics listener alive")
		select {}
	}
}

func writeExport(logger *log.Logger, format, path string, build func() ([]byte, error)) {
	start := time.Now()
	data, err := build()
	if err != nil {
		metrics.ObserveExport(format, "error", time.Since(start))
		logger.Fatalf("%s export error: %v", format, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		metrics.ObserveExport(format, "error", time.Since(start))
		logger.Fatalf("%s write error: %v", format, err)
	}
	metrics.ObserveExport(format, "success", time.Since(start))
	logger.Printf("%s report written to %s", format, path)
}

type config struct {
	WorkbookPath string
	CatalogPath  string
	BudgetPath   string

	Discipline  string
	SourceModel string
	Floor       string
	Type        string

	OutXLSX     string
	OutPDF      string
	MetricsAddr string

	ProjectName      string
	ProjectNumber    string
	ProjectClient    string
	ProjectArchitect string
}

func loadConfig() config {
	cfg := config{
		WorkbookPath:     getenvDefault("WORKBOOK_PATH", ""),
		CatalogPath:      getenvDefault("CATALOG_PATH", ""),
		BudgetPath:       getenvDefault("BUDGET_PATH", ""),
		Discipline:       getenvDefault("DISCIPLINE", taxonomy.FilterAll),
		SourceModel:      getenvDefault("SOURCE_MODEL", ""),
		Floor:            getenvDefault("FLOOR", ""),
		Type:             getenvDefault("TYPE", ""),
		OutXLSX:          getenvDefault("OUT_XLSX", "report.xlsx"),
		OutPDF:           getenvDefault("OUT_PDF", ""),
		MetricsAddr:      getenvDefault("METRICS_ADDR", ""),
		ProjectName:      getenvDefault("PROJECT_NAME", ""),
		ProjectNumber:    getenvDefault("PROJECT_NUMBER", ""),
		ProjectClient:    getenvDefault("PROJECT_CLIENT", ""),
		ProjectArchitect: getenvDefault("PROJECT_ARCHITECT", ""),
	}
	if cfg.WorkbookPath == "" {
		log.Fatal("WORKBOOK_PATH is required")
	}
	return cfg
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
