package main

import (
	"log/slog"

	"github.com/yanqian/doc-summarizer/internal/domain/summarizer"
	"github.com/yanqian/doc-summarizer/internal/infra/config"
	"github.com/yanqian/doc-summarizer/internal/infra/llm"
	"github.com/yanqian/doc-summarizer/internal/infra/telemetry"
	"github.com/yanqian/doc-summarizer/internal/infra/upload"
	httpiface "github.com/yanqian/doc-summarizer/internal/interface/http"
)

func provideSummaryConfig(cfg *config.Config) summarizer.Config {
	return cfg.SummarizerConfig()
}

func provideGenerator(cfg *config.Config, logger *slog.Logger) (summarizer.Generator, error) {
	return llm.NewGenerator(cfg.LLM, logger)
}

func provideRecorder(cfg *config.Config) summarizer.Recorder {
	if !cfg.Metrics.Enabled {
		return summarizer.NopRecorder{}
	}
	return telemetry.NewRecorder()
}

func provideModelInvoker(cfg summarizer.Config, generator summarizer.Generator, recorder summarizer.Recorder, logger *slog.Logger) *summarizer.ModelInvoker {
	invoker := summarizer.NewModelInvoker(generator, cfg.ModelOverride, cfg.Candidates, recorder, logger)
	logger.Info("model candidates configured", "candidates", invoker.Candidates())
	return invoker
}

func provideStager(cfg *config.Config, logger *slog.Logger) (*upload.DiskStager, error) {
	return upload.NewDiskStager(cfg.Upload.TempDir, cfg.Upload.MaxBytes, logger)
}

func provideSummaryHandler(svc summarizer.Service, cfg *config.Config, logger *slog.Logger) *httpiface.SummaryHandler {
	return httpiface.NewSummaryHandler(svc, cfg.Upload.MaxBytes, logger)
}
