//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/doc-summarizer/internal/bootstrap"
	"github.com/yanqian/doc-summarizer/internal/domain/summarizer"
	"github.com/yanqian/doc-summarizer/internal/infra/config"
	"github.com/yanqian/doc-summarizer/internal/infra/extract"
	"github.com/yanqian/doc-summarizer/internal/infra/langdetect"
	"github.com/yanqian/doc-summarizer/internal/infra/upload"
	httpiface "github.com/yanqian/doc-summarizer/internal/interface/http"
	"github.com/yanqian/doc-summarizer/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideSummaryConfig,
		provideGenerator,
		provideRecorder,
		provideModelInvoker,
		provideStager,
		extract.NewExtractor,
		langdetect.NewDetector,
		summarizer.NewService,
		wire.Bind(new(summarizer.Extractor), new(*extract.Extractor)),
		wire.Bind(new(summarizer.Stager), new(*upload.DiskStager)),
		wire.Bind(new(summarizer.LanguageDetector), new(*langdetect.Detector)),
		provideSummaryHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
