package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yanqian/doc-summarizer/internal/domain/summarizer"
	"github.com/yanqian/doc-summarizer/internal/infra/config"
	"github.com/yanqian/doc-summarizer/internal/infra/extract"
	"github.com/yanqian/doc-summarizer/internal/infra/langdetect"
	"github.com/yanqian/doc-summarizer/internal/infra/llm"
	"github.com/yanqian/doc-summarizer/internal/infra/upload"
	apperrors "github.com/yanqian/doc-summarizer/pkg/errors"
	"github.com/yanqian/doc-summarizer/pkg/logger"
)

type serviceFactory func(cfg *config.Config, logger *slog.Logger) (summarizer.Service, error)

func newCLI(factory serviceFactory, out io.Writer) *cli.App {
	return &cli.App{
		Name:      "summarize",
		Usage:     "summarize a document or text with the configured LLM provider",
		UsageText: "summarize (--file PATH | --text TEXT) [--style concise|detailed|bullets] [--language NAME|auto]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "PDF, DOCX or TXT file to summarize"},
			&cli.StringFlag{Name: "text", Aliases: []string{"t"}, Usage: "raw text to summarize"},
			&cli.StringFlag{Name: "style", Value: string(summarizer.StyleConcise), Usage: "concise, detailed or bullets"},
			&cli.StringFlag{Name: "language", Usage: "output language, or auto to detect it"},
			&cli.IntFlag{Name: "max-chunk-tokens", Usage: "override the per chunk token budget"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
		},
		Action: func(c *cli.Context) error {
			return summarizeAction(c, factory, out)
		},
		// main owns the exit code.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func summarizeAction(c *cli.Context, factory serviceFactory, out io.Writer) error {
	log := logger.NewWithWriter(os.Stderr)
	if c.Bool("quiet") {
		log = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	}

	file, text := strings.TrimSpace(c.String("file")), c.String("text")
	if (file == "") == (strings.TrimSpace(text) == "") {
		return cli.Exit("exactly one of --file or --text is required", 2)
	}

	cfg, err := config.Load()
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if c.IsSet("max-chunk-tokens") {
		if c.Int("max-chunk-tokens") <= 0 {
			return cli.Exit("--max-chunk-tokens must be positive", 2)
		}
		cfg.Summary.MaxChunkTokens = c.Int("max-chunk-tokens")
	}

	svc, err := factory(cfg, log)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	req := summarizer.Request{
		SourceType: summarizer.SourceText,
		Text:       text,
		Style:      summarizer.ParseStyle(c.String("style")),
		Language:   c.String("language"),
	}
	if file != "" {
		handle, err := os.Open(file)
		if err != nil {
			return cli.Exit(fmt.Sprintf("open %s: %v", file, err), 2)
		}
		defer handle.Close()
		info, err := handle.Stat()
		if err != nil {
			return cli.Exit(fmt.Sprintf("stat %s: %v", file, err), 2)
		}
		req.SourceType = summarizer.SourceFile
		req.File = &summarizer.Upload{Filename: filepath.Base(file), Size: info.Size(), Content: handle}
	}

	resp, err := svc.Summarize(c.Context, req)
	if err != nil {
		return cli.Exit(describeError(err), 1)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(resp)
}

func describeError(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return fmt.Sprintf("%s: %s", appErr.Code, err.Error())
	}
	return err.Error()
}

func buildService(cfg *config.Config, log *slog.Logger) (summarizer.Service, error) {
	generator, err := llm.NewGenerator(cfg.LLM, log)
	if err != nil {
		return nil, err
	}
	stager, err := upload.NewDiskStager(cfg.Upload.TempDir, cfg.Upload.MaxBytes, log)
	if err != nil {
		return nil, err
	}
	summaryCfg := cfg.SummarizerConfig()
	recorder := summarizer.NopRecorder{}
	invoker := summarizer.NewModelInvoker(generator, summaryCfg.ModelOverride, summaryCfg.Candidates, recorder, log)
	return summarizer.NewService(summaryCfg, invoker, extract.NewExtractor(log), stager, langdetect.NewDetector(), recorder, log), nil
}
