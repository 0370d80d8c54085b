package app

import (
	"context"
	"fmt"

	"dockergen/internal/gateway/config"
	"dockergen/internal/inspector"
	"dockergen/internal/llm"

	"github.com/sirupsen/logrus"
)

func newLLMClient(ctx context.Context, cfg config.LLMConfig, log logrus.FieldLogger, opts Options) (llm.Client, error) {
	var inner llm.Client
	if opts.Fake {
		inner = llm.NewFakeClient()
	} else {
		gem, err := llm.NewGeminiClient(ctx, llm.GeminiConfig{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to init gemini client: %w", err)
		}
		inner = gem
	}
	log.WithFields(logrus.Fields{"backend": inner.Name(), "max_retries": cfg.MaxRetries}).Info("llm backend ready")
	return llm.Wrap(inner,
		llm.WithLogging(log),
		llm.Retry(cfg.MaxRetries, cfg.RetryBaseDelay),
		llm.RateLimit(cfg.RPS, cfg.Burst),
	), nil
}

func newInspector(cfg *config.Config, log logrus.FieldLogger) (*inspector.Inspector, error) {
	opts := []inspector.Option{
		inspector.WithHTTPFetcher(inspector.NewHTTPFetcher(inspector.HTTPConfig{
			Timeout:  cfg.Fetch.Timeout,
			Token:    cfg.Fetch.GitHubToken,
			MaxBytes: cfg.Fetch.MaxBytes,
		})),
		inspector.WithDefaultBranch(cfg.Fetch.DefaultBranch),
		inspector.WithMaxExtractBytes(cfg.Fetch.MaxExtractBytes),
		inspector.WithLogger(log),
	}
	if cfg.Archive.CanUseS3() {
		s3, err := inspector.NewS3Fetcher(inspector.S3Config{
			Endpoint:  cfg.Archive.Endpoint,
			Region:    cfg.Archive.Region,
			AccessKey: cfg.Archive.AccessKey,
			SecretKey: cfg.Archive.SecretKey,
			UseSSL:    cfg.Archive.UseSSL,
			MaxBytes:  cfg.Fetch.MaxBytes,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize archive s3 fetcher: %w", err)
		}
		log.WithField("endpoint", cfg.Archive.Endpoint).Info("archive store: s3")
		opts = append(opts, inspector.WithS3Fetcher(s3))
	}
	return inspector.New(opts...), nil
}
