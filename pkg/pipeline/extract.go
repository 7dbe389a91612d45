package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/laneflow/laneflow/pkg/extract"
	"github.com/laneflow/laneflow/pkg/process"
)

// Extractor produces a process graph from a markdown transcript.
// The default is the chat-completion extractor; tests and embedders can
// inject their own.
type Extractor interface {
	ExtractWithRetry(ctx context.Context, markdown string, attempts int) (*extract.Result, error)
}

// Extract produces a process graph from the configured source.
//
// Structured documents (.json/.yaml) are read directly; everything else
// is treated as a markdown transcript, preprocessed, and sent through
// the extractor. Validation findings are appended to the result's
// warnings either way.
func Extract(ctx context.Context, opts Options) (*extract.Result, error) {
	if opts.Mode() == ModeFile {
		return extract.FileExtractor{}.ExtractFile(opts.File)
	}

	markdown := opts.Markdown
	if markdown == "" {
		data, err := os.ReadFile(opts.File)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", opts.File, err)
		}
		markdown = string(data)
	}
	markdown = extract.Preprocess(markdown)

	ex := opts.Extractor
	if ex == nil {
		llm, err := newLLMExtractor(opts)
		if err != nil {
			return nil, err
		}
		ex = llm
	}

	res, err := ex.ExtractWithRetry(ctx, markdown, opts.Attempts)
	if err != nil {
		return nil, err
	}
	if res.Process == nil {
		return nil, fmt.Errorf("extractor returned no process")
	}

	v := process.Validate(res.Process)
	res.Warnings = append(res.Warnings, v.Warnings...)
	res.SourceFile = opts.File
	return res, nil
}

// newLLMExtractor builds the default extractor from pipeline options.
// The API key falls back to the environment so callers only thread it
// through explicitly when they manage secrets themselves.
func newLLMExtractor(opts Options) (*extract.LLMExtractor, error) {
	key := opts.APIKey
	if key == "" {
		key = os.Getenv("OPENAI_API_KEY")
	}
	return extract.NewLLMExtractor(extract.LLMOptions{
		APIKey:      key,
		Model:       opts.Model,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
		Logger:      opts.Logger,
	})
}
