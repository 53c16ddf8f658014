// Package summarizer scrapes search hits one at a time and asks a language
// model for a company overview of the combined text.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"compass/compass/services/llm"
	"compass/compass/utils/logging"
	"compass/compass/utils/types"

	"go.uber.org/zap"
)

const (
	// CorpusBudget is the character cap on text sent to the model.
	CorpusBudget = 1000

	SystemPrompt       = "You are a helpful assistant."
	userPromptTemplate = "Summarize the following text to give an overview about the given company: %s"

	DefaultMaxTokens   = 300
	DefaultTemperature = 0.7
	DefaultDelay       = time.Second
)

// ErrSummarization wraps every failure of the model call.
var ErrSummarization = errors.New("summarization failed")

// PageScraper is the best-effort extractor; it never fails.
type PageScraper interface {
	Extract(ctx context.Context, targetURL string) types.ScrapedPage
}

// ProgressSink receives the fraction of pages fetched so far.
type ProgressSink interface {
	Progress(fraction float64)
}

// ProgressFunc adapts a plain function to ProgressSink.
type ProgressFunc func(fraction float64)

func (f ProgressFunc) Progress(fraction float64) { f(fraction) }

type Options struct {
	Model       string
	Delay       time.Duration
	MaxTokens   int
	Temperature float64
}

func DefaultOptions(model string) Options {
	return Options{
		Model:       model,
		Delay:       DefaultDelay,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
	}
}

type Summarizer struct {
	scraper PageScraper
	llm     llm.Completer
	opts    Options
	sleep   func(ctx context.Context, d time.Duration) error
}

func New(scraper PageScraper, completer llm.Completer, opts Options) *Summarizer {
	return &Summarizer{scraper: scraper, llm: completer, opts: opts, sleep: sleepCtx}
}

// Digest is the summary together with the pages it was built from.
type Digest struct {
	Text   string
	Pages  []types.ScrapedPage
	Corpus string
}

// Summarize fetches every result page in order, pausing opts.Delay between
// fetches and reporting (i+1)/total after each one, then makes exactly one
// model call over the combined corpus.
func (s *Summarizer) Summarize(ctx context.Context, results []types.SearchResult, sink ProgressSink) (*Digest, error) {
	defer logging.LogDuration(ctx, "summarizer_summarize")()

	pages := make([]types.ScrapedPage, 0, len(results))
	texts := make([]string, 0, len(results))
	total := len(results)

	for i, result := range results {
		if i > 0 && s.opts.Delay > 0 {
			if err := s.sleep(ctx, s.opts.Delay); err != nil {
				return nil, err
			}
		}
		page := s.scraper.Extract(ctx, result.URL)
		pages = append(pages, page)
		if page.BodyText != "" {
			texts = append(texts, page.BodyText)
		}
		if sink != nil {
			sink.Progress(float64(i+1) / float64(total))
		}
	}

	corpus := BuildCorpus(texts, CorpusBudget)
	logging.AppLogger.Info("corpus built",
		zap.String("trace_id", logging.TraceID(ctx)),
		zap.Int("pages", total),
		zap.Int("pages_with_text", len(texts)),
		zap.Int("corpus_chars", len([]rune(corpus))),
	)

	text, err := s.llm.Run(ctx, llm.ChatRequest{
		Model: s.opts.Model,
		Messages: []llm.Message{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: fmt.Sprintf(userPromptTemplate, corpus)},
		},
		MaxTokens:   s.opts.MaxTokens,
		Temperature: s.opts.Temperature,
	})
	if err != nil {
		return &Digest{Pages: pages, Corpus: corpus}, fmt.Errorf("%w: %v", ErrSummarization, err)
	}
	return &Digest{Text: text, Pages: pages, Corpus: corpus}, nil
}

// BuildCorpus joins the non-empty texts with single spaces and cuts the
// result to at most budget characters.
func BuildCorpus(texts []string, budget int) string {
	nonEmpty := make([]string, 0, len(texts))
	for _, t := range texts {
		if t != "" {
			nonEmpty = append(nonEmpty, t)
		}
	}
	combined := strings.Join(nonEmpty, " ")
	if budget < 0 {
		return combined
	}
	runes := []rune(combined)
	if len(runes) > budget {
		return string(runes[:budget])
	}
	return combined
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
