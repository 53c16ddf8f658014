package research

import (
	"fmt"

	"compass/compass/config"
	"compass/compass/services/llm"
	"compass/compass/services/scraper"
	"compass/compass/services/search"
	"compass/compass/services/summarizer"
)

// NewFromConfig wires the providers selected by cfg into a Pipeline. The
// returned close func releases the fetcher (a headless browser, if chosen).
func NewFromConfig(cfg config.Config) (*Pipeline, func() error, error) {
	completer, err := llm.NewFromConfig(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("llm: %w", err)
	}
	sc, err := scraper.NewFromConfig(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("scraper: %w", err)
	}

	opts := summarizer.DefaultOptions(cfg.LLMModel)
	opts.Delay = cfg.ScrapeDelay

	company, news := search.NewFromConfig(cfg)
	return NewPipeline(company, news, summarizer.New(sc, completer, opts)), sc.Close, nil
}
