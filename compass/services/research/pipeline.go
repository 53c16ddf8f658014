// Package research runs one company lookup end to end: search, scrape,
// summarize, then news.
package research

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"compass/compass/services/search"
	"compass/compass/services/summarizer"
	"compass/compass/utils/logging"
	"compass/compass/utils/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrEmptyCompany is returned when the name is blank after trimming.
var ErrEmptyCompany = errors.New("company name is empty")

// Summarizer is the scrape-and-summarize step.
type Summarizer interface {
	Summarize(ctx context.Context, results []types.SearchResult, sink summarizer.ProgressSink) (*summarizer.Digest, error)
}

type Pipeline struct {
	company    search.CompanySearcher
	news       search.NewsSearcher
	summarizer Summarizer
	now        func() time.Time
}

func NewPipeline(company search.CompanySearcher, news search.NewsSearcher, s Summarizer) *Pipeline {
	return &Pipeline{company: company, news: news, summarizer: s, now: time.Now}
}

// Run researches one company and reports every stage to rep. The returned
// error is non-nil only for an empty name; search, summary and news
// failures are recorded in the report and shown to the user.
func (p *Pipeline) Run(ctx context.Context, company string, rep Reporter) (*types.ResearchReport, error) {
	if rep == nil {
		rep = NopReporter{}
	}
	name := strings.TrimSpace(company)
	if name == "" {
		rep.Status("Please enter a company name.")
		return nil, ErrEmptyCompany
	}

	runID := uuid.NewString()
	ctx = logging.WithTraceID(ctx, runID)
	defer logging.LogDuration(ctx, "research_run")()
	defer rep.Done()

	report := &types.ResearchReport{
		RunID:     runID,
		Company:   name,
		Results:   []types.SearchResult{},
		News:      []types.NewsItem{},
		StartedAt: p.now(),
	}
	logging.AppLogger.Info("research started", zap.String("trace_id", runID), zap.String("company", name))

	rep.Status(fmt.Sprintf("Searching information for %s...", name))
	results, err := p.company.SearchCompany(ctx, name)
	if err != nil {
		logging.ErrorLogger.Error("company search failed",
			zap.String("trace_id", runID), zap.String("company", name), zap.Error(err))
		report.SearchError = err.Error()
	}
	if len(results) == 0 {
		rep.Status(fmt.Sprintf("No results found for %s", name))
		report.FinishedAt = p.now()
		return report, nil
	}
	report.Results = results

	sink := &monotonic{rep: rep}
	digest, err := p.summarizer.Summarize(ctx, results, sink)
	if digest != nil {
		report.Pages = digest.Pages
	}
	switch {
	case err != nil && ctx.Err() != nil:
		report.FinishedAt = p.now()
		return report, ctx.Err()
	case err != nil:
		logging.ErrorLogger.Error("summarization failed",
			zap.String("trace_id", runID), zap.String("company", name), zap.Error(err))
		report.SummaryError = err.Error()
		rep.Status(fmt.Sprintf("Could not generate a summary for %s: %v", name, err))
	default:
		report.Summary = digest.Text
		rep.Summary(digest.Text)
	}
	rep.Results(results)

	items, err := p.news.SearchNews(ctx, name)
	if err != nil {
		logging.ErrorLogger.Error("news search failed",
			zap.String("trace_id", runID), zap.String("company", name), zap.Error(err))
		report.NewsError = err.Error()
	}
	if len(items) == 0 {
		rep.Status(fmt.Sprintf("No latest news found for %s", name))
	} else {
		report.News = items
		rep.News(items)
	}

	report.FinishedAt = p.now()
	logging.AppLogger.Info("research finished",
		zap.String("trace_id", runID),
		zap.String("company", name),
		zap.Int("results", len(report.Results)),
		zap.Int("news", len(report.News)),
	)
	return report, nil
}
