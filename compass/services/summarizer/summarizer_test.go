package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"compass/compass/services/llm"
	"compass/compass/utils/types"
)

type fakeScraper struct {
	pages   map[string]types.ScrapedPage
	fetched []string
}

func (f *fakeScraper) Extract(_ context.Context, url string) types.ScrapedPage {
	f.fetched = append(f.fetched, url)
	return f.pages[url]
}

type fakeLLM struct {
	calls []llm.ChatRequest
	reply string
	err   error
}

func (f *fakeLLM) Run(_ context.Context, req llm.ChatRequest) (string, error) {
	f.calls = append(f.calls, req)
	return f.reply, f.err
}

func acmeResults(n int) []types.SearchResult {
	results := make([]types.SearchResult, n)
	for i := range results {
		results[i] = types.SearchResult{URL: fmt.Sprintf("https://acme.test/%d", i)}
	}
	return results
}

func newTestSummarizer(sc PageScraper, model llm.Completer) (*Summarizer, *[]time.Duration) {
	var sleeps []time.Duration
	s := New(sc, model, DefaultOptions("gpt-4"))
	s.sleep = func(_ context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		return nil
	}
	return s, &sleeps
}

func TestSummarizeAcmeScenario(t *testing.T) {
	sc := &fakeScraper{pages: map[string]types.ScrapedPage{
		"https://acme.test/0": {BodyText: "Acme makes anvils."},
		"https://acme.test/1": {BodyText: ""},
		"https://acme.test/2": {BodyText: "Founded in 1949."},
		"https://acme.test/3": {BodyText: "HQ in the desert."},
	}}
	model := &fakeLLM{reply: "Acme is a desert equipment maker."}
	s, sleeps := newTestSummarizer(sc, model)

	var progress []float64
	digest, err := s.Summarize(context.Background(), acmeResults(4), ProgressFunc(func(f float64) {
		progress = append(progress, f)
	}))
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if len(sc.fetched) != 4 {
		t.Errorf("expected 4 fetches, got %d", len(sc.fetched))
	}
	if len(*sleeps) != 3 {
		t.Errorf("expected 3 pacing delays between 4 fetches, got %d", len(*sleeps))
	}
	for _, d := range *sleeps {
		if d != time.Second {
			t.Errorf("expected 1s pacing delay, got %v", d)
		}
	}
	if len(model.calls) != 1 {
		t.Fatalf("expected exactly one model call, got %d", len(model.calls))
	}
	if digest.Text != "Acme is a desert equipment maker." {
		t.Errorf("summary not returned verbatim: %q", digest.Text)
	}
	if digest.Corpus != "Acme makes anvils. Founded in 1949. HQ in the desert." {
		t.Errorf("unexpected corpus %q", digest.Corpus)
	}
	if len(digest.Pages) != 4 {
		t.Errorf("expected 4 pages in digest, got %d", len(digest.Pages))
	}

	want := []float64{0.25, 0.5, 0.75, 1.0}
	if len(progress) != len(want) {
		t.Fatalf("expected %d progress updates, got %v", len(want), progress)
	}
	for i := range want {
		if progress[i] != want[i] {
			t.Errorf("progress[%d] = %v, want %v", i, progress[i], want[i])
		}
		if i > 0 && progress[i] < progress[i-1] {
			t.Errorf("progress went backwards: %v", progress)
		}
	}
}

func TestSummarizeRequestShape(t *testing.T) {
	sc := &fakeScraper{pages: map[string]types.ScrapedPage{"https://acme.test/0": {BodyText: "text"}}}
	model := &fakeLLM{reply: "ok"}
	s, _ := newTestSummarizer(sc, model)

	if _, err := s.Summarize(context.Background(), acmeResults(1), nil); err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	req := model.calls[0]
	if req.Model != "gpt-4" || req.MaxTokens != 300 || req.Temperature != 0.7 {
		t.Errorf("unexpected request parameters %+v", req)
	}
	if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[0].Content != SystemPrompt {
		t.Fatalf("unexpected messages %+v", req.Messages)
	}
	wantUser := "Summarize the following text to give an overview about the given company: text"
	if req.Messages[1].Role != "user" || req.Messages[1].Content != wantUser {
		t.Errorf("unexpected user message %q", req.Messages[1].Content)
	}
}

func TestSummarizeLargeCorpusIsTruncated(t *testing.T) {
	big := strings.Repeat("a", 5000)
	sc := &fakeScraper{pages: map[string]types.ScrapedPage{
		"https://acme.test/0": {BodyText: big},
		"https://acme.test/1": {BodyText: big},
	}}
	model := &fakeLLM{reply: "ok"}
	s, _ := newTestSummarizer(sc, model)

	digest, err := s.Summarize(context.Background(), acmeResults(2), nil)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if len([]rune(digest.Corpus)) != CorpusBudget {
		t.Errorf("expected corpus of %d chars, got %d", CorpusBudget, len([]rune(digest.Corpus)))
	}
}

func TestSummarizeModelFailure(t *testing.T) {
	sc := &fakeScraper{pages: map[string]types.ScrapedPage{}}
	model := &fakeLLM{err: errors.New("rate limited")}
	s, _ := newTestSummarizer(sc, model)

	digest, err := s.Summarize(context.Background(), acmeResults(2), nil)
	if !errors.Is(err, ErrSummarization) {
		t.Fatalf("expected ErrSummarization, got %v", err)
	}
	if digest == nil || len(digest.Pages) != 2 {
		t.Errorf("expected scraped pages to survive a model failure, got %+v", digest)
	}
}

func TestSummarizeStopsOnCancel(t *testing.T) {
	sc := &fakeScraper{pages: map[string]types.ScrapedPage{}}
	model := &fakeLLM{reply: "ok"}
	s := New(sc, model, Options{Model: "gpt-4", Delay: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Summarize(ctx, acmeResults(3), nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(sc.fetched) != 1 || len(model.calls) != 0 {
		t.Errorf("expected one fetch and no model call, got %d fetches %d calls", len(sc.fetched), len(model.calls))
	}
}

func TestBuildCorpus(t *testing.T) {
	tests := []struct {
		name   string
		texts  []string
		budget int
		want   string
	}{
		{"joins non-empty", []string{"a", "", "b"}, 1000, "a b"},
		{"empty input", nil, 1000, ""},
		{"truncates", []string{"hello", "world"}, 8, "hello wo"},
		{"multibyte safe", []string{"héllo wörld"}, 7, "héllo w"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildCorpus(tt.texts, tt.budget); got != tt.want {
				t.Errorf("BuildCorpus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildCorpusNeverExceedsBudget(t *testing.T) {
	for n := 0; n < 50; n++ {
		texts := make([]string, n)
		for i := range texts {
			texts[i] = strings.Repeat("x", i*37)
		}
		if got := len([]rune(BuildCorpus(texts, CorpusBudget))); got > CorpusBudget {
			t.Fatalf("corpus of %d chars exceeds budget for %d texts", got, n)
		}
	}
}
