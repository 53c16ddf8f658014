package controllers

import (
	"context"
	"errors"
	"testing"

	"compass/compass/services/research"
	"compass/compass/utils/types"
)

type scriptedResearcher struct {
	calls int
}

func (s *scriptedResearcher) Run(_ context.Context, company string, rep research.Reporter) (*types.ResearchReport, error) {
	s.calls++
	if company == "" {
		rep.Status("Please enter a company name.")
		return nil, research.ErrEmptyCompany
	}
	defer rep.Done()
	rep.Status("Searching information for " + company + "...")
	rep.Progress(1)
	rep.Summary("Acme overview")
	return &types.ResearchReport{Company: company, Summary: "Acme overview"}, nil
}

func TestResearch(t *testing.T) {
	ctrl := NewResearchController(&scriptedResearcher{})
	report, err := ctrl.Research(context.Background(), types.ResearchRequest{Company: "Acme"})
	if err != nil {
		t.Fatalf("Research failed: %v", err)
	}
	if report.Summary != "Acme overview" {
		t.Errorf("unexpected report %+v", report)
	}
}

func TestResearchStream(t *testing.T) {
	ctrl := NewResearchController(&scriptedResearcher{})
	events, errCh := ctrl.ResearchStream(context.Background(), types.ResearchRequest{Company: "Acme"})

	var got []types.ResearchEvent
	for ev := range events {
		got = append(got, ev)
	}
	if err := <-errCh; err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 events, got %+v", got)
	}
	if got[len(got)-1].Type != types.EventDone {
		t.Errorf("expected stream to end with done, got %s", got[len(got)-1].Type)
	}
}

func TestResearchStreamEmptyCompany(t *testing.T) {
	ctrl := NewResearchController(&scriptedResearcher{})
	events, errCh := ctrl.ResearchStream(context.Background(), types.ResearchRequest{})

	var got []types.ResearchEvent
	for ev := range events {
		got = append(got, ev)
	}
	if err := <-errCh; !errors.Is(err, research.ErrEmptyCompany) {
		t.Fatalf("expected ErrEmptyCompany, got %v", err)
	}
	if len(got) != 2 || got[0].Message != "Please enter a company name." || got[1].Type != types.EventDone {
		t.Errorf("unexpected events %+v", got)
	}
}
