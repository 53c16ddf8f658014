package jsonutils

import (
	"strings"
	"testing"

	"compass/compass/utils/types"
)

func TestToJSON(t *testing.T) {
	out := ToJSON(types.ResearchReport{Company: "Acme Corp", News: []types.NewsItem{}})
	if !strings.Contains(out, `"company": "Acme Corp"`) {
		t.Errorf("expected indented company field, got %s", out)
	}
	if !strings.Contains(out, `"news": []`) {
		t.Errorf("expected empty news list, got %s", out)
	}
}

func TestToJSONUnsupported(t *testing.T) {
	if out := ToJSON(make(chan int)); out != "" {
		t.Errorf("expected empty string, got %q", out)
	}
}
