package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/petal-labs/perle/core"
	"github.com/petal-labs/perle/server"
)

func TestModelsText(t *testing.T) {
	ta := newTestApp(t, quietConfig(), nil, nil, "")

	if err := ta.run("models"); err != nil {
		t.Fatalf("models error = %v", err)
	}

	out := ta.stdout.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(core.Catalog)+1 {
		t.Errorf("models printed %d lines, want %d", len(lines), len(core.Catalog)+1)
	}
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "gemini-lite":
			if !strings.Contains(line, "free (default)") {
				t.Errorf("gemini-lite line = %q, want free (default)", line)
			}
		case "gpt-4o":
			if !strings.Contains(line, "openai") || !strings.Contains(line, "premium") {
				t.Errorf("gpt-4o line = %q", line)
			}
		}
	}
}

func TestModelsJSON(t *testing.T) {
	ta := newTestApp(t, quietConfig(), nil, nil, "")

	if err := ta.run("models", "--json"); err != nil {
		t.Fatalf("models error = %v", err)
	}

	var resp server.ModelsResponse
	if err := json.Unmarshal(ta.stdout.Bytes(), &resp); err != nil {
		t.Fatalf("stdout is not JSON: %v", err)
	}
	if len(resp.Models) != len(core.Catalog) {
		t.Errorf("len(Models) = %d, want %d", len(resp.Models), len(core.Catalog))
	}

	defaults := 0
	for _, m := range resp.Models {
		if m.Default {
			defaults++
		}
		if m.Provider == "" {
			t.Errorf("model %s has no provider", m.ID)
		}
	}
	if defaults != 1 {
		t.Errorf("%d default models, want 1", defaults)
	}
}
