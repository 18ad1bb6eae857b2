package expand

import "testing"

func TestExpandSingleton(t *testing.T) {
	records, err := Expand(Options{BaseName: "feature-worktree"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].Input != "feature-worktree" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestExpandStdin(t *testing.T) {
	records, err := Expand(Options{
		BaseName:   "topic",
		StdinLines: CollectStdinLines("feature-a\nfeature-b\n"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 || records[0].Input != "feature-a" || records[1].Input != "feature-b" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestExpandStdinBlankLinesFiltered(t *testing.T) {
	lines := CollectStdinLines("a\n\n  \nb\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines after filtering, got %v", lines)
	}
}

func TestExpandStdinJSONLine(t *testing.T) {
	records, err := Expand(Options{
		BaseName:   "analyze",
		StdinLines: CollectStdinLines(`{"name":"workmux","id":"1"}`),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Vars["name"] != "workmux" {
		t.Errorf("vars[name] = %q, want workmux", records[0].Vars["name"])
	}
	if records[0].Input != `{"name":"workmux","id":"1"}` {
		t.Errorf("input should preserve raw JSON line, got %q", records[0].Input)
	}
}

func TestExpandStdinForeachConflict(t *testing.T) {
	_, err := Expand(Options{
		BaseName:   "x",
		StdinLines: CollectStdinLines("a\n"),
		Foreach:    "env:dev,prod",
	})
	if err == nil || err.Error() != "Cannot use --foreach when piping input from stdin" {
		t.Fatalf("expected foreach conflict error, got %v", err)
	}
}

func TestExpandNameConflict(t *testing.T) {
	_, err := Expand(Options{
		BaseName:     "x",
		Count:        2,
		ExplicitName: "custom",
	})
	if err == nil || err.Error() != "--name cannot be used with multi-worktree generation" {
		t.Fatalf("expected name conflict error, got %v", err)
	}
}

func TestExpandForeachCartesian(t *testing.T) {
	records, err := Expand(Options{BaseName: "x", Foreach: "env:dev,prod;region:us,eu"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
}

func TestExpandCount(t *testing.T) {
	records, err := Expand(Options{BaseName: "base", Count: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 || records[0].Input != "1" || records[1].Input != "2" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestExpandPromptEditorStdinConflict(t *testing.T) {
	_, err := Expand(Options{
		BaseName:     "x",
		StdinLines:   CollectStdinLines("a\n"),
		PromptEditor: true,
	})
	if err == nil || err.Error() != "Cannot use interactive prompt editor when piping input" {
		t.Fatalf("expected prompt-editor conflict error, got %v", err)
	}
}
