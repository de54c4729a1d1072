package history

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/seekr-dev/seekr/internal/report"
)

func sampleReport() *report.AnalysisReport {
	r := report.NewAnalysisReport()
	r.FeatureAnalysis = []report.FeatureAnalysis{
		{
			FeatureDescription: "实现用户登录功能",
			ImplementationLocations: []report.Location{
				{File: "auth/login.py", Function: "login", Lines: "3-6"},
			},
		},
	}
	r.ExecutionPlanSuggestion = "plan"
	return r
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndGet(t *testing.T) {
	store := openTestStore(t)

	id, err := store.Record("实现用户登录功能", "python", sampleReport())
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if id == "" {
		t.Fatal("expected a generated id")
	}

	entry, err := store.Get(id)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if entry.Requirement != "实现用户登录功能" {
		t.Errorf("requirement = %q", entry.Requirement)
	}
	if entry.ProjectType != "python" {
		t.Errorf("project type = %q", entry.ProjectType)
	}
	if entry.FeatureCount != 1 || entry.LocationCount != 1 {
		t.Errorf("counts = %d/%d", entry.FeatureCount, entry.LocationCount)
	}
	if entry.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
	if entry.Report == nil ||
		entry.Report.FeatureAnalysis[0].ImplementationLocations[0].Function != "login" {
		t.Errorf("report = %+v", entry.Report)
	}
}

func TestGetUnknownID(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Get("does-not-exist"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestList(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 3; i++ {
		if _, err := store.Record("实现功能", "unknown", sampleReport()); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := store.List(2)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected limit to apply, got %d entries", len(entries))
	}

	all, err := store.List(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 entries, got %d", len(all))
	}
	// List omits the report payload.
	if all[0].Report != nil {
		t.Error("expected list entries without report payload")
	}
}

func TestClear(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Record("实现功能", "unknown", sampleReport()); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}

	entries, err := store.List(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty history, got %d entries", len(entries))
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()

	first, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	id, err := first.Record("实现功能", "unknown", sampleReport())
	if err != nil {
		t.Fatal(err)
	}
	first.Close()

	second, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer second.Close()

	if _, err := second.Get(id); err != nil {
		t.Errorf("expected entry to survive reopen: %v", err)
	}
}
