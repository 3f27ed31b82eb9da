package store

import (
	"os"
	"testing"
)

// getTestDBURL returns the database URL for testing.
// Tests are skipped if no database is available.
func getTestDBURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set — skipping database tests")
	}
	return url
}

func TestSaveAndLoad(t *testing.T) {
	s, err := New(getTestDBURL(t))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()

	snapshot := []byte(`{"dimension":20,"tokens":{},"markers":{},"fog":{},"strokes":null}`)

	if err := s.Save("session-1", snapshot); err != nil {
		t.Fatalf("failed to save snapshot: %v", err)
	}

	data, ok, err := s.Load("session-1")
	if err != nil {
		t.Fatalf("failed to load snapshot: %v", err)
	}
	if !ok {
		t.Fatal("session-1 not found")
	}
	if string(data) != string(snapshot) {
		t.Errorf("expected %s, got %s", snapshot, data)
	}
}

func TestLoadMissing(t *testing.T) {
	s, err := New(getTestDBURL(t))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()

	_, ok, err := s.Load("never-saved")
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if ok {
		t.Error("expected missing snapshot")
	}
}

func TestOverwrite(t *testing.T) {
	s, err := New(getTestDBURL(t))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()

	if err := s.Save("session-overwrite", []byte(`{"dimension":10}`)); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if err := s.Save("session-overwrite", []byte(`{"dimension":30}`)); err != nil {
		t.Fatalf("failed to overwrite: %v", err)
	}

	data, ok, err := s.Load("session-overwrite")
	if err != nil || !ok {
		t.Fatalf("failed to load: %v ok=%v", err, ok)
	}
	if string(data) != `{"dimension": 30}` && string(data) != `{"dimension":30}` {
		t.Errorf("expected overwritten snapshot, got %s", data)
	}
}

func TestDelete(t *testing.T) {
	s, err := New(getTestDBURL(t))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()

	if err := s.Save("session-delete", []byte(`{}`)); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if err := s.Delete("session-delete"); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}

	all, err := s.LoadAll()
	if err != nil {
		t.Fatalf("failed to load all: %v", err)
	}
	if _, ok := all["session-delete"]; ok {
		t.Error("deleted snapshot still present")
	}

	// Deleting again is not an error.
	if err := s.Delete("session-delete"); err != nil {
		t.Errorf("re-delete returned error: %v", err)
	}
}
