package repo

import "testing"

func TestConfigReadMissingReturnsZeroValue(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	cfg, err := r.ReadConfig()
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	if cfg.Remote.URL != "" {
		t.Errorf("Remote.URL = %q, want empty", cfg.Remote.URL)
	}
}

func TestRecordRemoteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := r.RecordRemote("https://example.com/repo.git", "refs/heads/main"); err != nil {
		t.Fatalf("RecordRemote: %v", err)
	}

	cfg, err := r.ReadConfig()
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	if cfg.Remote.URL != "https://example.com/repo.git" {
		t.Errorf("Remote.URL = %q", cfg.Remote.URL)
	}
	if cfg.Remote.DefaultBranch != "refs/heads/main" {
		t.Errorf("Remote.DefaultBranch = %q", cfg.Remote.DefaultBranch)
	}
}
