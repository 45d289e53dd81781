package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// Clear any env vars that might interfere
	os.Unsetenv("CODEMERGE_LOG_LEVEL")
	os.Unsetenv("CODEMERGE_OUTPUT")
	os.Unsetenv("CODEMERGE_INCLUDE_EXTS")
	testChdir(t, t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("expected log_level=info, got %s", cfg.LogLevel)
	}
	if cfg.Output != "text" {
		t.Errorf("expected output=text, got %s", cfg.Output)
	}
	if cfg.OutputFile != DefaultOutputFile {
		t.Errorf("expected output_file=%s, got %s", DefaultOutputFile, cfg.OutputFile)
	}
	if len(cfg.IncludeExts) != len(DefaultIncludeExts) {
		t.Errorf("expected %d include_exts, got %v", len(DefaultIncludeExts), cfg.IncludeExts)
	}
	if cfg.RejectedSample != 5 {
		t.Errorf("expected rejected_sample=5, got %d", cfg.RejectedSample)
	}
}

func TestLoadFromEnv(t *testing.T) {
	testChdir(t, t.TempDir())
	t.Setenv("CODEMERGE_LOG_LEVEL", "debug")
	t.Setenv("CODEMERGE_OUTPUT", "JSON")
	t.Setenv("CODEMERGE_INCLUDE_EXTS", "go, .MD")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("expected log_level=debug, got %s", cfg.LogLevel)
	}
	if cfg.Output != "json" {
		t.Errorf("expected output=json, got %s", cfg.Output)
	}
	if len(cfg.IncludeExts) != 2 || cfg.IncludeExts[0] != ".go" || cfg.IncludeExts[1] != ".md" {
		t.Errorf("expected include_exts=[.go .md], got %v", cfg.IncludeExts)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := "root: src\noutput_file: out/all.txt\nexclude_dirs: [vendor]\ndecode_errors: ignore\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Root != "src" || cfg.OutputFile != "out/all.txt" {
		t.Errorf("unexpected root/output: %s %s", cfg.Root, cfg.OutputFile)
	}
	if len(cfg.ExcludeDirs) != 1 || cfg.ExcludeDirs[0] != "vendor" {
		t.Errorf("expected exclude_dirs=[vendor], got %v", cfg.ExcludeDirs)
	}
	if cfg.DecodeErrors != "ignore" {
		t.Errorf("expected decode_errors=ignore, got %s", cfg.DecodeErrors)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidateRejectsBadEnums(t *testing.T) {
	cfg := Default()
	cfg.Output = "xml"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for output=xml")
	}

	cfg = Default()
	cfg.DecodeErrors = "strict"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for decode_errors=strict")
	}
}

func TestNormalizeExts(t *testing.T) {
	got := NormalizeExts([]string{".PY", "js", " ", ".", ".py", ".Ts "})
	want := []string{".py", ".js", ".ts"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("CODEMERGE_TEST_ENVFILE=loaded\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CODEMERGE_TEST_ENVFILE", "")
	os.Unsetenv("CODEMERGE_TEST_ENVFILE")

	if err := LoadEnvFile(path, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := os.Getenv("CODEMERGE_TEST_ENVFILE"); got != "loaded" {
		t.Errorf("expected loaded, got %q", got)
	}

	if err := LoadEnvFile(filepath.Join(dir, "missing.env"), false); err != nil {
		t.Errorf("optional missing file should be ignored, got %v", err)
	}
	if err := LoadEnvFile(filepath.Join(dir, "missing.env"), true); err == nil {
		t.Error("required missing file should fail")
	}
}

// testChdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir on older toolchains).
func testChdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
