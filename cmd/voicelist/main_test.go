package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

const testCatalog = `
voices:
  - identifier: com.test.voice1
    name: Ava
    gender: VoiceGenderFemale
    age: 30
    locale: en_US
    desirability: 15000
  - identifier: com.test.voice2
    name: Daniel
    gender: VoiceGenderMale
    age: 40
    locale: en_GB
  - identifier: com.test.voice3
    name: Anna
    gender: VoiceGenderFemale
    age: 35
    locale: de_DE
    desirability: 500
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_Catalog(t *testing.T) {
	path := writeFile(t, "voices.yaml", testCatalog)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"-catalog", path}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
	}
	want := "com.test.voice1\n" +
		" -> Ava       \tF\t 30\ten_US   \n" +
		" ->15000\n" +
		"\n" +
		"Daniel    : 0\n" +
		"\n" +
		"Anna      : 500\n" +
		"\n"
	if stdout.String() != want {
		t.Errorf("stdout = %q, want %q", stdout.String(), want)
	}
}

func TestRun_Idempotent(t *testing.T) {
	path := writeFile(t, "voices.yaml", testCatalog)
	var first, second, stderr bytes.Buffer
	if code := run(context.Background(), []string{"-catalog", path}, &first, &stderr); code != 0 {
		t.Fatalf("first run exit %d: %s", code, stderr.String())
	}
	if code := run(context.Background(), []string{"-catalog", path}, &second, &stderr); code != 0 {
		t.Fatalf("second run exit %d: %s", code, stderr.String())
	}
	if first.String() != second.String() {
		t.Error("output differs between runs")
	}
}

func TestRun_FlagsOverrideConfig(t *testing.T) {
	catalogPath := writeFile(t, "voices.yaml", testCatalog)
	cfgPath := writeFile(t, "voicelist.yaml", "source:\n  name: catalog\n  path: "+catalogPath+"\noutput:\n  threshold: 100000\n")
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"-config", cfgPath, "-threshold", "400", "-lang", "de"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
	}
	want := "com.test.voice3\n -> Anna      \tF\t 35\tde_DE   \n ->500\n\n"
	if stdout.String() != want {
		t.Errorf("stdout = %q, want %q", stdout.String(), want)
	}
}

func TestRun_CatalogFlagCompletesConfig(t *testing.T) {
	catalogPath := writeFile(t, "voices.yaml", testCatalog)
	cfgPath := writeFile(t, "voicelist.yaml", "source:\n  name: catalog\n")
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"-config", cfgPath, "-catalog", catalogPath, "-lang", "de"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
	}
	if want := "Anna      : 500\n\n"; stdout.String() != want {
		t.Errorf("stdout = %q, want %q", stdout.String(), want)
	}
}

func TestRun_ConfigWithoutCatalogPathFails(t *testing.T) {
	cfgPath := writeFile(t, "voicelist.yaml", "source:\n  name: catalog\n")
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"-config", cfgPath}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "source.path") {
		t.Errorf("stderr should name source.path, got: %s", stderr.String())
	}
}

func TestRun_ValidationWarningsUseStderr(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"-source", "espeak"}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "unknown source name") {
		t.Errorf("validation warning should be written to stderr, got: %s", stderr.String())
	}
	if !strings.Contains(stderr.String(), "failed to create voice source") {
		t.Errorf("stderr should report the unregistered source, got: %s", stderr.String())
	}
}

func TestRun_MissingAttributeFails(t *testing.T) {
	path := writeFile(t, "voices.yaml", "voices:\n  - identifier: x\n    name: X\n")
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"-catalog", path}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout should be empty on failure, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "incomplete voice") {
		t.Errorf("stderr should report the incomplete voice, got: %s", stderr.String())
	}
}

func TestRun_Metrics(t *testing.T) {
	path := writeFile(t, "voices.yaml", testCatalog)
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"-catalog", path, "-metrics"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stderr.String(), "enumerated") {
		t.Errorf("stderr should contain the metrics dump, got: %s", stderr.String())
	}
	if strings.Contains(stdout.String(), "# TYPE") {
		t.Error("metrics must not be written to stdout")
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"-log-level", "loud"}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "log_level") {
		t.Errorf("stderr = %s", stderr.String())
	}
}

func TestRun_BadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"-nope"}, &stdout, &stderr); code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
}

func TestRun_SystemUnsupported(t *testing.T) {
	if runtime.GOOS == "darwin" {
		t.Skip("system source is available on darwin")
	}
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), nil, &stdout, &stderr); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "-catalog") {
		t.Errorf("stderr should suggest -catalog, got: %s", stderr.String())
	}
}
