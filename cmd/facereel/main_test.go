package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	configPath string
	libraryDir string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	libraryDir := filepath.Join(base, "library")
	logDir := filepath.Join(base, "logs")
	configPath := filepath.Join(homeDir, ".config", "facereel", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	content := fmt.Sprintf(
		"[paths]\nlibrary_dir = %q\nlog_dir = %q\n\n[logging]\nformat = \"json\"\nlevel = \"error\"\n",
		libraryDir, logDir)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return &cliTestEnv{configPath: configPath, libraryDir: libraryDir}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestRootShowsHelp(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, nil, env.configPath)
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	for _, sub := range []string{"adjust", "compile", "stitch", "status", "config"} {
		requireContains(t, out, sub)
	}
}

func TestAdjustRequiresPerson(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"adjust", "abc123"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "--person") {
		t.Fatalf("err = %v, want a --person requirement", err)
	}
}

func TestAdjustRejectsAllWithArgs(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"adjust", "abc123", "--all", "--person", "alice"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "--all") {
		t.Fatalf("err = %v, want an --all conflict", err)
	}
}

func TestCompileWithoutAlignedFrames(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.MkdirAll(filepath.Join(env.libraryDir, "abc123"), 0o755); err != nil {
		t.Fatal(err)
	}
	_, _, err := runCLI(t, []string{"compile", "abc123"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "adjust") {
		t.Fatalf("err = %v, want a hint to run adjust", err)
	}
}

func TestStatusFailsWhenToolsMissing(t *testing.T) {
	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(
		"[paths]\nlibrary_dir = %q\nlog_dir = %q\n\n"+
			"[alignment]\nlandmarks_command = \"facereel-missing-landmarks\"\n\n"+
			"[tools]\nffmpeg_binary = \"facereel-missing-ffmpeg\"\n\n"+
			"[logging]\nformat = \"json\"\nlevel = \"error\"\n",
		filepath.Join(base, "library"), filepath.Join(base, "logs"))
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, []string{"status"}, configPath)
	if err == nil || !strings.Contains(err.Error(), "missing") {
		t.Fatalf("err = %v, want a missing-tools failure", err)
	}
	requireContains(t, out, "MISSING")
	requireContains(t, out, "facereel-missing-ffmpeg")
}

func TestStatusEmptyLibrary(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, _ := runCLI(t, []string{"status"}, env.configPath)
	requireContains(t, out, "No sources yet")
	requireContains(t, out, env.libraryDir)
}
