package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T, path string, inputRoot string) {
	t.Helper()
	base := filepath.Dir(path)
	content := fmt.Sprintf(`
[paths]
staging_dir = %q
library_dir = %q
log_dir = %q
history_db = %q

[scan]
input_roots = [%q]
`,
		filepath.Join(base, "staging"),
		filepath.Join(base, "library"),
		filepath.Join(base, "logs"),
		filepath.Join(base, "history.db"),
		inputRoot,
	)
	if err := os.MkdirAll(base, 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	flags := args
	if configPath != "" {
		flags = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(flags)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
