package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shade/internal/testsupport"
)

type cliEnv struct {
	configPath string
	libraryDir string
	inboundDir string
	logDir     string
}

func setupCLITestEnv(t *testing.T) cliEnv {
	t.Helper()

	base := t.TempDir()
	env := cliEnv{
		configPath: filepath.Join(base, "shade.toml"),
		libraryDir: filepath.Join(base, "library"),
		inboundDir: filepath.Join(base, "inbound"),
		logDir:     filepath.Join(base, "logs"),
	}

	content := fmt.Sprintf(`[paths]
library_dir = %q
inbound_dir = %q
log_dir = %q

[library]
public_base_url = "http://media.test"

[sizes]
thumbnail = "150x150"

[logging]
format = "console"
level = "error"
`, env.libraryDir, env.inboundDir, env.logDir)

	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}
	return env
}

func runCLI(t *testing.T, env cliEnv, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--config", env.configPath))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func writeTestImage(t *testing.T, env cliEnv, name string, width, height int) string {
	t.Helper()
	path := filepath.Join(env.inboundDir, name)
	testsupport.WriteImage(t, path, width, height)
	return path
}
