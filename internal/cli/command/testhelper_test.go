package command

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v2"

	cliconfig "github.com/azimuth-cloud/configomatic/internal/cli/config"
)

// isolateCLI hides any CLI configuration of the user running the tests.
func isolateCLI(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(cliconfig.PathEnvVar, "")
	os.Unsetenv(cliconfig.PathEnvVar)
	return home
}

// runApp runs the application with args and returns what it wrote to its
// writer.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := App()
	var stdout, stderr bytes.Buffer
	app.Writer = &stdout
	app.ErrWriter = &stderr
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.Run(append([]string{"configomatic"}, args...))
	return stdout.String(), err
}

// runJSON runs the application with JSON output and decodes the result.
func runJSON(t *testing.T, args ...string) map[string]any {
	t.Helper()
	out, err := runApp(t, append([]string{"-o", "json"}, args...)...)
	if err != nil {
		t.Fatalf("run %v: %v", args, err)
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(out), &m); err != nil {
		t.Fatalf("output is not a JSON object: %v\n%s", err, out)
	}
	return m
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func mkdirAll(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
}
