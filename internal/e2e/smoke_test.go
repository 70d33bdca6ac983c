package e2e

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	backend := startBackend(t)
	require.NoError(t, writeConfigFixture(home, backend.URL))

	stdout, stderr, err := runChargectl(t, binaryPath, home, "open", "/chargers")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "after signing in you will continue to /chargers")

	_, stderr, err = runChargectl(t, binaryPath, home,
		"login",
		"--username", "operator",
		"--password", "hunter2",
	)
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err = runChargectl(t, binaryPath, home, "whoami")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "signed in as operator")

	stdout, stderr, err = runChargectl(t, binaryPath, home, "open", "/chargers")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Chargers")
	assert.NotContains(t, stdout, "after signing in")

	_, stderr, err = runChargectl(t, binaryPath, home, "logout")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err = runChargectl(t, binaryPath, home, "whoami")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Not signed in")
}

func startBackend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil || r.PostForm.Get("password") != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"e2e-token","token_type":"bearer"}`))
	})
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer e2e-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"id":7,"username":"operator","is_admin":false}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "chargectl-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/chargectl")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build chargectl binary: %s", string(output))
	return binaryPath
}

func runChargectl(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func writeConfigFixture(home string, baseURL string) error {
	configDir := filepath.Join(home, ".chargectl")
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return err
	}

	cfg := `version = 1

[api]
base_url = "` + baseURL + `"

[storage]
backend = "file"

[log]
level = "off"
`

	return os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(cfg), 0o600)
}
