package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nocap-placify/placify"
	"github.com/nocap-placify/placify/internal/config"
	"github.com/nocap-placify/placify/internal/logging"
	"github.com/nocap-placify/placify/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "placify version "+placify.Version+"\n", out)
}

func TestWizards(t *testing.T) {
	out, err := run(t, "wizards")
	require.NoError(t, err)
	assert.Contains(t, out, "student-registration")
	assert.Contains(t, out, "mentor-session")
	assert.Contains(t, out, "mentor_sessions")
}

func TestValidate_Definitions(t *testing.T) {
	out, err := run(t, "validate", filepath.Join("..", "..", "definitions"))
	require.NoError(t, err)
	assert.Contains(t, out, "Wizards are valid!")

	_, err = run(t, "validate", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestGraph(t *testing.T) {
	out, err := run(t, "graph", "mentor-session")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "graph LR"))

	_, err = run(t, "graph", "nope")
	assert.Error(t, err)
}

func TestFill_NonInteractive(t *testing.T) {
	out, err := run(t, "fill", "mentor-session",
		"--set", "mentor=Dr. Rao",
		"--set", "srn=pes1ug20cs001",
		"--set", "date=2024-03-01",
		"--set", "notes=Practice graphs.",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Submitted successfully.")
}

func TestParsePairs(t *testing.T) {
	values, err := parsePairs([]string{"name=Ada", "notes=a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"name": "Ada", "notes": "a=b"}, values)

	_, err = parsePairs([]string{"novalue"})
	assert.Error(t, err)
	_, err = parsePairs(nil)
	assert.Error(t, err)
}

func TestHostPort(t *testing.T) {
	assert.Equal(t, "localhost:8081", hostPort(":8081"))
	assert.Equal(t, "0.0.0.0:9000", hostPort("0.0.0.0:9000"))
}

func httpConfig(baseURL string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Gateway.Kind = config.GatewayHTTP
	cfg.Gateway.BaseURL = baseURL
	return cfg
}

func TestApp_HTTPGatewayUsesSubmitTimeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(release)

	cfg := httpConfig(ts.URL)
	cfg.Wizard.SubmitTimeout = 100 * time.Millisecond
	a, err := newApp(context.Background(), cfg, logging.NewNop(), false)
	require.NoError(t, err)
	defer a.Close()

	gw, err := a.gateway(context.Background())
	require.NoError(t, err)
	start := time.Now()
	_, err = gw.Submit(context.Background(), domain.Submission{Target: domain.TargetStudents})
	assert.Equal(t, domain.ReasonTimeout, domain.ClassifyFailure(err))
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestApp_HTTPGatewayPathOverride(t *testing.T) {
	paths := make(chan string, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths <- r.URL.Path
		_, _ = w.Write([]byte("ok"))
	}))
	defer ts.Close()

	cfg := httpConfig(ts.URL)
	cfg.Gateway.Paths = map[string]string{domain.TargetMentorSessions: "/addSession"}
	a, err := newApp(context.Background(), cfg, logging.NewNop(), false)
	require.NoError(t, err)
	defer a.Close()

	s, err := a.engine.Fill(context.Background(), domain.WizardMentorSession, map[string]string{
		"mentor": "Dr. Rao",
		"srn":    "pes1ug20cs001",
		"date":   "2024-03-01",
		"notes":  "Practice graphs.",
	})
	require.NoError(t, err)
	assert.True(t, s.Submitted)
	assert.Equal(t, "/addSession", <-paths)
}
