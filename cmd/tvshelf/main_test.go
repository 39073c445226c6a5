package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmcdole/tvshelf/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTMDBServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/tv/42":
			fmt.Fprint(w, `{"id":42,"name":"Severance","first_air_date":"2022-02-18","vote_average":8.4,
				"seasons":[{"season_number":2},{"season_number":0},{"season_number":1}]}`)
		case "/search/tv":
			fmt.Fprint(w, `{"page":1,"results":[{"id":7,"name":"Severed"},{"id":42,"name":"Severance"}]}`)
		case "/trending/tv/day":
			fmt.Fprint(w, `{"page":1,"results":[{"id":42,"name":"Severance"}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"status_code":34,"status_message":"not found"}`)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeConfig(t *testing.T, baseURL, extra string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf(`tmdb:
  api_key: test-key
  base_url: %s
  retries: 1
storage:
  driver: bolt
  path: %s
logging:
  file: %s
%s`, baseURL, filepath.Join(dir, "data"), filepath.Join(dir, "tvshelf.log"), extra)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRecentCommands(t *testing.T) {
	srv := newTMDBServer(t)
	cfgPath := writeConfig(t, srv.URL, "")

	out, _, err := execute(t, "--config", cfgPath, "recent", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No recent searches")

	out, _, err = execute(t, "--config", cfgPath, "recent", "add", "42")
	require.NoError(t, err)
	assert.Contains(t, out, "Added Severance")

	out, _, err = execute(t, "--config", cfgPath, "recent", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "Severance")

	out, _, err = execute(t, "--config", cfgPath, "recent", "remove", "42")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 42")

	out, _, err = execute(t, "--config", cfgPath, "recent", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No recent searches")
}

func TestRecentList_UnresolvableEntryDropped(t *testing.T) {
	srv := newTMDBServer(t)
	cfgPath := writeConfig(t, srv.URL, "")

	_, _, err := execute(t, "--config", cfgPath, "recent", "add", "99", "Gone Show")
	require.NoError(t, err)

	out, errOut, err := execute(t, "--config", cfgPath, "recent", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No recent searches")
	assert.Contains(t, errOut, "Failed to fetch data")
}

func TestRecentList_PlaceholderPolicy(t *testing.T) {
	srv := newTMDBServer(t)
	cfgPath := writeConfig(t, srv.URL, "preferences:\n  recent_failure_policy: placeholder\n")

	_, _, err := execute(t, "--config", cfgPath, "recent", "add", "99", "Gone Show")
	require.NoError(t, err)

	out, _, err := execute(t, "--config", cfgPath, "recent", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Gone Show (unavailable)")
}

func TestSeasonCommands(t *testing.T) {
	srv := newTMDBServer(t)
	cfgPath := writeConfig(t, srv.URL, "")

	out, _, err := execute(t, "--config", cfgPath, "season", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "No season pinned")

	_, _, err = execute(t, "--config", cfgPath, "season", "set", "42", "1")
	require.NoError(t, err)

	out, _, err = execute(t, "--config", cfgPath, "season", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "show 42 season 1 (seasons 0-2)")

	_, _, err = execute(t, "--config", cfgPath, "season", "clear")
	require.NoError(t, err)

	out, _, err = execute(t, "--config", cfgPath, "season", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "No season pinned")
}

func TestSeasonSet_InvalidArgs(t *testing.T) {
	srv := newTMDBServer(t)
	cfgPath := writeConfig(t, srv.URL, "")

	_, _, err := execute(t, "--config", cfgPath, "season", "set", "abc", "1")
	assert.Error(t, err)

	_, _, err = execute(t, "--config", cfgPath, "season", "set", "42", "-1")
	assert.Error(t, err)
}

func TestSeasonPreferred(t *testing.T) {
	srv := newTMDBServer(t)

	cfgPath := writeConfig(t, srv.URL, "")
	_, errOut, err := execute(t, "--config", cfgPath, "season", "preferred")
	assert.Error(t, err)
	assert.Contains(t, errOut, "No show and/or season is set in preferences")

	cfgPath = writeConfig(t, srv.URL, "preferences:\n  curr_show: 42\n  curr_show_season: 2\n")
	out, _, err := execute(t, "--config", cfgPath, "season", "preferred")
	require.NoError(t, err)
	assert.Contains(t, out, "show 42 season 2 (seasons 0-2)")
}

func TestSearchAndTrending(t *testing.T) {
	srv := newTMDBServer(t)
	cfgPath := writeConfig(t, srv.URL, "")

	out, _, err := execute(t, "--config", cfgPath, "search", "severance")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Severance")

	out, _, err = execute(t, "--config", cfgPath, "trending")
	require.NoError(t, err)
	assert.Contains(t, out, "Severance")
}

func TestReset(t *testing.T) {
	srv := newTMDBServer(t)
	cfgPath := writeConfig(t, srv.URL, "")

	_, _, err := execute(t, "--config", cfgPath, "recent", "add", "42", "Severance")
	require.NoError(t, err)

	out, _, err := execute(t, "--config", cfgPath, "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Stored data deleted")

	out, _, err = execute(t, "--config", cfgPath, "recent", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No recent searches")
}

func TestSubcommandRequiresAPIKey(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("logging:\n  file: "+filepath.Join(dir, "log")+"\n"), 0600))
	t.Setenv("TVSHELF_TMDB_API_KEY", "")

	_, _, err := execute(t, "--config", cfgPath, "recent", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no TMDB API key configured")
}

func TestSetupFlow_SavesVerifiedKey(t *testing.T) {
	srv := newTMDBServer(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	loaded, err := config.Load(cfgPath)
	require.NoError(t, err)
	loaded.TMDB.BaseURL = srv.URL

	var out bytes.Buffer
	err = runSetupFlow(strings.NewReader("\nmy-key\n"), &out, loaded, nil)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "API key cannot be empty")
	assert.Contains(t, out.String(), "Configuration saved")

	reloaded, err := config.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "my-key", reloaded.TMDB.APIKey)
	assert.Equal(t, srv.URL, reloaded.TMDB.BaseURL)
}

func TestSetupFlow_RejectedKeyRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") == "good" {
			fmt.Fprint(w, `{"page":1,"results":[]}`)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	cfg, err := config.Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	cfg.TMDB.BaseURL = srv.URL

	var out bytes.Buffer
	require.NoError(t, runSetupFlow(strings.NewReader("bad\ngood\n"), &out, cfg, nil))
	assert.Contains(t, out.String(), "TMDB rejected the key")
	assert.Equal(t, "good", cfg.TMDB.APIKey)
}
