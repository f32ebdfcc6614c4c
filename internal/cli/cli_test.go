package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/rosterview/internal/cli"
	"github.com/rshade/rosterview/internal/loader"
	"github.com/rshade/rosterview/internal/roster"
)

// usersServer serves n users; odd ids live in India, even ids in Germany.
func usersServer(t *testing.T, n int) *httptest.Server {
	t.Helper()
	users := make([]roster.Record, n)
	for i := range users {
		country, gender := "India", "female"
		if (i+1)%2 == 0 {
			country, gender = "Germany", "male"
		}
		users[i] = roster.Record{
			ID:        i + 1,
			FirstName: fmt.Sprintf("User%d", i+1),
			LastName:  "Test",
			Age:       30,
			Gender:    gender,
			Address:   roster.Address{State: "Somewhere", Country: country},
			Company:   roster.Company{Title: "Analyst"},
		}
	}
	body, err := json.Marshal(map[string]any{"users": users, "total": n})
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func failingServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(server.Close)
	return server
}

// execute runs the root command with an isolated config home.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ROSTERVIEW_HOME", t.TempDir())
	t.Setenv("ROSTERVIEW_LOG_LEVEL", "error")

	var out, errOut bytes.Buffer
	root := cli.NewRootCmd("test")
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestNewRootCmd(t *testing.T) {
	root := cli.NewRootCmd("1.2.3")
	assert.Equal(t, "rosterview", root.Use)
	assert.Equal(t, "1.2.3", root.Version)

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"browse", "list", "serve", "filters"})

	for _, flag := range []string{"debug", "config", "endpoint", "timeout"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestList_Table(t *testing.T) {
	server := usersServer(t, 25)

	out, err := execute(t, "list", "--endpoint", server.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "FULL NAME")
	assert.Contains(t, out, "User1 Test")
	assert.NotContains(t, out, "User11 Test")
	assert.Contains(t, out, "Page 1/3 · 25 records")
}

func TestList_FiltersAndPage(t *testing.T) {
	server := usersServer(t, 25)

	out, err := execute(t, "list", "--endpoint", server.URL,
		"--country", "India", "--page", "2", "--output", "json")
	require.NoError(t, err)

	var doc struct {
		View struct {
			Records    []roster.Record `json:"records"`
			Pagination struct {
				CurrentPage int `json:"current_page"`
				TotalPages  int `json:"total_pages"`
				TotalItems  int `json:"total_items"`
			} `json:"pagination"`
		} `json:"view"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 2, doc.View.Pagination.CurrentPage)
	assert.Equal(t, 2, doc.View.Pagination.TotalPages)
	assert.Equal(t, 13, doc.View.Pagination.TotalItems)
	require.Len(t, doc.View.Records, 3)
	for _, r := range doc.View.Records {
		assert.Equal(t, "India", r.Address.Country)
	}
}

func TestList_NDJSON(t *testing.T) {
	server := usersServer(t, 4)

	out, err := execute(t, "list", "--endpoint", server.URL, "-o", "ndjson", "--gender", "male")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 2)
}

func TestList_PageBeyondLastIsEmpty(t *testing.T) {
	server := usersServer(t, 5)

	out, err := execute(t, "list", "--endpoint", server.URL, "--page", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "No records")
	assert.Contains(t, out, "Page 7/1")

	out, err = execute(t, "list", "--endpoint", server.URL, "--page", fmt.Sprint(math.MaxInt))
	require.NoError(t, err)
	assert.Contains(t, out, "No records")
	assert.Contains(t, out, fmt.Sprintf("Page %d/1", math.MaxInt))
}

func TestList_InvalidInput(t *testing.T) {
	server := usersServer(t, 5)

	_, err := execute(t, "list", "--endpoint", server.URL, "--page", "0")
	require.Error(t, err)
	assert.Equal(t, cli.ExitError, cli.ExitCode(err))

	_, err = execute(t, "list", "--endpoint", server.URL, "--output", "xml")
	require.Error(t, err)

	_, err = execute(t, "list", "--endpoint", "not a url")
	require.Error(t, err)
}

func TestList_LoadFailure(t *testing.T) {
	server := failingServer(t)

	out, err := execute(t, "list", "--endpoint", server.URL)
	require.Error(t, err)
	assert.Equal(t, "Error: "+loader.MsgNotFound+"\n", out)
	assert.Equal(t, cli.ExitLoadFailed, cli.ExitCode(err))
	assert.True(t, cli.IsReported(err))
}

func TestBrowse_FallsBackToListWithoutTerminal(t *testing.T) {
	server := usersServer(t, 3)

	out, err := execute(t, "browse", "--endpoint", server.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "User3 Test")
	assert.Contains(t, out, "Page 1/1")

	out, err = execute(t, "--endpoint", server.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "User1 Test")
}

func TestFilters(t *testing.T) {
	server := usersServer(t, 6)

	out, err := execute(t, "filters", "--endpoint", server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Countries (2):\n  Germany\n  India\nGenders (2):\n  female\n  male\n", out)

	out, err = execute(t, "filters", "--endpoint", server.URL, "-o", "json")
	require.NoError(t, err)
	var opts cli.FilterOptions
	require.NoError(t, json.Unmarshal([]byte(out), &opts))
	assert.Equal(t, []string{"Germany", "India"}, opts.Countries)
}

func TestFilters_LoadFailure(t *testing.T) {
	server := failingServer(t)

	out, err := execute(t, "filters", "--endpoint", server.URL, "-o", "json")
	require.Error(t, err)
	assert.JSONEq(t, `{"countries":[],"genders":[]}`, out)
}

func TestConfigFileIsRead(t *testing.T) {
	server := usersServer(t, 12)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(`
source:
  endpoint: %s
  timeout: 2s
output:
  default_format: ndjson
`, server.URL)), 0600))

	out, err := execute(t, "list", "--config", path)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 10)

	_, err = execute(t, "list", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, cli.ExitOK, cli.ExitCode(nil))
	assert.Equal(t, cli.ExitError, cli.ExitCode(errors.New("x")))
	assert.Equal(t, cli.ExitLoadFailed, cli.ExitCode(fmt.Errorf("wrap: %w", &loader.LoadError{Message: "x"})))
	assert.False(t, cli.IsReported(errors.New("x")))
}
