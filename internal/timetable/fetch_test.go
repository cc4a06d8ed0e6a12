package timetable

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studhub/internal/config"
)

func fetcherCfg(url string) config.Schedule {
	return config.Schedule{
		SourceURL:    url,
		Semester:     "1",
		SemesterPart: "1",
		FetchTimeout: 2 * time.Second,
	}
}

func TestFetchGroupPagePassesQueryParams(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"studygroup_abbrname": r.URL.Query().Get("studygroup_abbrname"),
			"semestr":             r.URL.Query().Get("semestr"),
			"semestrduration":     r.URL.Query().Get("semestrduration"),
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body>Розклад занять</body></html>"))
	}))
	defer srv.Close()

	f := NewFetcher(fetcherCfg(srv.URL))
	body, err := f.FetchGroupPage(context.Background(), "КН-21")
	require.NoError(t, err)
	assert.Contains(t, body, "Розклад занять")
	assert.Equal(t, "КН-21", gotQuery["studygroup_abbrname"])
	assert.Equal(t, "1", gotQuery["semestr"])
	assert.Equal(t, "1", gotQuery["semestrduration"])
}

func TestFetchGroupPageNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := NewFetcher(fetcherCfg(srv.URL))
	_, err := f.FetchGroupPage(context.Background(), "КН-21")
	assert.Error(t, err)
}

func TestFetchGroupPageContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	f := NewFetcher(fetcherCfg(srv.URL))
	_, err := f.FetchGroupPage(ctx, "КН-21")
	assert.Error(t, err)
}

func TestFetchGroupPageDumpsRawResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body>дамп</body></html>"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	cfg := fetcherCfg(srv.URL)
	cfg.DebugDumpDir = dir

	f := NewFetcher(cfg)
	_, err := f.FetchGroupPage(context.Background(), "КН-21")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	raw, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "дамп")
}
