// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/mvx-app/mvx/internal/models"
)

// MockCatalog is a configurable test double for [services.Catalog]
type MockCatalog struct {
	SearchFunc func(ctx context.Context, query string, page int) (*models.SearchResult, error)
	DetailFunc func(ctx context.Context, id int) (*models.MovieDetail, error)
	Searches   int
}

func (m *MockCatalog) SearchMovies(ctx context.Context, query string, page int) (*models.SearchResult, error) {
	m.Searches++
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, page)
	}
	return &models.SearchResult{Page: page, TotalPages: 1}, nil
}

func (m *MockCatalog) MovieDetail(ctx context.Context, id int) (*models.MovieDetail, error) {
	if m.DetailFunc != nil {
		return m.DetailFunc(ctx, id)
	}
	return &models.MovieDetail{Movie: models.Movie{ID: id}}, nil
}

func (m *MockCatalog) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter allows a fixed number of writes before failing
type LimitedWriter struct {
	allowed int
	used    int
	inner   io.Writer
}

func NewLimitedWriter(allowed, used int, inner io.Writer) LimitedWriter {
	return LimitedWriter{allowed: allowed, used: used, inner: inner}
}

func (w *LimitedWriter) Write(p []byte) (n int, err error) {
	if w.used >= w.allowed {
		return 0, errors.New("write limit reached")
	}
	w.used++
	return w.inner.Write(p)
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
	Requests []*http.Request
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	m.Requests = append(m.Requests, req)
	return m.response, m.err
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
