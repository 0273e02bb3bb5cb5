// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/desertthunder/ccx/internal/models"
	"github.com/desertthunder/ccx/internal/session"
)

// MockChecker is a configurable test double for [services.Checker].
//
// Each field, when set, overrides the zero-value behavior of returning
// empty results and nil errors.
type MockChecker struct {
	PlaylistsFunc func(ctx context.Context) ([]models.Playlist, error)
	CheckFunc     func(ctx context.Context, req *session.Request) (*session.Result, error)
	DetailsFunc   func(ctx context.Context, trackID string) (*models.TrackDetails, error)
	AddFunc       func(ctx context.Context, trackID, playlistID string) error
	CheckCalls    []*session.Request
	AddCalls      [][2]string
}

func (m *MockChecker) MyPlaylists(ctx context.Context) ([]models.Playlist, error) {
	if m.PlaylistsFunc != nil {
		return m.PlaylistsFunc(ctx)
	}
	return []models.Playlist{}, nil
}

func (m *MockChecker) Check(ctx context.Context, req *session.Request) (*session.Result, error) {
	m.CheckCalls = append(m.CheckCalls, req)
	if m.CheckFunc != nil {
		return m.CheckFunc(ctx, req)
	}
	return &session.Result{}, nil
}

func (m *MockChecker) TrackDetails(ctx context.Context, trackID string) (*models.TrackDetails, error) {
	if m.DetailsFunc != nil {
		return m.DetailsFunc(ctx, trackID)
	}
	return &models.TrackDetails{}, nil
}

func (m *MockChecker) AddToPlaylist(ctx context.Context, trackID, playlistID string) error {
	m.AddCalls = append(m.AddCalls, [2]string{trackID, playlistID})
	if m.AddFunc != nil {
		return m.AddFunc(ctx, trackID, playlistID)
	}
	return nil
}

func (m *MockChecker) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
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
