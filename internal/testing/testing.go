// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/gamelog/internal/models"
)

// MockCatalogService is a test double for services.CatalogService.
//
// Created games and series are recorded in call order. Catalog is returned by ListAll.
type MockCatalogService struct {
	mu sync.Mutex

	Catalog   *models.Catalog
	Games     []string
	Series    []models.SeriesRequest
	CreateErr error
	ListErr   error

	// FailNames makes CreateGame/CreateSeries fail for the given names only.
	FailNames map[string]error
}

func (m *MockCatalogService) CreateGame(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failFor(name); err != nil {
		return err
	}
	m.Games = append(m.Games, name)
	return nil
}

func (m *MockCatalogService) CreateSeries(ctx context.Context, req models.SeriesRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failFor(req.Name); err != nil {
		return err
	}
	m.Series = append(m.Series, req)
	return nil
}

func (m *MockCatalogService) ListAll(ctx context.Context) (*models.Catalog, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	if m.Catalog == nil {
		return &models.Catalog{}, nil
	}
	return m.Catalog, nil
}

func (m *MockCatalogService) failFor(name string) error {
	if err, ok := m.FailNames[name]; ok {
		return err
	}
	return m.CreateErr
}

// MockPlaylistService is a test double for services.PlaylistService.
//
// Unknown ids return Err, or an empty [models.PlaylistInfo] when Err is nil.
type MockPlaylistService struct {
	mu sync.Mutex

	Infos map[string]models.PlaylistInfo
	Errs  map[string]error
	Err   error
	Calls []string
}

func (m *MockPlaylistService) PlaylistInfo(ctx context.Context, playlistID string) (*models.PlaylistInfo, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, playlistID)
	m.mu.Unlock()

	if err, ok := m.Errs[playlistID]; ok {
		return nil, err
	}
	if info, ok := m.Infos[playlistID]; ok {
		info.PlaylistID = playlistID
		return &info, nil
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return &models.PlaylistInfo{PlaylistID: playlistID}, nil
}

// CallCount returns the number of lookups made so far.
func (m *MockPlaylistService) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

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

// Ptr returns a pointer to v, for optional model fields.
func Ptr[T any](v T) *T { return &v }
