package tasks

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/desertthunder/gamelog/internal/editor"
	"github.com/desertthunder/gamelog/internal/models"
	"github.com/desertthunder/gamelog/internal/repositories"
	"github.com/desertthunder/gamelog/internal/shared"
	tu "github.com/desertthunder/gamelog/internal/testing"
)

type mockCache struct {
	saved *models.Catalog
	err   error
}

func (m *mockCache) ReplaceAll(c *models.Catalog) (*repositories.SyncRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.saved = c
	return &repositories.SyncRecord{ID: "sync-1", GameCount: len(c.Games), SeriesCount: len(c.GameSeries)}, nil
}

func drain(ch chan ProgressUpdate) []ProgressUpdate {
	close(ch)
	var out []ProgressUpdate
	for u := range ch {
		out = append(out, u)
	}
	return out
}

func TestEngineSubmit(t *testing.T) {
	tests := []struct {
		name       string
		draft      editor.Draft
		wantGames  []string
		wantSeries []models.SeriesRequest
	}{
		{
			name:      "single game",
			draft:     editor.Draft{MainName: "Celeste"},
			wantGames: []string{"Celeste"},
		},
		{
			name:      "blank fields only is still a game",
			draft:     editor.Draft{MainName: "Hades", Fields: []editor.Field{{ID: 1, Value: "  "}}},
			wantGames: []string{"Hades"},
		},
		{
			name: "series",
			draft: editor.Draft{MainName: "Halo", Fields: []editor.Field{
				{ID: 1, Value: "Halo: CE"}, {ID: 2, Value: ""}, {ID: 3, Value: " Halo 2 "},
			}},
			wantSeries: []models.SeriesRequest{{Name: "Halo", GameNames: []string{"Halo: CE", "Halo 2"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &tu.MockCatalogService{}
			engine := NewEngine(svc, nil)

			if err := engine.Submit(context.Background(), tt.draft); err != nil {
				t.Fatalf("Submit() error = %v", err)
			}
			if !reflect.DeepEqual(svc.Games, tt.wantGames) {
				t.Errorf("games = %v, want %v", svc.Games, tt.wantGames)
			}
			if !reflect.DeepEqual(svc.Series, tt.wantSeries) {
				t.Errorf("series = %v, want %v", svc.Series, tt.wantSeries)
			}
		})
	}

	t.Run("service error is returned", func(t *testing.T) {
		svc := &tu.MockCatalogService{CreateErr: shared.ErrAPIRequest}
		err := NewEngine(svc, nil).Submit(context.Background(), editor.Draft{MainName: "X"})
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("missing service", func(t *testing.T) {
		err := NewEngine(nil, nil).Submit(context.Background(), editor.Draft{MainName: "X"})
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("editor confirm goes through engine", func(t *testing.T) {
		svc := &tu.MockCatalogService{}
		engine := NewEngine(svc, nil)

		ed := editor.New()
		ed.SetMainName("Portal")
		ed.SetFieldValue(ed.AddField(), "Portal 2")
		ed.ApplyMaskAt(editor.MaskSpace, 0)

		if err := ed.Confirm(context.Background(), engine); err != nil {
			t.Fatalf("Confirm() error = %v", err)
		}
		want := []models.SeriesRequest{{Name: "Portal", GameNames: []string{"Portal Portal 2"}}}
		if !reflect.DeepEqual(svc.Series, want) {
			t.Errorf("series = %v, want %v", svc.Series, want)
		}
		if ed.MainName() != "" || ed.Len() != 0 {
			t.Error("editor should reset after a successful confirm")
		}
	})
}

func TestEngineSync(t *testing.T) {
	seriesID := 2
	catalog := &models.Catalog{
		GameSeries: []models.GameSeries{{ID: 2, Name: "Halo"}},
		Games: []models.Game{
			{ID: 1, Name: "Halo 1", Status: models.StatusComplete, GameSeriesID: &seriesID},
			{ID: 3, Name: "Celeste", Status: models.StatusWait},
		},
	}

	t.Run("without cache", func(t *testing.T) {
		engine := NewEngine(&tu.MockCatalogService{Catalog: catalog}, nil)
		progress := make(chan ProgressUpdate, 10)

		result, err := engine.Sync(context.Background(), progress)
		if err != nil {
			t.Fatalf("Sync() error = %v", err)
		}
		if len(result.Entries) != 2 || result.Record != nil {
			t.Errorf("unexpected result %+v", result)
		}

		updates := drain(progress)
		if len(updates) != 2 || updates[0].Phase != FetchCatalog {
			t.Errorf("unexpected progress %+v", updates)
		}
	})

	t.Run("with cache", func(t *testing.T) {
		cache := &mockCache{}
		engine := NewEngine(&tu.MockCatalogService{Catalog: catalog}, nil)
		engine.SetCache(cache)

		result, err := engine.Sync(context.Background(), nil)
		if err != nil {
			t.Fatalf("Sync() error = %v", err)
		}
		if cache.saved != catalog {
			t.Error("expected catalog to be cached")
		}
		if result.Record == nil || result.Record.GameCount != 2 {
			t.Errorf("unexpected sync record %+v", result.Record)
		}
	})

	t.Run("cache failure keeps fetched catalog", func(t *testing.T) {
		engine := NewEngine(&tu.MockCatalogService{Catalog: catalog}, nil)
		engine.SetCache(&mockCache{err: errors.New("disk full")})

		result, err := engine.Sync(context.Background(), nil)
		if err == nil {
			t.Fatal("expected cache error")
		}
		if result == nil || result.Catalog != catalog {
			t.Error("fetched catalog should still be returned")
		}
	})

	t.Run("fetch failure", func(t *testing.T) {
		engine := NewEngine(&tu.MockCatalogService{ListErr: shared.ErrAPIRequest}, nil)
		if _, err := engine.Sync(context.Background(), nil); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})
}

func TestProgressNeverBlocks(t *testing.T) {
	engine := NewEngine(&tu.MockCatalogService{}, nil)
	full := make(chan ProgressUpdate)

	if _, err := engine.Sync(context.Background(), full); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
}

func TestPhaseString(t *testing.T) {
	for phase, want := range map[Phase]string{
		FetchCatalog:    "fetch_catalog",
		CacheCatalog:    "cache_catalog",
		LookupPlaylists: "lookup_playlists",
		SubmitDrafts:    "submit_drafts",
		Phase(99):       "",
	} {
		if got := phase.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", phase, got, want)
		}
	}
}
