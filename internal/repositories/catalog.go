package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/gamelog/internal/models"
	"github.com/desertthunder/gamelog/internal/shared"
)

// SyncRecord describes one successful cache refresh.
type SyncRecord struct {
	ID          string
	SyncedAt    time.Time
	GameCount   int
	SeriesCount int
}

// CatalogRepository persists the catalog snapshot.
type CatalogRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewCatalogRepository creates a CatalogRepository over a migrated database.
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db, now: time.Now}
}

// ReplaceAll swaps the cached catalog for c and records the sync.
func (r *CatalogRepository) ReplaceAll(c *models.Catalog) (*SyncRecord, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil catalog", shared.ErrInvalidInput)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM games"); err != nil {
		return nil, fmt.Errorf("failed to clear games: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM game_series"); err != nil {
		return nil, fmt.Errorf("failed to clear series: %w", err)
	}

	seriesStmt, err := tx.Prepare("INSERT INTO game_series (id, name, position) VALUES (?, ?, ?)")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare series insert: %w", err)
	}
	defer seriesStmt.Close()

	for i, s := range c.GameSeries {
		if _, err := seriesStmt.Exec(s.ID, s.Name, i); err != nil {
			return nil, fmt.Errorf("failed to insert series %d: %w", s.ID, err)
		}
	}

	gameStmt, err := tx.Prepare(`
		INSERT INTO games (id, name, status, series_id, theme_id, stats_id, showcase_id, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare game insert: %w", err)
	}
	defer gameStmt.Close()

	for i, g := range c.Games {
		status := g.Status
		if status == "" {
			status = models.StatusNone
		}
		_, err := gameStmt.Exec(g.ID, g.Name, string(status),
			nullInt(g.GameSeriesID), nullInt(g.ThemeID), nullInt(g.StatsID), nullInt(g.ShowcaseID), i)
		if err != nil {
			return nil, fmt.Errorf("failed to insert game %d: %w", g.ID, err)
		}
	}

	rec := &SyncRecord{
		ID:          shared.GenerateID(),
		SyncedAt:    r.now().UTC(),
		GameCount:   len(c.Games),
		SeriesCount: len(c.GameSeries),
	}
	_, err = tx.Exec(
		"INSERT INTO sync_log (id, synced_at, game_count, series_count) VALUES (?, ?, ?, ?)",
		rec.ID, rec.SyncedAt, rec.GameCount, rec.SeriesCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record sync: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit catalog: %w", err)
	}
	return rec, nil
}

// Load rebuilds the cached catalog in its original order. Each series
// carries its member games. Returns [shared.ErrCacheEmpty] before the first sync.
func (r *CatalogRepository) Load() (*models.Catalog, error) {
	if _, err := r.LastSynced(); err != nil {
		return nil, err
	}

	series, err := r.loadSeries()
	if err != nil {
		return nil, err
	}
	c := &models.Catalog{GameSeries: series}

	games, err := r.loadGames()
	if err != nil {
		return nil, err
	}
	c.Games = games

	index := make(map[int]int, len(c.GameSeries))
	for i, s := range c.GameSeries {
		index[s.ID] = i
	}
	for _, g := range games {
		if !g.InSeries() {
			continue
		}
		if i, ok := index[*g.GameSeriesID]; ok {
			c.GameSeries[i].Games = append(c.GameSeries[i].Games, g)
		}
	}

	return c, nil
}

func (r *CatalogRepository) loadSeries() ([]models.GameSeries, error) {
	rows, err := r.db.Query("SELECT id, name FROM game_series ORDER BY position, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query series: %w", err)
	}
	defer rows.Close()

	series := []models.GameSeries{}
	for rows.Next() {
		var s models.GameSeries
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("failed to scan series: %w", err)
		}
		s.Games = []models.Game{}
		series = append(series, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read series: %w", err)
	}
	return series, nil
}

func (r *CatalogRepository) loadGames() ([]models.Game, error) {
	rows, err := r.db.Query(`
		SELECT id, name, status, series_id, theme_id, stats_id, showcase_id
		FROM games
		ORDER BY position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	games := []models.Game{}
	for rows.Next() {
		var (
			g                                      models.Game
			status                                 string
			seriesID, themeID, statsID, showcaseID sql.NullInt64
		)
		if err := rows.Scan(&g.ID, &g.Name, &status, &seriesID, &themeID, &statsID, &showcaseID); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		g.Status = models.Status(status)
		g.GameSeriesID = intPtr(seriesID)
		g.ThemeID = intPtr(themeID)
		g.StatsID = intPtr(statsID)
		g.ShowcaseID = intPtr(showcaseID)
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read games: %w", err)
	}
	return games, nil
}

// LastSynced returns the newest sync record or [shared.ErrCacheEmpty].
func (r *CatalogRepository) LastSynced() (*SyncRecord, error) {
	var rec SyncRecord
	err := r.db.QueryRow(`
		SELECT id, synced_at, game_count, series_count
		FROM sync_log
		ORDER BY synced_at DESC
		LIMIT 1
	`).Scan(&rec.ID, &rec.SyncedAt, &rec.GameCount, &rec.SeriesCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrCacheEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sync log: %w", err)
	}
	return &rec, nil
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
