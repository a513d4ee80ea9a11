package shared

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrationRunner(t *testing.T) {
	t.Run("loadMigrations", func(t *testing.T) {
		migrations, err := loadMigrations()
		if err != nil {
			t.Fatalf("failed to load migrations: %v", err)
		}

		if len(migrations) < 2 {
			t.Fatalf("expected at least two migrations, got %d", len(migrations))
		}

		for i := 1; i < len(migrations); i++ {
			if migrations[i].Version <= migrations[i-1].Version {
				t.Errorf("migrations not sorted: version %d comes after %d", migrations[i].Version, migrations[i-1].Version)
			}
		}

		if migrations[0].Name != "create_catalog" {
			t.Errorf("expected first migration name create_catalog, got %q", migrations[0].Name)
		}
	})

	t.Run("RunMigrations And Rollback", func(t *testing.T) {
		db := newTestDB(t)

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		for _, table := range []string{"games", "game_series", "sync_log"} {
			if _, err := db.Exec("SELECT 1 FROM " + table + " LIMIT 1"); err != nil {
				t.Errorf("%s table should exist after migrations: %v", table, err)
			}
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("failed to rollback migration: %v", err)
		}

		if _, err := db.Exec("SELECT 1 FROM sync_log LIMIT 1"); err == nil {
			t.Error("sync_log table should be dropped after rollback")
		}
		if _, err := db.Exec("SELECT 1 FROM games LIMIT 1"); err != nil {
			t.Errorf("games table should survive a single rollback: %v", err)
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("failed to rollback second migration: %v", err)
		}
		if err := RollbackMigration(db); err == nil {
			t.Error("expected error when nothing is left to roll back")
		}
	})

	t.Run("Idempotent Migrations", func(t *testing.T) {
		db := newTestDB(t)

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations first time: %v", err)
		}
		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations second time: %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
			t.Fatalf("failed to query schema_migrations: %v", err)
		}

		migrations, _ := loadMigrations()
		if count != len(migrations) {
			t.Errorf("expected %d migrations to be applied, got %d", len(migrations), count)
		}
	})

	t.Run("OpenDatabase", func(t *testing.T) {
		db, err := OpenDatabase(DatabaseConfig{Path: filepath.Join(t.TempDir(), "open.db"), MaxOpenConns: 1})
		if err != nil {
			t.Fatalf("OpenDatabase() error = %v", err)
		}
		defer db.Close()

		if _, err := db.Exec("SELECT 1 FROM games LIMIT 1"); err != nil {
			t.Errorf("expected migrated schema: %v", err)
		}
	})
}

func TestRemoveComments(t *testing.T) {
	got := removeComments("-- header\nCREATE TABLE x (id INT); -- trailing\n\n")
	if got != "CREATE TABLE x (id INT);" {
		t.Errorf("removeComments() = %q", got)
	}
}

func TestExecMigration(t *testing.T) {
	t.Run("semicolons inside comments", func(t *testing.T) {
		db := newTestDB(t)
		script := "-- first table; holds nothing interesting\nCREATE TABLE a (id INTEGER);\n" +
			"CREATE TABLE b (id INTEGER); -- second; also empty\n"

		noop := func(*sql.Tx) error { return nil }
		if err := execMigration(db, script, noop); err != nil {
			t.Fatalf("execMigration() error = %v", err)
		}

		for _, table := range []string{"a", "b"} {
			if _, err := db.Exec("SELECT 1 FROM " + table + " LIMIT 1"); err != nil {
				t.Errorf("%s table should exist: %v", table, err)
			}
		}
	})

	t.Run("embedded scripts apply in order", func(t *testing.T) {
		db := newTestDB(t)
		migrations, err := loadMigrations()
		if err != nil {
			t.Fatalf("failed to load migrations: %v", err)
		}

		noop := func(*sql.Tx) error { return nil }
		for _, m := range migrations {
			if err := execMigration(db, m.Up, noop); err != nil {
				t.Fatalf("migration %d (%s) failed: %v", m.Version, m.Name, err)
			}
		}
	})

	t.Run("failing statement rolls back", func(t *testing.T) {
		db := newTestDB(t)
		script := "CREATE TABLE c (id INTEGER);\nNOT SQL;"

		if err := execMigration(db, script, func(*sql.Tx) error { return nil }); err == nil {
			t.Fatal("expected error for invalid statement")
		}
		if _, err := db.Exec("SELECT 1 FROM c LIMIT 1"); err == nil {
			t.Error("table c should not exist after a failed migration")
		}
	})
}
