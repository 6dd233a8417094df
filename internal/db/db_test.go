package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/codr1/pickleleague/internal/config"
	dbgen "github.com/codr1/pickleleague/internal/db/generated"
)

func TestNormalizeDSN(t *testing.T) {
	cases := []struct {
		name string
		dsn  string
		want string
	}{
		{"plain file", "data/app.db", "data/app.db?_fk=1&_busy_timeout=5000&_txlock=immediate"},
		{"existing params", "file:app.db?mode=rwc", "file:app.db?mode=rwc&_fk=1&_busy_timeout=5000&_txlock=immediate"},
		{"caller wins", "app.db?_busy_timeout=100&_txlock=deferred", "app.db?_busy_timeout=100&_txlock=deferred&_fk=1"},
	}
	for _, tc := range cases {
		if got := normalizeDSN(tc.dsn, 5000); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestNewFromConfigMigratesAndEnforcesForeignKeys(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.Driver = "sqlite"
	cfg.Database.Filename = filepath.Join(t.TempDir(), "nested", "league.db")

	database, err := NewFromConfig(cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	ctx := context.Background()
	for _, table := range []string{"leagues", "divisions", "players", "registrations", "league_matches", "match_games", "disputed_scores"} {
		var name string
		err := database.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		if err != nil {
			t.Fatalf("expected table %s: %v", table, err)
		}
	}

	_, err = database.ExecContext(ctx, "INSERT INTO divisions (league_id, name) VALUES (9999, 'Orphan')")
	if err == nil {
		t.Fatalf("expected foreign key violation")
	}

	cfg.Database.Driver = "postgres"
	if _, err := NewFromConfig(cfg); err == nil {
		t.Fatalf("expected unsupported driver error")
	}
}

func TestRunInTxRollsBack(t *testing.T) {
	database, err := New(filepath.Join(t.TempDir(), "tx.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	ctx := context.Background()
	errAbort := errors.New("abort")
	err = database.RunInTx(ctx, func(tx *DB) error {
		if _, err := tx.Queries.CreatePlayer(ctx, dbgen.CreatePlayerParams{Name: "Rolled Back"}); err != nil {
			return err
		}
		return errAbort
	})
	if !errors.Is(err, errAbort) {
		t.Fatalf("expected the callback error back, got %v", err)
	}

	var count int
	if err := database.QueryRowContext(ctx, "SELECT COUNT(*) FROM players").Scan(&count); err != nil {
		t.Fatalf("count players: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback to discard the player, found %d", count)
	}
}
