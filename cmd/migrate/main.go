package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/samirrijal/campusroute/internal/pkg/config"
	"github.com/samirrijal/campusroute/migrations"
)

const downSQL = `
	DROP TABLE IF EXISTS sessions;
	DROP TABLE IF EXISTS offerings;
	DROP TABLE IF EXISTS courses;
	DROP TABLE IF EXISTS buildings;
	DROP TABLE IF EXISTS schema_migrations;
`

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: migrate <up|down|status>")
	}

	_ = godotenv.Load()

	cfg, err := config.Load("campusroute-migrate")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.ValidateDatabase(); err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	switch os.Args[1] {
	case "up":
		if err := up(ctx, pool); err != nil {
			log.Fatalf("up: %v", err)
		}
	case "down":
		if _, err := pool.Exec(ctx, downSQL); err != nil {
			log.Fatalf("down: %v", err)
		}
		log.Println("all tables dropped")
	case "status":
		if err := status(ctx, pool); err != nil {
			log.Fatalf("status: %v", err)
		}
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}

func files() ([]string, error) {
	names, err := fs.Glob(migrations.FS, "*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

func applied(ctx context.Context, pool *pgxpool.Pool) (map[string]bool, error) {
	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name       TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		return nil, err
	}
	rows, err := pool.Query(ctx, `SELECT name FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	done := make(map[string]bool, len(names))
	for _, n := range names {
		done[n] = true
	}
	return done, nil
}

// up applies each pending file in its own transaction, in name order.
func up(ctx context.Context, pool *pgxpool.Pool) error {
	names, err := files()
	if err != nil {
		return err
	}
	done, err := applied(ctx, pool)
	if err != nil {
		return err
	}

	for _, name := range names {
		if done[name] {
			fmt.Printf("--  %s\n", name)
			continue
		}
		data, err := migrations.FS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, string(data)); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, name)
			return err
		})
		if err != nil {
			return fmt.Errorf("exec %s: %w", name, err)
		}
		fmt.Printf("OK  %s\n", name)
	}

	log.Println("all migrations applied")
	return nil
}

func status(ctx context.Context, pool *pgxpool.Pool) error {
	names, err := files()
	if err != nil {
		return err
	}
	done, err := applied(ctx, pool)
	if err != nil {
		return err
	}
	for _, name := range names {
		state := "pending"
		if done[name] {
			state = "applied"
		}
		fmt.Printf("%-8s %s\n", state, name)
	}
	return nil
}
