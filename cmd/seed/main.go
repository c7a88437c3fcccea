// Command seed populates the tests table with sample user records for
// local development. All rows are inserted in a single transaction so a
// partial seed never leaks into the table.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	postgres "github.com/heartmarshall/userdir-backend/internal/adapter/postgres"
	recordrepo "github.com/heartmarshall/userdir-backend/internal/adapter/postgres/record"
	"github.com/heartmarshall/userdir-backend/internal/app"
	"github.com/heartmarshall/userdir-backend/internal/config"
	"github.com/heartmarshall/userdir-backend/internal/domain"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	repo := recordrepo.New(pool)
	txm := postgres.NewTxManager(pool)

	drafts := sampleDrafts()

	err = txm.RunInTx(ctx, func(ctx context.Context) error {
		for _, draft := range drafts {
			if _, err := repo.Create(ctx, draft); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("seed completed", slog.Int("inserted", len(drafts)))
}

func sampleDrafts() []domain.RecordDraft {
	age := func(v float64) *float64 { return &v }

	return []domain.RecordDraft{
		{Name: "Kim Minji", Phone: "010-2345-6789", Age: age(29)},
		{Name: "Lee Junho", Phone: "010-9876-5432", Age: age(34)},
		{Name: "Park Seoyeon", Phone: "010-1111-2222", Age: age(41)},
		{Name: "Choi Dongwook", Phone: "010-3333-4444", Age: nil},
		{Name: "Han Jiwoo", Phone: "010-5555-6666", Age: age(25)},
		{Name: "", Phone: "010-7777-8888", Age: age(52)},
	}
}
