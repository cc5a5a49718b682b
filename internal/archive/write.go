package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quarrylabs/exprquest/internal/profile"
	"github.com/quarrylabs/exprquest/internal/search"
)

// SaveRun archives a completed run and returns its ID. The run row and all
// result rows commit in one transaction; a partially written run is never
// visible.
func (a *Archive) SaveRun(ctx context.Context, cfg search.Config, res *search.Result) (string, error) {
	snapshot, err := profile.MarshalConfig(cfg)
	if err != nil {
		return "", fmt.Errorf("snapshotting config: %w", err)
	}

	id := uuid.NewString()
	createdAt := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stopped := 0
	if res.Stats.Stopped {
		stopped = 1
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, target, config, considered, highest_cost, elapsed_ns, stopped)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, createdAt, cfg.Target, string(snapshot),
		int64(res.Stats.Considered), res.Stats.HighestCost,
		res.Stats.Elapsed.Nanoseconds(), stopped,
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	for rank, c := range res.Candidates {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO results (run_id, rank, err, value, expr)
			VALUES (?, ?, ?, ?, ?)`,
			id, rank, c.Error, c.Value, c.Text,
		)
		if err != nil {
			return "", fmt.Errorf("inserting result %d: %w", rank, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return id, nil
}
