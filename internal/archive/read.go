package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/quarrylabs/exprquest/internal/profile"
	"github.com/quarrylabs/exprquest/internal/search"
)

// ErrRunNotFound is returned when the requested run ID does not exist.
var ErrRunNotFound = errors.New("run not found")

// RunSummary is the listing view of an archived run.
type RunSummary struct {
	ID          string        `json:"id"`
	CreatedAt   time.Time     `json:"created_at"`
	Target      float64       `json:"target"`
	Considered  uint64        `json:"considered"`
	HighestCost int           `json:"highest_cost"`
	Elapsed     time.Duration `json:"elapsed_ns"`
	Stopped     bool          `json:"stopped"`
	Results     int           `json:"results"`
}

// RunRecord is a fully loaded archived run.
type RunRecord struct {
	RunSummary
	Config     search.Config
	Candidates []search.Candidate
}

// ListRuns returns summaries of every archived run, oldest first.
// The ordering is fixed (created_at, then id) so listings are stable.
func (a *Archive) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT r.id, r.created_at, r.target, r.considered, r.highest_cost, r.elapsed_ns, r.stopped,
		       (SELECT COUNT(*) FROM results WHERE run_id = r.id)
		FROM runs r
		ORDER BY r.created_at ASC, r.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// LoadRun loads one archived run with its configuration and full result
// set, results ordered by rank.
func (a *Archive) LoadRun(ctx context.Context, id string) (*RunRecord, error) {
	row := a.db.QueryRowContext(ctx, `
		SELECT r.id, r.created_at, r.target, r.considered, r.highest_cost, r.elapsed_ns, r.stopped,
		       (SELECT COUNT(*) FROM results WHERE run_id = r.id),
		       r.config
		FROM runs r
		WHERE r.id = ?`, id)

	var (
		rec        RunRecord
		createdAt  string
		stopped    int
		considered int64
		elapsedNS  int64
		configJSON string
	)
	err := row.Scan(&rec.ID, &createdAt, &rec.Target, &considered, &rec.HighestCost,
		&elapsedNS, &stopped, &rec.Results, &configJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading run %s: %w", id, err)
	}

	rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at for run %s: %w", id, err)
	}
	rec.Considered = uint64(considered)
	rec.Elapsed = time.Duration(elapsedNS)
	rec.Stopped = stopped != 0

	rec.Config, err = profile.UnmarshalConfig([]byte(configJSON))
	if err != nil {
		return nil, fmt.Errorf("restoring config for run %s: %w", id, err)
	}

	rows, err := a.db.QueryContext(ctx, `
		SELECT err, value, expr
		FROM results
		WHERE run_id = ?
		ORDER BY rank ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("loading results for run %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var c search.Candidate
		if err := rows.Scan(&c.Error, &c.Value, &c.Text); err != nil {
			return nil, fmt.Errorf("scanning result for run %s: %w", id, err)
		}
		rec.Candidates = append(rec.Candidates, c)
	}
	return &rec, rows.Err()
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSummary(row rowScanner) (RunSummary, error) {
	var (
		s          RunSummary
		createdAt  string
		considered int64
		elapsedNS  int64
		stopped    int
	)
	err := row.Scan(&s.ID, &createdAt, &s.Target, &considered, &s.HighestCost,
		&elapsedNS, &stopped, &s.Results)
	if err != nil {
		return RunSummary{}, fmt.Errorf("scanning run summary: %w", err)
	}
	s.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return RunSummary{}, fmt.Errorf("parsing created_at: %w", err)
	}
	s.Considered = uint64(considered)
	s.Elapsed = time.Duration(elapsedNS)
	s.Stopped = stopped != 0
	return s, nil
}
