package archive

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarrylabs/exprquest/internal/search"
)

func testArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func testConfig() search.Config {
	return search.Config{
		AtomCount:   4,
		Target:      24,
		MaxCost:     5,
		MaxDuration: time.Hour,
		KeepTop:     5,
	}
}

func runSearch(t *testing.T, cfg search.Config) *search.Result {
	t.Helper()
	res, err := search.New(cfg).Run(context.Background())
	require.NoError(t, err)
	return res
}

func TestSaveAndLoadRun(t *testing.T) {
	a := testArchive(t)
	cfg := testConfig()
	res := runSearch(t, cfg)

	id, err := a.SaveRun(context.Background(), cfg, res)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	rec, err := a.LoadRun(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, id, rec.ID)
	assert.Equal(t, cfg, rec.Config)
	assert.Equal(t, res.Candidates, rec.Candidates)
	assert.Equal(t, res.Stats.Considered, rec.Considered)
	assert.Equal(t, res.Stats.HighestCost, rec.HighestCost)
	assert.Equal(t, res.Stats.Stopped, rec.Stopped)
	assert.Equal(t, len(res.Candidates), rec.Results)
	assert.False(t, rec.CreatedAt.IsZero())
}

func TestLoadRun_NotFound(t *testing.T) {
	a := testArchive(t)
	_, err := a.LoadRun(context.Background(), "no-such-run")
	require.ErrorIs(t, err, ErrRunNotFound)
}

func TestListRuns(t *testing.T) {
	a := testArchive(t)

	runs, err := a.ListRuns(context.Background())
	require.NoError(t, err)
	assert.Empty(t, runs)

	cfg := testConfig()
	res := runSearch(t, cfg)
	firstID, err := a.SaveRun(context.Background(), cfg, res)
	require.NoError(t, err)
	secondID, err := a.SaveRun(context.Background(), cfg, res)
	require.NoError(t, err)

	runs, err = a.ListRuns(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 2)

	ids := []string{runs[0].ID, runs[1].ID}
	assert.Contains(t, ids, firstID)
	assert.Contains(t, ids, secondID)
	for _, r := range runs {
		assert.Equal(t, 24.0, r.Target)
		assert.Equal(t, len(res.Candidates), r.Results)
		assert.False(t, r.CreatedAt.IsZero())
	}
	assert.False(t, runs[1].CreatedAt.Before(runs[0].CreatedAt))
}

// TestReplay_Identical replays an archived deterministic run and expects
// an exact match.
func TestReplay_Identical(t *testing.T) {
	a := testArchive(t)
	cfg := testConfig()
	res := runSearch(t, cfg)

	id, err := a.SaveRun(context.Background(), cfg, res)
	require.NoError(t, err)

	report, err := a.Replay(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, report.RunID)
	assert.True(t, report.Identical)
	assert.Empty(t, report.Mismatches)
}

func TestReplay_NotFound(t *testing.T) {
	a := testArchive(t)
	_, err := a.Replay(context.Background(), "no-such-run")
	require.ErrorIs(t, err, ErrRunNotFound)
}

func TestCompareCandidates(t *testing.T) {
	base := []search.Candidate{
		{Error: 0, Value: 24, Text: "(4 * (2 * 3))"},
		{Error: 1, Value: 23, Text: "(24 - 1)"},
	}

	assert.Empty(t, compareCandidates(base, base))

	shorter := base[:1]
	diffs := compareCandidates(base, shorter)
	require.Len(t, diffs, 1)
	assert.Contains(t, diffs[0], "result count")

	changed := []search.Candidate{base[0], {Error: 1, Value: 23, Text: "(25 - 2)"}}
	diffs = compareCandidates(base, changed)
	require.Len(t, diffs, 1)
	assert.Contains(t, diffs[0], "rank 1 expr")
}

// TestOpen_Reopen checks that opening an existing archive is idempotent and
// preserves saved runs.
func TestOpen_Reopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "runs.db")

	a, err := Open(path)
	require.NoError(t, err)
	cfg := testConfig()
	id, err := a.SaveRun(context.Background(), cfg, runSearch(t, cfg))
	require.NoError(t, err)
	require.NoError(t, a.Close())

	b, err := Open(path)
	require.NoError(t, err)
	defer b.Close()

	rec, err := b.LoadRun(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, rec.ID)
}
