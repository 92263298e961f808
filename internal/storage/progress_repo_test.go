package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repos(t *testing.T) map[string]ProgressRepo {
	t.Helper()

	badgerRepo, err := NewBadgerProgressRepo(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { badgerRepo.Close() })

	return map[string]ProgressRepo{
		"memory": NewMemoryProgressRepo(),
		"badger": badgerRepo,
	}
}

func TestProgressRepoRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			got, err := repo.Get(ctx, "nope")
			require.NoError(t, err)
			assert.Nil(t, got, "неизвестный уровень — nil без ошибки")

			require.NoError(t, repo.Save(ctx, &Progress{LevelName: "lv1", BestScore: 300}))

			got, err = repo.Get(ctx, "lv1")
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, 300, got.BestScore)

			list, err := repo.List(ctx)
			require.NoError(t, err)
			assert.Len(t, list, 1)
		})
	}
}

func TestRecordResultKeepsBest(t *testing.T) {
	ctx := context.Background()

	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, RecordResult(ctx, repo, "lv1", 500, true))
			require.NoError(t, RecordResult(ctx, repo, "lv1", 200, false))

			got, err := repo.Get(ctx, "lv1")
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, 500, got.BestScore, "худший забег не затирает лучший счёт")
			assert.True(t, got.Completed, "флаг прохождения не сбрасывается")

			require.NoError(t, RecordResult(ctx, repo, "lv1", 900, false))
			got, _ = repo.Get(ctx, "lv1")
			assert.Equal(t, 900, got.BestScore)
		})
	}
}
