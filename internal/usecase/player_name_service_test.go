package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/fconline-tracker/internal/domain/performance"
	"github.com/riskibarqy/fconline-tracker/internal/infrastructure/repository/memory"
	performancemock "github.com/riskibarqy/fconline-tracker/internal/mocks/domain/performance"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func seededPerformances() *memory.PerformanceRepository {
	return memory.NewPerformanceRepository([]performance.PlayerPerformance{
		{ID: 1, MatchID: 10, SpID: 100, PlayerName: "Unknown Player (100)"},
		{ID: 2, MatchID: 10, SpID: 999, PlayerName: "Unknown Player (999)"},
		{ID: 3, MatchID: 10, SpID: 101000001, PlayerName: "Unknown Player"},
		{ID: 4, MatchID: 11, SpID: 100, PlayerName: "Pelé"},
	})
}

func TestPlayerNameService_Update_ResolvesKnownPlayers(t *testing.T) {
	t.Parallel()

	repo := seededPerformances()
	service := NewPlayerNameService(repo, newTestResolver(newFakeSource(testTables())), 1, nil)

	result, err := service.Update(context.Background(), UpdatePlayerNamesInput{})
	require.NoError(t, err)
	require.Equal(t, UpdatePlayerNamesResult{Candidates: 3, Updated: 2, Unresolved: 1}, result)

	row, _ := repo.Get(1)
	require.Equal(t, "Pelé", row.PlayerName)
	row, _ = repo.Get(2)
	require.Equal(t, "Unknown Player (999)", row.PlayerName)
	row, _ = repo.Get(3)
	require.Equal(t, "Thierry Henry", row.PlayerName)
}

func TestPlayerNameService_Update_IsIdempotent(t *testing.T) {
	t.Parallel()

	repo := seededPerformances()
	service := NewPlayerNameService(repo, newTestResolver(newFakeSource(testTables())), 0, nil)
	ctx := context.Background()

	_, err := service.Update(ctx, UpdatePlayerNamesInput{})
	require.NoError(t, err)
	writes := repo.Writes()

	again, err := service.Update(ctx, UpdatePlayerNamesInput{})
	require.NoError(t, err)
	require.Equal(t, 1, again.Candidates)
	require.Equal(t, 0, again.Updated)
	require.Equal(t, writes, repo.Writes())
}

func TestPlayerNameService_Update_RespectsLimit(t *testing.T) {
	t.Parallel()

	repo := seededPerformances()
	service := NewPlayerNameService(repo, newTestResolver(newFakeSource(testTables())), 0, nil)

	result, err := service.Update(context.Background(), UpdatePlayerNamesInput{Limit: 1})
	require.NoError(t, err)
	require.Equal(t, 1, result.Candidates)
	require.Equal(t, 1, result.Updated)

	row, _ := repo.Get(2)
	require.Equal(t, "Unknown Player (999)", row.PlayerName)
	row, _ = repo.Get(3)
	require.Equal(t, "Unknown Player", row.PlayerName)
}

func TestPlayerNameService_Update_RejectsNegativeLimit(t *testing.T) {
	t.Parallel()

	service := NewPlayerNameService(seededPerformances(), newTestResolver(newFakeSource(testTables())), 0, nil)
	_, err := service.Update(context.Background(), UpdatePlayerNamesInput{Limit: -1})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPlayerNameService_Update_MetadataUnavailableLeavesRows(t *testing.T) {
	t.Parallel()

	repo := seededPerformances()
	service := NewPlayerNameService(repo, newTestResolver(failingSource()), 0, nil)

	result, err := service.Update(context.Background(), UpdatePlayerNamesInput{})
	require.NoError(t, err)
	require.Equal(t, 3, result.Unresolved)
	require.Equal(t, 0, repo.Writes())
}

func TestPlayerNameService_Update_ContinuesAfterWriteFailureUsingMockery(t *testing.T) {
	t.Parallel()

	repo := performancemock.NewRepository(t)
	service := NewPlayerNameService(repo, newTestResolver(newFakeSource(testTables())), 0, nil)

	repo.
		On("ListByNamePrefix", mock.Anything, UnknownPlayerPrefix, 0).
		Return([]performance.PlayerPerformance{
			{ID: 1, SpID: 100, PlayerName: "Unknown Player (100)"},
			{ID: 3, SpID: 101000001, PlayerName: "Unknown Player (101000001)"},
		}, nil).
		Once()
	repo.
		On("UpdateName", mock.Anything, int64(1), "Pelé").
		Return(errors.New("connection reset")).
		Once()
	repo.
		On("UpdateName", mock.Anything, int64(3), "Thierry Henry").
		Return(nil).
		Once()

	result, err := service.Update(context.Background(), UpdatePlayerNamesInput{})
	if err != nil {
		t.Fatalf("update player names: %v", err)
	}
	if result.Failed != 1 || result.Updated != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestPlayerNameService_Update_ListFailureIsReturned(t *testing.T) {
	t.Parallel()

	repo := performancemock.NewRepository(t)
	service := NewPlayerNameService(repo, newTestResolver(newFakeSource(testTables())), 0, nil)

	repo.
		On("ListByNamePrefix", mock.Anything, UnknownPlayerPrefix, 0).
		Return(nil, errors.New("db down")).
		Once()

	if _, err := service.Update(context.Background(), UpdatePlayerNamesInput{}); err == nil {
		t.Fatalf("expected list failure to surface")
	}
}
