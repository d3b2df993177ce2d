package services

import (
	"context"
	"testing"

	"github.com/athebyme/storefront-platform/services/catalog-service/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagService(storage *fakeStorage) *FlagService {
	return NewFlagService(storage, fakeTxManager{}, &fakeMessaging{}, nopLogger{})
}

func positionsByName(t *testing.T, svc *FlagService) map[string]int {
	t.Helper()
	flags, err := svc.ListFlags(context.Background())
	require.NoError(t, err)
	out := map[string]int{}
	for _, f := range flags {
		out[f.Name] = f.Position
	}
	return out
}

func TestFlagService_CreateAssignsNextPosition(t *testing.T) {
	svc := newFlagService(newFakeStorage())
	ctx := context.Background()

	for i, name := range []string{"Новинка", "Хит", "Распродажа"} {
		flag, err := svc.CreateFlag(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, i, flag.Position)
		assert.NotEmpty(t, flag.ID)
	}
}

func TestFlagService_DeleteClosesPositionGap(t *testing.T) {
	storage := newFakeStorage()
	svc := newFlagService(storage)
	ctx := context.Background()

	first, err := svc.CreateFlag(ctx, "Первая")
	require.NoError(t, err)
	second, err := svc.CreateFlag(ctx, "Вторая")
	require.NoError(t, err)
	_, err = svc.CreateFlag(ctx, "Третья")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFlag(ctx, second.ID))

	positions := positionsByName(t, svc)
	assert.Equal(t, map[string]int{"Первая": 0, "Третья": 1}, positions)

	// Первая метка не сдвигается
	got, err := svc.GetFlag(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Position)
}

func TestFlagService_DeleteMissingFlag(t *testing.T) {
	svc := newFlagService(newFakeStorage())

	err := svc.DeleteFlag(context.Background(), "missing-id")
	assert.ErrorIs(t, err, utils.ErrFlagNotFound)
}

func TestFlagService_ReorderRewritesPositions(t *testing.T) {
	svc := newFlagService(newFakeStorage())
	ctx := context.Background()

	a, _ := svc.CreateFlag(ctx, "А")
	b, _ := svc.CreateFlag(ctx, "Б")
	c, _ := svc.CreateFlag(ctx, "В")

	require.NoError(t, svc.ReorderFlags(ctx, []string{c.ID, a.ID, b.ID}))

	positions := positionsByName(t, svc)
	assert.Equal(t, map[string]int{"В": 0, "А": 1, "Б": 2}, positions)
}

func TestFlagService_ReorderRejectsIncompleteList(t *testing.T) {
	svc := newFlagService(newFakeStorage())
	ctx := context.Background()

	a, _ := svc.CreateFlag(ctx, "А")
	_, _ = svc.CreateFlag(ctx, "Б")

	err := svc.ReorderFlags(ctx, []string{a.ID})
	assert.Error(t, err)

	// Позиции остались прежними
	positions := positionsByName(t, svc)
	assert.Equal(t, map[string]int{"А": 0, "Б": 1}, positions)
}

func TestFlagService_ReorderRejectsUnknownID(t *testing.T) {
	svc := newFlagService(newFakeStorage())
	ctx := context.Background()

	a, _ := svc.CreateFlag(ctx, "А")
	_, _ = svc.CreateFlag(ctx, "Б")

	err := svc.ReorderFlags(ctx, []string{a.ID, "unknown-id"})
	assert.Error(t, err)
}

func TestFlagService_UpdateRenamesKeepingPosition(t *testing.T) {
	svc := newFlagService(newFakeStorage())
	ctx := context.Background()

	_, _ = svc.CreateFlag(ctx, "А")
	b, _ := svc.CreateFlag(ctx, "Б")

	updated, err := svc.UpdateFlag(ctx, b.ID, "Б-новое")
	require.NoError(t, err)
	assert.Equal(t, "Б-новое", updated.Name)
	assert.Equal(t, 1, updated.Position)
}

func TestFlagService_UpdateMissingFlag(t *testing.T) {
	svc := newFlagService(newFakeStorage())

	_, err := svc.UpdateFlag(context.Background(), "missing-id", "имя")
	assert.ErrorIs(t, err, utils.ErrFlagNotFound)
}

func TestFlagService_PublishesEvents(t *testing.T) {
	storage := newFakeStorage()
	msg := &fakeMessaging{}
	svc := NewFlagService(storage, fakeTxManager{}, msg, nopLogger{})

	flag, err := svc.CreateFlag(context.Background(), "Новинка")
	require.NoError(t, err)

	require.Len(t, msg.published, 1)
	assert.Equal(t, flag.ID, msg.published[0].Key)
}
