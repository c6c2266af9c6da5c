package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studiotrack_backend/internals/databases/testdb"
	"studiotrack_backend/internals/features/videos/categories/model"
	"studiotrack_backend/internals/features/videos/categories/service"
	videoDTO "studiotrack_backend/internals/features/videos/videos/dto"
	videoService "studiotrack_backend/internals/features/videos/videos/service"
	"studiotrack_backend/internals/features/workflow"
)

func TestCreateAllocatesLetters(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	alloc := workflow.LetterAllocator{}

	a, err := service.Create(ctx, db, alloc, uuid.New(), "Vlogs")
	require.NoError(t, err)
	b, err := service.Create(ctx, db, alloc, uuid.Nil, "Shorts")
	require.NoError(t, err)

	assert.Equal(t, "A", a.Identifier)
	assert.NotNil(t, a.UserID)
	assert.Equal(t, "B", b.Identifier)
	assert.Nil(t, b.UserID)

	rows, err := service.List(db)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0].Identifier)
}

func TestCreateExhaustedLetters(t *testing.T) {
	db := testdb.Open(t)
	require.NoError(t, db.Create(&model.VideoCategory{Identifier: "Z", Title: "Last"}).Error)

	_, err := service.Create(context.Background(), db, workflow.LetterAllocator{}, uuid.Nil, "Overflow")
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	assert.Equal(t, workflow.ErrIdentifiersExhausted.Error(), fe.Message)
}

func TestSequenceIdentifiersSortNumerically(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	for i := 0; i < 11; i++ {
		_, err := service.Create(ctx, db, workflow.SequenceAllocator{}, uuid.Nil, "Episode")
		require.NoError(t, err)
	}
	rows, err := service.List(db)
	require.NoError(t, err)
	require.Len(t, rows, 11)
	assert.Equal(t, "9", rows[8].Identifier)
	assert.Equal(t, "10", rows[9].Identifier)
	assert.Equal(t, "11", rows[10].Identifier)
}

func TestConcurrentCreateGetsDistinctIdentifiers(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()

	const n = 4
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = service.Create(ctx, db, workflow.LetterAllocator{}, uuid.Nil, "Race")
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	rows, err := service.List(db)
	require.NoError(t, err)
	seen := map[string]bool{}
	for _, r := range rows {
		assert.False(t, seen[r.Identifier], "duplicate %s", r.Identifier)
		seen[r.Identifier] = true
	}
	assert.Len(t, seen, n)
}

func TestDeleteCategoryWithVideosIsRejected(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	cat, err := service.Create(ctx, db, workflow.LetterAllocator{}, uuid.Nil, "Vlogs")
	require.NoError(t, err)

	videos := videoService.NewVideoService(db, workflow.MustCatalog(workflow.VariantBernie))
	v, err := videos.Create(ctx, videoDTO.CreateVideoRequest{CategoryID: cat.ID, Title: "Épisode 1"}, false)
	require.NoError(t, err)

	err = service.Delete(db, cat.ID)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)

	require.NoError(t, videos.Delete(ctx, v.ID))
	require.NoError(t, service.Delete(db, cat.ID))

	err = service.Delete(db, cat.ID)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)
}

func TestUpdateTitle(t *testing.T) {
	db := testdb.Open(t)
	cat, err := service.Create(context.Background(), db, workflow.LetterAllocator{}, uuid.Nil, "Old")
	require.NoError(t, err)

	got, err := service.UpdateTitle(db, cat.ID, "New")
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, cat.Identifier, got.Identifier)
}
