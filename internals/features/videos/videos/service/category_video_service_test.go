package service_test

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"studiotrack_backend/internals/databases/testdb"
	categoryModel "studiotrack_backend/internals/features/videos/categories/model"
	categoryService "studiotrack_backend/internals/features/videos/categories/service"
	detailModel "studiotrack_backend/internals/features/videos/details/model"
	"studiotrack_backend/internals/features/videos/videos/dto"
	"studiotrack_backend/internals/features/videos/videos/service"
	"studiotrack_backend/internals/features/workflow"
)

func setup(t *testing.T) (*service.VideoService, *gorm.DB) {
	db := testdb.Open(t)
	return service.NewVideoService(db, workflow.MustCatalog(workflow.VariantBernie)), db
}

func newCategory(t *testing.T, db *gorm.DB, title string) *categoryModel.VideoCategory {
	t.Helper()
	c, err := categoryService.Create(context.Background(), db, workflow.LetterAllocator{}, uuid.Nil, title)
	require.NoError(t, err)
	return c
}

func counters(t *testing.T, db *gorm.DB, id int64) categoryModel.VideoCategory {
	t.Helper()
	var c categoryModel.VideoCategory
	require.NoError(t, db.First(&c, id).Error)
	return c
}

func ptr[T any](v T) *T { return &v }

func requireCode(t *testing.T, err error, code int) {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, code, fe.Code)
}

func TestCreateNumbersVideosPerCategory(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	a := newCategory(t, db, "A")
	b := newCategory(t, db, "B")

	v1, err := svc.Create(ctx, dto.CreateVideoRequest{CategoryID: a.ID, Title: "one"}, false)
	require.NoError(t, err)
	v2, err := svc.Create(ctx, dto.CreateVideoRequest{CategoryID: a.ID, Title: "two", ProductionStatus: "Terminé"}, false)
	require.NoError(t, err)
	v3, err := svc.Create(ctx, dto.CreateVideoRequest{CategoryID: b.ID, Title: "three"}, false)
	require.NoError(t, err)

	assert.Equal(t, 1, v1.Identifier)
	assert.Equal(t, 2, v2.Identifier)
	assert.Equal(t, 1, v3.Identifier)
	assert.Equal(t, workflow.StatusToEdit, v1.ProductionStatus)
	assert.Nil(t, v1.Details)

	ca := counters(t, db, a.ID)
	assert.Equal(t, 1, ca.PendingCount)
	assert.Equal(t, 1, ca.FinishedCount)
	assert.Equal(t, 0, ca.ReadyToPublishCount)
}

func TestCreateRejectsBadInput(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	a := newCategory(t, db, "A")

	_, err := svc.Create(ctx, dto.CreateVideoRequest{CategoryID: a.ID, Title: "x", ProductionStatus: "Publiée"}, false)
	requireCode(t, err, fiber.StatusBadRequest)

	_, err = svc.Create(ctx, dto.CreateVideoRequest{CategoryID: a.ID + 100, Title: "x"}, false)
	requireCode(t, err, fiber.StatusBadRequest)
}

func TestCreateWithDetails(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	a := newCategory(t, db, "A")

	req := dto.CreateVideoRequest{CategoryID: a.ID, Title: "Interview"}
	req.RushLink = ptr("https://drive.example.com/rush")
	v, err := svc.Create(ctx, req, true)
	require.NoError(t, err)
	require.NotNil(t, v.Details)
	assert.Equal(t, "Interview", v.Details.Title)

	got, err := svc.Get(ctx, v.ID, true)
	require.NoError(t, err)
	require.NotNil(t, got.Details)
	require.NotNil(t, got.Details.RushLink)
	assert.Equal(t, "https://drive.example.com/rush", *got.Details.RushLink)
}

func TestUpdateSyncsDetailsAndCounters(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	a := newCategory(t, db, "A")
	b := newCategory(t, db, "B")

	v, err := svc.Create(ctx, dto.CreateVideoRequest{CategoryID: a.ID, Title: "draft"}, true)
	require.NoError(t, err)
	_, err = svc.Create(ctx, dto.CreateVideoRequest{CategoryID: b.ID, Title: "other"}, false)
	require.NoError(t, err)

	got, err := svc.Update(ctx, v.ID, dto.UpdateVideoRequest{
		CategoryID:       ptr(b.ID),
		Title:            ptr("final cut"),
		ProductionStatus: ptr("Prêt à publier"),
	})
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.CategoryID)
	assert.Equal(t, 2, got.Identifier)

	var det detailModel.VideoDetail
	require.NoError(t, db.Where("category_video_id = ?", v.ID).First(&det).Error)
	assert.Equal(t, "final cut", det.Title)
	assert.Equal(t, "Prêt à publier", det.ProductionStatus)

	assert.Equal(t, 0, counters(t, db, a.ID).PendingCount)
	cb := counters(t, db, b.ID)
	assert.Equal(t, 1, cb.PendingCount)
	assert.Equal(t, 1, cb.ReadyToPublishCount)

	_, err = svc.Update(ctx, v.ID, dto.UpdateVideoRequest{ProductionStatus: ptr("inconnu")})
	requireCode(t, err, fiber.StatusBadRequest)
	_, err = svc.Update(ctx, v.ID, dto.UpdateVideoRequest{})
	requireCode(t, err, fiber.StatusBadRequest)
	_, err = svc.Update(ctx, v.ID+100, dto.UpdateVideoRequest{Title: ptr("ghost")})
	requireCode(t, err, fiber.StatusNotFound)
}

func TestListFiltersAndByStatus(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	a := newCategory(t, db, "A")
	b := newCategory(t, db, "B")
	for _, r := range []dto.CreateVideoRequest{
		{CategoryID: a.ID, Title: "1"},
		{CategoryID: a.ID, Title: "2", ProductionStatus: "En cours"},
		{CategoryID: b.ID, Title: "3", ProductionStatus: "En cours"},
	} {
		_, err := svc.Create(ctx, r, false)
		require.NoError(t, err)
	}

	rows, err := svc.List(ctx, dto.ListFilter{CategoryID: ptr(a.ID)}, false)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = svc.List(ctx, dto.ListFilter{Status: "En cours"}, false)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = svc.ByStatus(ctx, "En cours")
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	_, err = svc.ByStatus(ctx, "Miniature à faire") // bigwater only
	requireCode(t, err, fiber.StatusBadRequest)
}

func TestDeleteCascadesAndRefreshes(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	a := newCategory(t, db, "A")

	v, err := svc.Create(ctx, dto.CreateVideoRequest{CategoryID: a.ID, Title: "gone"}, true)
	require.NoError(t, err)
	require.Equal(t, 1, counters(t, db, a.ID).PendingCount)

	require.NoError(t, svc.Delete(ctx, v.ID))
	assert.Equal(t, 0, counters(t, db, a.ID).PendingCount)

	var n int64
	require.NoError(t, db.Model(&detailModel.VideoDetail{}).Where("category_video_id = ?", v.ID).Count(&n).Error)
	assert.Zero(t, n)

	requireCode(t, svc.Delete(ctx, v.ID), fiber.StatusNotFound)
}
