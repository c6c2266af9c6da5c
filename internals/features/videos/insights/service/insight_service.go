package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	videoModel "studiotrack_backend/internals/features/videos/videos/model"
	"studiotrack_backend/internals/features/workflow"
)

// InsightService runs the read-only dashboard views over category_videos.
type InsightService struct {
	DB      *gorm.DB
	Catalog *workflow.Catalog
	Now     func() time.Time
}

func NewInsightService(db *gorm.DB, catalog *workflow.Catalog) *InsightService {
	return &InsightService{DB: db, Catalog: catalog, Now: time.Now}
}

const snapshotColumns = "id, category_id, title, production_status, created_at, updated_at"

func (s *InsightService) snapshots(q *gorm.DB) ([]workflow.VideoSnapshot, error) {
	var rows []videoModel.CategoryVideo
	if err := q.Select(snapshotColumns).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]workflow.VideoSnapshot, len(rows))
	for i, r := range rows {
		out[i] = r.Snapshot()
	}
	return out, nil
}

func (s *InsightService) base(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).Model(&videoModel.CategoryVideo{})
}

// Alerts: non-terminal videos untouched for more than a week.
func (s *InsightService) Alerts(ctx context.Context) ([]workflow.VideoSnapshot, error) {
	now := s.Now().UTC()
	rows, err := s.snapshots(s.base(ctx).
		Where("production_status <> ?", s.Catalog.Terminal()).
		Where("updated_at < ?", workflow.AlertCutoff(now)))
	if err != nil {
		return nil, err
	}
	return workflow.Alerts(s.Catalog, rows, now), nil
}

// Priorities: every non-terminal video, stalest first.
func (s *InsightService) Priorities(ctx context.Context) ([]workflow.PrioritizedVideo, error) {
	rows, err := s.snapshots(s.base(ctx).Where("production_status <> ?", s.Catalog.Terminal()))
	if err != nil {
		return nil, err
	}
	return workflow.Prioritize(s.Catalog, rows, s.Now().UTC()), nil
}

func (s *InsightService) Performance(ctx context.Context) (workflow.PerformanceReport, error) {
	rows, err := s.snapshots(s.base(ctx).Where("production_status = ?", s.Catalog.Terminal()))
	if err != nil {
		return workflow.PerformanceReport{}, err
	}
	return workflow.AggregatePerformance(s.Catalog, rows), nil
}

func (s *InsightService) Stats(ctx context.Context) (workflow.StatusCounts, error) {
	var statuses []string
	if err := s.base(ctx).Pluck("production_status", &statuses).Error; err != nil {
		return workflow.StatusCounts{}, err
	}
	return s.Catalog.Count(statuses), nil
}
