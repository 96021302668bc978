// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/amirphl/campaign-forge/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

// BatchWriter covers the write side shared by every repository
type BatchWriter[T any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
}

type Repository[T any, F any] interface {
	BatchWriter[T]
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// DataRowRepository defines read operations for data source rows
type DataRowRepository interface {
	Repository[models.DataRow, models.DataRowFilter]
	// ListByDataSource returns rows ordered by row_index then id; limit <= 0 means no limit
	ListByDataSource(ctx context.Context, dataSourceID string, limit int) ([]*models.DataRow, error)
}

// GeneratedCampaignRepository defines operations for generated campaigns and their hierarchy
type GeneratedCampaignRepository interface {
	Repository[models.GeneratedCampaign, models.GeneratedCampaignFilter]
	// ListWithHierarchy returns the campaigns of a set with ad groups, ads and keywords preloaded
	ListWithHierarchy(ctx context.Context, campaignSetID string) ([]*models.GeneratedCampaign, error)
	// HasSyncedCampaigns reports whether any campaign of the set carries a platform id or a sync record
	HasSyncedCampaigns(ctx context.Context, campaignSetID string) (bool, error)
	// DeleteHierarchy removes sync records, keywords, ads, ad groups and campaigns of the set, children first
	DeleteHierarchy(ctx context.Context, campaignSetID string) (int64, error)
}

// AdGroupRepository writes generated ad groups; reads go through ListWithHierarchy
type AdGroupRepository interface {
	BatchWriter[models.AdGroup]
}

// AdRepository writes generated ads
type AdRepository interface {
	BatchWriter[models.Ad]
}

// KeywordRepository writes generated keywords
type KeywordRepository interface {
	BatchWriter[models.Keyword]
}

// AuditLogRepository defines operations for audit logs
type AuditLogRepository interface {
	Repository[models.AuditLog, models.AuditLogFilter]
}
