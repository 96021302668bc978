package repository

import (
	"context"
	"fmt"

	"github.com/amirphl/campaign-forge/models"
	"gorm.io/gorm"
)

const syncedCampaignCondition = "((platform_campaign_id IS NOT NULL AND platform_campaign_id <> '') OR " +
	"EXISTS (SELECT 1 FROM campaign_sync_records sr WHERE sr.generated_campaign_id = generated_campaigns.id))"

// GeneratedCampaignRepositoryImpl implements the GeneratedCampaignRepository interface
type GeneratedCampaignRepositoryImpl struct {
	*BaseRepository[models.GeneratedCampaign, models.GeneratedCampaignFilter]
}

// NewGeneratedCampaignRepository creates a new generated campaign repository
func NewGeneratedCampaignRepository(db *gorm.DB) GeneratedCampaignRepository {
	return &GeneratedCampaignRepositoryImpl{
		BaseRepository: NewBaseRepository[models.GeneratedCampaign, models.GeneratedCampaignFilter](db),
	}
}

// ListWithHierarchy retrieves the campaigns of a set in insertion order with their full hierarchy
func (r *GeneratedCampaignRepositoryImpl) ListWithHierarchy(ctx context.Context, campaignSetID string) ([]*models.GeneratedCampaign, error) {
	db := r.getDB(ctx)

	byID := func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }

	var campaigns []*models.GeneratedCampaign
	err := db.Where("campaign_set_id = ?", campaignSetID).
		Order("id ASC").
		Preload("AdGroups", byID).
		Preload("AdGroups.Ads", byID).
		Preload("AdGroups.Keywords", byID).
		Preload("SyncRecords", byID).
		Find(&campaigns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns with hierarchy: %w", err)
	}

	return campaigns, nil
}

// HasSyncedCampaigns runs a single LIMIT 1 existence query
func (r *GeneratedCampaignRepositoryImpl) HasSyncedCampaigns(ctx context.Context, campaignSetID string) (bool, error) {
	db := r.getDB(ctx)

	var ids []uint
	err := db.Model(&models.GeneratedCampaign{}).
		Where("campaign_set_id = ?", campaignSetID).
		Where(syncedCampaignCondition).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return false, fmt.Errorf("failed to check synced campaigns: %w", err)
	}

	return len(ids) > 0, nil
}

// DeleteHierarchy deletes the whole generated hierarchy of a set and returns the number of campaigns removed.
// Rows are removed children first so no foreign key is left dangling.
func (r *GeneratedCampaignRepositoryImpl) DeleteHierarchy(ctx context.Context, campaignSetID string) (deleted int64, err error) {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return 0, err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				err = db.Commit().Error
			}
		}()
	}

	campaignIDs := func() *gorm.DB {
		return db.Model(&models.GeneratedCampaign{}).Select("id").Where("campaign_set_id = ?", campaignSetID)
	}
	adGroupIDs := func() *gorm.DB {
		return db.Model(&models.AdGroup{}).Select("id").Where("campaign_id IN (?)", campaignIDs())
	}

	if err = db.Where("generated_campaign_id IN (?)", campaignIDs()).Delete(&models.SyncRecord{}).Error; err != nil {
		return 0, fmt.Errorf("failed to delete sync records: %w", err)
	}
	if err = db.Where("ad_group_id IN (?)", adGroupIDs()).Delete(&models.Keyword{}).Error; err != nil {
		return 0, fmt.Errorf("failed to delete keywords: %w", err)
	}
	if err = db.Where("ad_group_id IN (?)", adGroupIDs()).Delete(&models.Ad{}).Error; err != nil {
		return 0, fmt.Errorf("failed to delete ads: %w", err)
	}
	if err = db.Where("campaign_id IN (?)", campaignIDs()).Delete(&models.AdGroup{}).Error; err != nil {
		return 0, fmt.Errorf("failed to delete ad groups: %w", err)
	}

	res := db.Where("campaign_set_id = ?", campaignSetID).Delete(&models.GeneratedCampaign{})
	if res.Error != nil {
		err = res.Error
		return 0, fmt.Errorf("failed to delete campaigns: %w", err)
	}

	return res.RowsAffected, nil
}

// ByFilter retrieves generated campaigns based on filter criteria
func (r *GeneratedCampaignRepositoryImpl) ByFilter(ctx context.Context, filter models.GeneratedCampaignFilter, orderBy string, limit, offset int) ([]*models.GeneratedCampaign, error) {
	db := r.getDB(ctx)

	var campaigns []*models.GeneratedCampaign
	query := r.applyFilter(db.Model(&models.GeneratedCampaign{}), filter)

	// Apply ordering
	if orderBy != "" {
		query = query.Order(orderBy)
	}

	// Apply pagination
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Find(&campaigns).Error
	if err != nil {
		return nil, err
	}

	return campaigns, nil
}

// Count returns the number of generated campaigns matching the filter
func (r *GeneratedCampaignRepositoryImpl) Count(ctx context.Context, filter models.GeneratedCampaignFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	err := r.applyFilter(db.Model(&models.GeneratedCampaign{}), filter).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any generated campaign matching the filter exists
func (r *GeneratedCampaignRepositoryImpl) Exists(ctx context.Context, filter models.GeneratedCampaignFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *GeneratedCampaignRepositoryImpl) applyFilter(db *gorm.DB, filter models.GeneratedCampaignFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.CampaignSetID != nil {
		db = db.Where("campaign_set_id = ?", *filter.CampaignSetID)
	}
	if filter.TemplateID != nil {
		db = db.Where("template_id = ?", *filter.TemplateID)
	}
	if filter.Platform != nil {
		db = db.Where("platform = ?", *filter.Platform)
	}
	if filter.Name != nil {
		db = db.Where("name = ?", *filter.Name)
	}
	if filter.Synced != nil {
		if *filter.Synced {
			db = db.Where(syncedCampaignCondition)
		} else {
			db = db.Where("NOT " + syncedCampaignCondition)
		}
	}

	return db
}
