// Package testing provides test utilities and database setup for testing the campaign generation engine
package testing

import (
	"fmt"

	"github.com/amirphl/campaign-forge/models"
	"github.com/amirphl/campaign-forge/utils"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateDataRows stores the given rows under dataSourceID with consecutive row indexes
func (tf *TestFixtures) CreateDataRows(dataSourceID string, rows ...models.RowData) ([]*models.DataRow, error) {
	out := make([]*models.DataRow, 0, len(rows))
	for i, data := range rows {
		row := &models.DataRow{
			DataSourceID: dataSourceID,
			RowData:      data,
			RowIndex:     i,
		}
		if err := tf.DB.DB.Create(row).Error; err != nil {
			return nil, fmt.Errorf("failed to insert data row %d: %w", i, err)
		}
		out = append(out, row)
	}
	return out, nil
}

// CreateGeneratedCampaign stores a bare campaign for the set; a non-empty platformCampaignID marks it synced
func (tf *TestFixtures) CreateGeneratedCampaign(campaignSetID string, dataRowID uint, name string, platformCampaignID string) (*models.GeneratedCampaign, error) {
	campaign := &models.GeneratedCampaign{
		CampaignSetID: campaignSetID,
		TemplateID:    "fixture-template",
		DataRowID:     dataRowID,
		Name:          name,
		Platform:      models.PlatformGoogle,
	}
	if platformCampaignID != "" {
		campaign.PlatformCampaignID = utils.ToPtr(platformCampaignID)
	}

	if err := tf.DB.DB.Create(campaign).Error; err != nil {
		return nil, fmt.Errorf("failed to insert generated campaign: %w", err)
	}
	return campaign, nil
}

// CreateSyncRecord attaches a sync record to a generated campaign
func (tf *TestFixtures) CreateSyncRecord(campaign *models.GeneratedCampaign, status models.SyncStatus) (*models.SyncRecord, error) {
	record := &models.SyncRecord{
		GeneratedCampaignID: campaign.ID,
		Platform:            campaign.Platform,
		Status:              status,
	}
	if status == models.SyncStatusSynced {
		record.SyncedAt = utils.UTCNowPtr()
	}

	if err := tf.DB.DB.Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to insert sync record: %w", err)
	}
	return record, nil
}

// SetPlatformCampaignID stores the id an ad platform assigned to a campaign, as the sync subsystem does
func (tf *TestFixtures) SetPlatformCampaignID(campaignID uint, platformCampaignID string) error {
	err := tf.DB.DB.Model(&models.GeneratedCampaign{}).
		Where("id = ?", campaignID).
		Update("platform_campaign_id", platformCampaignID).Error
	if err != nil {
		return fmt.Errorf("failed to set platform campaign id: %w", err)
	}
	return nil
}

// Row builds row data from alternating column names and values.
// Values may be string, int, float64 or nil.
func Row(pairs ...any) models.RowData {
	data := models.RowData{}
	for i := 0; i+1 < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			continue
		}
		switch v := pairs[i+1].(type) {
		case nil:
			data[key] = models.NullValue()
		case string:
			data[key] = models.StringValue(v)
		case int:
			data[key] = models.NumberValue(float64(v))
		case float64:
			data[key] = models.NumberValue(v)
		default:
			data[key] = models.StringValue(fmt.Sprint(v))
		}
	}
	return data
}
