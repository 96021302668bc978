package models

import (
	"time"

	"github.com/amirphl/campaign-forge/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GeneratedCampaign is a campaign expanded from a data source for one platform.
// PlatformCampaignID stays nil until the sync subsystem pushes it to the platform.
type GeneratedCampaign struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	UUID               uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uk_generated_campaigns_uuid" json:"uuid"`
	CampaignSetID      string     `gorm:"size:64;not null;index:idx_generated_campaigns_campaign_set_id" json:"campaign_set_id"`
	TemplateID         string     `gorm:"size:64;not null" json:"template_id"`
	DataRowID          uint       `gorm:"not null;index:idx_generated_campaigns_data_row_id" json:"data_row_id"`
	Name               string     `gorm:"size:512;not null" json:"name"`
	Platform           Platform   `gorm:"size:32;not null;index:idx_generated_campaigns_platform" json:"platform"`
	Objective          *string    `gorm:"size:64" json:"objective,omitempty"`
	Budget             *float64   `json:"budget,omitempty"`
	PlatformCampaignID *string    `gorm:"size:255;index:idx_generated_campaigns_platform_campaign_id" json:"platform_campaign_id,omitempty"`
	CreatedAt          time.Time  `gorm:"index:idx_generated_campaigns_created_at" json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`

	// Relations
	DataRow     *DataRow     `gorm:"foreignKey:DataRowID;references:ID" json:"-"`
	AdGroups    []AdGroup    `gorm:"foreignKey:CampaignID" json:"ad_groups,omitempty"`
	SyncRecords []SyncRecord `gorm:"foreignKey:GeneratedCampaignID" json:"sync_records,omitempty"`
}

// TableName returns the table name for the model
func (GeneratedCampaign) TableName() string {
	return "generated_campaigns"
}

// BeforeCreate is called before creating a new record
func (c *GeneratedCampaign) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == uuid.Nil {
		c.UUID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (c *GeneratedCampaign) BeforeUpdate(tx *gorm.DB) error {
	c.UpdatedAt = utils.UTCNowPtr()
	return nil
}

// IsSynced reports whether the campaign was pushed to its platform
func (c *GeneratedCampaign) IsSynced() bool {
	return (c.PlatformCampaignID != nil && *c.PlatformCampaignID != "") || len(c.SyncRecords) > 0
}

// GeneratedCampaignFilter represents filter criteria for generated campaigns
type GeneratedCampaignFilter struct {
	ID            *uint      `json:"id,omitempty"`
	UUID          *uuid.UUID `json:"uuid,omitempty"`
	CampaignSetID *string    `json:"campaign_set_id,omitempty"`
	TemplateID    *string    `json:"template_id,omitempty"`
	Platform      *Platform  `json:"platform,omitempty"`
	Name          *string    `json:"name,omitempty"`
	Synced        *bool      `json:"synced,omitempty"`
}
