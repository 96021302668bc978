package models

import (
	"time"

	"github.com/amirphl/campaign-forge/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SyncStatus is the outcome of pushing a generated campaign to its platform
type SyncStatus string

const (
	SyncStatusPending SyncStatus = "pending"
	SyncStatusSynced  SyncStatus = "synced"
	SyncStatusFailed  SyncStatus = "failed"
)

// String returns the string representation of the status
func (s SyncStatus) String() string {
	return string(s)
}

// SyncRecord links a generated campaign to a platform sync outcome.
// Records are written by the sync subsystem; their existence protects the campaign from regeneration.
type SyncRecord struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	UUID                uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uk_campaign_sync_records_uuid" json:"uuid"`
	GeneratedCampaignID uint       `gorm:"not null;index:idx_campaign_sync_records_campaign_id" json:"generated_campaign_id"`
	Platform            Platform   `gorm:"size:32;not null" json:"platform"`
	PlatformCampaignID  *string    `gorm:"size:255" json:"platform_campaign_id,omitempty"`
	Status              SyncStatus `gorm:"size:32;not null" json:"status"`
	ErrorMessage        *string    `gorm:"type:text" json:"error_message,omitempty"`
	SyncedAt            *time.Time `json:"synced_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`

	GeneratedCampaign *GeneratedCampaign `gorm:"foreignKey:GeneratedCampaignID;references:ID" json:"-"`
}

// TableName returns the table name for the model
func (SyncRecord) TableName() string {
	return "campaign_sync_records"
}

// BeforeCreate is called before creating a new record
func (s *SyncRecord) BeforeCreate(tx *gorm.DB) error {
	if s.UUID == uuid.Nil {
		s.UUID = uuid.New()
	}
	if s.Status == "" {
		s.Status = SyncStatusPending
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = utils.UTCNow()
	}
	return nil
}
