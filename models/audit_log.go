package models

import (
	"encoding/json"
	"time"

	"github.com/amirphl/campaign-forge/utils"
	"gorm.io/gorm"
)

type AuditLog struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Action        string          `gorm:"size:64;not null;index:idx_audit_action" json:"action"`
	CampaignSetID *string         `gorm:"size:64;index:idx_audit_campaign_set_id" json:"campaign_set_id,omitempty"`
	Description   *string         `gorm:"type:text" json:"description,omitempty"`
	IPAddress     *string         `gorm:"size:64" json:"ip_address,omitempty"`
	UserAgent     *string         `gorm:"type:text" json:"user_agent,omitempty"`
	RequestID     *string         `gorm:"size:255;index:idx_audit_request_id" json:"request_id,omitempty"`
	Metadata      json.RawMessage `gorm:"type:jsonb" json:"metadata,omitempty"`
	Success       *bool           `gorm:"default:true;index:idx_audit_success" json:"success"`
	ErrorMessage  *string         `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt     time.Time       `gorm:"index:idx_audit_created_at" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_log"
}

// BeforeCreate is called before creating a new record
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = utils.UTCNow()
	}
	return nil
}

// Audit action constants
const (
	AuditActionCampaignsGenerated        = "campaigns_generated"
	AuditActionCampaignsRegenerated      = "campaigns_regenerated"
	AuditActionCampaignGenerationFailed  = "campaign_generation_failed"
	AuditActionCampaignGenerationBlocked = "campaign_generation_blocked"
	AuditActionCampaignSetExported       = "campaign_set_exported"
)

// AuditLogFilter represents filter criteria for audit log queries
type AuditLogFilter struct {
	ID            *uint
	Action        *string
	CampaignSetID *string
	Success       *bool
	RequestID     *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

func (a *AuditLog) IsFailed() bool {
	return a.Success != nil && !*a.Success
}
