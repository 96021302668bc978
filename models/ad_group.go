package models

import (
	"time"

	"github.com/amirphl/campaign-forge/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdGroup belongs to exactly one generated campaign
type AdGroup struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UUID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_generated_ad_groups_uuid" json:"uuid"`
	CampaignID uint      `gorm:"not null;index:idx_generated_ad_groups_campaign_id" json:"campaign_id"`
	Name       string    `gorm:"size:512;not null" json:"name"`
	CreatedAt  time.Time `json:"created_at"`

	// Relations
	Campaign *GeneratedCampaign `gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Ads      []Ad               `gorm:"foreignKey:AdGroupID" json:"ads,omitempty"`
	Keywords []Keyword          `gorm:"foreignKey:AdGroupID" json:"keywords,omitempty"`
}

// TableName returns the table name for the model
func (AdGroup) TableName() string {
	return "generated_ad_groups"
}

// BeforeCreate is called before creating a new record
func (g *AdGroup) BeforeCreate(tx *gorm.DB) error {
	if g.UUID == uuid.Nil {
		g.UUID = uuid.New()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = utils.UTCNow()
	}
	return nil
}

// Ad is a single ad creative under an ad group
type Ad struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UUID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_generated_ads_uuid" json:"uuid"`
	AdGroupID   uint      `gorm:"not null;index:idx_generated_ads_ad_group_id" json:"ad_group_id"`
	Headline    string    `gorm:"type:text;not null" json:"headline"`
	Description string    `gorm:"type:text;not null" json:"description"`
	FinalURL    string    `gorm:"type:text;not null" json:"final_url"`
	CreatedAt   time.Time `json:"created_at"`

	AdGroup *AdGroup `gorm:"foreignKey:AdGroupID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName returns the table name for the model
func (Ad) TableName() string {
	return "generated_ads"
}

// BeforeCreate is called before creating a new record
func (a *Ad) BeforeCreate(tx *gorm.DB) error {
	if a.UUID == uuid.Nil {
		a.UUID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = utils.UTCNow()
	}
	return nil
}

// Keyword is a targeting keyword under an ad group
type Keyword struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UUID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_generated_keywords_uuid" json:"uuid"`
	AdGroupID uint      `gorm:"not null;index:idx_generated_keywords_ad_group_id" json:"ad_group_id"`
	Text      string    `gorm:"size:512;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`

	AdGroup *AdGroup `gorm:"foreignKey:AdGroupID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName returns the table name for the model
func (Keyword) TableName() string {
	return "generated_keywords"
}

// BeforeCreate is called before creating a new record
func (k *Keyword) BeforeCreate(tx *gorm.DB) error {
	if k.UUID == uuid.Nil {
		k.UUID = uuid.New()
	}
	if k.CreatedAt.IsZero() {
		k.CreatedAt = utils.UTCNow()
	}
	return nil
}
