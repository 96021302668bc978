package dto

// AdTemplate describes one ad rendered per ad group
type AdTemplate struct {
	ID          string `json:"id" validate:"max=64"`
	Headline    string `json:"headline" validate:"max=1024"`
	Description string `json:"description" validate:"max=4096"`
	FinalURL    string `json:"final_url" validate:"max=2048"`
}

// AdGroupTemplate describes how ad groups, their keywords and ads are derived from rows
type AdGroupTemplate struct {
	ID          string       `json:"id" validate:"max=64"`
	NamePattern string       `json:"name_pattern" validate:"max=512"`
	Keywords    []string     `json:"keywords,omitempty" validate:"omitempty,dive,max=512"`
	Ads         []AdTemplate `json:"ads,omitempty" validate:"omitempty,dive"`
}

// CampaignConfig holds campaign level settings
type CampaignConfig struct {
	NamePattern string   `json:"name_pattern" validate:"max=512"`
	Objective   *string  `json:"objective,omitempty" validate:"omitempty,max=64"`
	Budget      *float64 `json:"budget,omitempty" validate:"omitempty,gte=0"`
}

// HierarchyConfig lists the ad group templates applied to every campaign
type HierarchyConfig struct {
	AdGroups []AdGroupTemplate `json:"ad_groups" validate:"dive"`
}

// GenerationConfig is the template configuration a campaign set is generated from.
// Required fields are checked by the generation flow so callers get its exact messages.
type GenerationConfig struct {
	CampaignSetID     string           `json:"-"`
	DataSourceID      string           `json:"data_source_id" validate:"max=64"`
	TemplateID        string           `json:"template_id" validate:"max=64"`
	SelectedPlatforms []string         `json:"selected_platforms" validate:"omitempty,dive,max=32"`
	CampaignConfig    *CampaignConfig  `json:"campaign_config" validate:"omitempty"`
	HierarchyConfig   *HierarchyConfig `json:"hierarchy_config" validate:"omitempty"`
}

// GenerationOptions controls regeneration of an existing campaign set
type GenerationOptions struct {
	Regenerate bool `json:"regenerate"`
	Force      bool `json:"force"`
}

// GenerateCampaignsRequest represents the request to generate campaigns for a campaign set
type GenerateCampaignsRequest struct {
	GenerationConfig
	Options GenerationOptions `json:"options"`
}

// PreviewCampaignsRequest represents the request to preview generation without persisting
type PreviewCampaignsRequest struct {
	GenerationConfig
}

// GeneratedCampaignSummary is a created campaign in generation responses
type GeneratedCampaignSummary struct {
	ID         uint   `json:"id"`
	UUID       string `json:"uuid"`
	Name       string `json:"name"`
	Platform   string `json:"platform"`
	TemplateID string `json:"template_id"`
	DataRowID  uint   `json:"data_row_id"`
}

// GenerateCampaignsResponse represents the result of a generation run
type GenerateCampaignsResponse struct {
	Message     string                     `json:"message"`
	Created     int                        `json:"created"`
	AdGroups    int                        `json:"ad_groups"`
	Ads         int                        `json:"ads"`
	Keywords    int                        `json:"keywords"`
	Deleted     int64                      `json:"deleted"`
	Regenerated bool                       `json:"regenerated"`
	Campaigns   []GeneratedCampaignSummary `json:"campaigns"`
}

// PreviewAdGroup is an ad group as it would be generated
type PreviewAdGroup struct {
	Name      string   `json:"name"`
	DataRowID uint     `json:"data_row_id"`
	Keywords  []string `json:"keywords"`
	Ads       int      `json:"ads"`
}

// PreviewCampaign is a campaign as it would be generated
type PreviewCampaign struct {
	Name      string           `json:"name"`
	Platform  string           `json:"platform"`
	DataRowID uint             `json:"data_row_id"`
	Rows      int              `json:"rows"`
	AdGroups  []PreviewAdGroup `json:"ad_groups"`
}

// PreviewCampaignsResponse summarizes a generation plan
type PreviewCampaignsResponse struct {
	TotalRows    int               `json:"total_rows"`
	SkippedRows  int               `json:"skipped_rows"`
	Campaigns    int               `json:"campaigns"`
	AdGroups     int               `json:"ad_groups"`
	Ads          int               `json:"ads"`
	Keywords     int               `json:"keywords"`
	CampaignList []PreviewCampaign `json:"campaign_list"`
}

// GeneratedAdDTO is a persisted ad
type GeneratedAdDTO struct {
	ID          uint   `json:"id"`
	Headline    string `json:"headline"`
	Description string `json:"description"`
	FinalURL    string `json:"final_url"`
}

// GeneratedAdGroupDTO is a persisted ad group with its children
type GeneratedAdGroupDTO struct {
	ID       uint             `json:"id"`
	Name     string           `json:"name"`
	Keywords []string         `json:"keywords"`
	Ads      []GeneratedAdDTO `json:"ads"`
}

// GeneratedCampaignDTO is a persisted campaign with its hierarchy
type GeneratedCampaignDTO struct {
	ID                 uint                  `json:"id"`
	UUID               string                `json:"uuid"`
	Name               string                `json:"name"`
	Platform           string                `json:"platform"`
	TemplateID         string                `json:"template_id"`
	DataRowID          uint                  `json:"data_row_id"`
	Objective          *string               `json:"objective,omitempty"`
	Budget             *float64              `json:"budget,omitempty"`
	PlatformCampaignID *string               `json:"platform_campaign_id,omitempty"`
	Synced             bool                  `json:"synced"`
	CreatedAt          string                `json:"created_at"`
	AdGroups           []GeneratedAdGroupDTO `json:"ad_groups"`
}

// ListGeneratedCampaignsResponse lists the campaigns of a campaign set
type ListGeneratedCampaignsResponse struct {
	CampaignSetID string                 `json:"campaign_set_id"`
	Total         int                    `json:"total"`
	Campaigns     []GeneratedCampaignDTO `json:"campaigns"`
}

// ExportCampaignSetResponse carries an xlsx workbook
type ExportCampaignSetResponse struct {
	Filename string
	Data     []byte
}
