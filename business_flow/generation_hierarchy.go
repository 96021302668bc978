package businessflow

import (
	"github.com/amirphl/campaign-forge/models"
)

// PlannedCampaign is a pending campaign record
type PlannedCampaign struct {
	Platform  models.Platform
	Name      string
	DataRowID uint
	RowCount  int
}

// PlannedAdGroup references its campaign by arena index
type PlannedAdGroup struct {
	CampaignIndex int
	Name          string
	DataRowID     uint
}

// PlannedAd references its ad group by arena index
type PlannedAd struct {
	AdGroupIndex int
	Headline     string
	Description  string
	FinalURL     string
}

// PlannedKeyword references its ad group by arena index
type PlannedKeyword struct {
	AdGroupIndex int
	Text         string
}

// HierarchyPlan is an arena of pending records. Children point at parents by local index;
// the writer resolves those indexes to database ids one level at a time.
type HierarchyPlan struct {
	Campaigns []PlannedCampaign
	AdGroups  []PlannedAdGroup
	Ads       []PlannedAd
	Keywords  []PlannedKeyword
}

// BuildHierarchy expands the groups into one campaign per (platform, group), platforms outermost.
// Every keyword pattern yields exactly one keyword per bucket, rendered as is and never deduplicated.
func BuildHierarchy(groups []*CampaignGroup, platforms []models.Platform) *HierarchyPlan {
	plan := &HierarchyPlan{}

	for _, platform := range platforms {
		for _, group := range groups {
			ci := len(plan.Campaigns)
			plan.Campaigns = append(plan.Campaigns, PlannedCampaign{
				Platform:  platform,
				Name:      group.Name,
				DataRowID: group.Anchor().ID,
				RowCount:  len(group.Rows),
			})

			for _, bucket := range group.AdGroups {
				gi := len(plan.AdGroups)
				anchor := bucket.Anchor()
				plan.AdGroups = append(plan.AdGroups, PlannedAdGroup{
					CampaignIndex: ci,
					Name:          bucket.Name,
					DataRowID:     anchor.ID,
				})

				for _, tmpl := range bucket.Templates {
					for _, pattern := range tmpl.Keywords {
						plan.Keywords = append(plan.Keywords, PlannedKeyword{
							AdGroupIndex: gi,
							Text:         Interpolate(pattern, anchor.RowData),
						})
					}

					for _, ad := range tmpl.Ads {
						plan.Ads = append(plan.Ads, PlannedAd{
							AdGroupIndex: gi,
							Headline:     Interpolate(ad.Headline, anchor.RowData),
							Description:  Interpolate(ad.Description, anchor.RowData),
							FinalURL:     Interpolate(ad.FinalURL, anchor.RowData),
						})
					}
				}
			}
		}
	}

	return plan
}
