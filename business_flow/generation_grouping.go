package businessflow

import (
	"strings"

	"github.com/amirphl/campaign-forge/app/dto"
	"github.com/amirphl/campaign-forge/models"
)

// AdGroupBucket collects the rows of one campaign that resolve to the same ad group name.
// Templates lists every ad group template that produced the name, in first-seen order.
type AdGroupBucket struct {
	Name      string
	Rows      []*models.DataRow
	Templates []*dto.AdGroupTemplate
}

// Anchor returns the first row that produced the bucket
func (b *AdGroupBucket) Anchor() *models.DataRow {
	return b.Rows[0]
}

// CampaignGroup collects the rows that resolve to the same campaign name
type CampaignGroup struct {
	Name     string
	Rows     []*models.DataRow
	AdGroups []*AdGroupBucket
}

// Anchor returns the first row, in source order, that produced the campaign name
func (g *CampaignGroup) Anchor() *models.DataRow {
	return g.Rows[0]
}

// GroupingResult is the outcome of bucketing a data source's rows
type GroupingResult struct {
	Groups      []*CampaignGroup
	SkippedRows int
}

// GroupRows buckets rows by interpolated campaign name and, within each campaign, by interpolated
// ad group name. Buckets keep first-seen order and names are compared after trimming.
// Rows with a blank campaign name are skipped entirely; a blank ad group name yields no ad group.
func GroupRows(rows []*models.DataRow, campaignPattern string, templates []dto.AdGroupTemplate) *GroupingResult {
	result := &GroupingResult{}
	byName := make(map[string]*CampaignGroup)

	for _, row := range rows {
		if row == nil {
			continue
		}

		name := strings.TrimSpace(Interpolate(campaignPattern, row.RowData))
		if name == "" {
			result.SkippedRows++
			continue
		}

		group, ok := byName[name]
		if !ok {
			group = &CampaignGroup{Name: name}
			byName[name] = group
			result.Groups = append(result.Groups, group)
		}
		group.Rows = append(group.Rows, row)
	}

	for _, group := range result.Groups {
		group.AdGroups = groupAdGroups(group.Rows, templates)
	}

	return result
}

func groupAdGroups(rows []*models.DataRow, templates []dto.AdGroupTemplate) []*AdGroupBucket {
	var buckets []*AdGroupBucket
	byName := make(map[string]*AdGroupBucket)

	for i := range templates {
		tmpl := &templates[i]
		for _, row := range rows {
			name := strings.TrimSpace(Interpolate(tmpl.NamePattern, row.RowData))
			if name == "" {
				continue
			}

			bucket, ok := byName[name]
			if !ok {
				bucket = &AdGroupBucket{Name: name}
				byName[name] = bucket
				buckets = append(buckets, bucket)
			}
			if !containsRow(bucket.Rows, row) {
				bucket.Rows = append(bucket.Rows, row)
			}
			if !containsTemplate(bucket.Templates, tmpl) {
				bucket.Templates = append(bucket.Templates, tmpl)
			}
		}
	}

	return buckets
}

func containsRow(rows []*models.DataRow, row *models.DataRow) bool {
	for _, r := range rows {
		if r == row {
			return true
		}
	}
	return false
}

func containsTemplate(templates []*dto.AdGroupTemplate, tmpl *dto.AdGroupTemplate) bool {
	for _, t := range templates {
		if t == tmpl {
			return true
		}
	}
	return false
}
