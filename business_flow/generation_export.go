package businessflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amirphl/campaign-forge/app/dto"
	"github.com/amirphl/campaign-forge/models"
	"github.com/xuri/excelize/v2"
)

const (
	sheetCampaigns = "Campaigns"
	sheetAdGroups  = "AdGroups"
	sheetAds       = "Ads"
	sheetKeywords  = "Keywords"
)

// ExportCampaignSet renders the persisted hierarchy of a campaign set as an xlsx workbook
// with one sheet per level. Child rows carry their parent ids.
func (s *GenerationFlowImpl) ExportCampaignSet(ctx context.Context, campaignSetID string, metadata *ClientMetadata) (*dto.ExportCampaignSetResponse, error) {
	campaignSetID = strings.TrimSpace(campaignSetID)
	if campaignSetID == "" {
		return nil, configError(ErrCampaignSetIDRequired)
	}

	campaigns, err := s.campaignRepo.ListWithHierarchy(ctx, campaignSetID)
	if err != nil {
		return nil, storageError(err)
	}

	data, err := buildCampaignSetWorkbook(campaigns)
	if err != nil {
		return nil, NewBusinessError(CodeCampaignSetExportFailed, "Failed to write Excel file", err)
	}

	s.createAuditLog(ctx, models.AuditActionCampaignSetExported, campaignSetID,
		fmt.Sprintf("Exported %d campaigns of campaign set %s", len(campaigns), campaignSetID),
		true, nil, map[string]any{"campaigns": len(campaigns)}, metadata)

	return &dto.ExportCampaignSetResponse{
		Filename: fmt.Sprintf("campaign_set_%s.xlsx", sanitizeFilename(campaignSetID)),
		Data:     data,
	}, nil
}

func buildCampaignSetWorkbook(campaigns []*models.GeneratedCampaign) ([]byte, error) {
	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	if err := xl.SetSheetName("Sheet1", sheetCampaigns); err != nil {
		return nil, err
	}
	for _, name := range []string{sheetAdGroups, sheetAds, sheetKeywords} {
		if _, err := xl.NewSheet(name); err != nil {
			return nil, err
		}
	}

	sheets := map[string][][]any{
		sheetCampaigns: {{"campaign_id", "uuid", "name", "platform", "template_id", "data_row_id", "objective", "budget", "platform_campaign_id", "created_at"}},
		sheetAdGroups:  {{"ad_group_id", "campaign_id", "campaign_name", "name"}},
		sheetAds:       {{"ad_id", "ad_group_id", "headline", "description", "final_url"}},
		sheetKeywords:  {{"keyword_id", "ad_group_id", "text"}},
	}

	for _, c := range campaigns {
		sheets[sheetCampaigns] = append(sheets[sheetCampaigns], []any{
			c.ID,
			c.UUID.String(),
			c.Name,
			c.Platform.String(),
			c.TemplateID,
			c.DataRowID,
			derefString(c.Objective),
			derefFloat(c.Budget),
			derefString(c.PlatformCampaignID),
			c.CreatedAt.UTC().Format(time.RFC3339),
		})
		for _, g := range c.AdGroups {
			sheets[sheetAdGroups] = append(sheets[sheetAdGroups], []any{g.ID, c.ID, c.Name, g.Name})
			for _, a := range g.Ads {
				sheets[sheetAds] = append(sheets[sheetAds], []any{a.ID, g.ID, a.Headline, a.Description, a.FinalURL})
			}
			for _, k := range g.Keywords {
				sheets[sheetKeywords] = append(sheets[sheetKeywords], []any{k.ID, g.ID, k.Text})
			}
		}
	}

	for name, rows := range sheets {
		for ri, record := range rows {
			cellRef, err := excelize.CoordinatesToCellName(1, ri+1)
			if err != nil {
				return nil, err
			}
			if err := xl.SetSheetRow(name, cellRef, &record); err != nil {
				return nil, err
			}
		}
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) any {
	if f == nil {
		return ""
	}
	return *f
}

func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "?", "_", "*", "_", "\"", "_", "<", "_", ">", "_", "|", "_", " ", "_")
	return replacer.Replace(name)
}
