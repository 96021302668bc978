package businessflow

import (
	"context"

	"github.com/amirphl/campaign-forge/models"
	"github.com/amirphl/campaign-forge/repository"
	"github.com/amirphl/campaign-forge/utils"
)

// campaignAttributes are copied onto every campaign of a run
type campaignAttributes struct {
	CampaignSetID string
	TemplateID    string
	Objective     *string
	Budget        *float64
}

type writeResult struct {
	Campaigns []*models.GeneratedCampaign
	AdGroups  int
	Ads       int
	Keywords  int
	Deleted   int64
}

// generationWriter persists a HierarchyPlan level by level. It must run inside a
// transaction carried by ctx; it never commits or rolls back itself.
type generationWriter struct {
	campaignRepo repository.GeneratedCampaignRepository
	adGroupRepo  repository.AdGroupRepository
	adRepo       repository.AdRepository
	keywordRepo  repository.KeywordRepository
	batchSize    int
}

func (w *generationWriter) deleteExisting(ctx context.Context, campaignSetID string) (int64, error) {
	if !repository.InTransaction(ctx) {
		return 0, ErrWriteOutsideTransaction
	}
	return w.campaignRepo.DeleteHierarchy(ctx, campaignSetID)
}

func (w *generationWriter) write(ctx context.Context, plan *HierarchyPlan, attrs campaignAttributes) (*writeResult, error) {
	if !repository.InTransaction(ctx) {
		return nil, ErrWriteOutsideTransaction
	}
	result := &writeResult{}

	// Phase 1: campaigns
	campaigns := make([]*models.GeneratedCampaign, len(plan.Campaigns))
	for i, pc := range plan.Campaigns {
		campaigns[i] = &models.GeneratedCampaign{
			CampaignSetID: attrs.CampaignSetID,
			TemplateID:    attrs.TemplateID,
			DataRowID:     pc.DataRowID,
			Name:          pc.Name,
			Platform:      pc.Platform,
			Objective:     attrs.Objective,
			Budget:        attrs.Budget,
		}
	}
	if err := saveInChunks(ctx, w.campaignRepo, campaigns, w.batchSize); err != nil {
		return nil, err
	}
	result.Campaigns = campaigns

	// Phase 2: ad groups, parents resolved from the campaign arena
	adGroups := make([]*models.AdGroup, len(plan.AdGroups))
	for i, pg := range plan.AdGroups {
		adGroups[i] = &models.AdGroup{
			CampaignID: campaigns[pg.CampaignIndex].ID,
			Name:       pg.Name,
		}
	}
	if err := saveInChunks(ctx, w.adGroupRepo, adGroups, w.batchSize); err != nil {
		return nil, err
	}
	result.AdGroups = len(adGroups)

	// Phase 3: ads and keywords, parents resolved from the ad group arena
	ads := make([]*models.Ad, len(plan.Ads))
	for i, pa := range plan.Ads {
		ads[i] = &models.Ad{
			AdGroupID:   adGroups[pa.AdGroupIndex].ID,
			Headline:    pa.Headline,
			Description: pa.Description,
			FinalURL:    pa.FinalURL,
		}
	}
	if err := saveInChunks(ctx, w.adRepo, ads, w.batchSize); err != nil {
		return nil, err
	}
	result.Ads = len(ads)

	keywords := make([]*models.Keyword, len(plan.Keywords))
	for i, pk := range plan.Keywords {
		keywords[i] = &models.Keyword{
			AdGroupID: adGroups[pk.AdGroupIndex].ID,
			Text:      pk.Text,
		}
	}
	if err := saveInChunks(ctx, w.keywordRepo, keywords, w.batchSize); err != nil {
		return nil, err
	}
	result.Keywords = len(keywords)

	return result, nil
}

// saveInChunks issues one SaveBatch per chunk so each statement stays bounded
func saveInChunks[T any](ctx context.Context, repo repository.BatchWriter[T], items []*T, size int) error {
	if size <= 0 {
		size = utils.DefaultGenerationBatchSize
	}
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		if err := repo.SaveBatch(ctx, items[start:end]); err != nil {
			return err
		}
	}
	return nil
}
