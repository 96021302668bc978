// Package businessflow contains the core business logic and use cases for campaign generation workflows
package businessflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/amirphl/campaign-forge/app/dto"
	"github.com/amirphl/campaign-forge/models"
	"github.com/amirphl/campaign-forge/repository"
	"github.com/amirphl/campaign-forge/utils"
	"gorm.io/gorm"
)

// GenerationFlow expands data source rows into campaign hierarchies
type GenerationFlow interface {
	GenerateCampaigns(ctx context.Context, req *dto.GenerateCampaignsRequest, metadata *ClientMetadata) (*dto.GenerateCampaignsResponse, error)
	PreviewCampaigns(ctx context.Context, req *dto.PreviewCampaignsRequest) (*dto.PreviewCampaignsResponse, error)
	ListGeneratedCampaigns(ctx context.Context, campaignSetID string) (*dto.ListGeneratedCampaignsResponse, error)
	ExportCampaignSet(ctx context.Context, campaignSetID string, metadata *ClientMetadata) (*dto.ExportCampaignSetResponse, error)
}

// GenerationSettings bounds a single generation run
type GenerationSettings struct {
	MaxRows   int
	BatchSize int
}

// GenerationRepositories groups the repositories the flow reads and writes
type GenerationRepositories struct {
	DataRows  repository.DataRowRepository
	Campaigns repository.GeneratedCampaignRepository
	AdGroups  repository.AdGroupRepository
	Ads       repository.AdRepository
	Keywords  repository.KeywordRepository
	AuditLogs repository.AuditLogRepository
}

// GenerationFlowImpl implements the generation business flow
type GenerationFlowImpl struct {
	dataRowRepo  repository.DataRowRepository
	campaignRepo repository.GeneratedCampaignRepository
	auditRepo    repository.AuditLogRepository
	writer       *generationWriter
	registry     *PlatformRegistry
	locker       GenerationLocker
	settings     GenerationSettings
	db           *gorm.DB
	logger       *log.Logger
}

// NewGenerationFlow creates a new generation flow instance
func NewGenerationFlow(
	repos GenerationRepositories,
	registry *PlatformRegistry,
	locker GenerationLocker,
	settings GenerationSettings,
	db *gorm.DB,
	logger *log.Logger,
) GenerationFlow {
	if settings.BatchSize <= 0 {
		settings.BatchSize = utils.DefaultGenerationBatchSize
	}
	if registry == nil {
		registry = NewPlatformRegistry(DefaultPlatformDefinitions()...)
	}
	if locker == nil {
		locker = NewLocalGenerationLocker()
	}
	if logger == nil {
		logger = log.Default()
	}

	return &GenerationFlowImpl{
		dataRowRepo:  repos.DataRows,
		campaignRepo: repos.Campaigns,
		auditRepo:    repos.AuditLogs,
		writer: &generationWriter{
			campaignRepo: repos.Campaigns,
			adGroupRepo:  repos.AdGroups,
			adRepo:       repos.Ads,
			keywordRepo:  repos.Keywords,
			batchSize:    settings.BatchSize,
		},
		registry: registry,
		locker:   locker,
		settings: settings,
		db:       db,
		logger:   logger,
	}
}

// GenerateCampaigns validates the configuration, then fetches rows, guards regeneration, groups,
// builds and writes the hierarchy inside one transaction held under the campaign set lock.
func (s *GenerationFlowImpl) GenerateCampaigns(ctx context.Context, req *dto.GenerateCampaignsRequest, metadata *ClientMetadata) (resp *dto.GenerateCampaignsResponse, err error) {
	start := time.Now()
	if req == nil {
		return nil, configError(ErrCampaignConfigRequired)
	}
	cfg := &req.GenerationConfig
	opts := req.Options

	var (
		result  *writeResult
		skipped int
	)
	guard := NewRegenerationGuard(s.campaignRepo)
	defer func() {
		observeGeneration(start, opts.Regenerate, err, result, skipped)
	}()

	// Validation never touches storage
	platforms, err := s.validateConfig(cfg)
	if err != nil {
		return nil, err
	}

	release, err := s.locker.Acquire(ctx, cfg.CampaignSetID)
	if err != nil {
		if !IsGenerationConflict(err) {
			err = storageError(err)
		}
		s.auditGeneration(ctx, cfg, opts, metadata, guard, nil, err)
		return nil, err
	}
	defer release()

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		rows, err := s.fetchRows(txCtx, cfg.DataSourceID)
		if err != nil {
			return err
		}

		if _, err := guard.Evaluate(txCtx, cfg.CampaignSetID, opts); err != nil {
			return err
		}

		grouping := GroupRows(rows, cfg.CampaignConfig.NamePattern, cfg.HierarchyConfig.AdGroups)
		skipped = grouping.SkippedRows
		plan := BuildHierarchy(grouping.Groups, platforms)

		var deleted int64
		if guard.ShouldDelete() {
			deleted, err = s.writer.deleteExisting(txCtx, cfg.CampaignSetID)
			if err != nil {
				return storageError(err)
			}
		}

		written, err := s.writer.write(txCtx, plan, campaignAttributes{
			CampaignSetID: cfg.CampaignSetID,
			TemplateID:    cfg.TemplateID,
			Objective:     cfg.CampaignConfig.Objective,
			Budget:        cfg.CampaignConfig.Budget,
		})
		if err != nil {
			return storageError(err)
		}
		written.Deleted = deleted
		result = written
		return nil
	})
	if err != nil {
		var be *BusinessError
		if !errors.As(err, &be) {
			err = storageError(err)
		}
		result = nil
		s.logger.Printf("campaign generation failed for campaign set %s: %v", cfg.CampaignSetID, err)
		s.auditGeneration(ctx, cfg, opts, metadata, guard, nil, err)
		return nil, err
	}

	s.auditGeneration(ctx, cfg, opts, metadata, guard, result, nil)
	s.logger.Printf("generated %d campaigns, %d ad groups, %d ads, %d keywords for campaign set %s",
		len(result.Campaigns), result.AdGroups, result.Ads, result.Keywords, cfg.CampaignSetID)

	return toGenerateCampaignsResponse(result, guard.ShouldDelete()), nil
}

// PreviewCampaigns computes the plan a generation run would write, without opening a write transaction
func (s *GenerationFlowImpl) PreviewCampaigns(ctx context.Context, req *dto.PreviewCampaignsRequest) (*dto.PreviewCampaignsResponse, error) {
	if req == nil {
		return nil, configError(ErrCampaignConfigRequired)
	}
	cfg := &req.GenerationConfig

	platforms, err := s.validateConfig(cfg)
	if err != nil {
		return nil, err
	}

	rows, err := s.fetchRows(ctx, cfg.DataSourceID)
	if err != nil {
		return nil, err
	}

	grouping := GroupRows(rows, cfg.CampaignConfig.NamePattern, cfg.HierarchyConfig.AdGroups)
	plan := BuildHierarchy(grouping.Groups, platforms)

	return toPreviewResponse(plan, len(rows), grouping.SkippedRows), nil
}

// ListGeneratedCampaigns returns the persisted hierarchy of a campaign set
func (s *GenerationFlowImpl) ListGeneratedCampaigns(ctx context.Context, campaignSetID string) (*dto.ListGeneratedCampaignsResponse, error) {
	campaignSetID = strings.TrimSpace(campaignSetID)
	if campaignSetID == "" {
		return nil, configError(ErrCampaignSetIDRequired)
	}

	campaigns, err := s.campaignRepo.ListWithHierarchy(ctx, campaignSetID)
	if err != nil {
		return nil, storageError(err)
	}

	resp := &dto.ListGeneratedCampaignsResponse{
		CampaignSetID: campaignSetID,
		Total:         len(campaigns),
		Campaigns:     make([]dto.GeneratedCampaignDTO, 0, len(campaigns)),
	}
	for _, c := range campaigns {
		resp.Campaigns = append(resp.Campaigns, toGeneratedCampaignDTO(c))
	}

	return resp, nil
}

// validateConfig runs the fail-fast checks in their fixed order, then resolves platforms
func (s *GenerationFlowImpl) validateConfig(cfg *dto.GenerationConfig) ([]models.Platform, error) {
	if utils.IsBlank(cfg.DataSourceID) {
		return nil, configError(ErrDataSourceIDRequired)
	}
	if utils.IsBlank(cfg.CampaignSetID) {
		return nil, configError(ErrCampaignSetIDRequired)
	}
	if len(cfg.SelectedPlatforms) == 0 {
		return nil, configError(ErrPlatformRequired)
	}
	if cfg.HierarchyConfig == nil {
		return nil, configError(ErrHierarchyConfigRequired)
	}
	if cfg.CampaignConfig == nil {
		return nil, configError(ErrCampaignConfigRequired)
	}
	if utils.IsBlank(cfg.CampaignConfig.NamePattern) {
		return nil, configError(ErrCampaignNamePatternMissing)
	}

	return s.registry.Resolve(cfg.SelectedPlatforms)
}

// fetchRows reads the data source in row order and enforces the row limit
func (s *GenerationFlowImpl) fetchRows(ctx context.Context, dataSourceID string) ([]*models.DataRow, error) {
	limit := 0
	if s.settings.MaxRows > 0 {
		limit = s.settings.MaxRows + 1
	}

	rows, err := s.dataRowRepo.ListByDataSource(ctx, dataSourceID, limit)
	if err != nil {
		return nil, storageError(err)
	}
	if s.settings.MaxRows > 0 && len(rows) > s.settings.MaxRows {
		return nil, configError(ErrTooManyRows)
	}

	return rows, nil
}

func (s *GenerationFlowImpl) auditGeneration(ctx context.Context, cfg *dto.GenerationConfig, opts dto.GenerationOptions, metadata *ClientMetadata, guard *RegenerationGuard, result *writeResult, genErr error) {
	action := models.AuditActionCampaignsGenerated
	if opts.Regenerate {
		action = models.AuditActionCampaignsRegenerated
	}

	payload := map[string]any{
		"data_source_id":     cfg.DataSourceID,
		"template_id":        cfg.TemplateID,
		"selected_platforms": cfg.SelectedPlatforms,
		"regenerate":         opts.Regenerate,
		"force":              opts.Force,
		"guard_state":        string(guard.State()),
		"guard_trace":        guard.Trace(),
	}

	var (
		description string
		errMsg      *string
	)
	switch {
	case genErr == nil:
		description = fmt.Sprintf("Generated %d campaigns for campaign set %s", len(result.Campaigns), cfg.CampaignSetID)
		payload["created"] = len(result.Campaigns)
		payload["ad_groups"] = result.AdGroups
		payload["ads"] = result.Ads
		payload["keywords"] = result.Keywords
		payload["deleted"] = result.Deleted
	case IsCampaignsAlreadySynced(genErr):
		action = models.AuditActionCampaignGenerationBlocked
		description = fmt.Sprintf("Regeneration blocked for campaign set %s", cfg.CampaignSetID)
		errMsg = utils.ToPtr(genErr.Error())
	default:
		action = models.AuditActionCampaignGenerationFailed
		description = fmt.Sprintf("Campaign generation failed for campaign set %s", cfg.CampaignSetID)
		errMsg = utils.ToPtr(genErr.Error())
	}

	s.createAuditLog(ctx, action, cfg.CampaignSetID, description, genErr == nil, errMsg, payload, metadata)
}

// createAuditLog writes outside any generation transaction; failures are logged only
func (s *GenerationFlowImpl) createAuditLog(ctx context.Context, action, campaignSetID, description string, success bool, errMsg *string, payload map[string]any, metadata *ClientMetadata) {
	if s.auditRepo == nil {
		return
	}

	if metadata != nil && len(metadata.Additional) > 0 {
		payload["client"] = metadata.Additional
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		s.logger.Printf("failed to marshal audit metadata for %s: %v", action, err)
		raw = nil
	}

	audit := &models.AuditLog{
		Action:        action,
		CampaignSetID: utils.ToPtr(campaignSetID),
		Description:   utils.ToPtr(description),
		Metadata:      raw,
		Success:       utils.ToPtr(success),
		ErrorMessage:  errMsg,
	}
	if metadata != nil {
		audit.IPAddress = nonEmptyPtr(metadata.IPAddress)
		audit.UserAgent = nonEmptyPtr(metadata.UserAgent)
		audit.RequestID = nonEmptyPtr(metadata.RequestID)
	}

	if err := s.auditRepo.Save(ctx, audit); err != nil {
		s.logger.Printf("failed to write audit log %s for campaign set %s: %v", action, campaignSetID, err)
	}
}

func nonEmptyPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toGenerateCampaignsResponse(result *writeResult, regenerated bool) *dto.GenerateCampaignsResponse {
	resp := &dto.GenerateCampaignsResponse{
		Message:     "Campaigns generated successfully",
		Created:     len(result.Campaigns),
		AdGroups:    result.AdGroups,
		Ads:         result.Ads,
		Keywords:    result.Keywords,
		Deleted:     result.Deleted,
		Regenerated: regenerated,
		Campaigns:   make([]dto.GeneratedCampaignSummary, 0, len(result.Campaigns)),
	}
	for _, c := range result.Campaigns {
		resp.Campaigns = append(resp.Campaigns, dto.GeneratedCampaignSummary{
			ID:         c.ID,
			UUID:       c.UUID.String(),
			Name:       c.Name,
			Platform:   c.Platform.String(),
			TemplateID: c.TemplateID,
			DataRowID:  c.DataRowID,
		})
	}
	return resp
}

func toPreviewResponse(plan *HierarchyPlan, totalRows, skipped int) *dto.PreviewCampaignsResponse {
	keywordsByGroup := make(map[int][]string, len(plan.AdGroups))
	for _, k := range plan.Keywords {
		keywordsByGroup[k.AdGroupIndex] = append(keywordsByGroup[k.AdGroupIndex], k.Text)
	}
	adsByGroup := make(map[int]int, len(plan.AdGroups))
	for _, a := range plan.Ads {
		adsByGroup[a.AdGroupIndex]++
	}
	groupsByCampaign := make(map[int][]dto.PreviewAdGroup, len(plan.Campaigns))
	for gi, g := range plan.AdGroups {
		keywords := keywordsByGroup[gi]
		if keywords == nil {
			keywords = []string{}
		}
		groupsByCampaign[g.CampaignIndex] = append(groupsByCampaign[g.CampaignIndex], dto.PreviewAdGroup{
			Name:      g.Name,
			DataRowID: g.DataRowID,
			Keywords:  keywords,
			Ads:       adsByGroup[gi],
		})
	}

	resp := &dto.PreviewCampaignsResponse{
		TotalRows:    totalRows,
		SkippedRows:  skipped,
		Campaigns:    len(plan.Campaigns),
		AdGroups:     len(plan.AdGroups),
		Ads:          len(plan.Ads),
		Keywords:     len(plan.Keywords),
		CampaignList: make([]dto.PreviewCampaign, 0, len(plan.Campaigns)),
	}
	for ci, c := range plan.Campaigns {
		groups := groupsByCampaign[ci]
		if groups == nil {
			groups = []dto.PreviewAdGroup{}
		}
		resp.CampaignList = append(resp.CampaignList, dto.PreviewCampaign{
			Name:      c.Name,
			Platform:  c.Platform.String(),
			DataRowID: c.DataRowID,
			Rows:      c.RowCount,
			AdGroups:  groups,
		})
	}
	return resp
}

func toGeneratedCampaignDTO(c *models.GeneratedCampaign) dto.GeneratedCampaignDTO {
	out := dto.GeneratedCampaignDTO{
		ID:                 c.ID,
		UUID:               c.UUID.String(),
		Name:               c.Name,
		Platform:           c.Platform.String(),
		TemplateID:         c.TemplateID,
		DataRowID:          c.DataRowID,
		Objective:          c.Objective,
		Budget:             c.Budget,
		PlatformCampaignID: c.PlatformCampaignID,
		Synced:             c.IsSynced(),
		CreatedAt:          c.CreatedAt.Format(time.RFC3339),
		AdGroups:           make([]dto.GeneratedAdGroupDTO, 0, len(c.AdGroups)),
	}
	for _, g := range c.AdGroups {
		group := dto.GeneratedAdGroupDTO{
			ID:       g.ID,
			Name:     g.Name,
			Keywords: make([]string, 0, len(g.Keywords)),
			Ads:      make([]dto.GeneratedAdDTO, 0, len(g.Ads)),
		}
		for _, k := range g.Keywords {
			group.Keywords = append(group.Keywords, k.Text)
		}
		for _, a := range g.Ads {
			group.Ads = append(group.Ads, dto.GeneratedAdDTO{
				ID:          a.ID,
				Headline:    a.Headline,
				Description: a.Description,
				FinalURL:    a.FinalURL,
			})
		}
		out.AdGroups = append(out.AdGroups, group)
	}
	return out
}
