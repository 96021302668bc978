package businessflow

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"sync/atomic"
	"testing"

	"github.com/amirphl/campaign-forge/app/dto"
	"github.com/amirphl/campaign-forge/models"
	"github.com/amirphl/campaign-forge/repository"
	testutil "github.com/amirphl/campaign-forge/testing"
	"github.com/amirphl/campaign-forge/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type flowFixture struct {
	t        *testing.T
	db       *gorm.DB
	fixtures *testutil.TestFixtures
	repos    GenerationRepositories
	locker   *LocalGenerationLocker
	flow     GenerationFlow
	deletes  *atomic.Int64
}

func newFlowFixture(t *testing.T, settings GenerationSettings) *flowFixture {
	t.Helper()

	tdb, err := testutil.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = tdb.TeardownTestDB() })

	deletes := &atomic.Int64{}
	err = tdb.DB.Callback().Delete().Before("gorm:delete").Register("test:count_deletes", func(*gorm.DB) {
		deletes.Add(1)
	})
	require.NoError(t, err)

	repos := GenerationRepositories{
		DataRows:  repository.NewDataRowRepository(tdb.DB),
		Campaigns: repository.NewGeneratedCampaignRepository(tdb.DB),
		AdGroups:  repository.NewAdGroupRepository(tdb.DB),
		Ads:       repository.NewAdRepository(tdb.DB),
		Keywords:  repository.NewKeywordRepository(tdb.DB),
		AuditLogs: repository.NewAuditLogRepository(tdb.DB),
	}
	locker := NewLocalGenerationLocker()
	flow := NewGenerationFlow(
		repos,
		NewPlatformRegistry(DefaultPlatformDefinitions()...),
		locker,
		settings,
		tdb.DB,
		log.New(io.Discard, "", 0),
	)

	return &flowFixture{
		t:        t,
		db:       tdb.DB,
		fixtures: testutil.NewTestFixtures(tdb),
		repos:    repos,
		locker:   locker,
		flow:     flow,
		deletes:  deletes,
	}
}

func (f *flowFixture) seedNikeAdidas(dataSourceID string) []*models.DataRow {
	f.t.Helper()
	rows, err := f.fixtures.CreateDataRows(dataSourceID,
		testutil.Row("brand", "Nike", "category", "Shoes", "price", 99.99),
		testutil.Row("brand", "Nike", "category", "Apparel", "price", 49.5),
		testutil.Row("brand", "Adidas", "category", "Shoes", "price", 120),
	)
	require.NoError(f.t, err)
	return rows
}

func (f *flowFixture) auditLogs(filter models.AuditLogFilter) []*models.AuditLog {
	f.t.Helper()
	logs, err := f.repos.AuditLogs.ByFilter(context.Background(), filter, "id ASC", 0, 0)
	require.NoError(f.t, err)
	return logs
}

func (f *flowFixture) count(model any) int64 {
	f.t.Helper()
	var n int64
	require.NoError(f.t, f.db.Model(model).Count(&n).Error)
	return n
}

func generateRequest(campaignSetID, dataSourceID string, platforms ...string) *dto.GenerateCampaignsRequest {
	return &dto.GenerateCampaignsRequest{
		GenerationConfig: dto.GenerationConfig{
			CampaignSetID:     campaignSetID,
			DataSourceID:      dataSourceID,
			TemplateID:        "tmpl-1",
			SelectedPlatforms: platforms,
			CampaignConfig: &dto.CampaignConfig{
				NamePattern: "Performance - {brand}",
				Objective:   utils.ToPtr("conversions"),
			},
			HierarchyConfig: &dto.HierarchyConfig{
				AdGroups: []dto.AdGroupTemplate{{
					ID:          "ag-1",
					NamePattern: "{category}",
					Keywords:    []string{"{brand} {category}", "buy {brand}"},
					Ads: []dto.AdTemplate{{
						ID:          "ad-1",
						Headline:    "{brand} {category} from ${price}",
						Description: "Shop {brand} today",
						FinalURL:    "https://shop.example.com/{brand}",
					}},
				}},
			},
		},
	}
}

func TestGenerateCampaigns_NikeAdidasScenario(t *testing.T) {
	f := newFlowFixture(t, GenerationSettings{})
	rows := f.seedNikeAdidas("ds-1")
	ctx := context.Background()

	resp, err := f.flow.GenerateCampaigns(ctx, generateRequest("set-1", "ds-1", "google"), NewClientMetadata("127.0.0.1", "go-test"))
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Created)
	assert.Equal(t, 3, resp.AdGroups)
	assert.Equal(t, 3, resp.Ads)
	assert.Equal(t, 6, resp.Keywords)
	assert.False(t, resp.Regenerated)
	require.Len(t, resp.Campaigns, 2)
	assert.Equal(t, "Performance - Nike", resp.Campaigns[0].Name)
	assert.Equal(t, rows[0].ID, resp.Campaigns[0].DataRowID)
	assert.Equal(t, "Performance - Adidas", resp.Campaigns[1].Name)
	assert.Equal(t, rows[2].ID, resp.Campaigns[1].DataRowID)

	list, err := f.flow.ListGeneratedCampaigns(ctx, "set-1")
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)

	nike := list.Campaigns[0]
	assert.Equal(t, "google", nike.Platform)
	assert.Equal(t, "tmpl-1", nike.TemplateID)
	assert.Equal(t, "conversions", *nike.Objective)
	assert.False(t, nike.Synced)
	require.Len(t, nike.AdGroups, 2)
	assert.Equal(t, "Shoes", nike.AdGroups[0].Name)
	assert.Equal(t, []string{"Nike Shoes", "buy Nike"}, nike.AdGroups[0].Keywords)
	require.Len(t, nike.AdGroups[0].Ads, 1)
	assert.Equal(t, "Nike Shoes from $99.99", nike.AdGroups[0].Ads[0].Headline)
	assert.Equal(t, "https://shop.example.com/Nike", nike.AdGroups[0].Ads[0].FinalURL)
	assert.Equal(t, "Apparel", nike.AdGroups[1].Name)
	assert.Equal(t, "Nike Apparel from $49.5", nike.AdGroups[1].Ads[0].Headline)

	adidas := list.Campaigns[1]
	require.Len(t, adidas.AdGroups, 1)
	assert.Equal(t, "Shoes", adidas.AdGroups[0].Name)
	assert.Equal(t, "Adidas Shoes from $120", adidas.AdGroups[0].Ads[0].Headline)

	assert.Equal(t, int64(0), f.deletes.Load())

	logs := f.auditLogs(models.AuditLogFilter{CampaignSetID: utils.ToPtr("set-1")})
	require.Len(t, logs, 1)
	assert.Equal(t, models.AuditActionCampaignsGenerated, logs[0].Action)
	assert.True(t, utils.IsTrue(logs[0].Success))
	assert.Equal(t, "127.0.0.1", *logs[0].IPAddress)
}

func TestGenerateCampaigns_RerunWithoutRegenerateDuplicates(t *testing.T) {
	f := newFlowFixture(t, GenerationSettings{})
	f.seedNikeAdidas("ds-1")
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		resp, err := f.flow.GenerateCampaigns(ctx, generateRequest("set-1", "ds-1", "google"), nil)
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Created)
	}

	assert.Equal(t, int64(4), f.count(&models.GeneratedCampaign{}))
	assert.Equal(t, int64(6), f.count(&models.AdGroup{}))
	assert.Equal(t, int64(0), f.deletes.Load(), "no delete is issued without regenerate")
}

func TestGenerateCampaigns_PlatformMultiplication(t *testing.T) {
	f := newFlowFixture(t, GenerationSettings{})
	f.seedNikeAdidas("ds-1")

	resp, err := f.flow.GenerateCampaigns(context.Background(), generateRequest("set-1", "ds-1", "google", "meta"), nil)
	require.NoError(t, err)

	assert.Equal(t, 4, resp.Created)
	assert.Equal(t, 6, resp.AdGroups)
	platforms := map[string]int{}
	for _, c := range resp.Campaigns {
		platforms[c.Platform]++
	}
	assert.Equal(t, map[string]int{"google": 2, "meta": 2}, platforms)
	assert.Equal(t, int64(4), f.count(&models.GeneratedCampaign{}))
}

func TestGenerateCampaigns_BlankCampaignNamesExcluded(t *testing.T) {
	f := newFlowFixture(t, GenerationSettings{})
	rows, err := f.fixtures.CreateDataRows("ds-1",
		testutil.Row("brand", "   ", "category", "Hats"),
		testutil.Row("brand", "Nike", "category", "Shoes"),
		testutil.Row("brand", nil, "category", "Socks"),
	)
	require.NoError(t, err)

	req := generateRequest("set-1", "ds-1", "google")
	req.CampaignConfig.NamePattern = "{brand}"

	resp, err := f.flow.GenerateCampaigns(context.Background(), req, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Created)
	assert.Equal(t, "Nike", resp.Campaigns[0].Name)
	assert.Equal(t, rows[1].ID, resp.Campaigns[0].DataRowID)
	assert.Equal(t, 1, resp.AdGroups, "skipped rows contribute no ad groups")
	assert.Equal(t, 2, resp.Keywords)
	assert.Equal(t, 1, resp.Ads)
}

func TestGenerateCampaigns_MissingVariableKeepsPlaceholder(t *testing.T) {
	f := newFlowFixture(t, GenerationSettings{})
	_, err := f.fixtures.CreateDataRows("ds-1", testutil.Row("brand", "Nike"))
	require.NoError(t, err)

	req := generateRequest("set-1", "ds-1", "google")
	req.CampaignConfig.NamePattern = "{brand} - {missing}"

	resp, err := f.flow.GenerateCampaigns(context.Background(), req, nil)
	require.NoError(t, err)

	require.Len(t, resp.Campaigns, 1)
	assert.Equal(t, "Nike - {missing}", resp.Campaigns[0].Name)
}

func TestGenerateCampaigns_KeywordRenderingBlankIsStored(t *testing.T) {
	f := newFlowFixture(t, GenerationSettings{})
	_, err := f.fixtures.CreateDataRows("ds-1", testutil.Row("brand", "Nike", "category", "Shoes", "kw", nil))
	require.NoError(t, err)

	req := generateRequest("set-1", "ds-1", "google")
	req.HierarchyConfig.AdGroups[0].Keywords = []string{"{kw}", "buy {brand}"}

	resp, err := f.flow.GenerateCampaigns(context.Background(), req, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Keywords)

	var texts []string
	require.NoError(t, f.db.Model(&models.Keyword{}).Order("id ASC").Pluck("text", &texts).Error)
	assert.Equal(t, []string{"", "buy Nike"}, texts)
}

func TestGenerateCampaigns_EmptyAdGroupTemplates(t *testing.T) {
	f := newFlowFixture(t, GenerationSettings{})
	f.seedNikeAdidas("ds-1")

	req := generateRequest("set-1", "ds-1", "google")
	req.HierarchyConfig.AdGroups = nil

	resp, err := f.flow.GenerateCampaigns(context.Background(), req, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Created)
	assert.Equal(t, 0, resp.AdGroups)
	assert.Equal(t, int64(0), f.count(&models.AdGroup{}))
}

func TestGenerateCampaigns_EmptyDataSource(t *testing.T) {
	f := newFlowFixture(t, GenerationSettings{})

	resp, err := f.flow.GenerateCampaigns(context.Background(), generateRequest("set-1", "ds-empty", "google"), nil)
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Created)
	assert.Empty(t, resp.Campaigns)
}

func TestGenerateCampaigns_RegenerationBlockedBySyncRecord(t *testing.T) {
	f := newFlowFixture(t, GenerationSettings{})
	f.seedNikeAdidas("ds-1")
	ctx := context.Background()

	first, err := f.flow.GenerateCampaigns(ctx, generateRequest("set-1", "ds-1", "google"), nil)
	require.NoError(t, err)

	synced, err := f.repos.Campaigns.ByID(ctx, first.Campaigns[0].ID)
	require.NoError(t, err)
	_, err = f.fixtures.CreateSyncRecord(synced, models.SyncStatusSynced)
	require.NoError(t, err)

	req := generateRequest("set-1", "ds-1", "google")
	req.Options = dto.GenerationOptions{Regenerate: true}

	resp, err := f.flow.GenerateCampaigns(ctx, req, nil)
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, "Cannot regenerate: some campaigns have been synced to platforms", err.Error())
	assert.True(t, IsGenerationConflict(err))
	assert.True(t, IsCampaignsAlreadySynced(err))

	assert.Equal(t, int64(0), f.deletes.Load())
	assert.Equal(t, int64(2), f.count(&models.GeneratedCampaign{}))
	assert.Equal(t, int64(1), f.count(&models.SyncRecord{}))

	blocked := f.auditLogs(models.AuditLogFilter{Action: utils.ToPtr(models.AuditActionCampaignGenerationBlocked)})
	require.Len(t, blocked, 1)
	assert.True(t, blocked[0].IsFailed())

	var payload struct {
		GuardState string   `json:"guard_state"`
		GuardTrace []string `json:"guard_trace"`
	}
	require.NoError(t, json.Unmarshal(blocked[0].Metadata, &payload))
	assert.Equal(t, "BLOCKED", payload.GuardState)
	assert.Equal(t, []string{"REQUESTED", "CHECK_SYNC", "BLOCKED"}, payload.GuardTrace)

	// The lock was released on failure
	_, err = f.flow.GenerateCampaigns(ctx, generateRequest("set-1", "ds-1", "google"), nil)
	require.NoError(t, err)
}

func TestGenerateCampaigns_RegenerationBlockedByPlatformCampaignID(t *testing.T) {
	f := newFlowFixture(t, GenerationSettings{})
	f.seedNikeAdidas("ds-1")
	ctx := context.Background()

	first, err := f.flow.GenerateCampaigns(ctx, generateRequest("set-1", "ds-1", "google"), nil)
	require.NoError(t, err)
	require.NoError(t, f.fixtures.SetPlatformCampaignID(first.Campaigns[1].ID, "gads-123"))

	req := generateRequest("set-1", "ds-1", "google")
	req.Options.Regenerate = true

	_, err = f.flow.GenerateCampaigns(ctx, req, nil)
	require.Error(t, err)
	assert.True(t, IsCampaignsAlreadySynced(err))
	assert.Equal(t, int64(2), f.count(&models.GeneratedCampaign{}))
}

func TestGenerateCampaigns_ForceBypassesSyncCheck(t *testing.T) {
	f := newFlowFixture(t, GenerationSettings{})
	f.seedNikeAdidas("ds-1")
	ctx := context.Background()

	first, err := f.flow.GenerateCampaigns(ctx, generateRequest("set-1", "ds-1", "google"), nil)
	require.NoError(t, err)
	synced, err := f.repos.Campaigns.ByID(ctx, first.Campaigns[0].ID)
	require.NoError(t, err)
	_, err = f.fixtures.CreateSyncRecord(synced, models.SyncStatusSynced)
	require.NoError(t, err)

	// A different campaign set is left untouched
	_, err = f.flow.GenerateCampaigns(ctx, generateRequest("set-2", "ds-1", "meta"), nil)
	require.NoError(t, err)

	req := generateRequest("set-1", "ds-1", "google")
	req.Options = dto.GenerationOptions{Regenerate: true, Force: true}

	resp, err := f.flow.GenerateCampaigns(ctx, req, nil)
	require.NoError(t, err)

	assert.True(t, resp.Regenerated)
	assert.Equal(t, int64(2), resp.Deleted)
	assert.Equal(t, 2, resp.Created)
	assert.Positive(t, f.deletes.Load())

	set1, err := f.repos.Campaigns.Count(ctx, models.GeneratedCampaignFilter{CampaignSetID: utils.ToPtr("set-1")})
	require.NoError(t, err)
	assert.Equal(t, int64(2), set1)
	set2, err := f.repos.Campaigns.Count(ctx, models.GeneratedCampaignFilter{CampaignSetID: utils.ToPtr("set-2")})
	require.NoError(t, err)
	assert.Equal(t, int64(2), set2)

	assert.Equal(t, int64(0), f.count(&models.SyncRecord{}))
	assert.Equal(t, int64(6), f.count(&models.AdGroup{}))
	assert.Equal(t, int64(12), f.count(&models.Keyword{}))

	old, err := f.repos.Campaigns.ByID(ctx, first.Campaigns[0].ID)
	require.NoError(t, err)
	assert.Nil(t, old, "prior campaigns are deleted")
}

func TestGenerateCampaigns_RegenerateWithoutSyncedCampaigns(t *testing.T) {
	f := newFlowFixture(t, GenerationSettings{})
	f.seedNikeAdidas("ds-1")
	ctx := context.Background()

	_, err := f.flow.GenerateCampaigns(ctx, generateRequest("set-1", "ds-1", "google"), nil)
	require.NoError(t, err)

	req := generateRequest("set-1", "ds-1", "google")
	req.Options.Regenerate = true

	resp, err := f.flow.GenerateCampaigns(ctx, req, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.Deleted)
	assert.Equal(t, int64(2), f.count(&models.GeneratedCampaign{}))
	assert.Equal(t, int64(3), f.count(&models.AdGroup{}))
	assert.Equal(t, int64(3), f.count(&models.Ad{}))
	assert.Equal(t, int64(6), f.count(&models.Keyword{}))

	logs := f.auditLogs(models.AuditLogFilter{Action: utils.ToPtr(models.AuditActionCampaignsRegenerated)})
	assert.Len(t, logs, 1)
}

func TestGenerateCampaigns_StorageFailureRollsBack(t *testing.T) {
	f := newFlowFixture(t, GenerationSettings{})
	f.seedNikeAdidas("ds-1")
	ctx := context.Background()

	_, err := f.flow.GenerateCampaigns(ctx, generateRequest("set-1", "ds-1", "google"), nil)
	require.NoError(t, err)

	var failKeywords atomic.Bool
	err = f.db.Callback().Create().Before("gorm:create").Register("test:fail_keywords", func(tx *gorm.DB) {
		if failKeywords.Load() && tx.Statement.Table == "generated_keywords" {
			_ = tx.AddError(errors.New("disk full"))
		}
	})
	require.NoError(t, err)
	failKeywords.Store(true)

	req := generateRequest("set-1", "ds-1", "google", "meta")
	req.Options.Regenerate = true

	resp, err := f.flow.GenerateCampaigns(ctx, req, nil)
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, IsGenerationStorageError(err))
	assert.Contains(t, err.Error(), "disk full")

	// The delete and every insert of the failed run were rolled back
	assert.Equal(t, int64(2), f.count(&models.GeneratedCampaign{}))
	assert.Equal(t, int64(3), f.count(&models.AdGroup{}))
	assert.Equal(t, int64(3), f.count(&models.Ad{}))
	assert.Equal(t, int64(6), f.count(&models.Keyword{}))

	failKeywords.Store(false)
	failed := f.auditLogs(models.AuditLogFilter{Success: utils.ToPtr(false)})
	require.Len(t, failed, 1)
	assert.Equal(t, models.AuditActionCampaignGenerationFailed, failed[0].Action)
}

func TestGenerateCampaigns_ValidationBeforeStorage(t *testing.T) {
	// No repositories and no database: any storage access would panic
	flow := NewGenerationFlow(GenerationRepositories{}, nil, nil, GenerationSettings{}, nil, log.New(io.Discard, "", 0))

	tests := []struct {
		name    string
		mutate  func(*dto.GenerateCampaignsRequest)
		wantMsg string
	}{
		{
			name:    "data source required",
			mutate:  func(r *dto.GenerateCampaignsRequest) { r.DataSourceID = " " },
			wantMsg: "dataSourceId is required",
		},
		{
			name:    "campaign set required",
			mutate:  func(r *dto.GenerateCampaignsRequest) { r.CampaignSetID = "" },
			wantMsg: "campaignSetId is required",
		},
		{
			name:    "platform required",
			mutate:  func(r *dto.GenerateCampaignsRequest) { r.SelectedPlatforms = nil },
			wantMsg: "At least one platform must be selected",
		},
		{
			name:    "hierarchy config required",
			mutate:  func(r *dto.GenerateCampaignsRequest) { r.HierarchyConfig = nil },
			wantMsg: "hierarchyConfig is required",
		},
		{
			name:    "campaign config required",
			mutate:  func(r *dto.GenerateCampaignsRequest) { r.CampaignConfig = nil },
			wantMsg: "campaignConfig is required",
		},
		{
			name:    "name pattern required",
			mutate:  func(r *dto.GenerateCampaignsRequest) { r.CampaignConfig.NamePattern = "" },
			wantMsg: "campaignConfig.namePattern is required",
		},
		{
			name: "checks run in order",
			mutate: func(r *dto.GenerateCampaignsRequest) {
				r.DataSourceID = ""
				r.CampaignSetID = ""
				r.SelectedPlatforms = nil
			},
			wantMsg: "dataSourceId is required",
		},
		{
			name:    "unsupported platform",
			mutate:  func(r *dto.GenerateCampaignsRequest) { r.SelectedPlatforms = []string{"google", "myspace"} },
			wantMsg: "unsupported platform: myspace",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := generateRequest("set-1", "ds-1", "google")
			tt.mutate(req)

			resp, err := flow.GenerateCampaigns(context.Background(), req, nil)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.True(t, IsGenerationConfigError(err))

			_, err = flow.PreviewCampaigns(context.Background(), &dto.PreviewCampaignsRequest{GenerationConfig: req.GenerationConfig})
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestGenerateCampaigns_RowLimit(t *testing.T) {
	f := newFlowFixture(t, GenerationSettings{MaxRows: 2})
	f.seedNikeAdidas("ds-1")

	_, err := f.flow.GenerateCampaigns(context.Background(), generateRequest("set-1", "ds-1", "google"), nil)
	require.Error(t, err)
	assert.True(t, IsTooManyRows(err))
	assert.True(t, IsGenerationConfigError(err))
	assert.Equal(t, int64(0), f.count(&models.GeneratedCampaign{}))
}

func TestGenerateCampaigns_SmallBatchSize(t *testing.T) {
	f := newFlowFixture(t, GenerationSettings{BatchSize: 1})
	f.seedNikeAdidas("ds-1")

	resp, err := f.flow.GenerateCampaigns(context.Background(), generateRequest("set-1", "ds-1", "google", "reddit"), nil)
	require.NoError(t, err)

	assert.Equal(t, 4, resp.Created)
	for _, c := range resp.Campaigns {
		assert.NotZero(t, c.ID)
	}
	assert.Equal(t, int64(12), f.count(&models.Keyword{}))
}

func TestGenerateCampaigns_ConcurrentRunRejected(t *testing.T) {
	f := newFlowFixture(t, GenerationSettings{})
	f.seedNikeAdidas("ds-1")
	ctx := context.Background()

	release, err := f.locker.Acquire(ctx, "set-1")
	require.NoError(t, err)

	_, err = f.flow.GenerateCampaigns(ctx, generateRequest("set-1", "ds-1", "google"), nil)
	require.Error(t, err)
	assert.True(t, IsGenerationInProgress(err))
	assert.True(t, IsGenerationConflict(err))
	assert.Equal(t, int64(0), f.count(&models.GeneratedCampaign{}))

	// Other campaign sets are not blocked
	_, err = f.flow.GenerateCampaigns(ctx, generateRequest("set-2", "ds-1", "google"), nil)
	require.NoError(t, err)

	release()
	_, err = f.flow.GenerateCampaigns(ctx, generateRequest("set-1", "ds-1", "google"), nil)
	require.NoError(t, err)
}

func TestPreviewCampaigns(t *testing.T) {
	f := newFlowFixture(t, GenerationSettings{})
	rows := f.seedNikeAdidas("ds-1")
	_, err := f.fixtures.CreateDataRows("ds-1", testutil.Row("brand", "", "category", "Hats"))
	require.NoError(t, err)

	resp, err := f.flow.PreviewCampaigns(context.Background(), &dto.PreviewCampaignsRequest{
		GenerationConfig: generateRequest("set-1", "ds-1", "google", "meta").GenerationConfig,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, resp.TotalRows)
	assert.Equal(t, 1, resp.SkippedRows)
	assert.Equal(t, 4, resp.Campaigns)
	assert.Equal(t, 6, resp.AdGroups)
	assert.Equal(t, 6, resp.Ads)
	assert.Equal(t, 12, resp.Keywords)
	require.Len(t, resp.CampaignList, 4)
	assert.Equal(t, "Performance - Nike", resp.CampaignList[0].Name)
	assert.Equal(t, 2, resp.CampaignList[0].Rows)
	assert.Equal(t, rows[0].ID, resp.CampaignList[0].DataRowID)
	require.Len(t, resp.CampaignList[0].AdGroups, 2)
	assert.Equal(t, []string{"Nike Apparel", "buy Nike"}, resp.CampaignList[0].AdGroups[1].Keywords)
	assert.Equal(t, "meta", resp.CampaignList[2].Platform)

	assert.Equal(t, int64(0), f.count(&models.GeneratedCampaign{}), "preview writes nothing")
	assert.Equal(t, int64(0), f.count(&models.AuditLog{}))
}

func TestListGeneratedCampaigns_RequiresCampaignSet(t *testing.T) {
	flow := NewGenerationFlow(GenerationRepositories{}, nil, nil, GenerationSettings{}, nil, log.New(io.Discard, "", 0))

	_, err := flow.ListGeneratedCampaigns(context.Background(), "  ")
	require.Error(t, err)
	assert.Equal(t, "campaignSetId is required", err.Error())
}
