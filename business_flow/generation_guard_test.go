package businessflow

import (
	"context"
	"errors"
	"testing"

	"github.com/amirphl/campaign-forge/app/dto"
	"github.com/amirphl/campaign-forge/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSyncChecker struct {
	mock.Mock
}

func (m *mockSyncChecker) HasSyncedCampaigns(ctx context.Context, campaignSetID string) (bool, error) {
	args := m.Called(ctx, campaignSetID)
	return args.Bool(0), args.Error(1)
}

func TestRegenerationGuard_Evaluate(t *testing.T) {
	tests := []struct {
		name        string
		opts        dto.GenerationOptions
		synced      *bool
		checkErr    error
		wantState   GuardState
		wantTrace   []GuardState
		wantDelete  bool
		wantErrFunc func(error) bool
	}{
		{
			name:      "regenerate not requested",
			opts:      dto.GenerationOptions{},
			wantState: GuardSkipCheck,
			wantTrace: []GuardState{GuardNotRequested, GuardSkipCheck},
		},
		{
			name:      "force without regenerate never checks",
			opts:      dto.GenerationOptions{Force: true},
			wantState: GuardSkipCheck,
			wantTrace: []GuardState{GuardNotRequested, GuardSkipCheck},
		},
		{
			name:       "regenerate with nothing synced",
			opts:       dto.GenerationOptions{Regenerate: true},
			synced:     utils.ToPtr(false),
			wantState:  GuardCleared,
			wantTrace:  []GuardState{GuardRequested, GuardCheckSync, GuardCleared},
			wantDelete: true,
		},
		{
			name:        "regenerate blocked by synced campaigns",
			opts:        dto.GenerationOptions{Regenerate: true},
			synced:      utils.ToPtr(true),
			wantState:   GuardBlocked,
			wantTrace:   []GuardState{GuardRequested, GuardCheckSync, GuardBlocked},
			wantErrFunc: IsCampaignsAlreadySynced,
		},
		{
			name:       "force skips the sync query",
			opts:       dto.GenerationOptions{Regenerate: true, Force: true},
			wantState:  GuardCleared,
			wantTrace:  []GuardState{GuardRequested, GuardCleared},
			wantDelete: true,
		},
		{
			name:        "sync query failure",
			opts:        dto.GenerationOptions{Regenerate: true},
			synced:      utils.ToPtr(false),
			checkErr:    errors.New("connection reset"),
			wantState:   GuardCheckSync,
			wantTrace:   []GuardState{GuardRequested, GuardCheckSync},
			wantErrFunc: IsGenerationStorageError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := &mockSyncChecker{}
			if tt.synced != nil {
				checker.On("HasSyncedCampaigns", mock.Anything, "set-1").Return(*tt.synced, tt.checkErr).Once()
			}

			guard := NewRegenerationGuard(checker)
			assert.Equal(t, GuardNotRequested, guard.State())

			state, err := guard.Evaluate(context.Background(), "set-1", tt.opts)

			assert.Equal(t, tt.wantState, state)
			assert.Equal(t, tt.wantTrace, guard.Trace())
			assert.Equal(t, tt.wantDelete, guard.ShouldDelete())
			if tt.wantErrFunc != nil {
				require.Error(t, err)
				assert.True(t, tt.wantErrFunc(err), "unexpected error: %v", err)
			} else {
				require.NoError(t, err)
			}

			checker.AssertExpectations(t)
			if tt.synced == nil {
				checker.AssertNotCalled(t, "HasSyncedCampaigns", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestRegenerationGuard_BlockedMessage(t *testing.T) {
	checker := &mockSyncChecker{}
	checker.On("HasSyncedCampaigns", mock.Anything, "set-1").Return(true, nil)

	_, err := NewRegenerationGuard(checker).Evaluate(context.Background(), "set-1", dto.GenerationOptions{Regenerate: true})

	require.Error(t, err)
	assert.Equal(t, "Cannot regenerate: some campaigns have been synced to platforms", err.Error())
	assert.True(t, IsGenerationConflict(err))
}
