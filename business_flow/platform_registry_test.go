package businessflow

import (
	"testing"

	"github.com/amirphl/campaign-forge/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlatformRegistry_Resolve(t *testing.T) {
	registry := NewPlatformRegistry(DefaultPlatformDefinitions()...)

	tests := []struct {
		name     string
		selected []string
		want     []models.Platform
		wantErr  string
	}{
		{name: "single", selected: []string{"google"}, want: []models.Platform{models.PlatformGoogle}},
		{name: "normalizes case and spaces", selected: []string{" Reddit ", "META"}, want: []models.Platform{models.PlatformReddit, models.PlatformMeta}},
		{name: "drops repeats keeping first position", selected: []string{"meta", "google", "Meta"}, want: []models.Platform{models.PlatformMeta, models.PlatformGoogle}},
		{name: "unknown platform", selected: []string{"google", "tiktok"}, wantErr: "unsupported platform: tiktok"},
		{name: "blank platform", selected: []string{" "}, wantErr: "unsupported platform: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := registry.Resolve(tt.selected)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				assert.True(t, IsGenerationConfigError(err))
				assert.True(t, IsUnsupportedPlatform(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlatformRegistry_Injected(t *testing.T) {
	registry := NewPlatformRegistry(PlatformDefinition{Platform: "Linkedin", DisplayName: "LinkedIn Ads"})

	def, ok := registry.Lookup("linkedin")
	require.True(t, ok)
	assert.Equal(t, "LinkedIn Ads", def.DisplayName)
	assert.Equal(t, []models.Platform{"linkedin"}, registry.Platforms())

	_, err := registry.Resolve([]string{"google"})
	assert.Error(t, err)
}

func TestNewPlatformRegistryFromNames(t *testing.T) {
	registry := NewPlatformRegistryFromNames([]string{"meta", "unknown", "google"})

	assert.Equal(t, []models.Platform{models.PlatformMeta, models.PlatformGoogle}, registry.Platforms())
	_, ok := registry.Lookup(models.PlatformReddit)
	assert.False(t, ok)

	all := NewPlatformRegistryFromNames(nil)
	assert.Len(t, all.Platforms(), len(DefaultPlatformDefinitions()))
}
