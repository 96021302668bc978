package businessflow

import (
	"strings"

	"github.com/amirphl/campaign-forge/models"
)

// PlatformDefinition describes an ad platform campaigns can be generated for
type PlatformDefinition struct {
	Platform         models.Platform
	DisplayName      string
	DefaultObjective string
}

// PlatformRegistry is an explicitly constructed lookup table of supported platforms.
// It is immutable after construction and safe for concurrent use.
type PlatformRegistry struct {
	order []models.Platform
	defs  map[models.Platform]PlatformDefinition
}

// DefaultPlatformDefinitions returns the platforms shipped with the service
func DefaultPlatformDefinitions() []PlatformDefinition {
	return []PlatformDefinition{
		{Platform: models.PlatformReddit, DisplayName: "Reddit Ads", DefaultObjective: "traffic"},
		{Platform: models.PlatformGoogle, DisplayName: "Google Ads", DefaultObjective: "search"},
		{Platform: models.PlatformMeta, DisplayName: "Meta Ads", DefaultObjective: "awareness"},
	}
}

// NewPlatformRegistry builds a registry; later definitions replace earlier ones with the same id
func NewPlatformRegistry(defs ...PlatformDefinition) *PlatformRegistry {
	r := &PlatformRegistry{defs: make(map[models.Platform]PlatformDefinition, len(defs))}
	for _, def := range defs {
		p := def.Platform.Normalize()
		if p == "" {
			continue
		}
		def.Platform = p
		if _, ok := r.defs[p]; !ok {
			r.order = append(r.order, p)
		}
		r.defs[p] = def
	}
	return r
}

// NewPlatformRegistryFromNames keeps the default definitions named in enabled, in that order.
// An empty list enables every default platform.
func NewPlatformRegistryFromNames(enabled []string) *PlatformRegistry {
	if len(enabled) == 0 {
		return NewPlatformRegistry(DefaultPlatformDefinitions()...)
	}

	known := make(map[models.Platform]PlatformDefinition)
	for _, def := range DefaultPlatformDefinitions() {
		known[def.Platform] = def
	}

	var defs []PlatformDefinition
	for _, name := range enabled {
		if def, ok := known[models.Platform(name).Normalize()]; ok {
			defs = append(defs, def)
		}
	}
	return NewPlatformRegistry(defs...)
}

// Lookup returns the definition of p
func (r *PlatformRegistry) Lookup(p models.Platform) (PlatformDefinition, bool) {
	def, ok := r.defs[p.Normalize()]
	return def, ok
}

// Platforms returns the registered platforms in registration order
func (r *PlatformRegistry) Platforms() []models.Platform {
	return append([]models.Platform(nil), r.order...)
}

// Resolve normalizes the selected platform names, drops repeats and rejects unknown platforms
func (r *PlatformRegistry) Resolve(selected []string) ([]models.Platform, error) {
	out := make([]models.Platform, 0, len(selected))
	seen := make(map[models.Platform]bool, len(selected))
	for _, name := range selected {
		def, ok := r.Lookup(models.Platform(name))
		if !ok {
			return nil, NewBusinessErrorf(CodeGenerationConfigInvalid, "%s: %s", ErrUnsupportedPlatform, ErrUnsupportedPlatform.Error(), strings.TrimSpace(name))
		}
		if seen[def.Platform] {
			continue
		}
		seen[def.Platform] = true
		out = append(out, def.Platform)
	}
	return out, nil
}
