package repository

import (
	"github.com/amirphl/campaign-forge/models"
	"gorm.io/gorm"
)

// AdGroupRepositoryImpl implements AdGroupRepository interface
type AdGroupRepositoryImpl struct {
	*BaseRepository[models.AdGroup, struct{}]
}

// NewAdGroupRepository creates a new ad group repository
func NewAdGroupRepository(db *gorm.DB) AdGroupRepository {
	return &AdGroupRepositoryImpl{
		BaseRepository: NewBaseRepository[models.AdGroup, struct{}](db),
	}
}
