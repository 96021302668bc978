package repository

import (
	"github.com/amirphl/campaign-forge/models"
	"gorm.io/gorm"
)

// AdRepositoryImpl implements AdRepository interface
type AdRepositoryImpl struct {
	*BaseRepository[models.Ad, struct{}]
}

// NewAdRepository creates a new ad repository
func NewAdRepository(db *gorm.DB) AdRepository {
	return &AdRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Ad, struct{}](db),
	}
}
