package repository

import (
	"github.com/amirphl/campaign-forge/models"
	"gorm.io/gorm"
)

// KeywordRepositoryImpl implements KeywordRepository interface
type KeywordRepositoryImpl struct {
	*BaseRepository[models.Keyword, struct{}]
}

// NewKeywordRepository creates a new keyword repository
func NewKeywordRepository(db *gorm.DB) KeywordRepository {
	return &KeywordRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Keyword, struct{}](db),
	}
}
