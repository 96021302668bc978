package repository

import (
	"context"
	"fmt"

	"github.com/amirphl/campaign-forge/models"
	"gorm.io/gorm"
)

// DataRowRepositoryImpl implements DataRowRepository interface
type DataRowRepositoryImpl struct {
	*BaseRepository[models.DataRow, models.DataRowFilter]
}

// NewDataRowRepository creates a new data row repository
func NewDataRowRepository(db *gorm.DB) DataRowRepository {
	return &DataRowRepositoryImpl{
		BaseRepository: NewBaseRepository[models.DataRow, models.DataRowFilter](db),
	}
}

// ListByDataSource retrieves the rows of a data source in row order
func (r *DataRowRepositoryImpl) ListByDataSource(ctx context.Context, dataSourceID string, limit int) ([]*models.DataRow, error) {
	db := r.getDB(ctx)

	query := db.Where("data_source_id = ?", dataSourceID).
		Order("row_index ASC").
		Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []*models.DataRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list data rows by data source: %w", err)
	}

	return rows, nil
}

// ByFilter retrieves data rows based on filter criteria
func (r *DataRowRepositoryImpl) ByFilter(ctx context.Context, filter models.DataRowFilter, orderBy string, limit, offset int) ([]*models.DataRow, error) {
	db := r.getDB(ctx)

	query := r.applyFilter(db, filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.DataRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// Count returns the number of data rows matching the filter
func (r *DataRowRepositoryImpl) Count(ctx context.Context, filter models.DataRowFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	err := r.applyFilter(db.Model(&models.DataRow{}), filter).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any data row matching the filter exists
func (r *DataRowRepositoryImpl) Exists(ctx context.Context, filter models.DataRowFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *DataRowRepositoryImpl) applyFilter(db *gorm.DB, filter models.DataRowFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.DataSourceID != nil {
		db = db.Where("data_source_id = ?", *filter.DataSourceID)
	}

	return db
}
