package repository

import (
	"github.com/quizbit/server/internal/model"
	"gorm.io/gorm"
)

// TechnologyFilterAll disables technology filtering in FindByUser.
const TechnologyFilterAll = "all"

type ResultRepository interface {
	Create(result *model.Result) error
	// FindByUser returns the user's results, newest first. The technology
	// filter is skipped when empty or TechnologyFilterAll. Ownership scoping
	// happens here, in the query itself, so no caller can widen it.
	FindByUser(userID uint, technology string) ([]model.Result, error)
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) Create(result *model.Result) error {
	return r.db.Create(result).Error
}

func (r *resultRepository) FindByUser(userID uint, technology string) ([]model.Result, error) {
	var results []model.Result
	query := r.db.Where("user_id = ?", userID)
	if technology != "" && technology != TechnologyFilterAll {
		query = query.Where("technology = ?", technology)
	}
	if err := query.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
