package repository

import (
	"context"
	"errors"

	"chronicle/internal/models"

	"gorm.io/gorm"
)

// RelationshipRepository defines persistence operations for social graph
// records. Every mutation persists the full record; the store guarantees
// per-record write atomicity only.
type RelationshipRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.UserRelationship, error)
	Create(ctx context.Context, rel *models.UserRelationship) error
	Save(ctx context.Context, rel *models.UserRelationship) error
}

type relationshipRepository struct {
	db *gorm.DB
}

// NewRelationshipRepository returns a new RelationshipRepository implementation.
func NewRelationshipRepository(db *gorm.DB) RelationshipRepository {
	return &relationshipRepository{db: db}
}

func (r *relationshipRepository) GetByUsername(ctx context.Context, username string) (*models.UserRelationship, error) {
	var rel models.UserRelationship
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&rel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &rel, nil
}

func (r *relationshipRepository) Create(ctx context.Context, rel *models.UserRelationship) error {
	if err := r.db.WithContext(ctx).Create(rel).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *relationshipRepository) Save(ctx context.Context, rel *models.UserRelationship) error {
	if err := r.db.WithContext(ctx).Save(rel).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
