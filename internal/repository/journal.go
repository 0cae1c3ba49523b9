package repository

import (
	"context"
	"errors"

	"chronicle/internal/models"

	"gorm.io/gorm"
)

// JournalRepository defines persistence operations for journal entries.
// Pagination and sorting are delegated to the store's query layer; list
// mutations (likes, comments) are read-modify-write through GetByID + Save.
type JournalRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Journal, error)
	List(ctx context.Context, limit, offset int) ([]models.Journal, error)
	ListByUsername(ctx context.Context, username string, limit, offset int) ([]models.Journal, error)
	ListByUsernames(ctx context.Context, usernames []string, limit, offset int) ([]models.Journal, error)
	Search(ctx context.Context, keywords string) ([]models.Journal, error)
	Create(ctx context.Context, journal *models.Journal) error
	Save(ctx context.Context, journal *models.Journal) error
}

type journalRepository struct {
	db *gorm.DB
}

// NewJournalRepository returns a new JournalRepository implementation.
func NewJournalRepository(db *gorm.DB) JournalRepository {
	return &journalRepository{db: db}
}

func (r *journalRepository) GetByID(ctx context.Context, id uint) (*models.Journal, error) {
	var journal models.Journal
	if err := r.db.WithContext(ctx).First(&journal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &journal, nil
}

// List returns journals newest-first by creation time. This is the only
// listing that filters out soft-deleted entries.
func (r *journalRepository) List(ctx context.Context, limit, offset int) ([]models.Journal, error) {
	var journals []models.Journal
	if err := r.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&journals).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return journals, nil
}

func (r *journalRepository) ListByUsername(ctx context.Context, username string, limit, offset int) ([]models.Journal, error) {
	var journals []models.Journal
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&journals).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return journals, nil
}

// ListByUsernames sorts by update time, not creation time: the friends feed
// surfaces entries with recent activity first.
func (r *journalRepository) ListByUsernames(ctx context.Context, usernames []string, limit, offset int) ([]models.Journal, error) {
	if len(usernames) == 0 {
		return []models.Journal{}, nil
	}
	var journals []models.Journal
	if err := r.db.WithContext(ctx).
		Where("username IN ?", usernames).
		Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&journals).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return journals, nil
}

// Search matches the keyword as a substring of title or content. No ranking
// and no pagination; results come back newest-first like the other listings.
func (r *journalRepository) Search(ctx context.Context, keywords string) ([]models.Journal, error) {
	var journals []models.Journal
	like := "%" + keywords + "%"
	if err := r.db.WithContext(ctx).
		Where("title LIKE ? OR content LIKE ?", like, like).
		Order("created_at DESC").
		Find(&journals).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return journals, nil
}

func (r *journalRepository) Create(ctx context.Context, journal *models.Journal) error {
	if err := r.db.WithContext(ctx).Create(journal).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *journalRepository) Save(ctx context.Context, journal *models.Journal) error {
	if err := r.db.WithContext(ctx).Save(journal).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
