package service

import (
	"context"
	"strings"

	"chronicle/internal/models"
	"chronicle/internal/repository"
)

// JournalService owns journal entries: listings, search, the like list and
// the embedded comment thread. Likes and comments are read-modify-write
// mutations of the whole record; under concurrent writers the last write
// wins at record granularity.
type JournalService struct {
	journalRepo repository.JournalRepository
	relRepo     repository.RelationshipRepository
}

// CreateJournalInput carries the fields a new journal is created from. The
// author reference is a denormalized username/avatar pair.
type CreateJournalInput struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Username   string `json:"username"`
	UserAvatar string `json:"user_avatar"`
}

// UpdateJournalInput carries the editable journal fields; empty fields are
// left unchanged.
type UpdateJournalInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NewJournalService returns a new JournalService.
func NewJournalService(journalRepo repository.JournalRepository, relRepo repository.RelationshipRepository) *JournalService {
	return &JournalService{journalRepo: journalRepo, relRepo: relRepo}
}

// List returns journals newest-first by creation time, excluding
// soft-deleted entries.
func (s *JournalService) List(ctx context.Context, limit, offset int) ([]models.Journal, error) {
	return s.journalRepo.List(ctx, limit, offset)
}

// ListByAuthor returns a user's journals newest-first by creation time.
// Soft-deleted entries are not filtered on this path.
func (s *JournalService) ListByAuthor(ctx context.Context, username string, limit, offset int) ([]models.Journal, error) {
	return s.journalRepo.ListByUsername(ctx, username, limit, offset)
}

// FriendsFeed reads the relationship record for username, extracts the
// friends' usernames and lists their journals sorted by update time. The two
// reads are not linked transactionally; the friend list may change between
// them.
func (s *JournalService) FriendsFeed(ctx context.Context, username string, limit, offset int) ([]models.Journal, error) {
	rel, err := s.relRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if rel == nil {
		return nil, models.NewNotFoundError("Relationship", username)
	}

	usernames := make([]string, 0, len(rel.Friends))
	for _, friend := range rel.Friends {
		usernames = append(usernames, friend.Username)
	}
	return s.journalRepo.ListByUsernames(ctx, usernames, limit, offset)
}

// Search returns journals whose title or content contains the keyword.
// The result set is not paginated.
func (s *JournalService) Search(ctx context.Context, keywords string) ([]models.Journal, error) {
	return s.journalRepo.Search(ctx, keywords)
}

// Create validates and persists a new journal with empty likes and comments.
func (s *JournalService) Create(ctx context.Context, in CreateJournalInput) (*models.Journal, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Title and content are required")
	}

	journal := &models.Journal{
		Title:      in.Title,
		Content:    in.Content,
		Username:   in.Username,
		UserAvatar: in.UserAvatar,
		Likes:      models.StringList{},
		Comments:   models.CommentList{},
		IsDeleted:  false,
	}
	if err := s.journalRepo.Create(ctx, journal); err != nil {
		return nil, err
	}
	return journal, nil
}

// getForUpdate loads a journal for a read-modify-write cycle. Soft-deleted
// journals are still returned: no mutation checks the flag.
func (s *JournalService) getForUpdate(ctx context.Context, id uint) (*models.Journal, error) {
	journal, err := s.journalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if journal == nil {
		return nil, models.NewNotFoundError("Journal", id)
	}
	return journal, nil
}

// Update applies the non-empty fields and bumps the update timestamp.
func (s *JournalService) Update(ctx context.Context, id uint, in UpdateJournalInput) (*models.Journal, error) {
	journal, err := s.getForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		journal.Title = in.Title
	}
	if in.Content != "" {
		journal.Content = in.Content
	}

	if err := s.journalRepo.Save(ctx, journal); err != nil {
		return nil, err
	}
	return journal, nil
}

// SoftDelete flips the deletion flag without removing the record. It returns
// false when the journal does not exist. A soft-deleted journal can still be
// liked, commented on and edited.
func (s *JournalService) SoftDelete(ctx context.Context, id uint) (bool, error) {
	journal, err := s.journalRepo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if journal == nil {
		return false, nil
	}

	journal.IsDeleted = true
	if err := s.journalRepo.Save(ctx, journal); err != nil {
		return false, err
	}
	return true, nil
}

// Like appends username to the likes list. The append is unconditional:
// liking twice produces two entries.
func (s *JournalService) Like(ctx context.Context, id uint, username string) (*models.Journal, error) {
	journal, err := s.getForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}

	journal.Likes = append(journal.Likes, username)
	if err := s.journalRepo.Save(ctx, journal); err != nil {
		return nil, err
	}
	return journal, nil
}

// Unlike removes the first occurrence of username from the likes list.
// Removing an absent username is a no-op, not an error.
func (s *JournalService) Unlike(ctx context.Context, id uint, username string) (*models.Journal, error) {
	journal, err := s.getForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}

	journal.Likes, _ = journal.Likes.RemoveFirst(username)
	if err := s.journalRepo.Save(ctx, journal); err != nil {
		return nil, err
	}
	return journal, nil
}

// AddComment constructs a comment with a fresh identifier, appends it to the
// journal's thread and returns only the new comment.
func (s *JournalService) AddComment(ctx context.Context, id uint, user models.SimpleUser, content string) (*models.Comment, error) {
	journal, err := s.getForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}

	comment := models.NewComment(user, content)
	journal.Comments = append(journal.Comments, comment)
	if err := s.journalRepo.Save(ctx, journal); err != nil {
		return nil, err
	}
	return &comment, nil
}
