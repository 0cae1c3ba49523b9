package service

import (
	"context"

	"chronicle/internal/models"
	"chronicle/internal/repository"
)

// RelationshipService owns the per-user social graph record: following,
// followers and friends lists of user snapshots. Following and followers are
// independent directed edge sets; following a user does not touch the
// target's followers list. Callers wanting a bidirectional edge must issue
// both mutations.
type RelationshipService struct {
	relRepo  repository.RelationshipRepository
	userRepo repository.UserRepository
}

// NewRelationshipService returns a new RelationshipService.
func NewRelationshipService(relRepo repository.RelationshipRepository, userRepo repository.UserRepository) *RelationshipService {
	return &RelationshipService{relRepo: relRepo, userRepo: userRepo}
}

// Get returns the relationship record for username.
func (s *RelationshipService) Get(ctx context.Context, username string) (*models.UserRelationship, error) {
	rel, err := s.relRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if rel == nil {
		return nil, models.NewNotFoundError("Relationship", username)
	}
	return rel, nil
}

// snapshotTarget loads the target account and returns its SimpleUser
// projection, taken at mutation time and never updated afterwards.
func (s *RelationshipService) snapshotTarget(ctx context.Context, targetUsername string) (models.SimpleUser, error) {
	target, err := s.userRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		return models.SimpleUser{}, err
	}
	if target == nil {
		return models.SimpleUser{}, models.NewNotFoundError("User", targetUsername)
	}
	return target.Simple(), nil
}

// Follow appends a snapshot of target to username's following list. The
// append is unconditional: following twice produces two entries.
func (s *RelationshipService) Follow(ctx context.Context, username, targetUsername string) error {
	rel, err := s.Get(ctx, username)
	if err != nil {
		return err
	}
	snapshot, err := s.snapshotTarget(ctx, targetUsername)
	if err != nil {
		return err
	}
	rel.Following = append(rel.Following, snapshot)
	return s.relRepo.Save(ctx, rel)
}

// Unfollow removes target from username's following list. Removing an absent
// target is a no-op.
func (s *RelationshipService) Unfollow(ctx context.Context, username, targetUsername string) error {
	rel, err := s.Get(ctx, username)
	if err != nil {
		return err
	}
	rel.Following, _ = rel.Following.RemoveByUsername(targetUsername)
	return s.relRepo.Save(ctx, rel)
}

// AddFollower appends a snapshot of target to username's followers list.
func (s *RelationshipService) AddFollower(ctx context.Context, username, targetUsername string) error {
	rel, err := s.Get(ctx, username)
	if err != nil {
		return err
	}
	snapshot, err := s.snapshotTarget(ctx, targetUsername)
	if err != nil {
		return err
	}
	rel.Followers = append(rel.Followers, snapshot)
	return s.relRepo.Save(ctx, rel)
}

// RemoveFollower removes target from username's followers list.
func (s *RelationshipService) RemoveFollower(ctx context.Context, username, targetUsername string) error {
	rel, err := s.Get(ctx, username)
	if err != nil {
		return err
	}
	rel.Followers, _ = rel.Followers.RemoveByUsername(targetUsername)
	return s.relRepo.Save(ctx, rel)
}

// AddFriend appends a snapshot of target to username's friends list. Friends
// is a separate symmetric-intent list, not derived from mutual-follow state.
func (s *RelationshipService) AddFriend(ctx context.Context, username, targetUsername string) error {
	rel, err := s.Get(ctx, username)
	if err != nil {
		return err
	}
	snapshot, err := s.snapshotTarget(ctx, targetUsername)
	if err != nil {
		return err
	}
	rel.Friends = append(rel.Friends, snapshot)
	return s.relRepo.Save(ctx, rel)
}

// RemoveFriend removes target from username's friends list.
func (s *RelationshipService) RemoveFriend(ctx context.Context, username, targetUsername string) error {
	rel, err := s.Get(ctx, username)
	if err != nil {
		return err
	}
	rel.Friends, _ = rel.Friends.RemoveByUsername(targetUsername)
	return s.relRepo.Save(ctx, rel)
}
