package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chronicle/internal/models"
)

func relationshipFixtures(t *testing.T) (*MockRelationshipRepository, *MockUserRepository, *RelationshipService) {
	t.Helper()
	relRepo := new(MockRelationshipRepository)
	userRepo := new(MockUserRepository)
	return relRepo, userRepo, NewRelationshipService(relRepo, userRepo)
}

func TestRelationshipGet_NotFound(t *testing.T) {
	relRepo, _, svc := relationshipFixtures(t)
	relRepo.On("GetByUsername", mock.Anything, "ghost").Return(nil, nil)

	_, err := svc.Get(context.Background(), "ghost")
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestFollow_AppendsSnapshot(t *testing.T) {
	relRepo, userRepo, svc := relationshipFixtures(t)

	rel := models.NewUserRelationship("alice")
	relRepo.On("GetByUsername", mock.Anything, "alice").Return(rel, nil)
	userRepo.On("GetByUsername", mock.Anything, "bob").Return(&models.User{
		Username:    "bob",
		DisplayName: "Bobby",
		Avatar:      "bob.png",
	}, nil)
	relRepo.On("Save", mock.Anything, rel).Return(nil)

	require.NoError(t, svc.Follow(context.Background(), "alice", "bob"))

	require.Len(t, rel.Following, 1)
	assert.Equal(t, models.SimpleUser{Username: "bob", DisplayName: "Bobby", Avatar: "bob.png"}, rel.Following[0])
	// following does not touch bob's record
	relRepo.AssertNumberOfCalls(t, "GetByUsername", 1)
	relRepo.AssertExpectations(t)
}

func TestFollow_DuplicateAppends(t *testing.T) {
	relRepo, userRepo, svc := relationshipFixtures(t)

	rel := models.NewUserRelationship("alice")
	relRepo.On("GetByUsername", mock.Anything, "alice").Return(rel, nil)
	userRepo.On("GetByUsername", mock.Anything, "bob").Return(&models.User{Username: "bob"}, nil)
	relRepo.On("Save", mock.Anything, rel).Return(nil)

	ctx := context.Background()
	require.NoError(t, svc.Follow(ctx, "alice", "bob"))
	require.NoError(t, svc.Follow(ctx, "alice", "bob"))

	assert.Len(t, rel.Following, 2)
}

func TestFollow_TargetMissing(t *testing.T) {
	relRepo, userRepo, svc := relationshipFixtures(t)

	rel := models.NewUserRelationship("alice")
	relRepo.On("GetByUsername", mock.Anything, "alice").Return(rel, nil)
	userRepo.On("GetByUsername", mock.Anything, "ghost").Return(nil, nil)

	err := svc.Follow(context.Background(), "alice", "ghost")
	require.Error(t, err)
	assert.Empty(t, rel.Following)
	relRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUnfollow_RemovesAllMatches(t *testing.T) {
	relRepo, _, svc := relationshipFixtures(t)

	rel := models.NewUserRelationship("alice")
	rel.Following = models.SimpleUserList{
		{Username: "bob"},
		{Username: "carol"},
		{Username: "bob"},
	}
	relRepo.On("GetByUsername", mock.Anything, "alice").Return(rel, nil)
	relRepo.On("Save", mock.Anything, rel).Return(nil)

	require.NoError(t, svc.Unfollow(context.Background(), "alice", "bob"))

	require.Len(t, rel.Following, 1)
	assert.Equal(t, "carol", rel.Following[0].Username)
}

func TestUnfollow_AbsentTargetStillSaves(t *testing.T) {
	relRepo, _, svc := relationshipFixtures(t)

	rel := models.NewUserRelationship("alice")
	relRepo.On("GetByUsername", mock.Anything, "alice").Return(rel, nil)
	relRepo.On("Save", mock.Anything, rel).Return(nil)

	require.NoError(t, svc.Unfollow(context.Background(), "alice", "ghost"))
	relRepo.AssertExpectations(t)
}

func TestAddFriend_SeparateFromFollowing(t *testing.T) {
	relRepo, userRepo, svc := relationshipFixtures(t)

	rel := models.NewUserRelationship("alice")
	relRepo.On("GetByUsername", mock.Anything, "alice").Return(rel, nil)
	userRepo.On("GetByUsername", mock.Anything, "bob").Return(&models.User{Username: "bob"}, nil)
	relRepo.On("Save", mock.Anything, rel).Return(nil)

	require.NoError(t, svc.AddFriend(context.Background(), "alice", "bob"))

	assert.Len(t, rel.Friends, 1)
	assert.Empty(t, rel.Following)
	assert.Empty(t, rel.Followers)
}

func TestRemoveFollower(t *testing.T) {
	relRepo, _, svc := relationshipFixtures(t)

	rel := models.NewUserRelationship("alice")
	rel.Followers = models.SimpleUserList{{Username: "bob"}}
	relRepo.On("GetByUsername", mock.Anything, "alice").Return(rel, nil)
	relRepo.On("Save", mock.Anything, rel).Return(nil)

	require.NoError(t, svc.RemoveFollower(context.Background(), "alice", "bob"))
	assert.Empty(t, rel.Followers)
}
