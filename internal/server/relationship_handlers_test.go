package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chronicle/internal/models"
)

func getRelationship(t *testing.T, s *Server, username string) models.UserRelationship {
	t.Helper()
	resp := doJSON(t, s, http.MethodGet, "/api/relationship/"+username, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rel models.UserRelationship
	decodeBody(t, resp, &rel)
	return rel
}

func mutateRelationship(t *testing.T, s *Server, method, list, username, target string) *http.Response {
	t.Helper()
	return doJSON(t, s, method, "/api/relationship/"+list+"?username="+username+"&targetUsername="+target, nil)
}

func TestFollowDoesNotMirror(t *testing.T) {
	s := setupTestServer(t)
	registerUser(t, s, "alice")
	registerUser(t, s, "bob")

	resp := mutateRelationship(t, s, http.MethodPut, "following", "alice", "bob")
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	alice := getRelationship(t, s, "alice")
	require.Len(t, alice.Following, 1)
	assert.Equal(t, "bob", alice.Following[0].Username)

	// bob's followers list is NOT updated automatically
	bob := getRelationship(t, s, "bob")
	assert.Empty(t, bob.Followers)
}

func TestFollowTwiceThenUnfollow(t *testing.T) {
	s := setupTestServer(t)
	registerUser(t, s, "alice")
	registerUser(t, s, "bob")

	for i := 0; i < 2; i++ {
		resp := mutateRelationship(t, s, http.MethodPut, "following", "alice", "bob")
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusAccepted, resp.StatusCode)
	}

	alice := getRelationship(t, s, "alice")
	assert.Len(t, alice.Following, 2)

	// unfollow clears every occurrence
	resp := mutateRelationship(t, s, http.MethodDelete, "following", "alice", "bob")
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	alice = getRelationship(t, s, "alice")
	assert.Empty(t, alice.Following)
}

func TestFollowerAndFriendLists(t *testing.T) {
	s := setupTestServer(t)
	registerUser(t, s, "alice")
	registerUser(t, s, "bob")

	for _, list := range []string{"follower", "friend"} {
		resp := mutateRelationship(t, s, http.MethodPut, list, "alice", "bob")
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusAccepted, resp.StatusCode)
	}

	alice := getRelationship(t, s, "alice")
	assert.Len(t, alice.Followers, 1)
	assert.Len(t, alice.Friends, 1)
	assert.Empty(t, alice.Following)

	for _, list := range []string{"follower", "friend"} {
		resp := mutateRelationship(t, s, http.MethodDelete, list, "alice", "bob")
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusAccepted, resp.StatusCode)
	}

	alice = getRelationship(t, s, "alice")
	assert.Empty(t, alice.Followers)
	assert.Empty(t, alice.Friends)
}

func TestGetRelationship_DetailSubList(t *testing.T) {
	s := setupTestServer(t)
	registerUser(t, s, "alice")
	registerUser(t, s, "bob")

	resp := mutateRelationship(t, s, http.MethodPut, "following", "alice", "bob")
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	resp = doJSON(t, s, http.MethodGet, "/api/relationship/alice?detail=following", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var following []models.SimpleUser
	decodeBody(t, resp, &following)
	require.Len(t, following, 1)
	assert.Equal(t, "bob", following[0].Username)

	resp = doJSON(t, s, http.MethodGet, "/api/relationship/bob?detail=followers", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var followers []models.SimpleUser
	decodeBody(t, resp, &followers)
	assert.Empty(t, followers)

	resp = doJSON(t, s, http.MethodGet, "/api/relationship/alice?detail=enemies", nil)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFollow_UnknownActor(t *testing.T) {
	s := setupTestServer(t)
	registerUser(t, s, "bob")

	resp := mutateRelationship(t, s, http.MethodPut, "following", "ghost", "bob")
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFollow_UnknownTarget(t *testing.T) {
	s := setupTestServer(t)
	registerUser(t, s, "alice")

	resp := mutateRelationship(t, s, http.MethodPut, "following", "alice", "ghost")
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// nothing was written
	alice := getRelationship(t, s, "alice")
	assert.Empty(t, alice.Following)
}

func TestFollow_MissingParams(t *testing.T) {
	s := setupTestServer(t)

	resp := doJSON(t, s, http.MethodPut, "/api/relationship/following?username=alice", nil)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetRelationship_NotFound(t *testing.T) {
	s := setupTestServer(t)

	resp := doJSON(t, s, http.MethodGet, "/api/relationship/ghost", nil)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFollowerSnapshotIsStale(t *testing.T) {
	s := setupTestServer(t)
	registerUser(t, s, "alice")
	registerUser(t, s, "bob")

	resp := mutateRelationship(t, s, http.MethodPut, "following", "alice", "bob")
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	// bob renames himself after the snapshot was taken
	resp = doJSON(t, s, http.MethodPut, "/api/user/bob", map[string]string{
		"display_name": "Bobby the Second",
	})
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	alice := getRelationship(t, s, "alice")
	require.Len(t, alice.Following, 1)
	assert.Equal(t, "bob", alice.Following[0].DisplayName)
}
