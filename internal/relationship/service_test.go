package relationship_test

import (
	"testing"

	"socialite/backend/internal/database"
	"socialite/backend/internal/models"
	"socialite/backend/internal/relationship"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*relationship.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return relationship.NewService(db), db
}

func createUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()

	user := models.User{
		FirstName:    "Test",
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		ProfilePic:   models.DefaultProfilePic,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestSendRequestIsDirectional(t *testing.T) {
	svc, db := setupService(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	require.NoError(t, svc.SendRequest(alice.ID, bob.ID))

	sent, err := svc.HasRequested(alice.ID, bob.ID)
	require.NoError(t, err)
	require.True(t, sent)

	reverse, err := svc.HasRequested(bob.ID, alice.ID)
	require.NoError(t, err)
	require.False(t, reverse)

	incoming, err := svc.HasIncomingRequest(bob.ID, alice.ID)
	require.NoError(t, err)
	require.True(t, incoming)
}

func TestSendRequestIsIdempotent(t *testing.T) {
	svc, db := setupService(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	require.NoError(t, svc.SendRequest(alice.ID, bob.ID))
	require.NoError(t, svc.SendRequest(alice.ID, bob.ID))

	var count int64
	require.NoError(t, db.Model(&models.FriendRequest{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestCancelRequestWithoutRequestIsNoop(t *testing.T) {
	svc, db := setupService(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	require.NoError(t, svc.CancelRequest(alice.ID, bob.ID))

	var count int64
	require.NoError(t, db.Model(&models.FriendRequest{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestCancelRequestRemovesEdge(t *testing.T) {
	svc, db := setupService(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	require.NoError(t, svc.SendRequest(alice.ID, bob.ID))
	require.NoError(t, svc.CancelRequest(alice.ID, bob.ID))

	sent, err := svc.HasRequested(alice.ID, bob.ID)
	require.NoError(t, err)
	require.False(t, sent)
}

func TestMakeFriendIsSymmetric(t *testing.T) {
	svc, db := setupService(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	require.NoError(t, svc.MakeFriend(alice.ID, bob.ID))

	forward, err := svc.IsFriendsWith(alice.ID, bob.ID)
	require.NoError(t, err)
	require.True(t, forward)

	backward, err := svc.IsFriendsWith(bob.ID, alice.ID)
	require.NoError(t, err)
	require.True(t, backward)
}

func TestMakeFriendIsIdempotent(t *testing.T) {
	svc, db := setupService(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	require.NoError(t, svc.MakeFriend(alice.ID, bob.ID))
	require.NoError(t, svc.MakeFriend(alice.ID, bob.ID))
	require.NoError(t, svc.MakeFriend(bob.ID, alice.ID))

	var count int64
	require.NoError(t, db.Model(&models.Friendship{}).Count(&count).Error)
	require.Equal(t, int64(2), count)
}

func TestAcceptRequestRequiresPendingEdge(t *testing.T) {
	svc, db := setupService(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	err := svc.AcceptRequest(bob.ID, alice.ID)
	require.ErrorIs(t, err, relationship.ErrNoPendingRequest)

	friends, err := svc.IsFriendsWith(alice.ID, bob.ID)
	require.NoError(t, err)
	require.False(t, friends)
}

func TestAcceptRequestConsumesEdgeAndBefriends(t *testing.T) {
	svc, db := setupService(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	require.NoError(t, svc.SendRequest(alice.ID, bob.ID))
	require.NoError(t, svc.AcceptRequest(bob.ID, alice.ID))

	sent, err := svc.HasRequested(alice.ID, bob.ID)
	require.NoError(t, err)
	require.False(t, sent)

	forward, err := svc.IsFriendsWith(alice.ID, bob.ID)
	require.NoError(t, err)
	require.True(t, forward)

	backward, err := svc.IsFriendsWith(bob.ID, alice.ID)
	require.NoError(t, err)
	require.True(t, backward)
}

func TestRejectRequestDiscardsEdge(t *testing.T) {
	svc, db := setupService(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	require.NoError(t, svc.SendRequest(alice.ID, bob.ID))
	require.NoError(t, svc.RejectRequest(bob.ID, alice.ID))

	sent, err := svc.HasRequested(alice.ID, bob.ID)
	require.NoError(t, err)
	require.False(t, sent)

	friends, err := svc.IsFriendsWith(alice.ID, bob.ID)
	require.NoError(t, err)
	require.False(t, friends)

	err = svc.RejectRequest(bob.ID, alice.ID)
	require.ErrorIs(t, err, relationship.ErrNoPendingRequest)
}

func TestRemoveFriendRemovesBothDirections(t *testing.T) {
	svc, db := setupService(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	require.NoError(t, svc.MakeFriend(alice.ID, bob.ID))
	require.NoError(t, svc.RemoveFriend(alice.ID, bob.ID))

	forward, err := svc.IsFriendsWith(alice.ID, bob.ID)
	require.NoError(t, err)
	require.False(t, forward)

	backward, err := svc.IsFriendsWith(bob.ID, alice.ID)
	require.NoError(t, err)
	require.False(t, backward)

	// Removing again is a no-op.
	require.NoError(t, svc.RemoveFriend(bob.ID, alice.ID))
}

func TestRemoveFriendLeavesOtherFriendshipsAlone(t *testing.T) {
	svc, db := setupService(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	require.NoError(t, svc.MakeFriend(alice.ID, bob.ID))
	require.NoError(t, svc.MakeFriend(alice.ID, carol.ID))

	require.NoError(t, svc.RemoveFriend(alice.ID, bob.ID))

	stillFriends, err := svc.IsFriendsWith(alice.ID, carol.ID)
	require.NoError(t, err)
	require.True(t, stillFriends)
}

func TestPendingSendersAndFriendsLists(t *testing.T) {
	svc, db := setupService(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	require.NoError(t, svc.SendRequest(alice.ID, bob.ID))
	require.NoError(t, svc.SendRequest(carol.ID, bob.ID))

	senders, err := svc.PendingSenders(bob.ID)
	require.NoError(t, err)
	require.Len(t, senders, 2)

	require.NoError(t, svc.AcceptRequest(bob.ID, alice.ID))

	senders, err = svc.PendingSenders(bob.ID)
	require.NoError(t, err)
	require.Len(t, senders, 1)
	require.Equal(t, carol.Username, senders[0].Username)

	friends, err := svc.Friends(bob.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	require.Equal(t, alice.Username, friends[0].Username)

	friends, err = svc.Friends(alice.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	require.Equal(t, bob.Username, friends[0].Username)
}
