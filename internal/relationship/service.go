// Package relationship owns the friend-request and friendship graphs: a
// directed set of pending request edges and an undirected set of friendship
// edges stored as symmetric row pairs. Mutations are idempotent guards --
// repeating an operation that already holds is a silent no-op.
package relationship

import (
	"errors"
	"fmt"

	"socialite/backend/internal/models"

	"gorm.io/gorm"
)

// ErrNoPendingRequest is reported by AcceptRequest and RejectRequest when no
// matching sender->receiver request edge exists. Nothing is mutated.
var ErrNoPendingRequest = errors.New("no pending friend request")

// Service mutates and queries user relations through an injected gorm handle.
type Service struct {
	db *gorm.DB
}

// NewService creates a relationship service on top of db.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// HasRequested reports whether a pending request edge sender->receiver exists.
func (s *Service) HasRequested(senderID, receiverID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.FriendRequest{}).
		Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking request edge: %w", err)
	}
	return count > 0, nil
}

// HasIncomingRequest reports whether other has a pending request to user.
func (s *Service) HasIncomingRequest(userID, otherID uint) (bool, error) {
	return s.HasRequested(otherID, userID)
}

// SendRequest creates the sender->receiver request edge. A duplicate send is
// a no-op. Self-targeting is a caller-enforced invariant; the service does
// not re-check it.
func (s *Service) SendRequest(senderID, receiverID uint) error {
	requested, err := s.HasRequested(senderID, receiverID)
	if err != nil {
		return err
	}
	if requested {
		return nil
	}

	request := models.FriendRequest{SenderID: senderID, ReceiverID: receiverID}
	if err := s.db.Create(&request).Error; err != nil {
		return fmt.Errorf("creating request edge: %w", err)
	}
	return nil
}

// CancelRequest removes the sender->receiver request edge if present.
func (s *Service) CancelRequest(senderID, receiverID uint) error {
	err := s.db.
		Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
		Delete(&models.FriendRequest{}).Error
	if err != nil {
		return fmt.Errorf("deleting request edge: %w", err)
	}
	return nil
}

// IsFriendsWith reports whether a friendship edge between the two users
// exists. Rows are symmetric, so checking one direction suffices.
func (s *Service) IsFriendsWith(userID, otherID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Friendship{}).
		Where("user_id = ? AND friend_id = ?", userID, otherID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking friendship edge: %w", err)
	}
	return count > 0, nil
}

// MakeFriend inserts both directions of the friendship edge in one
// transaction. Already-friends is a no-op. Pending requests between the pair
// are left alone; acceptance is the caller's concern.
func (s *Service) MakeFriend(userID, otherID uint) error {
	friends, err := s.IsFriendsWith(userID, otherID)
	if err != nil {
		return err
	}
	if friends {
		return nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		rows := []models.Friendship{
			{UserID: userID, FriendID: otherID},
			{UserID: otherID, FriendID: userID},
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("creating friendship edges: %w", err)
	}
	return nil
}

// AcceptRequest consumes a pending sender->receiver request edge and replaces
// it with a friendship. Returns ErrNoPendingRequest, mutating nothing, when
// the edge does not exist.
func (s *Service) AcceptRequest(receiverID, senderID uint) error {
	requested, err := s.HasRequested(senderID, receiverID)
	if err != nil {
		return err
	}
	if !requested {
		return ErrNoPendingRequest
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
			Delete(&models.FriendRequest{})
		if result.Error != nil {
			return result.Error
		}

		// Already friends: the request edge is consumed, nothing else to do.
		var count int64
		err := tx.Model(&models.Friendship{}).
			Where("user_id = ? AND friend_id = ?", receiverID, senderID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		rows := []models.Friendship{
			{UserID: receiverID, FriendID: senderID},
			{UserID: senderID, FriendID: receiverID},
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("accepting request: %w", err)
	}
	return nil
}

// RejectRequest discards a pending sender->receiver request edge without
// creating a friendship. Returns ErrNoPendingRequest when there is nothing
// to reject.
func (s *Service) RejectRequest(receiverID, senderID uint) error {
	result := s.db.
		Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
		Delete(&models.FriendRequest{})
	if result.Error != nil {
		return fmt.Errorf("rejecting request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNoPendingRequest
	}
	return nil
}

// RemoveFriend deletes both directions of the friendship edge in one
// transaction. Not-friends is a no-op.
func (s *Service) RemoveFriend(userID, otherID uint) error {
	friends, err := s.IsFriendsWith(userID, otherID)
	if err != nil {
		return err
	}
	if !friends {
		return nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.
			Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
				userID, otherID, otherID, userID).
			Delete(&models.Friendship{}).Error
	})
	if err != nil {
		return fmt.Errorf("deleting friendship edges: %w", err)
	}
	return nil
}

// PendingSenders returns the users with an outstanding request to userID,
// oldest first.
func (s *Service) PendingSenders(userID uint) ([]models.User, error) {
	var senders []models.User
	err := s.db.Model(&models.User{}).
		Joins("JOIN friend_requests ON friend_requests.sender_id = users.id").
		Where("friend_requests.receiver_id = ?", userID).
		Order("friend_requests.created_at").
		Find(&senders).Error
	if err != nil {
		return nil, fmt.Errorf("listing pending senders: %w", err)
	}
	return senders, nil
}

// Friends returns userID's confirmed friends.
func (s *Service) Friends(userID uint) ([]models.User, error) {
	var friends []models.User
	err := s.db.Model(&models.User{}).
		Joins("JOIN friendships ON friendships.friend_id = users.id").
		Where("friendships.user_id = ?", userID).
		Order("friendships.created_at").
		Find(&friends).Error
	if err != nil {
		return nil, fmt.Errorf("listing friends: %w", err)
	}
	return friends, nil
}
