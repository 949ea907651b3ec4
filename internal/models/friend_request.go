package models

import "time"

// FriendRequest is a directed, pending request edge from one user to another.
// The composite primary key guarantees at most one outstanding request per
// ordered (sender, receiver) pair. A request from A to B says nothing about
// the B to A direction.
type FriendRequest struct {
	SenderID   uint `gorm:"primaryKey;index"`
	ReceiverID uint `gorm:"primaryKey;index"`
	CreatedAt  time.Time

	Sender   User `gorm:"foreignKey:SenderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Receiver User `gorm:"foreignKey:ReceiverID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
