package models

import "time"

// Friendship is one direction of a confirmed relationship. Friendship is
// symmetric: whenever an (A, B) row exists, the mirror (B, A) row exists too.
// Both rows are written and removed inside a single transaction.
type Friendship struct {
	UserID    uint `gorm:"primaryKey;index"`
	FriendID  uint `gorm:"primaryKey;index"`
	CreatedAt time.Time

	User   User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Friend User `gorm:"foreignKey:FriendID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
