package handler

import (
	"errors"
	"net/http"

	"socialite/backend/internal/models"
	"socialite/backend/internal/relationship"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// FriendHandler serves the friend-request and friendship endpoints.
type FriendHandler struct {
	db        *gorm.DB
	relations *relationship.Service
}

// NewFriendHandler wires a FriendHandler with its collaborators.
func NewFriendHandler(db *gorm.DB, relations *relationship.Service) *FriendHandler {
	return &FriendHandler{db: db, relations: relations}
}

// loadTarget resolves the :username path parameter to a user and enforces
// the no-self-targeting invariant for relationship actions. It writes the
// error response itself when resolution fails.
func (h *FriendHandler) loadTarget(c *gin.Context) (models.User, bool) {
	viewerID, _ := c.Get("userID")
	username := c.Param("username")

	var target models.User
	if err := h.db.Where("username = ?", username).First(&target).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No user found with username " + username})
		return models.User{}, false
	}

	if target.ID == viewerID.(uint) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot perform this action on yourself"})
		return models.User{}, false
	}

	return target, true
}

// SendRequest godoc
// @Summary      Send friend request
// @Description  Sends a friend request to another user. Repeats are silent no-ops.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        username  path  string  true  "Target username"
// @Success      200  {object}  map[string]string "{"message": "Request sent"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /users/{username}/request [post]
func (h *FriendHandler) SendRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	target, ok := h.loadTarget(c)
	if !ok {
		return
	}

	if err := h.relations.SendRequest(viewerID.(uint), target.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request sent"})
}

// CancelRequest godoc
// @Summary      Cancel a sent friend request
// @Description  Removes the pending request to the target user. A missing request is a no-op.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        username  path  string  true  "Target username"
// @Success      200  {object}  map[string]string "{"message": "Request cancelled"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /users/{username}/cancel [post]
func (h *FriendHandler) CancelRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	target, ok := h.loadTarget(c)
	if !ok {
		return
	}

	if err := h.relations.CancelRequest(viewerID.(uint), target.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request cancelled"})
}

// AcceptRequest godoc
// @Summary      Accept friend request
// @Description  Accepts a pending request from the named sender, removing the request and making the pair friends.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        username  path  string  true  "Sender username"
// @Success      200  {object}  map[string]string "{"message": "Request accepted"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "No pending request"
// @Failure      500  {object}  ErrorResponse
// @Router       /users/{username}/accept [post]
func (h *FriendHandler) AcceptRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	sender, ok := h.loadTarget(c)
	if !ok {
		return
	}

	err := h.relations.AcceptRequest(viewerID.(uint), sender.ID)
	if errors.Is(err, relationship.ErrNoPendingRequest) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No pending request from " + sender.Username})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "You are now friends with " + sender.FirstName + " " + sender.LastName})
}

// RejectRequest godoc
// @Summary      Reject friend request
// @Description  Discards a pending request from the named sender without creating a friendship.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        username  path  string  true  "Sender username"
// @Success      200  {object}  map[string]string "{"message": "Request rejected"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "No pending request"
// @Failure      500  {object}  ErrorResponse
// @Router       /users/{username}/reject [post]
func (h *FriendHandler) RejectRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	sender, ok := h.loadTarget(c)
	if !ok {
		return
	}

	err := h.relations.RejectRequest(viewerID.(uint), sender.ID)
	if errors.Is(err, relationship.ErrNoPendingRequest) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No pending request from " + sender.Username})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request rejected"})
}

// RemoveFriend godoc
// @Summary      Remove a friend
// @Description  Dissolves the friendship with the target user. Not being friends is a no-op.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        username  path  string  true  "Target username"
// @Success      200  {object}  map[string]string "{"message": "Friend removed"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /users/{username}/remove [post]
func (h *FriendHandler) RemoveFriend(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	target, ok := h.loadTarget(c)
	if !ok {
		return
	}

	if err := h.relations.RemoveFriend(viewerID.(uint), target.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove friend"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend removed"})
}

// GetPendingRequests godoc
// @Summary      List incoming friend requests
// @Description  Returns the users with an outstanding request to the authenticated user.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   PublicUserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /users/me/requests [get]
func (h *FriendHandler) GetPendingRequests(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	senders, err := h.relations.PendingSenders(viewerID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending requests"})
		return
	}

	c.JSON(http.StatusOK, h.buildUserList(senders, viewerID.(uint)))
}

// GetFriends godoc
// @Summary      List a user's friends
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        username  path  string  true  "Username"
// @Success      200  {array}   PublicUserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /users/{username}/friends [get]
func (h *FriendHandler) GetFriends(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	username := c.Param("username")

	var user models.User
	if err := h.db.Where("username = ?", username).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No user found with username " + username})
		return
	}

	friends, err := h.relations.Friends(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch friends"})
		return
	}

	c.JSON(http.StatusOK, h.buildUserList(friends, viewerID.(uint)))
}

func (h *FriendHandler) buildUserList(users []models.User, viewerID uint) []PublicUserResponse {
	responses := make([]PublicUserResponse, 0, len(users))
	for _, user := range users {
		res := PublicUserResponse{
			ID:         user.ID,
			Username:   user.Username,
			FirstName:  user.FirstName,
			LastName:   user.LastName,
			AboutMe:    user.AboutMe,
			ProfilePic: user.ProfilePic,
			LastSeen:   user.LastSeen,
		}
		if user.ID != viewerID {
			// Relation flags are best effort in list views.
			res.IsFriend, _ = h.relations.IsFriendsWith(viewerID, user.ID)
			res.RequestSent, _ = h.relations.HasRequested(viewerID, user.ID)
			res.RequestFrom, _ = h.relations.HasIncomingRequest(viewerID, user.ID)
		}
		responses = append(responses, res)
	}
	return responses
}
