package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"socialite/backend/internal/avatar"
	"socialite/backend/internal/mailer"
	"socialite/backend/internal/models"
	"socialite/backend/internal/relationship"
	"socialite/backend/internal/token"
	"socialite/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// region --- DTOs ---

// RegisterInput defines the structure for user registration.
type RegisterInput struct {
	FirstName string `json:"first_name" binding:"required,max=30" example:"Alice"`
	LastName  string `json:"last_name" binding:"max=30" example:"Miller"`
	Username  string `json:"username" binding:"required,max=30" example:"alice"`
	Email     string `json:"email" binding:"required,email,max=40" example:"alice@example.com"`
	Password  string `json:"password" binding:"required,min=8" example:"password123"`
	AboutMe   string `json:"about_me" example:"Coffee and bouldering."`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email" example:"alice@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// UpdateProfileInput defines the structure for profile edits.
type UpdateProfileInput struct {
	Username string `json:"username" binding:"required,max=30" example:"alice"`
	Email    string `json:"email" binding:"required,email,max=40" example:"alice@example.com"`
	AboutMe  string `json:"about_me" example:"Coffee and bouldering."`
}

// PublicUserResponse defines the structure for a user's public profile.
type PublicUserResponse struct {
	ID         uint      `json:"id" example:"1"`
	Username   string    `json:"username" example:"alice"`
	FirstName  string    `json:"first_name" example:"Alice"`
	LastName   string    `json:"last_name" example:"Miller"`
	AboutMe    string    `json:"about_me"`
	ProfilePic string    `json:"profile_pic" example:"default.jpg"`
	LastSeen   time.Time `json:"last_seen"`

	// Relation between the viewer and this user, viewer's perspective.
	IsFriend    bool `json:"is_friend"`
	RequestSent bool `json:"request_sent"`
	RequestFrom bool `json:"request_from"`
}

// PrivateUserResponse defines the structure for the authenticated user's own profile.
type PrivateUserResponse struct {
	ID         uint      `json:"id" example:"1"`
	Username   string    `json:"username" example:"alice"`
	FirstName  string    `json:"first_name" example:"Alice"`
	LastName   string    `json:"last_name" example:"Miller"`
	Email      string    `json:"email" example:"alice@example.com"`
	AboutMe    string    `json:"about_me"`
	ProfilePic string    `json:"profile_pic" example:"default.jpg"`
	LastSeen   time.Time `json:"last_seen"`
	IsVerified bool      `json:"is_verified"`
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// endregion

// UserHandler serves registration, authentication, verification and profile
// endpoints.
type UserHandler struct {
	db        *gorm.DB
	relations *relationship.Service
	tokens    *token.Issuer
	mail      mailer.Mailer
	avatars   *avatar.Store
	jwtSecret string
}

// NewUserHandler wires a UserHandler with its collaborators.
func NewUserHandler(db *gorm.DB, relations *relationship.Service, tokens *token.Issuer, mail mailer.Mailer, avatars *avatar.Store, jwtSecret string) *UserHandler {
	return &UserHandler{
		db:        db,
		relations: relations,
		tokens:    tokens,
		mail:      mail,
		avatars:   avatars,
		jwtSecret: jwtSecret,
	}
}

// region --- Auth Handlers ---

// Register godoc
// @Summary      Register a new user
// @Description  Creates an unverified user, emails a verification link and returns a session token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RegisterInput true "Registration Info"
// @Success      201  {object}  map[string]string "{"token": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existingUser models.User
	if err := h.db.Where("username = ? OR email = ?", input.Username, input.Email).First(&existingUser).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username or email already exists"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		AboutMe:      input.AboutMe,
		ProfilePic:   models.DefaultProfilePic,
		LastSeen:     time.Now().UTC(),
	}
	if err := h.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	if err := h.sendVerification(user); err != nil {
		// The account exists either way; the user can request a resend.
		log.Printf("Failed to send verification email to %s: %v", user.Email, err)
	}

	sessionToken, err := jwt.GenerateToken(user.ID, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": sessionToken})
}

// Login godoc
// @Summary      Log in a user
// @Description  Authenticates a user with email and password, and returns a new session token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  map[string]string "{"token": "..."}"
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Failure      500  {object}  ErrorResponse "Internal server error"
// @Router       /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	h.db.Model(&user).UpdateColumn("last_seen", time.Now().UTC())

	sessionToken, err := jwt.GenerateToken(user.ID, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": sessionToken})
}

// endregion

// region --- Verification Handlers ---

// VerifyUser godoc
// @Summary      Verify a user's email
// @Description  Consumes a one-time verification token and flips the account to verified.
// @Tags         verification
// @Produce      json
// @Security     BearerAuth
// @Param        username  path  string  true  "Username from the emailed link"
// @Param        token     path  string  true  "Verification token"
// @Success      200  {object}  map[string]string "{"message": "User verified"}"
// @Failure      400  {object}  ErrorResponse "Invalid token"
// @Router       /users/{username}/verify/{token} [get]
func (h *UserHandler) VerifyUser(c *gin.Context) {
	userID, err := h.tokens.Verify(c.Param("token"))
	if err != nil {
		// Malformed, expired and tampered tokens all land here.
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token"})
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token"})
		return
	}

	if user.IsVerified {
		c.JSON(http.StatusOK, gin.H{"message": "User already verified"})
		return
	}

	if err := h.db.Model(&user).Update("is_verified", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User verified"})
}

// ResendVerification godoc
// @Summary      Re-send the verification email
// @Tags         verification
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string "{"message": "Verification email sent"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /users/me/verification/resend [post]
func (h *UserHandler) ResendVerification(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var user models.User
	if err := h.db.First(&user, viewerID.(uint)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.IsVerified {
		c.JSON(http.StatusOK, gin.H{"message": "User already verified"})
		return
	}

	if err := h.sendVerification(user); err != nil {
		log.Printf("Failed to send verification email to %s: %v", user.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification email sent"})
}

func (h *UserHandler) sendVerification(user models.User) error {
	verificationToken, err := h.tokens.Generate(user.ID)
	if err != nil {
		return err
	}
	return h.mail.SendVerification(user, verificationToken)
}

// endregion

// region --- Profile Handlers ---

// SearchUsers godoc
// @Summary      Search for users
// @Description  Searches the user directory by username with pagination.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        q     query     string  false  "Search query for username"
// @Param        page  query     int     false  "Page number" default(1)
// @Param        limit query     int     false  "Items per page" default(10)
// @Success      200   {object}  PaginatedResponse[PublicUserResponse]
// @Failure      401   {object}  ErrorResponse
// @Router       /users [get]
func (h *UserHandler) SearchUsers(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	searchQuery := c.Query("q")

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100 // Max limit
	}

	query := h.db.Model(&models.User{}).Where("id != ?", viewerID)
	if searchQuery != "" {
		query = query.Where("lower(username) LIKE lower(?)", "%"+searchQuery+"%")
	}

	users, err := Paginate[models.User](query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	userResponses := make([]PublicUserResponse, 0, len(users.Data))
	for _, user := range users.Data {
		res, err := h.buildPublicUserResponse(user, viewerID.(uint))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
			return
		}
		userResponses = append(userResponses, res)
	}

	c.JSON(http.StatusOK, PaginatedResponse[PublicUserResponse]{
		Data: userResponses,
		Meta: users.Meta,
	})
}

// GetProfile godoc
// @Summary      Get a user's public profile
// @Description  Retrieves the public profile for a user by username, including the relation to the viewer.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path  string  true  "Username"
// @Success      200  {object}  PublicUserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{username} [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	username := c.Param("username")

	var user models.User
	if err := h.db.Where("username = ?", username).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No user found with username " + username})
		return
	}

	if user.ID == viewerID.(uint) {
		c.JSON(http.StatusOK, buildPrivateUserResponse(user))
		return
	}

	response, err := h.buildPublicUserResponse(user, viewerID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetMe godoc
// @Summary      Get current user's info
// @Description  Retrieves the private profile for the currently authenticated user.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  PrivateUserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var user models.User
	if err := h.db.First(&user, viewerID.(uint)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, buildPrivateUserResponse(user))
}

// UpdateMe godoc
// @Summary      Update current user's profile
// @Description  Updates the username, email and bio of the authenticated user.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body UpdateProfileInput true "Profile fields"
// @Success      200  {object}  PrivateUserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /users/me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := h.db.First(&user, viewerID.(uint)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var conflicting models.User
	err := h.db.Where("(username = ? OR email = ?) AND id != ?", input.Username, input.Email, user.ID).
		First(&conflicting).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusConflict, gin.H{"error": "Username or email already exists"})
		return
	}

	user.Username = input.Username
	user.Email = input.Email
	user.AboutMe = input.AboutMe
	if err := h.db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, buildPrivateUserResponse(user))
}

// UploadAvatar godoc
// @Summary      Upload a profile picture
// @Description  Stores the uploaded image and replaces the previous profile picture reference.
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        avatar  formData  file  true  "Image file"
// @Success      200  {object}  map[string]string "{"profile_pic": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /users/me/avatar [post]
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var user models.User
	if err := h.db.First(&user, viewerID.(uint)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	fh, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "An 'avatar' file field is required"})
		return
	}

	name, err := h.avatars.Save(user.Username, fh)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store profile picture"})
		return
	}

	oldPic := user.ProfilePic
	if err := h.db.Model(&user).Update("profile_pic", name).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile picture"})
		return
	}

	if err := h.avatars.Remove(user.Username, oldPic); err != nil {
		log.Printf("Failed to remove old profile picture %s for %s: %v", oldPic, user.Username, err)
	}

	c.JSON(http.StatusOK, gin.H{"profile_pic": name})
}

// endregion

// region --- Helpers ---

func (h *UserHandler) buildPublicUserResponse(user models.User, viewerID uint) (PublicUserResponse, error) {
	isFriend, err := h.relations.IsFriendsWith(viewerID, user.ID)
	if err != nil {
		return PublicUserResponse{}, err
	}
	requestSent, err := h.relations.HasRequested(viewerID, user.ID)
	if err != nil {
		return PublicUserResponse{}, err
	}
	requestFrom, err := h.relations.HasIncomingRequest(viewerID, user.ID)
	if err != nil {
		return PublicUserResponse{}, err
	}

	return PublicUserResponse{
		ID:          user.ID,
		Username:    user.Username,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		AboutMe:     user.AboutMe,
		ProfilePic:  user.ProfilePic,
		LastSeen:    user.LastSeen,
		IsFriend:    isFriend,
		RequestSent: requestSent,
		RequestFrom: requestFrom,
	}, nil
}

func buildPrivateUserResponse(user models.User) PrivateUserResponse {
	return PrivateUserResponse{
		ID:         user.ID,
		Username:   user.Username,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Email:      user.Email,
		AboutMe:    user.AboutMe,
		ProfilePic: user.ProfilePic,
		LastSeen:   user.LastSeen,
		IsVerified: user.IsVerified,
	}
}

// endregion
