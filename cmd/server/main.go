package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"socialite/backend/internal/auth"
	"socialite/backend/internal/avatar"
	"socialite/backend/internal/config"
	"socialite/backend/internal/database"
	"socialite/backend/internal/handler"
	"socialite/backend/internal/mailer"
	"socialite/backend/internal/relationship"
	"socialite/backend/internal/token"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "socialite/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Socialite API
// @version         1.0
// @description     Registration, email verification, profiles and the friend graph.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseDialect, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Database connection established.")

	relations := relationship.NewService(db)
	tokens := token.NewIssuer(cfg.TokenSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	mail := &mailer.SMTPMailer{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
		BaseURL:  cfg.BaseURL,
	}
	avatars := avatar.NewStore(cfg.AvatarDir)

	userHandler := handler.NewUserHandler(db, relations, tokens, mail, avatars, cfg.JWTSecret)
	friendHandler := handler.NewFriendHandler(db, relations)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Uploaded profile pictures
	router.Static("/static/img", cfg.AvatarDir)

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", userHandler.Register)
			authRoutes.POST("/login", userHandler.Login)
		}

		// Account routes: reachable before email verification so users can
		// verify, resend the email and manage their own profile.
		accountRoutes := apiV1.Group("/users")
		accountRoutes.Use(auth.Middleware(db, cfg.JWTSecret))
		{
			accountRoutes.GET("/me", userHandler.GetMe)
			accountRoutes.PUT("/me", userHandler.UpdateMe)
			accountRoutes.POST("/me/avatar", userHandler.UploadAvatar)
			accountRoutes.POST("/me/verification/resend", userHandler.ResendVerification)
			accountRoutes.GET("/:username/verify/:token", userHandler.VerifyUser)
		}

		// Social routes: verified accounts only.
		socialRoutes := apiV1.Group("/users")
		socialRoutes.Use(auth.Middleware(db, cfg.JWTSecret), auth.RequireVerified(db))
		{
			socialRoutes.GET("", userHandler.SearchUsers)
			socialRoutes.GET("/me/requests", friendHandler.GetPendingRequests)
			socialRoutes.GET("/:username", userHandler.GetProfile)
			socialRoutes.GET("/:username/friends", friendHandler.GetFriends)

			// Friendship routes
			socialRoutes.POST("/:username/request", friendHandler.SendRequest)
			socialRoutes.POST("/:username/cancel", friendHandler.CancelRequest)
			socialRoutes.POST("/:username/accept", friendHandler.AcceptRequest)
			socialRoutes.POST("/:username/reject", friendHandler.RejectRequest)
			socialRoutes.POST("/:username/remove", friendHandler.RemoveFriend)
		}
	}

	fmt.Printf("Server is running on %s\n", cfg.ServerAddr)
	fmt.Println("Swagger UI is available at " + cfg.BaseURL + "/swagger/index.html")
	log.Fatal(router.Run(cfg.ServerAddr))
}
