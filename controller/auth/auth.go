package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"taskhive/dto"
	"taskhive/middleware"
	"taskhive/model"
	"taskhive/services"
)

func AuthController(router *gin.Engine, store services.Store) {
	router.POST("/auth/register", func(c *gin.Context) {
		Register(c, store)
	})
	router.POST("/auth/login", func(c *gin.Context) {
		Login(c, store)
	})
	router.GET("/auth/me", middleware.AccessTokenMiddleware(), func(c *gin.Context) {
		Me(c, store)
	})
}

func Register(c *gin.Context, store services.Store) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	email := strings.ToLower(req.Email)

	if _, err := store.GetUserByEmail(c.Request.Context(), email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
		return
	} else if !errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	now := time.Now()
	user := model.User{
		UserID:      uuid.New().String(),
		Name:        req.Name,
		Email:       email,
		Password:    string(hashed),
		StreakDays:  1,
		LastLoginAt: &now,
		CreatedAt:   now,
	}
	if err := store.CreateUser(c.Request.Context(), &user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := services.CreateAccessToken(user.UserID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create access token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"userId": user.UserID,
		"name":   user.Name,
		"email":  user.Email,
		"avatar": user.Avatar,
		"token":  token,
	})
}

func Login(c *gin.Context, store services.Store) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, err := store.GetUserByEmail(c.Request.Context(), strings.ToLower(req.Email))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	services.ApplyLoginStreak(user, time.Now())
	if err := store.SaveUser(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update login status"})
		return
	}

	token, err := services.CreateAccessToken(user.UserID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create access token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId":     user.UserID,
		"name":       user.Name,
		"email":      user.Email,
		"avatar":     user.Avatar,
		"streakDays": user.StreakDays,
		"points":     user.Points,
		"token":      token,
	})
}

func Me(c *gin.Context, store services.Store) {
	userId := c.MustGet("userId").(string)

	user, err := store.GetUser(c.Request.Context(), userId)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	resp := dto.UserResponse{
		UserID:     user.UserID,
		Name:       user.Name,
		Email:      user.Email,
		Avatar:     user.Avatar,
		Points:     user.Points,
		StreakDays: user.StreakDays,
		CreatedAt:  user.CreatedAt.Format(time.RFC3339),
	}
	if user.LastLoginAt != nil {
		s := user.LastLoginAt.Format(time.RFC3339)
		resp.LastLoginAt = &s
	}
	c.JSON(http.StatusOK, resp)
}
