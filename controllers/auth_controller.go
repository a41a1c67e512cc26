package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/petopia/petopia/models"
	"github.com/petopia/petopia/utils"
)

// AuthController covers the minimal identity boundary: register, login, me.
// Everything richer about identity (OAuth, email verification, profiles)
// belongs to an external system.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates a new controller instance.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

const tokenDuration = 7 * 24 * time.Hour

// Register creates an account with a bcrypt-hashed password.
func (a *AuthController) Register(ctx *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required,min=3,max=64"`
		Email    string `json:"email" binding:"omitempty,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid registration payload")
		return
	}

	username := strings.TrimSpace(req.Username)

	var existing models.User
	if err := a.db.Where("username = ?", username).First(&existing).Error; err == nil {
		utils.Error(ctx, http.StatusConflict, 40901, "username already taken")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to check username")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50002, "failed to hash password")
		return
	}

	user := models.User{Username: username, Email: req.Email, PasswordHash: hash}
	if err := a.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(ctx, http.StatusConflict, 40901, "username already taken")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to create user")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, tokenDuration)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to issue token")
		return
	}

	utils.Success(ctx, gin.H{"token": token, "user": user})
}

// Login authenticates by username and password and issues a JWT.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40002, "invalid login payload")
		return
	}

	var user models.User
	if err := a.db.Where("username = ?", strings.TrimSpace(req.Username)).First(&user).Error; err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid username or password")
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid username or password")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, tokenDuration)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to issue token")
		return
	}

	utils.Success(ctx, gin.H{"token": token, "user": user})
}

// Me returns the authenticated user's own record.
func (a *AuthController) Me(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var user models.User
	if err := a.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to load user")
		return
	}

	utils.Success(ctx, user)
}
