package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petopia/petopia/services"
	"github.com/petopia/petopia/utils"
)

// PetController exposes the pet endpoints: profile, interactions and
// cosmetic changes.
type PetController struct {
	pets *services.PetService
}

// NewPetController creates a new controller instance.
func NewPetController(pets *services.PetService) *PetController {
	return &PetController{pets: pets}
}

// GetPet returns the user's pet, creating it on first access.
func (p *PetController) GetPet(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	pet, err := p.pets.GetOrCreate(userID)
	if err != nil {
		utils.Sugar.Errorf("load pet failed user=%d err=%v", userID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to load pet")
		return
	}

	utils.Success(ctx, gin.H{
		"pet":           pet,
		"next_level_at": services.RequiredExperience(pet.Level),
		"can_interact":  services.CanInteract(pet),
	})
}

// Interact applies one interaction (feed, bath, play, rest) to the pet.
func (p *PetController) Interact(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Type string `json:"type" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40041, "interaction type is required")
		return
	}

	result, err := p.pets.Interact(userID, services.InteractionType(req.Type))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownInteraction):
			utils.Error(ctx, http.StatusBadRequest, 40042, "unknown interaction type")
		case errors.Is(err, services.ErrPetUnfit):
			utils.Error(ctx, http.StatusBadRequest, 40043, "pet is not fit for interaction")
		case errors.Is(err, services.ErrPetInactive):
			utils.Error(ctx, http.StatusBadRequest, 40044, "pet is inactive")
		default:
			utils.Sugar.Errorf("pet interaction failed user=%d err=%v", userID, err)
			utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to interact with pet")
		}
		return
	}

	utils.Success(ctx, result)
}

// ChangeColor applies new cosmetic colors after debiting the fixed cost.
func (p *PetController) ChangeColor(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Skin       string `json:"skin" binding:"required"`
		Background string `json:"background" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40045, "skin and background are required")
		return
	}

	pet, err := p.pets.ChangeColor(userID, req.Skin, req.Background)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidColor):
			utils.Error(ctx, http.StatusBadRequest, 40046, "invalid color value")
		case errors.Is(err, services.ErrInsufficientPoints):
			utils.Error(ctx, http.StatusBadRequest, 40047, "insufficient points")
		default:
			utils.Sugar.Errorf("pet color change failed user=%d err=%v", userID, err)
			utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to change pet color")
		}
		return
	}

	utils.Success(ctx, pet)
}

// Rename sets the pet's nickname.
func (p *PetController) Rename(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Nickname string `json:"nickname" binding:"required,max=64"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40048, "nickname is required")
		return
	}

	pet, err := p.pets.Rename(userID, req.Nickname)
	if err != nil {
		utils.Sugar.Errorf("pet rename failed user=%d err=%v", userID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50043, "failed to rename pet")
		return
	}

	utils.Success(ctx, pet)
}
