package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/petopia/petopia/services"
	"github.com/petopia/petopia/utils"
)

// SignInController handles daily sign-in endpoints. All domain decisions live
// in the sign-in service; this layer only translates HTTP.
type SignInController struct {
	signins *services.SignInService
}

// NewSignInController creates a new controller instance.
func NewSignInController(signins *services.SignInService) *SignInController {
	return &SignInController{signins: signins}
}

// DailySignIn records today's sign-in and returns the earned reward.
func (s *SignInController) DailySignIn(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	result, err := s.signins.PerformSignIn(userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadySignedIn):
			utils.Error(ctx, http.StatusBadRequest, 40030, "already signed in today")
		case errors.Is(err, services.ErrUserNotFound):
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
		default:
			utils.Sugar.Errorf("sign-in failed user=%d err=%v", userID, err)
			utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to record sign-in")
		}
		return
	}

	utils.Success(ctx, result)
}

// Status returns the fresh sign-in view: today's state, streak, month
// attendance and the reward a sign-in right now would earn.
func (s *SignInController) Status(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	status, err := s.signins.Status(userID)
	if err != nil {
		utils.Sugar.Errorf("sign-in status failed user=%d err=%v", userID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to load sign-in status")
		return
	}

	utils.Success(ctx, status)
}

// MonthAttendance returns the attendance summary for ?year=&month=,
// defaulting to the current platform-local month.
func (s *SignInController) MonthAttendance(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	year, _ := strconv.Atoi(ctx.Query("year"))
	month, _ := strconv.Atoi(ctx.Query("month"))
	if year == 0 || month < 1 || month > 12 {
		utils.Error(ctx, http.StatusBadRequest, 40031, "year and month query parameters are required")
		return
	}

	att, err := s.signins.GetMonthAttendance(userID, year, time.Month(month))
	if err != nil {
		utils.Sugar.Errorf("month attendance failed user=%d err=%v", userID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to load month attendance")
		return
	}

	utils.Success(ctx, att)
}

// History returns one page of sign-in records, optionally bounded by
// ?from=2006-01-02&to=2006-01-02.
func (s *SignInController) History(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var from, to *services.LocalDate
	if v := ctx.Query("from"); v != "" {
		d, err := services.ParseLocalDate(v)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40032, "invalid from date")
			return
		}
		from = &d
	}
	if v := ctx.Query("to"); v != "" {
		d, err := services.ParseLocalDate(v)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40033, "invalid to date")
			return
		}
		to = &d
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	result, err := s.signins.History(userID, from, to, page, pageSize)
	if err != nil {
		utils.Sugar.Errorf("sign-in history failed user=%d err=%v", userID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50033, "failed to load sign-in history")
		return
	}

	utils.Success(ctx, result)
}
