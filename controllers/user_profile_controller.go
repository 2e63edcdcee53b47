package controllers

import (
	"net/http"
	"strconv"

	"flare_server/models"
	"flare_server/services"

	"github.com/gorilla/mux"
)

// UserProfileController exposes the profile directory.
type UserProfileController struct {
	UserProfileService *services.UserProfileService
}

// NewUserProfileController initializes the controller
func NewUserProfileController(service *services.UserProfileService) *UserProfileController {
	return &UserProfileController{UserProfileService: service}
}

// HandleCreateProfile - caller creates their signup stub
func (c *UserProfileController) HandleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.UserRecord
	if !decodeBody(w, r, &profile) {
		return
	}
	callerID, ok := requireActor(w, r, profile.UserID)
	if !ok {
		return
	}
	profile.UserID = callerID

	created, err := c.UserProfileService.CreateProfile(r.Context(), &profile)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, map[string]interface{}{"profile": created})
}

// HandleGetProfile - fetch a profile by id
func (c *UserProfileController) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	callerID, ok := requireActor(w, r, "")
	if !ok {
		return
	}

	profile, err := c.UserProfileService.GetProfile(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	// Only the owner sees their own sets and private album; everyone else
	// gets the public summary.
	if callerID == userID {
		respondSuccess(w, map[string]interface{}{"profile": profile})
		return
	}
	respondSuccess(w, map[string]interface{}{"profile": profile.Summary()})
}

// HandleUpdateProfile - caller edits their own profile fields
func (c *UserProfileController) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if _, ok := requireActor(w, r, userID); !ok {
		return
	}

	var updates map[string]interface{}
	if !decodeBody(w, r, &updates) {
		return
	}

	profile, err := c.UserProfileService.UpdateProfile(r.Context(), userID, updates)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, map[string]interface{}{"profile": profile})
}

// HandleSetPaused - caller hides or unhides themselves from candidate lookup
func (c *UserProfileController) HandleSetPaused(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if _, ok := requireActor(w, r, userID); !ok {
		return
	}

	var request struct {
		Paused bool `json:"paused"`
	}
	if !decodeBody(w, r, &request) {
		return
	}

	if err := c.UserProfileService.SetPaused(r.Context(), userID, request.Paused); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, nil)
}

// HandleGetCandidates - caller fetches their candidate feed page
func (c *UserProfileController) HandleGetCandidates(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireActor(w, r, "")
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, models.ErrInvalidArgument("limit must be a number"))
			return
		}
		limit = parsed
	}
	nextToken := r.URL.Query().Get("nextToken")

	candidates, token, err := c.UserProfileService.GetCandidates(r.Context(), callerID, nextToken, int32(limit))
	if err != nil {
		respondError(w, err)
		return
	}
	if candidates == nil {
		candidates = []models.ProfileSummary{}
	}
	respondSuccess(w, map[string]interface{}{
		"candidates": candidates,
		"nextToken":  token,
	})
}

// HandleDeleteAccount - caller archives and removes their account
func (c *UserProfileController) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if _, ok := requireActor(w, r, userID); !ok {
		return
	}

	if err := c.UserProfileService.DeleteAccount(r.Context(), userID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, map[string]interface{}{"message": "Account deleted"})
}

// HandleReportUser - caller records a moderation report
func (c *UserProfileController) HandleReportUser(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ReportedID string `json:"reportedId"`
		Reason     string `json:"reason"`
	}
	if !decodeBody(w, r, &request) {
		return
	}
	callerID, ok := requireActor(w, r, "")
	if !ok {
		return
	}
	if request.ReportedID == "" {
		respondError(w, models.ErrInvalidArgument("reportedId is required"))
		return
	}

	report, err := c.UserProfileService.ReportUser(r.Context(), callerID, request.ReportedID, request.Reason)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, map[string]interface{}{"reportId": report.ReportID})
}
