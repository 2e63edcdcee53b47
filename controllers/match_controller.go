package controllers

import (
	"net/http"

	"flare_server/models"
	"flare_server/services"

	"github.com/gorilla/mux"
)

// MatchController exposes match listing and deletion.
type MatchController struct {
	MatchService *services.MatchService
}

// NewMatchController initializes the controller
func NewMatchController(service *services.MatchService) *MatchController {
	return &MatchController{MatchService: service}
}

// HandleListMatches - caller lists their matches, newest activity first
func (c *MatchController) HandleListMatches(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireActor(w, r, "")
	if !ok {
		return
	}

	matches, err := c.MatchService.ListMatches(r.Context(), callerID)
	if err != nil {
		respondError(w, err)
		return
	}
	if matches == nil {
		matches = []models.MatchWithProfile{}
	}
	respondSuccess(w, map[string]interface{}{"matches": matches})
}

// HandleDeleteMatch - caller leaves a match (unlink; hard delete once both
// participants have left)
func (c *MatchController) HandleDeleteMatch(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchId"]
	callerID, ok := requireActor(w, r, "")
	if !ok {
		return
	}

	if err := c.MatchService.DeleteMatch(r.Context(), matchID, callerID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, map[string]interface{}{"message": "Match removed"})
}
