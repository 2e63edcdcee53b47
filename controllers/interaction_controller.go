package controllers

import (
	"net/http"

	"flare_server/middleware"
	"flare_server/models"
	"flare_server/services"
)

// InteractionController exposes the like/decline/match operations. The
// actor is always the authenticated caller; a mismatching actor field in
// the body is rejected before anything is written.
type InteractionController struct {
	InteractionService *services.InteractionService
}

// NewInteractionController initializes the controller
func NewInteractionController(service *services.InteractionService) *InteractionController {
	return &InteractionController{InteractionService: service}
}

type interactionRequest struct {
	ActorID  string `json:"actorId,omitempty"`
	TargetID string `json:"targetId"`
}

// requireActor resolves the acting user from the verified caller identity
// and rejects requests acting on someone else's behalf.
func requireActor(w http.ResponseWriter, r *http.Request, claimed string) (string, bool) {
	callerID := middleware.CallerID(r)
	if callerID == "" {
		respondError(w, models.ErrUnauthenticated("missing caller identity"))
		return "", false
	}
	if claimed != "" && claimed != callerID {
		respondError(w, models.ErrPermissionDenied("caller may only act as themselves"))
		return "", false
	}
	return callerID, true
}

// HandleLike - caller likes the target user
func (c *InteractionController) HandleLike(w http.ResponseWriter, r *http.Request) {
	var request interactionRequest
	if !decodeBody(w, r, &request) {
		return
	}
	actorID, ok := requireActor(w, r, request.ActorID)
	if !ok {
		return
	}
	if request.TargetID == "" {
		respondError(w, models.ErrInvalidArgument("targetId is required"))
		return
	}

	if err := c.InteractionService.Like(r.Context(), actorID, request.TargetID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, map[string]interface{}{"message": "User liked"})
}

// HandleDecline - caller declines the target user
func (c *InteractionController) HandleDecline(w http.ResponseWriter, r *http.Request) {
	var request interactionRequest
	if !decodeBody(w, r, &request) {
		return
	}
	actorID, ok := requireActor(w, r, request.ActorID)
	if !ok {
		return
	}
	if request.TargetID == "" {
		respondError(w, models.ErrInvalidArgument("targetId is required"))
		return
	}

	if err := c.InteractionService.Decline(r.Context(), actorID, request.TargetID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, map[string]interface{}{"message": "User declined"})
}

// HandleMatch - caller accepts a received like, creating the match
func (c *InteractionController) HandleMatch(w http.ResponseWriter, r *http.Request) {
	var request interactionRequest
	if !decodeBody(w, r, &request) {
		return
	}
	actorID, ok := requireActor(w, r, request.ActorID)
	if !ok {
		return
	}
	if request.TargetID == "" {
		respondError(w, models.ErrInvalidArgument("targetId is required"))
		return
	}

	match, err := c.InteractionService.Match(r.Context(), actorID, request.TargetID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, map[string]interface{}{
		"message": "It's a match!",
		"matchId": match.MatchID,
	})
}
