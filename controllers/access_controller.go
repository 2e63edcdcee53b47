package controllers

import (
	"net/http"

	"flare_server/models"
	"flare_server/services"

	"github.com/gorilla/mux"
)

// AccessController exposes the private-album request/accept operations.
type AccessController struct {
	AccessService *services.AccessService
}

// NewAccessController initializes the controller
func NewAccessController(service *services.AccessService) *AccessController {
	return &AccessController{AccessService: service}
}

// HandleRequestAccess - caller asks the owner to share their private album
func (c *AccessController) HandleRequestAccess(w http.ResponseWriter, r *http.Request) {
	var request struct {
		OwnerID string `json:"ownerId"`
	}
	if !decodeBody(w, r, &request) {
		return
	}
	requesterID, ok := requireActor(w, r, "")
	if !ok {
		return
	}
	if request.OwnerID == "" {
		respondError(w, models.ErrInvalidArgument("ownerId is required"))
		return
	}

	if err := c.AccessService.RequestAccess(r.Context(), requesterID, request.OwnerID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, map[string]interface{}{"message": "Access requested"})
}

type accessDecisionRequest struct {
	RequesterID string `json:"requesterId"`
}

// HandleAcceptRequest - owner grants a pending request
func (c *AccessController) HandleAcceptRequest(w http.ResponseWriter, r *http.Request) {
	var request accessDecisionRequest
	if !decodeBody(w, r, &request) {
		return
	}
	ownerID, ok := requireActor(w, r, "")
	if !ok {
		return
	}
	if request.RequesterID == "" {
		respondError(w, models.ErrInvalidArgument("requesterId is required"))
		return
	}

	if err := c.AccessService.AcceptRequest(r.Context(), ownerID, request.RequesterID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, map[string]interface{}{"message": "Access granted"})
}

// HandleDeclineRequest - owner drops a pending request
func (c *AccessController) HandleDeclineRequest(w http.ResponseWriter, r *http.Request) {
	var request accessDecisionRequest
	if !decodeBody(w, r, &request) {
		return
	}
	ownerID, ok := requireActor(w, r, "")
	if !ok {
		return
	}
	if request.RequesterID == "" {
		respondError(w, models.ErrInvalidArgument("requesterId is required"))
		return
	}

	if err := c.AccessService.DeclineRequest(r.Context(), ownerID, request.RequesterID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, map[string]interface{}{"message": "Request declined"})
}

// HandleRevokeAccess - owner withdraws previously granted access
func (c *AccessController) HandleRevokeAccess(w http.ResponseWriter, r *http.Request) {
	var request accessDecisionRequest
	if !decodeBody(w, r, &request) {
		return
	}
	ownerID, ok := requireActor(w, r, "")
	if !ok {
		return
	}
	if request.RequesterID == "" {
		respondError(w, models.ErrInvalidArgument("requesterId is required"))
		return
	}

	if err := c.AccessService.RevokeAccess(r.Context(), ownerID, request.RequesterID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, map[string]interface{}{"message": "Access revoked"})
}

// HandleGetPrivatePhotos - caller views the owner's private album, gated
// on granted access
func (c *AccessController) HandleGetPrivatePhotos(w http.ResponseWriter, r *http.Request) {
	ownerID := mux.Vars(r)["ownerId"]
	viewerID, ok := requireActor(w, r, "")
	if !ok {
		return
	}

	photos, err := c.AccessService.GetPrivatePhotos(r.Context(), viewerID, ownerID)
	if err != nil {
		respondError(w, err)
		return
	}
	if photos == nil {
		photos = []string{}
	}
	respondSuccess(w, map[string]interface{}{"privatePhotos": photos})
}

// HandleGetAccessState - caller checks their request state for an album
func (c *AccessController) HandleGetAccessState(w http.ResponseWriter, r *http.Request) {
	ownerID := mux.Vars(r)["ownerId"]
	viewerID, ok := requireActor(w, r, "")
	if !ok {
		return
	}

	state, err := c.AccessService.AccessState(r.Context(), viewerID, ownerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, map[string]interface{}{"state": state})
}
