package routes

import (
	"flare_server/controllers"
	"flare_server/services"

	"github.com/gorilla/mux"
)

// RegisterAccessRoutes sets up the private-album access routes
func RegisterAccessRoutes(r *mux.Router, service *services.AccessService) {
	controller := controllers.NewAccessController(service)

	r.HandleFunc("/private/request", controller.HandleRequestAccess).Methods("POST")
	r.HandleFunc("/private/accept", controller.HandleAcceptRequest).Methods("POST")
	r.HandleFunc("/private/decline", controller.HandleDeclineRequest).Methods("POST")
	r.HandleFunc("/private/revoke", controller.HandleRevokeAccess).Methods("POST")
	r.HandleFunc("/private/{ownerId}/photos", controller.HandleGetPrivatePhotos).Methods("GET")
	r.HandleFunc("/private/{ownerId}/state", controller.HandleGetAccessState).Methods("GET")
}
