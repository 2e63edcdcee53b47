package routes

import (
	"flare_server/controllers"
	"flare_server/services"

	"github.com/gorilla/mux"
)

// RegisterInteractionRoutes sets up the like/decline/match routes
func RegisterInteractionRoutes(r *mux.Router, service *services.InteractionService) {
	controller := controllers.NewInteractionController(service)

	r.HandleFunc("/interactions/like", controller.HandleLike).Methods("POST")
	r.HandleFunc("/interactions/decline", controller.HandleDecline).Methods("POST")
	r.HandleFunc("/interactions/match", controller.HandleMatch).Methods("POST")
}
