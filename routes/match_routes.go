package routes

import (
	"flare_server/controllers"
	"flare_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up the match listing and deletion routes
func RegisterMatchRoutes(r *mux.Router, service *services.MatchService) {
	controller := controllers.NewMatchController(service)

	r.HandleFunc("/matches", controller.HandleListMatches).Methods("GET")
	r.HandleFunc("/matches/{matchId}", controller.HandleDeleteMatch).Methods("DELETE")
}
