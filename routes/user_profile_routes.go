package routes

import (
	"flare_server/controllers"
	"flare_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserProfileRoutes sets up the profile directory routes
func RegisterUserProfileRoutes(r *mux.Router, service *services.UserProfileService) {
	controller := controllers.NewUserProfileController(service)

	r.HandleFunc("/profiles", controller.HandleCreateProfile).Methods("POST")
	r.HandleFunc("/profiles/candidates", controller.HandleGetCandidates).Methods("GET")
	r.HandleFunc("/profiles/report", controller.HandleReportUser).Methods("POST")
	r.HandleFunc("/profiles/{userId}", controller.HandleGetProfile).Methods("GET")
	r.HandleFunc("/profiles/{userId}", controller.HandleUpdateProfile).Methods("PATCH")
	r.HandleFunc("/profiles/{userId}/paused", controller.HandleSetPaused).Methods("PUT")
	r.HandleFunc("/profiles/{userId}", controller.HandleDeleteAccount).Methods("DELETE")
}
