package routes

import (
	"flare_server/controllers"
	"flare_server/services"

	"github.com/gorilla/mux"
)

// RegisterChatRoutes sets up the messaging routes
func RegisterChatRoutes(r *mux.Router, service *services.ChatService) {
	controller := controllers.NewChatController(service)

	r.HandleFunc("/matches/{matchId}/messages", controller.HandleSendMessage).Methods("POST")
	r.HandleFunc("/matches/{matchId}/messages", controller.HandleGetMessages).Methods("GET")
	r.HandleFunc("/matches/{matchId}/read", controller.HandleMarkRead).Methods("POST")
}
