package controllers

import (
	"net/http"

	"flare_server/models"
	"flare_server/services"

	"github.com/gorilla/mux"
)

// ChatController exposes the per-match message log.
type ChatController struct {
	ChatService *services.ChatService
}

// NewChatController initializes the controller
func NewChatController(service *services.ChatService) *ChatController {
	return &ChatController{ChatService: service}
}

// HandleSendMessage - caller appends a message to a match
func (c *ChatController) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchId"]
	var request struct {
		Text string `json:"text"`
	}
	if !decodeBody(w, r, &request) {
		return
	}
	senderID, ok := requireActor(w, r, "")
	if !ok {
		return
	}

	msg, err := c.ChatService.SendMessage(r.Context(), matchID, senderID, request.Text)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, map[string]interface{}{"message": msg})
}

// HandleMarkRead - caller marks the match conversation as read
func (c *ChatController) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchId"]
	readerID, ok := requireActor(w, r, "")
	if !ok {
		return
	}

	if err := c.ChatService.MarkRead(r.Context(), matchID, readerID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, nil)
}

// HandleGetMessages - caller fetches the match's message log
func (c *ChatController) HandleGetMessages(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchId"]
	callerID, ok := requireActor(w, r, "")
	if !ok {
		return
	}

	messages, err := c.ChatService.GetMessages(r.Context(), matchID, callerID)
	if err != nil {
		respondError(w, err)
		return
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}
	respondSuccess(w, map[string]interface{}{"messages": messages})
}
