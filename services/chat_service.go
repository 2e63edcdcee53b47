package services

import (
	"context"
	"log"
	"strings"
	"time"

	"flare_server/models"
)

// ChatService owns the append-only message log embedded in each match.
type ChatService struct {
	Matches MatchStore
}

// SendMessage appends a message and refreshes the preview, timestamp, and
// the recipient's read flag in one write. Fatal on unknown match or
// non-participant sender; not blindly retryable (a retry would append the
// message twice).
func (s *ChatService) SendMessage(ctx context.Context, matchID, senderID, text string) (*models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.ErrInvalidArgument("message text cannot be empty")
	}

	match, err := s.Matches.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasUser(senderID) {
		return nil, models.ErrPermissionDenied("sender is not a participant of this match")
	}

	msg := models.ChatMessage{
		SenderID: senderID,
		Text:     text,
		SentAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.Matches.AppendMessage(ctx, matchID, msg, match.OtherUser(senderID)); err != nil {
		return nil, err
	}
	return &msg, nil
}

// MarkRead sets the reader's read flag. No-op when already read.
func (s *ChatService) MarkRead(ctx context.Context, matchID, readerID string) error {
	match, err := s.Matches.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if !match.HasUser(readerID) {
		return models.ErrPermissionDenied("reader is not a participant of this match")
	}
	if match.Read[readerID] {
		return nil
	}
	if err := s.Matches.MarkRead(ctx, matchID, readerID); err != nil {
		return err
	}
	log.Printf("%s read match %s", readerID, matchID)
	return nil
}

// GetMessages returns the match's message log in append order, for
// participants only.
func (s *ChatService) GetMessages(ctx context.Context, matchID, callerID string) ([]models.ChatMessage, error) {
	match, err := s.Matches.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasUser(callerID) {
		return nil, models.ErrPermissionDenied("caller is not a participant of this match")
	}
	return match.Messages, nil
}
