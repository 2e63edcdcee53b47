package services

import (
	"context"
	"log"
	"time"

	"flare_server/models"

	"github.com/google/uuid"
)

// InteractionService applies the like/decline/match rules. For any ordered
// pair actor → target the state machine is Unseen → Liked | Declined, or
// Unseen → Matched when the target's like is already pending; all three
// are terminal for that pair.
type InteractionService struct {
	Users   UserStore
	Matches MatchStore
}

// Like records one-sided interest. Idempotent: retrying adds nothing
// because every mutation is a set union.
func (s *InteractionService) Like(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return models.ErrInvalidArgument("cannot like yourself")
	}
	if err := s.Users.ApplyLike(ctx, actorID, targetID); err != nil {
		return err
	}
	log.Printf("%s liked %s", actorID, targetID)
	return nil
}

// Decline records one-sided rejection and withdraws any like previously
// received from the target.
func (s *InteractionService) Decline(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return models.ErrInvalidArgument("cannot decline yourself")
	}
	if err := s.Users.ApplyDecline(ctx, actorID, targetID); err != nil {
		return err
	}
	log.Printf("%s declined %s", actorID, targetID)
	return nil
}

// Match is the mutual accept: the actor acts on a profile present in their
// receivedLikes. The store commits the pair marker, the match record, and
// both user updates atomically, so concurrent Match calls for the same
// pair produce exactly one match.
func (s *InteractionService) Match(ctx context.Context, actorID, targetID string) (*models.MatchRecord, error) {
	if actorID == targetID {
		return nil, models.ErrInvalidArgument("cannot match with yourself")
	}

	actor, err := s.Users.GetUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !models.HasSet(actor.ReceivedLikes, targetID) {
		return nil, models.ErrInvalidArgument("no pending like from this user")
	}

	now := time.Now().UTC().Format(time.RFC3339)
	match := &models.MatchRecord{
		MatchID: uuid.NewString(),
		Users:   []string{actorID, targetID},
		PairKey: models.PairKey(actorID, targetID),
		Read: map[string]bool{
			actorID:  false,
			targetID: false,
		},
		LastMessageAt: now,
		CreatedAt:     now,
	}

	if err := s.Matches.CreateMatch(ctx, actorID, targetID, match); err != nil {
		return nil, err
	}
	log.Printf("It's a match: %s and %s (%s)", actorID, targetID, match.MatchID)
	return match, nil
}
