package services

import (
	"context"
	"errors"
	"log"
	"sort"

	"flare_server/models"
)

// MatchService serves match listing and deletion.
type MatchService struct {
	Users   UserStore
	Matches MatchStore
	Cache   ProfileCache // optional, may be nil
}

// ListMatches returns the caller's matches enriched with the other
// participant's summary, sorted by last activity (newest first).
func (s *MatchService) ListMatches(ctx context.Context, userID string) ([]models.MatchWithProfile, error) {
	user, err := s.Users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	matches := make([]models.MatchWithProfile, 0, len(user.Matches))
	for _, matchID := range user.Matches {
		match, err := s.Matches.GetMatch(ctx, matchID)
		if err != nil {
			// A dangling id can linger briefly after the other side's hard
			// delete; skip it rather than failing the whole list.
			if models.KindOf(err) == models.KindNotFound {
				log.Printf("Skipping dangling match %s for %s", matchID, userID)
				continue
			}
			return nil, err
		}

		summary, err := s.profileSummary(ctx, match.OtherUser(userID))
		if err != nil {
			if models.KindOf(err) == models.KindNotFound {
				continue
			}
			return nil, err
		}

		matches = append(matches, models.MatchWithProfile{
			MatchID:        match.MatchID,
			Profile:        *summary,
			MessagePreview: match.MessagePreview,
			LastMessageAt:  match.LastMessageAt,
			Read:           match.Read[userID],
			CreatedAt:      match.CreatedAt,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].LastMessageAt > matches[j].LastMessageAt
	})
	return matches, nil
}

// DeleteMatch unlinks the caller from the match. The record survives for
// the other participant; when the second participant leaves, the record
// and its pair marker are hard-deleted. The store's conditional unlink
// decides who the last leaver is, so two deletes racing past the same read
// still free the pair marker.
func (s *MatchService) DeleteMatch(ctx context.Context, matchID, userID string) error {
	match, err := s.Matches.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if !match.HasUser(userID) {
		return models.ErrPermissionDenied("caller is not a participant of this match")
	}
	if models.HasSet(match.LeftUsers, userID) {
		return nil
	}

	if models.HasSet(match.LeftUsers, match.OtherUser(userID)) {
		return s.Matches.DeleteMatch(ctx, match, userID)
	}
	err = s.Matches.UnlinkUser(ctx, match, userID)
	if errors.Is(err, ErrOtherAlreadyLeft) {
		return s.Matches.DeleteMatch(ctx, match, userID)
	}
	return err
}

func (s *MatchService) profileSummary(ctx context.Context, userID string) (*models.ProfileSummary, error) {
	if userID == "" {
		return nil, errors.New("match has no other participant")
	}
	if s.Cache != nil {
		if summary, ok := s.Cache.GetSummary(ctx, userID); ok {
			return summary, nil
		}
	}

	user, err := s.Users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := user.Summary()
	if s.Cache != nil {
		s.Cache.SetSummary(ctx, summary)
	}
	return &summary, nil
}
