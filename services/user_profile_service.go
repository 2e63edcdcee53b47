package services

import (
	"context"
	"log"
	"time"

	"flare_server/models"

	"github.com/google/uuid"
)

// UserProfileService owns the profile directory: signup stubs, profile
// edits, candidate lookup, pause, and account deletion.
type UserProfileService struct {
	Users UserStore
	Cache ProfileCache // optional, may be nil
}

// Candidate lookup page size cap.
const maxCandidatePageSize = 50

// CreateProfile writes the minimal signup stub. Onboarding fills the rest
// via UpdateProfile.
func (s *UserProfileService) CreateProfile(ctx context.Context, user *models.UserRecord) (*models.UserRecord, error) {
	if user.UserID == "" {
		return nil, models.ErrInvalidArgument("userId is required")
	}
	now := time.Now().UTC().Format(time.RFC3339)
	user.CreatedAt = now
	user.UpdatedAt = now
	if err := s.Users.PutUser(ctx, user); err != nil {
		return nil, err
	}
	log.Printf("Created profile %s", user.UserID)
	return user, nil
}

// GetProfile fetches a full user record.
func (s *UserProfileService) GetProfile(ctx context.Context, userID string) (*models.UserRecord, error) {
	return s.Users.GetUser(ctx, userID)
}

// UpdateProfile applies field updates and invalidates the cached summary.
// Identity, timestamps, and the interaction sets are managed by their own
// operations; a caller-supplied updatedAt would also collide with the
// clause UpdateFields appends.
func (s *UserProfileService) UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) (*models.UserRecord, error) {
	for _, field := range []string{"userId", "emailId", "createdAt", "updatedAt",
		"likedUsers", "declinedUsers", "receivedLikes",
		"receivedDeclines", "hiddenProfiles", "matches", "privateRequests", "privateAccepted"} {
		if _, ok := updates[field]; ok {
			return nil, models.ErrInvalidArgument("field '" + field + "' cannot be updated directly")
		}
	}

	user, err := s.Users.UpdateFields(ctx, userID, updates)
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		s.Cache.Invalidate(ctx, userID)
	}
	return user, nil
}

// SetPaused toggles the caller's visibility in candidate lookup.
func (s *UserProfileService) SetPaused(ctx context.Context, userID string, paused bool) error {
	_, err := s.Users.UpdateFields(ctx, userID, map[string]interface{}{"paused": paused})
	return err
}

// GetCandidates returns profile summaries for the caller's feed, excluding
// the caller, paused users, and anyone already acted upon, optionally
// narrowed to the caller's interestedIn genders.
func (s *UserProfileService) GetCandidates(ctx context.Context, userID, nextToken string, limit int32) ([]models.ProfileSummary, string, error) {
	caller, err := s.Users.GetUser(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	if limit <= 0 || limit > maxCandidatePageSize {
		limit = maxCandidatePageSize
	}

	hidden := make(map[string]struct{}, len(caller.HiddenProfiles)+1)
	hidden[userID] = struct{}{}
	for _, id := range caller.HiddenProfiles {
		hidden[id] = struct{}{}
	}

	wantGender := make(map[string]struct{}, len(caller.InterestedIn))
	for _, g := range caller.InterestedIn {
		wantGender[g] = struct{}{}
	}

	records, token, err := s.Users.ScanCandidates(ctx, func(u models.UserRecord) bool {
		if u.Paused {
			return false
		}
		if _, excluded := hidden[u.UserID]; excluded {
			return false
		}
		if len(wantGender) > 0 {
			if _, ok := wantGender[u.Gender]; !ok {
				return false
			}
		}
		return true
	}, nextToken, limit)
	if err != nil {
		return nil, "", err
	}

	summaries := make([]models.ProfileSummary, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, record.Summary())
	}
	return summaries, token, nil
}

// DeleteAccount soft-archives the record into the deleted-users store and
// removes it from the directory. Auth and object storage cleanup belong to
// their platforms.
func (s *UserProfileService) DeleteAccount(ctx context.Context, userID string) error {
	user, err := s.Users.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.Users.ArchiveUser(ctx, user); err != nil {
		return err
	}
	if s.Cache != nil {
		s.Cache.Invalidate(ctx, userID)
	}
	return nil
}

// ReportUser records a moderation report for the external moderation
// collaborator. No enforcement happens here.
func (s *UserProfileService) ReportUser(ctx context.Context, reporterID, reportedID, reason string) (*models.Report, error) {
	if reporterID == reportedID {
		return nil, models.ErrInvalidArgument("cannot report yourself")
	}
	report := &models.Report{
		ReportID:   uuid.NewString(),
		ReporterID: reporterID,
		ReportedID: reportedID,
		Reason:     reason,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.Users.RecordReport(ctx, report); err != nil {
		return nil, err
	}
	log.Printf("Report %s recorded: %s reported %s", report.ReportID, reporterID, reportedID)
	return report, nil
}
