package services

import (
	"context"
	"log"

	"flare_server/models"
)

// AccessService manages the private-album request/accept sets. For a
// requester → owner relationship the states are NotRequested → Requested →
// Accepted; Revoke returns Accepted to NotRequested, Decline returns
// Requested to NotRequested.
type AccessService struct {
	Users UserStore
}

// RequestAccess asks the owner to share their private album. Repeated
// requests while pending are a no-op; requesting after access was already
// granted is a caller bug and is surfaced. The store enforces the
// not-already-granted precondition inside the write itself.
func (s *AccessService) RequestAccess(ctx context.Context, requesterID, ownerID string) error {
	if requesterID == ownerID {
		return models.ErrInvalidArgument("cannot request access to your own album")
	}
	if _, err := s.Users.GetUser(ctx, ownerID); err != nil {
		return err
	}

	if err := s.Users.AddPrivateRequest(ctx, ownerID, requesterID); err != nil {
		return err
	}
	log.Printf("%s requested private access from %s", requesterID, ownerID)
	return nil
}

// AcceptRequest grants a pending request. Accepting a request that does
// not exist fails with InvalidArgument rather than silently succeeding.
func (s *AccessService) AcceptRequest(ctx context.Context, ownerID, requesterID string) error {
	if err := s.Users.AcceptPrivateRequest(ctx, ownerID, requesterID); err != nil {
		return err
	}
	log.Printf("%s granted private access to %s", ownerID, requesterID)
	return nil
}

// DeclineRequest drops a pending request without granting anything.
func (s *AccessService) DeclineRequest(ctx context.Context, ownerID, requesterID string) error {
	return s.Users.RemovePrivateRequest(ctx, ownerID, requesterID)
}

// RevokeAccess withdraws a previously granted access. The requester may
// request again afterwards.
func (s *AccessService) RevokeAccess(ctx context.Context, ownerID, requesterID string) error {
	if err := s.Users.RemovePrivateAccepted(ctx, ownerID, requesterID); err != nil {
		return err
	}
	log.Printf("%s revoked private access for %s", ownerID, requesterID)
	return nil
}

// AccessState reports the requester's state for the owner's album.
func (s *AccessService) AccessState(ctx context.Context, requesterID, ownerID string) (string, error) {
	owner, err := s.Users.GetUser(ctx, ownerID)
	if err != nil {
		return "", err
	}
	switch {
	case models.HasSet(owner.PrivateAccepted, requesterID):
		return models.AccessAccepted, nil
	case models.HasSet(owner.PrivateRequests, requesterID):
		return models.AccessRequested, nil
	default:
		return models.AccessNotRequested, nil
	}
}

// GetPrivatePhotos returns the owner's private album. The viewer must be
// in the owner's privateAccepted set; owners always see their own album.
func (s *AccessService) GetPrivatePhotos(ctx context.Context, viewerID, ownerID string) ([]string, error) {
	owner, err := s.Users.GetUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if viewerID != ownerID && !models.HasSet(owner.PrivateAccepted, viewerID) {
		return nil, models.ErrPermissionDenied("private album access not granted")
	}
	return owner.PrivatePhotos, nil
}
