package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"flare_server/models"
)

type UserStoreMock struct {
	mock.Mock
}

func (m *UserStoreMock) GetUser(ctx context.Context, userID string) (*models.UserRecord, error) {
	args := m.Called(ctx, userID)
	var user *models.UserRecord
	if val := args.Get(0); val != nil {
		user = val.(*models.UserRecord)
	}
	return user, args.Error(1)
}

func (m *UserStoreMock) PutUser(ctx context.Context, user *models.UserRecord) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserStoreMock) UpdateFields(ctx context.Context, userID string, updates map[string]interface{}) (*models.UserRecord, error) {
	args := m.Called(ctx, userID, updates)
	var user *models.UserRecord
	if val := args.Get(0); val != nil {
		user = val.(*models.UserRecord)
	}
	return user, args.Error(1)
}

func (m *UserStoreMock) ScanCandidates(ctx context.Context, keep func(models.UserRecord) bool, nextToken string, limit int32) ([]models.UserRecord, string, error) {
	args := m.Called(ctx, keep, nextToken, limit)
	var records []models.UserRecord
	if val := args.Get(0); val != nil {
		records = val.([]models.UserRecord)
	}
	return records, args.String(1), args.Error(2)
}

func (m *UserStoreMock) ArchiveUser(ctx context.Context, user *models.UserRecord) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserStoreMock) ApplyLike(ctx context.Context, actorID, targetID string) error {
	args := m.Called(ctx, actorID, targetID)
	return args.Error(0)
}

func (m *UserStoreMock) ApplyDecline(ctx context.Context, actorID, targetID string) error {
	args := m.Called(ctx, actorID, targetID)
	return args.Error(0)
}

func (m *UserStoreMock) AddPrivateRequest(ctx context.Context, ownerID, requesterID string) error {
	args := m.Called(ctx, ownerID, requesterID)
	return args.Error(0)
}

func (m *UserStoreMock) AcceptPrivateRequest(ctx context.Context, ownerID, requesterID string) error {
	args := m.Called(ctx, ownerID, requesterID)
	return args.Error(0)
}

func (m *UserStoreMock) RemovePrivateRequest(ctx context.Context, ownerID, requesterID string) error {
	args := m.Called(ctx, ownerID, requesterID)
	return args.Error(0)
}

func (m *UserStoreMock) RemovePrivateAccepted(ctx context.Context, ownerID, requesterID string) error {
	args := m.Called(ctx, ownerID, requesterID)
	return args.Error(0)
}

func (m *UserStoreMock) RecordReport(ctx context.Context, report *models.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

type MatchStoreMock struct {
	mock.Mock
}

func (m *MatchStoreMock) GetMatch(ctx context.Context, matchID string) (*models.MatchRecord, error) {
	args := m.Called(ctx, matchID)
	var match *models.MatchRecord
	if val := args.Get(0); val != nil {
		match = val.(*models.MatchRecord)
	}
	return match, args.Error(1)
}

func (m *MatchStoreMock) CreateMatch(ctx context.Context, actorID, targetID string, match *models.MatchRecord) error {
	args := m.Called(ctx, actorID, targetID, match)
	return args.Error(0)
}

func (m *MatchStoreMock) AppendMessage(ctx context.Context, matchID string, msg models.ChatMessage, recipientID string) error {
	args := m.Called(ctx, matchID, msg, recipientID)
	return args.Error(0)
}

func (m *MatchStoreMock) MarkRead(ctx context.Context, matchID, readerID string) error {
	args := m.Called(ctx, matchID, readerID)
	return args.Error(0)
}

func (m *MatchStoreMock) UnlinkUser(ctx context.Context, match *models.MatchRecord, userID string) error {
	args := m.Called(ctx, match, userID)
	return args.Error(0)
}

func (m *MatchStoreMock) DeleteMatch(ctx context.Context, match *models.MatchRecord, userID string) error {
	args := m.Called(ctx, match, userID)
	return args.Error(0)
}

type ProfileCacheMock struct {
	mock.Mock
}

func (m *ProfileCacheMock) GetSummary(ctx context.Context, userID string) (*models.ProfileSummary, bool) {
	args := m.Called(ctx, userID)
	var summary *models.ProfileSummary
	if val := args.Get(0); val != nil {
		summary = val.(*models.ProfileSummary)
	}
	return summary, args.Bool(1)
}

func (m *ProfileCacheMock) SetSummary(ctx context.Context, summary models.ProfileSummary) {
	m.Called(ctx, summary)
}

func (m *ProfileCacheMock) Invalidate(ctx context.Context, userID string) {
	m.Called(ctx, userID)
}
