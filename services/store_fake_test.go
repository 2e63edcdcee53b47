package services

import (
	"context"
	"sort"
	"sync"

	"flare_server/models"
)

// fakeUserStore is an in-memory UserStore with the same set semantics and
// conditional-write behavior as DynamoUserStore.
type fakeUserStore struct {
	mu       sync.Mutex
	users    map[string]*models.UserRecord
	archived map[string]models.DeletedUser
	reports  []models.Report
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:    make(map[string]*models.UserRecord),
		archived: make(map[string]models.DeletedUser),
	}
}

func (f *fakeUserStore) seed(ids ...string) {
	for _, id := range ids {
		f.users[id] = &models.UserRecord{UserID: id, Name: "user " + id}
	}
}

func addToSet(set []string, ids ...string) []string {
	for _, id := range ids {
		if !models.HasSet(set, id) {
			set = append(set, id)
		}
	}
	return set
}

func removeFromSet(set []string, id string) []string {
	out := set[:0]
	for _, v := range set {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func copyUser(u *models.UserRecord) *models.UserRecord {
	c := *u
	c.InterestedIn = append([]string(nil), u.InterestedIn...)
	c.Photos = append([]string(nil), u.Photos...)
	c.PrivatePhotos = append([]string(nil), u.PrivatePhotos...)
	c.LikedUsers = append([]string(nil), u.LikedUsers...)
	c.DeclinedUsers = append([]string(nil), u.DeclinedUsers...)
	c.ReceivedLikes = append([]string(nil), u.ReceivedLikes...)
	c.ReceivedDeclines = append([]string(nil), u.ReceivedDeclines...)
	c.HiddenProfiles = append([]string(nil), u.HiddenProfiles...)
	c.Matches = append([]string(nil), u.Matches...)
	c.PrivateRequests = append([]string(nil), u.PrivateRequests...)
	c.PrivateAccepted = append([]string(nil), u.PrivateAccepted...)
	return &c
}

func (f *fakeUserStore) GetUser(ctx context.Context, userID string) (*models.UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return nil, models.ErrNotFound("user '" + userID + "' not found")
	}
	return copyUser(user), nil
}

func (f *fakeUserStore) PutUser(ctx context.Context, user *models.UserRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.UserID]; ok {
		return models.ErrAlreadyExists("user '" + user.UserID + "' already exists")
	}
	f.users[user.UserID] = copyUser(user)
	return nil
}

func (f *fakeUserStore) UpdateFields(ctx context.Context, userID string, updates map[string]interface{}) (*models.UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return nil, models.ErrNotFound("user '" + userID + "' not found")
	}
	for k, v := range updates {
		switch k {
		case "name":
			user.Name = v.(string)
		case "bio":
			user.Bio = v.(string)
		case "age":
			user.Age = v.(int)
		case "gender":
			user.Gender = v.(string)
		case "paused":
			user.Paused = v.(bool)
		case "photos":
			user.Photos = append([]string(nil), v.([]string)...)
		case "privatePhotos":
			user.PrivatePhotos = append([]string(nil), v.([]string)...)
		case "interestedIn":
			user.InterestedIn = append([]string(nil), v.([]string)...)
		}
	}
	return copyUser(user), nil
}

func (f *fakeUserStore) ScanCandidates(ctx context.Context, keep func(models.UserRecord) bool, nextToken string, limit int32) ([]models.UserRecord, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, 0, len(f.users))
	for id := range f.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var records []models.UserRecord
	for _, id := range ids {
		if int32(len(records)) >= limit {
			break
		}
		if keep(*f.users[id]) {
			records = append(records, *copyUser(f.users[id]))
		}
	}
	return records, "", nil
}

func (f *fakeUserStore) ArchiveUser(ctx context.Context, user *models.UserRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.UserID]; !ok {
		return models.ErrNotFound("user '" + user.UserID + "' not found")
	}
	f.archived[user.UserID] = models.DeletedUser{UserID: user.UserID, EmailID: user.EmailID}
	delete(f.users, user.UserID)
	return nil
}

func (f *fakeUserStore) ApplyLike(ctx context.Context, actorID, targetID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	actor, target := f.users[actorID], f.users[targetID]
	if actor == nil || target == nil {
		return models.ErrNotFound("user not found")
	}
	actor.LikedUsers = addToSet(actor.LikedUsers, targetID)
	actor.HiddenProfiles = addToSet(actor.HiddenProfiles, targetID)
	target.ReceivedLikes = addToSet(target.ReceivedLikes, actorID)
	return nil
}

func (f *fakeUserStore) ApplyDecline(ctx context.Context, actorID, targetID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	actor, target := f.users[actorID], f.users[targetID]
	if actor == nil || target == nil {
		return models.ErrNotFound("user not found")
	}
	actor.DeclinedUsers = addToSet(actor.DeclinedUsers, targetID)
	actor.HiddenProfiles = addToSet(actor.HiddenProfiles, targetID)
	actor.ReceivedLikes = removeFromSet(actor.ReceivedLikes, targetID)
	target.ReceivedDeclines = addToSet(target.ReceivedDeclines, actorID)
	return nil
}

func (f *fakeUserStore) AddPrivateRequest(ctx context.Context, ownerID, requesterID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	owner, ok := f.users[ownerID]
	if !ok {
		return models.ErrNotFound("user '" + ownerID + "' not found")
	}
	if models.HasSet(owner.PrivateAccepted, requesterID) {
		return models.ErrInvalidArgument("access already granted")
	}
	owner.PrivateRequests = addToSet(owner.PrivateRequests, requesterID)
	return nil
}

func (f *fakeUserStore) AcceptPrivateRequest(ctx context.Context, ownerID, requesterID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	owner, ok := f.users[ownerID]
	if !ok || !models.HasSet(owner.PrivateRequests, requesterID) {
		return models.ErrInvalidArgument("no pending request from '" + requesterID + "'")
	}
	owner.PrivateRequests = removeFromSet(owner.PrivateRequests, requesterID)
	owner.PrivateAccepted = addToSet(owner.PrivateAccepted, requesterID)
	return nil
}

func (f *fakeUserStore) RemovePrivateRequest(ctx context.Context, ownerID, requesterID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	owner, ok := f.users[ownerID]
	if !ok {
		return models.ErrNotFound("user '" + ownerID + "' not found")
	}
	owner.PrivateRequests = removeFromSet(owner.PrivateRequests, requesterID)
	return nil
}

func (f *fakeUserStore) RemovePrivateAccepted(ctx context.Context, ownerID, requesterID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	owner, ok := f.users[ownerID]
	if !ok {
		return models.ErrNotFound("user '" + ownerID + "' not found")
	}
	owner.PrivateAccepted = removeFromSet(owner.PrivateAccepted, requesterID)
	return nil
}

func (f *fakeUserStore) RecordReport(ctx context.Context, report *models.Report) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports = append(f.reports, *report)
	return nil
}

// fakeMatchStore is an in-memory MatchStore. Like the DynamoDB transaction
// it mirrors, CreateMatch / UnlinkUser / DeleteMatch also apply the
// user-side updates, through the paired fakeUserStore.
type fakeMatchStore struct {
	mu      sync.Mutex
	users   *fakeUserStore
	matches map[string]*models.MatchRecord
	pairs   map[string]string
}

func newFakeMatchStore(users *fakeUserStore) *fakeMatchStore {
	return &fakeMatchStore{
		users:   users,
		matches: make(map[string]*models.MatchRecord),
		pairs:   make(map[string]string),
	}
}

func copyMatch(m *models.MatchRecord) *models.MatchRecord {
	c := *m
	c.Users = append([]string(nil), m.Users...)
	c.Messages = append([]models.ChatMessage(nil), m.Messages...)
	c.LeftUsers = append([]string(nil), m.LeftUsers...)
	c.Read = make(map[string]bool, len(m.Read))
	for k, v := range m.Read {
		c.Read[k] = v
	}
	return &c
}

func (f *fakeMatchStore) GetMatch(ctx context.Context, matchID string) (*models.MatchRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	match, ok := f.matches[matchID]
	if !ok {
		return nil, models.ErrNotFound("match '" + matchID + "' not found")
	}
	return copyMatch(match), nil
}

func (f *fakeMatchStore) CreateMatch(ctx context.Context, actorID, targetID string, match *models.MatchRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, taken := f.pairs[match.PairKey]; taken {
		return models.ErrAlreadyExists("match already exists for this pair")
	}

	f.users.mu.Lock()
	defer f.users.mu.Unlock()
	actor, target := f.users.users[actorID], f.users.users[targetID]
	if actor == nil || target == nil {
		return models.ErrNotFound("user not found")
	}
	if !models.HasSet(actor.ReceivedLikes, targetID) {
		return models.ErrInvalidArgument("no pending like from this user")
	}

	f.pairs[match.PairKey] = match.MatchID
	f.matches[match.MatchID] = copyMatch(match)
	actor.Matches = addToSet(actor.Matches, match.MatchID)
	actor.HiddenProfiles = addToSet(actor.HiddenProfiles, targetID)
	actor.ReceivedLikes = removeFromSet(actor.ReceivedLikes, targetID)
	target.Matches = addToSet(target.Matches, match.MatchID)
	return nil
}

func (f *fakeMatchStore) AppendMessage(ctx context.Context, matchID string, msg models.ChatMessage, recipientID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	match, ok := f.matches[matchID]
	if !ok {
		return models.ErrNotFound("match '" + matchID + "' not found")
	}
	if !match.HasUser(msg.SenderID) {
		return models.ErrPermissionDenied("sender is not a participant of this match")
	}
	match.Messages = append(match.Messages, msg)
	match.MessagePreview = msg.Text
	match.LastMessageAt = msg.SentAt
	if match.Read == nil {
		match.Read = make(map[string]bool)
	}
	match.Read[recipientID] = false
	return nil
}

func (f *fakeMatchStore) MarkRead(ctx context.Context, matchID, readerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	match, ok := f.matches[matchID]
	if !ok {
		return models.ErrNotFound("match '" + matchID + "' not found")
	}
	if match.Read == nil {
		match.Read = make(map[string]bool)
	}
	match.Read[readerID] = true
	return nil
}

func (f *fakeMatchStore) UnlinkUser(ctx context.Context, match *models.MatchRecord, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.matches[match.MatchID]
	if !ok || models.HasSet(stored.LeftUsers, match.OtherUser(userID)) {
		return ErrOtherAlreadyLeft
	}
	stored.LeftUsers = addToSet(stored.LeftUsers, userID)

	f.users.mu.Lock()
	defer f.users.mu.Unlock()
	if user, ok := f.users.users[userID]; ok {
		user.Matches = removeFromSet(user.Matches, match.MatchID)
	}
	return nil
}

func (f *fakeMatchStore) DeleteMatch(ctx context.Context, match *models.MatchRecord, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.matches, match.MatchID)
	delete(f.pairs, match.PairKey)

	f.users.mu.Lock()
	defer f.users.mu.Unlock()
	if user, ok := f.users.users[userID]; ok {
		user.Matches = removeFromSet(user.Matches, match.MatchID)
	}
	return nil
}
