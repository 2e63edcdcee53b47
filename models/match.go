package models

import (
	"sort"
	"strings"
)

// ChatMessage is a single entry in a match's append-only message log.
type ChatMessage struct {
	SenderID string `dynamodbav:"senderId" json:"senderId"`
	Text     string `dynamodbav:"text" json:"text"`
	SentAt   string `dynamodbav:"sentAt" json:"sentAt"`
}

// MatchRecord represents a mutual match between two users.
// Users is immutable after creation; messages are append-only and the
// preview/lastMessageAt/read fields are updated in the same write as every
// append.
type MatchRecord struct {
	MatchID        string          `dynamodbav:"matchId" json:"matchId"` // ✅ Partition Key
	Users          []string        `dynamodbav:"users,stringset" json:"users"`
	PairKey        string          `dynamodbav:"pairKey" json:"pairKey"`
	Messages       []ChatMessage   `dynamodbav:"messages,omitempty" json:"messages,omitempty"`
	MessagePreview string          `dynamodbav:"messagePreview,omitempty" json:"messagePreview,omitempty"`
	LastMessageAt  string          `dynamodbav:"lastMessageAt,omitempty" json:"lastMessageAt,omitempty"`
	Read           map[string]bool `dynamodbav:"read" json:"read"`
	LeftUsers      []string        `dynamodbav:"leftUsers,stringset,omitempty" json:"leftUsers,omitempty"`
	CreatedAt      string          `dynamodbav:"createdAt" json:"createdAt"`
}

// OtherUser returns the participant that is not userID, or "" when userID
// is not a participant.
func (m *MatchRecord) OtherUser(userID string) string {
	for _, u := range m.Users {
		if u != userID {
			return u
		}
	}
	return ""
}

// HasUser reports whether userID participates in the match.
func (m *MatchRecord) HasUser(userID string) bool {
	return HasSet(m.Users, userID)
}

// MatchPair is the uniqueness marker keyed by the sorted user pair. It is
// created and deleted in the same transactions as its MatchRecord, so at
// most one live match can exist per pair.
type MatchPair struct {
	PairKey   string `dynamodbav:"pairKey" json:"pairKey"` // ✅ Partition Key
	MatchID   string `dynamodbav:"matchId" json:"matchId"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// PairKey builds the canonical key for an unordered user pair.
func PairKey(userA, userB string) string {
	ids := []string{userA, userB}
	sort.Strings(ids)
	return strings.Join(ids, "#")
}

// MatchWithProfile combines a match's denormalized chat fields with the
// other participant's profile summary, for match-list rendering.
type MatchWithProfile struct {
	MatchID        string         `json:"matchId"`
	Profile        ProfileSummary `json:"profile"`
	MessagePreview string         `json:"messagePreview,omitempty"`
	LastMessageAt  string         `json:"lastMessageAt,omitempty"`
	Read           bool           `json:"read"`
	CreatedAt      string         `json:"createdAt"`
}

// MatchesTable is the DynamoDB table name for match records
const MatchesTable = "Matches"

// MatchPairsTable is the DynamoDB table name for pair-uniqueness markers
const MatchPairsTable = "MatchPairs"
