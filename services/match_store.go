package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"flare_server/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrOtherAlreadyLeft is returned by UnlinkUser when the other participant
// is already in leftUsers, making the caller the last leaver. The caller
// must follow up with DeleteMatch.
var ErrOtherAlreadyLeft = errors.New("other participant already left")

// MatchStore is the persistence boundary for match records, the pair
// uniqueness markers, and the message log embedded in each match.
type MatchStore interface {
	GetMatch(ctx context.Context, matchID string) (*models.MatchRecord, error)
	CreateMatch(ctx context.Context, actorID, targetID string, match *models.MatchRecord) error
	AppendMessage(ctx context.Context, matchID string, msg models.ChatMessage, recipientID string) error
	MarkRead(ctx context.Context, matchID, readerID string) error
	UnlinkUser(ctx context.Context, match *models.MatchRecord, userID string) error
	DeleteMatch(ctx context.Context, match *models.MatchRecord, userID string) error
}

// DynamoMatchStore implements MatchStore on top of the Matches and
// MatchPairs tables.
type DynamoMatchStore struct {
	Dynamo *DynamoService
}

func matchKey(matchID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"matchId": &types.AttributeValueMemberS{Value: matchID},
	}
}

func pairKeyAttr(pairKey string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"pairKey": &types.AttributeValueMemberS{Value: pairKey},
	}
}

// GetMatch fetches and unmarshals a match record.
func (s *DynamoMatchStore) GetMatch(ctx context.Context, matchID string) (*models.MatchRecord, error) {
	item, err := s.Dynamo.GetItem(ctx, models.MatchesTable, matchKey(matchID))
	if err != nil {
		return nil, models.ErrInternal("failed to fetch match", err, true)
	}
	if item == nil {
		return nil, models.ErrNotFound(fmt.Sprintf("match '%s' not found", matchID))
	}

	var match models.MatchRecord
	if err := attributevalue.UnmarshalMap(item, &match); err != nil {
		return nil, models.ErrInternal("failed to unmarshal match", err, false)
	}
	return &match, nil
}

// CreateMatch commits a mutual match as one transaction across four items:
// the pair marker (attribute_not_exists dedupes concurrent match attempts
// for the same pair), the match record, the actor's record (conditioned on
// the received like it consumes), and the target's record. Either every
// write lands or none does.
func (s *DynamoMatchStore) CreateMatch(ctx context.Context, actorID, targetID string, match *models.MatchRecord) error {
	matchItem, err := attributevalue.MarshalMap(match)
	if err != nil {
		return models.ErrInternal("failed to marshal match", err, false)
	}
	pair := models.MatchPair{
		PairKey:   match.PairKey,
		MatchID:   match.MatchID,
		CreatedAt: match.CreatedAt,
	}
	pairItem, err := attributevalue.MarshalMap(pair)
	if err != nil {
		return models.ErrInternal("failed to marshal pair marker", err, false)
	}

	err = s.Dynamo.TransactWrite(ctx, []types.TransactWriteItem{
		{Put: &types.Put{
			TableName:           aws.String(models.MatchPairsTable),
			Item:                pairItem,
			ConditionExpression: aws.String("attribute_not_exists(pairKey)"),
		}},
		{Put: &types.Put{
			TableName:           aws.String(models.MatchesTable),
			Item:                matchItem,
			ConditionExpression: aws.String("attribute_not_exists(matchId)"),
		}},
		{Update: &types.Update{
			TableName:           aws.String(models.UsersTable),
			Key:                 userKey(actorID),
			UpdateExpression:    aws.String("ADD matches :m, hiddenProfiles :t DELETE receivedLikes :t"),
			ConditionExpression: aws.String("attribute_exists(userId) AND contains(receivedLikes, :id)"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":m":  stringSet(match.MatchID),
				":t":  stringSet(targetID),
				":id": &types.AttributeValueMemberS{Value: targetID},
			},
		}},
		{Update: &types.Update{
			TableName:           aws.String(models.UsersTable),
			Key:                 userKey(targetID),
			UpdateExpression:    aws.String("ADD matches :m"),
			ConditionExpression: aws.String("attribute_exists(userId)"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":m": stringSet(match.MatchID),
			},
		}},
	})
	if err != nil {
		for _, idx := range CancelledReasonIndexes(err) {
			switch idx {
			case 0:
				return models.ErrAlreadyExists("a match already exists for this pair")
			case 2:
				return models.ErrInvalidArgument(fmt.Sprintf("'%s' has no pending like from '%s'", actorID, targetID))
			case 3:
				return models.ErrNotFound(fmt.Sprintf("user '%s' not found", targetID))
			}
		}
		// Not retryable without a dedupe key: a blind retry could mint a
		// second match id for the pair.
		return models.ErrInternal("failed to create match", err, false)
	}

	log.Printf("Match %s created for pair %s", match.MatchID, match.PairKey)
	return nil
}

// AppendMessage appends to the message log and refreshes the preview, the
// last-message timestamp, and the recipient's read flag as a single
// document update, so readers never observe them out of step.
func (s *DynamoMatchStore) AppendMessage(ctx context.Context, matchID string, msg models.ChatMessage, recipientID string) error {
	msgAttr, err := attributevalue.Marshal(msg)
	if err != nil {
		return models.ErrInternal("failed to marshal message", err, false)
	}

	_, err = s.Dynamo.UpdateItem(ctx, models.MatchesTable, matchKey(matchID),
		"SET messages = list_append(if_not_exists(messages, :empty), :msg), messagePreview = :preview, lastMessageAt = :at, #read.#recipient = :false",
		"attribute_exists(matchId) AND contains(users, :sender)",
		map[string]types.AttributeValue{
			":empty":   &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":msg":     &types.AttributeValueMemberL{Value: []types.AttributeValue{msgAttr}},
			":preview": &types.AttributeValueMemberS{Value: msg.Text},
			":at":      &types.AttributeValueMemberS{Value: msg.SentAt},
			":false":   &types.AttributeValueMemberBOOL{Value: false},
			":sender":  &types.AttributeValueMemberS{Value: msg.SenderID},
		},
		map[string]string{
			"#read":      "read",
			"#recipient": recipientID,
		})
	if err != nil {
		if IsConditionalCheckFailed(err) {
			return models.ErrPermissionDenied(fmt.Sprintf("'%s' is not a participant of match '%s'", msg.SenderID, matchID))
		}
		// A blind retry could duplicate the append.
		return models.ErrInternal("failed to append message", err, false)
	}
	return nil
}

// MarkRead flips the reader's read flag to true.
func (s *DynamoMatchStore) MarkRead(ctx context.Context, matchID, readerID string) error {
	_, err := s.Dynamo.UpdateItem(ctx, models.MatchesTable, matchKey(matchID),
		"SET #read.#reader = :true",
		"attribute_exists(matchId) AND contains(users, :reader)",
		map[string]types.AttributeValue{
			":true":   &types.AttributeValueMemberBOOL{Value: true},
			":reader": &types.AttributeValueMemberS{Value: readerID},
		},
		map[string]string{
			"#read":   "read",
			"#reader": readerID,
		})
	if err != nil {
		if IsConditionalCheckFailed(err) {
			return models.ErrPermissionDenied(fmt.Sprintf("'%s' is not a participant of match '%s'", readerID, matchID))
		}
		return models.ErrInternal("failed to mark read", err, true)
	}
	return nil
}

// UnlinkUser removes the match from userID's matches set and records them
// in the match's leftUsers set, in one transaction. The record survives for
// the other participant. The NOT contains(leftUsers, :other) condition
// makes the last-leaver decision atomic: when two deletes race past the
// same read, the loser's unlink fails here and must hard-delete instead.
func (s *DynamoMatchStore) UnlinkUser(ctx context.Context, match *models.MatchRecord, userID string) error {
	other := match.OtherUser(userID)
	err := s.Dynamo.TransactWrite(ctx, []types.TransactWriteItem{
		{Update: &types.Update{
			TableName:           aws.String(models.MatchesTable),
			Key:                 matchKey(match.MatchID),
			UpdateExpression:    aws.String("ADD leftUsers :u"),
			ConditionExpression: aws.String("attribute_exists(matchId) AND contains(users, :id) AND NOT contains(leftUsers, :other)"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":u":     stringSet(userID),
				":id":    &types.AttributeValueMemberS{Value: userID},
				":other": &types.AttributeValueMemberS{Value: other},
			},
		}},
		{Update: &types.Update{
			TableName:        aws.String(models.UsersTable),
			Key:              userKey(userID),
			UpdateExpression: aws.String("DELETE matches :m"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":m": stringSet(match.MatchID),
			},
		}},
	})
	if err != nil {
		if IsConditionalCheckFailed(err) {
			// The caller verified existence and membership from its read, so
			// a failed condition means the other side left in the meantime.
			// leftUsers only grows, so the signal cannot go stale.
			return ErrOtherAlreadyLeft
		}
		return models.ErrInternal("failed to leave match", err, true)
	}
	return nil
}

// DeleteMatch removes the match record, its pair marker, and the last
// participant's reference in one transaction. Called when the second
// participant leaves.
func (s *DynamoMatchStore) DeleteMatch(ctx context.Context, match *models.MatchRecord, userID string) error {
	err := s.Dynamo.TransactWrite(ctx, []types.TransactWriteItem{
		{Delete: &types.Delete{
			TableName: aws.String(models.MatchesTable),
			Key:       matchKey(match.MatchID),
		}},
		{Delete: &types.Delete{
			TableName: aws.String(models.MatchPairsTable),
			Key:       pairKeyAttr(match.PairKey),
		}},
		{Update: &types.Update{
			TableName:        aws.String(models.UsersTable),
			Key:              userKey(userID),
			UpdateExpression: aws.String("DELETE matches :m"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":m": stringSet(match.MatchID),
			},
		}},
	})
	if err != nil {
		return models.ErrInternal("failed to delete match", err, true)
	}
	log.Printf("Match %s deleted", match.MatchID)
	return nil
}
