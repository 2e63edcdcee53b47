package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"time"

	"flare_server/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// UserStore is the persistence boundary for user records. The write
// methods encode their set mutations as single atomic units (one document
// update, or one transaction when two records are touched) so partial
// states cannot be observed.
type UserStore interface {
	GetUser(ctx context.Context, userID string) (*models.UserRecord, error)
	PutUser(ctx context.Context, user *models.UserRecord) error
	UpdateFields(ctx context.Context, userID string, updates map[string]interface{}) (*models.UserRecord, error)
	ScanCandidates(ctx context.Context, keep func(models.UserRecord) bool, nextToken string, limit int32) ([]models.UserRecord, string, error)
	ArchiveUser(ctx context.Context, user *models.UserRecord) error

	ApplyLike(ctx context.Context, actorID, targetID string) error
	ApplyDecline(ctx context.Context, actorID, targetID string) error

	AddPrivateRequest(ctx context.Context, ownerID, requesterID string) error
	AcceptPrivateRequest(ctx context.Context, ownerID, requesterID string) error
	RemovePrivateRequest(ctx context.Context, ownerID, requesterID string) error
	RemovePrivateAccepted(ctx context.Context, ownerID, requesterID string) error

	RecordReport(ctx context.Context, report *models.Report) error
}

// DynamoUserStore implements UserStore on top of the Users table.
type DynamoUserStore struct {
	Dynamo *DynamoService
}

func userKey(userID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
}

func stringSet(ids ...string) *types.AttributeValueMemberSS {
	return &types.AttributeValueMemberSS{Value: ids}
}

// GetUser fetches and unmarshals a user record.
func (s *DynamoUserStore) GetUser(ctx context.Context, userID string) (*models.UserRecord, error) {
	item, err := s.Dynamo.GetItem(ctx, models.UsersTable, userKey(userID))
	if err != nil {
		return nil, models.ErrInternal("failed to fetch user", err, true)
	}
	if item == nil {
		return nil, models.ErrNotFound(fmt.Sprintf("user '%s' not found", userID))
	}

	var user models.UserRecord
	if err := attributevalue.UnmarshalMap(item, &user); err != nil {
		return nil, models.ErrInternal("failed to unmarshal user", err, false)
	}
	return &user, nil
}

// PutUser inserts a new user record, rejecting duplicate ids.
func (s *DynamoUserStore) PutUser(ctx context.Context, user *models.UserRecord) error {
	err := s.Dynamo.PutItem(ctx, models.UsersTable, user, "attribute_not_exists(userId)")
	if err != nil {
		if IsConditionalCheckFailed(err) {
			return models.ErrAlreadyExists(fmt.Sprintf("user '%s' already exists", user.UserID))
		}
		return models.ErrInternal("failed to create user", err, true)
	}
	return nil
}

// UpdateFields applies a SET update for each field in updates and returns
// the fresh record.
func (s *DynamoUserStore) UpdateFields(ctx context.Context, userID string, updates map[string]interface{}) (*models.UserRecord, error) {
	if len(updates) == 0 {
		return s.GetUser(ctx, userID)
	}

	updateExpression := "SET"
	expressionValues := make(map[string]types.AttributeValue)
	expressionNames := make(map[string]string)
	for k, v := range updates {
		placeholder := ":" + k
		attributeName := "#" + k
		updateExpression += " " + attributeName + " = " + placeholder + ","

		attr, err := attributevalue.Marshal(v)
		if err != nil {
			return nil, models.ErrInvalidArgument(fmt.Sprintf("invalid value for field '%s'", k))
		}
		expressionValues[placeholder] = attr
		expressionNames[attributeName] = k
	}
	updateExpression += " #updatedAt = :updatedAt"
	expressionValues[":updatedAt"] = &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)}
	expressionNames["#updatedAt"] = "updatedAt"

	item, err := s.Dynamo.UpdateItem(ctx, models.UsersTable, userKey(userID),
		updateExpression, "attribute_exists(userId)", expressionValues, expressionNames)
	if err != nil {
		if IsConditionalCheckFailed(err) {
			return nil, models.ErrNotFound(fmt.Sprintf("user '%s' not found", userID))
		}
		return nil, models.ErrInternal("failed to update user", err, true)
	}

	var user models.UserRecord
	if err := attributevalue.UnmarshalMap(item, &user); err != nil {
		return nil, models.ErrInternal("failed to unmarshal user", err, false)
	}
	return &user, nil
}

// ScanCandidates pages through the Users table, keeping records accepted by
// keep. Returns an opaque token to resume from, empty when exhausted.
func (s *DynamoUserStore) ScanCandidates(ctx context.Context, keep func(models.UserRecord) bool, nextToken string, limit int32) ([]models.UserRecord, string, error) {
	var startKey map[string]types.AttributeValue
	if nextToken != "" {
		decoded, err := base64.URLEncoding.DecodeString(nextToken)
		if err != nil {
			return nil, "", models.ErrInvalidArgument("invalid pagination token")
		}
		startKey = userKey(string(decoded))
	}

	var records []models.UserRecord
	lastKey, err := s.Dynamo.ScanWithFilter(ctx, models.UsersTable, func(item map[string]types.AttributeValue) bool {
		var user models.UserRecord
		if err := attributevalue.UnmarshalMap(item, &user); err != nil {
			log.Printf("Skipping unreadable user record: %v", err)
			return false
		}
		return keep(user)
	}, startKey, limit, &records)
	if err != nil {
		return nil, "", models.ErrInternal("failed to scan candidates", err, true)
	}

	token := ""
	if idAttr, ok := lastKey["userId"].(*types.AttributeValueMemberS); ok {
		token = base64.URLEncoding.EncodeToString([]byte(idAttr.Value))
	}
	return records, token, nil
}

// ArchiveUser writes the stripped stub to DeletedUsers and removes the
// Users record in one transaction.
func (s *DynamoUserStore) ArchiveUser(ctx context.Context, user *models.UserRecord) error {
	stub := models.DeletedUser{
		UserID:     user.UserID,
		EmailID:    user.EmailID,
		ArchivedAt: time.Now().UTC().Format(time.RFC3339),
	}
	stubItem, err := attributevalue.MarshalMap(stub)
	if err != nil {
		return models.ErrInternal("failed to marshal archive stub", err, false)
	}

	err = s.Dynamo.TransactWrite(ctx, []types.TransactWriteItem{
		{Put: &types.Put{
			TableName: aws.String(models.DeletedUsersTable),
			Item:      stubItem,
		}},
		{Delete: &types.Delete{
			TableName:           aws.String(models.UsersTable),
			Key:                 userKey(user.UserID),
			ConditionExpression: aws.String("attribute_exists(userId)"),
		}},
	})
	if err != nil {
		if IsConditionalCheckFailed(err) {
			return models.ErrNotFound(fmt.Sprintf("user '%s' not found", user.UserID))
		}
		return models.ErrInternal("failed to archive user", err, true)
	}
	log.Printf("Archived user %s", user.UserID)
	return nil
}

// ApplyLike records actor → target interest: both user records are updated
// in one transaction so a crash cannot leave the like half-applied.
func (s *DynamoUserStore) ApplyLike(ctx context.Context, actorID, targetID string) error {
	err := s.Dynamo.TransactWrite(ctx, []types.TransactWriteItem{
		{Update: &types.Update{
			TableName:           aws.String(models.UsersTable),
			Key:                 userKey(actorID),
			UpdateExpression:    aws.String("ADD likedUsers :t, hiddenProfiles :t"),
			ConditionExpression: aws.String("attribute_exists(userId)"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":t": stringSet(targetID),
			},
		}},
		{Update: &types.Update{
			TableName:           aws.String(models.UsersTable),
			Key:                 userKey(targetID),
			UpdateExpression:    aws.String("ADD receivedLikes :a"),
			ConditionExpression: aws.String("attribute_exists(userId)"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":a": stringSet(actorID),
			},
		}},
	})
	if err != nil {
		if IsConditionalCheckFailed(err) {
			return models.ErrNotFound("user not found")
		}
		// Set unions are idempotent, safe to retry.
		return models.ErrInternal("failed to apply like", err, true)
	}
	return nil
}

// ApplyDecline records actor → target rejection. The DELETE on
// receivedLikes covers a decline that follows a previously received like.
func (s *DynamoUserStore) ApplyDecline(ctx context.Context, actorID, targetID string) error {
	err := s.Dynamo.TransactWrite(ctx, []types.TransactWriteItem{
		{Update: &types.Update{
			TableName:           aws.String(models.UsersTable),
			Key:                 userKey(actorID),
			UpdateExpression:    aws.String("ADD declinedUsers :t, hiddenProfiles :t DELETE receivedLikes :t"),
			ConditionExpression: aws.String("attribute_exists(userId)"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":t": stringSet(targetID),
			},
		}},
		{Update: &types.Update{
			TableName:           aws.String(models.UsersTable),
			Key:                 userKey(targetID),
			UpdateExpression:    aws.String("ADD receivedDeclines :a"),
			ConditionExpression: aws.String("attribute_exists(userId)"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":a": stringSet(actorID),
			},
		}},
	})
	if err != nil {
		if IsConditionalCheckFailed(err) {
			return models.ErrNotFound("user not found")
		}
		return models.ErrInternal("failed to apply decline", err, true)
	}
	return nil
}

// AddPrivateRequest adds the requester to the owner's pending set. Repeat
// requests are a no-op through set union. The NOT contains(privateAccepted)
// condition enforces the not-already-granted precondition in the same
// write, so a concurrent accept cannot leave the requester in both sets.
func (s *DynamoUserStore) AddPrivateRequest(ctx context.Context, ownerID, requesterID string) error {
	_, err := s.Dynamo.UpdateItem(ctx, models.UsersTable, userKey(ownerID),
		"ADD privateRequests :r",
		"attribute_exists(userId) AND NOT contains(privateAccepted, :id)",
		map[string]types.AttributeValue{
			":r":  stringSet(requesterID),
			":id": &types.AttributeValueMemberS{Value: requesterID},
		}, nil)
	if err != nil {
		if IsConditionalCheckFailed(err) {
			// The caller verified the owner exists, so a failed condition
			// means access is already granted.
			return models.ErrInvalidArgument("access already granted")
		}
		return models.ErrInternal("failed to add access request", err, true)
	}
	return nil
}

// AcceptPrivateRequest moves the requester from privateRequests to
// privateAccepted in one update. The contains condition makes accepting a
// request that was never made a visible logic error instead of a silent
// success.
func (s *DynamoUserStore) AcceptPrivateRequest(ctx context.Context, ownerID, requesterID string) error {
	_, err := s.Dynamo.UpdateItem(ctx, models.UsersTable, userKey(ownerID),
		"ADD privateAccepted :r DELETE privateRequests :r",
		"attribute_exists(userId) AND contains(privateRequests, :id)",
		map[string]types.AttributeValue{
			":r":  stringSet(requesterID),
			":id": &types.AttributeValueMemberS{Value: requesterID},
		}, nil)
	if err != nil {
		if IsConditionalCheckFailed(err) {
			return models.ErrInvalidArgument(fmt.Sprintf("no pending request from '%s'", requesterID))
		}
		return models.ErrInternal("failed to accept access request", err, false)
	}
	return nil
}

// RemovePrivateRequest drops a pending request. Idempotent.
func (s *DynamoUserStore) RemovePrivateRequest(ctx context.Context, ownerID, requesterID string) error {
	_, err := s.Dynamo.UpdateItem(ctx, models.UsersTable, userKey(ownerID),
		"DELETE privateRequests :r", "attribute_exists(userId)",
		map[string]types.AttributeValue{":r": stringSet(requesterID)}, nil)
	if err != nil {
		if IsConditionalCheckFailed(err) {
			return models.ErrNotFound(fmt.Sprintf("user '%s' not found", ownerID))
		}
		return models.ErrInternal("failed to decline access request", err, true)
	}
	return nil
}

// RemovePrivateAccepted revokes granted access. Idempotent; the requester
// may request again afterwards.
func (s *DynamoUserStore) RemovePrivateAccepted(ctx context.Context, ownerID, requesterID string) error {
	_, err := s.Dynamo.UpdateItem(ctx, models.UsersTable, userKey(ownerID),
		"DELETE privateAccepted :r", "attribute_exists(userId)",
		map[string]types.AttributeValue{":r": stringSet(requesterID)}, nil)
	if err != nil {
		if IsConditionalCheckFailed(err) {
			return models.ErrNotFound(fmt.Sprintf("user '%s' not found", ownerID))
		}
		return models.ErrInternal("failed to revoke access", err, true)
	}
	return nil
}

// RecordReport stores a moderation report for the external moderation
// collaborator.
func (s *DynamoUserStore) RecordReport(ctx context.Context, report *models.Report) error {
	if err := s.Dynamo.PutItem(ctx, models.ReportsTable, report, ""); err != nil {
		return models.ErrInternal("failed to record report", err, true)
	}
	return nil
}
