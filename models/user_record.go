package models

// UserRecord defines the structure for user records in the Users table.
// Set-fields are stored as native DynamoDB string sets so that ADD/DELETE
// update actions give real set semantics (idempotent union, O(1) removal).
type UserRecord struct {
	UserID        string   `dynamodbav:"userId" json:"userId"` // ✅ Partition Key
	EmailID       string   `dynamodbav:"emailId,omitempty" json:"emailId,omitempty"`
	Name          string   `dynamodbav:"name,omitempty" json:"name,omitempty"`
	Age           int      `dynamodbav:"age,omitempty" json:"age,omitempty"`
	Bio           string   `dynamodbav:"bio,omitempty" json:"bio,omitempty"`
	Gender        string   `dynamodbav:"gender,omitempty" json:"gender,omitempty"`
	InterestedIn  []string `dynamodbav:"interestedIn,stringset,omitempty" json:"interestedIn,omitempty"`
	Photos        []string `dynamodbav:"photos,omitempty" json:"photos,omitempty"`               // ordered
	PrivatePhotos []string `dynamodbav:"privatePhotos,omitempty" json:"privatePhotos,omitempty"` // ordered, gated by privateAccepted

	// Interaction set-fields. A target appears in at most one of
	// likedUsers/declinedUsers, and always in hiddenProfiles once acted on.
	LikedUsers       []string `dynamodbav:"likedUsers,stringset,omitempty" json:"likedUsers,omitempty"`
	DeclinedUsers    []string `dynamodbav:"declinedUsers,stringset,omitempty" json:"declinedUsers,omitempty"`
	ReceivedLikes    []string `dynamodbav:"receivedLikes,stringset,omitempty" json:"receivedLikes,omitempty"`
	ReceivedDeclines []string `dynamodbav:"receivedDeclines,stringset,omitempty" json:"receivedDeclines,omitempty"`
	HiddenProfiles   []string `dynamodbav:"hiddenProfiles,stringset,omitempty" json:"hiddenProfiles,omitempty"`
	Matches          []string `dynamodbav:"matches,stringset,omitempty" json:"matches,omitempty"`

	// Private-album access sets.
	PrivateRequests []string `dynamodbav:"privateRequests,stringset,omitempty" json:"privateRequests,omitempty"`
	PrivateAccepted []string `dynamodbav:"privateAccepted,stringset,omitempty" json:"privateAccepted,omitempty"`

	Paused    bool   `dynamodbav:"paused,omitempty" json:"paused,omitempty"` // excluded from candidate lookup when true
	CreatedAt string `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt string `dynamodbav:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// ProfileSummary is the trimmed view of a user returned in match lists and
// candidate feeds.
type ProfileSummary struct {
	UserID string `json:"userId"`
	Name   string `json:"name,omitempty"`
	Age    int    `json:"age,omitempty"`
	Gender string `json:"gender,omitempty"`
	Bio    string `json:"bio,omitempty"`
	Photo  string `json:"photo,omitempty"` // first public photo
}

// Summary trims a full record down to its public summary.
func (u *UserRecord) Summary() ProfileSummary {
	s := ProfileSummary{
		UserID: u.UserID,
		Name:   u.Name,
		Age:    u.Age,
		Gender: u.Gender,
		Bio:    u.Bio,
	}
	if len(u.Photos) > 0 {
		s.Photo = u.Photos[0]
	}
	return s
}

// HasSet reports whether id is present in the given set-field values.
func HasSet(set []string, id string) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}

// DeletedUser is the stripped archive stub written to the DeletedUsers
// table when an account is removed.
type DeletedUser struct {
	UserID     string `dynamodbav:"userId" json:"userId"` // ✅ Partition Key
	EmailID    string `dynamodbav:"emailId,omitempty" json:"emailId,omitempty"`
	ArchivedAt string `dynamodbav:"archivedAt" json:"archivedAt"`
}

// UsersTable is the DynamoDB table name for user records
const UsersTable = "Users"

// DeletedUsersTable is the DynamoDB table name for archived account stubs
const DeletedUsersTable = "DeletedUsers"
