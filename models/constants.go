package models

// Interaction actions applied by the interaction engine
const (
	ActionLike    = "like"
	ActionDecline = "decline"
	ActionMatch   = "match"
)

// Private-album access states for the requester → owner relationship
const (
	AccessNotRequested = "not_requested"
	AccessRequested    = "requested"
	AccessAccepted     = "accepted"
)

// Report represents a moderation report recorded for the external
// moderation collaborator. No enforcement happens in this service.
type Report struct {
	ReportID   string `dynamodbav:"reportId" json:"reportId"` // ✅ Partition Key
	ReporterID string `dynamodbav:"reporterId" json:"reporterId"`
	ReportedID string `dynamodbav:"reportedId" json:"reportedId"`
	Reason     string `dynamodbav:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt  string `dynamodbav:"createdAt" json:"createdAt"`
}

// ReportsTable is the DynamoDB table name for moderation reports
const ReportsTable = "Reports"
