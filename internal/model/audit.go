package model

import "time"

const (
	AuditActionSoftDelete = "SOFT_DELETE"
	AuditActionRestore    = "RESTORE"
	AuditActionDelete     = "DELETE"
	AuditActionCleanup    = "CLEANUP"
)

const (
	AuditStatusSuccess = "success"
	AuditStatusFailure = "failure"
)

type AuditActor struct {
	UserID   string `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	IP       string `json:"ip,omitempty"`
}

// AuditEntry records one trash transition. Writes are best-effort: a failed
// audit insert never fails the operation that produced it.
type AuditEntry struct {
	ID         string         `json:"id"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Actor      AuditActor     `json:"actor"`
	OccurredAt time.Time      `json:"occurred_at"`
	Status     string         `json:"status"`
	Error      string         `json:"error,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

type AuditQuery struct {
	Action     string
	EntityType string
	ActorID    string
	Status     string
	From       string
	To         string
	Page       int
	Limit      int
}

type AuditListData struct {
	Items []AuditEntry `json:"items"`
}
