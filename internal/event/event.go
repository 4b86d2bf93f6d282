package event

type Type string

const (
	TypeTrashSoftDeleted Type = "trash.soft_deleted"
	TypeTrashRestored    Type = "trash.restored"
	TypeTrashPurged      Type = "trash.purged"
	TypeTrashSwept       Type = "trash.swept"
)

type Event struct {
	ID        string      `json:"id"`
	Type      Type        `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp string      `json:"timestamp"`
	ActorID   string      `json:"actor_id,omitempty"`
}

type Bus interface {
	Publish(e Event)
	Subscribe() (<-chan Event, func())
}
