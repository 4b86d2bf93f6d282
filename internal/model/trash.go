package model

import (
	"encoding/json"
	"time"
)

// Entity kinds the trash bin knows how to restore. The tag stored in
// item_type must match one of these for a restore to dispatch.
const (
	ItemKindUser            = "User"
	ItemKindJobPost         = "JobPost"
	ItemKindCommunityThread = "CommunityThread"
	ItemKindBlogPost        = "BlogPost"
	ItemKindChallenge       = "Challenge"
)

// TrashRecord is a soft-deleted entity snapshot. A record is live until it is
// either restored or permanently deleted; rows are never erased, only flagged.
type TrashRecord struct {
	ID                 string          `json:"id"`
	ItemType           string          `json:"item_type"`
	ItemID             string          `json:"item_id"`
	ItemData           json.RawMessage `json:"item_data"`
	DeletedBy          string          `json:"deleted_by"`
	DeletedAt          time.Time       `json:"deleted_at"`
	ExpiresAt          time.Time       `json:"expires_at"`
	Restored           bool            `json:"restored"`
	RestoredAt         *time.Time      `json:"restored_at,omitempty"`
	PermanentlyDeleted bool            `json:"permanently_deleted"`
}

type TrashQuery struct {
	ItemType string
	Page     int
	Limit    int
}

const (
	TrashActionRestore = "restore"
	TrashActionDelete  = "delete"
)
