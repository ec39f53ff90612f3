// Package activity holds the append-only audit log of user actions.
package activity

import (
	"time"

	"github.com/google/uuid"
)

// Known action labels. The label is free-form; these are the ones the
// application produces or seeds.
const (
	ActionLogin       = "Login"
	ActionImageUpload = "Image Upload"
	ActionImageStitch = "Image Stitch"
)

// Entry is an immutable audit record. UserID references an account by id
// without owning it; the account may no longer exist.
type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	Details   string    `json:"details"`
}

// NewEntry creates an entry with a fresh unique id
func NewEntry(userID, action, details string, at time.Time) Entry {
	return Entry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Timestamp: at,
		Details:   details,
	}
}

// Reader is the read-only view of the log
type Reader interface {
	// List returns the entries most recent first
	List() []Entry
	Count() int
}

// Repo is the log owned by the session manager. Entries can only be added.
type Repo interface {
	Reader
	Prepend(entry Entry) error
}

// SeedEntries returns the fixed activity history the log starts with when no
// persistent store is configured, most recent first.
func SeedEntries(now time.Time) []Entry {
	return []Entry{
		{
			ID:        "1",
			UserID:    "2",
			Action:    ActionImageUpload,
			Timestamp: now.Add(-1 * time.Hour),
			Details:   "Uploaded 3 images for stitching",
		},
		{
			ID:        "2",
			UserID:    "3",
			Action:    ActionImageStitch,
			Timestamp: now.Add(-2 * time.Hour),
			Details:   "Successfully stitched panorama image",
		},
		{
			ID:        "3",
			UserID:    "2",
			Action:    ActionLogin,
			Timestamp: now.Add(-24 * time.Hour),
			Details:   "User logged in",
		},
	}
}
