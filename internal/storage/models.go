package storage

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity provides common fields for all stored documents.
type BaseEntity struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Entity is a document that knows its primary key, its secondary index
// keys and how to serialize itself.
type Entity interface {
	StorageKey() string
	StorageIndexes() []string
	MarshalStorage() ([]byte, error)
	UnmarshalStorage(data []byte) error
}
