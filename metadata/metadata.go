package metadata

import (
	"context"
	"time"
)

// Project is the plain payload handed off to the metadata store after a
// successful on-ledger operation.
type Project struct {
	ID           string    `bson:"id" json:"id"`
	Title        string    `bson:"title" json:"title"`
	Description  string    `bson:"description" json:"description"`
	Goal         int64     `bson:"goal" json:"goal"`
	OwnerAddress string    `bson:"owner_address" json:"owner_address"`
	TxHash       string    `bson:"tx_hash" json:"tx_hash"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

type Store interface {
	CreateProject(ctx context.Context, project Project) error
	UpdateProject(ctx context.Context, project Project) error
	// GetProject returns nil without error when the id is unknown.
	GetProject(ctx context.Context, id string) (*Project, error)
	Close(ctx context.Context) error
}
