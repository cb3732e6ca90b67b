// Package client defines the remote channel client: the transport boundary
// the rest of the client core consumes. Every failure crossing this boundary
// is classified into one of the sentinel kinds in internal/common; callers
// never see raw transport status codes.
package client

import (
	"context"

	"github.com/dmitrijs2005/lynkc/internal/client/models"
)

// CreateResult is the server's answer to a successful channel creation. The
// password is the effective one: what the caller supplied, or the generated
// one when the caller supplied none.
type CreateResult struct {
	ID         string
	Password   string
	TTLSeconds int64
}

type Client interface {
	Close() error
	Create(ctx context.Context, text string, files []models.File, password string) (*CreateResult, error)
	Fetch(ctx context.Context, id string, password string) (*models.Snapshot, error)
	Update(ctx context.Context, id string, password string, text string, files []models.File) error
	DeleteFile(ctx context.Context, id string, password string, fileID string) error
}
