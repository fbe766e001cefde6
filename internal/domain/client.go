package domain

import (
	"context"
	"time"
)

// Client is a person or family a matter is handled for.
type Client struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientRepository defines the interface for client storage.
type ClientRepository interface {
	Create(ctx context.Context, client *Client) error
	GetByID(ctx context.Context, id int64) (*Client, error)
	Source() PageSource[*Client]
}

// ClientService lists, reads and creates clients.
type ClientService interface {
	ListClients(ctx context.Context, req PageRequest) (Page[*Client], error)
	GetClient(ctx context.Context, id int64) (*Client, error)
	CreateClient(ctx context.Context, client *Client) error
}
