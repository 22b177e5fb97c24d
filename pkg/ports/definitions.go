package ports

import (
	"context"

	"github.com/wadjakorntonsri/linkshelf/pkg/core/domain"
)

// UserRepository defines storage operations for accounts
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error) // nil, nil when absent
}

// LinkRepository defines storage operations for links
type LinkRepository interface {
	CreateLink(ctx context.Context, link *domain.Link) error
	ListLinksByUser(ctx context.Context, userID int64) ([]domain.Link, error)
}

// AuthService defines registration and token issuing
type AuthService interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, error)
	Authenticate(token string) (int64, error)
}

// LinkService defines the per-user link operations
type LinkService interface {
	ListLinks(ctx context.Context, userID int64) ([]domain.Link, error)
	AddLink(ctx context.Context, userID int64, title, url string) (*domain.Link, error)
}

// TokenStore is the durable slot holding the client's access token.
type TokenStore interface {
	Load(ctx context.Context) (token string, ok bool, err error)
	Save(ctx context.Context, token string) error
	Delete(ctx context.Context) error
}

// LinkAPI is the remote backend as seen by the client.
type LinkAPI interface {
	TestConnection(ctx context.Context) (string, error)
	Login(ctx context.Context, creds domain.Credentials) (string, error)
	Register(ctx context.Context, creds domain.Credentials) error
	ListLinks(ctx context.Context, token string) ([]domain.Link, error)
	AddLink(ctx context.Context, token string, draft domain.LinkDraft) error
}
