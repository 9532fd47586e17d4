package ports

import (
	"context"
	"io"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
)

// Upload kinds.
const (
	UploadResume    = "resume"
	UploadPortfolio = "portfolio"
	UploadLogo      = "logo"
)

// UploadInput describes a file received from the client.
type UploadInput struct {
	Kind        string
	Title       string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadResult is returned after the object is stored.
type UploadResult struct {
	Key           string
	URL           string
	PortfolioItem *domain.PortfolioItem
}

// UploadService stores user files and records them on profiles.
type UploadService interface {
	Upload(ctx context.Context, caller *domain.Identity, input UploadInput) (*UploadResult, error)
	ListPortfolio(ctx context.Context, caller *domain.Identity) ([]*domain.PortfolioItem, error)
	DeletePortfolioItem(ctx context.Context, caller *domain.Identity, id int64) error
}
