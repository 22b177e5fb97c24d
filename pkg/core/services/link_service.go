package services

import (
	"context"
	"errors"
	"strings"

	"github.com/wadjakorntonsri/linkshelf/pkg/core/domain"
	"github.com/wadjakorntonsri/linkshelf/pkg/ports"
)

var ErrMissingLinkFields = errors.New("missing title or url")

type LinkService struct {
	repo ports.LinkRepository
}

func NewLinkService(repo ports.LinkRepository) *LinkService {
	return &LinkService{repo: repo}
}

func (s *LinkService) ListLinks(ctx context.Context, userID int64) ([]domain.Link, error) {
	return s.repo.ListLinksByUser(ctx, userID)
}

func (s *LinkService) AddLink(ctx context.Context, userID int64, title, url string) (*domain.Link, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(url) == "" {
		return nil, ErrMissingLinkFields
	}

	link := &domain.Link{
		Title:  title,
		URL:    url,
		UserID: userID,
	}

	if err := s.repo.CreateLink(ctx, link); err != nil {
		return nil, err
	}

	return link, nil
}
