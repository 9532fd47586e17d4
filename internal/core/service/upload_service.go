package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/salone-skillshub/skillshub/internal/api/metrics"
	"github.com/salone-skillshub/skillshub/internal/core/domain"
	"github.com/salone-skillshub/skillshub/internal/core/ports"
)

const (
	// DefaultMaxUploadBytes applies when no limit is configured.
	DefaultMaxUploadBytes = 5 << 20
	presignTTL            = 15 * time.Minute
	sniffLen              = 3072
)

// allowedTypes lists the accepted content types per upload kind.
var allowedTypes = map[string][]string{
	ports.UploadResume:    {"application/pdf"},
	ports.UploadPortfolio: {"application/pdf", "image/png", "image/jpeg"},
	ports.UploadLogo:      {"image/png", "image/jpeg"},
}

var extensions = map[string]string{
	"application/pdf": ".pdf",
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
}

// UploadService stores resumes, portfolio files and company logos.
type UploadService struct {
	store    ports.ObjectStore
	profiles ports.ProfileRepository
	maxBytes int64
	log      zerolog.Logger
}

func NewUploadService(store ports.ObjectStore, profiles ports.ProfileRepository, maxBytes int64, log zerolog.Logger) *UploadService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &UploadService{store: store, profiles: profiles, maxBytes: maxBytes, log: log}
}

// Upload validates and stores a file, then records it on the caller's profile.
func (s *UploadService) Upload(ctx context.Context, caller *domain.Identity, in ports.UploadInput) (*ports.UploadResult, error) {
	accepted, ok := allowedTypes[in.Kind]
	if !ok {
		return nil, domain.Invalidf("kind must be one of: resume portfolio logo")
	}
	switch in.Kind {
	case ports.UploadLogo:
		if !caller.HasRole(domain.RoleEmployer) {
			return nil, domain.ErrForbidden
		}
	default:
		if !caller.HasRole(domain.RoleJobSeeker) {
			return nil, domain.ErrForbidden
		}
	}
	if in.Size <= 0 {
		return nil, domain.Invalidf("file is empty")
	}
	if in.Size > s.maxBytes {
		return nil, domain.Invalidf("file must be at most %d bytes", s.maxBytes)
	}

	// the declared content type is not trusted; sniff the leading bytes
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(in.Body, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	contentType := mimetype.Detect(head).String()
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	if !contains(accepted, contentType) {
		return nil, domain.Invalidf("file type %s is not accepted for %s uploads", contentType, in.Kind)
	}

	var seeker *domain.SeekerProfile
	if in.Kind != ports.UploadLogo {
		seeker, err = s.profiles.FindSeekerByUserID(ctx, caller.UserID)
		if err != nil {
			if domain.IsNotFound(err) {
				return nil, domain.Invalidf("seeker profile must be completed before uploading")
			}
			return nil, err
		}
	} else if _, err := s.profiles.FindEmployerByUserID(ctx, caller.UserID); err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.Invalidf("employer profile must be completed before uploading")
		}
		return nil, err
	}

	key := fmt.Sprintf("%s/%d/%s%s", in.Kind, caller.UserID, uuid.NewString(), extensions[contentType])
	body := io.MultiReader(bytes.NewReader(head), in.Body)
	if err := s.store.Put(ctx, key, body, in.Size, contentType); err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	result := &ports.UploadResult{Key: key}
	switch in.Kind {
	case ports.UploadResume:
		err = s.profiles.SetSeekerResume(ctx, caller.UserID, key)
	case ports.UploadLogo:
		err = s.profiles.SetEmployerLogo(ctx, caller.UserID, key)
	case ports.UploadPortfolio:
		title := plainText(in.Title)
		if title == "" {
			title = path.Base(in.Filename)
		}
		result.PortfolioItem, err = s.profiles.AddPortfolioItem(ctx, &domain.PortfolioItem{
			SeekerProfileID: seeker.ID,
			Title:           title,
			ObjectKey:       key,
			ContentType:     contentType,
		})
	}
	if err != nil {
		s.removeObject(ctx, key)
		return nil, err
	}

	if url, err := s.store.PresignedURL(ctx, key, presignTTL); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("presigned url not generated")
	} else {
		result.URL = url
	}

	metrics.UploadsTotal.WithLabelValues(in.Kind).Inc()
	s.log.Info().Str("kind", in.Kind).Str("key", key).Int64("user_id", caller.UserID).Msg("file uploaded")
	return result, nil
}

// ListPortfolio returns the caller's portfolio items.
func (s *UploadService) ListPortfolio(ctx context.Context, caller *domain.Identity) ([]*domain.PortfolioItem, error) {
	if !caller.HasRole(domain.RoleJobSeeker) {
		return nil, domain.ErrForbidden
	}
	seeker, err := s.profiles.FindSeekerByUserID(ctx, caller.UserID)
	if err != nil {
		if domain.IsNotFound(err) {
			return []*domain.PortfolioItem{}, nil
		}
		return nil, err
	}
	return s.profiles.ListPortfolio(ctx, seeker.ID)
}

// DeletePortfolioItem removes one of the caller's portfolio items and its object.
func (s *UploadService) DeletePortfolioItem(ctx context.Context, caller *domain.Identity, id int64) error {
	if !caller.HasRole(domain.RoleJobSeeker) {
		return domain.ErrForbidden
	}
	item, err := s.profiles.DeletePortfolioItem(ctx, id, caller.UserID)
	if err != nil {
		return err
	}
	s.removeObject(ctx, item.ObjectKey)
	return nil
}

func (s *UploadService) removeObject(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to delete object")
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

var _ ports.UploadService = (*UploadService)(nil)
