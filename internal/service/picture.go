package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/skillswap/skillswap/internal/model"
	"github.com/skillswap/skillswap/internal/storage"
	"github.com/skillswap/skillswap/internal/validation"
)

const picturePrefix = "profile-pictures"

var ErrUploadsDisabled = errors.New("picture uploads are not configured, paste an image URL instead")

// PictureService stores profile pictures and turns stored references into
// URLs. A reference is either an absolute http(s) URL or a storage key.
type PictureService struct {
	storage storage.Storage
}

// NewPictureService accepts a nil storage, in which case only URLs are accepted.
func NewPictureService(storage storage.Storage) *PictureService {
	return &PictureService{storage: storage}
}

func (s *PictureService) UploadsEnabled() bool {
	return s.storage != nil
}

// Upload validates the image and stores it under a fresh key, which it returns.
func (s *PictureService) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	if s.storage == nil {
		return "", ErrUploadsDisabled
	}

	image, err := validation.InspectProfileImage(file, header)
	if err != nil {
		return "", invalid(err)
	}

	key := path.Join(picturePrefix, uuid.New().String()+image.Ext)
	err = s.storage.Save(ctx, key, file, image.ContentType)
	if err != nil {
		return "", fmt.Errorf("failed to save picture: %w", err)
	}
	return key, nil
}

// Delete removes an uploaded picture. Plain URLs are left alone.
func (s *PictureService) Delete(ctx context.Context, ref string) {
	if s.storage == nil || !isStorageKey(ref) {
		return
	}
	err := s.storage.Delete(ctx, ref)
	if err != nil {
		slog.Error("failed to delete picture from storage during cleanup", "error", err, "key", ref)
	}
}

// URL resolves a stored reference for display.
func (s *PictureService) URL(ctx context.Context, ref string) string {
	switch {
	case ref == "":
		return ""
	case !isStorageKey(ref):
		return ref
	case s.storage == nil:
		return ""
	}
	return s.storage.URL(ctx, ref)
}

func (s *PictureService) ResolveUser(ctx context.Context, user *model.User) {
	user.PictureURL = s.URL(ctx, user.ProfilePicture)
}

func (s *PictureService) ResolveSummaries(ctx context.Context, users []*model.UserSummary) {
	for _, u := range users {
		u.PictureURL = s.URL(ctx, u.ProfilePicture)
	}
}

func isStorageKey(ref string) bool {
	return strings.HasPrefix(ref, picturePrefix+"/")
}
