package phones

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phonedesk/phonedesk-backend/pkg/config"
	"github.com/phonedesk/phonedesk-backend/pkg/db/models"
	pkgerrors "github.com/phonedesk/phonedesk-backend/pkg/errors"
)

// ImageUpload is one incoming attachment stream.
type ImageUpload struct {
	Filename    string
	ContentType string
	SizeBytes   int64
	Body        io.Reader
}

// ImageService attaches and detaches stored images for a phone.
type ImageService interface {
	UploadImages(ctx context.Context, ownerID, phoneID uuid.UUID, uploads []ImageUpload) ([]PhoneImageDTO, error)
	DeleteImage(ctx context.Context, ownerID, phoneID, imageID uuid.UUID) error
}

type imageStorage interface {
	UploadObject(ctx context.Context, bucket, object, contentType string, body io.Reader) (string, error)
	DeleteObject(ctx context.Context, bucket, object string) error
}

type imagesRepository interface {
	FindForOwner(ctx context.Context, ownerID, id uuid.UUID) (*models.Phone, error)
	AddImages(ctx context.Context, images []models.PhoneImage) error
	FindImage(ctx context.Context, phoneID, imageID uuid.UUID) (*models.PhoneImage, error)
	DeleteImage(ctx context.Context, phoneID, imageID uuid.UUID) (int64, error)
}

type imageService struct {
	repo    imagesRepository
	storage imageStorage
	cfg     config.MediaConfig
}

// ImageServiceParams bundles the image service dependencies.
type ImageServiceParams struct {
	Repo    imagesRepository
	Storage imageStorage
	Media   config.MediaConfig
}

// NewImageService constructs the phone image service.
func NewImageService(params ImageServiceParams) (ImageService, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("phone repository is required")
	}
	if params.Storage == nil {
		return nil, fmt.Errorf("image storage is required")
	}
	return &imageService{repo: params.Repo, storage: params.Storage, cfg: params.Media}, nil
}

func (s *imageService) UploadImages(ctx context.Context, ownerID, phoneID uuid.UUID, uploads []ImageUpload) ([]PhoneImageDTO, error) {
	if len(uploads) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one image is required")
	}

	phone, err := s.repo.FindForOwner(ctx, ownerID, phoneID)
	if err != nil {
		return nil, mapLookupError(err)
	}

	if max := s.cfg.MaxImagesPerPhone; max > 0 && len(phone.Images)+len(uploads) > max {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("phone may carry at most %d images", max))
	}
	maxBytes := int64(s.cfg.MaxUploadMB) * 1024 * 1024

	rows := make([]models.PhoneImage, 0, len(uploads))
	for _, upload := range uploads {
		if !strings.HasPrefix(upload.ContentType, "image/") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("unsupported content type %q", upload.ContentType))
		}
		if maxBytes > 0 && upload.SizeBytes > maxBytes {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("image exceeds %dMB limit", s.cfg.MaxUploadMB))
		}

		imageID := uuid.New()
		key := storageKey(phoneID, imageID, upload.Filename)
		url, err := s.storage.UploadObject(ctx, "", key, upload.ContentType, upload.Body)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeStoreUnavailable, err, "storage: upload image")
		}

		rows = append(rows, models.PhoneImage{
			ID:           imageID,
			PhoneID:      phoneID,
			URL:          url,
			StorageKey:   key,
			OriginalName: upload.Filename,
			MimeType:     upload.ContentType,
			SizeBytes:    upload.SizeBytes,
		})
	}

	if err := s.repo.AddImages(ctx, rows); err != nil {
		return nil, mapStoreError(err, "db: insert phone images")
	}

	out := make([]PhoneImageDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, PhoneImageDTO{
			ID:           row.ID,
			URL:          row.URL,
			OriginalName: row.OriginalName,
			MimeType:     row.MimeType,
			SizeBytes:    row.SizeBytes,
			UploadedAt:   row.UploadedAt,
		})
	}
	return out, nil
}

func (s *imageService) DeleteImage(ctx context.Context, ownerID, phoneID, imageID uuid.UUID) error {
	if _, err := s.repo.FindForOwner(ctx, ownerID, phoneID); err != nil {
		return mapLookupError(err)
	}

	image, err := s.repo.FindImage(ctx, phoneID, imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "image not found")
		}
		return mapStoreError(err, "db: load phone image")
	}

	if err := s.storage.DeleteObject(ctx, "", image.StorageKey); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStoreUnavailable, err, "storage: delete image")
	}

	affected, err := s.repo.DeleteImage(ctx, phoneID, imageID)
	if err != nil {
		return mapStoreError(err, "db: delete phone image")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "image not found")
	}
	return nil
}

func storageKey(phoneID, imageID uuid.UUID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("phones/%s/%s%s", phoneID, imageID, ext)
}
