package controllers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	phonesvc "github.com/phonedesk/phonedesk-backend/internal/phones"
	"github.com/phonedesk/phonedesk-backend/pkg/config"
)

type stubImageService struct {
	lastOwnerID uuid.UUID
	lastPhoneID uuid.UUID
	lastImageID uuid.UUID
	uploads     []phonesvc.ImageUpload
	err         error
}

func (s *stubImageService) UploadImages(_ context.Context, ownerID, phoneID uuid.UUID, uploads []phonesvc.ImageUpload) ([]phonesvc.PhoneImageDTO, error) {
	s.lastOwnerID = ownerID
	s.lastPhoneID = phoneID
	s.uploads = uploads
	if s.err != nil {
		return nil, s.err
	}
	out := make([]phonesvc.PhoneImageDTO, 0, len(uploads))
	for range uploads {
		out = append(out, phonesvc.PhoneImageDTO{ID: uuid.New()})
	}
	return out, nil
}

func (s *stubImageService) DeleteImage(_ context.Context, ownerID, phoneID, imageID uuid.UUID) error {
	s.lastOwnerID = ownerID
	s.lastPhoneID = phoneID
	s.lastImageID = imageID
	return s.err
}

func multipartBody(t *testing.T, filenames ...string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, name := range filenames {
		part, err := writer.CreateFormFile(imagesFormKey, name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := io.WriteString(part, "fake image bytes"); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestUploadPhoneImages(t *testing.T) {
	media := config.MediaConfig{MaxUploadMB: 5, MaxImagesPerPhone: 3}
	stub := &stubImageService{}
	ownerID := uuid.New()
	phoneID := uuid.New()

	body, contentType := multipartBody(t, "front.jpg", "back.png")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/phones/"+phoneID.String()+"/images", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(ownerContext(ownerID))
	req = withURLParam(req, "phoneId", phoneID.String())
	rec := httptest.NewRecorder()
	UploadPhoneImages(stub, media, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.lastOwnerID != ownerID || stub.lastPhoneID != phoneID {
		t.Fatalf("unexpected identifiers: owner=%s phone=%s", stub.lastOwnerID, stub.lastPhoneID)
	}
	if len(stub.uploads) != 2 || stub.uploads[0].Filename != "front.jpg" {
		t.Fatalf("unexpected uploads: %+v", stub.uploads)
	}
}

func TestUploadPhoneImagesRejectsEmptyBatch(t *testing.T) {
	media := config.MediaConfig{MaxUploadMB: 5, MaxImagesPerPhone: 3}
	stub := &stubImageService{}
	phoneID := uuid.New()

	body, contentType := multipartBody(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/phones/"+phoneID.String()+"/images", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(ownerContext(uuid.New()))
	req = withURLParam(req, "phoneId", phoneID.String())
	rec := httptest.NewRecorder()
	UploadPhoneImages(stub, media, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty batch, got %d", rec.Code)
	}
}

func TestDeletePhoneImageValidatesIDs(t *testing.T) {
	stub := &stubImageService{}
	phoneID := uuid.New()
	imageID := uuid.New()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/phones/"+phoneID.String()+"/images/bad", nil)
	req = req.WithContext(ownerContext(uuid.New()))
	req = withURLParam(req, "phoneId", phoneID.String())
	req = withURLParam(req, "imageId", "bad")
	rec := httptest.NewRecorder()
	DeletePhoneImage(stub, nil).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad image id, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/phones/"+phoneID.String()+"/images/"+imageID.String(), nil)
	req = req.WithContext(ownerContext(uuid.New()))
	req = withURLParam(req, "phoneId", phoneID.String())
	req = withURLParam(req, "imageId", imageID.String())
	rec = httptest.NewRecorder()
	DeletePhoneImage(stub, nil).ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if stub.lastImageID != imageID {
		t.Fatalf("expected delete of %s, got %s", imageID, stub.lastImageID)
	}
}
