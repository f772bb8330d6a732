package controllers

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/phonedesk/phonedesk-backend/api/responses"
	phonesvc "github.com/phonedesk/phonedesk-backend/internal/phones"
	"github.com/phonedesk/phonedesk-backend/pkg/config"
	pkgerrors "github.com/phonedesk/phonedesk-backend/pkg/errors"
	"github.com/phonedesk/phonedesk-backend/pkg/logger"
)

const imagesFormKey = "images"

// UploadPhoneImages accepts a multipart batch and attaches each file to the phone.
func UploadPhoneImages(svc phonesvc.ImageService, media config.MediaConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "image service unavailable"))
			return
		}

		ownerID, err := ownerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		phoneID, err := parsePhoneID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		maxBytes := int64(media.MaxUploadMB) * 1024 * 1024
		if maxBytes <= 0 {
			maxBytes = 10 << 20
		}
		// One extra MB of headroom for the multipart framing itself.
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes*int64(media.MaxImagesPerPhone+1)+1<<20)

		if err := r.ParseMultipartForm(maxBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body"))
			return
		}
		defer func() {
			if r.MultipartForm != nil {
				_ = r.MultipartForm.RemoveAll()
			}
		}()

		fileHeaders := r.MultipartForm.File[imagesFormKey]
		if len(fileHeaders) == 0 {
			err := pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("no files under form key %q", imagesFormKey)).
				WithDetails(map[string]string{"field": imagesFormKey})
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		uploads := make([]phonesvc.ImageUpload, 0, len(fileHeaders))
		opened := make([]multipart.File, 0, len(fileHeaders))
		defer func() {
			for _, f := range opened {
				_ = f.Close()
			}
		}()

		for _, header := range fileHeaders {
			file, err := header.Open()
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read uploaded file"))
				return
			}
			opened = append(opened, file)
			uploads = append(uploads, phonesvc.ImageUpload{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				SizeBytes:   header.Size,
				Body:        file,
			})
		}

		images, err := svc.UploadImages(r.Context(), ownerID, phoneID, uploads)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, fmt.Sprintf("%d images uploaded", len(images)), images)
	}
}

// DeletePhoneImage detaches one stored image from the phone.
func DeletePhoneImage(svc phonesvc.ImageService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "image service unavailable"))
			return
		}

		ownerID, err := ownerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		phoneID, err := parsePhoneID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		imageID, err := uuid.Parse(chi.URLParam(r, "imageId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid image id"))
			return
		}

		if err := svc.DeleteImage(r.Context(), ownerID, phoneID, imageID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
