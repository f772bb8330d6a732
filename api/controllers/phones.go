package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/phonedesk/phonedesk-backend/api/responses"
	"github.com/phonedesk/phonedesk-backend/api/validators"
	phonesvc "github.com/phonedesk/phonedesk-backend/internal/phones"
	"github.com/phonedesk/phonedesk-backend/pkg/enums"
	pkgerrors "github.com/phonedesk/phonedesk-backend/pkg/errors"
	"github.com/phonedesk/phonedesk-backend/pkg/logger"
	"github.com/phonedesk/phonedesk-backend/pkg/pagination"
)

func parsePhoneID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "phoneId")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid phone id")
	}
	return id, nil
}

func parseListInput(r *http.Request) (phonesvc.ListPhonesInput, error) {
	var input phonesvc.ListPhonesInput

	page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<30)
	if err != nil {
		return input, err
	}
	size, err := validators.ParseQueryInt(r, "size", pagination.DefaultSize, 1, pagination.MaxSize)
	if err != nil {
		return input, err
	}
	input.Pagination = pagination.Params{Page: page, Size: size}

	sort, err := phonesvc.ParseSort(validators.ParseQueryString(r, "sort"))
	if err != nil {
		return input, err
	}
	input.Sort = sort

	if raw := validators.ParseQueryString(r, "status"); raw != "" {
		status, err := enums.ParsePhoneStatus(raw)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status").
				WithDetails(map[string]string{"field": "status"})
		}
		input.Filters.Status = &status
	}

	input.Filters.ModelNo = validators.ParseQueryString(r, "modelNo")
	input.Filters.Color = validators.ParseQueryString(r, "color")
	input.Filters.Customer = validators.ParseQueryString(r, "customer")
	input.Filters.Query = validators.ParseQueryString(r, "q")

	if input.Filters.MinPurchasePrice, err = validators.ParseQueryDecimal(r, "minPrice"); err != nil {
		return input, err
	}
	if input.Filters.MaxPurchasePrice, err = validators.ParseQueryDecimal(r, "maxPrice"); err != nil {
		return input, err
	}
	if input.Filters.MinProfit, err = validators.ParseQueryDecimal(r, "minProfit"); err != nil {
		return input, err
	}
	if input.Filters.MaxProfit, err = validators.ParseQueryDecimal(r, "maxProfit"); err != nil {
		return input, err
	}
	if input.Filters.PurchasedFrom, err = validators.ParseQueryDate(r, "purchasedFrom"); err != nil {
		return input, err
	}
	if input.Filters.PurchasedTo, err = validators.ParseQueryDate(r, "purchasedTo"); err != nil {
		return input, err
	}
	if input.Filters.SoldFrom, err = validators.ParseQueryDate(r, "soldFrom"); err != nil {
		return input, err
	}
	if input.Filters.SoldTo, err = validators.ParseQueryDate(r, "soldTo"); err != nil {
		return input, err
	}

	return input, nil
}

// ListPhones serves the public, owner-agnostic inventory listing.
func ListPhones(svc phonesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "phone service unavailable"))
			return
		}

		input, err := parseListInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListPhones(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePage(w, "phones", result.Phones, result.Pagination, nil)
	}
}

// GetPhone serves the public phone detail view.
func GetPhone(svc phonesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "phone service unavailable"))
			return
		}

		id, err := parsePhoneID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		phone, err := svc.GetPhone(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "phone", phone)
	}
}

// SearchPhones serves the capped quick search across model, IMEIs and names.
func SearchPhones(svc phonesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "phone service unavailable"))
			return
		}

		query := strings.TrimSpace(chi.URLParam(r, "query"))
		matches, err := svc.SearchPhones(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, fmt.Sprintf("%d matches", len(matches)), matches)
	}
}

// CreatePhone registers a purchased unit under the authenticated owner.
func CreatePhone(svc phonesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "phone service unavailable"))
			return
		}

		ownerID, err := ownerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body phonesvc.CreatePhoneRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		phone, err := svc.CreatePhone(r.Context(), ownerID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, "phone created", phone)
	}
}

// UpdatePhone applies a partial update to an owned phone.
func UpdatePhone(svc phonesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "phone service unavailable"))
			return
		}

		ownerID, err := ownerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := parsePhoneID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body phonesvc.UpdatePhoneRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		phone, err := svc.UpdatePhone(r.Context(), ownerID, id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "phone updated", phone)
	}
}

// SellPhone performs the in-stock to sold transition.
func SellPhone(svc phonesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "phone service unavailable"))
			return
		}

		ownerID, err := ownerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := parsePhoneID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body phonesvc.SellPhoneRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		phone, err := svc.SellPhone(r.Context(), ownerID, id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "phone sold", phone)
	}
}

// DeletePhone removes an owned phone and its attachments.
func DeletePhone(svc phonesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "phone service unavailable"))
			return
		}

		ownerID, err := ownerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := parsePhoneID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeletePhone(r.Context(), ownerID, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// PhoneStatusSummary reports per-status counts and money totals for the owner.
func PhoneStatusSummary(svc phonesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "phone service unavailable"))
			return
		}

		ownerID, err := ownerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.StatusSummary(r.Context(), ownerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "status summary", summary)
	}
}
