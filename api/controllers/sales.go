package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/phonedesk/phonedesk-backend/api/responses"
	"github.com/phonedesk/phonedesk-backend/api/validators"
	"github.com/phonedesk/phonedesk-backend/internal/reports"
	salesvc "github.com/phonedesk/phonedesk-backend/internal/sales"
	pkgerrors "github.com/phonedesk/phonedesk-backend/pkg/errors"
	"github.com/phonedesk/phonedesk-backend/pkg/logger"
	"github.com/phonedesk/phonedesk-backend/pkg/pagination"
)

func parseSaleID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "saleId")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sale id")
	}
	return id, nil
}

func parseSalesListInput(r *http.Request) (salesvc.ListSalesInput, error) {
	var input salesvc.ListSalesInput

	page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<30)
	if err != nil {
		return input, err
	}
	size, err := validators.ParseQueryInt(r, "size", pagination.DefaultSize, 1, pagination.MaxSize)
	if err != nil {
		return input, err
	}
	input.Pagination = pagination.Params{Page: page, Size: size}

	input.Filters.ModelNo = validators.ParseQueryString(r, "modelNo")
	input.Filters.Customer = validators.ParseQueryString(r, "customer")

	if input.Filters.MinProfit, err = validators.ParseQueryDecimal(r, "minProfit"); err != nil {
		return input, err
	}
	if input.Filters.MaxProfit, err = validators.ParseQueryDecimal(r, "maxProfit"); err != nil {
		return input, err
	}
	if input.Filters.SoldFrom, err = validators.ParseQueryDate(r, "startDate"); err != nil {
		return input, err
	}
	if input.Filters.SoldTo, err = validators.ParseQueryDate(r, "endDate"); err != nil {
		return input, err
	}

	return input, nil
}

// ListSales serves the owner's sold-item listing with a per-page totals block.
func ListSales(svc salesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		ownerID, err := ownerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := parseSalesListInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListSales(r.Context(), ownerID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePage(w, "sales", result.Sales, result.Pagination, result.Summary)
	}
}

// GetSale serves the sold-item detail view.
func GetSale(svc salesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		ownerID, err := ownerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := parseSaleID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sale, err := svc.GetSale(r.Context(), ownerID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "sale", sale)
	}
}

// UpdateSale corrects sale fields on a sold phone, recomputing profit as needed.
func UpdateSale(svc salesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		ownerID, err := ownerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := parseSaleID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body salesvc.UpdateSaleRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sale, err := svc.UpdateSale(r.Context(), ownerID, id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "sale updated", sale)
	}
}

// SalesSummary serves the aggregation report for an optional date window.
func SalesSummary(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}

		ownerID, err := ownerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var rng reports.DateRange
		if rng.Start, err = validators.ParseQueryDate(r, "startDate"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if rng.End, err = validators.ParseQueryDate(r, "endDate"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.SalesReport(r.Context(), ownerID, rng)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "sales summary", report)
	}
}
