package controllers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockroomhq/stockroom-backend/api/responses"
	"github.com/stockroomhq/stockroom-backend/internal/finance"
	"github.com/stockroomhq/stockroom-backend/internal/invoice"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
)

// DownloadInvoice renders a sale's invoice PDF as an attachment.
func DownloadInvoice(svc finance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		saleID := chi.URLParam(r, "id")

		data, err := svc.InvoiceData(r.Context(), saleID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pdf, err := invoice.Render(data)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to render invoice"))
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", invoice.Filename(saleID)))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(pdf); err != nil {
			logg.Error(r.Context(), "failed to stream invoice", err)
		}
	}
}
