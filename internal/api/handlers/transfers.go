package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/baharkarakas/payment-reconciler/internal/api/httpx"
	"github.com/baharkarakas/payment-reconciler/internal/services"
)

type TransferHandler struct {
	svc *services.TransferService
}

func NewTransferHandler(svc *services.TransferService) *TransferHandler {
	return &TransferHandler{svc: svc}
}

// List serves GET /transfers?since=<RFC3339>&limit=N, newest first.
func (h *TransferHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var since time.Time
	if v := q.Get("since"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, httpx.CodeInvalidRequest, "since must be RFC 3339", nil)
			return
		}
		since = t
	}
	limit := 0
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			httpx.WriteError(w, http.StatusBadRequest, httpx.CodeInvalidRequest, "limit must be a positive integer", nil)
			return
		}
		limit = n
	}

	out, err := h.svc.ListRecent(r.Context(), since, limit)
	if err != nil {
		slog.Error("list transfers", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.CodeInternal, "internal error", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"transfers": out, "count": len(out)})
}
