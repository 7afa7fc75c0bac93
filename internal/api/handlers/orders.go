package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/baharkarakas/payment-reconciler/internal/api/httpx"
	"github.com/baharkarakas/payment-reconciler/internal/api/validate"
	"github.com/baharkarakas/payment-reconciler/internal/middleware"
	repo "github.com/baharkarakas/payment-reconciler/internal/repository"
	"github.com/baharkarakas/payment-reconciler/internal/services"
)

type OrderHandler struct {
	svc      *services.OrderService
	validate *validatorv10.Validate
}

func NewOrderHandler(svc *services.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc, validate: validate.New()}
}

// amount may be sent as a JSON number or string; both decode into json.Number
// without going through float64.
type createOrderReq struct {
	OrderID     string      `json:"order_id" validate:"required,max=64"`
	Amount      json.Number `json:"amount" validate:"required,amount"`
	Currency    string      `json:"currency" validate:"omitempty,currency"`
	CreateTime  string      `json:"create_time" validate:"required"`
	CallbackURL string      `json:"callback_url" validate:"omitempty,url,max=512"`
	Remark      string      `json:"remark" validate:"max=255"`
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderReq
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, httpx.CodeInvalidRequest, "invalid JSON body", err.Error())
		return
	}
	if err := validate.Struct(h.validate, req); err != nil {
		httpx.WriteError(w, http.StatusUnprocessableEntity, httpx.CodeValidationFailed, "validation failed", err)
		return
	}

	amount, err := decimal.NewFromString(req.Amount.String())
	if err != nil {
		httpx.WriteError(w, http.StatusUnprocessableEntity, httpx.CodeValidationFailed, "validation failed",
			validate.Errs{{Field: "amount", Msg: "not a decimal"}})
		return
	}
	created, err := h.svc.ParseCreateTime(req.CreateTime)
	if err != nil {
		httpx.WriteError(w, http.StatusUnprocessableEntity, httpx.CodeValidationFailed, "validation failed",
			validate.Errs{{Field: "create_time", Msg: err.Error()}})
		return
	}

	o, err := h.svc.Create(r.Context(), services.CreateOrderInput{
		OrderID:     req.OrderID,
		Amount:      amount,
		Currency:    req.Currency,
		CreateTime:  created,
		CallbackURL: req.CallbackURL,
		Remark:      req.Remark,
	})
	switch {
	case err == nil:
		client, _ := middleware.ClientID(r.Context())
		slog.Info("order accepted", "order_id", o.OrderID, "client_id", client)
		httpx.WriteJSON(w, http.StatusCreated, o)
	case errors.Is(err, repo.ErrDuplicateOrder):
		httpx.WriteError(w, http.StatusConflict, httpx.CodeDuplicateOrder, "order_id already exists", nil)
	case errors.Is(err, services.ErrInvalidOrder):
		httpx.WriteError(w, http.StatusUnprocessableEntity, httpx.CodeValidationFailed, err.Error(), nil)
	default:
		slog.Error("create order", "order_id", req.OrderID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.CodeInternal, "internal error", nil)
	}
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	o, err := h.svc.Get(r.Context(), chi.URLParam(r, "order_id"))
	if errors.Is(err, repo.ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, httpx.CodeNotFound, "order not found", nil)
		return
	}
	if err != nil {
		slog.Error("get order", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.CodeInternal, "internal error", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, o)
}
