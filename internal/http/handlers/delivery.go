package handlers

import (
	"context"
	"net/http"
	"strconv"

	"textbook-logistics/internal/domain"
	"textbook-logistics/internal/logx"
	"textbook-logistics/internal/service/delivery"
)

// DeliveryHandler handles HTTP requests for delivery resources.
type DeliveryHandler struct {
	usecase deliveryUsecase
	logger  logx.Logger
}

// NewDeliveryHandler creates a new DeliveryHandler.
func NewDeliveryHandler(logger logx.Logger, uc deliveryUsecase) *DeliveryHandler {
	return &DeliveryHandler{usecase: uc, logger: logger}
}

// Create handles POST /deliveries for a paid order set or an accepted swap.
func (h *DeliveryHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(h.logger, w, r)
	if !ok {
		return
	}

	var req createDeliveryRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	d, err := h.usecase.Create(r.Context(), req.toModel())
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	v, err := h.usecase.Get(r.Context(), d.ID, actor)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, viewToResponse(v))
}

// Get handles GET /deliveries/{id}.
func (h *DeliveryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	actor, ok := actorOr401(h.logger, w, r)
	if !ok {
		return
	}

	v, err := h.usecase.Get(r.Context(), id, actor)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, viewToResponse(v))
}

// Patch handles PATCH /deliveries/{id}.
// The fee is recomputed server side and stored together with both endpoints.
func (h *DeliveryHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	actor, ok := actorOr401(h.logger, w, r)
	if !ok {
		return
	}

	var req patchDeliveryRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	v, err := h.usecase.UpdateEndpoints(r.Context(), id, actor, req.toModel())
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, viewToResponse(v))
}

// Cancel handles POST /deliveries/{id}/cancel.
func (h *DeliveryHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.usecase.Cancel)
}

// Accept handles POST /deliveries/{id}/accept.
func (h *DeliveryHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.usecase.AcceptJob)
}

// Complete handles POST /deliveries/{id}/complete.
func (h *DeliveryHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.usecase.Complete)
}

type transitionFunc func(ctx context.Context, id int64, actor domain.UserID) (delivery.View, error)

func (h *DeliveryHandler) transition(w http.ResponseWriter, r *http.Request, op transitionFunc) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	actor, ok := actorOr401(h.logger, w, r)
	if !ok {
		return
	}

	v, err := op(r.Context(), id, actor)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, viewToResponse(v))
}

// Fee handles POST /deliveries/fee. Nothing is persisted.
func (h *DeliveryHandler) Fee(w http.ResponseWriter, r *http.Request) {
	var req feeRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	q, err := h.usecase.QuoteFee(r.Context(), req.Pickup, req.Dropoff, req.IsSwap)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, quoteToResponse(q))
}

// List handles GET /deliveries?view=rider.
func (h *DeliveryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("view") != "rider" {
		writeError(h.logger, w, r, http.StatusBadRequest, "unsupported view")
		return
	}
	var limit int
	if s := q.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			writeError(h.logger, w, r, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = v
	}

	list, err := h.usecase.ListAvailable(r.Context(), limit)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, jobsToResponse(list))
}

// Location handles POST /deliveries/{id}/location, the HTTP fallback of the rider channel.
func (h *DeliveryHandler) Location(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	rider, ok := actorOr401(h.logger, w, r)
	if !ok {
		return
	}

	var req locationRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	c := domain.Coordinates{Lat: *req.Lat, Lng: *req.Lng}
	if err := h.usecase.PushPosition(r.Context(), id, rider, c); err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
