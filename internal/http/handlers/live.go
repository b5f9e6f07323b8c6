package handlers

import (
	"context"
	"net/http"

	"textbook-logistics/internal/domain"
	"textbook-logistics/internal/logx"
)

// LiveHandler upgrades requests to live delivery channels.
type LiveHandler struct {
	hub        liveHub
	deliveries deliveryUsecase
	logger     logx.Logger
}

// NewLiveHandler creates a new LiveHandler.
func NewLiveHandler(logger logx.Logger, hub liveHub, deliveries deliveryUsecase) *LiveHandler {
	return &LiveHandler{hub: hub, deliveries: deliveries, logger: logger}
}

// Subscribe handles GET /ws/deliveries/{id}. The channel is read-only.
func (h *LiveHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	actor, ok := actorOr401(h.logger, w, r)
	if !ok {
		return
	}
	if _, err := h.deliveries.Get(r.Context(), id, actor); err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}

	if err := h.hub.ServeSubscriber(w, r, id); err != nil {
		h.logger.Warn("live subscribe failed", logx.Int64("delivery_id", id), logx.Err(err))
	}
}

// Rider handles GET /ws/deliveries/{id}/rider. Only the assigned rider of a
// shipped delivery may open it.
func (h *LiveHandler) Rider(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	rider, ok := actorOr401(h.logger, w, r)
	if !ok {
		return
	}
	if err := h.deliveries.AuthorizeRider(r.Context(), id, rider); err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}

	sink := func(ctx context.Context, c domain.Coordinates) error {
		return h.deliveries.PushPosition(ctx, id, rider, c)
	}
	if err := h.hub.ServeRider(w, r, id, sink); err != nil {
		h.logger.Warn("rider channel failed", logx.Int64("delivery_id", id), logx.Err(err))
	}
}
