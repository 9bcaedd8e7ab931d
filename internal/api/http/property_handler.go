package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Munazil1/centswise/internal/domain"
)

type returnRequest struct {
	ConditionOnReturn string `json:"conditionOnReturn"`
}

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.property.ListItems(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var draft domain.ItemDraft
	if err := decodeJSON(w, r, &draft); err != nil {
		fail(w, err)
		return
	}
	item, err := h.property.AddItem(r.Context(), draft)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"item": item})
}

func (h *Handler) ListDistributions(w http.ResponseWriter, r *http.Request) {
	dists, err := h.property.ListDistributions(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"distributions": dists})
}

func (h *Handler) Distribute(w http.ResponseWriter, r *http.Request) {
	var draft domain.DistributionDraft
	if err := decodeJSON(w, r, &draft); err != nil {
		fail(w, err)
		return
	}
	dist, err := h.property.Distribute(r.Context(), draft)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"distribution": dist})
}

// ReturnDistribution accepts an empty body, in which case the default return
// condition is recorded.
func (h *Handler) ReturnDistribution(w http.ResponseWriter, r *http.Request) {
	var req returnRequest
	if err := decodeOptionalJSON(w, r, &req); err != nil {
		fail(w, err)
		return
	}
	dist, err := h.property.Return(r.Context(), mux.Vars(r)["id"], req.ConditionOnReturn)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"distribution": dist})
}
