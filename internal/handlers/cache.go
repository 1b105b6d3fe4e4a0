package handlers

import (
	"net/http"

	"fantasy-gateway/internal/common/errors"
	"fantasy-gateway/internal/common/logging"
	"fantasy-gateway/internal/models"
)

// HandleCacheStatus reports fetch cache counters
// @Summary Cache status
// @Tags cache
// @Produce json
// @Success 200 {object} models.CacheStatusResponse
// @Router /api/cache/status [get]
func (h *Handlers) HandleCacheStatus(w http.ResponseWriter, r *http.Request) {
	stats := h.fetcher.Stats()
	h.respondJSON(w, http.StatusOK, models.CacheStatusResponse{
		Hits:          stats.Hits,
		Misses:        stats.Misses,
		Deduped:       stats.Deduped,
		Invalidations: stats.Invalidations,
		CachedEntries: stats.CachedEntries,
	})
}

// HandleCacheInvalidate drops cache entries by tag
// @Summary Invalidate cached entries
// @Description Removes every cached provider response carrying the tag
// @Tags cache
// @Accept json
// @Produce json
// @Param request body models.InvalidateRequest true "Tag to drop"
// @Success 200 {object} models.InvalidateResponse
// @Failure 400 {object} models.APIError "Missing tag"
// @Router /api/cache/invalidate [post]
func (h *Handlers) HandleCacheInvalidate(w http.ResponseWriter, r *http.Request) {
	var req models.InvalidateRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}
	if req.Tag == "" {
		h.respondError(w, errors.ValidationError("tag is required"))
		return
	}

	removed, err := h.fetcher.InvalidateTag(r.Context(), req.Tag)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.logger.Info("Cache invalidated",
		logging.Field{Key: "tag", Value: req.Tag},
		logging.Field{Key: "removed", Value: removed})
	h.respondJSON(w, http.StatusOK, models.InvalidateResponse{Tag: req.Tag, Removed: removed})
}
