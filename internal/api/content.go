package api

import "net/http"

// Content handles GET /api/v1/content.
//
//	@Summary		Get site content
//	@Description	Returns the product catalog, benefits, stats and comparison notes shown on the landing page
//	@Tags			content
//	@Produce		json
//	@Success		200	{object}	content.Site
//	@Router			/api/v1/content [get]
func (h *Handler) Content(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.site)
}
