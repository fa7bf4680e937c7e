package v1handler

import (
	"fmt"
	"net/http"
)

func (h *Handler) FetchArtisans(w http.ResponseWriter, r *http.Request) {
	views, err := h.deps.Discovery.All(r.Context(), GetUserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeOK(w, r, http.StatusOK, "Artisans fetched successfully", dataField(views), countField(len(views)))
}

func (h *Handler) FetchArtisansByService(w http.ResponseWriter, r *http.Request) {
	service := r.PathValue("service")

	views, err := h.deps.Discovery.ByCategory(r.Context(), GetUserIDFromContext(r.Context()), service)
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeOK(w, r, http.StatusOK, fmt.Sprintf("Artisans for service '%s' fetched successfully", service),
		dataField(views), countField(len(views)), strField("service", service))
}

func (h *Handler) FetchVerifiedArtisans(w http.ResponseWriter, r *http.Request) {
	views, err := h.deps.Discovery.Verified(r.Context(), GetUserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeOK(w, r, http.StatusOK, "Verified artisans fetched successfully", dataField(views), countField(len(views)))
}

func (h *Handler) GetArtisanProfile(w http.ResponseWriter, r *http.Request) {
	view, err := h.deps.Discovery.Profile(r.Context(), GetUserIDFromContext(r.Context()), r.PathValue("profileId"))
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeOK(w, r, http.StatusOK, "Artisan profile fetched successfully", dataField(view))
}

func (h *Handler) SearchArtisans(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("search")

	views, err := h.deps.Discovery.Search(r.Context(), GetUserIDFromContext(r.Context()), term)
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeOK(w, r, http.StatusOK, "Search completed successfully",
		dataField(views), countField(len(views)), strField("search_term", term))
}
