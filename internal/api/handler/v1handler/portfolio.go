package v1handler

import (
	"artisan/internal/portfolio"
	"artisan/pkg/domain"
	"artisan/pkg/serrors"
	"net/http"
)

type projectPayload struct {
	User    any `json:"user"`
	Project any `json:"project,omitempty"`
}

// project resolves the image paths of p for clients.
func (h *Handler) project(p *domain.Portfolio) *domain.Portfolio {
	out := *p
	out.Images = h.deps.Resolver.URLs(p.Images)

	return &out
}

func (h *Handler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		writeError(w, r, err)

		return
	}
	gallery, err := f.Uploads("gallery")
	if err != nil {
		writeError(w, r, serrors.Wrap(serrors.ErrBadRequest, err, "Could not read gallery"))

		return
	}

	ctx := r.Context()
	userID := GetUserIDFromContext(ctx)

	item, err := h.deps.Portfolio.Create(ctx, userID, portfolio.CreateRequest{
		Title:       f.Get("title"),
		Role:        f.Get("role"),
		Description: f.Get("description"),
		Gallery:     gallery,
	})
	if err != nil {
		writeError(w, r, err)

		return
	}

	h.writeProject(w, r, "Project added successfully", item)
}

func (h *Handler) UpdatePortfolio(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	req := portfolio.UpdateRequest{
		Code:        f.Get("portfolio_id"),
		Title:       f.Get("title"),
		Role:        f.Get("role"),
		Description: f.Get("description"),
	}
	if req.ExistingImages, err = f.StringList("existing_images"); err != nil {
		writeError(w, r, err)

		return
	}
	if req.ImagesToDelete, err = f.StringList("images_to_delete"); err != nil {
		writeError(w, r, err)

		return
	}
	if req.Gallery, err = f.Uploads("gallery"); err != nil {
		writeError(w, r, serrors.Wrap(serrors.ErrBadRequest, err, "Could not read gallery"))

		return
	}

	item, err := h.deps.Portfolio.Update(r.Context(), GetUserIDFromContext(r.Context()), req)
	if err != nil {
		writeError(w, r, err)

		return
	}

	h.writeProject(w, r, "Portfolio updated successfully", item)
}

func (h *Handler) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	if err := h.deps.Portfolio.Delete(r.Context(), GetUserIDFromContext(r.Context()), f.Get("portfolio_id")); err != nil {
		writeError(w, r, err)

		return
	}

	h.writeProject(w, r, "Portfolio project deleted successfully", nil)
}

// writeProject answers with the refreshed user and, when given, the project.
func (h *Handler) writeProject(w http.ResponseWriter, r *http.Request, message string, item *domain.Portfolio) {
	user, err := h.deps.Account.Me(r.Context(), GetUserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)

		return
	}

	payload := projectPayload{User: h.userView(user)}
	if item != nil {
		payload.Project = h.project(item)
	}

	writeOK(w, r, http.StatusOK, message, dataField(payload))
}
