package v1handler

import (
	"artisan/internal/profile"
	"artisan/pkg/domain"
	"artisan/pkg/serrors"
	"context"
	"net/http"
)

type userPayload struct {
	User any `json:"user"`
}

// updateUser runs fn for the authenticated user and answers with the updated
// record.
func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request, message string,
	fn func(ctx context.Context, id domain.UserID, f *form) (*domain.User, error),
) {
	f, err := parseForm(w, r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	user, err := fn(r.Context(), GetUserIDFromContext(r.Context()), f)
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeOK(w, r, http.StatusOK, message, dataField(userPayload{User: h.userView(user)}))
}

func (h *Handler) AddProfileInfo(w http.ResponseWriter, r *http.Request) {
	h.updateUser(w, r, "Profile info updated successfully",
		func(ctx context.Context, id domain.UserID, f *form) (*domain.User, error) {
			info := profile.Info{
				State:             f.Get("state"),
				LGA:               f.Get("lga"),
				Fullname:          f.Get("fullname"),
				DOB:               f.Get("dob"),
				AccountType:       f.Get("account_type"),
				YearsOfExperience: f.Get("years_of_experience"),
			}
			pics, err := f.Uploads("profile_pic")
			if err != nil {
				return nil, serrors.Wrap(serrors.ErrBadRequest, err, "Failed to process profile picture")
			}
			if len(pics) > 0 {
				info.Picture = &pics[0]
			}

			return h.deps.Profile.AddInfo(ctx, id, info)
		})
}

func (h *Handler) AddArtisanService(w http.ResponseWriter, r *http.Request) {
	h.updateUser(w, r, "Service updated successfully",
		func(ctx context.Context, id domain.UserID, f *form) (*domain.User, error) {
			return h.deps.Profile.SetService(ctx, id, f.Get("service"))
		})
}

func (h *Handler) AddArtisanBio(w http.ResponseWriter, r *http.Request) {
	h.updateUser(w, r, "Bio updated successfully",
		func(ctx context.Context, id domain.UserID, f *form) (*domain.User, error) {
			return h.deps.Profile.SetBio(ctx, id, f.Get("bio"))
		})
}

func (h *Handler) UpdateUserProfile(w http.ResponseWriter, r *http.Request) {
	h.updateUser(w, r, "Profile updated successfully",
		func(ctx context.Context, id domain.UserID, f *form) (*domain.User, error) {
			var update profile.Update
			for key, dst := range map[string]**string{"dob": &update.DOB, "state": &update.State, "lga": &update.LGA} {
				if f.Has(key) {
					v := f.Get(key)
					*dst = &v
				}
			}

			return h.deps.Profile.Update(ctx, id, update)
		})
}

func (h *Handler) UpdateProfilePicture(w http.ResponseWriter, r *http.Request) {
	h.updateUser(w, r, "Profile picture updated successfully",
		func(ctx context.Context, id domain.UserID, f *form) (*domain.User, error) {
			pics, err := f.Uploads("profile_pic")
			if err != nil {
				return nil, serrors.Wrap(serrors.ErrBadRequest, err, "Failed to upload profile picture")
			}
			if len(pics) == 0 {
				return nil, serrors.With(serrors.ErrUnprocessable, "The profile pic field is required.")
			}

			return h.deps.Profile.SetPicture(ctx, id, pics[0])
		})
}

func (h *Handler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	h.updateUser(w, r, "Online Status Updated",
		func(ctx context.Context, id domain.UserID, _ *form) (*domain.User, error) {
			return h.deps.Profile.ToggleStatus(ctx, id)
		})
}

func (h *Handler) UpdateFCMToken(w http.ResponseWriter, r *http.Request) {
	h.updateUser(w, r, "FCM token saved",
		func(ctx context.Context, id domain.UserID, f *form) (*domain.User, error) {
			return h.deps.Profile.SetFCMToken(ctx, id, f.Get("fcm_token"))
		})
}

func (h *Handler) TogglePushNotifications(w http.ResponseWriter, r *http.Request) {
	h.updateUser(w, r, "Push notification setting updated successfully",
		func(ctx context.Context, id domain.UserID, _ *form) (*domain.User, error) {
			return h.deps.Profile.TogglePushNotifications(ctx, id)
		})
}

func (h *Handler) ToggleEmailNotifications(w http.ResponseWriter, r *http.Request) {
	h.updateUser(w, r, "Email notification setting updated successfully",
		func(ctx context.Context, id domain.UserID, _ *form) (*domain.User, error) {
			return h.deps.Profile.ToggleEmailNotifications(ctx, id)
		})
}
