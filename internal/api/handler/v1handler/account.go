package v1handler

import (
	"artisan/internal/account"
	"net/http"
)

type authPayload struct {
	User  any    `json:"user"`
	Token string `json:"token,omitempty"`
}

func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	user, token, err := h.deps.Account.Register(r.Context(), account.RegisterRequest{
		PhoneNumber: f.Get("phone_number"),
		Email:       f.Get("email"),
		Password:    f.Get("password"),
		Fullname:    f.Get("fullname"),
	})
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeOK(w, r, http.StatusCreated, "User created successfully",
		dataField(authPayload{User: h.userView(user), Token: token}))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	user, err := h.deps.Account.Login(r.Context(), f.Get("phone_number"), f.Get("password"))
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeOK(w, r, http.StatusOK, "Login successful", dataField(authPayload{User: h.userView(user)}))
}

func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	user, token, err := h.deps.Account.VerifyOTP(r.Context(), f.Get("phone_number"), f.Get("otp"))
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeOK(w, r, http.StatusOK, "Successful verification",
		dataField(authPayload{User: h.userView(user), Token: token}))
}

func (h *Handler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	if err := h.deps.Account.ResendOTP(r.Context(), f.Get("phone_number")); err != nil {
		writeError(w, r, err)

		return
	}

	writeOK(w, r, http.StatusOK, "OTP Resend successfully")
}

func (h *Handler) RetrievePasswordOTP(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	user, err := h.deps.Account.RetrievePasswordOTP(r.Context(), f.Get("phone_number"))
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeOK(w, r, http.StatusOK, "OTP Sent successfully", dataField(authPayload{User: h.userView(user)}))
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	if err := h.deps.Account.ResetPassword(r.Context(), account.ResetPasswordRequest{
		PhoneNumber:     f.Get("phone_number"),
		OTP:             f.Get("otp"),
		NewPassword:     f.Get("new_password"),
		ConfirmPassword: f.Get("confirm_password"),
	}); err != nil {
		writeError(w, r, err)

		return
	}

	writeOK(w, r, http.StatusOK, "Password reset successfully")
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.deps.Account.Me(r.Context(), GetUserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeOK(w, r, http.StatusOK, "User data fetched successfully", dataField(h.userView(user)))
}

func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	if err := h.deps.Account.UpdatePassword(r.Context(), GetUserIDFromContext(r.Context()), account.UpdatePasswordRequest{
		CurrentPassword: f.Get("current_password"),
		NewPassword:     f.Get("new_password"),
		ConfirmPassword: f.Get("confirm_password"),
	}); err != nil {
		writeError(w, r, err)

		return
	}

	writeOK(w, r, http.StatusOK, "Password updated successfully")
}
