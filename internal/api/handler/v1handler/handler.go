// Package v1handler implements the v1 JSON API on top of the domain services.
package v1handler

import (
	"artisan/internal/account"
	"artisan/internal/artisan"
	"artisan/internal/chat"
	"artisan/internal/notification"
	"artisan/internal/portfolio"
	"artisan/internal/profile"
	"artisan/pkg/domain"
	"artisan/pkg/logger"
	"artisan/pkg/media"
	"artisan/pkg/serrors"
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// Deps are the services the handlers delegate to.
type Deps struct {
	Account      account.Account
	Profile      profile.Profile
	Portfolio    portfolio.Portfolio
	Notification notification.Notifier
	Discovery    artisan.Discovery
	Chat         chat.Chat
	// Resolver turns stored media paths into URLs in user payloads.
	Resolver media.Resolver
}

type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// ErrorBody is the client-facing part of an error.
type ErrorBody struct {
	Code    string
	Message string
}

// ErrorResponse is an error mapped to an HTTP status.
type ErrorResponse struct {
	StatusCode int
	Response   ErrorBody
}

// NewError maps err to a status and message and logs it. Server side errors
// always get the generic message of their kind.
func NewError(ctx context.Context, err error) *ErrorResponse {
	kind := serrors.KindOf(err)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = serrors.ErrTimeout
	case kind == nil:
		kind = serrors.ErrInternal
	}

	status := kind.Status()
	message := serrors.MessageOf(err)
	if message == "" || serrors.ServerSide(kind) {
		message = kind.DefaultMessage()
	}

	if serrors.ServerSide(kind) {
		logger.Error(ctx, "request failed", zap.Error(err), zap.Int("status", status))
	} else {
		logger.Info(ctx, "request rejected", zap.Error(err), zap.Int("status", status))
	}

	return &ErrorResponse{
		StatusCode: status,
		Response:   ErrorBody{Code: kind.Error(), Message: message},
	}
}

// Register mounts every v1 route on mux. wrap decorates each route, e.g.
// with metrics, and may be nil.
func (h *Handler) Register(mux *http.ServeMux, sec *SecHandler, wrap func(route string, next http.Handler) http.Handler) {
	if wrap == nil {
		wrap = func(_ string, next http.Handler) http.Handler { return next }
	}
	public := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, wrap(pattern, fn))
	}
	private := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, wrap(pattern, sec.Authenticate(fn)))
	}

	// discovery
	private("GET /v1/fetch/artisan", h.FetchArtisans)
	private("GET /v1/fetch/artisan/{$}", h.FetchArtisansByService)
	private("GET /v1/fetch/artisan/verified", h.FetchVerifiedArtisans)
	private("GET /v1/fetch/artisan/{service}", h.FetchArtisansByService)
	private("GET /v1/artisan/profile/{profileId}", h.GetArtisanProfile)
	private("GET /v1/artisan/search", h.SearchArtisans)

	// account
	public("POST /v1/user", h.RegisterUser)
	public("POST /v1/user/login", h.Login)
	public("POST /v1/verify/otp", h.VerifyOTP)
	public("POST /v1/resend/otp", h.ResendOTP)
	public("POST /v1/retrieve/password/otp", h.RetrievePasswordOTP)
	public("POST /v1/reset/password", h.ResetPassword)
	private("GET /v1/fetch/user", h.Me)
	private("POST /v1/update/password", h.UpdatePassword)

	// profile
	private("POST /v1/update/add_profile_info", h.AddProfileInfo)
	private("POST /v1/update/add_artisan_service", h.AddArtisanService)
	private("POST /v1/update/add_artisan_bio", h.AddArtisanBio)
	private("POST /v1/update/user_profile_update", h.UpdateUserProfile)
	private("POST /v1/update/profile_picture", h.UpdateProfilePicture)
	private("POST /v1/update/status", h.ToggleStatus)
	private("POST /v1/update/fcm-token", h.UpdateFCMToken)
	private("POST /v1/update/notification/push", h.TogglePushNotifications)
	private("POST /v1/update/notification/email", h.ToggleEmailNotifications)

	// portfolio
	private("POST /v1/portfolio", h.CreatePortfolio)
	private("POST /v1/update/portfolio", h.UpdatePortfolio)
	private("POST /v1/delete/portfolio", h.DeletePortfolio)

	// notifications
	private("GET /v1/fetch/notification", h.FetchNotifications)
	private("PATCH /v1/fetch/notification/{id}/read", h.MarkNotificationRead)
	private("GET /v1/fetch/notification/settings", h.NotificationSettings)
	private("POST /v1/notification/push_notification", h.SendNotification)

	// chat
	private("GET /v1/chats", h.ListChats)
	private("GET /v1/chats/search", h.SearchChats)
	private("GET /v1/chats/{chatId}/messages", h.ChatMessages)
	private("POST /v1/chats/send-message", h.SendMessage)
	private("GET /v1/users/{userId}/status", h.UserStatus)
	private("POST /v1/users/update-status", h.UpdatePresence)
}

// userView returns u with its media paths resolved.
func (h *Handler) userView(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	out := *u
	out.ProfilePic = h.deps.Resolver.URL(u.ProfilePic)
	out.AvatarURL = h.deps.Resolver.URL(u.AvatarURL)

	return &out
}
