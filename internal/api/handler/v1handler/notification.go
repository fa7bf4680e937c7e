package v1handler

import (
	"artisan/internal/notification"
	"artisan/pkg/domain"
	"artisan/pkg/storage"
	"net/http"
	"time"
)

type notificationItem struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	IsRead    bool      `json:"isRead"`
	Icon      string    `json:"icon"`
	Link      string    `json:"link"`
	Ref       string    `json:"ref"`
}

type notificationMeta struct {
	CurrentPage uint  `json:"current_page"`
	PerPage     uint  `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    uint  `json:"last_page"`
	UnreadCount int64 `json:"unread_count"`
}

type notificationSettings struct {
	Push  bool `json:"receive_push_notifications"`
	Email bool `json:"receive_transaction_emails"`
}

func (h *Handler) FetchNotifications(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	ctx := r.Context()
	filter := storage.NotificationFilter{
		UserID:  GetUserIDFromContext(ctx),
		Status:  domain.NotificationStatus(f.Get("status")),
		Type:    f.Get("type"),
		Page:    f.Uint("page", 1),
		PerPage: min(f.Uint("per_page", notification.DefaultPerPage), notification.MaxPerPage),
	}

	page, err := h.deps.Notification.List(ctx, filter)
	if err != nil {
		writeError(w, r, err)

		return
	}

	items := make([]notificationItem, 0, len(page.Notifications))
	for _, n := range page.Notifications {
		items = append(items, notificationItem{
			ID:        n.ID.String(),
			Type:      n.Type,
			Title:     n.Title,
			Message:   n.Body,
			Timestamp: n.CreatedAt,
			IsRead:    n.IsRead(),
			Icon:      n.Img,
			Link:      n.Link,
			Ref:       n.Ref,
		})
	}

	lastPage := uint((page.Total + int64(filter.PerPage) - 1) / int64(filter.PerPage))

	writeOK(w, r, http.StatusOK, "Notifications retrieved successfully",
		dataField(items),
		jsonField("meta", notificationMeta{
			CurrentPage: filter.Page,
			PerPage:     filter.PerPage,
			Total:       page.Total,
			LastPage:    max(lastPage, 1),
			UnreadCount: page.Unread,
		}))
}

func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.deps.Notification.MarkRead(r.Context(), GetUserIDFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeOK(w, r, http.StatusOK, "Notification marked as read", dataField(struct {
		ID     string                    `json:"id"`
		Status domain.NotificationStatus `json:"status"`
	}{ID: n.ID.String(), Status: n.Status}))
}

func (h *Handler) NotificationSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.deps.Notification.Settings(r.Context(), GetUserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeOK(w, r, http.StatusOK, "Notification settings retrieved successfully",
		dataField(notificationSettings{Push: settings.Push, Email: settings.Email}))
}

func (h *Handler) SendNotification(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	n, err := h.deps.Notification.Send(r.Context(), notification.SendRequest{
		ReceiverID: f.Get("receiver_id"),
		Title:      f.Get("title"),
		Message:    f.Get("message"),
		Type:       f.Get("type"),
		Link:       f.Get("link"),
		Img:        f.Get("img"),
	})
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeOK(w, r, http.StatusOK, "Push Notification Sent Successfully", dataField(n))
}
