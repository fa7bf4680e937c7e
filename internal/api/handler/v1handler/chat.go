package v1handler

import (
	"artisan/internal/chat"
	"artisan/pkg/serrors"
	"net/http"
	"strconv"
)

func (h *Handler) ListChats(w http.ResponseWriter, r *http.Request) {
	chats, err := h.deps.Chat.List(r.Context(), GetUserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeOK(w, r, http.StatusOK, "Chats fetched successfully", jsonField("chats", chats))
}

func (h *Handler) SearchChats(w http.ResponseWriter, r *http.Request) {
	chats, err := h.deps.Chat.Search(r.Context(), GetUserIDFromContext(r.Context()), r.URL.Query().Get("query"))
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeOK(w, r, http.StatusOK, "Chats fetched successfully", jsonField("chats", chats))
}

func (h *Handler) ChatMessages(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	messages, pagination, err := h.deps.Chat.Messages(r.Context(), GetUserIDFromContext(r.Context()),
		r.PathValue("chatId"), f.Uint("page", 1), f.Uint("limit", chat.DefaultLimit))
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeOK(w, r, http.StatusOK, "Messages fetched successfully",
		jsonField("messages", messages), jsonField("pagination", pagination))
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	sent, err := h.deps.Chat.Send(r.Context(), GetUserIDFromContext(r.Context()), chat.SendRequest{
		ReceiverID: f.Get("receiver_id"),
		Message:    f.Get("message"),
		Type:       f.Get("message_type"),
	})
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeOK(w, r, http.StatusCreated, "Message sent successfully", dataField(sent))
}

func (h *Handler) UserStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.deps.Chat.UserStatus(r.Context(), r.PathValue("userId"))
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeOK(w, r, http.StatusOK, "User status fetched successfully", jsonField("user", status))
}

func (h *Handler) UpdatePresence(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	online, err := strconv.ParseBool(f.Get("is_online"))
	if err != nil {
		writeError(w, r, serrors.With(serrors.ErrUnprocessable, "The is online field must be true or false."))

		return
	}

	if err := h.deps.Chat.SetPresence(r.Context(), GetUserIDFromContext(r.Context()), online); err != nil {
		writeError(w, r, err)

		return
	}

	writeOK(w, r, http.StatusOK, "Status updated successfully")
}
