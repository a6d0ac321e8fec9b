package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/skillswap/skillswap/internal/ctxkeys"
	"github.com/skillswap/skillswap/internal/service"
	"github.com/skillswap/skillswap/internal/ui"
	"github.com/skillswap/skillswap/internal/ui/pages"
	"github.com/skillswap/skillswap/internal/validation"
)

// Plain text replies read by the message script.
const (
	msgMissingData       = "Error: Missing data"
	msgCannotMessageSelf = "Error: Cannot message self"
	msgInvalidRecipient  = "Error: Invalid recipient"
	msgTooLong           = "Error: Message too long"
	msgInsertFailed      = "Database error during message insertion"
	msgSent              = "Message sent successfully!"
)

type MessageHandler struct {
	messageService *service.MessageService
}

func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	sender := ctxkeys.User(r.Context())
	body := r.FormValue("message_body")

	recipientID, err := strconv.ParseInt(strings.TrimSpace(r.FormValue("recipient_id")), 10, 64)
	if err != nil {
		recipientID = 0
	}

	err = h.messageService.Send(r.Context(), sender, recipientID, body)
	switch {
	case err == nil:
		ui.RenderText(w, http.StatusOK, msgSent)
	case errors.Is(err, service.ErrMissingMessageData):
		ui.RenderText(w, http.StatusBadRequest, msgMissingData)
	case errors.Is(err, service.ErrSelfMessage):
		ui.RenderText(w, http.StatusBadRequest, msgCannotMessageSelf)
	case errors.Is(err, service.ErrUnknownRecipient):
		ui.RenderText(w, http.StatusBadRequest, msgInvalidRecipient)
	case errors.Is(err, validation.ErrMessageTooLong):
		ui.RenderText(w, http.StatusBadRequest, msgTooLong)
	default:
		slog.Error("message insert failed", "error", err, "sender_id", sender.ID, "recipient_id", recipientID)
		ui.RenderText(w, http.StatusInternalServerError, msgInsertFailed)
	}
}

func (h *MessageHandler) Inbox(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	messages, err := h.messageService.Inbox(r.Context(), user.ID)
	if err != nil {
		slog.Error("failed to load inbox", "error", err, "user_id", user.ID)
		ui.Render(w, r, pages.Messages(nil, "Messages could not be loaded."))
		return
	}
	ui.Render(w, r, pages.Messages(messages, ""))
}
