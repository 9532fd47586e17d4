package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/salone-skillshub/skillshub/internal/core/ports"
)

// MessageHandler handles direct messaging.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// Send handles POST /v1/messages.
//
// @Summary      Send a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        Idempotency-Key  header    string              false  "Deduplication key"
// @Param        body             body      sendMessageRequest  true   "Message"
// @Success      201              {object}  domain.Message
// @Failure      400              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Router       /v1/messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req sendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	msg, err := h.service.Send(c.Request().Context(), id, ports.SendMessageInput{
		RecipientID:    req.RecipientID,
		ThreadID:       req.ThreadID,
		ApplicationID:  req.ApplicationID,
		Body:           req.Body,
		IdempotencyKey: c.Request().Header.Get(IdempotencyKeyHeader),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, msg)
}

// Threads handles GET /v1/messages/threads.
//
// @Summary      List the caller's threads
// @Tags         messages
// @Produce      json
// @Security     SessionCookie
// @Success      200  {array}  domain.Thread
// @Router       /v1/messages/threads [get]
func (h *MessageHandler) Threads(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	threads, err := h.service.ListThreads(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(threads))
}

// Thread handles GET /v1/messages/threads/:id.
//
// @Summary      Read a thread
// @Tags         messages
// @Produce      json
// @Security     SessionCookie
// @Param        id   path      string  true  "Thread ID"
// @Success      200  {object}  threadResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/messages/threads/{id} [get]
func (h *MessageHandler) Thread(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	detail, err := h.service.GetThread(c.Request().Context(), id, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, threadResponse{Thread: detail.Thread, Messages: nonNil(detail.Messages)})
}

// MarkRead handles POST /v1/messages/threads/:id/read.
//
// @Summary      Mark a thread as read
// @Tags         messages
// @Produce      json
// @Security     SessionCookie
// @Param        id   path      string  true  "Thread ID"
// @Success      200  {object}  markReadResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/messages/threads/{id}/read [post]
func (h *MessageHandler) MarkRead(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	n, err := h.service.MarkRead(c.Request().Context(), id, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, markReadResponse{Updated: n})
}
