// FILE: internal/controller/chat_controller.go
package controller

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"chat-memory-be/internal/dto"
	"chat-memory-be/internal/pkg/serverutils"
	"chat-memory-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendChat(ctx *fiber.Ctx) error
	SendChatStream(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	ClearHistory(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("", c.SendChat)
	h.Get("stream", c.SendChatStream)
	h.Get("history/:sessionId", c.GetHistory)
	h.Delete("history/:sessionId", c.ClearHistory)
}

func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendChat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

// SendChatStream replies over server-sent events: one data frame per
// fragment, then "event: done" on natural completion or "event: error"
// when generation fails midway.
func (c *chatController) SendChatStream(ctx *fiber.Ctx) error {
	req := dto.SendChatRequest{
		SessionId: ctx.Query("session_id"),
		Message:   ctx.Query("message"),
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	// The stream outlives this handler, so it gets its own context;
	// cancel fires when the writer exits (client gone or stream ended)
	// and tells the pipeline to stop and skip the history append.
	streamCtx, cancel := context.WithCancel(context.Background())

	chunks, err := c.chatService.SendChatStream(streamCtx, &req)
	if err != nil {
		cancel()
		return err
	}

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")

	ctx.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()

		for chunk := range chunks {
			if chunk.Err != nil {
				fmt.Fprintf(w, "event: error\ndata: %s\n\n", chunk.Err.Error())
				w.Flush()
				return
			}
			if chunk.Done {
				fmt.Fprint(w, "event: done\ndata: \n\n")
				w.Flush()
				return
			}

			writeSSEData(w, chunk.Content)
			if err := w.Flush(); err != nil {
				// Client disconnected; the deferred cancel aborts the
				// pipeline before it persists anything.
				return
			}
		}
	})

	return nil
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("sessionId")

	items, err := c.chatService.GetHistory(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get history", items))
}

func (c *chatController) ClearHistory(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("sessionId")

	if err := c.chatService.ClearHistory(ctx.Context(), sessionId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success clear history", fiber.Map{"session_id": sessionId}))
}

// writeSSEData emits one fragment as an SSE data frame. Fragments may
// contain newlines, which SSE encodes as consecutive data lines.
func writeSSEData(w *bufio.Writer, content string) {
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(w, "data: %s\n", line)
	}
	fmt.Fprint(w, "\n")
}
