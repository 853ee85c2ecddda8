package controller

import (
	"strconv"

	"compliance-review-be/internal/dto"
	"compliance-review-be/internal/pkg/serverutils"
	"compliance-review-be/internal/service"
	ws "compliance-review-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type IReviewController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Select(ctx *fiber.Ctx) error
	Fix(ctx *fiber.Ctx) error
	Feedback(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
	AskSuggestion(ctx *fiber.Ctx) error
	Audit(ctx *fiber.Ctx) error
}

type reviewController struct {
	service      service.IReviewService
	auditService service.IAuditService
	hub          *ws.Hub
}

func NewReviewController(service service.IReviewService, auditService service.IAuditService, hub *ws.Hub) IReviewController {
	return &reviewController{service: service, auditService: auditService, hub: hub}
}

func (c *reviewController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/review/v1")
	h.Use(auth) // ✅ PROTECTED
	h.Post("/", c.Create)
	h.Get("/:id", c.Show)
	h.Delete("/:id", c.Delete)
	h.Post("/:id/select", c.Select)
	h.Post("/:id/findings/:findingId/fix", c.Fix)
	h.Post("/:id/findings/:findingId/feedback", c.Feedback)
	h.Post("/:id/chat", c.Chat)
	h.Post("/:id/chat/suggestions/:index", c.AskSuggestion)
	h.Get("/:id/audit", c.Audit)
	h.Get("/:id/ws", c.upgrade, websocket.New(c.stream))
}

func userID(ctx *fiber.Ctx) string {
	id, _ := ctx.Locals("user_id").(string)
	return id
}

func (c *reviewController) Create(ctx *fiber.Ctx) error {
	res, err := c.service.Create(ctx.Context(), userID(ctx))
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create review", res))
}

func (c *reviewController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.Show(ctx.Context(), userID(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show review", res))
}

func (c *reviewController) Delete(ctx *fiber.Ctx) error {
	if err := c.service.Delete(ctx.Context(), userID(ctx), ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete review", nil))
}

func (c *reviewController) Select(ctx *fiber.Ctx) error {
	var req dto.SelectDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Select(ctx.Context(), userID(ctx), ctx.Params("id"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success select document", res))
}

func (c *reviewController) Fix(ctx *fiber.Ctx) error {
	res, err := c.service.Fix(ctx.Context(), userID(ctx), ctx.Params("id"), ctx.Params("findingId"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fix finding", res))
}

func (c *reviewController) Feedback(ctx *fiber.Ctx) error {
	var req dto.FeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.Feedback(ctx.Context(), userID(ctx), ctx.Params("id"), ctx.Params("findingId"), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success record feedback", nil))
}

func (c *reviewController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Chat(ctx.Context(), userID(ctx), ctx.Params("id"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success chat", res))
}

func (c *reviewController) AskSuggestion(ctx *fiber.Ctx) error {
	index, err := strconv.Atoi(ctx.Params("index"))
	if err != nil {
		return serverutils.BadRequest("Invalid suggestion index")
	}

	res, err := c.service.AskSuggestion(ctx.Context(), userID(ctx), ctx.Params("id"), index)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success chat", res))
}

func (c *reviewController) Audit(ctx *fiber.Ctx) error {
	if c.auditService == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Audit trail is not configured")
	}
	if err := c.service.Authorize(ctx.Context(), userID(ctx), ctx.Params("id")); err != nil {
		return err
	}

	res, err := c.auditService.History(ctx.Context(), ctx.Params("id"), ctx.Query("event_type"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get audit trail", res))
}

func (c *reviewController) upgrade(ctx *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}
	if err := c.service.Authorize(ctx.Context(), userID(ctx), ctx.Params("id")); err != nil {
		return err
	}
	ctx.Locals("review_id", ctx.Params("id"))
	return ctx.Next()
}

func (c *reviewController) stream(conn *websocket.Conn) {
	reviewID, _ := conn.Locals("review_id").(string)
	ws.ServeWs(c.hub, conn, reviewID)
}
