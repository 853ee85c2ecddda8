package controller

import (
	"compliance-review-be/internal/dto"
	"compliance-review-be/internal/pkg/serverutils"
	"compliance-review-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ICollaboratorController serves the suggestion and analysis backends the
// review workspaces call. Responses use the collaborators' bare JSON shapes.
type ICollaboratorController interface {
	RegisterRoutes(r fiber.Router)
	SuggestedQuestions(ctx *fiber.Ctx) error
	AnalyzeDocument(ctx *fiber.Ctx) error
	AnalyzeText(ctx *fiber.Ctx) error
}

type collaboratorController struct {
	suggestionService service.ISuggestionService
	analysisService   service.IAnalysisService
}

func NewCollaboratorController(suggestionService service.ISuggestionService, analysisService service.IAnalysisService) ICollaboratorController {
	return &collaboratorController{
		suggestionService: suggestionService,
		analysisService:   analysisService,
	}
}

func (c *collaboratorController) RegisterRoutes(r fiber.Router) {
	r.Get("/suggested-questions/:class", c.SuggestedQuestions)
	r.Post("/analyze-document", c.AnalyzeDocument)
	r.Post("/analyze-text", c.AnalyzeText)
}

func (c *collaboratorController) SuggestedQuestions(ctx *fiber.Ctx) error {
	res, err := c.suggestionService.SuggestedQuestions(ctx.Context(), ctx.Params("class"))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *collaboratorController) AnalyzeDocument(ctx *fiber.Ctx) error {
	var req dto.AnalyzeDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.analysisService.AnalyzeDocument(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *collaboratorController) AnalyzeText(ctx *fiber.Ctx) error {
	var req dto.AnalyzeTextRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Missing prompt or context")
	}

	res, err := c.analysisService.AnalyzeText(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
