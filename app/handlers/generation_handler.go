package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/amirphl/campaign-forge/app/dto"
	businessflow "github.com/amirphl/campaign-forge/business_flow"
	"github.com/amirphl/campaign-forge/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

const (
	generationRequestTimeout = 2 * time.Minute
	readRequestTimeout       = 30 * time.Second

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// GenerationHandlerInterface defines the contract for campaign generation handlers
type GenerationHandlerInterface interface {
	GenerateCampaigns(c fiber.Ctx) error
	PreviewCampaigns(c fiber.Ctx) error
	ListGeneratedCampaigns(c fiber.Ctx) error
	ExportCampaignSet(c fiber.Ctx) error
}

// GenerationHandler handles campaign generation HTTP requests
type GenerationHandler struct {
	generationFlow businessflow.GenerationFlow
	validator      *validator.Validate
}

func (h *GenerationHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *GenerationHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// NewGenerationHandler creates a new generation handler
func NewGenerationHandler(generationFlow businessflow.GenerationFlow) *GenerationHandler {
	return &GenerationHandler{
		generationFlow: generationFlow,
		validator:      validator.New(),
	}
}

// GenerateCampaigns expands the data source of a campaign set into campaigns, ad groups, ads and keywords
// @Summary Generate Campaigns
// @Tags Campaign Generation
// @Accept json
// @Produce json
// @Param campaignSetId path string true "Campaign set id"
// @Param request body dto.GenerateCampaignsRequest true "Generation configuration"
// @Success 201 {object} dto.APIResponse{data=dto.GenerateCampaignsResponse}
// @Failure 400 {object} dto.APIResponse "Invalid generation configuration"
// @Failure 409 {object} dto.APIResponse "Campaigns already synced or generation in progress"
// @Failure 500 {object} dto.APIResponse "Storage failure"
// @Router /api/v1/campaign-sets/{campaignSetId}/generate [post]
func (h *GenerationHandler) GenerateCampaigns(c fiber.Ctx) error {
	var req dto.GenerateCampaignsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.CampaignSetID = c.Params("campaignSetId")

	if err := h.validateRequest(&req); err != nil {
		return h.validationErrorResponse(c, err)
	}

	ctx, cancel := h.createRequestContext(c, generationRequestTimeout)
	defer cancel()

	result, err := h.generationFlow.GenerateCampaigns(ctx, &req, h.clientMetadata(c))
	if err != nil {
		return h.flowErrorResponse(c, err, "Campaign generation failed")
	}

	return h.SuccessResponse(c, fiber.StatusCreated, result.Message, result)
}

// PreviewCampaigns computes the hierarchy a generation run would create without writing it
// @Summary Preview Campaign Generation
// @Tags Campaign Generation
// @Accept json
// @Produce json
// @Param campaignSetId path string true "Campaign set id"
// @Param request body dto.PreviewCampaignsRequest true "Generation configuration"
// @Success 200 {object} dto.APIResponse{data=dto.PreviewCampaignsResponse}
// @Failure 400 {object} dto.APIResponse "Invalid generation configuration"
// @Router /api/v1/campaign-sets/{campaignSetId}/preview [post]
func (h *GenerationHandler) PreviewCampaigns(c fiber.Ctx) error {
	var req dto.PreviewCampaignsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.CampaignSetID = c.Params("campaignSetId")

	if err := h.validateRequest(&req); err != nil {
		return h.validationErrorResponse(c, err)
	}

	ctx, cancel := h.createRequestContext(c, generationRequestTimeout)
	defer cancel()

	result, err := h.generationFlow.PreviewCampaigns(ctx, &req)
	if err != nil {
		return h.flowErrorResponse(c, err, "Campaign preview failed")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Campaign preview generated successfully", result)
}

// ListGeneratedCampaigns returns the generated hierarchy of a campaign set
// @Summary List Generated Campaigns
// @Tags Campaign Generation
// @Produce json
// @Param campaignSetId path string true "Campaign set id"
// @Success 200 {object} dto.APIResponse{data=dto.ListGeneratedCampaignsResponse}
// @Router /api/v1/campaign-sets/{campaignSetId}/campaigns [get]
func (h *GenerationHandler) ListGeneratedCampaigns(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, readRequestTimeout)
	defer cancel()

	result, err := h.generationFlow.ListGeneratedCampaigns(ctx, c.Params("campaignSetId"))
	if err != nil {
		return h.flowErrorResponse(c, err, "Failed to list generated campaigns")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Generated campaigns retrieved successfully", result)
}

// ExportCampaignSet downloads the generated hierarchy of a campaign set as an xlsx workbook
// @Summary Export Campaign Set
// @Tags Campaign Generation
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param campaignSetId path string true "Campaign set id"
// @Success 200 {file} file
// @Router /api/v1/campaign-sets/{campaignSetId}/export [get]
func (h *GenerationHandler) ExportCampaignSet(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, readRequestTimeout)
	defer cancel()

	result, err := h.generationFlow.ExportCampaignSet(ctx, c.Params("campaignSetId"), h.clientMetadata(c))
	if err != nil {
		return h.flowErrorResponse(c, err, "Failed to export campaign set")
	}

	c.Set("Content-Type", xlsxContentType)
	c.Set("Content-Disposition", "attachment; filename="+result.Filename)
	return c.Send(result.Data)
}

func (h *GenerationHandler) validateRequest(req any) error {
	return h.validator.Struct(req)
}

func (h *GenerationHandler) validationErrorResponse(c fiber.Ctx, err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", err.Error())
	}

	validationErrors := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		validationErrors = append(validationErrors, getValidationErrorMessage(fe))
	}
	return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
}

// flowErrorResponse maps business errors to status codes; the engine's message is passed through
func (h *GenerationHandler) flowErrorResponse(c fiber.Ctx, err error, fallback string) error {
	switch {
	case businessflow.IsGenerationConfigError(err):
		return h.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), businessflow.CodeGenerationConfigInvalid, nil)
	case businessflow.IsGenerationConflict(err):
		return h.ErrorResponse(c, fiber.StatusConflict, err.Error(), businessflow.CodeGenerationConflict, nil)
	case businessflow.IsGenerationStorageError(err):
		log.Printf("%s: %v", fallback, err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, err.Error(), businessflow.CodeGenerationStorageFailed, nil)
	}

	var be *businessflow.BusinessError
	if errors.As(err, &be) {
		log.Printf("%s: %v", fallback, err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, be.Message, be.Code, nil)
	}

	log.Printf("%s: %v", fallback, err)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, fallback, "INTERNAL_ERROR", nil)
}

func (h *GenerationHandler) clientMetadata(c fiber.Ctx) *businessflow.ClientMetadata {
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	metadata.SetRequestID(requestIDOf(c))
	metadata.AddAdditional("route", c.Route().Path)
	return metadata
}

// createRequestContext detaches the flow from the fasthttp request context and bounds it with timeout
func (h *GenerationHandler) createRequestContext(c fiber.Ctx, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, requestIDOf(c))
	return ctx, cancel
}

func requestIDOf(c fiber.Ctx) string {
	if id := c.GetRespHeader(fiber.HeaderXRequestID); id != "" {
		return id
	}
	return c.Get(fiber.HeaderXRequestID)
}
