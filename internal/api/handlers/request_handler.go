package handlers

import (
	"legaldesk/internal/dto"
	"legaldesk/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type RequestHandler struct {
	requestService *service.RequestService
	claimService   *service.ClaimService
	logger         *zap.Logger
}

func NewRequestHandler(requestService *service.RequestService, claimService *service.ClaimService, logger *zap.Logger) *RequestHandler {
	return &RequestHandler{
		requestService: requestService,
		claimService:   claimService,
		logger:         logger,
	}
}

// CreateRequest godoc
// @Summary Create a legal request
// @Description Creates a draft request owned by the caller
// @Tags requests
// @Accept json
// @Produce json
// @Param request body dto.CreateLegalRequest true "Request fields"
// @Security Bearer
// @Success 201 {object} dto.LegalRequestResponse
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/v1/requests [post]
func (h *RequestHandler) CreateRequest(c *fiber.Ctx) error {
	caller, err := getCaller(c)
	if err != nil {
		return err
	}

	var req dto.CreateLegalRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	r, err := h.requestService.Create(c.UserContext(), caller, &req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewLegalRequestResponse(r))
}

// ListRequests godoc
// @Summary List requests
// @Description Clients get their own requests; attorneys also get available and assigned partitions
// @Tags requests
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.RequestListResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/requests [get]
func (h *RequestHandler) ListRequests(c *fiber.Ctx) error {
	caller, err := getCaller(c)
	if err != nil {
		return err
	}

	listing, err := h.requestService.ListForCaller(c.UserContext(), caller)
	if err != nil {
		return err
	}

	resp := dto.RequestListResponse{
		Requests: dto.NewLegalRequestResponses(listing.Requests),
	}
	if caller.Role.Staff() {
		resp.Available = dto.NewLegalRequestResponses(listing.Available)
		resp.Mine = dto.NewLegalRequestResponses(listing.Mine)
	}
	return c.JSON(resp)
}

// GetRequest godoc
// @Summary Get a request with its documents
// @Tags requests
// @Produce json
// @Param id path string true "Request ID"
// @Security Bearer
// @Success 200 {object} dto.RequestDetailResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/requests/{id} [get]
func (h *RequestHandler) GetRequest(c *fiber.Ctx) error {
	caller, err := getCaller(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	r, docs, err := h.requestService.GetDetail(c.UserContext(), caller, id)
	if err != nil {
		return err
	}

	return c.JSON(dto.RequestDetailResponse{
		Request:   dto.NewLegalRequestResponse(r),
		Documents: dto.NewDocumentResponses(docs),
	})
}

// SubmitRequest godoc
// @Summary Submit a draft request
// @Tags requests
// @Produce json
// @Param id path string true "Request ID"
// @Security Bearer
// @Success 200 {object} dto.LegalRequestResponse
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/requests/{id}/submit [post]
func (h *RequestHandler) SubmitRequest(c *fiber.Ctx) error {
	caller, err := getCaller(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	r, err := h.requestService.Submit(c.UserContext(), caller, id)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewLegalRequestResponse(r))
}

// ClaimRequest godoc
// @Summary Claim an unassigned request
// @Description Binds the calling attorney to the request and moves it to in_review
// @Tags requests
// @Produce json
// @Param id path string true "Request ID"
// @Security Bearer
// @Success 200 {object} dto.LegalRequestResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/requests/{id}/claim [post]
func (h *RequestHandler) ClaimRequest(c *fiber.Ctx) error {
	caller, err := getCaller(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	r, err := h.claimService.Claim(c.UserContext(), caller, id)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewLegalRequestResponse(r))
}

// CloseRequest godoc
// @Summary Close a request under review
// @Tags requests
// @Produce json
// @Param id path string true "Request ID"
// @Security Bearer
// @Success 200 {object} dto.LegalRequestResponse
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/requests/{id}/close [post]
func (h *RequestHandler) CloseRequest(c *fiber.Ctx) error {
	caller, err := getCaller(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	r, err := h.requestService.Close(c.UserContext(), caller, id)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewLegalRequestResponse(r))
}
