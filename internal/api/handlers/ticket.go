package handlers

import (
	"net/http"

	"github.com/festhub/eventhub/internal/api/dto"
	"github.com/festhub/eventhub/internal/api/middleware"
	"github.com/festhub/eventhub/internal/domain/ticket"
	"github.com/festhub/eventhub/internal/pkg/errors"
	"github.com/festhub/eventhub/internal/pkg/logger"
	"github.com/festhub/eventhub/internal/pkg/validator"
)

// TicketHandler handles ticket endpoints
type TicketHandler struct {
	service   ticket.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(service ticket.Service, log *logger.Logger, val *validator.Validator) *TicketHandler {
	return &TicketHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// Create books a ticket
// @Summary Book ticket
// @Description Book a ticket for an event. The user defaults to the session user.
// @Tags Tickets
// @Accept json
// @Produce json
// @Param request body dto.CreateTicketRequest true "Ticket"
// @Success 201 {object} dto.TicketEnvelope
// @Failure 400 {object} utils.ErrorResponse
// @Router /tickets [post]
func (h *TicketHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTicketRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err, "")
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		respondError(w, r, errors.ValidationError("Validation failed", validationErrs), "")
		return
	}

	if req.UserID == 0 {
		if userID, ok := middleware.GetUserID(r); ok {
			req.UserID = userID
		}
	}
	if req.UserID == 0 {
		respondError(w, r, errors.BadRequest("userid is required"), "")
		return
	}

	created, err := h.service.Create(r.Context(), req.ToTicket())
	if err != nil {
		respondError(w, r, err, "Failed to create ticket")
		return
	}

	respond(w, r, http.StatusCreated, dto.TicketEnvelope{Ticket: dto.ToTicketDTO(created)})
}

// List returns all tickets
// @Summary List tickets
// @Tags Tickets
// @Produce json
// @Success 200 {array} dto.TicketDTO
// @Router /tickets [get]
func (h *TicketHandler) List(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.service.List(r.Context())
	if err != nil {
		respondError(w, r, err, "Failed to fetch tickets")
		return
	}

	respond(w, r, http.StatusOK, dto.ToTicketDTOs(tickets))
}

// Get returns one ticket
// @Summary Get ticket
// @Tags Tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} dto.TicketDTO
// @Failure 404 {object} utils.ErrorResponse
// @Router /tickets/{id} [get]
func (h *TicketHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	t, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err, "Failed to fetch ticket")
		return
	}

	respond(w, r, http.StatusOK, dto.ToTicketDTO(t))
}

// ListByUser returns a user's tickets
// @Summary List a user's tickets
// @Tags Tickets
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {array} dto.TicketDTO
// @Router /tickets/user/{userId} [get]
func (h *TicketHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(r, "userId")
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	tickets, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "Failed to fetch user tickets")
		return
	}

	respond(w, r, http.StatusOK, dto.ToTicketDTOs(tickets))
}

// Delete removes a ticket
// @Summary Delete ticket
// @Tags Tickets
// @Param id path int true "Ticket ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /tickets/{id} [delete]
func (h *TicketHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondError(w, r, err, "Failed to delete ticket")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
