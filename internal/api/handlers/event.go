package handlers

import (
	stderrors "errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-viper/mapstructure/v2"

	"github.com/festhub/eventhub/internal/api/dto"
	"github.com/festhub/eventhub/internal/api/middleware"
	"github.com/festhub/eventhub/internal/config"
	"github.com/festhub/eventhub/internal/domain/event"
	"github.com/festhub/eventhub/internal/pkg/errors"
	"github.com/festhub/eventhub/internal/pkg/logger"
	"github.com/festhub/eventhub/internal/pkg/validator"
)

// EventHandler handles event endpoints
type EventHandler struct {
	service   event.Service
	config    *config.Config
	logger    *logger.Logger
	validator *validator.Validator
}

// NewEventHandler creates a new event handler
func NewEventHandler(service event.Service, cfg *config.Config, log *logger.Logger, val *validator.Validator) *EventHandler {
	return &EventHandler{
		service:   service,
		config:    cfg,
		logger:    log,
		validator: val,
	}
}

// Create handles event creation
// @Summary Create event
// @Description Create an event from a multipart form with an optional image file
// @Tags Events
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param image formData file false "Cover image"
// @Success 201 {object} dto.EventDTO
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /events [post]
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, err := h.parseForm(w, r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	e := form.ToEvent()
	if userID, ok := middleware.GetUserID(r); ok {
		e.OwnerID = userID
	}

	var image *event.Image
	if r.MultipartForm != nil {
		file, header, err := r.FormFile("image")
		switch {
		case err == nil:
			defer file.Close()
			image = &event.Image{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Body:        file,
			}
		case !stderrors.Is(err, http.ErrMissingFile):
			respondError(w, r, errors.BadRequest("Invalid image upload"), "")
			return
		}
	}

	created, err := h.service.Create(r.Context(), e, image)
	if err != nil {
		respondError(w, r, err, "Failed to save the event")
		return
	}

	respond(w, r, http.StatusCreated, dto.ToEventDTO(created))
}

// List returns all events
// @Summary List events
// @Tags Events
// @Produce json
// @Param category query string false "Category filter"
// @Param owner query int false "Owner filter"
// @Success 200 {array} dto.EventDTO
// @Router /events [get]
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := event.Filter{Category: r.URL.Query().Get("category")}
	if owner := r.URL.Query().Get("owner"); owner != "" {
		ownerID, err := strconv.ParseInt(owner, 10, 64)
		if err != nil {
			respondError(w, r, errors.BadRequest("Invalid owner"), "")
			return
		}
		filter.OwnerID = &ownerID
	}

	events, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondError(w, r, err, "Failed to fetch events")
		return
	}

	respond(w, r, http.StatusOK, dto.ToEventDTOs(events))
}

// Get returns a single event. Also serves the order and payment summaries.
// @Summary Get event
// @Tags Events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} dto.EventDTO
// @Failure 404 {object} utils.ErrorResponse
// @Router /events/{id} [get]
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	e, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err, "Failed to fetch event")
		return
	}

	respond(w, r, http.StatusOK, dto.ToEventDTO(e))
}

// Like increments the like counter
// @Summary Like event
// @Tags Events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} dto.EventDTO
// @Failure 404 {object} utils.ErrorResponse
// @Router /events/{id}/like [post]
func (h *EventHandler) Like(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	e, err := h.service.Like(r.Context(), id)
	if err != nil {
		respondError(w, r, err, "Server error")
		return
	}

	respond(w, r, http.StatusOK, dto.ToEventDTO(e))
}

// Comment appends a comment
// @Summary Comment on event
// @Tags Events
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param request body dto.CommentRequest true "Comment"
// @Success 200 {object} dto.EventDTO
// @Failure 404 {object} utils.ErrorResponse
// @Router /events/{id}/comments [post]
func (h *EventHandler) Comment(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	var req dto.CommentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err, "")
		return
	}
	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		respondError(w, r, errors.ValidationError("Validation failed", validationErrs), "")
		return
	}

	e, err := h.service.Comment(r.Context(), id, req.Text)
	if err != nil {
		respondError(w, r, err, "Failed to add comment")
		return
	}

	respond(w, r, http.StatusOK, dto.ToEventDTO(e))
}

// Update replaces an event's fields
// @Summary Update event
// @Tags Events
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} dto.EventDTO
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /events/{id} [put]
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	form, err := h.parseForm(w, r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	e := form.ToEvent()
	e.ID = id

	updated, err := h.service.Update(r.Context(), userID, e)
	if err != nil {
		respondError(w, r, err, "Failed to update event")
		return
	}

	respond(w, r, http.StatusOK, dto.ToEventDTO(updated))
}

// Delete removes an event
// @Summary Delete event
// @Tags Events
// @Param id path int true "Event ID"
// @Success 204
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /events/{id} [delete]
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		respondError(w, r, err, "Failed to delete event")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseForm reads a multipart or urlencoded event form and validates it
func (h *EventHandler) parseForm(w http.ResponseWriter, r *http.Request) (*dto.EventForm, error) {
	maxBytes := h.config.Server.MaxUploadBytes
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		if !stderrors.Is(err, http.ErrNotMultipart) {
			var tooLarge *http.MaxBytesError
			if stderrors.As(err, &tooLarge) {
				return nil, errors.New("PAYLOAD_TOO_LARGE", "Upload exceeds the size limit", http.StatusRequestEntityTooLarge)
			}
			return nil, errors.BadRequest("Invalid form data")
		}
		if err := r.ParseForm(); err != nil {
			return nil, errors.BadRequest("Invalid form data")
		}
	}

	var form dto.EventForm
	if err := decodeForm(r.PostForm, &form); err != nil {
		return nil, errors.BadRequest("Invalid form data").WithDetails(err.Error())
	}

	if validationErrs := h.validator.Validate(form); len(validationErrs) > 0 {
		return nil, errors.ValidationError("Validation failed", validationErrs)
	}
	return &form, nil
}

// decodeForm maps form values onto dst by its form tags. Field names match
// case-insensitively and empty numbers decode as zero.
func decodeForm(values url.Values, dst interface{}) error {
	input := make(map[string]interface{}, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			input[key] = vals[0]
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "form",
		WeaklyTypedInput: true,
		Result:           dst,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}
