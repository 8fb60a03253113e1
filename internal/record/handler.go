package record

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/redmonkez12/fintrack-api/internal/apperror"
	"github.com/redmonkez12/fintrack-api/internal/auth"
	"github.com/redmonkez12/fintrack-api/internal/httputil"
	"github.com/redmonkez12/fintrack-api/internal/validation"
)

var errMissingPayload = errors.New("validated payload missing from request context")

// Handler contains HTTP handlers for record endpoints
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListResponse wraps the owner's records
type ListResponse struct {
	Records []Record `json:"records"`
}

// Response wraps a single record
type Response struct {
	Record Record `json:"record"`
}

// List returns the authenticated user's records
// @Summary      List records
// @Description  Records of the authenticated user, newest first
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} httputil.Envelope{data=ListResponse}
// @Failure      401 {object} httputil.Envelope "Unauthorized"
// @Router       /api/v1/record [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, r, apperror.Unauthorized("Authentication token is required"))
		return
	}

	records, err := h.service.List(r.Context(), userID)
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusOK, "Records retrieved successfully", ListResponse{Records: records})
}

// Get returns one record
// @Summary      Get record
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Record ID" format(uuid)
// @Success      200 {object} httputil.Envelope{data=Response}
// @Failure      400 {object} httputil.Envelope "Invalid id"
// @Failure      401 {object} httputil.Envelope "Unauthorized"
// @Failure      404 {object} httputil.Envelope "Record not found"
// @Router       /api/v1/record/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.target(w, r)
	if !ok {
		return
	}

	rec, err := h.service.Get(r.Context(), id, userID)
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusOK, "Record retrieved successfully", Response{Record: *rec})
}

// Create stores a new record
// @Summary      Create record
// @Tags         records
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateRecordRequest true "Record"
// @Success      201 {object} httputil.Envelope{data=Response}
// @Failure      400 {object} httputil.Envelope "Validation error"
// @Failure      401 {object} httputil.Envelope "Unauthorized"
// @Router       /api/v1/record [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, r, apperror.Unauthorized("Authentication token is required"))
		return
	}
	req, ok := validation.Payload[CreateRecordRequest](r)
	if !ok || req.Amount == nil {
		httputil.RespondError(w, r, errMissingPayload)
		return
	}

	rec, err := h.service.Create(r.Context(), userID, CreateInput{
		Amount:      *req.Amount,
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusCreated, "Record created successfully", Response{Record: *rec})
}

// Update applies a partial update to a record
// @Summary      Update record
// @Tags         records
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Record ID" format(uuid)
// @Param        request body UpdateRecordRequest true "Fields to update"
// @Success      200 {object} httputil.Envelope{data=Response}
// @Failure      400 {object} httputil.Envelope "Validation error"
// @Failure      401 {object} httputil.Envelope "Unauthorized"
// @Failure      404 {object} httputil.Envelope "Record not found"
// @Router       /api/v1/record/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.target(w, r)
	if !ok {
		return
	}
	req, ok := validation.Payload[UpdateRecordRequest](r)
	if !ok {
		httputil.RespondError(w, r, errMissingPayload)
		return
	}

	rec, err := h.service.Update(r.Context(), id, userID, req.Fields())
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusOK, "Record updated successfully", Response{Record: *rec})
}

// Delete removes a record
// @Summary      Delete record
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Record ID" format(uuid)
// @Success      200 {object} httputil.Envelope{data=Response}
// @Failure      400 {object} httputil.Envelope "Invalid id"
// @Failure      401 {object} httputil.Envelope "Unauthorized"
// @Failure      404 {object} httputil.Envelope "Record not found"
// @Router       /api/v1/record/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.target(w, r)
	if !ok {
		return
	}

	rec, err := h.service.Delete(r.Context(), id, userID)
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusOK, "Record deleted successfully", Response{Record: *rec})
}

// target resolves the caller and the validated record id
func (h *Handler) target(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, r, apperror.Unauthorized("Authentication token is required"))
		return uuid.Nil, uuid.Nil, false
	}

	params, ok := validation.Payload[RecordIDParams](r)
	if !ok {
		httputil.RespondError(w, r, errMissingPayload)
		return uuid.Nil, uuid.Nil, false
	}

	id, err := uuid.Parse(params.ID)
	if err != nil {
		httputil.RespondError(w, r, apperror.Validation("ID must be a valid UUID"))
		return uuid.Nil, uuid.Nil, false
	}

	return userID, id, true
}
