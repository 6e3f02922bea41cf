package reservation

import (
	"errors"
	"log"
	"net/http"

	"b200/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reservations", h.Submit)
	rg.GET("/reservations/lookup", h.Lookup)
	rg.GET("/config/public", h.PublicConfig)
}

// Submit stores a booking as one row per selected day.
// @Summary		Submit a reservation
// @Tags		Reservations
// @Param		request	body	SubmitRequest	true	"Booking form"
// @Success		201	{object}	SubmitResult
// @Failure		400	{object}	gin.H "VALIDATION_ERROR with the rejected fields"
// @Failure		502	{object}	gin.H "STORE_ERROR, details carry the days already stored"
// @Router		/api/v1/reservations [POST]
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation", verr.Fields)
		case result != nil:
			response.ErrorWithDetails(c, http.StatusBadGateway, "STORE_ERROR", "Reservation could not be fully saved", result)
		default:
			log.Printf("reservation_submit_error error=%q", err.Error())
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit reservation")
		}
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// Lookup lists the caller's bookings for a phone number.
// @Summary		Look up reservations by phone
// @Tags		Reservations
// @Param		phone	query	string	true	"Phone number, punctuation ignored"
// @Success		200	{object}	gin.H{reservations=[]domain.BookingSummary}
// @Failure		400	{object}	gin.H
// @Failure		502	{object}	gin.H
// @Router		/api/v1/reservations/lookup [GET]
func (h *Handler) Lookup(c *gin.Context) {
	found, err := h.service.Lookup(c.Request.Context(), c.Query("phone"))
	if err != nil {
		switch {
		case errors.Is(err, ErrPhoneRequired):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Phone number is required")
		default:
			log.Printf("reservation_lookup_error error=%q", err.Error())
			response.Error(c, http.StatusBadGateway, "STORE_ERROR", "Failed to read reservations")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservations": found})
}

func (h *Handler) PublicConfig(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.PublicSettings())
}
