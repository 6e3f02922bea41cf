package admin

import (
	"errors"
	"log"
	"net/http"

	"b200/internal/modules/reservation"
	"b200/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterAuthRoutes mounts the unauthenticated login endpoint.
func (h *Handler) RegisterAuthRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", h.Login)
}

// RegisterRoutes mounts endpoints that expect an admin token upstream.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/dates", h.Dates)
	admin.GET("/reservations", h.Day)
}

// Login godoc
// @Summary Admin Login
// @Description Exchange the admin password for a JWT
// @Tags Admin Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Admin password"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} gin.H
// @Failure 401 {object} gin.H
// @Router /api/v1/admin/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req.Password)
	if err != nil {
		log.Printf("admin_login_failed client_ip=%s reason=%q", c.ClientIP(), err.Error())
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "AUTH_FAILED", "Invalid password")
		case errors.Is(err, ErrLoginDisabled):
			response.Error(c, http.StatusServiceUnavailable, "LOGIN_DISABLED", "Admin login is not configured")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to issue token")
		}
		return
	}

	log.Printf("admin_login_ok client_ip=%s", c.ClientIP())
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Dates(c *gin.Context) {
	dates, err := h.service.Dates(c.Request.Context())
	if err != nil {
		log.Printf("admin_dates_error error=%q", err.Error())
		response.Error(c, http.StatusBadGateway, "STORE_ERROR", "Failed to read reservations")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"dates": dates})
}

// Day lists the raw rows for ?date=YYYY-MM-DD.
func (h *Handler) Day(c *gin.Context) {
	detail, err := h.service.Day(c.Request.Context(), c.Query("date"))
	if err != nil {
		switch {
		case errors.Is(err, reservation.ErrInvalidDate):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
		default:
			log.Printf("admin_day_error date=%q error=%q", c.Query("date"), err.Error())
			response.Error(c, http.StatusBadGateway, "STORE_ERROR", "Failed to read reservations")
		}
		return
	}
	response.Success(c, http.StatusOK, detail)
}
