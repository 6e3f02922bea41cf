package calendar

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"b200/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/calendar", h.UserMonth)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/calendar", h.AdminMonth)
}

// UserMonth returns the booking calendar with bands only.
// @Summary		Month calendar
// @Tags		Calendar
// @Param		year	query	int	false	"Year, defaults to the opening month"
// @Param		month	query	int	false	"Month 1-12"
// @Success		200	{object}	MonthView
// @Failure		400	{object}	gin.H
// @Router		/api/v1/calendar [GET]
func (h *Handler) UserMonth(c *gin.Context) {
	h.month(c, ViewUser)
}

func (h *Handler) AdminMonth(c *gin.Context) {
	h.month(c, ViewAdmin)
}

func (h *Handler) month(c *gin.Context, view View) {
	year, month := h.service.DefaultMonth()
	var err error
	if raw := strings.TrimSpace(c.Query("year")); raw != "" {
		if year, err = strconv.Atoi(raw); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "year must be a number")
			return
		}
	}
	if raw := strings.TrimSpace(c.Query("month")); raw != "" {
		if month, err = strconv.Atoi(raw); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "month must be a number")
			return
		}
	}

	mv, err := h.service.Month(c.Request.Context(), year, month, view)
	if err != nil {
		if errors.Is(err, ErrInvalidMonth) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid year or month")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build calendar")
		return
	}
	response.Success(c, http.StatusOK, mv)
}

// WSHandler streams day totals to open calendars.
type WSHandler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewWSHandler accepts any origin when allowedOrigins is empty.
func NewWSHandler(hub *Hub, allowedOrigins []string) *WSHandler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowed) == 0 {
					return true
				}
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
	}
}

// HandleWebSocket serves GET /ws/calendar. The stream is read-only; client
// frames are discarded.
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("calendar_ws_upgrade_failed error=%q", err.Error())
		return
	}

	id := uuid.NewString()
	cl := h.hub.register(id, conn)
	log.Printf("calendar_ws_connected client=%s", id)

	defer func() {
		h.hub.Unregister(id)
		log.Printf("calendar_ws_disconnected client=%s", id)
	}()

	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	})

	done := make(chan struct{})
	defer close(done)
	go pingLoop(cl, done)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("calendar_ws_read_error client=%s error=%q", id, err.Error())
			}
			return
		}
	}
}

func pingLoop(cl *client, done <-chan struct{}) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := cl.writePing(); err != nil {
				return
			}
		}
	}
}
