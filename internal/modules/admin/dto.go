package admin

import (
	"b200/internal/domain"
	"b200/internal/modules/reservation"
)

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type DayDetail struct {
	Date         string               `json:"date"`
	Tickets      int                  `json:"tickets"`
	Band         reservation.Band     `json:"band"`
	Reservations []domain.Reservation `json:"reservations"`
}
