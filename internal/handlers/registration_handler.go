package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prathamesh-patil-5090/Event-Manager-Web-App/internal/services"
)

// RegisterForEvent adds the caller to the event's participant set.
func RegisterForEvent(rs *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}
		eventID, ok := pathObjectID(c, "id")
		if !ok {
			return
		}

		view, err := rs.Register(c.Request.Context(), userID, eventID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// UnregisterFromEvent removes the caller from the event's participant set.
func UnregisterFromEvent(rs *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}
		eventID, ok := pathObjectID(c, "id")
		if !ok {
			return
		}

		view, err := rs.Unregister(c.Request.Context(), userID, eventID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// GetRegistrationStatus reports the caller's relationship to the event.
func GetRegistrationStatus(rs *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}
		eventID, ok := pathObjectID(c, "id")
		if !ok {
			return
		}

		status, err := rs.Status(c.Request.Context(), userID, eventID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, status)
	}
}
