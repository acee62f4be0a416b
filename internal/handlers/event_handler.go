package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prathamesh-patil-5090/Event-Manager-Web-App/internal/helpers"
	"github.com/prathamesh-patil-5090/Event-Manager-Web-App/internal/models"
	"github.com/prathamesh-patil-5090/Event-Manager-Web-App/internal/services"
)

// dateLayouts accepted for the multipart date field. Browsers submit the
// datetime-local format, API clients RFC 3339.
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04"}

func parseEventDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CreateEvent handles the multipart event creation form with an optional
// image upload.
func CreateEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}

		dateStr := c.PostForm("date")
		date, ok := parseEventDate(dateStr)
		if dateStr != "" && !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid date format"))
			return
		}

		event := &models.Event{
			Title:       c.PostForm("title"),
			Description: c.PostForm("description"),
			Date:        date,
			Location:    c.PostForm("location"),
		}

		if fh, err := c.FormFile("image"); err == nil {
			image, err := helpers.ReadImageFile(fh)
			if err != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
				return
			}
			event.Image = image
		}

		view, err := es.Create(c.Request.Context(), userID, event)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, view)
	}
}

func ListEvents(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		views, err := es.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, views)
	}
}

func GetMyEvents(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}

		views, err := es.ListMine(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, views)
	}
}

func GetEventsByCreator(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := helpers.StringTrim(c.Param("username"))
		views, err := es.ListByCreatorUsername(c.Request.Context(), username)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, views)
	}
}

func GetEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathObjectID(c, "id")
		if !ok {
			return
		}

		view, err := es.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func GetEventImage(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathObjectID(c, "id")
		if !ok {
			return
		}

		image, err := es.GetImage(c.Request.Context(), id)
		if err != nil {
			respondNoImage(c, err)
			return
		}
		serveImage(c, image)
	}
}

// UpdateEvent applies a multipart partial update. Absent fields keep their
// stored values; deleteImage=true clears the image even when a file is sent.
func UpdateEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}
		id, ok := pathObjectID(c, "id")
		if !ok {
			return
		}

		update := &models.EventUpdate{
			DeleteImage: c.PostForm("deleteImage") == "true",
		}
		if title, exists := c.GetPostForm("title"); exists {
			update.Title = &title
		}
		if description, exists := c.GetPostForm("description"); exists {
			update.Description = &description
		}
		if location, exists := c.GetPostForm("location"); exists {
			update.Location = &location
		}
		if dateStr, exists := c.GetPostForm("date"); exists {
			date, ok := parseEventDate(dateStr)
			if !ok {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid date format"))
				return
			}
			update.Date = &date
		}
		if fh, err := c.FormFile("image"); err == nil {
			image, err := helpers.ReadImageFile(fh)
			if err != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
				return
			}
			update.NewImage = image
		}

		view, err := es.Update(c.Request.Context(), userID, id, update)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func DeleteEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}
		id, ok := pathObjectID(c, "id")
		if !ok {
			return
		}

		if err := es.Delete(c.Request.Context(), userID, id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
	}
}

func DeleteEventImage(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}
		id, ok := pathObjectID(c, "id")
		if !ok {
			return
		}

		view, err := es.DeleteImage(c.Request.Context(), userID, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Image deleted successfully",
			"event":   view,
		})
	}
}
