package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prathamesh-patil-5090/Event-Manager-Web-App/internal/models"
	"github.com/prathamesh-patil-5090/Event-Manager-Web-App/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// imageCacheControl is applied to blob responses; images are immutable until
// replaced, so clients may cache aggressively.
const imageCacheControl = "public, max-age=31557600"

// GetUser returns the public profile for the given account id.
func GetUser(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathObjectID(c, "id")
		if !ok {
			return
		}

		profile, err := us.GetProfile(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// GetUserProfilePicture serves the raw avatar bytes for a public profile.
func GetUserProfilePicture(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathObjectID(c, "id")
		if !ok {
			return
		}

		image, err := us.GetProfilePicture(c.Request.Context(), id)
		if err != nil {
			respondNoImage(c, err)
			return
		}
		serveImage(c, image)
	}
}

func serveImage(c *gin.Context, image *models.Image) {
	c.Header("Cache-Control", imageCacheControl)
	c.Data(http.StatusOK, image.ContentType, image.Data)
}

// respondNoImage treats a missing blob on a read path as 404 rather than the
// conflict status used on delete paths.
func respondNoImage(c *gin.Context, err error) {
	if errors.Is(err, models.ErrNoImage) {
		c.JSON(http.StatusNotFound, models.ErrorResponse("image not found"))
		return
	}
	respondError(c, err)
}

func pathObjectID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid id"))
		return primitive.NilObjectID, false
	}
	return id, true
}
