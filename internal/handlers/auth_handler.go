package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prathamesh-patil-5090/Event-Manager-Web-App/internal/helpers"
	"github.com/prathamesh-patil-5090/Event-Manager-Web-App/internal/middleware"
	"github.com/prathamesh-patil-5090/Event-Manager-Web-App/internal/models"
	"github.com/prathamesh-patil-5090/Event-Manager-Web-App/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegisterUser handles multipart account registration with an optional
// profile picture and returns the profile together with a session token.
func RegisterUser(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.PostForm("username")
		email := c.PostForm("email")
		password := c.PostForm("password")

		if username == "" || email == "" || password == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("username, email and password are required"))
			return
		}

		var avatar *models.Image
		if fh, err := c.FormFile("profilePicture"); err == nil {
			img, err := helpers.ReadImageFile(fh)
			if err != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
				return
			}
			avatar = img
		}

		profile, token, err := us.Register(c.Request.Context(), username, email, password, avatar)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":           "User created successfully",
			"userId":            profile.ID,
			"username":          profile.Username,
			"email":             profile.Email,
			"hasProfilePicture": profile.HasProfilePicture,
			"token":             token,
		})
	}
}

// LoginUser authenticates by email or username and returns a session token.
func LoginUser(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			EmailOrUsername string `json:"emailOrUsername" binding:"required"`
			Password        string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("email/username and password are required"))
			return
		}

		profile, token, err := us.Authenticate(c.Request.Context(), req.EmailOrUsername, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token":    token,
			"userId":   profile.ID,
			"username": profile.Username,
			"email":    profile.Email,
		})
	}
}

// Me returns the caller's profile without credential or avatar bytes.
func Me(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}

		profile, err := us.GetProfile(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

func GetMyProfilePicture(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}

		image, err := us.GetProfilePicture(c.Request.Context(), userID)
		if err != nil {
			respondNoImage(c, err)
			return
		}
		serveImage(c, image)
	}
}

func UpdateMyProfilePicture(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}

		fh, err := c.FormFile("profilePicture")
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("no image provided"))
			return
		}
		image, err := helpers.ReadImageFile(fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		if err := us.UpdateProfilePicture(c.Request.Context(), userID, image); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":           "Profile picture updated successfully",
			"hasProfilePicture": true,
		})
	}
}

func DeleteMyProfilePicture(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}

		if err := us.DeleteProfilePicture(c.Request.Context(), userID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":           "Profile picture deleted successfully",
			"hasProfilePicture": false,
		})
	}
}

// callerID extracts the authenticated account id, replying 401 when the
// claims are missing or malformed.
func callerID(c *gin.Context) (primitive.ObjectID, bool) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
		return primitive.NilObjectID, false
	}
	id, err := claims.ObjectID()
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("invalid token subject"))
		return primitive.NilObjectID, false
	}
	return id, true
}
