package helpers

import (
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CustomClaims is the session token payload: the account identity plus the
// registered expiry/issue claims. Validity is stateless, nothing is stored
// server-side.
type CustomClaims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// ObjectID parses the subject account id out of the claims.
func (c *CustomClaims) ObjectID() (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(c.UserID)
}
