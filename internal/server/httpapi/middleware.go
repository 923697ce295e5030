package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// accountIDKey is the gin context key the auth middleware stores the
// authenticated account id under.
const accountIDKey = "accountID"

// authRequired resolves the Authorization header to an account id and aborts
// with a uniform unauthorized response on any failure.
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			respondError(c, http.StatusUnauthorized, "unauthorized", "Authentication Failed")
			c.Abort()
			return
		}

		accountID, err := s.accounts.Authenticate(header)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "unauthorized", "Authentication Failed")
			c.Abort()
			return
		}

		c.Set(accountIDKey, accountID)
		c.Next()
	}
}
