package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/antonk9218/authd/internal/common"
	"github.com/antonk9218/authd/internal/server/services"
	"github.com/gin-gonic/gin"
)

// expiresAfterHeader carries the token expiry of a successful login.
const expiresAfterHeader = "X-Expires-After"

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type updateRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

func (s *Server) registerAccount(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "request_validation", "invalid request body")
		return
	}

	id, err := s.accounts.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			respondError(c, http.StatusConflict, "account_already_exists",
				fmt.Sprintf("%s already exists", req.Username))
			return
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"userId": id})
}

func (s *Server) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "request_validation", "invalid request body")
		return
	}

	res, err := s.accounts.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header(expiresAfterHeader, res.ExpiresAt.Format(time.RFC3339))
	c.JSON(http.StatusOK, gin.H{"userId": res.AccountID, "token": res.Token})
}

func (s *Server) me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"userId": c.GetString(accountIDKey)})
}

func (s *Server) updateCredentials(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "request_validation", "invalid request body")
		return
	}

	accountID := c.GetString(accountIDKey)
	err := s.accounts.UpdateCredentials(c.Request.Context(), accountID, services.CredentialUpdate{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"userId": accountID})
}

// writeError translates service outcomes into the wire error contract.
func writeError(c *gin.Context, err error) {
	var vErr *common.ValidationError
	switch {
	case errors.As(err, &vErr):
		respondError(c, http.StatusBadRequest, "request_validation", vErr.Error())
	case errors.Is(err, common.ErrAlreadyExists):
		respondError(c, http.StatusConflict, "account_already_exists", "account already exists")
	case errors.Is(err, common.ErrNotFound):
		respondError(c, http.StatusNotFound, "non_existing_user", "User does not exist")
	case errors.Is(err, common.ErrInvalidPassword):
		respondError(c, http.StatusUnauthorized, "invalid_password", "Invalid Password")
	case errors.Is(err, common.ErrUserLocked):
		respondError(c, http.StatusLocked, "user_locked", "User has been locked")
	case errors.Is(err, common.ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, "unauthorized", "Authentication Failed")
	default:
		respondError(c, http.StatusInternalServerError, "internal_server_error", "Internal Server Error")
	}
}

func respondError(c *gin.Context, status int, errType, message string) {
	c.JSON(status, gin.H{"error": gin.H{"type": errType, "message": message}})
}
