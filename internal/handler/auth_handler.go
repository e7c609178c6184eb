package handler

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/infoshqip/internal/service"
)

const (
	sessionUserIDKey    = "user_id"
	sessionUserEmailKey = "user_email"
	sessionIsAdminKey   = "is_admin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyEmailRequest struct {
	Email string `json:"email"`
}

// Login authenticates an admin and establishes the session. Failed
// attempts count toward the per-email rate limit.
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req, "email and password are required") {
		return
	}

	// The address is sanity checked before credentials are touched. An
	// unreachable verification service never blocks the login.
	verification := a.emails.Verify(c.Request.Context(), req.Email)
	if !verification.Valid {
		respondError(c, http.StatusBadRequest, verification.Error)
		return
	}

	user, err := a.auth.Authenticate(verification.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	isAdmin, err := a.auth.IsAdmin(user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserIDKey, user.ID)
	session.Set(sessionUserEmailKey, user.Email)
	session.Set(sessionIsAdminKey, isAdmin)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save session")
		return
	}

	response := gin.H{"email": user.Email, "is_admin": isAdmin}
	if verification.Warning != "" {
		response["warning"] = verification.Warning
	}
	c.JSON(http.StatusOK, response)
}

// Logout clears the session.
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save session")
		return
	}
	c.Status(http.StatusNoContent)
}

// Me reports the authenticated identity, resolved against the user
// table so a session for a since-deleted account is rejected.
func (a *API) Me(c *gin.Context) {
	userID, _ := sessionIdentity(c)
	user, err := a.auth.GetUser(userID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "authentication required")
			return
		}
		respondServiceError(c, err)
		return
	}
	isAdmin, _ := sessions.Default(c).Get(sessionIsAdminKey).(bool)
	c.JSON(http.StatusOK, gin.H{"email": user.Email, "is_admin": isAdmin})
}

// VerifyEmail runs the full verification pipeline for an address and
// returns the verdict, including typo suggestions.
func (a *API) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if !bindJSON(c, &req, "email is required") {
		return
	}

	result := a.emails.Verify(c.Request.Context(), req.Email)
	status := http.StatusOK
	if !result.Valid {
		status = http.StatusBadRequest
	}
	c.JSON(status, result)
}

// AuthRequired rejects requests without an authenticated session.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get(sessionUserIDKey) == nil {
			respondError(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminRequired rejects authenticated sessions that lack the admin role.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if isAdmin, _ := session.Get(sessionIsAdminKey).(bool); !isAdmin {
			respondError(c, http.StatusForbidden, "admin role required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func sessionIdentity(c *gin.Context) (uint, string) {
	session := sessions.Default(c)
	id, _ := session.Get(sessionUserIDKey).(uint)
	email, _ := session.Get(sessionUserEmailKey).(string)
	return id, email
}
