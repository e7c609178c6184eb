package handler

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	visitorCookieName   = "is_visitor_id"
	visitorCookieMaxAge = 365 * 24 * 60 * 60
)

// ensureSessionID returns the visitor session id from the request
// cookie, issuing and setting a fresh one when none is present. The id
// shape is "<unix millis>-<base36 suffix>".
func ensureSessionID(c *gin.Context) string {
	if id, err := c.Cookie(visitorCookieName); err == nil {
		if id = strings.TrimSpace(id); id != "" {
			return id
		}
	}

	id := newSessionID()
	c.SetCookie(visitorCookieName, id, visitorCookieMaxAge, "/", "", false, true)
	return id
}

func newSessionID() string {
	suffix := strconv.FormatUint(rand.Uint64(), 36)
	if len(suffix) > 13 {
		suffix = suffix[:13]
	}
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), suffix)
}
