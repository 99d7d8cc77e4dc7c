// Package notice carries a one-shot status message across a redirect and
// auto-expires it after the display window.
package notice

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
)

// DisplayWindow is how long a notice stays visible before auto-dismissal.
const DisplayWindow = 3000 * time.Millisecond

const cookieName = "leave_panel_notice"

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Notice struct {
	Message string `json:"message"`
	Kind    Kind   `json:"status"`
	SetAt   int64  `json:"set_at"` // unix milliseconds
}

// ActiveAt reports whether the notice is still inside its display window.
func (n Notice) ActiveAt(now time.Time) bool {
	set := time.UnixMilli(n.SetAt)
	return now.Before(set.Add(DisplayWindow))
}

// ExpiresInMS tells the destination page how long it may keep the banner up.
func (n Notice) ExpiresInMS(now time.Time) int64 {
	remaining := time.UnixMilli(n.SetAt).Add(DisplayWindow).Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining.Milliseconds()
}

// Set attaches a notice to the response so the next page can pick it up.
func Set(c *gin.Context, message string, kind Kind) {
	SetAt(c, message, kind, time.Now())
}

// SetAt is Set with an explicit clock.
func SetAt(c *gin.Context, message string, kind Kind, now time.Time) {
	payload, err := json.Marshal(Notice{Message: message, Kind: kind, SetAt: now.UnixMilli()})
	if err != nil {
		return
	}
	encoded := base64.URLEncoding.EncodeToString(payload)
	c.SetCookie(cookieName, encoded, int(DisplayWindow/time.Second)+1, "/", "", false, true)
}

// Pop reads the pending notice exactly once: the carrying cookie is scrubbed
// immediately so a refresh does not redisplay it. Expired notices are dropped.
func Pop(c *gin.Context) *Notice {
	return PopAt(c, time.Now())
}

// PopAt is Pop with an explicit clock.
func PopAt(c *gin.Context, now time.Time) *Notice {
	raw, err := c.Cookie(cookieName)
	if err != nil || raw == "" {
		return nil
	}

	// Scrub regardless of whether the payload decodes.
	c.SetCookie(cookieName, "", -1, "/", "", false, true)

	decoded, err := base64.URLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var n Notice
	if err := json.Unmarshal(decoded, &n); err != nil {
		return nil
	}
	if !n.ActiveAt(now) {
		return nil
	}
	return &n
}

// View is the JSON shape pages embed when a notice is pending.
type View struct {
	Message   string `json:"message"`
	Status    Kind   `json:"status"`
	ExpiresIn int64  `json:"expires_in_ms"`
}

// ViewOf renders a popped notice for a page payload, nil-safe.
func ViewOf(n *Notice, now time.Time) *View {
	if n == nil {
		return nil
	}
	return &View{Message: n.Message, Status: n.Kind, ExpiresIn: n.ExpiresInMS(now)}
}
