package notice

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setAt(t *testing.T, message string, kind Kind, at time.Time) string {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	SetAt(c, message, kind, at)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == cookieName {
			return ck.Value
		}
	}
	t.Fatal("notice cookie was not set")
	return ""
}

func popAt(value string, at time.Time) (*Notice, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if value != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: value})
	}
	c.Request = req
	return PopAt(c, at), w
}

func TestNoticeVisibleInsideWindow(t *testing.T) {
	base := time.UnixMilli(1_700_000_000_000)
	value := setAt(t, "Data created successfully", KindSuccess, base)

	n, _ := popAt(value, base.Add(2999*time.Millisecond))
	if n == nil {
		t.Fatal("notice dropped inside its display window")
	}
	if n.Message != "Data created successfully" || n.Kind != KindSuccess {
		t.Fatalf("unexpected notice: %+v", n)
	}
	if got := n.ExpiresInMS(base.Add(2999 * time.Millisecond)); got != 1 {
		t.Fatalf("ExpiresInMS = %d, want 1", got)
	}
}

func TestNoticeExpiresAfterThreeSeconds(t *testing.T) {
	base := time.UnixMilli(1_700_000_000_000)
	value := setAt(t, "Data deleted successfully", KindSuccess, base)

	if n, _ := popAt(value, base.Add(3001*time.Millisecond)); n != nil {
		t.Fatalf("notice survived past the display window: %+v", n)
	}
}

func TestPopScrubsCookie(t *testing.T) {
	base := time.Now()
	value := setAt(t, "x", KindError, base)

	_, w := popAt(value, base)
	var scrubbed bool
	for _, ck := range w.Result().Cookies() {
		if ck.Name == cookieName && ck.MaxAge < 0 {
			scrubbed = true
		}
	}
	if !scrubbed {
		t.Fatal("pop did not scrub the carrying cookie")
	}
}

func TestPopMalformedPayload(t *testing.T) {
	if n, _ := popAt("not-base64!!", time.Now()); n != nil {
		t.Fatalf("malformed payload produced a notice: %+v", n)
	}
}

func TestPopNoCookie(t *testing.T) {
	if n, _ := popAt("", time.Now()); n != nil {
		t.Fatalf("missing cookie produced a notice: %+v", n)
	}
}

func TestViewOf(t *testing.T) {
	if ViewOf(nil, time.Now()) != nil {
		t.Fatal("nil notice should render nil view")
	}
	base := time.UnixMilli(1_700_000_000_000)
	n := &Notice{Message: "Import success", Kind: KindSuccess, SetAt: base.UnixMilli()}
	v := ViewOf(n, base.Add(time.Second))
	if v.Message != "Import success" || v.Status != KindSuccess || v.ExpiresIn != 2000 {
		t.Fatalf("unexpected view: %+v", v)
	}
}
