package livereload

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", Inject("/_livereload", h))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestInjectAddsScriptToHead(t *testing.T) {
	w := serve(t, func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html", []byte("<html><head><title>x</title></head><body>hi</body></html>"))
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	head := body[:strings.Index(body, "</head>")]
	assert.Contains(t, head, "<script>")
	assert.Contains(t, head, "/_livereload")
	assert.Contains(t, body, "<body>hi</body>")
}

func TestInjectPassesErrorsThrough(t *testing.T) {
	w := serve(t, func(c *gin.Context) {
		c.String(http.StatusInternalServerError, "boom")
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "boom", w.Body.String())
}

func TestInjectIntoFragment(t *testing.T) {
	// the parser synthesises <head> for any document
	out, err := injectScript([]byte("<p>bare</p>"), "/x")
	require.NoError(t, err)
	assert.Contains(t, string(out), "<head><script>")
}
