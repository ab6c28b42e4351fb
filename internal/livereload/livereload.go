// Package livereload reloads open pages when the dev server restarts.
package livereload

import (
	"bytes"
	"errors"
	"log"
	"net/http"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var errNoHead = errors.New("no <head> element")

type bufferedWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	return w.body.Write(b)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	return w.body.WriteString(s)
}

// Inject buffers the HTML produced by next and adds the reload script pointing at socketPath.
// Non-200 responses pass through untouched.
func Inject(socketPath string, next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		orig := c.Writer
		w := &bufferedWriter{ResponseWriter: orig, body: &bytes.Buffer{}}
		c.Writer = w
		next(c)
		c.Writer = orig

		if w.Status() != http.StatusOK {
			_, _ = orig.Write(w.body.Bytes())
			return
		}

		out, err := injectScript(w.body.Bytes(), socketPath)
		if err != nil {
			log.Printf("could not inject livereload script: %s", err)
			out = w.body.Bytes()
		}
		_, _ = orig.Write(out)
	}
}

// Handler keeps a socket open until the client or server goes away.
func Handler(c *gin.Context) {
	socket, err := websocket.Accept(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("could not open livereload websocket: %s", err)
		return
	}
	defer socket.CloseNow()

	ctx := socket.CloseRead(c.Request.Context())
	<-ctx.Done()
}

func injectScript(page []byte, socketPath string) ([]byte, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, err
	}
	head := findHead(doc)
	if head == nil {
		return nil, errNoHead
	}

	var src bytes.Buffer
	err = scriptTemplate.Execute(&src, &scriptConfig{Path: socketPath, RetryInterval: 500, MaxRetries: 10})
	if err != nil {
		return nil, err
	}
	head.AppendChild(&html.Node{
		Type:       html.ElementNode,
		DataAtom:   atom.Script,
		Data:       atom.Script.String(),
		FirstChild: &html.Node{Type: html.TextNode, Data: src.String()},
	})

	var out bytes.Buffer
	if err := html.Render(&out, doc); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func findHead(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Head {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if h := findHead(c); h != nil {
			return h
		}
	}
	return nil
}
