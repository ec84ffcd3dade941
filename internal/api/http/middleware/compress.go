package middleware

import (
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

type brotliWriter struct {
	gin.ResponseWriter
	w     *brotli.Writer
	wrote bool
}

func (b *brotliWriter) Write(data []byte) (int, error) {
	b.wrote = true
	return b.w.Write(data)
}

func (b *brotliWriter) WriteString(s string) (int, error) {
	return b.Write([]byte(s))
}

// WriteHeader drops the length set by handlers; it no longer matches the body
func (b *brotliWriter) WriteHeader(code int) {
	b.Header().Del("Content-Length")
	b.ResponseWriter.WriteHeader(code)
}

func (b *brotliWriter) Flush() {
	_ = b.w.Flush()
	b.ResponseWriter.Flush()
}

// Brotli compresses responses for clients that accept "br".
// The gallery index repeats long delivery URLs, so it shrinks well.
func Brotli(level int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !acceptsBrotli(c.GetHeader("Accept-Encoding")) || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}

		c.Header("Content-Encoding", "br")
		c.Writer.Header().Add("Vary", "Accept-Encoding")

		bw := &brotliWriter{ResponseWriter: c.Writer, w: brotli.NewWriterLevel(c.Writer, level)}
		c.Writer = bw
		defer func() {
			if !bw.wrote {
				// bodiless responses (204, 304, redirects) stay unencoded
				bw.Header().Del("Content-Encoding")
				return
			}
			_ = bw.w.Close()
		}()

		c.Next()
	}
}

func acceptsBrotli(header string) bool {
	for _, part := range strings.Split(header, ",") {
		coding, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if strings.TrimSpace(coding) != "br" {
			continue
		}
		return strings.ReplaceAll(strings.TrimSpace(params), " ", "") != "q=0"
	}
	return false
}
