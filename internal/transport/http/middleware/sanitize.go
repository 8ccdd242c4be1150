package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/ErlanBelekov/jobs-api/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

const maxBodyBytes = 1 << 20

// Fields whose values are never rewritten.
var sanitizeSkip = map[string]struct{}{
	"password": {},
}

// Sanitize strips HTML markup from every string in a JSON request body, the
// query string and path parameters. Strings without a '<' are left untouched.
// Bodies that are not valid JSON pass through so binding can reject them.
func Sanitize() gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()

	return func(c *gin.Context) {
		if c.Request.Body != nil && c.Request.Body != http.NoBody {
			body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					_ = c.Error(domain.NewValidationError("Request body too large"))
				} else {
					_ = c.Error(domain.NewValidationError("Invalid request body"))
				}
				c.Abort()
				return
			}
			if isJSON(c.ContentType()) {
				body = sanitizeJSON(policy, body)
			}
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
			c.Request.ContentLength = int64(len(body))
		}

		if c.Request.URL.RawQuery != "" {
			q := c.Request.URL.Query()
			for key, values := range q {
				for i, v := range values {
					values[i] = sanitizeString(policy, v)
				}
				q[key] = values
			}
			c.Request.URL.RawQuery = q.Encode()
		}

		for i := range c.Params {
			c.Params[i].Value = sanitizeString(policy, c.Params[i].Value)
		}

		c.Next()
	}
}

func isJSON(contentType string) bool {
	return contentType == "application/json" || strings.HasSuffix(contentType, "+json")
}

func sanitizeJSON(policy *bluemonday.Policy, body []byte) []byte {
	if !bytes.Contains(body, []byte("<")) && !bytes.Contains(bytes.ToLower(body), []byte(`\u003c`)) {
		return body
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return body
	}
	// Trailing data makes the body invalid; leave it for binding to report.
	if dec.More() {
		return body
	}

	out, err := json.Marshal(sanitizeValue(policy, v))
	if err != nil {
		return body
	}
	return out
}

func sanitizeValue(policy *bluemonday.Policy, v any) any {
	switch t := v.(type) {
	case string:
		return sanitizeString(policy, t)
	case []any:
		for i := range t {
			t[i] = sanitizeValue(policy, t[i])
		}
		return t
	case map[string]any:
		for k, val := range t {
			if _, skip := sanitizeSkip[strings.ToLower(k)]; skip {
				continue
			}
			t[k] = sanitizeValue(policy, val)
		}
		return t
	default:
		return v
	}
}

func sanitizeString(policy *bluemonday.Policy, s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	return policy.Sanitize(s)
}
