package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nukigor/ai-voxarena/internal/http/response"
)

// bindObject decodes the request body into a JSON object. An empty body is
// an empty object. Writes the 400 itself and returns false on failure.
func bindObject(c *gin.Context) (map[string]any, bool) {
	body := map[string]any{}
	if c.Request.Body == nil {
		return body, true
	}
	dec := json.NewDecoder(c.Request.Body)
	if err := dec.Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("invalid request body"))
		return nil, false
	}
	if body == nil {
		body = map[string]any{}
	}
	return body, true
}
