package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/nukigor/ai-voxarena/internal/http/response"
	"github.com/nukigor/ai-voxarena/internal/modules/debates"
)

type DebateHandler struct {
	debates debates.Usecases
}

func NewDebateHandler(uc debates.Usecases) *DebateHandler {
	return &DebateHandler{debates: uc}
}

// GET /debates?status=&format=
func (h *DebateHandler) List(c *gin.Context) {
	out, err := h.debates.List(c.Request.Context(), c.Query("status"), c.Query("format"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /debates/:id
func (h *DebateHandler) Get(c *gin.Context) {
	out, err := h.debates.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /debates
func (h *DebateHandler) Create(c *gin.Context) {
	body, ok := bindObject(c)
	if !ok {
		return
	}
	out, err := h.debates.Create(c.Request.Context(), body)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, out)
}

// PUT /debates/:id
// body: partial debate fields, plus an optional "participants" array that
// replaces the current set.
func (h *DebateHandler) Update(c *gin.Context) {
	body, ok := bindObject(c)
	if !ok {
		return
	}
	out, err := h.debates.Update(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// DELETE /debates/:id
func (h *DebateHandler) Delete(c *gin.Context) {
	if err := h.debates.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
