package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/nukigor/ai-voxarena/internal/http/response"
	"github.com/nukigor/ai-voxarena/internal/modules/personas"
)

type PersonaHandler struct {
	personas personas.Usecases
}

func NewPersonaHandler(uc personas.Usecases) *PersonaHandler {
	return &PersonaHandler{personas: uc}
}

// GET /personas
func (h *PersonaHandler) List(c *gin.Context) {
	out, err := h.personas.List(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /personas/:id
func (h *PersonaHandler) Get(c *gin.Context) {
	out, err := h.personas.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /personas
func (h *PersonaHandler) Create(c *gin.Context) {
	body, ok := bindObject(c)
	if !ok {
		return
	}
	out, err := h.personas.Create(c.Request.Context(), body)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, out)
}

// PUT /personas/:id
func (h *PersonaHandler) Update(c *gin.Context) {
	body, ok := bindObject(c)
	if !ok {
		return
	}
	out, err := h.personas.Update(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// DELETE /personas/:id
func (h *PersonaHandler) Delete(c *gin.Context) {
	if err := h.personas.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
