package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/nukigor/ai-voxarena/internal/http/response"
	"github.com/nukigor/ai-voxarena/internal/modules/taxonomy"
)

type TaxonomyCategoryHandler struct {
	taxonomy taxonomy.Usecases
}

func NewTaxonomyCategoryHandler(uc taxonomy.Usecases) *TaxonomyCategoryHandler {
	return &TaxonomyCategoryHandler{taxonomy: uc}
}

// GET /taxonomycategories?page=&pageSize=
func (h *TaxonomyCategoryHandler) List(c *gin.Context) {
	out, err := h.taxonomy.ListCategories(c.Request.Context(), c.Query("page"), c.Query("pageSize"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /taxonomycategories/:id
func (h *TaxonomyCategoryHandler) Get(c *gin.Context) {
	out, err := h.taxonomy.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /taxonomycategories
func (h *TaxonomyCategoryHandler) Create(c *gin.Context) {
	body, ok := bindObject(c)
	if !ok {
		return
	}
	out, err := h.taxonomy.CreateCategory(c.Request.Context(), body)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, out)
}

// PUT /taxonomycategories/:id
// body: { "fullName": "...", "key": "...", "description": "..." }
func (h *TaxonomyCategoryHandler) Update(c *gin.Context) {
	body, ok := bindObject(c)
	if !ok {
		return
	}
	out, err := h.taxonomy.UpdateCategory(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// DELETE /taxonomycategories/:id
func (h *TaxonomyCategoryHandler) Delete(c *gin.Context) {
	if err := h.taxonomy.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
