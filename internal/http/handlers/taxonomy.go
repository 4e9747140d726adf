package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/nukigor/ai-voxarena/internal/http/response"
	"github.com/nukigor/ai-voxarena/internal/modules/taxonomy"
)

type TaxonomyHandler struct {
	taxonomy taxonomy.Usecases
}

func NewTaxonomyHandler(uc taxonomy.Usecases) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomy: uc}
}

// GET /taxonomy?category=
func (h *TaxonomyHandler) ListActive(c *gin.Context) {
	out, err := h.taxonomy.ListActive(c.Request.Context(), c.Query("category"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /taxonomy/categories
func (h *TaxonomyHandler) ListCategoryKeys(c *gin.Context) {
	out, err := h.taxonomy.ListCategoryKeys(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	if out == nil {
		out = []string{}
	}
	response.RespondOK(c, out)
}

// GET /taxonomy/terms?category=&page=&pageSize=
func (h *TaxonomyHandler) ListTerms(c *gin.Context) {
	out, err := h.taxonomy.ListTerms(c.Request.Context(), c.Query("category"), c.Query("page"), c.Query("pageSize"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /taxonomy/terms
func (h *TaxonomyHandler) CreateTerm(c *gin.Context) {
	body, ok := bindObject(c)
	if !ok {
		return
	}
	out, err := h.taxonomy.CreateTerm(c.Request.Context(), body)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, out)
}

// PUT /taxonomy/terms/:id
func (h *TaxonomyHandler) UpdateTerm(c *gin.Context) {
	body, ok := bindObject(c)
	if !ok {
		return
	}
	out, err := h.taxonomy.UpdateTerm(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// DELETE /taxonomy/terms/:id
func (h *TaxonomyHandler) DeleteTerm(c *gin.Context) {
	if err := h.taxonomy.DeleteTerm(c.Request.Context(), c.Param("id")); err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
