package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/restaurant/internal/domain/errors"
	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/server/http/dto"
)

// CatalogHandler serves categories and menu items.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// Categories handles GET /categories.
func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.facade.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		resp = append(resp, dto.NewCategoryResponse(category))
	}
	respondOK(c, http.StatusOK, resp)
}

// CreateCategory handles POST /categories.
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgMalformedBody)
		return
	}
	category, err := h.facade.CreateCategory(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, dto.NewCategoryResponse(*category))
}

// Menus handles GET /menus.
func (h *CatalogHandler) Menus(c *gin.Context) {
	items, err := h.facade.Menus(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]dto.MenuResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, dto.NewMenuResponse(item))
	}
	respondOK(c, http.StatusOK, resp)
}

// CreateMenu handles POST /menus.
func (h *CatalogHandler) CreateMenu(c *gin.Context) {
	draft, ok := bindMenu(c)
	if !ok {
		return
	}
	item, err := h.facade.CreateMenu(c.Request.Context(), draft)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, dto.NewMenuResponse(*item))
}

// UpdateMenu handles PUT /menus/:id.
func (h *CatalogHandler) UpdateMenu(c *gin.Context) {
	draft, ok := bindMenu(c)
	if !ok {
		return
	}
	item, err := h.facade.UpdateMenu(c.Request.Context(), c.Param("id"), draft)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.NewMenuResponse(*item))
}

// SetAvailability handles PATCH /menus/availability/:id.
func (h *CatalogHandler) SetAvailability(c *gin.Context) {
	var req dto.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgMalformedBody)
		return
	}
	item, err := h.facade.SetMenuAvailability(c.Request.Context(), c.Param("id"), req.IsAvailable)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.NewMenuResponse(*item))
}

// DeleteMenu handles DELETE /menus/:id.
func (h *CatalogHandler) DeleteMenu(c *gin.Context) {
	if err := h.facade.DeleteMenu(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Response{State: true, Message: "menu deleted"})
}

func bindMenu(c *gin.Context) (model.MenuDraft, bool) {
	var req dto.MenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgMalformedBody)
		return model.MenuDraft{}, false
	}
	draft, ok := req.Draft()
	if !ok {
		respondError(c, domainErrors.ErrMissingField)
		return model.MenuDraft{}, false
	}
	return draft, true
}
