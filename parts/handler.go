package parts

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/partsearch/partsearch/errors"
	"github.com/partsearch/partsearch/server"
)

// Handler exposes the parts service over HTTP.
type Handler struct {
	svc *Service
}

// NewHandler creates the HTTP handler for the parts API.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the parts routes on the router.
func (h *Handler) Register(r gin.IRouter) {
	g := r.Group("/parts")
	g.GET("/search", h.Search)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// Search handles GET /parts/search.
func (h *Handler) Search(c *gin.Context) {
	query, err := parseSearchQuery(c)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	page, err := h.svc.Search(c.Request.Context(), *query)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get handles GET /parts/:id.
func (h *Handler) Get(c *gin.Context) {
	part, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, part)
}

// Create handles POST /parts.
func (h *Handler) Create(c *gin.Context) {
	var input CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		server.RespondWithError(c, errors.Validation("invalid request body: "+err.Error()))
		return
	}

	part, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, part)
}

// Update handles PUT /parts/:id.
func (h *Handler) Update(c *gin.Context) {
	var input UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		server.RespondWithError(c, errors.Validation("invalid request body: "+err.Error()))
		return
	}

	part, err := h.svc.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, part)
}

// Delete handles DELETE /parts/:id.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		server.RespondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseSearchQuery(c *gin.Context) (*SearchQuery, error) {
	q := SearchQuery{
		Filter: Filter{
			Name:       c.Query("name"),
			PartNumber: c.Query("partNumber"),
			Category:   c.Query("category"),
			Status:     Status(c.Query("status")),
		},
	}

	if v := c.Query("minPrice"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.Validation("minPrice must be a number")
		}
		q.Filter.MinPrice = &f
	}
	if v := c.Query("maxPrice"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.Validation("maxPrice must be a number")
		}
		q.Filter.MaxPrice = &f
	}
	if v := c.Query("inStock"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errors.Validation("inStock must be true or false")
		}
		q.Filter.InStock = &b
	}
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, errors.Validation("page must be a positive integer")
		}
		q.Page.Number = n
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, errors.Validation("limit must be a positive integer")
		}
		q.Page.Limit = n
	}

	return &q, nil
}
