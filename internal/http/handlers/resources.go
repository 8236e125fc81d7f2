package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resource-dashboard/backend/internal/models"
	"github.com/resource-dashboard/backend/internal/service"
)

type ResourceQuery struct {
	ClientPartner string `form:"client_partner"`
	EndDate       string `form:"end_date"`
	Region        string `form:"region"`
}

func (h *Handler) filteredResources(c *gin.Context) ([]models.ResourceRecord, bool) {
	var q ResourceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid query", err.Error())
		return nil, false
	}
	// A malformed end_date is not rejected: it matches no record.
	return service.FilterResources(h.Store.Resources(), service.ResourceFilter{
		ClientPartner: q.ClientPartner,
		EndDateCutoff: q.EndDate,
		Region:        q.Region,
	}), true
}

// @Summary List resources
// @Tags resources
// @Produce json
// @Param client_partner query string false "Client partner or All"
// @Param end_date query string false "Keep resources ending on or before this date"
// @Param region query string false "Region or All"
// @Success 200 {object} map[string]any
// @Router /api/resources [get]
func (h *Handler) ResourcesList(c *gin.Context) {
	items, ok := h.filteredResources(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

// @Summary Resource dashboard summary
// @Tags resources
// @Produce json
// @Success 200 {object} models.ResourceOverview
// @Router /api/resources/summary [get]
func (h *Handler) ResourcesSummary(c *gin.Context) {
	items, ok := h.filteredResources(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, service.Overview(items))
}

// @Summary Resources grouped by client and project
// @Tags resources
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/resources/groups [get]
func (h *Handler) ResourcesGroups(c *gin.Context) {
	items, ok := h.filteredResources(c)
	if !ok {
		return
	}
	groups := service.GroupResourcesByProject(items)
	c.JSON(http.StatusOK, gin.H{"items": groups, "count": len(groups)})
}

func (h *Handler) ResourcesHighlights(c *gin.Context) {
	items, ok := h.filteredResources(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, service.Highlights(items))
}

func (h *Handler) ResourceClientPartners(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": service.ResourceClientPartners(h.Store.Resources())})
}
