package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/resource-dashboard/backend/internal/http/middleware"
	"github.com/resource-dashboard/backend/internal/models"
	"github.com/resource-dashboard/backend/internal/service"
	"github.com/resource-dashboard/backend/internal/store"
)

const maxTrendDays = 365

type IssueQuery struct {
	ClientPartner string `form:"client_partner"`
	Escalated     string `form:"escalated" validate:"omitempty,oneof=All true false Yes No"`
	RAGStatus     string `form:"rag_status" validate:"omitempty,oneof=All Red Amber Green"`
}

type IssueRequest struct {
	Client          string `json:"client" validate:"required"`
	Project         string `json:"project" validate:"required"`
	ClientPartner   string `json:"client_partner" validate:"required"`
	RaisedBy        string `json:"raised_by" validate:"required"`
	Description     string `json:"description" validate:"required"`
	ResolutionOwner string `json:"resolution_owner" validate:"required"`
	Escalated       bool   `json:"escalated"`
	RAGStatus       string `json:"rag_status" validate:"required,oneof=Red Amber Green"`
}

func (r IssueRequest) fields() models.IssueFields {
	return models.IssueFields{
		Client:          strings.TrimSpace(r.Client),
		Project:         strings.TrimSpace(r.Project),
		ClientPartner:   strings.TrimSpace(r.ClientPartner),
		RaisedBy:        strings.TrimSpace(r.RaisedBy),
		Description:     strings.TrimSpace(r.Description),
		ResolutionOwner: strings.TrimSpace(r.ResolutionOwner),
		Escalated:       r.Escalated,
		RAGStatus:       models.RAGStatus(r.RAGStatus),
	}
}

type ResolveRequest struct {
	Note string `json:"note"`
}

type TrendQuery struct {
	Days int    `form:"days" validate:"omitempty,min=1,max=365"`
	End  string `form:"end" validate:"omitempty,datetime=2006-01-02"`
}

// @Summary List issues
// @Tags issues
// @Produce json
// @Param client_partner query string false "Client partner or All"
// @Param escalated query string false "true, false or All"
// @Param rag_status query string false "Red, Amber, Green or All"
// @Success 200 {object} map[string]any
// @Router /api/issues [get]
func (h *Handler) IssuesList(c *gin.Context) {
	var q IssueQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid query", err.Error())
		return
	}
	if err := h.Validator.Struct(q); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	items := service.FilterIssues(h.Store.Issues(), service.IssueFilter{
		ClientPartner: q.ClientPartner,
		Escalated:     parseEscalated(q.Escalated),
		RAGStatus:     q.RAGStatus,
	})
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

// @Summary Issue dashboard summary over all issues
// @Tags issues
// @Produce json
// @Success 200 {object} models.IssueSummaryStats
// @Router /api/issues/summary [get]
func (h *Handler) IssuesSummary(c *gin.Context) {
	c.JSON(http.StatusOK, service.SummarizeIssues(h.Store.Issues()))
}

// @Summary Daily open and resolved issue counts
// @Tags issues
// @Produce json
// @Param days query int false "Window length in days"
// @Param end query string false "Last day of the window"
// @Success 200 {object} map[string]any
// @Router /api/issues/trend [get]
func (h *Handler) IssuesTrend(c *gin.Context) {
	var q TrendQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid query", err.Error())
		return
	}
	if err := h.Validator.Struct(q); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	days := q.Days
	if days == 0 {
		days = h.TrendDays
	}
	if days <= 0 || days > maxTrendDays {
		days = 30
	}
	end := h.Store.Now()
	if q.End != "" {
		end, _ = time.Parse("2006-01-02", q.End)
	}
	c.JSON(http.StatusOK, gin.H{"items": service.IssueTrend(h.Store.Issues(), end, days), "days": days})
}

func (h *Handler) IssueClientPartners(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": service.IssueClientPartners(h.Store.Issues())})
}

func (h *Handler) IssueDetails(c *gin.Context) {
	issue, err := h.Store.Issue(c.Param("id"))
	if err != nil {
		h.writeIssueError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

func (h *Handler) IssueHistory(c *gin.Context) {
	issue, err := h.Store.Issue(c.Param("id"))
	if err != nil {
		h.writeIssueError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": issue.History, "issue_id": issue.ID})
}

// @Summary Create issue
// @Tags issues
// @Accept json
// @Produce json
// @Param X-User header string true "Acting user"
// @Success 201 {object} models.IssueRecord
// @Failure 400 {object} map[string]any
// @Router /api/issues [post]
func (h *Handler) IssueCreate(c *gin.Context) {
	req, actor, ok := h.bindIssueRequest(c)
	if !ok {
		return
	}
	issue := h.Store.CreateIssue(req.fields(), actor)
	c.JSON(http.StatusCreated, issue)
}

// @Summary Edit issue
// @Tags issues
// @Accept json
// @Produce json
// @Param id path string true "Issue ID"
// @Param X-User header string true "Acting user"
// @Success 200 {object} models.IssueRecord
// @Failure 404 {object} map[string]any
// @Router /api/issues/{id} [put]
func (h *Handler) IssueEdit(c *gin.Context) {
	req, actor, ok := h.bindIssueRequest(c)
	if !ok {
		return
	}
	issue, err := h.Store.EditIssue(c.Param("id"), req.fields(), actor)
	if err != nil {
		h.writeIssueError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// @Summary Resolve issue
// @Tags issues
// @Accept json
// @Produce json
// @Param id path string true "Issue ID"
// @Param X-User header string true "Acting user"
// @Success 200 {object} models.IssueRecord
// @Failure 409 {object} map[string]any
// @Router /api/issues/{id}/resolve [post]
func (h *Handler) IssueResolve(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req ResolveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
			return
		}
	}
	issue, err := h.Store.ResolveIssue(c.Param("id"), actor, strings.TrimSpace(req.Note))
	if err != nil {
		h.writeIssueError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// @Summary Send alerts for escalated issues
// @Tags issues
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/issues/alerts [post]
func (h *Handler) IssueAlerts(c *gin.Context) {
	escalated := service.EscalatedIssues(h.Store.Issues())
	for _, issue := range escalated {
		h.Logger.Info().
			Str("issue_id", issue.ID).
			Str("client", issue.Client).
			Str("resolution_owner", issue.ResolutionOwner).
			Str("rag_status", string(issue.RAGStatus)).
			Msg("escalation alert")
	}
	ids := make([]string, 0, len(escalated))
	for _, issue := range escalated {
		ids = append(ids, issue.ID)
	}
	c.JSON(http.StatusOK, gin.H{"sent": len(escalated), "issue_ids": ids})
}

func (h *Handler) bindIssueRequest(c *gin.Context) (IssueRequest, string, bool) {
	actor, ok := requireActor(c)
	if !ok {
		return IssueRequest{}, "", false
	}
	var req IssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return IssueRequest{}, "", false
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return IssueRequest{}, "", false
	}
	return req, actor, true
}

func requireActor(c *gin.Context) (string, bool) {
	actor := middleware.ActorFrom(c)
	if actor == "" {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", middleware.ActorHeader+" header is required", nil)
		return "", false
	}
	return actor, true
}

func (h *Handler) writeIssueError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrIssueNotFound):
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Issue not found", nil)
	case errors.Is(err, service.ErrAlreadyResolved):
		writeError(c, http.StatusConflict, "CONFLICT", "Issue already resolved", nil)
	default:
		h.Logger.Error().Err(err).Msg("issue operation failed")
		writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Issue operation failed", err.Error())
	}
}

// parseEscalated maps the escalated query value onto an optional flag.
func parseEscalated(value string) *bool {
	var flag bool
	switch value {
	case "true", "Yes":
		flag = true
	case "false", "No":
		flag = false
	default:
		return nil
	}
	return &flag
}
