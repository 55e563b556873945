package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rosterly/shiftroster/pkg/core/store"
	"github.com/rosterly/shiftroster/pkg/db"
)

type roleRequirementReq struct {
	RoleID        string `json:"roleId" binding:"required"`
	RequiredCount int    `json:"requiredCount"`
}

type createTemplateReq struct {
	Name      string               `json:"name" binding:"required"`
	StartTime string               `json:"startTime" binding:"required"`
	EndTime   string               `json:"endTime" binding:"required"`
	Roles     []roleRequirementReq `json:"roles"`
}

type updateTemplateReq struct {
	Name      *string              `json:"name"`
	StartTime *string              `json:"startTime"`
	EndTime   *string              `json:"endTime"`
	Roles     []roleRequirementReq `json:"roles"`
}

func roleRequirements(reqs []roleRequirementReq) []store.RoleRequirement {
	if reqs == nil {
		return nil
	}
	out := make([]store.RoleRequirement, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, store.RoleRequirement{RoleID: r.RoleID, RequiredCount: r.RequiredCount})
	}
	return out
}

func (s *Server) listTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": s.reg.Templates.Templates()})
}

func (s *Server) createTemplate(c *gin.Context) {
	var req createTemplateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := s.reg.Templates.Add(c.Request.Context(), store.NewTemplate{
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Roles:     roleRequirements(req.Roles),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": s.reg.Templates.Templates()})
}

func (s *Server) updateTemplate(c *gin.Context) {
	var req updateTemplateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	patch := db.TemplatePatch{Name: req.Name, StartTime: req.StartTime, EndTime: req.EndTime}
	if err := s.reg.Templates.Update(c.Request.Context(), c.Param("id"), patch, roleRequirements(req.Roles)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": s.reg.Templates.Templates()})
}

func (s *Server) deleteTemplate(c *gin.Context) {
	if err := s.reg.Templates.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": s.reg.Templates.Templates()})
}
