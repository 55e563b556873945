package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rosterly/shiftroster/pkg/core/store"
	"github.com/rosterly/shiftroster/pkg/db"
)

type createRoleReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type updateRoleReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (s *Server) listRoles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"roles": s.reg.Roles.Roles()})
}

func (s *Server) createRole(c *gin.Context) {
	var req createRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := s.reg.Roles.Add(c.Request.Context(), store.NewRole{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"roles": s.reg.Roles.Roles()})
}

func (s *Server) updateRole(c *gin.Context) {
	var req updateRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	patch := db.RolePatch{Name: req.Name, Description: req.Description}
	if err := s.reg.Roles.Update(c.Request.Context(), c.Param("id"), patch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"roles": s.reg.Roles.Roles()})
}

func (s *Server) deleteRole(c *gin.Context) {
	if err := s.reg.Roles.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"roles": s.reg.Roles.Roles()})
}
