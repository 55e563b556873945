package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rosterly/shiftroster/pkg/core/store"
	"github.com/rosterly/shiftroster/pkg/db"
)

type createGroupReq struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	PersonIDs   []string `json:"personIds"`
}

type updateGroupReq struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	PersonIDs   []string `json:"personIds"`
}

func (s *Server) listGroups(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"groups": s.reg.Groups.Groups()})
}

func (s *Server) createGroup(c *gin.Context) {
	var req createGroupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := s.reg.Groups.Add(c.Request.Context(), store.NewGroup{
		Name:        req.Name,
		Description: req.Description,
		PersonIDs:   req.PersonIDs,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": s.reg.Groups.Groups()})
}

func (s *Server) updateGroup(c *gin.Context) {
	var req updateGroupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	patch := db.GroupPatch{Name: req.Name, Description: req.Description}
	if err := s.reg.Groups.Update(c.Request.Context(), c.Param("id"), patch, req.PersonIDs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": s.reg.Groups.Groups()})
}

func (s *Server) deleteGroup(c *gin.Context) {
	if err := s.reg.Groups.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": s.reg.Groups.Groups()})
}
