package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rosterly/shiftroster/pkg/core/store"
	"github.com/rosterly/shiftroster/pkg/db"
)

type createPersonReq struct {
	Name        string   `json:"name" binding:"required"`
	Phone       string   `json:"phone"`
	Designation string   `json:"designation"`
	RoleIDs     []string `json:"roleIds"`
}

type updatePersonReq struct {
	Name        *string  `json:"name"`
	Phone       *string  `json:"phone"`
	Designation *string  `json:"designation"`
	RoleIDs     []string `json:"roleIds"`
}

func (s *Server) listPeople(c *gin.Context) {
	if q := c.Query("q"); q != "" {
		c.JSON(http.StatusOK, gin.H{"people": s.reg.People.Search(q)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"people": s.reg.People.People()})
}

func (s *Server) createPerson(c *gin.Context) {
	var req createPersonReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := s.reg.People.Add(c.Request.Context(), store.NewPerson{
		Name:        req.Name,
		Phone:       req.Phone,
		Designation: req.Designation,
		RoleIDs:     req.RoleIDs,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"people": s.reg.People.People()})
}

func (s *Server) updatePerson(c *gin.Context) {
	var req updatePersonReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	patch := db.PersonPatch{
		Name:        req.Name,
		Phone:       req.Phone,
		Designation: req.Designation,
		RoleIDs:     req.RoleIDs,
	}
	if err := s.reg.People.Update(c.Request.Context(), c.Param("id"), patch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"people": s.reg.People.People()})
}

func (s *Server) deletePerson(c *gin.Context) {
	if err := s.reg.People.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"people": s.reg.People.People()})
}
