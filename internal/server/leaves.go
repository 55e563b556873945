package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rosterly/shiftroster/pkg/core/model"
	"github.com/rosterly/shiftroster/pkg/core/services"
	"github.com/rosterly/shiftroster/pkg/core/store"
	"github.com/rosterly/shiftroster/pkg/db"
)

type createLeaveReq struct {
	PersonID  string    `json:"personId" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
	Reason    string    `json:"reason"`
	Status    string    `json:"status"`
}

type updateLeaveReq struct {
	PersonID  *string    `json:"personId"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	Reason    *string    `json:"reason"`
	Status    *string    `json:"status"`
}

func (s *Server) listLeaves(c *gin.Context) {
	if personID := c.Query("personId"); personID != "" {
		c.JSON(http.StatusOK, gin.H{"leaves": s.reg.Leaves.ByPerson(personID)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaves": s.reg.Leaves.Leaves()})
}

func (s *Server) createLeave(c *gin.Context) {
	var req createLeaveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := s.reg.Leaves.Add(c.Request.Context(), store.NewLeave{
		PersonID:  req.PersonID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
		Status:    model.LeaveStatus(req.Status),
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, store.ErrInvalidLeaveRange) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaves": s.reg.Leaves.Leaves()})
}

func (s *Server) updateLeave(c *gin.Context) {
	var req updateLeaveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	patch := db.LeavePatch{
		PersonID:  req.PersonID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
		Status:    req.Status,
	}
	if err := s.reg.Leaves.Update(c.Request.Context(), c.Param("id"), patch); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, store.ErrInvalidLeaveRange) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaves": s.reg.Leaves.Leaves()})
}

func (s *Server) deleteLeave(c *gin.Context) {
	if err := s.reg.Leaves.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaves": s.reg.Leaves.Leaves()})
}

func (s *Server) approveLeave(c *gin.Context) {
	if err := services.ApproveLeave(c.Request.Context(), s.reg, s.logger, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaves": s.reg.Leaves.Leaves()})
}

func (s *Server) rejectLeave(c *gin.Context) {
	if err := services.RejectLeave(c.Request.Context(), s.reg, s.logger, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaves": s.reg.Leaves.Leaves()})
}
