package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rosterly/shiftroster/pkg/core/store"
	"github.com/rosterly/shiftroster/pkg/db"
)

type createShiftReq struct {
	Name      string         `json:"name" binding:"required"`
	Date      time.Time      `json:"date" binding:"required"`
	StartTime string         `json:"startTime" binding:"required"`
	EndTime   string         `json:"endTime" binding:"required"`
	Slots     []shiftSlotReq `json:"slots"`
}

type updateShiftReq struct {
	Name      *string        `json:"name"`
	Date      *time.Time     `json:"date"`
	StartTime *string        `json:"startTime"`
	EndTime   *string        `json:"endTime"`
	Slots     []shiftSlotReq `json:"slots"`
}

func (s *Server) listShifts(c *gin.Context) {
	if date := c.Query("date"); date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"shifts": s.reg.Shifts.ByDate(day)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shifts": s.reg.Shifts.Shifts()})
}

func (s *Server) createShift(c *gin.Context) {
	var req createShiftReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := s.reg.Shifts.Add(c.Request.Context(), store.NewShift{
		Name:      req.Name,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Slots:     shiftSlots(req.Slots),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shifts": s.reg.Shifts.Shifts()})
}

func (s *Server) updateShift(c *gin.Context) {
	var req updateShiftReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	patch := db.ShiftPatch{Name: req.Name, Date: req.Date, StartTime: req.StartTime, EndTime: req.EndTime}
	if err := s.reg.Shifts.Update(c.Request.Context(), c.Param("id"), patch, shiftSlots(req.Slots)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shifts": s.reg.Shifts.Shifts()})
}

func (s *Server) deleteShift(c *gin.Context) {
	if err := s.reg.Shifts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shifts": s.reg.Shifts.Shifts()})
}

func (s *Server) assignShiftPerson(c *gin.Context) {
	var req assignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.reg.Shifts.Assign(c.Request.Context(), c.Param("roleEntryId"), req.PersonID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shifts": s.reg.Shifts.Shifts()})
}

func (s *Server) removeShiftPerson(c *gin.Context) {
	if err := s.reg.Shifts.Unassign(c.Request.Context(), c.Param("roleEntryId"), c.Param("personId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shifts": s.reg.Shifts.Shifts()})
}
