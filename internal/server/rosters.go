package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rosterly/shiftroster/pkg/core/services"
	"github.com/rosterly/shiftroster/pkg/core/store"
	"github.com/rosterly/shiftroster/pkg/db"
)

type createRosterReq struct {
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

type updateRosterReq struct {
	Name      *string    `json:"name"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

type shiftSlotReq struct {
	RoleID            string   `json:"roleId" binding:"required"`
	RequiredCount     int      `json:"requiredCount"`
	AssignedPersonIDs []string `json:"assignedPersonIds"`
}

type createRosterShiftReq struct {
	TemplateID string         `json:"templateId" binding:"required"`
	Date       time.Time      `json:"date" binding:"required"`
	Slots      []shiftSlotReq `json:"slots"`
}

type updateRosterShiftReq struct {
	Date  *time.Time     `json:"date"`
	Slots []shiftSlotReq `json:"slots"`
}

type assignReq struct {
	PersonID string `json:"personId" binding:"required"`
}

func shiftSlots(reqs []shiftSlotReq) []store.ShiftSlot {
	if reqs == nil {
		return nil
	}
	out := make([]store.ShiftSlot, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, store.ShiftSlot{
			RoleID:            r.RoleID,
			RequiredCount:     r.RequiredCount,
			AssignedPersonIDs: r.AssignedPersonIDs,
		})
	}
	return out
}

func (s *Server) listRosters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rosters": s.reg.Rosters.Rosters()})
}

func (s *Server) createRoster(c *gin.Context) {
	var req createRosterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := s.reg.Rosters.AddRoster(c.Request.Context(), store.NewRoster{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rosters": s.reg.Rosters.Rosters()})
}

func (s *Server) updateRoster(c *gin.Context) {
	var req updateRosterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	patch := db.RosterPatch{Name: req.Name, StartDate: req.StartDate, EndDate: req.EndDate}
	if err := s.reg.Rosters.UpdateRoster(c.Request.Context(), c.Param("id"), patch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rosters": s.reg.Rosters.Rosters()})
}

func (s *Server) deleteRoster(c *gin.Context) {
	if err := s.reg.Rosters.DeleteRoster(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rosters": s.reg.Rosters.Rosters()})
}

func (s *Server) listRosterShifts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"shifts": s.reg.Rosters.ShiftsFor(c.Param("id"))})
}

func (s *Server) createRosterShift(c *gin.Context) {
	var req createRosterShiftReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rosterID := c.Param("id")

	var err error
	if req.Slots == nil {
		err = services.CreateShiftFromTemplate(c.Request.Context(), s.reg, s.logger, rosterID, req.TemplateID, req.Date)
	} else {
		err = s.reg.Rosters.AddShift(c.Request.Context(), store.NewRosterShift{
			RosterID:   rosterID,
			TemplateID: req.TemplateID,
			Date:       req.Date,
			Slots:      shiftSlots(req.Slots),
		})
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shifts": s.reg.Rosters.ShiftsFor(rosterID)})
}

func (s *Server) generateShifts(c *gin.Context) {
	result, err := services.GenerateShifts(c.Request.Context(), s.reg, s.logger, c.Param("id"), s.cfg.ShiftRules)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"created": result.Created, "skipped": result.Skipped})
}

func (s *Server) updateRosterShift(c *gin.Context) {
	var req updateRosterShiftReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.reg.Rosters.UpdateShift(c.Request.Context(), c.Param("id"), req.Date, shiftSlots(req.Slots)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shifts": s.reg.Rosters.Shifts()})
}

func (s *Server) deleteRosterShift(c *gin.Context) {
	if err := s.reg.Rosters.DeleteShift(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shifts": s.reg.Rosters.Shifts()})
}

func (s *Server) listEligible(c *gin.Context) {
	people, err := services.EligibleForSlot(s.reg, c.Param("id"), c.Param("roleEntryId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"people": people})
}

func (s *Server) assignPerson(c *gin.Context) {
	var req assignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := services.AssignPerson(c.Request.Context(), s.reg, s.logger, c.Param("id"), c.Param("roleEntryId"), req.PersonID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrRoleNotHeld) ||
			errors.Is(err, services.ErrPersonOnLeave) ||
			errors.Is(err, services.ErrAlreadyAssigned) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shifts": s.reg.Rosters.Shifts()})
}

func (s *Server) removePerson(c *gin.Context) {
	err := services.RemovePerson(c.Request.Context(), s.reg, s.logger, c.Param("id"), c.Param("roleEntryId"), c.Param("personId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shifts": s.reg.Rosters.Shifts()})
}
