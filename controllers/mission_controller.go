package controllers

import (
	"net/http"
	"strconv"
	"time"

	"conciergerie-backend/services"
	"conciergerie-backend/utils"

	"github.com/gin-gonic/gin"
)

type MissionController struct {
	Svc *services.MissionService
}

func NewMissionController(svc *services.MissionService) *MissionController {
	return &MissionController{Svc: svc}
}

type createMissionPayload struct {
	OrganisationID uint   `json:"organisation_id"`
	UnitID         uint   `json:"unit_id" binding:"required"`
	Type           string `json:"type" binding:"required"`
	Priority       string `json:"priority"`
	ScheduledAt    string `json:"scheduled_at" binding:"required"` // RFC3339
	Notes          string `json:"notes"`
}

type missionStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

// Create adds a standalone INTERVENTION or URGENT mission. Reservation-derived
// missions are only ever created by the reservation fan-out.
func (ctrl *MissionController) Create(c *gin.Context) {
	var payload createMissionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	scheduledAt, err := time.Parse(time.RFC3339, payload.ScheduledAt)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "scheduled_at must be RFC3339")
		return
	}
	if payload.OrganisationID == 0 {
		payload.OrganisationID = 1
	}

	m, err := ctrl.Svc.CreateStandalone(payload.OrganisationID, payload.UnitID, payload.Type, payload.Priority, payload.Notes, scheduledAt)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, m)
}

func (ctrl *MissionController) UpdateStatus(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var payload missionStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	m, err := ctrl.Svc.UpdateStatus(id, payload.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, m)
}

func (ctrl *MissionController) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	m, err := ctrl.Svc.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, m)
}

func (ctrl *MissionController) List(c *gin.Context) {
	orgID, _ := strconv.ParseUint(c.Query("organisation_id"), 10, 64)
	if orgID == 0 {
		orgID = 1
	}

	var unitID *uint
	if raw := c.Query("unit_id"); raw != "" {
		if v, err := strconv.ParseUint(raw, 10, 64); err == nil {
			u := uint(v)
			unitID = &u
		}
	}

	list, err := ctrl.Svc.List(uint(orgID), unitID, c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}
