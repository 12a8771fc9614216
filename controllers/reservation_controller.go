package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"conciergerie-backend/middleware"
	"conciergerie-backend/services"
	"conciergerie-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	Svc *services.ReservationService
}

func NewReservationController(svc *services.ReservationService) *ReservationController {
	return &ReservationController{Svc: svc}
}

type bulkIDsPayload struct {
	IDs []uint `json:"ids"`
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(v), true
}

// respondServiceError maps service error kinds onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	var ve *services.ValidationError
	switch {
	case errors.Is(err, services.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, "admin role required")
	case errors.Is(err, services.ErrOverlap):
		utils.JSONError(c, http.StatusConflict, "the requested dates overlap an existing reservation on this unit")
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "reservation not found")
	case errors.As(err, &ve):
		utils.JSONFieldErrors(c, http.StatusBadRequest, "validation failed", ve.Fields)
	default:
		utils.JSONError(c, http.StatusInternalServerError, "operation failed")
	}
}

func (ctrl *ReservationController) Create(c *gin.Context) {
	var input services.ReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	r, err := ctrl.Svc.Create(middleware.ActorRole(c), &input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, r)
}

func (ctrl *ReservationController) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var input services.ReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	r, err := ctrl.Svc.Update(middleware.ActorRole(c), id, &input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, r)
}

func (ctrl *ReservationController) Terminate(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.Svc.Terminate(middleware.ActorRole(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": id})
}

func (ctrl *ReservationController) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.Svc.Delete(middleware.ActorRole(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": id})
}

func (ctrl *ReservationController) BulkCancel(c *gin.Context) {
	var payload bulkIDsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	count, err := ctrl.Svc.BulkCancel(middleware.ActorRole(c), payload.IDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"count": count})
}

func (ctrl *ReservationController) BulkDelete(c *gin.Context) {
	var payload bulkIDsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	count, err := ctrl.Svc.BulkDelete(middleware.ActorRole(c), payload.IDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"count": count})
}

func (ctrl *ReservationController) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	r, err := ctrl.Svc.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, r)
}

func (ctrl *ReservationController) List(c *gin.Context) {
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
