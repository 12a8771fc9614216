package controllers

import (
	"net/http"

	"conciergerie-backend/services"
	"conciergerie-backend/utils"

	"github.com/gin-gonic/gin"
)

type ContractController struct {
	Svc *services.ContractService
}

func NewContractController(svc *services.ContractService) *ContractController {
	return &ContractController{Svc: svc}
}

func (ctrl *ContractController) ListByUnit(c *gin.Context) {
	unitID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	list, err := ctrl.Svc.ListByUnit(unitID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}
