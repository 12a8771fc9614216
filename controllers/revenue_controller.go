package controllers

import (
	"net/http"
	"strconv"
	"time"

	"conciergerie-backend/services"
	"conciergerie-backend/utils"

	"github.com/gin-gonic/gin"
)

type RevenueController struct {
	Svc *services.RevenueService
}

func NewRevenueController(svc *services.RevenueService) *RevenueController {
	return &RevenueController{Svc: svc}
}

func parseDateQuery(c *gin.Context, name string) *time.Time {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}

func (ctrl *RevenueController) List(c *gin.Context) {
	orgID, _ := strconv.ParseUint(c.Query("organisation_id"), 10, 64)
	if orgID == 0 {
		orgID = 1
	}
	from := parseDateQuery(c, "from")
	to := parseDateQuery(c, "to")

	list, err := ctrl.Svc.List(uint(orgID), from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	gross, commission, net, err := ctrl.Svc.Totals(uint(orgID), from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"items": list,
		"totals": gin.H{
			"gross":      gross,
			"commission": commission,
			"net":        net,
		},
	})
}
