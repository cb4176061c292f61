package handlers

import (
	"pos-backoffice/dtos"
	"pos-backoffice/services"

	"github.com/gin-gonic/gin"
)

type LoyaltyRedemptionHandler struct {
	Redemptions *services.RedemptionService
}

func (h *LoyaltyRedemptionHandler) CreateRedemption(c *gin.Context) {
	merchantID, ok := requireMerchant(c)
	if !ok {
		return
	}

	var req dtos.CreateLoyaltyRedemptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.Redemptions.Create(c.Request.Context(), merchantID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(resp.StatusCode, resp)
}

func (h *LoyaltyRedemptionHandler) ListRedemptions(c *gin.Context) {
	merchantID, ok := requireMerchant(c)
	if !ok {
		return
	}

	var query dtos.LoyaltyRedemptionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.Redemptions.FindAll(c.Request.Context(), merchantID, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(resp.StatusCode, resp)
}

func (h *LoyaltyRedemptionHandler) GetRedemption(c *gin.Context) {
	merchantID, ok := requireMerchant(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	resp, err := h.Redemptions.FindOne(c.Request.Context(), id, merchantID, services.PhaseRetrieved)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(resp.StatusCode, resp)
}

func (h *LoyaltyRedemptionHandler) UpdateRedemption(c *gin.Context) {
	merchantID, ok := requireMerchant(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dtos.UpdateLoyaltyRedemptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.Redemptions.Update(c.Request.Context(), id, merchantID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(resp.StatusCode, resp)
}

// DeleteRedemption removes the redemption and refunds its points.
func (h *LoyaltyRedemptionHandler) DeleteRedemption(c *gin.Context) {
	merchantID, ok := requireMerchant(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	resp, err := h.Redemptions.Remove(c.Request.Context(), id, merchantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(resp.StatusCode, resp)
}
