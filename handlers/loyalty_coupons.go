package handlers

import (
	"pos-backoffice/dtos"
	"pos-backoffice/services"

	"github.com/gin-gonic/gin"
)

type LoyaltyCouponHandler struct {
	Coupons *services.CouponService
}

func (h *LoyaltyCouponHandler) CreateCoupon(c *gin.Context) {
	merchantID, ok := requireMerchant(c)
	if !ok {
		return
	}

	var req dtos.CreateLoyaltyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.Coupons.Create(c.Request.Context(), merchantID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(resp.StatusCode, resp)
}

func (h *LoyaltyCouponHandler) ListCoupons(c *gin.Context) {
	merchantID, ok := requireMerchant(c)
	if !ok {
		return
	}

	var query dtos.LoyaltyCouponQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.Coupons.FindAll(c.Request.Context(), merchantID, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(resp.StatusCode, resp)
}

func (h *LoyaltyCouponHandler) GetCoupon(c *gin.Context) {
	merchantID, ok := requireMerchant(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	resp, err := h.Coupons.FindOne(c.Request.Context(), id, merchantID, services.PhaseRetrieved)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(resp.StatusCode, resp)
}

func (h *LoyaltyCouponHandler) UpdateCoupon(c *gin.Context) {
	merchantID, ok := requireMerchant(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dtos.UpdateLoyaltyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.Coupons.Update(c.Request.Context(), id, merchantID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(resp.StatusCode, resp)
}

func (h *LoyaltyCouponHandler) DeleteCoupon(c *gin.Context) {
	merchantID, ok := requireMerchant(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	resp, err := h.Coupons.Remove(c.Request.Context(), id, merchantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(resp.StatusCode, resp)
}
