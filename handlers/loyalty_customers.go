package handlers

import (
	"pos-backoffice/dtos"
	"pos-backoffice/services"

	"github.com/gin-gonic/gin"
)

type LoyaltyCustomerHandler struct {
	Customers *services.CustomerService
}

func (h *LoyaltyCustomerHandler) GetCustomer(c *gin.Context) {
	merchantID, ok := requireMerchant(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	resp, err := h.Customers.FindOne(c.Request.Context(), id, merchantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(resp.StatusCode, resp)
}

// GetCustomerHistory returns paginated points history, newest first.
func (h *LoyaltyCustomerHandler) GetCustomerHistory(c *gin.Context) {
	merchantID, ok := requireMerchant(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var query dtos.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.Customers.History(c.Request.Context(), id, merchantID, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(resp.StatusCode, resp)
}
