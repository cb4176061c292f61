package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"pos-backoffice/dtos"
	"pos-backoffice/middleware"
	"pos-backoffice/services"
	"pos-backoffice/utils"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func statusFor(kind services.Kind) int {
	switch kind {
	case services.KindInvalidID, services.KindBadRequest:
		return http.StatusBadRequest
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, status int, message, code string) {
	c.JSON(status, dtos.ErrorResponse{
		StatusCode: status,
		Message:    message,
		Error:      http.StatusText(status),
		Code:       code,
	})
}

// respondError writes err using the error envelope. Store failures are logged
// and reported without their details.
func respondError(c *gin.Context, err error) {
	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		svcErr = &services.Error{Kind: services.KindDatabase, Code: "INTERNAL_ERROR", Message: "Internal server error", Err: err}
	}

	status := statusFor(svcErr.Kind)
	if status >= http.StatusInternalServerError {
		log.WithError(err).
			WithField("request_id", c.GetString(middleware.ContextRequestID)).
			WithField("path", c.FullPath()).
			Error("loyalty request failed")
	}
	writeError(c, status, svcErr.Message, svcErr.Code)
}

func respondBindError(c *gin.Context, err error) {
	writeError(c, http.StatusBadRequest, utils.SanitizeValidationError(err), "VALIDATION_ERROR")
}

// pathID parses the :id parameter. Non-numeric ids are rejected here; the
// services reject ids <= 0.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "Invalid id: "+c.Param("id"), "INVALID_ID")
		return 0, false
	}
	return id, true
}

func requireMerchant(c *gin.Context) (int64, bool) {
	merchantID, ok := middleware.MerchantID(c)
	if !ok {
		writeError(c, http.StatusForbidden, "No merchant associated with this account", "FORBIDDEN")
		return 0, false
	}
	return merchantID, true
}
