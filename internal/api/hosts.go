package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HostHandler serves the close-host queries.
type HostHandler struct {
	svc HostService
	log *logrus.Logger
}

// NewHostHandler creates a HostHandler.
func NewHostHandler(svc HostService, log *logrus.Logger) *HostHandler {
	return &HostHandler{svc: svc, log: log}
}

// Close handles GET /api/v1/hosts/:address/close?depth=N.
func (h *HostHandler) Close(c *gin.Context) {
	address := c.Param("address")
	if err := validateAddress(address); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	depth, err := parseDepth(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	result, err := h.svc.CloseHosts(c.Request.Context(), address, depth)
	if err != nil {
		respondQueryError(c, h.log, err)

		return
	}

	c.JSON(http.StatusOK, result)
}

// Distance handles GET /api/v1/hosts/:address/distance/:target?depth=N.
func (h *HostHandler) Distance(c *gin.Context) {
	from, to := c.Param("address"), c.Param("target")

	for _, addr := range []string{from, to} {
		if err := validateAddress(addr); err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

			return
		}
	}

	depth, err := parseDepth(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	result, err := h.svc.Distance(c.Request.Context(), from, to, depth)
	if err != nil {
		respondQueryError(c, h.log, err)

		return
	}

	c.JSON(http.StatusOK, result)
}
