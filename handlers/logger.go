package handlers

import (
	"passauth/utils"

	"go.uber.org/zap"
)

// getLogger returns the request-scoped logger.
func getLogger() *zap.Logger {
	return utils.GetLogger()
}
