package handlers

import (
	"net/http"

	"github.com/priceoptimizer/backend/services"
	"github.com/priceoptimizer/backend/utils"
	"go.uber.org/zap"
)

// HandleServiceError maps domain errors to HTTP responses, keeping the
// handlers thin.
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	details := services.GetErrorDetails(err)

	switch {
	case services.IsNotFoundError(err):
		if werr := utils.WriteNotFound(w, err.Error()); werr != nil {
			logger.Error("failed to write not found response", zap.Error(werr))
		}

	case services.IsValidationError(err):
		if werr := utils.WriteBadRequest(w, err.Error(), details); werr != nil {
			logger.Error("failed to write bad request response", zap.Error(werr))
		}

	case services.IsUnauthorizedError(err):
		if werr := utils.WriteUnauthorized(w, err.Error()); werr != nil {
			logger.Error("failed to write unauthorized response", zap.Error(werr))
		}

	case services.IsForbiddenError(err):
		if werr := utils.WriteForbidden(w, err.Error()); werr != nil {
			logger.Error("failed to write forbidden response", zap.Error(werr))
		}

	case services.IsConflictError(err):
		if werr := utils.WriteConflict(w, err.Error(), details); werr != nil {
			logger.Error("failed to write conflict response", zap.Error(werr))
		}

	default:
		// Log internal errors but return a generic message
		logger.Error("internal server error", zap.Error(err))
		if werr := utils.WriteInternalServerError(w, "An internal error occurred"); werr != nil {
			logger.Error("failed to write internal error response", zap.Error(werr))
		}
	}
}

// HandleValidationError maps request validation failures to a 400 with
// per-field details.
func HandleValidationError(w http.ResponseWriter, err error, logger *zap.Logger) {
	fields := utils.GetValidationFields(err)
	details := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		details[k] = v
	}
	if werr := utils.WriteBadRequest(w, "Validation failed", details); werr != nil {
		logger.Error("failed to write validation error response", zap.Error(werr))
	}
}
