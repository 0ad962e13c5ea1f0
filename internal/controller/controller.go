// Package controller holds the helpers shared by the HTTP handlers: id
// parsing, request binding and the mapping from service errors to responses.
package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/surveyhub/internal/apperror"
	"github.com/lshigami/surveyhub/internal/dto"
	"github.com/lshigami/surveyhub/internal/validation"
	"github.com/rs/zerolog/log"
)

const notFoundDetail = "Not found."

// RespondError writes the HTTP reply for err.
func RespondError(c *gin.Context, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		log.Error().Err(err).Str("method", c.Request.Method).Str("path", c.Request.URL.Path).Msg("Unhandled service error")
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
		return
	}

	switch appErr.Kind {
	case apperror.KindValidation:
		fields := appErr.Fields
		if len(fields) == 0 {
			fields = apperror.FieldErrors{validation.NonFieldErrors: {appErr.Message}}
		}
		c.JSON(http.StatusBadRequest, fields)
	case apperror.KindIntegrity:
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: appErr.Message})
	case apperror.KindPermission:
		c.JSON(http.StatusForbidden, dto.DetailResponse{Detail: appErr.Message})
	case apperror.KindNotFound:
		c.JSON(http.StatusNotFound, dto.DetailResponse{Detail: notFoundDetail})
	case apperror.KindUnauthenticated:
		c.JSON(http.StatusUnauthorized, dto.DetailResponse{Detail: appErr.Message})
	default:
		log.Error().Err(err).Msg("Unknown error kind")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
	}
}

// ParseID reads a positive integer path parameter. An unparsable id cannot
// match any row, so it is reported as not found.
func ParseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, dto.DetailResponse{Detail: notFoundDetail})
		return 0, false
	}
	return uint(id), true
}

// BindJSON binds the body into req and replies with field errors on failure.
func BindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		log.Warn().Err(err).Str("path", c.FullPath()).Msg("Failed to bind request body")
		RespondError(c, validation.FromBindError(err))
		return false
	}
	return true
}

// QueryUint parses an optional unsigned query parameter.
func QueryUint(c *gin.Context, name string) (*uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, apperror.ValidationField(name, "Select a valid choice. That choice is not one of the available choices.")
	}
	u := uint(v)
	return &u, nil
}

// QueryBool parses an optional boolean query parameter ("true"/"false", "1"/"0").
func QueryBool(c *gin.Context, name string) (*bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperror.ValidationField(name, "Enter a valid boolean.")
	}
	return &v, nil
}

// AbsoluteURL builds an absolute URL for path on the host serving c.
func AbsoluteURL(c *gin.Context, path string) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if forwarded := c.GetHeader("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}
	return fmt.Sprintf("%s://%s%s", scheme, c.Request.Host, path)
}
