package apperror

import (
	"fmt"

	"pdf-chunk-queue/config"
	"pdf-chunk-queue/pkg/apperror/status"
	"pdf-chunk-queue/pkg/logger"

	"github.com/gofiber/fiber/v3"
)

// ErrorResponse is the standardized HTTP error payload
type ErrorResponse struct {
	Error      string `json:"error"`
	ErrorCode  string `json:"error_code"`
	TrackingID string `json:"tracking_id,omitempty"`
	Data       any    `json:"data,omitempty"`
}

type FiberSuccessMessage struct {
	Code       status.SuccessCode `json:"code"`
	Message    string             `json:"message"`
	TrackingID string             `json:"tracking_id"`
	Data       any                `json:"data"`
}

// Code renders an ErrorCode the way clients see it, e.g. "AI-1001".
func Code(code status.ErrorCode) string {
	return fmt.Sprintf("AI-%d", code)
}

// WriteError logs a structured warning and returns a standardized JSON error
func WriteError(module config.Module, c fiber.Ctx, httpStatus int, code status.ErrorCode, message string, data any) error {
	logger.WithFields(map[string]interface{}{
		"module":        module,
		"status_code":   httpStatus,
		"error_code":    Code(code),
		"error_message": message,
		"http_method":   c.Method(),
		"path":          c.Path(),
		"ip":            c.IP(),
		"tracking_id":   c.Get("X-Request-ID"),
	}).Warnf("http error")

	return c.Status(httpStatus).JSON(ErrorResponse{
		Error:      message,
		ErrorCode:  Code(code),
		TrackingID: c.Get("X-Request-ID"),
		Data:       data,
	})
}

// Shorthands for common error responses
func BadRequest(module config.Module, c fiber.Ctx, code status.ErrorCode, message string) error {
	return WriteError(module, c, fiber.StatusBadRequest, code, message, nil)
}

func NotFound(module config.Module, c fiber.Ctx, code status.ErrorCode, message string) error {
	return WriteError(module, c, fiber.StatusNotFound, code, message, nil)
}

// InternalError writes a structured warning and returns a standardized JSON error
func InternalError(module config.Module, c fiber.Ctx, err error) error {
	return WriteError(module, c, fiber.StatusInternalServerError, status.Internal, err.Error(), nil)
}

// Success writes a standardized JSON success response
func Success(c fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(FiberSuccessMessage{
		Code:       status.OK,
		Message:    message,
		TrackingID: c.Get("X-Request-ID"),
		Data:       data,
	})
}
