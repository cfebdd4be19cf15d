package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/opname-api/internal/application/dto"
	"github.com/jhoicas/opname-api/internal/application/verification"
	"github.com/jhoicas/opname-api/internal/domain"
)

// VerificationHandler maneja las peticiones HTTP del flujo de verificación
// contra el ERP.
type VerificationHandler struct {
	uc *verification.UseCase
}

// NewVerificationHandler construye el handler.
func NewVerificationHandler(uc *verification.UseCase) *VerificationHandler {
	return &VerificationHandler{uc: uc}
}

// List godoc
// @Summary      Líneas de verificación conciliadas
// @Description  Cantidad del sistema contra escaneado + ajustes locales, con estado y delta monetario por línea.
// @Tags         verification
// @Produce      json
// @Param        warehouse_id  query  int  true  "Bodega a verificar"
// @Success      200  {array}   dto.VerificationLineDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/verification [get]
func (h *VerificationHandler) List(c *fiber.Ctx) error {
	warehouseID := int64(c.QueryInt("warehouse_id"))
	if warehouseID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id es obligatorio"})
	}

	lines, err := h.uc.List(c.Context(), warehouseID)
	if err != nil {
		if errors.Is(err, domain.ErrErpUnavailable) {
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "ERP_UNAVAILABLE", Message: "el ERP no respondió"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(lines)
}

// UpdateTotal godoc
// @Summary      Registrar total real de una línea
// @Description  El verificador digita el total contado; la app calcula el delta contra el total actual y lo registra en el ledger. Total sin cambio no registra nada.
// @Tags         verification
// @Accept       json
// @Produce      json
// @Param        line_id     path   int                     true  "ID de la línea de inventario en el ERP"
// @Param        updated_by  query  string                  true  "Usuario que registra el total"
// @Param        body        body   dto.UpdateTotalRequest  true  "new_total, note"
// @Success      200  {object}  dto.UpdateTotalResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/verification/{line_id}/total [put]
func (h *VerificationHandler) UpdateTotal(c *fiber.Ctx) error {
	lineID, err := strconv.ParseInt(c.Params("line_id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "line_id inválido"})
	}
	updatedBy := c.Query("updated_by")
	if updatedBy == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "updated_by es obligatorio"})
	}
	var in dto.UpdateTotalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	resp, err := h.uc.UpdateTotal(c.Context(), lineID, in, updatedBy)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "línea no encontrada"})
		}
		if errors.Is(err, domain.ErrErpUnavailable) {
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "ERP_UNAVAILABLE", Message: "el ERP no respondió"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}
