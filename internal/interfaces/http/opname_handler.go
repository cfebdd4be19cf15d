package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/opname-api/internal/application/dto"
	"github.com/jhoicas/opname-api/internal/application/opname"
	"github.com/jhoicas/opname-api/internal/domain"
	"github.com/jhoicas/opname-api/internal/domain/repository"
)

// OpnameHandler maneja las peticiones HTTP del resumen no posteado, su reporte
// PDF y el post de ajustes al ERP.
type OpnameHandler struct {
	summaryUC     *opname.SummaryUseCase
	postUC        *opname.PostUseCase
	pdfGen        opname.SummaryPDFGenerator
	warehouseRepo repository.WarehouseRepository
}

// NewOpnameHandler construye el handler.
func NewOpnameHandler(
	summaryUC *opname.SummaryUseCase,
	postUC *opname.PostUseCase,
	pdfGen opname.SummaryPDFGenerator,
	warehouseRepo repository.WarehouseRepository,
) *OpnameHandler {
	return &OpnameHandler{
		summaryUC:     summaryUC,
		postUC:        postUC,
		pdfGen:        pdfGen,
		warehouseRepo: warehouseRepo,
	}
}

// Unposted godoc
// @Summary      Resumen de opname no posteado
// @Description  Escaneos confirmados agregados por bodega y producto, con la cantidad normalizada a la unidad de reporte.
// @Tags         opname
// @Produce      json
// @Param        warehouse_id  query  int     false  "Filtrar por bodega. Vacío = todas."
// @Param        search        query  string  false  "Substring sobre código o nombre de producto"
// @Param        limit         query  int     false  "Tamaño de página (default 20)"
// @Param        offset        query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.UnpostedSummaryResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/opname/unposted [get]
func (h *OpnameHandler) Unposted(c *fiber.Ctx) error {
	warehouseID, err := optionalWarehouseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id inválido"})
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}

	resp, err := h.summaryUC.Summary(c.Context(), warehouseID, c.Query("search"), page)
	if err != nil {
		if errors.Is(err, domain.ErrErpUnavailable) {
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "ERP_UNAVAILABLE", Message: "el ERP no respondió"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}

// UnpostedPDF godoc
// @Summary      Reporte PDF del resumen no posteado
// @Tags         opname
// @Produce      application/pdf
// @Param        warehouse_id  query  int  false  "Filtrar por bodega. Vacío = todas."
// @Success      200  {file}    binary
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/opname/unposted/pdf [get]
func (h *OpnameHandler) UnpostedPDF(c *fiber.Ctx) error {
	warehouseID, err := optionalWarehouseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id inválido"})
	}

	rows, _, err := h.summaryUC.Aggregate(c.Context(), warehouseID, "")
	if err != nil {
		if errors.Is(err, domain.ErrErpUnavailable) {
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "ERP_UNAVAILABLE", Message: "el ERP no respondió"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	warehouseName := ""
	if warehouseID != nil {
		if w, err := h.warehouseRepo.GetByID(c.Context(), *warehouseID); err == nil && w != nil {
			warehouseName = w.Name
		}
	}

	generatedAt := time.Now()
	pdfBytes, err := h.pdfGen.GenerateSummaryPDF(c.Context(), warehouseName, generatedAt, rows)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF", Message: err.Error()})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="opname-%s.pdf"`, generatedAt.Format("20060102-1504")))
	return c.Send(pdfBytes)
}

// Post godoc
// @Summary      Postear ajustes de opname al ERP
// @Description  Envía el resumen agregado como documento de ajuste de inventario. Los productos con conversión indeterminada se omiten y se devuelven en skipped.
// @Tags         opname
// @Produce      json
// @Param        warehouse_id  query  int  false  "Postear solo una bodega. Vacío = todas."
// @Success      200  {object}  dto.PostAdjustmentsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/opname/post [post]
func (h *OpnameHandler) Post(c *fiber.Ctx) error {
	warehouseID, err := optionalWarehouseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id inválido"})
	}

	resp, err := h.postUC.Post(c.Context(), warehouseID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no hay escaneos confirmados para postear"})
		}
		if errors.Is(err, domain.ErrMissingTargetUom) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "MISSING_TARGET_UOM", Message: "todos los productos tienen conversión indeterminada"})
		}
		if errors.Is(err, domain.ErrErpUnavailable) {
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "ERP_UNAVAILABLE", Message: "el ERP no respondió"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}
