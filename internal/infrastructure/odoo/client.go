package odoo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/opname-api/internal/application/opname"
	"github.com/jhoicas/opname-api/internal/application/verification"
	"github.com/jhoicas/opname-api/internal/domain/entity"
	"github.com/jhoicas/opname-api/pkg/config"
)

// Ensure Client implements both ERP gateways.
var _ opname.ErpGateway = (*Client)(nil)
var _ verification.ErpGateway = (*Client)(nil)

// ── Cliente JSON-RPC ───────────────────────────────────────────────────────────

// Client habla con Odoo por su endpoint JSON-RPC (/jsonrpc, servicio "object",
// método execute_kw). Usa net/http de la stdlib; no requiere librerías de terceros.
type Client struct {
	baseURL    string
	database   string
	uid        int
	apiKey     string
	httpClient *http.Client
	reqID      atomic.Int64
}

// NewClient construye el cliente con la configuración de conexión al ERP.
func NewClient(cfg config.OdooConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    cfg.URL,
		database:   cfg.Database,
		uid:        cfg.UID,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
	ID      int64     `json:"id"`
}

type rpcParams struct {
	Service string `json:"service"`
	Method  string `json:"method"`
	Args    []any  `json:"args"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Message string `json:"message"`
	} `json:"data"`
}

// executeKw invoca model.method(args, kwargs) vía execute_kw y deja el result
// crudo en out.
func (c *Client) executeKw(ctx context.Context, model, method string, args []any, kwargs map[string]any, out any) error {
	if kwargs == nil {
		kwargs = map[string]any{}
	}
	payload := rpcRequest{
		JSONRPC: "2.0",
		Method:  "call",
		Params: rpcParams{
			Service: "object",
			Method:  "execute_kw",
			Args:    []any{c.database, c.uid, c.apiKey, model, method, args, kwargs},
		},
		ID: c.reqID.Add(1),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("odoo: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/jsonrpc", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("odoo: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("odoo: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("odoo: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20)) // max 8 MB
	if err != nil {
		return fmt.Errorf("odoo: leer respuesta: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("odoo: HTTP %d: %s", resp.StatusCode, string(raw))
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(raw, &rpcResp); err != nil {
		return fmt.Errorf("odoo: parsear respuesta: %w", err)
	}
	if rpcResp.Error != nil {
		msg := rpcResp.Error.Data.Message
		if msg == "" {
			msg = rpcResp.Error.Message
		}
		return fmt.Errorf("odoo: %s.%s: %s", model, method, msg)
	}
	if out != nil {
		if err := json.Unmarshal(rpcResp.Result, out); err != nil {
			return fmt.Errorf("odoo: parsear result de %s.%s: %w", model, method, err)
		}
	}
	return nil
}

// ── Catálogo de unidades ──────────────────────────────────────────────────────

// uomRecord registro crudo de uom.uom. category_id llega como [id, nombre]
// o false cuando no hay categoría; uom_type puede venir false en datos sucios.
type uomRecord struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	UomType    json.RawMessage `json:"uom_type"`
	CategoryID json.RawMessage `json:"category_id"`
	Factor     float64         `json:"factor"`
}

// FetchUoms trae el catálogo completo de unidades del ERP.
func (c *Client) FetchUoms(ctx context.Context) ([]entity.Uom, error) {
	var records []uomRecord
	err := c.executeKw(ctx, "uom.uom", "search_read",
		[]any{[]any{}},
		map[string]any{"fields": []string{"name", "uom_type", "category_id", "factor"}},
		&records,
	)
	if err != nil {
		return nil, err
	}

	out := make([]entity.Uom, 0, len(records))
	for _, rec := range records {
		out = append(out, entity.Uom{
			ID:         rec.ID,
			Name:       rec.Name,
			Type:       asString(rec.UomType),
			CategoryID: asMany2oneID(rec.CategoryID),
			Factor:     decimal.NewFromFloat(rec.Factor),
		})
	}
	return out, nil
}

// ── Post de ajustes de inventario ─────────────────────────────────────────────

// PostInventoryAdjustments crea el documento de ajuste de inventario en el ERP
// con las cantidades finales por producto y lo valida. Devuelve el id del
// documento creado.
func (c *Client) PostInventoryAdjustments(ctx context.Context, adjustments []opname.ErpAdjustment) (int64, error) {
	lines := make([]any, 0, len(adjustments))
	for _, adj := range adjustments {
		line := map[string]any{
			"product_code": adj.ProductKey,
			"product_name": adj.ProductName,
			"warehouse_id": adj.WarehouseID,
			"product_qty":  adj.Quantity.String(),
		}
		if adj.UomID != nil {
			line["product_uom_id"] = *adj.UomID
		}
		// Tupla (0, 0, vals) de Odoo: crear línea junto con el documento.
		lines = append(lines, []any{0, 0, line})
	}

	var docID int64
	err := c.executeKw(ctx, "stock.inventory", "create",
		[]any{map[string]any{
			"name":     fmt.Sprintf("Opname %s", time.Now().Format("2006-01-02 15:04")),
			"line_ids": lines,
		}},
		nil,
		&docID,
	)
	if err != nil {
		return 0, err
	}

	if err := c.executeKw(ctx, "stock.inventory", "action_validate", []any{[]int64{docID}}, nil, nil); err != nil {
		return 0, fmt.Errorf("validar documento %d: %w", docID, err)
	}
	return docID, nil
}

// ── Líneas de verificación ────────────────────────────────────────────────────

// verificationRecord registro crudo de la línea de inventario posteada.
type verificationRecord struct {
	ID             int64           `json:"id"`
	ProductCode    json.RawMessage `json:"product_code"`
	ProductName    json.RawMessage `json:"product_name"`
	WarehouseID    json.RawMessage `json:"warehouse_id"`
	LocationID     json.RawMessage `json:"location_id"`
	TheoreticalQty float64         `json:"theoretical_qty"`
	ProductQty     float64         `json:"product_qty"`
	StandardPrice  float64         `json:"standard_price"`
}

// FetchVerificationLines trae las líneas de inventario posteadas de una bodega
// con cantidad de sistema, cantidad contada y costo unitario.
func (c *Client) FetchVerificationLines(ctx context.Context, warehouseID int64) ([]verification.ErpLine, error) {
	var records []verificationRecord
	err := c.executeKw(ctx, "stock.inventory.line", "search_read",
		[]any{[]any{[]any{"warehouse_id", "=", warehouseID}}},
		map[string]any{"fields": verificationFields()},
		&records,
	)
	if err != nil {
		return nil, err
	}

	out := make([]verification.ErpLine, 0, len(records))
	for _, rec := range records {
		out = append(out, toErpLine(rec))
	}
	return out, nil
}

// FetchVerificationLine trae una línea puntual. Devuelve nil sin error si no existe.
func (c *Client) FetchVerificationLine(ctx context.Context, lineID int64) (*verification.ErpLine, error) {
	var records []verificationRecord
	err := c.executeKw(ctx, "stock.inventory.line", "search_read",
		[]any{[]any{[]any{"id", "=", lineID}}},
		map[string]any{"fields": verificationFields(), "limit": 1},
		&records,
	)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	line := toErpLine(records[0])
	return &line, nil
}

func verificationFields() []string {
	return []string{"product_code", "product_name", "warehouse_id", "location_id", "theoretical_qty", "product_qty", "standard_price"}
}

func toErpLine(rec verificationRecord) verification.ErpLine {
	line := verification.ErpLine{
		ID:          rec.ID,
		ProductKey:  asString(rec.ProductCode),
		ProductName: asString(rec.ProductName),
		SystemQty:   decimal.NewFromFloat(rec.TheoreticalQty),
		ScannedQty:  decimal.NewFromFloat(rec.ProductQty),
		Hpp:         decimal.NewFromFloat(rec.StandardPrice),
	}
	if id := asMany2oneID(rec.WarehouseID); id != nil {
		line.WarehouseID = *id
	}
	line.LocationName = asMany2oneName(rec.LocationID)
	return line
}

// ── Helpers de parseo ─────────────────────────────────────────────────────────

// asString decodifica un campo char de Odoo; false (campo vacío) queda "".
func asString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}

// asMany2oneID extrae el id de una tupla many2one [id, nombre]; false queda nil.
func asMany2oneID(raw json.RawMessage) *int64 {
	var tuple []json.RawMessage
	if err := json.Unmarshal(raw, &tuple); err != nil || len(tuple) == 0 {
		return nil
	}
	var id int64
	if err := json.Unmarshal(tuple[0], &id); err != nil {
		return nil
	}
	return &id
}

// asMany2oneName extrae el nombre de una tupla many2one [id, nombre].
func asMany2oneName(raw json.RawMessage) string {
	var tuple []json.RawMessage
	if err := json.Unmarshal(raw, &tuple); err != nil || len(tuple) < 2 {
		return ""
	}
	var name string
	if err := json.Unmarshal(tuple[1], &name); err != nil {
		return ""
	}
	return name
}
