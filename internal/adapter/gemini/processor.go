package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/luckyeats/food-order-api/internal/adapter/static"
	domain "github.com/luckyeats/food-order-api/internal/entity"
	"github.com/luckyeats/food-order-api/internal/usecase"
)

var processSchema = json.RawMessage(`{
  "type": "OBJECT",
  "properties": {
    "orderNumber": {"type": "STRING"},
    "estimatedDeliveryTime": {"type": "STRING"}
  },
  "required": ["orderNumber", "estimatedDeliveryTime"]
}`)

// Processor asks the model for an order number and delivery estimate,
// substituting the deterministic processor on any failure.
type Processor struct {
	client   *Client
	fallback *static.Processor
	log      *slog.Logger
}

func NewProcessor(client *Client, fallback *static.Processor, log *slog.Logger) *Processor {
	return &Processor{client: client, fallback: fallback, log: log}
}

func (p *Processor) Process(ctx context.Context, details domain.OrderDetails, items []domain.CartItem) (usecase.ProcessResult, error) {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return p.fallback.Process(ctx, details, items)
	}
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("%s x%d", it.Name, it.Quantity))
	}
	prompt := fmt.Sprintf("一位顧客下了一張美食外送訂單。\n顧客資料: %s。\n訂單品項: %s。\n"+
		"請根據這些資訊，生成一個唯一的訂單編號（格式：ORD-XXXXXX）和一個真實的預計送達時間（例如：25-35 分鐘）。",
		detailsJSON, strings.Join(lines, ", "))

	var out usecase.ProcessResult
	if err := p.client.GenerateJSON(ctx, prompt, processSchema, &out); err != nil || out.OrderNumber == "" {
		p.log.Warn("order processing generation failed, using deterministic result", "error", err)
		return p.fallback.Process(ctx, details, items)
	}
	return out, nil
}

var _ usecase.OrderProcessor = (*Processor)(nil)
