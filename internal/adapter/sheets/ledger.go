// Package sheets persists confirmed orders to a Google Apps Script webhook
// backed by a spreadsheet.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	domain "github.com/luckyeats/food-order-api/internal/entity"
	"github.com/luckyeats/food-order-api/internal/usecase"
)

// taipei is the spreadsheet's local zone for the orderTime column.
var taipei = loadTaipei()

func loadTaipei() *time.Location {
	loc, err := time.LoadLocation("Asia/Taipei")
	if err != nil {
		return time.FixedZone("CST", 8*60*60)
	}
	return loc
}

type Ledger struct {
	scriptURL string
	client    *http.Client
	log       *slog.Logger
	now       func() time.Time
}

func NewLedger(scriptURL string, log *slog.Logger) *Ledger {
	return &Ledger{
		scriptURL: scriptURL,
		log:       log,
		now:       time.Now,
		client: &http.Client{
			// the caller races Persist against its own timeout; this one
			// only bounds a connection that hangs past everyone's patience
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
			},
		},
	}
}

// sheetRow flattens a confirmed order for the spreadsheet: items become one
// display string and a localized timestamp is appended.
type sheetRow struct {
	domain.OrderDetails
	OrderNumber           string `json:"orderNumber"`
	EstimatedDeliveryTime string `json:"estimatedDeliveryTime"`
	Subtotal              int64  `json:"subtotal"`
	ShippingFee           int64  `json:"shippingFee"`
	Total                 int64  `json:"total"`
	Items                 string `json:"items"`
	OrderTime             string `json:"orderTime"`
}

type saveRequest struct {
	OrderData sheetRow `json:"orderData"`
}

type saveResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Persist records the order. All transport and decode failures come back as
// an unsuccessful PersistResult rather than an error; the error return is
// reserved for context cancellation. With no script URL configured, Persist
// reports success without any network call.
func (l *Ledger) Persist(ctx context.Context, order domain.ConfirmedOrder) (usecase.PersistResult, error) {
	if l.scriptURL == "" {
		l.log.Warn("sheets script url not configured, skipping save")
		return usecase.PersistResult{Success: true, Message: "Order processed locally."}, nil
	}

	row := sheetRow{
		OrderDetails:          order.OrderDetails,
		OrderNumber:           order.OrderNumber,
		EstimatedDeliveryTime: order.EstimatedDeliveryTime,
		Subtotal:              order.Subtotal,
		ShippingFee:           order.ShippingFee,
		Total:                 order.Total,
		Items:                 flattenItems(order.Items),
		OrderTime:             l.now().In(taipei).Format("2006/1/2 15:04:05"),
	}
	body, err := json.Marshal(saveRequest{OrderData: row})
	if err != nil {
		return usecase.PersistResult{Success: false, Message: err.Error()}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.scriptURL+"?action=saveOrder", bytes.NewReader(body))
	if err != nil {
		return usecase.PersistResult{Success: false, Message: err.Error()}, nil
	}
	// Apps Script web apps reject preflighted content types; text/plain
	// keeps the POST simple
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	resp, err := l.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return usecase.PersistResult{}, ctx.Err()
		}
		return usecase.PersistResult{Success: false, Message: err.Error()}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return usecase.PersistResult{
			Success: false,
			Message: fmt.Sprintf("sheets endpoint returned status %d", resp.StatusCode),
		}, nil
	}

	var result saveResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return usecase.PersistResult{Success: false, Message: "decode sheets response: " + err.Error()}, nil
	}
	if !result.Success {
		msg := result.Error
		if msg == "" {
			msg = "sheets endpoint rejected the order"
		}
		return usecase.PersistResult{Success: false, Message: msg}, nil
	}
	return usecase.PersistResult{Success: true, Message: result.Message}, nil
}

func flattenItems(items []domain.OrderedItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s x%d", it.Name, it.Quantity))
	}
	return strings.Join(parts, ", ")
}

var _ usecase.OrderLedger = (*Ledger)(nil)
