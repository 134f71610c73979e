package static

import (
	"context"
	"fmt"
	"math/rand/v2"

	domain "github.com/luckyeats/food-order-api/internal/entity"
	"github.com/luckyeats/food-order-api/internal/usecase"
)

// Processor assigns order numbers deterministically in shape: ORD- plus six
// digits, with a fixed delivery estimate.
type Processor struct{}

func NewProcessor() *Processor { return &Processor{} }

func (p *Processor) Process(ctx context.Context, details domain.OrderDetails, items []domain.CartItem) (usecase.ProcessResult, error) {
	return usecase.ProcessResult{
		OrderNumber:           fmt.Sprintf("ORD-%06d", 100000+rand.IntN(900000)),
		EstimatedDeliveryTime: "20-30 分鐘",
	}, nil
}

var _ usecase.OrderProcessor = (*Processor)(nil)
