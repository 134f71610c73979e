package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/luckyeats/food-order-api/internal/adapter/static"
	domain "github.com/luckyeats/food-order-api/internal/entity"
	"github.com/luckyeats/food-order-api/internal/usecase"
)

const restaurantsPrompt = "請為一個美食外送 App 生成一個包含8家多樣化且吸引人的虛構餐廳列表。" +
	"請以繁體中文提供詳細資訊，例如：唯一的 ID、名稱、類別、評分(介於3.5到5.0之間)、評論數、" +
	"外送時間預估、最低訂單金額，以及一個來自 picsum.photos 的佔位圖片 URL。"

var restaurantsSchema = json.RawMessage(`{
  "type": "OBJECT",
  "properties": {
    "restaurants": {
      "type": "ARRAY",
      "items": {
        "type": "OBJECT",
        "properties": {
          "id": {"type": "STRING", "description": "餐廳的唯一識別碼。"},
          "name": {"type": "STRING"},
          "category": {"type": "STRING"},
          "rating": {"type": "NUMBER"},
          "reviews": {"type": "INTEGER"},
          "deliveryTime": {"type": "STRING"},
          "minOrder": {"type": "INTEGER"},
          "image": {"type": "STRING", "description": "一個來自 picsum.photos 的 URL，例如：https://picsum.photos/500/300"}
        },
        "required": ["id", "name", "category", "rating", "reviews", "deliveryTime", "minOrder", "image"]
      }
    }
  }
}`)

var menuSchema = json.RawMessage(`{
  "type": "OBJECT",
  "properties": {
    "menu": {
      "type": "ARRAY",
      "items": {
        "type": "OBJECT",
        "properties": {
          "id": {"type": "STRING"},
          "name": {"type": "STRING"},
          "price": {"type": "NUMBER"},
          "restaurantName": {"type": "STRING", "description": "此品項所屬的餐廳名稱。"}
        },
        "required": ["id", "name", "price", "restaurantName"]
      }
    }
  }
}`)

// Catalog generates restaurants and menus, substituting the static dataset
// on any failure. The substitution is invisible to callers.
type Catalog struct {
	client   *Client
	fallback *static.Catalog
	log      *slog.Logger
}

func NewCatalog(client *Client, fallback *static.Catalog, log *slog.Logger) *Catalog {
	return &Catalog{client: client, fallback: fallback, log: log}
}

func (c *Catalog) Restaurants(ctx context.Context) ([]domain.Restaurant, error) {
	var out struct {
		Restaurants []domain.Restaurant `json:"restaurants"`
	}
	err := c.client.GenerateJSON(ctx, restaurantsPrompt, restaurantsSchema, &out)
	if err != nil || len(out.Restaurants) == 0 {
		c.log.Warn("restaurant generation failed, serving static dataset", "error", err)
		return c.fallback.Restaurants(ctx)
	}
	return out.Restaurants, nil
}

func (c *Catalog) Menu(ctx context.Context, restaurantName string) ([]domain.MenuItem, error) {
	prompt := fmt.Sprintf("請為名為 %q 的餐廳生成一份包含6個品項的真實菜單。"+
		"對於每個品項，請提供唯一的 ID、名稱和價格。每個品項都應包含餐廳名稱以供參考。請使用繁體中文回答。", restaurantName)
	var out struct {
		Menu []domain.MenuItem `json:"menu"`
	}
	err := c.client.GenerateJSON(ctx, prompt, menuSchema, &out)
	if err != nil || len(out.Menu) == 0 {
		c.log.Warn("menu generation failed, serving static dataset", "restaurant", restaurantName, "error", err)
		return c.fallback.Menu(ctx, restaurantName)
	}
	return out.Menu, nil
}

var _ usecase.Catalog = (*Catalog)(nil)
