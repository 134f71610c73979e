// Package static serves the built-in restaurant dataset and a deterministic
// order processor. It stands in for the generative backend whenever that is
// unconfigured or failing, behind the same ports.
package static

import (
	"context"
	"strings"

	domain "github.com/luckyeats/food-order-api/internal/entity"
	"github.com/luckyeats/food-order-api/internal/usecase"
)

var restaurants = []domain.Restaurant{
	{ID: "1", Name: "熾熱鐵板燒", Category: "現代美式料理", Rating: 4.7, Reviews: 345, DeliveryTime: "25-35 分鐘", MinOrder: 150, Image: "https://picsum.photos/500/300?random=1"},
	{ID: "2", Name: "京都花開壽司", Category: "日式料理 & 壽司", Rating: 4.9, Reviews: 512, DeliveryTime: "30-40 分鐘", MinOrder: 200, Image: "https://picsum.photos/500/300?random=2"},
	{ID: "3", Name: "義大利麵萬歲", Category: "義式料理 & 披薩", Rating: 4.6, Reviews: 420, DeliveryTime: "20-30 分鐘", MinOrder: 120, Image: "https://picsum.photos/500/300?random=3"},
	{ID: "4", Name: "塔可真好吃", Category: "墨西哥料理 & 塔可", Rating: 4.5, Reviews: 288, DeliveryTime: "15-25 分鐘", MinOrder: 80, Image: "https://picsum.photos/500/300?random=4"},
	{ID: "5", Name: "正宗川菜館", Category: "中式料理", Rating: 4.8, Reviews: 389, DeliveryTime: "30-40 分鐘", MinOrder: 180, Image: "https://picsum.photos/500/300?random=5"},
	{ID: "6", Name: "法式甜點屋", Category: "甜點 & 蛋糕", Rating: 4.9, Reviews: 267, DeliveryTime: "20-30 分鐘", MinOrder: 100, Image: "https://picsum.photos/500/300?random=6"},
	{ID: "7", Name: "泰式風味", Category: "泰式料理", Rating: 4.4, Reviews: 312, DeliveryTime: "25-35 分鐘", MinOrder: 150, Image: "https://picsum.photos/500/300?random=7"},
	{ID: "8", Name: "健康蔬食", Category: "素食 & 健康餐", Rating: 4.6, Reviews: 198, DeliveryTime: "15-25 分鐘", MinOrder: 120, Image: "https://picsum.photos/500/300?random=8"},
}

const defaultMenuCategory = "現代美式料理"

type menuEntry struct {
	id    string
	name  string
	price int64
}

var menus = map[string][]menuEntry{
	"現代美式料理": {
		{"m1", "經典漢堡", 180},
		{"m2", "起司漢堡", 200},
		{"m3", "薯條", 80},
		{"m4", "奶昔", 120},
		{"m5", "洋蔥圈", 90},
		{"m6", "招牌沙拉", 150},
	},
	"日式料理 & 壽司": {
		{"m1", "綜合壽司拼盤", 320},
		{"m2", "鮭魚生魚片", 280},
		{"m3", "天婦羅烏龍麵", 220},
		{"m4", "照燒雞肉飯", 180},
		{"m5", "味噌湯", 60},
		{"m6", "日式煎餃", 120},
	},
	"義式料理 & 披薩": {
		{"m1", "瑪格麗特披薩", 280},
		{"m2", "培根蛋奶義大利麵", 240},
		{"m3", "凱薩沙拉", 160},
		{"m4", "蒜香麵包", 80},
		{"m5", "提拉米蘇", 120},
		{"m6", "義式濃縮咖啡", 60},
	},
	"墨西哥料理 & 塔可": {
		{"m1", "牛肉塔可", 120},
		{"m2", "雞肉捲餅", 160},
		{"m3", "酪梨醬", 80},
		{"m4", "墨西哥玉米片", 100},
		{"m5", "莎莎醬", 60},
		{"m6", "墨西哥汽水", 50},
	},
}

func categoryOf(restaurantName string) (string, bool) {
	for _, r := range restaurants {
		if r.Name == restaurantName {
			return r.Category, true
		}
	}
	return "", false
}

type Catalog struct{}

func NewCatalog() *Catalog { return &Catalog{} }

func (c *Catalog) Restaurants(ctx context.Context) ([]domain.Restaurant, error) {
	out := make([]domain.Restaurant, len(restaurants))
	copy(out, restaurants)
	return out, nil
}

// Menu resolves the restaurant's category from the dataset, or falls back to
// a name-token match for restaurants the dataset doesn't know (e.g. ones a
// generative catalog produced earlier). Unmatched names get the American
// menu.
func (c *Catalog) Menu(ctx context.Context, restaurantName string) ([]domain.MenuItem, error) {
	entries := menus[defaultMenuCategory]
	if category, ok := categoryOf(restaurantName); ok {
		if m, ok := menus[category]; ok {
			entries = m
		}
	} else {
		for category, m := range menus {
			token, _, _ := strings.Cut(category, " ")
			if strings.Contains(restaurantName, token) {
				entries = m
				break
			}
		}
	}
	out := make([]domain.MenuItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, domain.MenuItem{
			ID:             e.id,
			Name:           e.name,
			Price:          e.price,
			RestaurantName: restaurantName,
		})
	}
	return out, nil
}

var _ usecase.Catalog = (*Catalog)(nil)
