package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/luckyeats/food-order-api/configs"
	"github.com/luckyeats/food-order-api/internal/adapter/cache"
	"github.com/luckyeats/food-order-api/internal/adapter/gemini"
	httpadapter "github.com/luckyeats/food-order-api/internal/adapter/http"
	"github.com/luckyeats/food-order-api/internal/adapter/queue"
	"github.com/luckyeats/food-order-api/internal/adapter/sheets"
	"github.com/luckyeats/food-order-api/internal/adapter/static"
	"github.com/luckyeats/food-order-api/internal/cart"
	"github.com/luckyeats/food-order-api/internal/logging"
	"github.com/luckyeats/food-order-api/internal/session"
	"github.com/luckyeats/food-order-api/internal/usecase"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	logging.Init(cfg.App.Name, cfg.App.LogFile)
	log := logging.New("app")

	// init redis (cart slots, session slots, attempt guard)
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, nil, err
	}

	slots := cache.NewRedisSlots(rdb)
	guard := cache.NewRedisAttemptGuard(rdb, cfg.Checkout.AttemptTTL)
	carts := cart.NewManager(slots, logging.New("cart"))
	sessions := session.NewManager(slots, logging.New("session"))

	// catalog + processor: generative when a key is configured, static otherwise
	staticCatalog := static.NewCatalog()
	staticProcessor := static.NewProcessor()
	var catalog usecase.Catalog = staticCatalog
	var processor usecase.OrderProcessor = staticProcessor
	if cfg.Gemini.APIKey != "" {
		client := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.BaseURL, cfg.Gemini.Model)
		catalog = gemini.NewCatalog(client, staticCatalog, logging.New("gemini"))
		processor = gemini.NewProcessor(client, staticProcessor, logging.New("gemini"))
	} else {
		log.Warn("gemini api key not set, serving static catalog")
	}

	ledger := sheets.NewLedger(cfg.Sheets.ScriptURL, logging.New("sheets"))

	// notifier: rabbit when configured, log-only otherwise
	var notifier usecase.Notifier = queue.NewLogNotifier(logging.New("notify"))
	closeRabbit := func() {}
	if cfg.Rabbit.URL != "" {
		conn, err := amqp.Dial(cfg.Rabbit.URL)
		if err != nil {
			return nil, nil, err
		}
		ch, err := conn.Channel()
		if err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
		rn, err := queue.NewRabbitNotifier(ch, cfg.Rabbit.Exchange, cfg.Rabbit.RoutingKey, logging.New("notify"))
		if err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
		notifier = rn
		closeRabbit = func() {
			_ = ch.Close()
			_ = conn.Close()
		}
	}

	submit := usecase.NewSubmitOrder(
		processor, ledger, guard, notifier,
		carts, sessions,
		cfg.Checkout.Timeout, cfg.Checkout.ShippingFee,
	)

	router := httpadapter.NewRouter(
		httpadapter.NewCatalogHandler(catalog),
		httpadapter.NewCartHandler(carts, cfg.Checkout.ShippingFee),
		httpadapter.NewOrderHandler(submit),
		httpadapter.NewSessionHandler(sessions, carts),
	)

	cleanup := func() {
		closeRabbit()
		_ = rdb.Close()
	}
	return &App{Router: router}, cleanup, nil
}
