package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gitlab.com/open-soft/go-fin-advisor/src/client"
	"gitlab.com/open-soft/go-fin-advisor/src/controller"
	"gitlab.com/open-soft/go-fin-advisor/src/repository"
	"gitlab.com/open-soft/go-fin-advisor/src/service"
	"gitlab.com/open-soft/go-fin-advisor/src/utils"
	"gitlab.com/open-soft/go-fin-advisor/src/validator"
)

func InitServiceContainer() Container {
	db, err := sql.Open("mysql", os.Getenv("DATABASE_DSN"))
	if err != nil {
		log.Fatal(fmt.Sprintf("MySQL can't connect: %s", err.Error()))
	}

	db.SetMaxIdleConns(64)
	db.SetMaxOpenConns(64)
	db.SetConnMaxLifetime(time.Minute)

	var ctx = context.Background()
	rdb := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_DSN"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	timeService := utils.TimeHelper{}
	httpClient := client.HttpClient{}

	twelveDataBaseURL := os.Getenv("TWELVE_DATA_BASE_URL")
	if len(twelveDataBaseURL) == 0 {
		twelveDataBaseURL = "https://api.twelvedata.com"
	}

	marketDataClient := client.TwelveData{
		ApiKey:      os.Getenv("TWELVE_DATA_API_KEY"),
		BaseURL:     twelveDataBaseURL,
		HttpClient:  &httpClient,
		TimeService: &timeService,
		RetryPolicy: client.DefaultRetryPolicy(),
		Lock:        &sync.Mutex{},
	}

	openAiBaseURL := os.Getenv("OPENAI_BASE_URL")
	if len(openAiBaseURL) == 0 {
		openAiBaseURL = "https://api.openai.com"
	}

	openAiModel := os.Getenv("OPENAI_MODEL")
	if len(openAiModel) == 0 {
		openAiModel = "gpt-4o-mini"
	}

	aiClient := client.OpenAi{
		ApiKey:     os.Getenv("OPENAI_API_KEY"),
		BaseURL:    openAiBaseURL,
		Model:      openAiModel,
		HttpClient: &httpClient,
	}

	backendBaseURL := os.Getenv("PYTHON_BACKEND_URL")
	if len(backendBaseURL) == 0 {
		backendBaseURL = "http://localhost:8001"
	}

	analysisBackend := client.AnalysisBackend{
		BaseURL:    backendBaseURL,
		Timeout:    time.Second * 10,
		HttpClient: &http.Client{},
	}

	chatRepository := repository.ChatRepository{
		DB:  db,
		RDB: rdb,
		Ctx: &ctx,
	}

	err = chatRepository.InitSchema()
	if err != nil {
		log.Fatal(fmt.Sprintf("Chat schema can't be initialized: %s", err.Error()))
	}

	marketRepository := repository.MarketRepository{
		RDB: rdb,
		Ctx: &ctx,
	}

	responseCache := service.NewResponseCache()

	indicatorService := service.IndicatorService{
		Formatter: &utils.Formatter{},
	}

	marketService := service.MarketService{
		MarketData:       &marketDataClient,
		IndicatorService: &indicatorService,
		Cache:            responseCache,
	}

	listingService := service.ListingService{
		MarketData:       &marketDataClient,
		MarketRepository: &marketRepository,
		Cache:            responseCache,
	}

	symbolResolver := service.SymbolResolver{
		Text:            &utils.TextHelper{},
		MaxEditDistance: 2,
	}

	advisorService := service.AdvisorService{
		ListingService: &listingService,
		Resolver:       &symbolResolver,
		MarketService:  &marketService,
		Ai:             &aiClient,
		ChatRepository: &chatRepository,
	}

	fallbackService := service.FallbackService{}

	healthService := service.HealthService{
		DB:          db,
		RDB:         rdb,
		Ctx:         &ctx,
		Backend:     &analysisBackend,
		TimeService: &timeService,
	}

	advisorController := controller.AdvisorController{
		AdvisorService: &advisorService,
		ChatRepository: &chatRepository,
		Validator:      &validator.ChatRequestValidator{},
	}

	marketController := controller.MarketController{
		MarketService:  &marketService,
		ListingService: &listingService,
	}

	analysisController := controller.AnalysisController{
		Backend:         &analysisBackend,
		FallbackService: &fallbackService,
	}

	healthController := controller.HealthController{
		HealthService: &healthService,
	}

	return Container{
		Db:                 db,
		TimeService:        &timeService,
		TwelveData:         &marketDataClient,
		OpenAi:             &aiClient,
		AnalysisBackend:    &analysisBackend,
		ChatRepository:     &chatRepository,
		MarketRepository:   &marketRepository,
		ResponseCache:      responseCache,
		MarketService:      &marketService,
		ListingService:     &listingService,
		SymbolResolver:     &symbolResolver,
		AdvisorService:     &advisorService,
		FallbackService:    &fallbackService,
		HealthService:      &healthService,
		AdvisorController:  &advisorController,
		MarketController:   &marketController,
		AnalysisController: &analysisController,
		HealthController:   &healthController,
	}
}

type Container struct {
	Db                 *sql.DB
	TimeService        *utils.TimeHelper
	TwelveData         *client.TwelveData
	OpenAi             *client.OpenAi
	AnalysisBackend    *client.AnalysisBackend
	ChatRepository     *repository.ChatRepository
	MarketRepository   *repository.MarketRepository
	ResponseCache      *service.ResponseCache
	MarketService      *service.MarketService
	ListingService     *service.ListingService
	SymbolResolver     *service.SymbolResolver
	AdvisorService     *service.AdvisorService
	FallbackService    *service.FallbackService
	HealthService      *service.HealthService
	AdvisorController  *controller.AdvisorController
	MarketController   *controller.MarketController
	AnalysisController *controller.AnalysisController
	HealthController   *controller.HealthController
}

func (c *Container) StartHttpServer() {
	// configure controllers
	http.HandleFunc("/advisor/chat/", c.AdvisorController.PostChatAction)
	http.HandleFunc("/advisor/history/", c.AdvisorController.GetHistoryAction)
	http.HandleFunc("/advisor/clear/", c.AdvisorController.PostClearAction)
	http.HandleFunc("/market/quote", c.MarketController.GetQuoteAction)
	http.HandleFunc("/market/series", c.MarketController.GetTimeSeriesAction)
	http.HandleFunc("/market/indicator/", c.MarketController.GetIndicatorAction)
	http.HandleFunc("/market/chart", c.MarketController.GetChartAction)
	http.HandleFunc("/market/listings/", c.MarketController.GetListingsAction)
	http.HandleFunc("/market/stream", c.MarketController.GetStreamAction)
	http.HandleFunc("/api/sec-filings/analyze", c.AnalysisController.PostSecAnalysisAction)
	http.HandleFunc("/api/sec-filings/chat", c.AnalysisController.PostSecChatAction)
	http.HandleFunc("/api/chat-query", c.AnalysisController.PostChatQueryAction)
	http.HandleFunc("/api/document-analysis", c.AnalysisController.PostDocumentAnalysisAction)
	http.HandleFunc("/health/check", c.HealthController.GetHealthCheckAction)

	port := os.Getenv("PORT")
	if len(port) == 0 {
		port = "8080"
	}

	// Start HTTP server!
	go func() {
		_ = http.ListenAndServe(":"+port, nil)
	}()
}
