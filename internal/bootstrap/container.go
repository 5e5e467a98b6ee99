package bootstrap

import (
	"log"

	"doc-chat-be/internal/config"
	"doc-chat-be/internal/controller"
	"doc-chat-be/internal/pkg/logger"
	"doc-chat-be/internal/pkg/watcher"
	"doc-chat-be/internal/repository/memory"
	"doc-chat-be/internal/repository/unitofwork"
	"doc-chat-be/internal/service"
	"doc-chat-be/pkg/embedding"
	"doc-chat-be/pkg/llm/factory"
	"doc-chat-be/pkg/pdf"
	"doc-chat-be/pkg/rag/executor"
	"doc-chat-be/pkg/rag/retrieve"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController      controller.IAuthController
	DocumentController  controller.IDocumentController
	ChatController      controller.IChatController
	QueryController     controller.IQueryController
	DashboardController controller.IDashboardController

	// Background services (exposed for main.go to run)
	IndexerService service.IIndexerService
	UploadWatcher  *watcher.UploadWatcher
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.Groq,
		cfg.Ai.RequestTimeout,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Session storage
	conversationRepo := memory.NewConversationRepository(cfg.Chat.SessionTTL, cfg.Chat.SessionSweep)

	// 5. Executors
	turnExecutor := executor.NewTurnExecutor(llmProvider, executor.TurnConfig{
		ClassifyWindow: cfg.Chat.ClassifyWindow,
		AnswerWindow:   cfg.Chat.AnswerWindow,
		HistoryCap:     cfg.Chat.HistoryCap,
		TopK:           cfg.Chat.ChatTopK,
	}, sysLogger)
	queryExecutor := executor.NewQueryExecutor(llmProvider, cfg.Chat.QueryTopK, sysLogger)
	converseExecutor := executor.NewConverseExecutor(llmProvider, executor.ConverseConfig{
		SummarizerWindow: cfg.Chat.SummarizerWindow,
		HistoryCap:       cfg.Chat.LegacyHistoryCap,
		TopK:             cfg.Chat.ChatTopK,
		WordBudget:       cfg.Chat.AnswerWordBudget,
	}, sysLogger)

	webRetriever := retrieve.NewWikipediaRetriever(cfg.Ai.RequestTimeout)

	// 6. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Keys.IndexTopic)
	documentService := service.NewDocumentService(uowFactory, publisherService, cfg.Upload.Dir, cfg.Upload.MaxSelected, sysLogger)
	indexerService := service.NewIndexerService(pubSub, cfg.Keys.IndexTopic, uowFactory, pdf.NewPopplerExtractor(), embeddingProvider, llmProvider, sysLogger)
	authService := service.NewAuthService(uowFactory, cfg.App.JWTSecret, sysLogger)
	chatService := service.NewChatService(conversationRepo, uowFactory, embeddingProvider, turnExecutor, sysLogger)
	queryService := service.NewQueryService(conversationRepo, uowFactory, embeddingProvider, queryExecutor, converseExecutor, webRetriever, cfg.Chat.AnswerWordBudget, sysLogger)
	dashboardService := service.NewDashboardService(uowFactory, conversationRepo)

	var uploadWatcher *watcher.UploadWatcher
	if cfg.Upload.WatchEnabled {
		uploadWatcher = watcher.NewUploadWatcher(cfg.Upload.Dir, documentService, sysLogger)
	}

	// 7. Controllers
	return &Container{
		AuthController:      controller.NewAuthController(authService),
		DocumentController:  controller.NewDocumentController(documentService),
		ChatController:      controller.NewChatController(chatService),
		QueryController:     controller.NewQueryController(queryService),
		DashboardController: controller.NewDashboardController(dashboardService),
		IndexerService:      indexerService,
		UploadWatcher:       uploadWatcher,
	}
}
