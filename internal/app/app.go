package app

import (
	"context"

	"github.com/resumepilot/resumepilot/internal/config"
	"github.com/resumepilot/resumepilot/internal/core"
	"github.com/resumepilot/resumepilot/internal/core/analysis_engine"
	db "github.com/resumepilot/resumepilot/internal/core/database"
	"github.com/resumepilot/resumepilot/internal/core/ingestion_engine"
	"github.com/resumepilot/resumepilot/internal/core/invoker"
	"github.com/resumepilot/resumepilot/internal/core/llm"
	objectclient "github.com/resumepilot/resumepilot/internal/core/object-client"
	"github.com/resumepilot/resumepilot/internal/logger"
	"github.com/resumepilot/resumepilot/internal/services"
)

type App struct {
	Ingest   *services.IngestService
	Analysis *services.AnalysisService
	Chat     *services.ChatService
	Server   *Server

	planner *llm.GeminiPlanner
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	awsCfg, err := objectclient.LoadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	objects := objectclient.NewS3Client(awsCfg, cfg)
	store := db.NewDynamoClient(awsCfg, cfg.TableName)

	// Ingestion stage.
	validator := ingestion_engine.NewValidator(cfg.MaxUploadBytes)
	orchestrator := ingestion_engine.NewOrchestrator(
		ingestion_engine.NewTextractExtractor(awsCfg),
		ingestion_engine.NewDocxExtractor(objects),
	)

	// Analysis stage.
	var planner *llm.GeminiPlanner
	if cfg.AIAPIKey != "" {
		planner, err = llm.NewGeminiPlanner(ctx, cfg.AIAPIKey, cfg.GenModel)
		if err != nil {
			return nil, err
		}
	} else {
		logger.Warn().Msg("GEMINI_API_KEY not set; improvement plans disabled")
	}

	entities := analysis_engine.NewFallbackExtractor(
		analysis_engine.NewComprehendExtractor(awsCfg),
		analysis_engine.NewRegexExtractor(),
	)

	var planGen core.PlanGenerator
	if planner != nil {
		planGen = planner
	}
	analysis := services.NewAnalysisService(entities, store, store, planGen)

	// The forwarder hands payloads to a Lambda when one is configured,
	// otherwise straight to the in-process analysis stage.
	var analyzerInvoker core.AnalyzerInvoker
	if cfg.AnalyzerFunction != "" {
		analyzerInvoker = invoker.NewLambdaInvoker(awsCfg, cfg.AnalyzerFunction)
	} else {
		analyzerInvoker = &invoker.LocalInvoker{Process: analysis.ProcessRequest}
	}
	forwarder := ingestion_engine.NewForwarder(analyzerInvoker)

	ingest := services.NewIngestService(validator, orchestrator, forwarder, objects, store)

	// Chat.
	builder := llm.NewContextBuilder(cfg.MaxContextLength, cfg.CVTextLimit, cfg.JDTextLimit)
	inference := llm.NewBedrockClient(awsCfg, cfg.InferenceModelID, cfg.ChatMaxTokens)
	chat := services.NewChatService(store, store, builder, inference)

	server := NewServer(cfg, objects, store, ingest, analysis, chat)

	return &App{
		Ingest:   ingest,
		Analysis: analysis,
		Chat:     chat,
		Server:   server,
		planner:  planner,
	}, nil
}

func (a *App) Close() {
	if a.planner != nil {
		_ = a.planner.Close()
	}
}
