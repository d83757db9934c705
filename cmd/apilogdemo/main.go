// Точка входа ApiLogDemo — CRUD над JSON-файлом людей с журналом вызовов.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iamhitya/apilogdemo/internal/api/handlers"
	"github.com/iamhitya/apilogdemo/internal/api/openapi"
	"github.com/iamhitya/apilogdemo/internal/config"
	"github.com/iamhitya/apilogdemo/internal/domain/model"
	"github.com/iamhitya/apilogdemo/internal/server"
	"github.com/iamhitya/apilogdemo/internal/service"
	"github.com/iamhitya/apilogdemo/internal/storage/attachment"
	"github.com/iamhitya/apilogdemo/internal/storage/jsonfile"
)

func main() {
	// Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка конфигурации: %v\n", err)
		os.Exit(1)
	}

	logger := config.SetupLogger(cfg)
	logger.Info("ApiLogDemo запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.String("data_dir", cfg.DataDir),
		slog.String("files_dir", cfg.FilesDir),
		slog.Bool("file_locking", cfg.FileLocking),
	)
	if !cfg.FileLocking {
		logger.Warn("Блокировка документов выключена: параллельные изменения могут теряться")
	}

	// --- Инициализация компонентов ---

	// 1. JSON-документы
	peopleDoc, err := jsonfile.New[model.Person](cfg.PeoplePath(), cfg.FileLocking)
	if err != nil {
		logger.Error("Ошибка инициализации документа людей", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logsDoc, err := jsonfile.New[model.CallLog](cfg.LogsPath(), cfg.FileLocking)
	if err != nil {
		logger.Error("Ошибка инициализации журнала вызовов", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Источник вложений
	sampler := attachment.NewSampler(cfg.FilesDir, cfg.AttachmentCacheSize, cfg.AttachmentCacheTTL, logger)

	// 3. Сервисы
	peopleSvc := service.NewPeopleService(peopleDoc, sampler, logger)
	callLogSvc := service.NewCallLogService(logsDoc, logger)

	// 4. OpenAPI контракт
	doc, err := openapi.Load(context.Background())
	if err != nil {
		logger.Error("Ошибка загрузки OpenAPI документа", slog.String("error", err.Error()))
		os.Exit(1)
	}
	openapiHandler, err := handlers.NewOpenAPIHandler(doc)
	if err != nil {
		logger.Error("Ошибка подготовки OpenAPI документа", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 5. HTTP handlers
	api := handlers.NewAPIHandler(
		handlers.NewPeopleHandler(peopleSvc, callLogSvc, logger),
		handlers.NewApiLogsHandler(callLogSvc, logger),
		handlers.NewHealthHandler(cfg.DataDir, cfg.FilesDir),
		openapiHandler,
		promhttp.Handler(),
	)

	// 6. HTTP-сервер
	srv := server.New(cfg, logger, api)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("ApiLogDemo остановлен")
}
