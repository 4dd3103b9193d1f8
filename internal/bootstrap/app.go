package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"univoice/internal/ai"
	"univoice/internal/app"
	"univoice/internal/config"
	"univoice/internal/directory"
	mysqlClient "univoice/internal/platform/mysql"
	rabbitmqClient "univoice/internal/platform/rabbitmq"
	redisClient "univoice/internal/platform/redis"
	"univoice/internal/repository"
	"univoice/internal/rewrite"
	"univoice/internal/session"
	"univoice/internal/store"
	"univoice/internal/worker"
)

// App owns every long-lived resource. Problems lists features that were
// disabled at startup; the process keeps serving the rest.
type App struct {
	Config   *config.Config
	Log      *zap.Logger
	Problems []*config.ConfigurationError

	Directory  *directory.Directory
	Gate       *session.Gate
	Auth       *app.AuthService
	Submission *app.SubmissionService
	Review     *app.ReviewService

	MySQL         *gorm.DB
	Redis         *redis.Client
	MQConn        *amqp.Connection
	NotifyWorker  *worker.NotificationWorker
	StoreBackend  string
	RewriterReady bool
	StoreReady    bool

	StartedAt time.Time
}

func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	a := &App{
		Config:       cfg,
		Log:          log,
		Problems:     cfg.Problems(),
		StoreBackend: cfg.Store.Backend,
		StartedAt:    time.Now(),
	}
	for _, p := range a.Problems {
		log.Warn("feature disabled", zap.String("field", p.Field), zap.String("reason", p.Reason))
	}

	dir, err := directory.New(cfg.Teachers, cfg.Auth.TeacherSharedPassword)
	if err != nil {
		a.degrade("teachers", err, "listed rows were skipped")
	}
	a.Directory = dir

	rewriter := a.buildRewriter(ctx)
	messageStore := a.buildStore(ctx)
	publisher := a.buildNotifications(ctx)

	var revocations session.Revocations = session.NewMemoryRevocations()
	if cfg.Redis.Addr != "" {
		client, err := redisClient.New(ctx, cfg.Redis)
		if err != nil {
			a.degrade("redis.addr", err, "logouts are kept in process memory")
		} else {
			a.Redis = client
			revocations = session.NewRedisRevocations(client)
		}
	}

	a.Gate = session.NewGate(
		session.Credentials{Teachers: dir, StudentPassword: cfg.Auth.StudentPassword},
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.SessionExpireMinute)*time.Minute,
		revocations,
		log.Named("session"),
	)
	a.Auth = app.NewAuthService(a.Gate, dir)

	storeTimeout := time.Duration(cfg.Store.TimeoutSeconds) * time.Second
	a.Submission = app.NewSubmissionService(dir, rewriter, messageStore, publisher, app.SubmissionOptions{
		AllowFreeTextRecipient: cfg.Submission.AllowFreeTextRecipient,
		RequireStudentLogin:    cfg.Submission.RequireStudentLogin,
		MaxContentRunes:        cfg.Submission.MaxContentRunes,
		RewriteTimeout:         time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
		StoreTimeout:           storeTimeout,
	}, log.Named("submission"))
	a.Review = app.NewReviewService(dir, messageStore, storeTimeout, log.Named("review"))

	return a, nil
}

// buildRewriter returns nil, which disables submissions, when the generation
// credential is missing or the client cannot be created.
func (a *App) buildRewriter(ctx context.Context) app.MessageRewriter {
	if a.Config.LLM.APIKey == "" {
		return nil
	}
	generator, err := ai.NewGenerator(ctx, a.Config.LLM, rewrite.SystemPrompt)
	if err != nil {
		a.degrade("llm", err, "submissions are disabled")
		return nil
	}
	a.RewriterReady = true
	return rewrite.New(generator)
}

// buildStore returns nil, which disables submit and review, when the backend
// cannot be reached. An interface holding a nil pointer is never returned.
func (a *App) buildStore(ctx context.Context) store.MessageStore {
	cfg := a.Config
	switch cfg.Store.Backend {
	case config.StoreMemory:
		a.StoreReady = true
		return store.NewMemoryStore()

	case config.StoreMySQL:
		db, err := mysqlClient.New(ctx, cfg.MySQLDSN(), cfg.App.Env == "dev")
		if err != nil {
			a.degrade("mysql", err, "message store is disabled")
			return nil
		}
		a.MySQL = db
		repo := repository.NewMessageRepository(db)
		if err := repo.AutoMigrate(); err != nil {
			a.degrade("mysql", err, "message store is disabled")
			return nil
		}
		a.StoreReady = true
		return repo

	case config.StoreSheets:
		if cfg.Sheets.SpreadsheetID == "" {
			return nil
		}
		table, err := store.NewGoogleSheet(ctx, cfg.Sheets.SpreadsheetID, cfg.Sheets.SheetName, cfg.Sheets.CredentialsFile)
		if err != nil {
			a.degrade("sheets", err, "message store is disabled")
			return nil
		}
		sheet := store.NewSheetStore(table, time.Local)
		initCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Store.TimeoutSeconds)*time.Second)
		defer cancel()
		if err := sheet.Init(initCtx); err != nil {
			a.degrade("sheets", err, "message store is disabled")
			return nil
		}
		a.StoreReady = true
		return sheet
	}
	return nil
}

func (a *App) buildNotifications(ctx context.Context) app.EventPublisher {
	cfg := a.Config.RabbitMQ
	if cfg.URL == "" {
		return nil
	}
	conn, err := rabbitmqClient.New(ctx, cfg.URL, cfg.NotifyQueue)
	if err != nil {
		a.degrade("rabbitmq.url", err, "teacher notifications are disabled")
		return nil
	}
	notifyWorker := worker.NewNotificationWorker(conn, worker.NewLogNotifier(a.Directory, a.Log.Named("notify")), cfg.NotifyQueue, a.Log.Named("worker"))
	if err := notifyWorker.Start(ctx); err != nil {
		_ = conn.Close()
		a.degrade("rabbitmq.url", err, "teacher notifications are disabled")
		return nil
	}
	a.MQConn = conn
	a.NotifyWorker = notifyWorker
	return rabbitmqClient.NewEventPublisher(conn, cfg.NotifyQueue)
}

func (a *App) degrade(field string, err error, effect string) {
	problem := &config.ConfigurationError{Field: field, Reason: fmt.Sprintf("%v; %s", err, effect)}
	a.Problems = append(a.Problems, problem)
	a.Log.Warn("feature disabled", zap.String("field", field), zap.Error(err), zap.String("effect", effect))
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.NotifyWorker != nil {
		a.NotifyWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
