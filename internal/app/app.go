package app

import (
	"context"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/talkincode/productcards/config"
	"github.com/talkincode/productcards/internal/catalog"
	"github.com/talkincode/productcards/internal/kvstore"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Application struct {
	appConfig *config.AppConfig
	kv        kvstore.Store
	store     *catalog.Store
	bus       EventBus.Bus
	sched     *cron.Cron
	prompt    catalog.Prompter
}

// Ensure Application implements all interfaces
var (
	_ ConfigProvider    = (*Application)(nil)
	_ StoreProvider     = (*Application)(nil)
	_ EventBusProvider  = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ AppContext        = (*Application)(nil)
)

// NewApplication creates the application. prompt is the default Prompter of the
// product store; nil means every confirmation is declined.
func NewApplication(appConfig *config.AppConfig, prompt catalog.Prompter) *Application {
	return &Application{appConfig: appConfig, prompt: prompt}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) Store() *catalog.Store {
	return a.store
}

func (a *Application) Bus() EventBus.Bus {
	return a.bus
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

// OverrideStorage replaces the key-value backend before Init (used in tests).
func (a *Application) OverrideStorage(kv kvstore.Store) {
	a.kv = kv
}

func (a *Application) Init(cfg *config.AppConfig) error {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	if err := InitLogger(cfg); err != nil {
		return err
	}

	if a.kv == nil {
		a.kv, err = kvstore.Open(cfg)
		if err != nil {
			return errors.Wrap(err, "open product storage")
		}
		zap.S().Infof("Storage open, type: %s", cfg.Storage.Type)
	}

	a.bus = EventBus.New()
	a.subscribeOperationLog()

	a.store = catalog.NewStore(a.kv, a.prompt, a.bus)
	a.store.Initialize(context.Background())

	if cfg.System.SeedDemo {
		a.checkProducts()
	}
	return nil
}

// InitLogger installs the global zap logger described by cfg.Logger
func InitLogger(cfg *config.AppConfig) error {
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	if cfg.System.Debug {
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	zapConfig.OutputPaths = []string{"stdout"}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			return errors.Wrap(err, "build logger")
		}
	}

	zap.ReplaceGlobals(logger)
	return nil
}

// StartBackgroundJobs starts the cron scheduler
func (a *Application) StartBackgroundJobs() {
	a.initJob()
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		<-a.sched.Stop().Done()
	}
	if a.kv != nil {
		if err := a.kv.Close(); err != nil {
			zap.L().Warn("failed to close storage", zap.Error(err))
		}
	}
	_ = zap.L().Sync()
}
