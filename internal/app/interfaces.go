package app

import (
	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"
	"github.com/talkincode/productcards/config"
	"github.com/talkincode/productcards/internal/catalog"
)

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// StoreProvider provides the product store
type StoreProvider interface {
	Store() *catalog.Store
}

// EventBusProvider provides the bus product events are published on
type EventBusProvider interface {
	Bus() EventBus.Bus
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// AppContext combines all provider interfaces for full application context
// Web handlers and commands should depend on specific providers or this combined interface
type AppContext interface {
	ConfigProvider
	StoreProvider
	EventBusProvider
	SchedulerProvider

	// RunBackupNow writes a snapshot of the collection immediately and returns its path
	RunBackupNow() (string, error)
	// Release stops background jobs and closes storage
	Release()
}
