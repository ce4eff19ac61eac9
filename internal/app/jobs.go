package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/talkincode/productcards/internal/exporter"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	if loc == nil {
		loc = time.Local
	}
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	if a.appConfig.Backup.Enabled {
		_, err := a.sched.AddFunc(a.appConfig.Backup.Schedule, a.SchedBackupTask)
		if err != nil {
			zap.S().Errorf("init job error %s", err.Error())
		}
	}

	a.sched.Start()
}

// SchedBackupTask writes a JSON snapshot of the collection
func (a *Application) SchedBackupTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()
	path, err := a.RunBackupNow()
	if err != nil {
		zap.L().Error("product backup failed", zap.String("namespace", "backup"), zap.Error(err))
		return
	}
	zap.L().Info("product backup written", zap.String("namespace", "backup"), zap.String("path", path))
}

// RunBackupNow writes <workdir>/backup/products-<timestamp>.json
func (a *Application) RunBackupNow() (string, error) {
	dir := a.appConfig.GetBackupDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "create backup dir")
	}
	path := filepath.Join(dir, fmt.Sprintf("products-%s.json", time.Now().Format("20060102-150405")))
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "create backup file")
	}
	if err := exporter.WriteJSON(f, a.store.List()); err != nil {
		_ = f.Close()
		return "", err
	}
	return path, errors.Wrap(f.Close(), "close backup file")
}
