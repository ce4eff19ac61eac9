package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

const envPrefix = "PRODUCTCARDS_"

// SysConfig system configuration
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
	SeedDemo bool   `yaml:"seed_demo"`
}

// WebConfig web server configuration
type WebConfig struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	Secret string `yaml:"secret"`
}

// StorageConfig selects the key-value backend holding the product collection.
// Type is one of bolt, sqlite, postgres, memory.
type StorageConfig struct {
	Type   string `yaml:"type"`
	Path   string `yaml:"path"`
	Bucket string `yaml:"bucket"`
	Dsn    string `yaml:"dsn"`
}

// LogConfig logging configuration
type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

// BackupConfig periodic snapshot export
type BackupConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Schedule string `yaml:"schedule"`
}

type AppConfig struct {
	System  SysConfig     `yaml:"system"`
	Web     WebConfig     `yaml:"web"`
	Storage StorageConfig `yaml:"storage"`
	Logger  LogConfig     `yaml:"logger"`
	Backup  BackupConfig  `yaml:"backup"`
}

// GetBackupDir returns the directory receiving scheduled snapshots
func (c *AppConfig) GetBackupDir() string {
	return filepath.Join(c.System.Workdir, "backup")
}

// GetStoragePath resolves a relative storage path against the workdir
func (c *AppConfig) GetStoragePath() string {
	if c.Storage.Path == "" || filepath.IsAbs(c.Storage.Path) {
		return c.Storage.Path
	}
	return filepath.Join(c.System.Workdir, c.Storage.Path)
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "ProductCards",
		Location: "Local",
		Workdir:  "./data",
		Debug:    false,
	},
	Web: WebConfig{
		Host:   "0.0.0.0",
		Port:   8080,
		Secret: "9b6de5cc-0731-4bf1-a8e7-b4d2c1f0e3a7",
	},
	Storage: StorageConfig{
		Type:   "bolt",
		Path:   "productcards.db",
		Bucket: "productcards",
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "./data/productcards.log",
	},
	Backup: BackupConfig{
		Enabled:  false,
		Schedule: "@daily",
	},
}

// LoadConfig reads the YAML file when present, then applies PRODUCTCARDS_* env overrides.
// An empty or missing file yields the defaults.
func LoadConfig(cfile string) (*AppConfig, error) {
	cfg := *DefaultAppConfig
	if cfile != "" {
		data, err := os.ReadFile(cfile)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, errors.Wrapf(err, "read config %s", cfile)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, errors.Wrapf(err, "parse config %s", cfile)
			}
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the configuration as YAML
func (c *AppConfig) Save(cfile string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	if dir := filepath.Dir(cfile); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "create config dir")
		}
	}
	return errors.Wrap(os.WriteFile(cfile, data, 0o644), "write config")
}

// Validate checks the values the application cannot start without
func (c *AppConfig) Validate() error {
	switch c.Storage.Type {
	case "bolt", "sqlite":
		if c.Storage.Path == "" {
			return errors.Errorf("storage.path is required for %s storage", c.Storage.Type)
		}
	case "postgres":
		if c.Storage.Dsn == "" {
			return errors.New("storage.dsn is required for postgres storage")
		}
	case "memory":
	default:
		return errors.Errorf("unsupported storage type %q", c.Storage.Type)
	}
	if c.Web.Port <= 0 || c.Web.Port > 65535 {
		return errors.Errorf("invalid web port %d", c.Web.Port)
	}
	return nil
}

func (c *AppConfig) applyEnvOverrides() {
	setEnvString("SYSTEM_WORKDIR", &c.System.Workdir)
	setEnvString("SYSTEM_LOCATION", &c.System.Location)
	setEnvBool("SYSTEM_DEBUG", &c.System.Debug)
	setEnvBool("SYSTEM_SEED_DEMO", &c.System.SeedDemo)

	setEnvString("WEB_HOST", &c.Web.Host)
	setEnvInt("WEB_PORT", &c.Web.Port)
	setEnvString("WEB_SECRET", &c.Web.Secret)

	setEnvString("STORAGE_TYPE", &c.Storage.Type)
	setEnvString("STORAGE_PATH", &c.Storage.Path)
	setEnvString("STORAGE_BUCKET", &c.Storage.Bucket)
	setEnvString("STORAGE_DSN", &c.Storage.Dsn)

	setEnvString("LOGGER_MODE", &c.Logger.Mode)
	setEnvBool("LOGGER_FILE_ENABLE", &c.Logger.FileEnable)
	setEnvString("LOGGER_FILENAME", &c.Logger.Filename)

	setEnvBool("BACKUP_ENABLED", &c.Backup.Enabled)
	setEnvString("BACKUP_SCHEDULE", &c.Backup.Schedule)
}

func lookupEnv(name string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func setEnvString(name string, p *string) {
	if v, ok := lookupEnv(name); ok {
		*p = v
	}
}

func setEnvInt(name string, p *int) {
	if v, ok := lookupEnv(name); ok {
		if i, err := cast.ToIntE(v); err == nil {
			*p = i
		}
	}
}

func setEnvBool(name string, p *bool) {
	if v, ok := lookupEnv(name); ok {
		if b, err := cast.ToBoolE(v); err == nil {
			*p = b
		}
	}
}
