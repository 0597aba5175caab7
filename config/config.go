package config

import (
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
	cerrors "massnet.org/sha2/errors"
	"massnet.org/sha2/logging"
	"massnet.org/sha2/sumfile"
)

const (
	AppName                = "sha2sum"
	DefaultConfigName      = ".sha2sum"
	DefaultLoggingFilename = "sha2sum"
	DefaultLogLevel        = logging.InfoLevel
	DefaultAlgorithms      = "sha256"
	EnvPrefix              = "SHA2SUM"
	defaultLogDirname      = "logs"
	defaultLogAge          = 7
	maxWorkers             = 1024
)

// viper keys, also the json keys of the config file
const (
	KeyLogDir        = "log_dir"
	KeyLogLevel      = "log_level"
	KeyLogAge        = "log_age"
	KeyDisableCPrint = "disable_cprint"
	KeyWorkers       = "workers"
	KeyMaxFileSize   = "max_file_size"
	KeyCacheSize     = "cache_size"
	KeyAlgorithms    = "algo"
	KeyTag           = "tag"
)

type Config struct {
	Log *Log `json:"log"`
	Sum *Sum `json:"sum"`
}

type Log struct {
	LogDir        string `json:"log_dir"`
	LogLevel      string `json:"log_level"`
	LogAge        uint32 `json:"log_age"`
	DisableCPrint bool   `json:"disable_cprint"`
}

type Sum struct {
	Workers     int    `json:"workers"`
	MaxFileSize int64  `json:"max_file_size"`
	CacheSize   int    `json:"cache_size"`
	Algorithms  string `json:"algo"`
	Tag         bool   `json:"tag"`
}

func DefaultConfig() *Config {
	return &Config{
		Log: DefaultLog(),
		Sum: DefaultSum(),
	}
}

func DefaultLog() *Log {
	return &Log{
		LogDir:        filepath.Join(AppDataDir(AppName, false), defaultLogDirname),
		LogLevel:      DefaultLogLevel,
		LogAge:        defaultLogAge,
		DisableCPrint: false,
	}
}

func DefaultSum() *Sum {
	return &Sum{
		Workers:     runtime.NumCPU(),
		MaxFileSize: sumfile.DefaultMaxFileSize,
		CacheSize:   sumfile.DefaultCacheSize,
		Algorithms:  DefaultAlgorithms,
		Tag:         false,
	}
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	cfg := DefaultConfig()
	v.SetDefault(KeyLogDir, cfg.Log.LogDir)
	v.SetDefault(KeyLogLevel, cfg.Log.LogLevel)
	v.SetDefault(KeyLogAge, cfg.Log.LogAge)
	v.SetDefault(KeyDisableCPrint, cfg.Log.DisableCPrint)
	v.SetDefault(KeyWorkers, cfg.Sum.Workers)
	v.SetDefault(KeyMaxFileSize, cfg.Sum.MaxFileSize)
	v.SetDefault(KeyCacheSize, cfg.Sum.CacheSize)
	v.SetDefault(KeyAlgorithms, cfg.Sum.Algorithms)
	v.SetDefault(KeyTag, cfg.Sum.Tag)
}

// ReadConfig points v at cfgFile, or at ./.sha2sum.* and the app data dir
// when cfgFile is empty, binds SHA2SUM_* environment variables and reads the
// file. It reports whether a config file was used; a missing default file
// is not an error.
func ReadConfig(v *viper.Viper, cfgFile string) (bool, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(AppDataDir(AppName, false))
		v.SetConfigName(DefaultConfigName)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			return false, nil
		}
		return false, cerrors.Wrap(cerrors.ErrInvalidConfig, err, "read config file")
	}
	return true, nil
}

// LoadConfig builds a Config from the values visible to v and validates it.
func LoadConfig(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Log: &Log{
			LogDir:        CleanAndExpandPath(v.GetString(KeyLogDir)),
			LogLevel:      v.GetString(KeyLogLevel),
			LogAge:        v.GetUint32(KeyLogAge),
			DisableCPrint: v.GetBool(KeyDisableCPrint),
		},
		Sum: &Sum{
			Workers:     v.GetInt(KeyWorkers),
			MaxFileSize: v.GetInt64(KeyMaxFileSize),
			CacheSize:   v.GetInt(KeyCacheSize),
			Algorithms:  v.GetString(KeyAlgorithms),
			Tag:         v.GetBool(KeyTag),
		},
	}
	if err := CheckConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// CheckConfig fills missing sections with defaults and validates the rest.
func CheckConfig(cfg *Config) error {
	if cfg.Log == nil {
		cfg.Log = DefaultLog()
	}
	if cfg.Sum == nil {
		cfg.Sum = DefaultSum()
	}

	if cfg.Log.LogDir == "" {
		cfg.Log.LogDir = DefaultLog().LogDir
	}
	if !logging.ValidLevel(cfg.Log.LogLevel) {
		return cerrors.Errorf(cerrors.ErrInvalidConfig, "invalid log level %q", cfg.Log.LogLevel)
	}

	if cfg.Sum.Workers <= 0 {
		cfg.Sum.Workers = runtime.NumCPU()
	}
	if cfg.Sum.Workers > maxWorkers {
		return cerrors.Errorf(cerrors.ErrInvalidConfig, "workers cannot be more than %d, got %d", maxWorkers, cfg.Sum.Workers)
	}
	if cfg.Sum.MaxFileSize <= 0 {
		return cerrors.Errorf(cerrors.ErrInvalidConfig, "max file size must be positive, got %d", cfg.Sum.MaxFileSize)
	}
	if cfg.Sum.CacheSize < 0 {
		return cerrors.Errorf(cerrors.ErrInvalidConfig, "cache size cannot be negative, got %d", cfg.Sum.CacheSize)
	}
	if _, err := sumfile.ParseAlgorithms(cfg.Sum.Algorithms); err != nil {
		return cerrors.Wrap(cerrors.ErrInvalidConfig, err, "invalid algo")
	}
	return nil
}
