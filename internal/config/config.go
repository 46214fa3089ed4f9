package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"itemsvc/internal/entity"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

type (
	Config struct {
		App      App      `yaml:"app"      env-prefix:"APP_"`
		Logger   Logger   `yaml:"logger"   env-prefix:"LOGGER_"`
		Storage  Storage  `yaml:"storage"  env-prefix:"STORAGE_"`
		Mongo    Mongo    `yaml:"mongo"    env-prefix:"MONGO_"`
		Postgres Postgres `yaml:"postgres" env-prefix:"DB_"`
		HTTP     HTTP     `yaml:"http"     env-prefix:"HTTP_"`
		Events   Events   `yaml:"events"   env-prefix:"EVENTS_"`
		Metrics  Metrics  `yaml:"metrics"  env-prefix:"METRICS_"`
		Env      string   `yaml:"env"      env:"ENV" env-default:"local" validate:"oneof=local dev staging prod"`
	}

	App struct {
		Name    string `yaml:"name"    env:"NAME"    validate:"required"`
		Version string `yaml:"version" env:"VERSION" validate:"required"`
	}

	Storage struct {
		Driver         string        `yaml:"driver"          env:"DRIVER"          env-default:"mongo" validate:"oneof=mongo postgres"`
		ConnAttempts   int           `yaml:"conn_attempts"   env:"CONN_ATTEMPTS"   env-default:"5"     validate:"min=1,max=10"`
		BaseRetryDelay time.Duration `yaml:"base_retry_delay" env:"BASE_RETRY_DELAY" env-default:"100ms" validate:"gte=10ms,lte=10s"`
		MaxRetryDelay  time.Duration `yaml:"max_retry_delay" env:"MAX_RETRY_DELAY" env-default:"5s"    validate:"gte=100ms,lte=30s,gtefield=BaseRetryDelay"`
	}

	Mongo struct {
		URI            string        `yaml:"uri"             env:"URI"             env-default:"mongodb://localhost:27017" validate:"required"`
		Database       string        `yaml:"database"        env:"DATABASE"        env-default:"nestAPI"                   validate:"required"`
		Collection     string        `yaml:"collection"      env:"COLLECTION"      env-default:"items"                     validate:"required"`
		PoolMax        uint64        `yaml:"pool_max"        env:"POOL_MAX"        env-default:"20"                        validate:"min=1,max=100"`
		ConnectTimeout time.Duration `yaml:"connect_timeout" env:"CONNECT_TIMEOUT" env-default:"10s"                       validate:"gte=100ms,lte=60s"`
	}

	Postgres struct {
		Host     string `yaml:"host"     env:"HOST"     env-default:"localhost"`
		Port     string `yaml:"port"     env:"PORT"     env-default:"5432"`
		Name     string `yaml:"name"     env:"NAME"     env-default:"items"`
		User     string `yaml:"user"     env:"USER"`
		Password string `yaml:"password" env:"PASSWORD"`
		SSLMode  string `yaml:"ssl_mode" env:"SSL_MODE" env-default:"disable"`
		PoolMax  int32  `yaml:"pool_max" env:"POOL_MAX" env-default:"20"        validate:"min=1,max=100"`

		ConnectTimeout time.Duration `yaml:"connect_timeout" env:"CONNECT_TIMEOUT" env-default:"5s" validate:"gte=100ms,lte=60s"`
	}

	HTTP struct {
		Host              string        `yaml:"host"                env:"HOST"                env-default:"0.0.0.0" validate:"required"`
		Port              string        `yaml:"port"                env:"PORT"                env-default:"8080"    validate:"required"`
		ReadTimeout       time.Duration `yaml:"read_timeout"        env:"READ_TIMEOUT"        env-default:"5s"      validate:"gte=10ms,lte=30s"`
		WriteTimeout      time.Duration `yaml:"write_timeout"       env:"WRITE_TIMEOUT"       env-default:"5s"      validate:"gte=10ms,lte=30s"`
		IdleTimeout       time.Duration `yaml:"idle_timeout"        env:"IDLE_TIMEOUT"        env-default:"60s"     validate:"gte=10ms,lte=120s"`
		ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"    env:"SHUTDOWN_TIMEOUT"    env-default:"10s"     validate:"gte=10ms,lte=30s"`
		ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"READ_HEADER_TIMEOUT" env-default:"5s"      validate:"gte=10ms,lte=30s"`
		RequestTimeout    time.Duration `yaml:"request_timeout"     env:"REQUEST_TIMEOUT"     env-default:"5s"      validate:"gte=10ms,lte=30s"`
	}

	Events struct {
		Enabled      bool          `yaml:"enabled"       env:"ENABLED"       env-default:"false"`
		Brokers      []string      `yaml:"brokers"       env:"BROKERS"       env-separator:","    validate:"required_if=Enabled true,dive,hostname_port"`
		Topic        string        `yaml:"topic"         env:"TOPIC"         env-default:"items"  validate:"required_if=Enabled true"`
		BatchTimeout time.Duration `yaml:"batch_timeout" env:"BATCH_TIMEOUT" env-default:"10ms"   validate:"gte=1ms,lte=30s"`
		WriteTimeout time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT" env-default:"2s"     validate:"gte=1ms,lte=30s"`
		MaxAttempts  int           `yaml:"max_attempts"  env:"MAX_ATTEMPTS"  env-default:"3"      validate:"min=1,max=20"`
		RetryDelay   time.Duration `yaml:"retry_delay"   env:"RETRY_DELAY"   env-default:"50ms"   validate:"gte=1ms,lte=1s"`
		QueueSize    int           `yaml:"queue_size"    env:"QUEUE_SIZE"    env-default:"256"    validate:"min=1,max=100000"`
		SendTimeout  time.Duration `yaml:"send_timeout"  env:"SEND_TIMEOUT"  env-default:"5s"     validate:"gte=10ms,lte=60s"`
	}

	Metrics struct {
		Host              string        `yaml:"host"                env:"HOST"                env-default:"0.0.0.0" validate:"required"`
		Port              string        `yaml:"port"                env:"PORT"                env-default:"9090"    validate:"required"`
		ReadTimeout       time.Duration `yaml:"read_timeout"        env:"READ_TIMEOUT"        env-default:"5s"      validate:"gte=10ms,lte=30s"`
		WriteTimeout      time.Duration `yaml:"write_timeout"       env:"WRITE_TIMEOUT"       env-default:"5s"      validate:"gte=10ms,lte=30s"`
		ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"READ_HEADER_TIMEOUT" env-default:"5s"      validate:"gte=10ms,lte=30s"`
	}

	Logger struct {
		Level      string `yaml:"level"       env:"LEVEL"       env-default:"info"                    validate:"oneof=debug info warn error"`
		Filename   string `yaml:"filename"    env:"FILENAME"    env-default:"./logs/item-service.log"`
		MaxSize    int    `yaml:"max_size"    env:"MAX_SIZE"    env-default:"100"                     validate:"min=1,max=1000"`
		MaxBackups int    `yaml:"max_backups" env:"MAX_BACKUPS" env-default:"3"                       validate:"min=1,max=20"`
		MaxAge     int    `yaml:"max_age"     env:"MAX_AGE"     env-default:"28"                      validate:"min=1,max=365"`
	}
)

func Load() (*Config, error) {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	path := fetchConfigPath()
	if path == "" {
		return nil, entity.ErrConfigPathNotSet
	}
	return LoadPath(path)
}

func LoadPath(configPath string) (*Config, error) {
	const op = "config.LoadPath"

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: config file does not exist: %s", op, configPath)
	} else if err != nil {
		return nil, fmt.Errorf("%s: checking config file: %w", op, err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: read config: %w", op, err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &cfg, nil
}

func Validate(cfg *Config) error {
	validate := validator.New()

	if err := validate.Struct(cfg); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			validationErrors := make([]string, 0, len(validationErrs))
			for _, ve := range validationErrs {
				validationErrors = append(validationErrors,
					fmt.Sprintf("%s=%v must satisfy '%s'", ve.Field(), ve.Value(), ve.Tag()))
			}
			return fmt.Errorf("config validation: %s", strings.Join(validationErrors, "; "))
		}
		return fmt.Errorf("config validation: %w", err)
	}

	if cfg.Storage.Driver == DriverPostgres && (cfg.Postgres.User == "" || cfg.Postgres.Name == "") {
		return errors.New("config validation: postgres driver requires DB_USER and DB_NAME")
	}

	return nil
}

func fetchConfigPath() string {
	var path string
	flag.StringVar(&path, "config", "", "Path to config file")
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	return path
}
