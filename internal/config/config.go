package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

// TimeZone is used for backend dates that carry no offset.
var TimeZone = time.UTC

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"America/Sao_Paulo"`
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	Log struct {
		Level  string `env:"LOG_LEVEL" envDefault:"info"`
		Format string `env:"LOG_FORMAT" envDefault:"console"`
	}

	Backend struct {
		URL     string        `env:"BACKEND_URL" envDefault:"http://localhost:8080"`
		Timeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"10s"`
	}

	ViaCep struct {
		URL     string        `env:"VIACEP_URL" envDefault:"https://viacep.com.br"`
		Timeout time.Duration `env:"VIACEP_TIMEOUT" envDefault:"5s"`
	}

	Cache struct {
		Enabled     bool          `env:"CACHE_ENABLED" envDefault:"true"`
		HistorySize int           `env:"CACHE_HISTORY_SIZE" envDefault:"1000"`
		ProfileSize int           `env:"CACHE_PROFILE_SIZE" envDefault:"1000"`
		CepSize     int           `env:"CACHE_CEP_SIZE" envDefault:"5000"`
		CepTTL      time.Duration `env:"CACHE_CEP_TTL" envDefault:"24h"`
	}

	Storage struct {
		RedisEnabled  bool   `env:"STORAGE_REDIS_ENABLED"`
		RedisAddr     string `env:"STORAGE_REDIS_ADDR" envDefault:"localhost:6379"`
		RedisPassword string `env:"STORAGE_REDIS_PASSWORD"`
		RedisDB       int    `env:"STORAGE_REDIS_DB"`
		KeyPrefix     string `env:"STORAGE_KEY_PREFIX" envDefault:"portal"`
		MemorySize    int    `env:"STORAGE_MEMORY_SIZE" envDefault:"10000"`
	}

	RabbitMq struct {
		Enabled          bool   `env:"RABBITMQ_ENABLED"`
		AmqpUri          string `env:"RABBITMQ_AMQP_URI"`
		FeedbackExchange string `env:"RABBITMQ_FEEDBACK_EXCHANGE" envDefault:"portal.feedback"`
		FeedbackSync     bool   `env:"RABBITMQ_FEEDBACK_SYNC"`

		QueueConfig struct {
			HistoryQueueName     string `env:"RABBITMQ_HISTORY_QUEUE_NAME" envDefault:"portal-bff.historico"`
			HistoryQueueExchange string `env:"RABBITMQ_HISTORY_QUEUE_EXCHANGE" envDefault:"backend.consulta"`
			HistoryQueueBind     string `env:"RABBITMQ_HISTORY_QUEUE_BIND" envDefault:"*.portal-bff.#"`
		}
	}

	Photo struct {
		MaxBytes int64 `env:"PHOTO_MAX_BYTES" envDefault:"5242880"`
	}
}

func NewConfig() (*Config, error) {
	// .env is optional, the process environment always wins
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)

	if loc, err := time.LoadLocation(cfg.App.Timezone); err == nil {
		TimeZone = loc
	}

	// Feedback sync needs a broker
	if !cfg.RabbitMq.Enabled {
		cfg.RabbitMq.FeedbackSync = false
	}

	return cfg, nil
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
