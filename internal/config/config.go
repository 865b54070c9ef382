package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const defaultConfigPath = "./config/local.yaml"

type Config struct {
	Env         string `yaml:"env" env:"ENV" env-default:"prod"`
	FrontendDir string `yaml:"frontend_dir" env:"FRONTEND_DIR"`
	HTTPServer  `yaml:"http_server"`
	Storage     Storage `yaml:"storage"`
	Board       Board   `yaml:"board"`
	Metrics     Metrics `yaml:"metrics"`
	CORS        CORS    `yaml:"cors"`
	Log         Log     `yaml:"log"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:4001"`
	Timeout     time.Duration `yaml:"timeout" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Storage selects the relational backend. The sqlite driver keeps everything in a
// single local file; mysql is available for installations that already run one.
type Storage struct {
	Driver     string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"sqlite"`
	Path       string `yaml:"path" env:"STORAGE_PATH" env-default:"./reforma_db_final.sqlite"`
	DBHost     string `yaml:"db_host" env:"DB_HOST" env-default:"localhost"`
	DBPort     int    `yaml:"db_port" env:"DB_PORT" env-default:"3306"`
	DBUser     string `yaml:"db_user" env:"DB_USER"`
	DBPassword string `yaml:"db_password" env:"DB_PASSWORD"`
	DBName     string `yaml:"db_name" env:"DB_NAME"`
}

type Board struct {
	// DoneLimit caps the Feito lane of the live board, 0 shows every card.
	DoneLimit int `yaml:"done_limit" env:"BOARD_DONE_LIMIT" env-default:"15"`
}

type Metrics struct {
	PendingStatus string `yaml:"pending_status" env:"METRICS_PENDING_STATUS" env-default:"Peça Pendente"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:5173"`
}

type Log struct {
	ErrorFile string `yaml:"error_file" env:"LOG_ERROR_FILE" env-default:"errors.log"`
	// FileLevel is the lowest level copied into ErrorFile.
	FileLevel string `yaml:"file_level" env:"LOG_FILE_LEVEL" env-default:"error"`
}

func MustConfig() *Config {
	cfg, err := Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}

// Load reads the yaml file at path (or the default location) on top of the
// environment. A missing file is not an error: env and defaults are used instead.
func Load(path string) (*Config, error) {
	// .env is optional, real environment variables win
	_ = godotenv.Load()

	if path == "" {
		path = defaultConfigPath
	}

	var cfg Config

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
