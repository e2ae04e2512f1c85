package static

import (
	"errors"
	"os"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/slidelens/slidelens/internal/types"
	"gopkg.in/yaml.v3"
)

var slideLensGlobalConfigurations types.SlideLensGlobalConfigurations

// environment overrides, mirrors the variables the python deployment read via dotenv
type envOverrides struct {
	HuggingFaceToken string `env:"HUGGINGFACE_HUB_TOKEN"`
	QdrantURL        string `env:"QDRANT_URL"`
	QdrantAPIKey     string `env:"QDRANT_API_KEY"`
	Port             int    `env:"SLIDELENS_PORT"`
	APIKey           string `env:"SLIDELENS_API_KEY"`
	DatabaseURL      string `env:"DATABASE_URL"`
	RedisAddr        string `env:"REDIS_ADDR"`
	Debug            bool   `env:"SLIDELENS_DEBUG"`
}

func InitConfig(path string) error {
	slideLensGlobalConfigurations = types.SlideLensGlobalConfigurations{}

	// a missing .env is fine, the variables may come from the container
	_ = godotenv.Load()

	if path != "" {
		// read config file
		configFile, err := os.Open(path)
		if err != nil {
			return err
		}

		defer configFile.Close()

		// parse config file
		decoder := yaml.NewDecoder(configFile)
		err = decoder.Decode(&slideLensGlobalConfigurations)
		if err != nil {
			return err
		}
	}

	if err := applyEnvOverrides(&slideLensGlobalConfigurations); err != nil {
		return err
	}

	applyDefaults(&slideLensGlobalConfigurations)
	return nil
}

func applyEnvOverrides(config *types.SlideLensGlobalConfigurations) error {
	var env envOverrides
	err := envdecode.Decode(&env)
	if err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return err
	}

	if env.HuggingFaceToken != "" {
		config.Inference.Token = env.HuggingFaceToken
	}
	if env.QdrantURL != "" {
		config.Qdrant.URL = env.QdrantURL
	}
	if env.QdrantAPIKey != "" {
		config.Qdrant.APIKey = env.QdrantAPIKey
	}
	if env.Port != 0 {
		config.App.Port = env.Port
	}
	if env.APIKey != "" {
		config.App.Key = env.APIKey
	}
	if env.DatabaseURL != "" {
		config.Database.DSN = env.DatabaseURL
	}
	if env.RedisAddr != "" {
		config.Redis.Addr = env.RedisAddr
	}
	if env.Debug {
		config.App.Debug = true
	}
	return nil
}

func applyDefaults(config *types.SlideLensGlobalConfigurations) {
	if config.App.Host == "" {
		config.App.Host = "0.0.0.0"
	}
	if config.App.Port == 0 {
		config.App.Port = 8000
	}
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = 4
	}
	if config.MaxRequests <= 0 {
		config.MaxRequests = 50
	}
	if config.WorkerTimeout <= 0 {
		config.WorkerTimeout = 120
	}
	if config.TempDir == "" {
		config.TempDir = os.TempDir()
	}

	if config.Log.Path == "" {
		config.Log.Path = "logs/slidelens.log"
	}
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.Log.MaxSizeMB <= 0 {
		config.Log.MaxSizeMB = 100
	}
	if config.Log.MaxBackups <= 0 {
		config.Log.MaxBackups = 7
	}
	if config.Log.MaxAgeDays <= 0 {
		config.Log.MaxAgeDays = 28
	}

	if config.PDF.Engine == "" {
		config.PDF.Engine = PDF_ENGINE_POPPLER
	}
	if config.PDF.PdftotextPath == "" {
		config.PDF.PdftotextPath = "pdftotext"
	}
	if config.PDF.PdfinfoPath == "" {
		config.PDF.PdfinfoPath = "pdfinfo"
	}
	if config.PDF.PdftoppmPath == "" {
		config.PDF.PdftoppmPath = "pdftoppm"
	}
	if config.PDF.DPI <= 0 {
		config.PDF.DPI = 200
	}
	if config.PDF.MaxUploadMB <= 0 {
		config.PDF.MaxUploadMB = 50
	}
	if config.PDF.PreviewLength <= 0 {
		config.PDF.PreviewLength = 1000
	}
	if len(config.PDF.OCRLanguages) == 0 {
		config.PDF.OCRLanguages = []string{"rus", "eng"}
	}

	if config.Sandbox.JailPath == "" {
		config.Sandbox.JailPath = "/usr/local/bin/popplerjail"
	}

	if config.Inference.ChatURL == "" {
		config.Inference.ChatURL = "https://router.huggingface.co/v1/chat/completions"
	}
	if config.Inference.ModelsURL == "" {
		config.Inference.ModelsURL = "https://api-inference.huggingface.co/models"
	}
	if config.Inference.RequestsPerSec <= 0 {
		config.Inference.RequestsPerSec = 2
	}
	if config.Inference.Burst <= 0 {
		config.Inference.Burst = 4
	}
	if config.Inference.Timeout <= 0 {
		config.Inference.Timeout = 90
	}

	if config.Analysis.LLMModelID == 0 {
		config.Analysis.LLMModelID = 1
	}
	if config.Analysis.VLMModelID == 0 {
		config.Analysis.VLMModelID = 1
	}
	if config.Analysis.MaxTokens <= 0 {
		config.Analysis.MaxTokens = 2000
	}
	if config.Analysis.SlidesPerBlock <= 0 {
		config.Analysis.SlidesPerBlock = 5
	}
	if config.Analysis.CaptionWorkers <= 0 {
		config.Analysis.CaptionWorkers = 2
	}
	if config.Analysis.CaptionMaxWidth <= 0 {
		config.Analysis.CaptionMaxWidth = 1024
	}

	if config.Redis.TTL <= 0 {
		config.Redis.TTL = 86400
	}

	if config.Janitor.Schedule == "" {
		config.Janitor.Schedule = "@every 10m"
	}
	if config.Janitor.MaxAge <= 0 {
		config.Janitor.MaxAge = 3600
	}
}

// avoid global modification, use value copy instead
func GetSlideLensGlobalConfigurations() types.SlideLensGlobalConfigurations {
	return slideLensGlobalConfigurations
}

// SetSlideLensGlobalConfigurations replaces the active configuration, defaults are filled in.
func SetSlideLensGlobalConfigurations(config types.SlideLensGlobalConfigurations) {
	applyDefaults(&config)
	slideLensGlobalConfigurations = config
}
