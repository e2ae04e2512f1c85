package types

type SlideLensGlobalConfigurations struct {
	App struct {
		Host  string `yaml:"host"`
		Port  int    `yaml:"port"`
		Debug bool   `yaml:"debug"`
		Key   string `yaml:"key"`
	} `yaml:"app"`
	MaxWorkers    int    `yaml:"max_workers"`
	MaxRequests   int    `yaml:"max_requests"`
	WorkerTimeout int    `yaml:"worker_timeout"`
	TempDir       string `yaml:"temp_dir"`

	Log struct {
		Path       string `yaml:"path"`
		Level      string `yaml:"level"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
		Stdout     *bool  `yaml:"stdout"`
	} `yaml:"log"`

	PDF struct {
		Engine        string   `yaml:"engine"`
		PdftotextPath string   `yaml:"pdftotext_path"`
		PdfinfoPath   string   `yaml:"pdfinfo_path"`
		PdftoppmPath  string   `yaml:"pdftoppm_path"`
		DPI           int      `yaml:"dpi"`
		MaxUploadMB   int      `yaml:"max_upload_mb"`
		PreviewLength int      `yaml:"preview_length"`
		OCR           bool     `yaml:"ocr"`
		OCRLanguages  []string `yaml:"ocr_languages"`
	} `yaml:"pdf"`

	Sandbox struct {
		Enabled  bool   `yaml:"enabled"`
		JailPath string `yaml:"jail_path"`
	} `yaml:"sandbox"`

	Inference struct {
		Token          string  `yaml:"token"`
		ChatURL        string  `yaml:"chat_url"`
		ModelsURL      string  `yaml:"models_url"`
		RequestsPerSec float64 `yaml:"requests_per_sec"`
		Burst          int     `yaml:"burst"`
		Timeout        int     `yaml:"timeout"`
	} `yaml:"inference"`

	Analysis struct {
		LLMModelID      int     `yaml:"llm_model_id"`
		VLMModelID      int     `yaml:"vlm_model_id"`
		MaxTokens       int     `yaml:"max_tokens"`
		Temperature     float64 `yaml:"temperature"`
		SlidesPerBlock  int     `yaml:"slides_per_block"`
		CaptionWorkers  int     `yaml:"caption_workers"`
		CaptionMaxWidth int     `yaml:"caption_max_width"`
	} `yaml:"analysis"`

	Qdrant struct {
		URL    string `yaml:"url"`
		APIKey string `yaml:"api_key"`
	} `yaml:"qdrant"`

	Database struct {
		DSN string `yaml:"dsn"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      int    `yaml:"ttl"`
	} `yaml:"redis"`

	Tracing struct {
		Exporter string `yaml:"exporter"`
		Endpoint string `yaml:"endpoint"`
		Insecure bool   `yaml:"insecure"`
	} `yaml:"tracing"`

	Janitor struct {
		Schedule string `yaml:"schedule"`
		MaxAge   int    `yaml:"max_age"`
	} `yaml:"janitor"`
}
