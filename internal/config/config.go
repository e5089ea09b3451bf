package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageDriverS3    = "s3"
	StorageDriverLocal = "local"

	RecordStoreMongo    = "mongo"
	RecordStorePostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Gemini   GeminiConfig
	Storage  StorageConfig
	AWS      AWSConfig
	Records  RecordStoreConfig
	Mongo    MongoConfig
	Database DatabaseConfig

	// EnvFileLoaded reports whether a .env file was found and applied.
	EnvFileLoaded bool
}

type ServerConfig struct {
	Port string
	Env  string
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type StorageConfig struct {
	Driver        string
	UploadPath    string
	PublicBaseURL string
	MaxFileSize   int64
}

type AWSConfig struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
}

type RecordStoreConfig struct {
	Driver string
}

type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV_FILE", ".env")
	v.SetDefault("PORT", "5000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_JSON", false)
	v.SetDefault("LOG_DEBUG", false)
	v.SetDefault("GEMINI_MODEL", "gemini-flash-latest")
	v.SetDefault("STORAGE_DRIVER", StorageDriverS3)
	v.SetDefault("UPLOAD_PATH", "./uploads")
	v.SetDefault("MAX_FILE_SIZE", 10485760)
	v.SetDefault("RECORD_STORE", RecordStoreMongo)
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "resume_db")
	v.SetDefault("MONGO_COLLECTION", "analyses")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "resume_ats")
}

// Load reads the optional .env file into the process environment and then
// resolves every setting through v (flags bound by the caller win over env).
func Load(v *viper.Viper) *Config {
	if v == nil {
		v = viper.New()
	}
	setDefaults(v)
	v.AutomaticEnv()

	loaded := godotenv.Load(v.GetString("ENV_FILE")) == nil

	port := v.GetString("PORT")

	apiKey := v.GetString("GOOGLE_API_KEY")
	if apiKey == "" {
		apiKey = v.GetString("GEMINI_API_KEY")
	}

	publicBaseURL := v.GetString("PUBLIC_BASE_URL")
	if publicBaseURL == "" {
		publicBaseURL = fmt.Sprintf("http://localhost:%s", port)
	}

	return &Config{
		Server: ServerConfig{
			Port: port,
			Env:  v.GetString("ENV"),
		},
		Log: LogConfig{
			JSON:  v.GetBool("LOG_JSON"),
			Debug: v.GetBool("LOG_DEBUG"),
		},
		Gemini: GeminiConfig{
			APIKey: apiKey,
			Model:  v.GetString("GEMINI_MODEL"),
		},
		Storage: StorageConfig{
			Driver:        strings.ToLower(v.GetString("STORAGE_DRIVER")),
			UploadPath:    v.GetString("UPLOAD_PATH"),
			PublicBaseURL: strings.TrimRight(publicBaseURL, "/"),
			MaxFileSize:   v.GetInt64("MAX_FILE_SIZE"),
		},
		AWS: AWSConfig{
			AccessKeyID:     v.GetString("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
			Region:          v.GetString("AWS_REGION"),
			Bucket:          v.GetString("AWS_BUCKET_NAME"),
		},
		Records: RecordStoreConfig{
			Driver: strings.ToLower(v.GetString("RECORD_STORE")),
		},
		Mongo: MongoConfig{
			URI:        v.GetString("MONGO_URI"),
			Database:   v.GetString("MONGO_DATABASE"),
			Collection: v.GetString("MONGO_COLLECTION"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
		},
		EnvFileLoaded: loaded,
	}
}

// IsDevelopment reports whether the service runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

// Validate checks the settings the selected drivers cannot run without.
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GOOGLE_API_KEY is required")
	}

	switch c.Storage.Driver {
	case StorageDriverS3:
		if c.AWS.Bucket == "" {
			return fmt.Errorf("AWS_BUCKET_NAME is required for the s3 storage driver")
		}
		if c.AWS.Region == "" {
			return fmt.Errorf("AWS_REGION is required for the s3 storage driver")
		}
	case StorageDriverLocal:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	switch c.Records.Driver {
	case RecordStoreMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI is required for the mongo record store")
		}
	case RecordStorePostgres:
	default:
		return fmt.Errorf("unknown RECORD_STORE %q", c.Records.Driver)
	}

	return nil
}
