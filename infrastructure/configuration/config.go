package configuration

import (
	"fmt"
	"os"
	"strconv"

	"ember-scriptorium/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	Database    Database    `json:"database"`
	OpenAI      OpenAI      `json:"openai"`
	RedisClient RedisClient `json:"redisClient"`
}

type App struct {
	Port      int    `json:"port"`
	SecretKey string `json:"secretKey"`
	// EncryptionKey is the passphrase the settings cipher derives its key
	// from. Without it, credential storage is unavailable.
	EncryptionKey string `json:"encryptionKey"`
}

type Database struct {
	Mongo Db `json:"mongo"`
}

type Db struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

type OpenAI struct {
	BaseURL    string `json:"baseURL"`
	ImageModel string `json:"imageModel"`
	ChatModel  string `json:"chatModel"`
}

type RedisClient struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

var C Config

func init() {
	LoadConfig()
	initDatabase(&C)
	initApp(&C)
	initOpenAI(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initDatabase(C *Config) {
	if C.Database.Mongo.Name == "" {
		C.Database.Mongo.Name = os.Getenv("DB_NAME")
	}
	if C.Database.Mongo.Name == "" {
		C.Database.Mongo.Name = "ember_scriptorium"
	}
	if C.Database.Mongo.Host == "" {
		C.Database.Mongo.Host = os.Getenv("MONGO_HOST")
	}
	if C.Database.Mongo.Host == "" {
		C.Database.Mongo.Host = "localhost"
	}
	if C.Database.Mongo.Port == "" {
		C.Database.Mongo.Port = os.Getenv("MONGO_PORT")
	}
	if C.Database.Mongo.Port == "" {
		C.Database.Mongo.Port = "27017"
	}
	if C.Database.Mongo.User == "" {
		C.Database.Mongo.User = os.Getenv("MONGO_USER")
	}
	if C.Database.Mongo.Password == "" {
		C.Database.Mongo.Password = os.Getenv("MONGO_PASSWORD")
	}
}

func initApp(C *Config) {
	// SECRET_KEY from environment overrides the config file when provided.
	if v := os.Getenv("SECRET_KEY"); v != "" {
		C.App.SecretKey = v
	}
	if v := os.Getenv("ENCRYPTION_KEY"); v != "" {
		C.App.EncryptionKey = v
	}
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 10001
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 10001
	}
	if C.App.SecretKey == "" {
		logger.GetLogger().Warn("App.SecretKey not set; /api routes will be served without authentication")
	}
	if C.App.EncryptionKey == "" {
		logger.GetLogger().Warn("App.EncryptionKey not set; settings storage will be unavailable. Provide ENCRYPTION_KEY via environment.")
	}
}

func initOpenAI(C *Config) {
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		C.OpenAI.BaseURL = v
	}
	if C.OpenAI.BaseURL == "" {
		C.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if C.OpenAI.ImageModel == "" {
		C.OpenAI.ImageModel = "dall-e-3"
	}
	if C.OpenAI.ChatModel == "" {
		C.OpenAI.ChatModel = "gpt-4"
	}
}
