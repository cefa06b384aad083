package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel     string     `yaml:"log-level" env-default:"info"`
	LogFormat    string     `yaml:"log-format" env-default:"json"`
	HTTPPort     string     `yaml:"http-port" env-default:"50020"`
	SessionStore string     `yaml:"session-store" env-default:"memory"`
	Redis        Redis      `yaml:"redis"`
	EventPlane   EventPlane `yaml:"event-plane"`
	Gaming       Gaming     `yaml:"gaming"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

type EventPlane struct {
	Enabled    bool   `yaml:"enabled" env-default:"true"`
	Domain     string `yaml:"domain" env-default:"tictactoe"`
	BrokerHost string `yaml:"broker-host" env-default:"test.mosquitto.org"`
	BrokerPort int    `yaml:"broker-port" env-default:"1883"`
	ClientID   string `yaml:"client-id" env-default:"tictactoe-service"`
}

type Gaming struct {
	CleanupInterval    time.Duration `yaml:"cleanup-interval" env-default:"30m"`
	GameTTL            time.Duration `yaml:"game-ttl" env-default:"1h"`
	BotDeliberationMin time.Duration `yaml:"bot-deliberation-min" env-default:"1s"`
	BotDeliberationMax time.Duration `yaml:"bot-deliberation-max" env-default:"3s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
