package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Addr          string        `yaml:"addr"`
	AllowedOrigin string        `yaml:"allowed_origin"`
	SchemaPath    string        `yaml:"schema_path"`
	JwtTTL        time.Duration `yaml:"jwt_ttl"`
	Redis         Redis         `yaml:"redis"`
	RateLimits    RateLimits    `yaml:"rate_limits"`
	Captcha       Captcha       `yaml:"captcha"`
	Log           Log           `yaml:"log"`
}

type Private struct {
	Pg            Pg     `yaml:"pg"`
	JwtKey        string `yaml:"jwt_key"`
	CaptchaSecret string `yaml:"captcha_secret"`
	Email         Email  `yaml:"email"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Redis struct {
	Addr string `yaml:"addr"` // empty means in-memory rate limit store
	Db   int    `yaml:"db"`
}

// RateLimitPolicy is a fixed-window budget: MaxAttempts per WindowSeconds.
type RateLimitPolicy struct {
	MaxAttempts   int `yaml:"max_attempts"`
	WindowSeconds int `yaml:"window_seconds"`
}

func (p RateLimitPolicy) Window() time.Duration {
	return time.Duration(p.WindowSeconds) * time.Second
}

type RateLimits struct {
	CommentAdd  RateLimitPolicy `yaml:"comment_add"`
	ContactForm RateLimitPolicy `yaml:"contact_form"`
	UserSignup  RateLimitPolicy `yaml:"user_signup"`
	BlogSearch  RateLimitPolicy `yaml:"blog_search"`
}

type Captcha struct {
	ScoreThreshold float64 `yaml:"score_threshold"`
	Testing        bool    `yaml:"testing"` // bypass verification, for tests/local dev
}

type Log struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

type Email struct {
	SMTPServer string `yaml:"smtp_server"`
	SMTPPort   int    `yaml:"smtp_port"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	From       string `yaml:"from"`
	AdminEmail string `yaml:"admin_email"`
	Timeout    int    `yaml:"timeout"` // seconds
}

func (s *Config) JwtKey() string {
	return s.Private.JwtKey
}

func (s *Config) JwtTTL() time.Duration {
	return s.Public.JwtTTL
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)

	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	return &Config{public, private}
}
