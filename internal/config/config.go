package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config 聚合整个服务的配置项，启动时构建一次后注入各构造函数。
type Config struct {
	Server  ServerConfig
	AI      AIConfig
	Session SessionConfig
	Chat    ChatConfig
	Log     LogConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	session, err := loadSessionConfig()
	if err != nil {
		return nil, err
	}

	chat, err := loadChatConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:  server,
		AI:      ai,
		Session: session,
		Chat:    chat,
		Log:     loadLogConfig(),
	}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	var addr string
	switch {
	case strings.Contains(port, ":"):
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		addr = port
	case strings.Contains(port, " "):
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	default:
		addr = ":" + port
	}

	return ServerConfig{
		Addr:           addr,
		AllowedOrigins: parseListEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}, nil
}

// Provider 表示大模型服务提供方。
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderArk    Provider = "ark"
)

// AIConfig 描述大模型相关配置，包括主模型与备用模型。
type AIConfig struct {
	Provider      Provider
	PrimaryModel  string
	FallbackModel string

	// Gemini
	GeminiAPIKey string

	// Ark
	APIKey      string
	AccessKey   string
	SecretKey   string
	BaseURL     string
	Region      string
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
}

// Enabled 表示当前提供方是否提供了必需的密钥。
func (c AIConfig) Enabled() bool {
	if c.PrimaryModel == "" {
		return false
	}
	switch c.Provider {
	case ProviderGemini:
		return c.GeminiAPIKey != ""
	case ProviderArk:
		return c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != "")
	default:
		return false
	}
}

// NewChatModel 使用配置创建一个绑定到 modelName 的 Ark 模型实例。
func (c AIConfig) NewChatModel(ctx context.Context, modelName string) (model.ChatModel, error) {
	if c.APIKey == "" && (c.AccessKey == "" || c.SecretKey == "") {
		return nil, fmt.Errorf("ark credentials missing: set ARK_API_KEY or ARK_ACCESS_KEY + ARK_SECRET_KEY")
	}
	if modelName == "" {
		return nil, fmt.Errorf("ark model name is required")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       modelName,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	provider := Provider(strings.ToLower(getEnvOrDefault("LLM_PROVIDER", string(ProviderGemini))))
	if provider != ProviderGemini && provider != ProviderArk {
		return AIConfig{}, fmt.Errorf("invalid LLM_PROVIDER value %q", provider)
	}

	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("ARK_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	primaryDefault, fallbackDefault := "gemini-2.5-flash", "gemini-2.5-flash-lite"
	if provider == ProviderArk {
		// Ark 的接入点与部署相关，不提供默认模型。
		primaryDefault, fallbackDefault = "", ""
	}

	primary := getEnvOrDefault("LLM_PRIMARY_MODEL", primaryDefault)

	return AIConfig{
		Provider:      provider,
		PrimaryModel:  primary,
		FallbackModel: getEnvOrDefault("LLM_FALLBACK_MODEL", firstNonEmpty(fallbackDefault, primary)),
		GeminiAPIKey:  strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		APIKey:        strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:     strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:     strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		BaseURL:       getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:        getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature:   temperature,
		TopP:          topP,
		MaxTokens:     maxTokens,
	}, nil
}

// SessionBackend 表示会话存储实现。
type SessionBackend string

const (
	SessionMemory SessionBackend = "memory"
	SessionRedis  SessionBackend = "redis"
)

// SessionConfig 描述会话 Cookie 及其存储。
type SessionConfig struct {
	Backend      SessionBackend
	RedisURL     string
	CookieName   string
	TTL          time.Duration
	CookieSecure bool
}

func loadSessionConfig() (SessionConfig, error) {
	backend := SessionBackend(strings.ToLower(getEnvOrDefault("SESSION_BACKEND", string(SessionMemory))))
	if backend != SessionMemory && backend != SessionRedis {
		return SessionConfig{}, fmt.Errorf("invalid SESSION_BACKEND value %q", backend)
	}

	redisURL := strings.TrimSpace(os.Getenv("REDIS_URL"))
	if backend == SessionRedis && redisURL == "" {
		return SessionConfig{}, fmt.Errorf("REDIS_URL is required when SESSION_BACKEND=redis")
	}

	// 默认空闲两周后过期。
	ttl := 14 * 24 * time.Hour
	if raw := strings.TrimSpace(os.Getenv("SESSION_TTL")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return SessionConfig{}, fmt.Errorf("invalid SESSION_TTL value %q: %w", raw, err)
		}
		if d <= 0 {
			return SessionConfig{}, fmt.Errorf("invalid SESSION_TTL value %q: must be positive", raw)
		}
		ttl = d
	}

	secure, err := parseBoolEnv("SESSION_COOKIE_SECURE", false)
	if err != nil {
		return SessionConfig{}, err
	}

	return SessionConfig{
		Backend:      backend,
		RedisURL:     redisURL,
		CookieName:   getEnvOrDefault("SESSION_COOKIE_NAME", "sessionid"),
		TTL:          ttl,
		CookieSecure: secure,
	}, nil
}

// ChatConfig 控制对话流程。
type ChatConfig struct {
	PersonaID     string
	PersonaFile   string
	IntentEnabled bool
}

func loadChatConfig() (ChatConfig, error) {
	intentEnabled, err := parseBoolEnv("CHAT_INTENT_ENABLED", true)
	if err != nil {
		return ChatConfig{}, err
	}

	return ChatConfig{
		PersonaID:     strings.TrimSpace(os.Getenv("PERSONA_ID")),
		PersonaFile:   strings.TrimSpace(os.Getenv("PERSONA_FILE")),
		IntentEnabled: intentEnabled,
	}, nil
}

// LogConfig 选择日志输出。
type LogConfig struct {
	FilePath   string
	Production bool
}

func loadLogConfig() LogConfig {
	return LogConfig{
		FilePath:   strings.TrimSpace(os.Getenv("LOG_FILE")),
		Production: strings.EqualFold(strings.TrimSpace(os.Getenv("APP_ENV")), "production"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func parseListEnv(key string, defaultValue []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}

	var items []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
