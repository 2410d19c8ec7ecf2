// Package config loads server configuration from an optional YAML file
// and WORKMATE_* environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultVendorURL is the chat completion endpoint the assistant talks to.
const DefaultVendorURL = "https://api.deepseek.com/v1/chat/completions"

// Config defines the full application configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Log    LogConfig    `yaml:"log"`
	Chat   ChatConfig   `yaml:"chat"`
	Relay  RelayConfig  `yaml:"relay"`
	MCP    MCPConfig    `yaml:"mcp"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type StoreConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type ChatConfig struct {
	VendorURL   string  `yaml:"vendor_url"`
	RelayURL    string  `yaml:"relay_url"`
	Model       string  `yaml:"model"`
	PromptPath  string  `yaml:"prompt_path"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

type RelayConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	Upstream       string   `yaml:"upstream"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type MCPConfig struct {
	// Mode is "http" or "stdio".
	Mode string `yaml:"mode"`
}

// Load reads configuration: defaults, then the YAML file named by
// WORKMATE_CONFIG_PATH if set, then individual env overrides.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080},
		Store:  StoreConfig{Path: "workmate.db"},
		Log:    LogConfig{Level: "info"},
		Chat: ChatConfig{
			VendorURL:   DefaultVendorURL,
			RelayURL:    "http://localhost:8787/proxy",
			Model:       "deepseek-chat",
			PromptPath:  "prompts/assistant_prompt.txt",
			Temperature: 0.7,
			MaxTokens:   1000,
		},
		Relay: RelayConfig{
			Host:           "0.0.0.0",
			Port:           8787,
			Upstream:       DefaultVendorURL,
			AllowedOrigins: []string{"http://localhost:8000"},
		},
		MCP: MCPConfig{Mode: "http"},
	}

	if path := os.Getenv("WORKMATE_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("WORKMATE_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("WORKMATE_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid WORKMATE_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if path := os.Getenv("WORKMATE_STORE_PATH"); path != "" {
		cfg.Store.Path = path
	}
	if level := os.Getenv("WORKMATE_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if url := os.Getenv("WORKMATE_CHAT_VENDOR_URL"); url != "" {
		cfg.Chat.VendorURL = url
	}
	if url := os.Getenv("WORKMATE_CHAT_RELAY_URL"); url != "" {
		cfg.Chat.RelayURL = url
	}
	if model := os.Getenv("WORKMATE_CHAT_MODEL"); model != "" {
		cfg.Chat.Model = model
	}
	if path := os.Getenv("WORKMATE_CHAT_PROMPT_PATH"); path != "" {
		cfg.Chat.PromptPath = path
	}
	if portStr := os.Getenv("WORKMATE_RELAY_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid WORKMATE_RELAY_PORT: %w", err)
		}
		cfg.Relay.Port = port
	}
	if upstream := os.Getenv("WORKMATE_RELAY_UPSTREAM"); upstream != "" {
		cfg.Relay.Upstream = upstream
	}
	if origins := os.Getenv("WORKMATE_RELAY_ORIGINS"); origins != "" {
		cfg.Relay.AllowedOrigins = splitAndTrim(origins)
	}
	if mode := os.Getenv("WORKMATE_MCP_MODE"); mode != "" {
		cfg.MCP.Mode = mode
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
