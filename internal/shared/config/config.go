package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/reshetovitsme/channel-invite-bot/internal/modules/channel/domain"
	"github.com/reshetovitsme/channel-invite-bot/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

type Config struct {
	BotToken       string              `koanf:"bot_token"`
	BotUsername    string              `koanf:"bot_username"`
	TelegramAPIURL string              `koanf:"telegram_api_url"`
	HTTPPort       string              `koanf:"port"`
	DeliveryMode   domain.DeliveryMode `koanf:"-"`
	WebhookURL     string              `koanf:"webhook_url"`
	WebhookSecret  string              `koanf:"webhook_secret"`
	PollTimeout    int                 `koanf:"poll_timeout"`
	RetryDelay     int                 `koanf:"retry_delay"`
	RequestTimeout int                 `koanf:"request_timeout"`
	AppEnv         domain.AppEnv       `koanf:"-"`
	Channels       []domain.Channel    `koanf:"-"`
}

// Load reads an optional config file from the working directory and
// overlays environment variables on top of it.
func Load() (*Config, error) {
	k := koanf.New(".")

	configFiles := []string{
		"config.yaml",
		"config.yml",
		"config.json",
		"config.toml",
	}

	configFile, found := lo.Find(configFiles, func(file string) bool {
		_, err := os.Stat(file)
		return err == nil
	})

	if found {
		var parser koanf.Parser
		ext := filepath.Ext(configFile)

		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		case ".toml":
			parser = toml.Parser()
		default:
			return nil, oops.Errorf("unsupported config file extension: %s", ext)
		}

		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, oops.With("config_file", configFile).Wrap(err)
		}
	}

	// BOT_TOKEN -> bot_token
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}

	defaults := map[string]any{
		"telegram_api_url": "https://api.telegram.org",
		"bot_username":     "YourBotUsername",
		"port":             "8000",
		"delivery_mode":    string(domain.DeliveryModePolling),
		"poll_timeout":     30,
		"retry_delay":      5,
		"request_timeout":  10,
		"app_env":          string(domain.AppEnvProduction),
	}
	for key, value := range defaults {
		if !k.Exists(key) {
			k.Set(key, value)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.With("context", "unmarshaling config").Wrap(err)
	}

	cfg.Channels = BuildChannels(ParseList(k.Get("channel_hashes")), ParseList(k.Get("channel_names")))

	if appEnv, err := domain.ParseAppEnv(k.String("app_env")); err == nil {
		cfg.AppEnv = appEnv
	} else {
		cfg.AppEnv = domain.AppEnvProduction
	}

	mode, err := domain.ParseDeliveryMode(k.String("delivery_mode"))
	if err != nil {
		return nil, oops.With("delivery_mode", k.String("delivery_mode")).Wrap(err)
	}
	cfg.DeliveryMode = mode

	if cfg.BotToken == "" {
		return nil, errors.ErrMissingBotToken
	}

	if cfg.DeliveryMode == domain.DeliveryModeWebhook {
		if cfg.WebhookURL == "" {
			return nil, errors.ErrMissingWebhookURL
		}
		cfg.WebhookURL = strings.TrimSuffix(cfg.WebhookURL, "/")
		if cfg.WebhookSecret == "" {
			cfg.WebhookSecret = uuid.NewString()
		}
	}

	return &cfg, nil
}

// ParseList accepts either a comma-separated string (env) or a list (config file).
// Entries are trimmed; positions are preserved, so blanks stay as empty strings.
func ParseList(v any) []string {
	switch list := v.(type) {
	case string:
		if strings.TrimSpace(list) == "" {
			return []string{}
		}
		return lo.Map(strings.Split(list, ","), func(part string, _ int) string {
			return strings.TrimSpace(part)
		})
	case []string:
		return lo.Map(list, func(part string, _ int) string {
			return strings.TrimSpace(part)
		})
	case []interface{}:
		return lo.Map(list, func(item interface{}, _ int) string {
			s, _ := item.(string)
			return strings.TrimSpace(s)
		})
	default:
		return []string{}
	}
}

// BuildChannels pairs invite hashes with display names by their position in
// the configured lists, then drops blank hashes and renumbers what is left.
// Missing names fall back to "Channel N".
func BuildChannels(hashes, names []string) []domain.Channel {
	type entry struct{ hash, name string }

	entries := lo.FilterMap(hashes, func(hash string, i int) (entry, bool) {
		hash = strings.TrimPrefix(strings.TrimSpace(hash), "+")
		name := ""
		if i < len(names) {
			name = strings.TrimSpace(names[i])
		}
		return entry{hash: hash, name: name}, hash != ""
	})

	return lo.Map(entries, func(e entry, i int) domain.Channel {
		position := i + 1
		name := e.name
		if name == "" {
			name = domain.DefaultName(position)
		}
		return domain.Channel{
			Position: position,
			Hash:     e.hash,
			Name:     name,
		}
	})
}

func (c *Config) PollTimeoutDuration() time.Duration {
	return time.Duration(c.PollTimeout) * time.Second
}

func (c *Config) RetryDelayDuration() time.Duration {
	return time.Duration(c.RetryDelay) * time.Second
}

func (c *Config) RequestTimeoutDuration() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}
