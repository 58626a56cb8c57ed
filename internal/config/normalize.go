package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeTelegram(); err != nil {
		return err
	}
	if err := c.normalizeTMDB(); err != nil {
		return err
	}
	if err := c.normalizeStorage(); err != nil {
		return err
	}
	c.normalizePoll()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeTelegram() error {
	c.Telegram.BotToken = strings.TrimSpace(c.Telegram.BotToken)
	if c.Telegram.BotToken == "" {
		if value, ok := os.LookupEnv("TELEGRAM_BOT_TOKEN"); ok {
			c.Telegram.BotToken = strings.TrimSpace(value)
		}
	}
	if c.Telegram.PollTimeoutSeconds <= 0 {
		c.Telegram.PollTimeoutSeconds = defaultPollTimeoutSeconds
	}
	return nil
}

func (c *Config) normalizeTMDB() error {
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	if c.TMDB.APIKey == "" {
		if value, ok := os.LookupEnv("TMDB_API_KEY"); ok {
			c.TMDB.APIKey = strings.TrimSpace(value)
		}
	}
	c.TMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.BaseURL), "/")
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
	if c.TMDB.Language == "" {
		c.TMDB.Language = defaultTMDBLanguage
	}
	c.TMDB.ImageBaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.ImageBaseURL), "/")
	if c.TMDB.ImageBaseURL == "" {
		c.TMDB.ImageBaseURL = defaultImageBaseURL
	}
	c.TMDB.PosterSize = strings.TrimSpace(c.TMDB.PosterSize)
	if c.TMDB.PosterSize == "" {
		c.TMDB.PosterSize = defaultPosterSize
	}
	return nil
}

func (c *Config) normalizeStorage() error {
	c.Storage.StatePath = strings.TrimSpace(c.Storage.StatePath)
	if value, ok := os.LookupEnv("MARQUEE_STATE_PATH"); ok && strings.TrimSpace(value) != "" {
		c.Storage.StatePath = strings.TrimSpace(value)
	}
	if c.Storage.StatePath == "" {
		c.Storage.StatePath = defaultStatePath
	}
	var err error
	if c.Storage.StatePath, err = expandPath(c.Storage.StatePath); err != nil {
		return fmt.Errorf("storage.state_path: %w", err)
	}
	return nil
}

func (c *Config) normalizePoll() {
	c.Poll.Question = strings.TrimSpace(c.Poll.Question)
	if c.Poll.Question == "" {
		c.Poll.Question = defaultPollQuestion
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.LogDir = strings.TrimSpace(c.Logging.LogDir)
	if c.Logging.LogDir != "" {
		if expanded, err := expandPath(c.Logging.LogDir); err == nil {
			c.Logging.LogDir = expanded
		}
	}
}
