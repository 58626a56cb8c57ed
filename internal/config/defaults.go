package config

const (
	defaultPollTimeoutSeconds = 30
	defaultTMDBBaseURL        = "https://api.themoviedb.org/3"
	defaultTMDBLanguage       = "en-US"
	defaultImageBaseURL       = "https://image.tmdb.org/t/p"
	defaultPosterSize         = "w500"
	defaultStatePath          = "~/.local/share/marquee/state.json"
	defaultPollQuestion       = "What are we watching?"
	defaultPollAnonymous      = false
	defaultPollMultiple       = true
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Telegram: Telegram{
			PollTimeoutSeconds: defaultPollTimeoutSeconds,
		},
		TMDB: TMDB{
			BaseURL:      defaultTMDBBaseURL,
			Language:     defaultTMDBLanguage,
			ImageBaseURL: defaultImageBaseURL,
			PosterSize:   defaultPosterSize,
		},
		Storage: Storage{
			StatePath: defaultStatePath,
		},
		Poll: Poll{
			Question:        defaultPollQuestion,
			Anonymous:       defaultPollAnonymous,
			MultipleAnswers: defaultPollMultiple,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
