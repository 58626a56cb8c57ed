package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"marquee/internal/flow"
	"marquee/internal/logging"
	"marquee/internal/telegram"
)

// pollRetryDelay paces the loop after a failed getUpdates call.
const pollRetryDelay = 3 * time.Second

// Transport is the slice of the Telegram client the bot uses. Tests
// substitute a scripted fake.
type Transport interface {
	GetMe(ctx context.Context) (telegram.User, error)
	GetUpdates(ctx context.Context, offset int64, timeoutSeconds int) ([]telegram.Update, error)
	SendMessage(ctx context.Context, msg telegram.OutgoingMessage) (telegram.Message, error)
	SendPoll(ctx context.Context, poll telegram.OutgoingPoll) (telegram.Message, error)
	SendPhoto(ctx context.Context, chatID int64, caption, parseMode string, photo telegram.Photo) (telegram.Message, error)
	SendMediaGroup(ctx context.Context, chatID int64, caption, parseMode string, photos []telegram.Photo) error
	AnswerCallbackQuery(ctx context.Context, queryID, text string) error
}

// Posters resolves and fetches poster images.
type Posters interface {
	ImageURL(path string) string
	FetchImage(ctx context.Context, imageURL string) ([]byte, error)
}

// Options collects the bot's dependencies.
type Options struct {
	Transport          Transport
	Flow               *flow.Flow
	Posters            Posters
	LockPath           string
	PollTimeoutSeconds int
	Logger             *slog.Logger
}

// Bot owns the update loop.
type Bot struct {
	transport   Transport
	flow        *flow.Flow
	posters     Posters
	logger      *slog.Logger
	lockPath    string
	lock        *flock.Flock
	pollTimeout int
	username    string

	wg sync.WaitGroup
}

func New(opts Options) (*Bot, error) {
	if opts.Transport == nil || opts.Flow == nil || opts.Posters == nil {
		return nil, errors.New("bot requires transport, flow, and posters")
	}
	if opts.LockPath == "" {
		return nil, errors.New("bot requires a lock path")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	pollTimeout := opts.PollTimeoutSeconds
	if pollTimeout <= 0 {
		pollTimeout = 25
	}
	return &Bot{
		transport:   opts.Transport,
		flow:        opts.Flow,
		posters:     opts.Posters,
		logger:      logging.NewComponentLogger(logger, "bot"),
		lockPath:    opts.LockPath,
		lock:        flock.New(opts.LockPath),
		pollTimeout: pollTimeout,
	}, nil
}

// Run polls for updates until ctx is cancelled. It returns an error when the
// instance lock is held elsewhere or the bot token is rejected; poll failures
// are logged and retried.
func (b *Bot) Run(ctx context.Context) error {
	ok, err := b.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire instance lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another marquee instance is already polling (lock %s)", b.lockPath)
	}
	defer func() {
		if err := b.lock.Unlock(); err != nil {
			b.logger.Warn("failed to release instance lock", logging.Error(err))
		}
	}()

	me, err := b.transport.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("validate bot token: %w", err)
	}
	b.username = me.Username
	b.logger.Info("bot started",
		logging.String("username", me.Username),
		logging.String("lock", b.lockPath))

	var offset int64
	for ctx.Err() == nil {
		updates, err := b.transport.GetUpdates(ctx, offset, b.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			b.logger.Warn("update poll failed", logging.Error(err))
			if !sleepContext(ctx, pollRetryDelay) {
				break
			}
			continue
		}
		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			b.wg.Add(1)
			go func(update telegram.Update) {
				defer b.wg.Done()
				b.handleUpdate(ctx, update)
			}(update)
		}
	}

	b.wg.Wait()
	b.logger.Info("bot stopped")
	return ctx.Err()
}

func (b *Bot) handleUpdate(ctx context.Context, update telegram.Update) {
	ctx = logging.WithCorrelationID(ctx, uuid.NewString())
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, *update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, *update.Message)
	}
}

func sleepContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
