// Package bot runs the Telegram side of marquee: it long polls for updates,
// dispatches each one to the interaction flow on its own goroutine, and
// renders the resulting view models back into Bot API calls.
//
// A flock-guarded lock file keeps a second instance from polling the same
// bot token, which would split updates between processes.
package bot
