package flow

import (
	"strconv"
	"strings"

	"marquee/internal/catalog"
)

// Action tags the intent encoded in a callback token.
type Action string

const (
	ActionAdd    Action = "add"
	ActionDelete Action = "del"
	ActionShow   Action = "show"
)

// FormatToken renders an action:id callback token.
func FormatToken(action Action, id int64) string {
	return string(action) + ":" + strconv.FormatInt(id, 10)
}

// FormatShowToken renders a show token carrying the entry kind, so detail
// lookups for series hit the right catalog endpoint.
func FormatShowToken(id int64, kind catalog.Kind) string {
	return string(ActionShow) + ":" + strconv.FormatInt(id, 10) + ":" + string(kind)
}

// ParseToken splits a callback token into its action, id, and optional kind
// segment. ok is false for tokens this bot never produced; callers answer
// those with a generic acknowledgement and move on.
func ParseToken(data string) (action Action, id int64, kind catalog.Kind, ok bool) {
	parts := strings.Split(data, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return "", 0, "", false
	}
	action = Action(parts[0])
	switch action {
	case ActionAdd, ActionDelete, ActionShow:
	default:
		return "", 0, "", false
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", 0, "", false
	}
	if len(parts) == 3 {
		switch catalog.Kind(parts[2]) {
		case catalog.KindMovie, catalog.KindSeries:
			kind = catalog.Kind(parts[2])
		default:
			return "", 0, "", false
		}
	}
	return action, id, kind, true
}
