package tui

import (
	"time"

	"github.com/Semior001/newsdesk/app/detail"
	"github.com/Semior001/newsdesk/app/feed"
	"github.com/Semior001/newsdesk/app/revisor"
)

// feedLoaded is sent when a headlines request finishes.
type feedLoaded struct {
	Result feed.Result
}

// shared is sent when a share or copy action finishes.
type shared struct {
	Outcome detail.Outcome
	Err     error
}

// noticeExpired is sent when a transient notice may be hidden.
// Until identifies the notice, a newer one is kept.
type noticeExpired struct {
	Until time.Time
}

// expanded is sent when the full text of the article is ready.
type expanded struct {
	URL       string
	Expansion revisor.Expansion
	Err       error
}
