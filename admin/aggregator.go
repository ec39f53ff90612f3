// Package admin computes the administrative dashboard views over the
// account directory and the activity log. It never mutates either.
package admin

import (
	"sort"
	"time"

	"github.com/jrsteele09/stitch-smart/activity"
	"github.com/jrsteele09/stitch-smart/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	// UnknownUser is shown for log entries whose account is not in the directory
	UnknownUser = "Unknown User"
	// DefaultActiveWindow is how recent a last login must be to count as active
	DefaultActiveWindow = 24 * time.Hour
)

// Stats are the dashboard headline counts
type Stats struct {
	TotalUsers      int `json:"totalUsers"`
	ActiveUsers     int `json:"activeUsers"`
	TotalActivities int `json:"totalActivities"`
	TodayActivities int `json:"todayActivities"`
}

// FeedItem is a log entry joined to its account
type FeedItem struct {
	activity.Entry
	UserName    string `json:"userName"`
	UserInitial string `json:"userInitial"`
	KnownUser   bool   `json:"knownUser"`
}

type ActionCount struct {
	Action string `json:"action"`
	Count  int    `json:"count"`
}

// Growth counts accounts registered per calendar month
type Growth struct {
	ThisMonth     int `json:"thisMonth"`
	PreviousMonth int `json:"previousMonth"`
}

// UserRow is a directory entry with its activity count
type UserRow struct {
	users.User
	Activities int `json:"activities"`
}

// Aggregator reads the directory and log. Every call recomputes from the
// current contents since active and today counts depend on the clock.
type Aggregator struct {
	users        users.Reader
	log          activity.Reader
	nowTime      func() time.Time // injectable for testing
	location     *time.Location
	activeWindow time.Duration
}

type AggregatorOption func(*Aggregator)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) AggregatorOption {
	return func(a *Aggregator) {
		a.nowTime = nowFunc
	}
}

// WithLocation sets the zone used to decide calendar days and months
func WithLocation(loc *time.Location) AggregatorOption {
	return func(a *Aggregator) {
		if loc != nil {
			a.location = loc
		}
	}
}

func WithActiveWindow(window time.Duration) AggregatorOption {
	return func(a *Aggregator) {
		if window > 0 {
			a.activeWindow = window
		}
	}
}

func NewAggregator(directory users.Reader, activityLog activity.Reader, options ...AggregatorOption) (*Aggregator, error) {
	if directory == nil {
		return nil, errors.New("[NewAggregator] user directory is required")
	}
	if activityLog == nil {
		return nil, errors.New("[NewAggregator] activity log is required")
	}
	a := &Aggregator{
		users:        directory,
		log:          activityLog,
		nowTime:      time.Now,
		location:     time.Local,
		activeWindow: DefaultActiveWindow,
	}
	for _, opt := range options {
		opt(a)
	}
	return a, nil
}

func (a *Aggregator) listUsers() []users.User {
	list, err := a.users.List()
	if err != nil {
		log.Err(err).Msg("[Aggregator] failed to list users")
		return nil
	}
	return list
}

func (a *Aggregator) Stats() Stats {
	now := a.nowTime().In(a.location)
	cutoff := now.Add(-a.activeWindow)
	entries := a.log.List()

	stats := Stats{
		TotalUsers:      a.users.Count(),
		TotalActivities: len(entries),
	}
	for _, u := range a.listUsers() {
		if u.LastLogin.After(cutoff) {
			stats.ActiveUsers++
		}
	}
	for _, e := range entries {
		if sameDay(e.Timestamp.In(a.location), now) {
			stats.TodayActivities++
		}
	}
	return stats
}

// ActivityFeed joins the log, most recent first, to account names. Entries
// for accounts missing from the directory carry UnknownUser.
func (a *Aggregator) ActivityFeed() []FeedItem {
	names := make(map[string]users.User)
	for _, u := range a.listUsers() {
		names[u.ID] = u
	}

	entries := a.log.List()
	feed := make([]FeedItem, 0, len(entries))
	for _, e := range entries {
		item := FeedItem{Entry: e, UserName: UnknownUser, UserInitial: "?"}
		if u, ok := names[e.UserID]; ok {
			item.UserName = u.Name
			item.UserInitial = u.Initial()
			item.KnownUser = true
		}
		feed = append(feed, item)
	}
	return feed
}

// ActionBreakdown counts entries per action, largest first, ties by label
func (a *Aggregator) ActionBreakdown() []ActionCount {
	counts := make(map[string]int)
	for _, e := range a.log.List() {
		counts[e.Action]++
	}

	breakdown := make([]ActionCount, 0, len(counts))
	for action, n := range counts {
		breakdown = append(breakdown, ActionCount{Action: action, Count: n})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Count != breakdown[j].Count {
			return breakdown[i].Count > breakdown[j].Count
		}
		return breakdown[i].Action < breakdown[j].Action
	})
	return breakdown
}

func (a *Aggregator) UserGrowth() Growth {
	now := a.nowTime().In(a.location)
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, a.location)
	previousMonth := thisMonth.AddDate(0, -1, 0)
	nextMonth := thisMonth.AddDate(0, 1, 0)

	var g Growth
	for _, u := range a.listUsers() {
		created := u.CreatedAt.In(a.location)
		switch {
		case !created.Before(thisMonth) && created.Before(nextMonth):
			g.ThisMonth++
		case !created.Before(previousMonth) && created.Before(thisMonth):
			g.PreviousMonth++
		}
	}
	return g
}

// UserRows lists the directory in registration order with per-account activity counts
func (a *Aggregator) UserRows() []UserRow {
	counts := make(map[string]int)
	for _, e := range a.log.List() {
		counts[e.UserID]++
	}

	list := a.listUsers()
	rows := make([]UserRow, 0, len(list))
	for _, u := range list {
		rows = append(rows, UserRow{User: u, Activities: counts[u.ID]})
	}
	return rows
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
