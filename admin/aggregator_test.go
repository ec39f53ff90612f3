package admin_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/stitch-smart/activity"
	fakeactivityrepo "github.com/jrsteele09/stitch-smart/activity/repofake"
	"github.com/jrsteele09/stitch-smart/admin"
	"github.com/jrsteele09/stitch-smart/users"
	fakeuserrepo "github.com/jrsteele09/stitch-smart/users/repofake"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.February, 10, 12, 0, 0, 0, time.UTC)

type testFixture struct {
	users    *fakeuserrepo.FakeUserRepo
	activity *fakeactivityrepo.FakeActivityRepo
	agg      *admin.Aggregator
}

func setupTestFixture(t *testing.T, seedUsers []users.User, seedEntries []activity.Entry) *testFixture {
	t.Helper()
	f := &testFixture{
		users:    fakeuserrepo.NewFakeUserRepo(),
		activity: fakeactivityrepo.NewFakeActivityRepo(),
	}
	for _, u := range seedUsers {
		require.NoError(t, f.users.Upsert(&u))
	}
	for i := len(seedEntries) - 1; i >= 0; i-- {
		require.NoError(t, f.activity.Prepend(seedEntries[i]))
	}
	agg, err := admin.NewAggregator(f.users, f.activity,
		admin.WithNowTime(func() time.Time { return fixedNow }),
		admin.WithLocation(time.UTC),
	)
	require.NoError(t, err)
	f.agg = agg
	return f
}

func TestNewAggregatorRequiresReaders(t *testing.T) {
	_, err := admin.NewAggregator(nil, fakeactivityrepo.NewFakeActivityRepo())
	require.Error(t, err)
	_, err = admin.NewAggregator(fakeuserrepo.NewFakeUserRepo(), nil)
	require.Error(t, err)
}

func TestStatsOnSeedData(t *testing.T) {
	f := setupTestFixture(t, users.SeedUsers(fixedNow, ""), activity.SeedEntries(fixedNow))

	stats := f.agg.Stats()
	require.Equal(t, 3, stats.TotalUsers)
	require.Equal(t, 1, stats.ActiveUsers, "only the admin logged in within the window")
	require.Equal(t, 3, stats.TotalActivities)
	require.Equal(t, 2, stats.TodayActivities)
}

func TestActiveUsersWindowIsStrict(t *testing.T) {
	seed := []users.User{
		{ID: "1", Email: "a@example.com", Name: "A", Role: users.RoleAdministrator, LastLogin: fixedNow},
		{ID: "2", Email: "b@example.com", Name: "B", Role: users.RoleStandard, LastLogin: fixedNow.Add(-24*time.Hour - time.Second)},
		{ID: "3", Email: "c@example.com", Name: "C", Role: users.RoleStandard, LastLogin: fixedNow.Add(-time.Hour)},
		{ID: "4", Email: "d@example.com", Name: "D", Role: users.RoleStandard, LastLogin: fixedNow.Add(-24 * time.Hour)},
	}
	f := setupTestFixture(t, seed, nil)
	require.Equal(t, 2, f.agg.Stats().ActiveUsers)
}

func TestActiveWindowOption(t *testing.T) {
	f := setupTestFixture(t, users.SeedUsers(fixedNow, ""), nil)
	agg, err := admin.NewAggregator(f.users, f.activity,
		admin.WithNowTime(func() time.Time { return fixedNow }),
		admin.WithActiveWindow(72*time.Hour),
	)
	require.NoError(t, err)
	require.Equal(t, 3, agg.Stats().ActiveUsers)
}

func TestStatsAreRecomputed(t *testing.T) {
	now := fixedNow
	f := setupTestFixture(t, []users.User{
		{ID: "1", Email: "a@example.com", Name: "A", Role: users.RoleStandard, LastLogin: fixedNow.Add(-23 * time.Hour)},
	}, nil)
	agg, err := admin.NewAggregator(f.users, f.activity, admin.WithNowTime(func() time.Time { return now }))
	require.NoError(t, err)

	require.Equal(t, 1, agg.Stats().ActiveUsers)
	now = now.Add(2 * time.Hour)
	require.Equal(t, 0, agg.Stats().ActiveUsers)
}

func TestTodayUsesCalendarDateInLocation(t *testing.T) {
	entries := []activity.Entry{
		{ID: "a", UserID: "1", Action: activity.ActionLogin, Timestamp: time.Date(2024, time.February, 10, 0, 30, 0, 0, time.UTC)},
		{ID: "b", UserID: "1", Action: activity.ActionLogin, Timestamp: time.Date(2024, time.February, 9, 23, 30, 0, 0, time.UTC)},
	}
	f := setupTestFixture(t, nil, entries)
	require.Equal(t, 1, f.agg.Stats().TodayActivities)

	// Two hours west of UTC both entries fall on the 9th while now is still the 10th
	west := time.FixedZone("west", -2*60*60)
	agg, err := admin.NewAggregator(f.users, f.activity,
		admin.WithNowTime(func() time.Time { return fixedNow }),
		admin.WithLocation(west),
	)
	require.NoError(t, err)
	require.Equal(t, 0, agg.Stats().TodayActivities)
}

func TestActivityFeedJoinsNames(t *testing.T) {
	entries := append(activity.SeedEntries(fixedNow), activity.Entry{
		ID: "orphan", UserID: "99", Action: activity.ActionImageUpload, Timestamp: fixedNow.Add(-48 * time.Hour),
	})
	f := setupTestFixture(t, users.SeedUsers(fixedNow, ""), entries)

	feed := f.agg.ActivityFeed()
	require.Len(t, feed, 4)
	require.Equal(t, "John Doe", feed[0].UserName)
	require.Equal(t, "J", feed[0].UserInitial)
	require.True(t, feed[0].KnownUser)
	require.Equal(t, "Jane Smith", feed[1].UserName)

	require.Equal(t, "orphan", feed[3].ID)
	require.Equal(t, admin.UnknownUser, feed[3].UserName)
	require.False(t, feed[3].KnownUser)
}

func TestActionBreakdown(t *testing.T) {
	entries := []activity.Entry{
		{ID: "1", UserID: "1", Action: activity.ActionImageStitch},
		{ID: "2", UserID: "1", Action: activity.ActionLogin},
		{ID: "3", UserID: "2", Action: activity.ActionImageUpload},
		{ID: "4", UserID: "2", Action: activity.ActionLogin},
		{ID: "5", UserID: "3", Action: activity.ActionImageUpload},
		{ID: "6", UserID: "3", Action: activity.ActionLogin},
	}
	f := setupTestFixture(t, nil, entries)

	require.Equal(t, []admin.ActionCount{
		{Action: activity.ActionLogin, Count: 3},
		{Action: activity.ActionImageUpload, Count: 2},
		{Action: activity.ActionImageStitch, Count: 1},
	}, f.agg.ActionBreakdown())
}

func TestUserGrowth(t *testing.T) {
	// fixedNow is in February 2024; seed accounts are from January and February
	f := setupTestFixture(t, users.SeedUsers(fixedNow, ""), nil)
	require.Equal(t, admin.Growth{ThisMonth: 1, PreviousMonth: 2}, f.agg.UserGrowth())
}

func TestUserGrowthAcrossYearBoundary(t *testing.T) {
	seed := []users.User{
		{ID: "1", Email: "a@example.com", Role: users.RoleStandard, CreatedAt: time.Date(2023, time.December, 31, 23, 0, 0, 0, time.UTC)},
		{ID: "2", Email: "b@example.com", Role: users.RoleStandard, CreatedAt: time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "3", Email: "c@example.com", Role: users.RoleStandard, CreatedAt: time.Date(2023, time.November, 30, 0, 0, 0, 0, time.UTC)},
	}
	f := setupTestFixture(t, seed, nil)
	agg, err := admin.NewAggregator(f.users, f.activity,
		admin.WithNowTime(func() time.Time { return time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC) }),
		admin.WithLocation(time.UTC),
	)
	require.NoError(t, err)
	require.Equal(t, admin.Growth{ThisMonth: 1, PreviousMonth: 1}, agg.UserGrowth())
}

func TestUserRows(t *testing.T) {
	f := setupTestFixture(t, users.SeedUsers(fixedNow, ""), activity.SeedEntries(fixedNow))

	rows := f.agg.UserRows()
	require.Len(t, rows, 3)
	require.Equal(t, "1", rows[0].ID)
	require.Equal(t, 0, rows[0].Activities)
	require.Equal(t, 2, rows[1].Activities)
	require.Equal(t, 1, rows[2].Activities)
}

func TestEmptyDirectoryAndLog(t *testing.T) {
	f := setupTestFixture(t, nil, nil)
	require.Equal(t, admin.Stats{}, f.agg.Stats())
	require.Empty(t, f.agg.ActivityFeed())
	require.Empty(t, f.agg.ActionBreakdown())
	require.Empty(t, f.agg.UserRows())
}
