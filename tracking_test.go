package main

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestTracker(t *testing.T) *tracker {
	t.Helper()
	tr, err := openTracker(filepath.Join(t.TempDir(), "tracking.db"))
	if err != nil {
		t.Fatalf("openTracker: %v", err)
	}
	t.Cleanup(func() { tr.Close() })
	return tr
}

func TestHashIP(t *testing.T) {
	tr := newTestTracker(t)

	a := tr.hashIP("203.0.113.7")
	if a != tr.hashIP("203.0.113.7") {
		t.Error("hash should be stable for the same IP")
	}
	if a == tr.hashIP("203.0.113.8") {
		t.Error("different IPs should hash differently")
	}
	if len(a) != 16 {
		t.Errorf("expected 16 hex chars, got %d", len(a))
	}
}

func TestStats(t *testing.T) {
	tr := newTestTracker(t)
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return now }

	tr.trackVisitor("10.0.0.1", "test-agent", "/")
	tr.trackVisitor("10.0.0.1", "test-agent", "/")
	tr.trackVisitor("10.0.0.2", "other-agent", "/")

	for _, v := range []struct{ project, ip string }{
		{"spendsail", "10.0.0.1"},
		{"spendsail", "10.0.0.2"},
		{"safety", "10.0.0.1"},
	} {
		if err := tr.recordProjectView(v.project, v.ip); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := tr.stats()
	if err != nil {
		t.Fatal(err)
	}

	if stats.TotalVisitors != 3 || stats.UniqueVisitors != 2 {
		t.Errorf("visitors = %d (%d unique), want 3 (2 unique)", stats.TotalVisitors, stats.UniqueVisitors)
	}
	if stats.VisitorsToday != 3 || stats.VisitorsThisWeek != 3 {
		t.Errorf("today/week = %d/%d, want 3/3", stats.VisitorsToday, stats.VisitorsThisWeek)
	}
	if stats.TotalViews != 3 || stats.ViewsToday != 3 {
		t.Errorf("views = %d (%d today), want 3", stats.TotalViews, stats.ViewsToday)
	}

	if len(stats.TopProjects) != 2 {
		t.Fatalf("expected 2 top projects, got %d", len(stats.TopProjects))
	}
	top := stats.TopProjects[0]
	if top.ProjectID != "spendsail" || top.Views != 2 || top.Visitors != 2 {
		t.Errorf("unexpected top project: %+v", top)
	}

	if len(stats.RecentVisitors) != 3 {
		t.Fatalf("expected 3 recent visitors, got %d", len(stats.RecentVisitors))
	}
	if !stats.RecentVisitors[0].Timestamp.Equal(now) {
		t.Errorf("timestamp = %v, want %v", stats.RecentVisitors[0].Timestamp, now)
	}
	if stats.RecentVisitors[0].HashedIP == "10.0.0.2" {
		t.Error("raw IP stored")
	}
}

func TestCleanupOldData(t *testing.T) {
	tr := newTestTracker(t)
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	tr.now = func() time.Time { return now.AddDate(-2, 0, 0) }
	tr.trackVisitor("10.0.0.1", "old", "/")
	if err := tr.recordProjectView("safety", "10.0.0.1"); err != nil {
		t.Fatal(err)
	}

	tr.now = func() time.Time { return now }
	tr.trackVisitor("10.0.0.1", "new", "/")

	removed, err := tr.cleanupOldData()
	if err != nil {
		t.Fatal(err)
	}
	if removed != 2 {
		t.Errorf("removed %d rows, want 2", removed)
	}

	stats, err := tr.stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalVisitors != 1 || stats.TotalViews != 0 {
		t.Errorf("after cleanup: visitors=%d views=%d", stats.TotalVisitors, stats.TotalViews)
	}
}

func TestStatsReportsCorruptRows(t *testing.T) {
	tr := newTestTracker(t)
	tr.trackVisitor("10.0.0.1", "test-agent", "/")

	if _, err := tr.db.Exec(`
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES ('abc', 'agent', '/', 'yesterday-ish')
	`); err != nil {
		t.Fatal(err)
	}

	if _, err := tr.recentVisitors(10); err == nil {
		t.Error("recentVisitors should fail on an unparseable timestamp")
	}
	if stats, err := tr.stats(); err == nil {
		t.Errorf("stats should surface the bad row instead of returning partial data: %+v", stats)
	}
}
