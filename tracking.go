package main

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"
	_ "modernc.org/sqlite"
)

// sqliteTime matches SQLite's datetime() output so range queries compare as text
const sqliteTime = "2006-01-02 15:04:05"

// Privacy-conscious visitor tracking record
type VisitorMetric struct {
	ID        int       `json:"id"`
	HashedIP  string    `json:"hashed_ip"` // Hashed instead of raw IP for privacy
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// ProjectViewStat counts how often a project modal was opened
type ProjectViewStat struct {
	ProjectID string `json:"project_id"`
	Views     int64  `json:"views"`
	Visitors  int64  `json:"visitors"`
}

type AdminStats struct {
	TotalVisitors    int64             `json:"total_visitors"`
	UniqueVisitors   int64             `json:"unique_visitors"`
	TotalViews       int64             `json:"total_project_views"`
	ViewsToday       int64             `json:"project_views_today"`
	VisitorsToday    int64             `json:"visitors_today"`
	VisitorsThisWeek int64             `json:"visitors_this_week"`
	TopProjects      []ProjectViewStat `json:"top_projects"`
	RecentVisitors   []VisitorMetric   `json:"recent_visitors"`
}

// tracker records page visits and project opens with hashed IPs
type tracker struct {
	db   *sql.DB
	salt string
	now  func() time.Time
}

// openTracker opens (or creates) the SQLite database at path
func openTracker(path string) (*tracker, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// One writer keeps SQLite happy and makes ":memory:" a single database.
	db.SetMaxOpenConns(1)

	t := &tracker{db: db, salt: generateToken(), now: time.Now}
	if err := t.init(); err != nil {
		db.Close()
		return nil, err
	}

	klog.Info("Privacy: Visitor tracking enabled with hashed IP addresses")
	return t, nil
}

func (t *tracker) init() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS visitors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hashed_ip TEXT NOT NULL,  -- Store hashed IP instead of raw IP
			user_agent TEXT,
			path TEXT,
			timestamp TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS project_views (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id TEXT NOT NULL,
			hashed_ip TEXT NOT NULL,
			timestamp TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_project_views_project ON project_views(project_id)`,
	}

	for _, stmt := range schema {
		if _, err := t.db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

func (t *tracker) Close() error {
	return t.db.Close()
}

func generateToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		klog.Fatalf("Failed to generate token: %v", err)
	}
	return hex.EncodeToString(bytes)
}

// Hash IP address for privacy compliance (consistent per IP for this process)
func (t *tracker) hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + t.salt))
	return hex.EncodeToString(hash.Sum(nil))[:16] // Truncate for storage efficiency
}

func (t *tracker) stamp() string {
	return t.now().UTC().Format(sqliteTime)
}

// Privacy-conscious visitor tracking middleware
func visitorTrackingMiddleware(t *tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only full page loads count as visits
		path := c.Request.URL.Path
		if c.Request.Method != "GET" ||
			strings.HasPrefix(path, "/static/") ||
			strings.HasPrefix(path, "/images/") ||
			strings.HasPrefix(path, "/admin/") ||
			strings.HasPrefix(path, "/api/") ||
			strings.HasPrefix(path, "/work") ||
			strings.HasPrefix(path, "/health") ||
			strings.HasPrefix(path, "/favicon") {
			c.Next()
			return
		}

		// Respect Do Not Track header
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		go t.trackVisitor(c.ClientIP(), c.GetHeader("User-Agent"), path)
		c.Next()
	}
}

func (t *tracker) trackVisitor(ip, userAgent, path string) {
	_, err := t.db.Exec(`
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, t.hashIP(ip), userAgent, path, t.stamp())

	if err != nil {
		klog.Errorf("Error recording visitor: %v", err)
	}
}

// recordProjectView logs that a visitor opened a project modal
func (t *tracker) recordProjectView(projectID, ip string) error {
	_, err := t.db.Exec(`
		INSERT INTO project_views (project_id, hashed_ip, timestamp)
		VALUES (?, ?, ?)
	`, projectID, t.hashIP(ip), t.stamp())
	if err != nil {
		return fmt.Errorf("record view of %s: %w", projectID, err)
	}
	return nil
}

// cleanupOldData removes tracking rows older than 12 months
func (t *tracker) cleanupOldData() (int64, error) {
	cutoff := t.now().UTC().AddDate(-1, 0, 0).Format(sqliteTime)

	var total int64
	for _, table := range []string{"visitors", "project_views"} {
		result, err := t.db.Exec(`DELETE FROM `+table+` WHERE timestamp < ?`, cutoff)
		if err != nil {
			return total, fmt.Errorf("cleanup %s: %w", table, err)
		}
		n, _ := result.RowsAffected()
		total += n
	}

	if total > 0 {
		klog.Infof("Privacy cleanup: Removed %d tracking records older than 12 months", total)
	}
	return total, nil
}

// stats gathers the admin dashboard numbers
func (t *tracker) stats() (*AdminStats, error) {
	stats := &AdminStats{}
	now := t.now().UTC()
	today := now.Format("2006-01-02")
	weekAgo := now.AddDate(0, 0, -7).Format(sqliteTime)

	counts := []struct {
		dest  *int64
		query string
		args  []interface{}
	}{
		{&stats.TotalVisitors, "SELECT COUNT(*) FROM visitors", nil},
		{&stats.UniqueVisitors, "SELECT COUNT(DISTINCT hashed_ip) FROM visitors", nil},
		{&stats.TotalViews, "SELECT COUNT(*) FROM project_views", nil},
		{&stats.ViewsToday, "SELECT COUNT(*) FROM project_views WHERE substr(timestamp, 1, 10) = ?", []interface{}{today}},
		{&stats.VisitorsToday, "SELECT COUNT(*) FROM visitors WHERE substr(timestamp, 1, 10) = ?", []interface{}{today}},
		{&stats.VisitorsThisWeek, "SELECT COUNT(*) FROM visitors WHERE timestamp >= ?", []interface{}{weekAgo}},
	}
	for _, c := range counts {
		if err := t.db.QueryRow(c.query, c.args...).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}

	// Top projects by opens
	rows, err := t.db.Query(`
		SELECT project_id, COUNT(*) AS views, COUNT(DISTINCT hashed_ip) AS visitors
		FROM project_views
		GROUP BY project_id
		ORDER BY views DESC, project_id ASC
		LIMIT 10
	`)
	if err != nil {
		return nil, fmt.Errorf("top projects: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p ProjectViewStat
		if err := rows.Scan(&p.ProjectID, &p.Views, &p.Visitors); err != nil {
			return nil, fmt.Errorf("top projects: %w", err)
		}
		stats.TopProjects = append(stats.TopProjects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("top projects: %w", err)
	}

	visitors, err := t.recentVisitors(50)
	if err != nil {
		return nil, err
	}
	stats.RecentVisitors = visitors

	return stats, nil
}

func (t *tracker) recentVisitors(limit int) ([]VisitorMetric, error) {
	rows, err := t.db.Query(`
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent visitors: %w", err)
	}
	defer rows.Close()

	var visitors []VisitorMetric
	for rows.Next() {
		var v VisitorMetric
		var ts string
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts); err != nil {
			return nil, fmt.Errorf("recent visitors: %w", err)
		}
		if v.Timestamp, err = time.Parse(sqliteTime, ts); err != nil {
			return nil, fmt.Errorf("recent visitors: visitor %d timestamp %q: %w", v.ID, ts, err)
		}
		visitors = append(visitors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent visitors: %w", err)
	}
	return visitors, nil
}
