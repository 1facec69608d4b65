// admin.go - privacy-conscious admin area for project view statistics
package main

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"
)

// Middleware to check admin authentication
func (s *server) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("admin_token")
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *server) validCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPassword)) == 1
	return userOK && passOK
}

// Setup all admin routes
func (s *server) setupAdminRoutes(r *gin.Engine) {
	klog.Info("Admin access available at: /admin/login")

	// Admin login page
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	// Admin login handler
	r.POST("/admin/login", func(c *gin.Context) {
		if s.validCredentials(c.PostForm("username"), c.PostForm("password")) {
			// Set secure cookie (24 hours)
			c.SetCookie("admin_token", s.adminToken, 3600*24, "/admin", "", false, true)
			klog.Infof("Admin login successful from %s", s.tracker.hashIP(c.ClientIP()))
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}

		klog.Warningf("Failed admin login attempt from %s", s.tracker.hashIP(c.ClientIP()))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
	})

	// Admin logout
	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie("admin_token", "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	// Protected admin routes group
	adminGroup := r.Group("/admin")
	adminGroup.Use(s.adminAuthMiddleware())

	// Admin dashboard
	adminGroup.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.tracker.stats()
		if err != nil {
			klog.Errorf("Error loading admin stats: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}

		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats":    stats,
			"titles":   s.projectTitles(),
			"sessions": s.sessions.Len(),
		})
	})

	// Admin API endpoint for HTMX/AJAX refresh
	adminGroup.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.tracker.stats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	// Privacy compliance: purge tracking data older than 12 months now
	adminGroup.POST("/privacy/cleanup", func(c *gin.Context) {
		removed, err := s.tracker.cleanupOldData()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete", "removed": removed})
	})

	// Admin statistics export (for backups or analysis)
	adminGroup.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.tracker.stats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		// Set headers for file download
		c.Header("Content-Disposition", "attachment; filename=project-stats.json")

		klog.Infof("Admin stats exported by %s", s.tracker.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}

// projectTitles maps project ids to display titles for the dashboard
func (s *server) projectTitles() map[string]string {
	cat := s.source.Current()
	titles := make(map[string]string, len(cat.Projects))
	for id, p := range cat.Projects {
		titles[id] = p.Title
	}
	return titles
}
