package main

import (
	"errors"
	"html/template"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/Zachkp/work-timeline/internal/catalog"
	"github.com/Zachkp/work-timeline/internal/config"
	"github.com/Zachkp/work-timeline/internal/container"
	"github.com/Zachkp/work-timeline/internal/gallery"
	"github.com/Zachkp/work-timeline/internal/models"
	"github.com/Zachkp/work-timeline/internal/viewer"
)

const sessionCookie = "work_session"

// server ties the work data, per-visitor containers and tracking to gin
type server struct {
	cfg        *config.Config
	source     *catalog.Source
	gallery    *gallery.Gallery
	sessions   *container.Store
	tracker    *tracker // nil disables tracking and the admin area
	templates  *template.Template
	adminToken string
}

func newServer(cfg *config.Config, source *catalog.Source, t *tracker) (*server, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	g := gallery.New(source.Lookup)
	return &server{
		cfg:        cfg,
		source:     source,
		gallery:    g,
		sessions:   container.NewStore(g),
		tracker:    t,
		templates:  tmpl,
		adminToken: generateToken(),
	}, nil
}

func (s *server) router() *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(s.templates)

	if s.tracker != nil {
		r.Use(visitorTrackingMiddleware(s.tracker))
	}

	r.Static("/images", "./images")
	r.Static("/static", "./static")

	// Full page load starts from a closed modal
	r.GET("/", s.index)

	// HTMX timeline fragment
	r.GET("/work-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "work-content.html", buildPage(s.source.Current(), s.gallery, serverLinks{}))
	})

	work := r.Group("/work")
	work.POST("/select/:key", s.selectProject)
	work.POST("/close", s.closeModal)
	work.POST("/carousel/next", s.carousel(func(ct *container.Container) error { ct.Next(); return nil }))
	work.POST("/carousel/prev", s.carousel(func(ct *container.Container) error { ct.Prev(); return nil }))
	work.POST("/carousel/dot/:index", s.showDot)

	api := r.Group("/api")
	api.GET("/projects", s.listProjects)
	api.GET("/projects/:id", s.getProject)
	api.GET("/health", health)
	r.GET("/health", health)

	if s.tracker != nil {
		s.setupAdminRoutes(r)
	}

	return r
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// withContainer runs fn against the visitor's container and refreshes the
// session cookie. fn must not write the response.
func (s *server) withContainer(c *gin.Context, fn func(*container.Container)) {
	id, _ := c.Cookie(sessionCookie)
	id = s.sessions.With(id, fn)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
}

// withSession runs fn only when the visitor already has a live session.
// Requests that cannot open the modal never allocate one.
func (s *server) withSession(c *gin.Context, fn func(*container.Container)) {
	id, err := c.Cookie(sessionCookie)
	if err != nil || id == "" {
		return
	}
	s.sessions.Existing(id, fn)
}

func (s *server) renderModal(c *gin.Context, status int, m *viewer.Modal) {
	c.HTML(status, "project-modal.html", buildModal(m, serverLinks{}))
}

func (s *server) index(c *gin.Context) {
	s.withSession(c, func(ct *container.Container) { ct.Close() })

	page := buildPage(s.source.Current(), s.gallery, serverLinks{})
	c.HTML(http.StatusOK, "index.html", page)
}

func (s *server) selectProject(c *gin.Context) {
	key := c.Param("key")

	var (
		selected bool
		modal    *viewer.Modal
	)
	run := s.withSession
	if _, ok := s.source.Lookup(key); ok {
		run = s.withContainer
	}
	run(c, func(ct *container.Container) {
		selected = ct.SelectKey(key)
		modal = ct.Modal()
	})

	if !selected {
		klog.V(1).Infof("ignoring selection of unknown project %q", key)
	} else if s.tracker != nil {
		if err := s.tracker.recordProjectView(key, c.ClientIP()); err != nil {
			klog.Errorf("Error recording project view: %v", err)
		}
	}

	s.renderModal(c, http.StatusOK, modal)
}

func (s *server) closeModal(c *gin.Context) {
	var modal *viewer.Modal
	s.withSession(c, func(ct *container.Container) {
		ct.Dismiss()
		modal = ct.Modal()
	})
	s.renderModal(c, http.StatusOK, modal)
}

// carousel wraps a navigation step and answers with the re-rendered modal
func (s *server) carousel(step func(*container.Container) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			modal *viewer.Modal
			err   error
		)
		s.withSession(c, func(ct *container.Container) {
			err = step(ct)
			modal = ct.Modal()
		})

		if errors.Is(err, viewer.ErrImageOutOfRange) {
			c.HTML(http.StatusBadRequest, "work-error.html", gin.H{"error": UnknownDotMsg})
			return
		}
		if err != nil {
			klog.Errorf("carousel: %v", err)
			c.HTML(http.StatusInternalServerError, "work-error.html", gin.H{"error": err.Error()})
			return
		}
		s.renderModal(c, http.StatusOK, modal)
	}
}

func (s *server) showDot(c *gin.Context) {
	k, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.HTML(http.StatusBadRequest, "work-error.html", gin.H{"error": UnknownDotMsg})
		return
	}
	s.carousel(func(ct *container.Container) error { return ct.Show(k) })(c)
}

// listProjects handles GET /api/projects
func (s *server) listProjects(c *gin.Context) {
	cat := s.source.Current()

	projects := make([]models.Project, 0, len(cat.Projects))
	for _, p := range cat.Projects {
		projects = append(projects, p)
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].ID < projects[j].ID })

	c.JSON(http.StatusOK, projects)
}

// getProject handles GET /api/projects/:id
func (s *server) getProject(c *gin.Context) {
	p, ok := s.source.Lookup(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}
