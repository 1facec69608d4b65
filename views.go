package main

import (
	"fmt"
	"net/url"

	"github.com/Zachkp/work-timeline/internal/gallery"
	"github.com/Zachkp/work-timeline/internal/models"
	"github.com/Zachkp/work-timeline/internal/viewer"
)

// pageData is the model for index.html and work-content.html
type pageData struct {
	Title       string
	Intro       string
	Root        string
	Static      bool
	Experiences []experienceView
	Modal       *modalView
}

type experienceView struct {
	models.Experience
	Grid []cellView
}

type cellView struct {
	gallery.Cell
	URL string
}

// modalView is the model for project-modal.html
type modalView struct {
	*viewer.Modal
	Root     string
	Static   bool
	CloseURL string
	PrevURL  string
	NextURL  string
	DotLinks []dotLink
}

type dotLink struct {
	viewer.Dot
	URL string
}

// linker decides where controls point. The live site posts to HTMX
// endpoints; the static export links between pre-rendered pages.
type linker interface {
	root() string
	static() bool
	selectURL(key string) string
	closeURL() string
	prevURL(m *viewer.Modal) string
	nextURL(m *viewer.Modal) string
	dotURL(m *viewer.Modal, k int) string
}

type serverLinks struct{}

func (serverLinks) root() string { return "/" }
func (serverLinks) static() bool { return false }
func (serverLinks) selectURL(key string) string { return "/work/select/" + url.PathEscape(key) }
func (serverLinks) closeURL() string { return "/work/close" }
func (serverLinks) prevURL(*viewer.Modal) string { return "/work/carousel/prev" }
func (serverLinks) nextURL(*viewer.Modal) string { return "/work/carousel/next" }
func (serverLinks) dotURL(_ *viewer.Modal, k int) string { return fmt.Sprintf("/work/carousel/dot/%d", k) }

// staticLinks builds relative links for pages rendered under root
type staticLinks struct {
	base string
}

func (l staticLinks) root() string { return l.base }
func (l staticLinks) static() bool { return true }

func (l staticLinks) selectURL(key string) string {
	return l.base + projectPagePath(key, 0)
}

func (l staticLinks) closeURL() string { return l.base + "index.html" }

func (l staticLinks) prevURL(m *viewer.Modal) string {
	return imagePageName(viewer.PrevIndex(m.Index, m.Count))
}

func (l staticLinks) nextURL(m *viewer.Modal) string {
	return imagePageName(viewer.NextIndex(m.Index, m.Count))
}

func (l staticLinks) dotURL(_ *viewer.Modal, k int) string { return imagePageName(k) }

// projectPagePath is where image i of a project lives in the static export
func projectPagePath(key string, i int) string {
	return "projects/" + url.PathEscape(key) + "/" + imagePageName(i)
}

func imagePageName(i int) string {
	return fmt.Sprintf("%d.html", i+1)
}

func buildPage(c *models.Catalog, g *gallery.Gallery, l linker) pageData {
	p := pageData{
		Title:  PageTitle,
		Intro:  Intro,
		Root:   l.root(),
		Static: l.static(),
	}

	for _, e := range c.Experiences {
		ev := experienceView{Experience: e}
		for _, cell := range g.Cells(e) {
			cv := cellView{Cell: cell}
			if cell.Thumbnail != nil {
				cv.URL = l.selectURL(cell.Thumbnail.Key)
			}
			ev.Grid = append(ev.Grid, cv)
		}
		p.Experiences = append(p.Experiences, ev)
	}
	return p
}

func buildModal(m *viewer.Modal, l linker) *modalView {
	if m == nil {
		return nil
	}

	mv := &modalView{
		Modal:    m,
		Root:     l.root(),
		Static:   l.static(),
		CloseURL: l.closeURL(),
	}
	if m.ShowNav {
		mv.PrevURL = l.prevURL(m)
		mv.NextURL = l.nextURL(m)
		for _, d := range m.Dots {
			mv.DotLinks = append(mv.DotLinks, dotLink{Dot: d, URL: l.dotURL(m, d.Index)})
		}
	}
	return mv
}
