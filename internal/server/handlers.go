// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/report-engine/internal/report"
	"github.com/pdiddy/report-engine/pkg/types"
)

func (s *Server) index(c *gin.Context) {
	recent, err := s.sessions.List(c.Request.Context(), recentReports)
	if err != nil {
		s.errorPage(c, http.StatusInternalServerError, userMessage(err))
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":      s.title(),
		"Extensions": s.gen.Extractors.Extensions(),
		"Recent":     recent,
	})
}

func (s *Server) upload(c *gin.Context) {
	sess, status, err := s.generateUpload(c)
	if err != nil {
		data := gin.H{"Title": s.title(), "Status": status, "Message": userMessage(err)}
		if sess != nil {
			data["ReportID"] = sess.ID
		}
		c.HTML(status, "error.html", data)
		return
	}
	c.Redirect(http.StatusSeeOther, "/reports/"+sess.ID)
}

func (s *Server) view(c *gin.Context) {
	sess, rep, err := s.loadReport(c)
	if err != nil {
		s.errorPage(c, statusFor(err), userMessage(err))
		return
	}

	data := gin.H{
		"Title":   s.title(),
		"Session": sess,
	}
	if rep != nil {
		body, err := report.RenderHTML(rep.Markdown)
		if err != nil {
			s.errorPage(c, http.StatusInternalServerError, userMessage(err))
			return
		}
		data["Report"] = rep
		data["Body"] = body
		data["Downloads"] = s.downloads(sess.ID)
	}
	c.HTML(http.StatusOK, "report.html", data)
}

func (s *Server) download(c *gin.Context) {
	sess, rep, err := s.loadReport(c)
	if err != nil {
		s.errorPage(c, statusFor(err), userMessage(err))
		return
	}
	if rep == nil {
		msg := "The report for " + sess.SourceName + " is still being generated."
		if sess.Status == types.ReportFailed {
			msg = "The report for " + sess.SourceName + " could not be generated: " + sess.Error + "."
		}
		s.errorPage(c, http.StatusConflict, msg)
		return
	}
	s.renderDownload(c, rep, c.Param("format"))
}

// reportJSON is the API view of a session.
type reportJSON struct {
	Session  *types.ReportSession `json:"session"`
	Document *types.DocumentModel `json:"document,omitempty"`
}

func (s *Server) apiUpload(c *gin.Context) {
	sess, status, err := s.generateUpload(c)
	if err != nil {
		body := gin.H{"error": userMessage(err)}
		if sess != nil {
			body["session"] = sess
		}
		c.JSON(status, body)
		return
	}
	s.respondJSON(c, http.StatusCreated, sess)
}

func (s *Server) apiList(c *gin.Context) {
	list, err := s.sessions.List(c.Request.Context(), 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": userMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": list})
}

func (s *Server) apiGet(c *gin.Context) {
	sess, _, err := s.loadReport(c)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": userMessage(err)})
		return
	}
	s.respondJSON(c, http.StatusOK, sess)
}

func (s *Server) respondJSON(c *gin.Context, status int, sess *types.ReportSession) {
	out := reportJSON{Session: sess}
	if sess.Status == types.ReportCompleted {
		rep, err := report.Build(sess, s.cfg.Report)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": userMessage(err)})
			return
		}
		out.Document = &rep.Document
	}
	c.JSON(status, out)
}

func (s *Server) errorPage(c *gin.Context, status int, msg string) {
	c.HTML(status, "error.html", gin.H{
		"Title":   s.title(),
		"Status":  status,
		"Message": msg,
	})
}

type downloadLink struct {
	Format string
	URL    string
}

func (s *Server) downloads(id string) []downloadLink {
	var links []downloadLink
	seen := make(map[string]bool)
	for _, f := range s.cfg.Formats {
		wr, err := report.WriterFor(f)
		if err != nil || seen[wr.Format()] {
			continue
		}
		seen[wr.Format()] = true
		links = append(links, downloadLink{
			Format: wr.Format(),
			URL:    "/reports/" + id + "/download/" + wr.Format(),
		})
	}
	return links
}

func (s *Server) title() string {
	if s.cfg.Report.Title != "" {
		return s.cfg.Report.Title + " Generator"
	}
	return report.DefaultTitle + " Generator"
}
