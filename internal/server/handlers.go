package server

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"StockDash/internal/chart"
	"StockDash/internal/model"
	"StockDash/internal/render"
)

func handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrUnknownColumn), errors.Is(err, model.ErrNotNumeric):
		return http.StatusBadRequest
	case errors.Is(err, chart.ErrUnknownKind):
		return http.StatusNotFound
	case errors.Is(err, render.ErrUnsupportedKind), errors.Is(err, render.ErrNoData):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(statusFor(err), gin.H{"error": err.Error()})
}

// selection reads the columns query parameter. It accepts repeated values and
// comma separated lists. A missing parameter selects the default columns; a
// present but empty one selects nothing.
func (s *Server) selection(c *gin.Context) []string {
	raw, ok := c.GetQueryArray("columns")
	if !ok {
		return s.dash.DefaultColumns()
	}
	out := []string{}
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (s *Server) handleColumns(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"columns": s.dash.Dataset.Columns(),
		"default": s.dash.DefaultColumns(),
	})
}

func (s *Server) handlePage(c *gin.Context) {
	page, err := s.dash.Page(s.selection(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) handleOverview(c *gin.Context) {
	ov, err := s.dash.Overview(s.selection(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ov)
}

func (s *Server) handleSummary(c *gin.Context) {
	sum, err := s.dash.Summary()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (s *Server) handleCorrelation(c *gin.Context) {
	m, err := s.dash.Correlation()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (s *Server) handleCharts(c *gin.Context) {
	specs, err := s.dash.Charts()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"charts": specs})
}

func (s *Server) chartSpec(c *gin.Context) (model.ChartSpec, bool) {
	kind, err := chart.ParseKind(c.Param("kind"))
	if err != nil {
		abortWithError(c, err)
		return model.ChartSpec{}, false
	}
	spec, err := s.dash.Chart(kind)
	if err != nil {
		abortWithError(c, err)
		return model.ChartSpec{}, false
	}
	return spec, true
}

func (s *Server) handleChart(c *gin.Context) {
	spec, ok := s.chartSpec(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, spec)
}

func (s *Server) handleChartPNG(c *gin.Context) {
	spec, ok := s.chartSpec(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := render.PNG(spec, &buf, s.opts.Width, s.opts.Height); err != nil {
		abortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
