package api

import (
	"fmt"
	"net/http"
	"strings"

	"edustat/domain/dataset"
	"edustat/internal/errors"

	"github.com/gin-gonic/gin"
)

// TestRequest carries a dataset and, for the two-sample tests, the grouping
// (ind) and dependent (dep) column names.
type TestRequest struct {
	Columns []dataset.ColumnData `json:"columns"`
	Ind     string               `json:"ind"`
	Dep     string               `json:"dep"`
}

// ReportResponse is returned after a report file is written
type ReportResponse struct {
	Path   string      `json:"path"`
	Result interface{} `json:"result"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleIndependentTTest(c *gin.Context) {
	req, ds, ok := s.bindGroupedDataset(c)
	if !ok {
		return
	}
	res, err := s.service.IndependentTTest(ds, req.Ind, req.Dep)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleMannWhitneyU(c *gin.Context) {
	req, ds, ok := s.bindGroupedDataset(c)
	if !ok {
		return
	}
	res, err := s.service.MannWhitneyU(ds, req.Ind, req.Dep)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleCorrelation(c *gin.Context) {
	_, ds, ok := s.bindDataset(c)
	if !ok {
		return
	}
	res, err := s.service.Correlation(c.Request.Context(), ds)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleNormality(c *gin.Context) {
	_, ds, ok := s.bindDataset(c)
	if !ok {
		return
	}
	res, err := s.service.Normality(c.Request.Context(), ds)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleIndependentTTestReport(c *gin.Context) {
	req, ds, ok := s.bindGroupedDataset(c)
	if !ok {
		return
	}
	res, err := s.service.IndependentTTest(ds, req.Ind, req.Dep)
	if err != nil {
		s.writeError(c, err)
		return
	}
	path, err := s.renderer.Render(res, s.outputDir)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ReportResponse{Path: path, Result: res})
}

// bindDataset accepts either a JSON TestRequest or a multipart upload with a
// "dataset" file and optional "ind" and "dep" fields.
func (s *Server) bindDataset(c *gin.Context) (TestRequest, *dataset.Dataset, bool) {
	var req TestRequest

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		header, err := c.FormFile("dataset")
		if err != nil {
			s.writeError(c, errors.InvalidInput("no dataset file uploaded"))
			return req, nil, false
		}
		if header.Size > maxUploadSize {
			s.writeError(c, errors.InvalidInput(fmt.Sprintf("file size (%.1f MB) exceeds the 50MB limit", float64(header.Size)/(1<<20))))
			return req, nil, false
		}
		file, err := header.Open()
		if err != nil {
			s.writeError(c, errors.Wrap(err, "failed to open upload"))
			return req, nil, false
		}
		defer file.Close()

		ds, err := s.reader.ReadUpload(header.Filename, file)
		if err != nil {
			s.writeError(c, err)
			return req, nil, false
		}
		req.Ind = c.PostForm("ind")
		req.Dep = c.PostForm("dep")
		return req, ds, true
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, errors.InvalidInput("invalid request body: "+err.Error()))
		return req, nil, false
	}
	ds, err := dataset.FromColumns(req.Columns)
	if err != nil {
		s.writeError(c, err)
		return req, nil, false
	}
	return req, ds, true
}

// bindGroupedDataset binds like bindDataset and also requires the ind and dep
// column names used by the two-sample tests.
func (s *Server) bindGroupedDataset(c *gin.Context) (TestRequest, *dataset.Dataset, bool) {
	req, ds, ok := s.bindDataset(c)
	if !ok {
		return req, nil, false
	}
	if strings.TrimSpace(req.Ind) == "" || strings.TrimSpace(req.Dep) == "" {
		s.writeError(c, errors.ValidationError("ind and dep column names are required"))
		return req, nil, false
	}
	return req, ds, true
}

// writeError maps precondition failures to 422, bad input to 400, missing
// resources to 404 and anything else to 500.
func (s *Server) writeError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodePreconditionFailed:
		status = http.StatusUnprocessableEntity
	case errors.CodeInvalidInput, errors.CodeValidationError:
		status = http.StatusBadRequest
	case errors.CodeNotFound:
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("[API] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error(), "code": code})
}
