package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hyperjump/finsight/internal/finance"
	"github.com/hyperjump/finsight/internal/models"
	"github.com/hyperjump/finsight/internal/storage"
	"go.uber.org/zap"
)

const maxNewsLimit = 100

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, pageData{})
}

func (s *Server) handleAnalyzeForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderPage(w, http.StatusBadRequest, pageData{Error: "invalid form"})
		return
	}
	req := models.AnalysisRequest{Ticker: r.PostFormValue("ticker")}
	req.Normalize()
	if err := s.validate.Struct(&req); err != nil {
		s.renderPage(w, http.StatusBadRequest, pageData{Ticker: req.Ticker, Error: validationMessage(err)})
		return
	}

	s.logger.Debug("analyze form request", zap.String("ticker", req.Ticker))
	res, err := s.analyzer.Run(r.Context(), req.Ticker)
	if errors.Is(err, finance.ErrFetch) {
		s.renderPage(w, http.StatusOK, pageData{Ticker: req.Ticker, Error: "Could not fetch data for " + req.Ticker})
		return
	}
	if err != nil {
		s.logger.Error("analysis failed", zap.String("ticker", req.Ticker), zap.Error(err))
		s.renderPage(w, http.StatusInternalServerError, pageData{Ticker: req.Ticker, Error: "Analysis failed: " + err.Error()})
		return
	}
	report, err := s.renderMarkdown(res.Text)
	if err != nil {
		s.logger.Error("markdown rendering failed", zap.Error(err))
		s.renderPage(w, http.StatusInternalServerError, pageData{Ticker: req.Ticker, Error: "could not render analysis"})
		return
	}
	s.renderPage(w, http.StatusOK, pageData{Ticker: req.Ticker, Analysis: res, Report: report})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Normalize()
	if err := s.validate.Struct(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	s.logger.Debug("analyze request", zap.String("ticker", req.Ticker))
	res, err := s.analyzer.Run(r.Context(), req.Ticker)
	if errors.Is(err, finance.ErrFetch) {
		s.respondError(w, http.StatusUnprocessableEntity, "Could not fetch data for "+req.Ticker)
		return
	}
	if err != nil {
		s.logger.Error("analysis failed", zap.String("ticker", req.Ticker), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	ticker := models.NormalizeTicker(chi.URLParam(r, "ticker"))
	snap, err := s.storage.GetSnapshot(r.Context(), ticker)
	if errors.Is(err, storage.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "snapshot not found")
		return
	}
	if err != nil {
		s.logger.Error("get snapshot failed", zap.String("ticker", ticker), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, snap)
}

func (s *Server) handleListNews(w http.ResponseWriter, r *http.Request) {
	ticker := models.NormalizeTicker(chi.URLParam(r, "ticker"))
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.respondError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = min(n, maxNewsLimit)
	}
	articles, err := s.storage.ListArticles(r.Context(), ticker, limit)
	if err != nil {
		s.logger.Error("list articles failed", zap.String("ticker", ticker), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if articles == nil {
		articles = []models.NewsArticle{}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"ticker":   ticker,
		"articles": articles,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) renderPage(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.page.Execute(w, data); err != nil {
		s.logger.Error("template execution failed", zap.Error(err))
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
