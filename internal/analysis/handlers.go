package analysis

import (
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"path/filepath"
	"strings"
)

// maxUploadSize caps multipart report uploads.
const maxUploadSize = int64(50 << 20) // 50MB

// corsError writes an error response with CORS headers set
func corsError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	http.Error(w, message, code)
}

// jsonError writes a JSON error payload with CORS headers set
func jsonError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// round2 rounds a score to two decimals for the wire format.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// handlePredict scores caller-supplied raw feature values
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var features map[string]float64
	if err := json.NewDecoder(r.Body).Decode(&features); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	score, err := s.service.Predict(features)
	if err != nil {
		slog.Error("Error predicting score", "error", err)
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]float64{"predicted_score": round2(score)}); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleAnalyze accepts a multipart report upload and returns the score,
// the extracted fields, and the advisor's assessment (or its error)
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		errorMsg := "Error parsing form"
		if err.Error() == "http: request body too large" {
			errorMsg = "File is too large. Maximum size is 50MB."
		}
		jsonError(w, errorMsg, http.StatusBadRequest)
		return
	}

	f, header, err := r.FormFile("report")
	if err != nil {
		jsonError(w, "No report uploaded.", http.StatusBadRequest)
		return
	}
	defer f.Close()

	if header.Size > maxUploadSize {
		jsonError(w, "File is too large. Maximum size is 50MB.", http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading file data", "error", err, "filename", header.Filename)
		jsonError(w, "Error reading file. Please try again.", http.StatusInternalServerError)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		if strings.ToLower(filepath.Ext(header.Filename)) == ".pdf" {
			contentType = "application/pdf"
		} else {
			contentType = "application/octet-stream"
		}
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))

	result, err := s.service.AnalyzeDocument(header.Filename, data, contentType)
	if err != nil {
		slog.Error("Error analyzing report", "filename", header.Filename, "error", err)
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	response := map[string]interface{}{
		"id":               result.Analysis.ID,
		"model_score":      round2(result.Analysis.Score),
		"extracted_fields": result.Analysis.Fields,
		"subscriptions":    result.Analysis.Subscriptions,
	}
	if result.Advice != nil {
		response["advice"] = result.Advice
	}
	if result.AdviceError != "" {
		response["advice_error"] = result.AdviceError
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleListAnalyses returns a list of all analyses
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	analyses, err := s.service.ListAnalyses()
	if err != nil {
		slog.Error("Error listing analyses", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(analyses); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleGetAnalysis returns a single analysis
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Analysis ID required", http.StatusBadRequest)
		return
	}
	analysis, err := s.service.GetAnalysis(id)
	if err != nil {
		corsError(w, "Analysis not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(analysis); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleGetAnalysisDocument returns the staged document for an analysis
func (s *Server) handleGetAnalysisDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Analysis ID required", http.StatusBadRequest)
		return
	}
	data, contentType, err := s.service.GetAnalysisDocument(id)
	if err != nil {
		corsError(w, "Document not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}

// handleDeleteAnalysis deletes an analysis
func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Analysis ID required", http.StatusBadRequest)
		return
	}
	if err := s.service.DeleteAnalysis(id); err != nil {
		corsError(w, "Error deleting analysis", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
