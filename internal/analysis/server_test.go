package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/credlens/credlens/internal/advising"
)

func multipartReport(fieldName, filename string, content []byte) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, filename)
	Expect(err).NotTo(HaveOccurred())
	_, err = part.Write(content)
	Expect(err).NotTo(HaveOccurred())
	Expect(writer.Close()).To(Succeed())
	return body, writer.FormDataContentType()
}

var _ = Describe("Server", func() {
	var (
		db        *mockDB
		storage   *mockStorage
		converter *mockConverter
		advisor   *mockAdvisor
		service   *Service
		server    *Server
		basicAuth BasicAuth
		recorder  *httptest.ResponseRecorder
	)

	BeforeEach(func() {
		db = newMockDB()
		storage = newMockStorage()
		converter = &mockConverter{
			text: "Credit Utilization: 42.5%\nOpen Accounts: 4\n",
		}
		advisor = &mockAdvisor{advice: &advising.Advice{Summary: "Solid profile"}}
		basicAuth = BasicAuth{}
		recorder = httptest.NewRecorder()
	})

	JustBeforeEach(func() {
		service = NewServiceWithDeps(db, storage, converter, advisor, baselineModel(), nil,
			&fixedIDGenerator{id: "req-1"}, &fixedTimeSource{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)})
		server = NewServer(service, basicAuth)
	})

	Describe("POST /api/predict", func() {
		It("returns the predicted score", func() {
			body := `{"credit_utilization": 42.5, "open_accounts": 4}`
			req := httptest.NewRequest("POST", "/api/predict", bytes.NewBufferString(body))
			server.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			var resp map[string]float64
			Expect(json.Unmarshal(recorder.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["predicted_score"]).To(Equal(600.0))
		})

		It("rejects a malformed body", func() {
			req := httptest.NewRequest("POST", "/api/predict", bytes.NewBufferString("not json"))
			server.ServeHTTP(recorder, req)
			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("POST /api/analyze", func() {
		It("analyzes an uploaded report", func() {
			body, contentType := multipartReport("report", "report.pdf", []byte("pdf-bytes"))
			req := httptest.NewRequest("POST", "/api/analyze", body)
			req.Header.Set("Content-Type", contentType)
			server.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			var resp map[string]interface{}
			Expect(json.Unmarshal(recorder.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["model_score"]).To(Equal(600.0))
			Expect(resp["id"]).To(Equal("req-1"))
			Expect(resp).To(HaveKey("extracted_fields"))
			Expect(resp).To(HaveKey("advice"))
		})

		It("rejects a request with no report part", func() {
			body, contentType := multipartReport("wrong-field", "report.pdf", []byte("pdf-bytes"))
			req := httptest.NewRequest("POST", "/api/analyze", body)
			req.Header.Set("Content-Type", contentType)
			server.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			var resp map[string]string
			Expect(json.Unmarshal(recorder.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["error"]).To(Equal("No report uploaded."))
		})

		When("the advisor fails", func() {
			BeforeEach(func() {
				advisor.err = errors.New("upstream quota exceeded")
			})

			It("still returns the score with an advice_error field", func() {
				body, contentType := multipartReport("report", "report.pdf", []byte("pdf-bytes"))
				req := httptest.NewRequest("POST", "/api/analyze", body)
				req.Header.Set("Content-Type", contentType)
				server.ServeHTTP(recorder, req)

				Expect(recorder.Code).To(Equal(http.StatusOK))
				var resp map[string]interface{}
				Expect(json.Unmarshal(recorder.Body.Bytes(), &resp)).To(Succeed())
				Expect(resp["model_score"]).To(Equal(600.0))
				Expect(resp).To(HaveKey("advice_error"))
				Expect(resp).NotTo(HaveKey("advice"))
			})
		})
	})

	Describe("analysis CRUD endpoints", func() {
		JustBeforeEach(func() {
			_, err := service.AnalyzeDocument("report.pdf", []byte("pdf-bytes"), "application/pdf")
			Expect(err).NotTo(HaveOccurred())
		})

		It("lists analyses", func() {
			req := httptest.NewRequest("GET", "/api/analyses", nil)
			server.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			var analyses []*Analysis
			Expect(json.Unmarshal(recorder.Body.Bytes(), &analyses)).To(Succeed())
			Expect(analyses).To(HaveLen(1))
			Expect(analyses[0].ID).To(Equal("req-1"))
		})

		It("gets one analysis", func() {
			req := httptest.NewRequest("GET", "/api/analyses/req-1", nil)
			server.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			var analysis Analysis
			Expect(json.Unmarshal(recorder.Body.Bytes(), &analysis)).To(Succeed())
			Expect(analysis.Score).To(Equal(600.0))
		})

		It("returns 404 for an unknown analysis", func() {
			req := httptest.NewRequest("GET", "/api/analyses/missing", nil)
			server.ServeHTTP(recorder, req)
			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})

		It("serves the staged document", func() {
			req := httptest.NewRequest("GET", "/api/analyses/req-1/document", nil)
			server.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.Bytes()).To(Equal([]byte("pdf-bytes")))
			Expect(recorder.Header().Get("Content-Type")).To(Equal("application/pdf"))
		})

		It("deletes an analysis", func() {
			req := httptest.NewRequest("DELETE", "/api/analyses/req-1", nil)
			server.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusNoContent))
			Expect(db.analyses).To(BeEmpty())
		})
	})

	Describe("basic auth", func() {
		BeforeEach(func() {
			basicAuth = BasicAuth{Username: "analyst", Password: "secret"}
		})

		It("rejects unauthenticated requests", func() {
			req := httptest.NewRequest("GET", "/api/analyses", nil)
			server.ServeHTTP(recorder, req)
			Expect(recorder.Code).To(Equal(http.StatusUnauthorized))
		})

		It("accepts valid credentials", func() {
			req := httptest.NewRequest("GET", "/api/analyses", nil)
			req.SetBasicAuth("analyst", "secret")
			server.ServeHTTP(recorder, req)
			Expect(recorder.Code).To(Equal(http.StatusOK))
		})

		It("rejects wrong credentials", func() {
			req := httptest.NewRequest("GET", "/api/analyses", nil)
			req.SetBasicAuth("analyst", "wrong")
			server.ServeHTTP(recorder, req)
			Expect(recorder.Code).To(Equal(http.StatusUnauthorized))
		})
	})
})
