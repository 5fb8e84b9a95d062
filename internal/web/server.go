package web

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	"github.com/yuzeguitarist/qrgen/internal/qr"
	"go.uber.org/zap"
)

type Server struct {
	Log         *zap.Logger
	CORSOrigins []string
	Now         func() time.Time

	pages   *template.Template
	openAPI []byte
}

func NewServer(log *zap.Logger, corsOrigins []string) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	spec, err := openAPIYAML()
	if err != nil {
		// the document is built from constants; failure is a programming error
		panic(err)
	}
	return &Server{
		Log:         log,
		CORSOrigins: corsOrigins,
		Now:         time.Now,
		pages:       template.Must(template.ParseFS(FS, "templates/*.html")),
		openAPI:     spec,
	}
}

func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", s.index).Methods(http.MethodGet)
	r.HandleFunc("/qr", s.renderQR).Methods(http.MethodGet)
	r.HandleFunc("/qr/params", s.qrParams).Methods(http.MethodGet)
	r.HandleFunc("/docs", s.docs).Methods(http.MethodGet)
	r.HandleFunc("/openapi.yaml", s.openAPISpec).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.healthz).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	origins := s.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	var h http.Handler = r
	h = cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{"Content-Disposition", requestIDHeader},
		MaxAge:         300,
	})(h)
	h = s.recoverer(h)
	h = s.accessLog(h)
	return s.requestID(h)
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, "index.html")
}

func (s *Server) docs(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, "docs.html")
}

type pageData struct {
	Params  qr.Params
	Formats []qr.Format
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, name string) {
	w.Header().Set("content-type", "text/html; charset=utf-8")
	data := pageData{Params: qr.Describe(), Formats: qr.Formats}
	if err := s.pages.ExecuteTemplate(w, name, data); err != nil {
		s.reqLog(r).Error("render page", zap.String("page", name), zap.Error(err))
	}
}

func (s *Server) renderQR(w http.ResponseWriter, r *http.Request) {
	req, err := parseQRRequest(r.URL.Query())
	if err != nil {
		var ve *qr.ValidationError
		if errors.As(err, &ve) {
			respondWithValidation(w, ve)
			return
		}
		s.reqLog(r).Error("parse qr request", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "internal error")
		return
	}

	img, err := qr.Render(req.Options)
	if err != nil {
		s.reqLog(r).Error("render qr", zap.Error(err), zap.String("format", string(req.Options.Format)))
		respondWithError(w, http.StatusInternalServerError, "failed to render qr code: "+err.Error())
		return
	}
	defer img.Close()

	h := w.Header()
	h.Set("content-type", img.MediaType())
	h.Set("content-length", strconv.Itoa(img.Len()))
	if req.Download {
		h.Set("content-disposition", fmt.Sprintf("attachment; filename=qr_%d.%s", s.Now().Unix(), img.Format.Ext()))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := img.WriteTo(w); err != nil {
		s.reqLog(r).Debug("write qr body", zap.Error(err))
	}
}

func (s *Server) qrParams(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, qr.Describe())
}

func (s *Server) openAPISpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("content-type", "application/yaml")
	_, _ = w.Write(s.openAPI)
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
