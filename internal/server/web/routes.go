package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"
)

// Routes builds the HTTP handler tree.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(accessLog(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.homePage)
	r.Get("/manage", s.managePage)
	r.Get("/display", s.displayPage)
	r.Get("/records/{id}/signature", s.signatureImage)
	r.Get("/healthz", s.health)

	r.Group(func(r chi.Router) {
		s.limitWrites(r)

		r.Post("/records", s.createRecord)
		r.Post("/manage/update", s.updateRecord)
		r.Post("/manage/delete", s.deleteRecord)
	})

	r.Route("/api/records", func(r chi.Router) {
		r.Get("/", s.apiList)
		r.Get("/{id}", s.apiGet)

		r.Group(func(r chi.Router) {
			s.limitWrites(r)

			r.Post("/", s.apiCreate)
			r.Put("/{id}", s.apiUpdate)
			r.Delete("/{id}", s.apiDelete)
		})
	})

	return r
}

func (s *Server) limitWrites(r chi.Router) {
	if s.opts.RateLimit > 0 {
		r.Use(httprate.LimitByIP(s.opts.RateLimit, time.Minute))
	}
}
