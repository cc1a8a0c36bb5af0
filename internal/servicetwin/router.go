package servicetwin

import (
	"net/http"

	"github.com/sendrequest/api-contract-tests/framework"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	CompaniesPath = "/api/companies"
	UsersPath     = "/api/users"
)

type handler struct {
	store  *Store
	logger framework.Logger
	faults Faults
}

// newRouter mounts the twin's routes. Both "/api/users" and "/api/users/" reach the same handler.
func newRouter(store *Store, logger framework.Logger, faults Faults) http.Handler {
	h := &handler{store: store, logger: logger, faults: faults}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not Found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"detail": "Method Not Allowed"})
	})

	r.Route(CompaniesPath, func(r chi.Router) {
		r.Get("/", h.listCompanies)
		r.Get("/{companyID}", h.getCompany)
	})
	r.Route(UsersPath, func(r chi.Router) {
		r.Get("/", h.listUsers)
		r.Post("/", h.createUser)
		r.Get("/{userID}", h.getUser)
		r.Delete("/{userID}", h.deleteUser)
	})
	return r
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Printf("%s %s -> %d", r.Method, r.URL.RequestURI(), ww.Status())
	})
}

// redirectToHTTPS answers every request with a permanent redirect to the same path on the given
// HTTPS origin.
func redirectToHTTPS(secureOrigin string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		target := secureOrigin + r.URL.Path
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		w.Header().Set("Location", target)
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusMovedPermanently)
	})
}
