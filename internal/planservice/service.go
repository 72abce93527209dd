package planservice

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// PathPrefix is the prefix under which every route of the service is
// mounted.
const PathPrefix = "/api/v1"

// Service is the HTTP plan service: it authenticates users and lets them
// create blocks-worlds and advance them one utterance at a time.
type Service struct {
	store     *Store
	jwtSecret []byte
	router    chi.Router
}

// New opens the sqlite store at dbFile and builds a Service ready to be
// served. jwtSecret signs and validates issued tokens; it should be at
// least 32 bytes.
func New(dbFile string, jwtSecret []byte) (*Service, error) {
	store, err := OpenStore(dbFile)
	if err != nil {
		return nil, err
	}

	svc := &Service{store: store, jwtSecret: jwtSecret}
	svc.router = svc.routes()
	return svc, nil
}

func (svc *Service) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(logRequests)

	r.Route(PathPrefix, func(r chi.Router) {
		r.Post("/login", svc.handleLogin)
		r.Post("/worlds", svc.requireAuth(svc.handleCreateWorld))
		r.Get("/sessions/{id}", svc.requireAuth(svc.handleGetSession))
		r.Post("/sessions/{id}/commands", svc.requireAuth(svc.handlePostCommand))
	})

	return r
}

// ServeHTTP lets Service be used directly as an http.Handler.
func (svc *Service) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	svc.router.ServeHTTP(w, req)
}

// CreateUser registers a new account that can log in and own worlds.
func (svc *Service) CreateUser(ctx context.Context, username, password string) (User, error) {
	return svc.store.CreateUser(ctx, username, password)
}

// Close releases the service's underlying store.
func (svc *Service) Close() error {
	return svc.store.Close()
}

// ListenAndServe starts the service listening on addr.
func (svc *Service) ListenAndServe(addr string) error {
	log.Printf("INFO  Plan service listening on %s", addr)
	return http.ListenAndServe(addr, svc)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		log.Printf("DEBUG %s %s", req.Method, req.URL.Path)
		next.ServeHTTP(w, req)
	})
}
