package tester

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
)

// fixtureStore is the in-memory items API the engine tests run against. It
// behaves like a minimal well-mannered CRUD backend: numeric ids under the
// "id" key, 400 on a create without the required field, 404 for unknown ids.
type fixtureStore struct {
	mu     sync.Mutex
	nextID int
	items  map[int]map[string]any
}

func newFixtureServer() *httptest.Server {
	s := &fixtureStore{nextID: 1, items: map[int]map[string]any{}}

	r := chi.NewRouter()
	r.Route("/items", func(r chi.Router) {
		r.Get("/", s.list)
		r.Post("/", s.create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.get)
			r.Put("/", s.replace)
			r.Patch("/", s.merge)
			r.Delete("/", s.remove)
		})
	})
	return httptest.NewServer(r)
}

func writeBody(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *fixtureStore) list(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item)
	}
	writeBody(w, http.StatusOK, out)
}

func (s *fixtureStore) create(w http.ResponseWriter, r *http.Request) {
	var data map[string]any
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil || data["name"] == nil {
		writeBody(w, http.StatusBadRequest, map[string]any{"error": "name is required"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data["id"] = s.nextID
	s.items[s.nextID] = data
	s.nextID++
	writeBody(w, http.StatusCreated, data)
}

func (s *fixtureStore) lookup(r *http.Request) (int, map[string]any, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, nil, false
	}
	item, ok := s.items[id]
	return id, item, ok
}

func (s *fixtureStore) get(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, item, ok := s.lookup(r); ok {
		writeBody(w, http.StatusOK, item)
		return
	}
	writeBody(w, http.StatusNotFound, map[string]any{"error": "item not found"})
}

func (s *fixtureStore) replace(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, _, ok := s.lookup(r)
	if !ok {
		writeBody(w, http.StatusNotFound, map[string]any{"error": "item not found"})
		return
	}
	var data map[string]any
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeBody(w, http.StatusBadRequest, map[string]any{"error": "invalid body"})
		return
	}
	data["id"] = id
	s.items[id] = data
	writeBody(w, http.StatusOK, data)
}

func (s *fixtureStore) merge(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, item, ok := s.lookup(r)
	if !ok {
		writeBody(w, http.StatusNotFound, map[string]any{"error": "item not found"})
		return
	}
	var data map[string]any
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeBody(w, http.StatusBadRequest, map[string]any{"error": "invalid body"})
		return
	}
	for k, v := range data {
		if k != "id" {
			item[k] = v
		}
	}
	writeBody(w, http.StatusOK, item)
}

func (s *fixtureStore) remove(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, _, ok := s.lookup(r)
	if !ok {
		writeBody(w, http.StatusNotFound, map[string]any{"error": "item not found"})
		return
	}
	delete(s.items, id)
	writeBody(w, http.StatusOK, map[string]any{"message": "item deleted"})
}
