package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/mux"
)

// fakeAPI is a minimal in-memory content API for cmd-level tests.
type fakeAPI struct {
	mu        sync.Mutex
	items     map[string][]map[string]any
	settings  map[string]any
	seq       int
	token     string
	requests  []string
	overrides []string
}

var contentKeys = map[string][]string{
	"services": {"title_en", "title_ar", "description_en", "description_ar"},
	"features": {"title_en", "title_ar", "description_en", "description_ar"},
	"faqs":     {"question_en", "question_ar", "answer_en", "answer_ar"},
	"reviews":  {"name_en", "name_ar", "description_en", "description_ar"},
}

var settingsKeys = []string{
	"site_name_en", "site_name_ar", "email", "phone", "address_en", "address_ar",
	"facebook", "instagram", "twitter", "linkedin", "whatsapp",
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{items: make(map[string][]map[string]any)}
}

func (f *fakeAPI) router() http.Handler {
	r := mux.NewRouter()
	r.Use(f.record, f.auth)
	r.HandleFunc("/settings", f.getSettings).Methods("GET")
	r.HandleFunc("/settings/save", f.saveSettings).Methods("POST")
	r.HandleFunc("/settings/delete", f.deleteSettings).Methods("DELETE")
	r.HandleFunc("/{resource}", f.list).Methods("GET")
	r.HandleFunc("/{resource}", f.create).Methods("POST")
	r.HandleFunc("/{resource}/{id}", f.get).Methods("GET")
	r.HandleFunc("/{resource}/{id}", f.update).Methods("PATCH", "POST")
	r.HandleFunc("/{resource}/{id}", f.remove).Methods("DELETE")
	return r
}

func (f *fakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, r.Method+" "+r.URL.Path)
		f.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (f *fakeAPI) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		want := f.token
		f.mu.Unlock()
		if want != "" && r.Header.Get("Authorization") != "Bearer "+want {
			writeJSON(w, 401, map[string]any{"message": "Unauthenticated."})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func notFound(w http.ResponseWriter, what string) {
	writeJSON(w, 404, map[string]any{"message": what + " not found"})
}

// seed stores an item and returns its id.
func (f *fakeAPI) seed(resource string, item map[string]any) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	item["id"] = f.seq
	item["created_at"] = "2026-01-02 03:04:05"
	item["updated_at"] = "2026-01-02T03:04:05.000000Z"
	f.items[resource] = append([]map[string]any{item}, f.items[resource]...)
	return strconv.Itoa(f.seq)
}

func (f *fakeAPI) find(resource, id string) map[string]any {
	for _, it := range f.items[resource] {
		if fmt.Sprint(it["id"]) == id {
			return it
		}
	}
	return nil
}

// readFields copies the known keys from a JSON or multipart body into dst.
func readFields(r *http.Request, keys []string, dst map[string]any) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			return err
		}
		for _, k := range keys {
			if v, ok := r.MultipartForm.Value[k]; ok {
				dst[k] = v[0]
			}
		}
		if _, hdr, err := r.FormFile("image"); err == nil {
			dst["image"] = "https://cdn.test/" + hdr.Filename
		}
		return nil
	}
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return err
	}
	if _, ok := body["image"]; ok {
		return fmt.Errorf("image must not be sent as JSON")
	}
	for _, k := range keys {
		if v, ok := body[k]; ok {
			dst[k] = v
		}
	}
	return nil
}

// Responses use a different envelope per resource.
func envelope(resource string, v any) any {
	switch resource {
	case "faqs":
		return v
	case "reviews":
		return map[string]any{"data": map[string]any{"data": v}}
	default:
		return map[string]any{"data": v}
	}
}

func (f *fakeAPI) list(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := mux.Vars(r)["resource"]
	if _, ok := contentKeys[res]; !ok {
		notFound(w, res)
		return
	}
	list := f.items[res]
	if list == nil {
		list = []map[string]any{}
	}
	writeJSON(w, 200, envelope(res, list))
}

func (f *fakeAPI) get(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := mux.Vars(r)
	it := f.find(v["resource"], v["id"])
	if it == nil {
		notFound(w, v["resource"])
		return
	}
	writeJSON(w, 200, envelope(v["resource"], it))
}

func (f *fakeAPI) create(w http.ResponseWriter, r *http.Request) {
	res := mux.Vars(r)["resource"]
	keys, ok := contentKeys[res]
	if !ok {
		notFound(w, res)
		return
	}
	item := map[string]any{}
	if err := readFields(r, keys, item); err != nil {
		writeJSON(w, 422, map[string]any{"message": err.Error()})
		return
	}
	id := f.seed(res, item)
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, 201, envelope(res, f.find(res, id)))
}

func (f *fakeAPI) update(w http.ResponseWriter, r *http.Request) {
	v := mux.Vars(r)
	keys, ok := contentKeys[v["resource"]]
	if !ok {
		notFound(w, v["resource"])
		return
	}
	patch := map[string]any{}
	if err := readFields(r, keys, patch); err != nil {
		writeJSON(w, 422, map[string]any{"message": err.Error()})
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.Method == "POST" {
		f.overrides = append(f.overrides, r.FormValue("_method"))
	}
	it := f.find(v["resource"], v["id"])
	if it == nil {
		notFound(w, v["resource"])
		return
	}
	for k, val := range patch {
		it[k] = val
	}
	writeJSON(w, 200, envelope(v["resource"], it))
}

func (f *fakeAPI) remove(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := mux.Vars(r)
	list := f.items[v["resource"]]
	for i, it := range list {
		if fmt.Sprint(it["id"]) == v["id"] {
			f.items[v["resource"]] = append(list[:i:i], list[i+1:]...)
			writeJSON(w, 200, map[string]any{"message": "deleted"})
			return
		}
	}
	notFound(w, v["resource"])
}

func (f *fakeAPI) getSettings(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.settings == nil {
		notFound(w, "settings")
		return
	}
	writeJSON(w, 200, f.settings)
}

func (f *fakeAPI) saveSettings(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		writeJSON(w, 415, map[string]any{"message": "settings must be form data"})
		return
	}
	s := map[string]any{}
	if err := readFields(r, settingsKeys, s); err != nil {
		writeJSON(w, 422, map[string]any{"message": err.Error()})
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s["id"] = 1
	f.settings = s
	writeJSON(w, 200, map[string]any{"data": s})
}

func (f *fakeAPI) deleteSettings(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings = nil
	w.WriteHeader(204)
}

func (f *fakeAPI) count(resource string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items[resource])
}

func (f *fakeAPI) item(resource, id string) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	it := f.find(resource, id)
	if it == nil {
		return nil
	}
	cp := make(map[string]any, len(it))
	for k, v := range it {
		cp[k] = v
	}
	return cp
}

func (f *fakeAPI) requestLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}
