// Package store keeps a client-side cache of API resources in sync with the
// server. One generic Store is instantiated per resource; Settings use a
// Singleton.
package store

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rogersnm/dolphin/internal/api"
	"github.com/rogersnm/dolphin/internal/codec"
	"github.com/rogersnm/dolphin/internal/model"
)

// Sender performs one API exchange. *api.Client implements it.
type Sender interface {
	Send(ctx context.Context, r api.Request) (*api.Response, error)
}

// Entity is implemented by every cached resource type.
type Entity[T any] interface {
	EntityID() model.ID
	ImageURL() string
	WithImageURL(url string) T
}

// Resource describes one REST collection.
type Resource struct {
	// Singular and Plural name the resource in notifications, e.g.
	// "service" and "services".
	Singular string
	Plural   string
	// Path is the collection path, e.g. "/services".
	Path string
	// Override is the verb sent in _method for multipart updates.
	Override string
}

func (r Resource) itemPath(id model.ID) string {
	return strings.TrimRight(r.Path, "/") + "/" + url.PathEscape(id.String())
}

type Store[T Entity[T], F any] struct {
	core[T]
	client Sender
	res    Resource
}

func New[T Entity[T], F any](client Sender, res Resource, opts ...Option) *Store[T, F] {
	if res.Override == "" {
		res.Override = codec.DefaultOverride
	}
	s := &Store[T, F]{client: client, res: res}
	s.options = buildOptions(opts)
	return s
}

func (s *Store[T, F]) Resource() Resource { return s.res }

// List fetches the collection and replaces the cached list. On failure the
// previous list is kept.
func (s *Store[T, F]) List(ctx context.Context) ([]T, error) {
	s.begin()
	resp, err := s.client.Send(ctx, api.Request{Method: http.MethodGet, Path: s.res.Path})
	if err != nil {
		return nil, s.fail(failureMessage(opLoad, s.res.Plural, err), err)
	}
	list, err := codec.DecodeList[T](resp.Body)
	if err != nil {
		return nil, s.fail(failureMessage(opLoad, s.res.Plural, err), err)
	}
	list = dedupe(list)
	s.update(func(st *State[T]) {
		st.List = list
		st.Status = Idle
		st.LastError = ""
	})
	return append([]T(nil), list...), nil
}

// Get fetches one entity and selects it. On failure the selection is kept.
func (s *Store[T, F]) Get(ctx context.Context, id model.ID) (T, error) {
	s.begin()
	v, err := s.fetch(ctx, id)
	if err != nil {
		var zero T
		return zero, s.fail(failureMessage(opLoad, s.res.Singular, err), err)
	}
	s.update(func(st *State[T]) {
		st.Selected = &v
		st.Status = Idle
		st.LastError = ""
	})
	return v, nil
}

func (s *Store[T, F]) fetch(ctx context.Context, id model.ID) (T, error) {
	resp, err := s.client.Send(ctx, api.Request{Method: http.MethodGet, Path: s.res.itemPath(id)})
	if err != nil {
		var zero T
		return zero, err
	}
	return codec.DecodeOne[T](resp.Body)
}

// Create submits a new entity, puts it at the front of the list and
// selects it.
func (s *Store[T, F]) Create(ctx context.Context, d model.Draft[F]) (T, error) {
	var zero T
	s.begin()
	body, err := codec.Encode(d.Fields, d.Image, codec.Options{})
	if err != nil {
		return zero, s.fail(failureMessage(opCreate, s.res.Singular, err), err)
	}
	resp, err := s.client.Send(ctx, api.Request{Method: http.MethodPost, Path: s.res.Path, Body: body})
	if err != nil {
		return zero, s.fail(failureMessage(opCreate, s.res.Singular, err), err)
	}
	created, err := codec.DecodeOne[T](resp.Body)
	if err != nil {
		return zero, s.fail(failureMessage(opCreate, s.res.Singular, err), err)
	}
	created = bustImage(created, s.now().UnixMilli())

	s.update(func(st *State[T]) {
		list := make([]T, 0, len(st.List)+1)
		list = append(list, created)
		for _, v := range st.List {
			if v.EntityID() != created.EntityID() {
				list = append(list, v)
			}
		}
		st.List = list
		st.Selected = &created
		st.Status = Idle
		st.LastError = ""
	})
	s.notify.Success(successMessage(opCreate, s.res.Singular))
	return created, nil
}

// Update submits a change to id. JSON drafts are sent with PATCH; drafts
// carrying a new image are sent as a multipart POST with the resource's
// override verb. When the response drops an image URL the client already
// knew about, or has no id, the entity is fetched once more and that
// result is used instead. If no entity with an id comes back at all, the
// cache is left as it was and the cached entity, if any, is returned.
func (s *Store[T, F]) Update(ctx context.Context, id model.ID, d model.Draft[F]) (T, error) {
	var zero T
	s.begin()
	body, err := codec.Encode(d.Fields, d.Image, codec.Options{ForUpdate: true, Override: s.res.Override})
	if err != nil {
		return zero, s.fail(failureMessage(opUpdate, s.res.Singular, err), err)
	}
	method := http.MethodPatch
	if body.Kind == codec.KindMultipart {
		method = http.MethodPost
	}
	resp, err := s.client.Send(ctx, api.Request{Method: method, Path: s.res.itemPath(id), Body: body})
	if err != nil {
		return zero, s.fail(failureMessage(opUpdate, s.res.Singular, err), err)
	}
	updated, err := codec.DecodeOne[T](resp.Body)
	if err != nil {
		return zero, s.fail(failureMessage(opUpdate, s.res.Singular, err), err)
	}

	if updated.EntityID() == "" || (updated.ImageURL() == "" && s.hadImage(id, d.Image)) {
		if fresh, err := s.fetch(ctx, id); err == nil {
			updated = fresh
		}
	}
	if updated.EntityID() == "" {
		cached, _ := s.lookup(id)
		s.update(func(st *State[T]) {
			st.Status = Idle
			st.LastError = ""
		})
		s.notify.Success(successMessage(opUpdate, s.res.Singular))
		return cached, nil
	}
	updated = bustImage(updated, s.now().UnixMilli())

	s.update(func(st *State[T]) {
		st.List = replace(st.List, id, updated)
		if st.Selected != nil && (*st.Selected).EntityID() == id {
			st.Selected = &updated
		}
		st.Status = Idle
		st.LastError = ""
	})
	s.notify.Success(successMessage(opUpdate, s.res.Singular))
	return updated, nil
}

func (s *Store[T, F]) hadImage(id model.ID, img model.Image) bool {
	if img.URL != "" || img.IsUpload() {
		return true
	}
	st := s.State()
	if st.Selected != nil && (*st.Selected).EntityID() == id && (*st.Selected).ImageURL() != "" {
		return true
	}
	for _, v := range st.List {
		if v.EntityID() == id {
			return v.ImageURL() != ""
		}
	}
	return false
}

// lookup returns the cached entity for id, preferring the selection.
func (s *Store[T, F]) lookup(id model.ID) (T, bool) {
	st := s.State()
	if st.Selected != nil && (*st.Selected).EntityID() == id {
		return *st.Selected, true
	}
	for _, v := range st.List {
		if v.EntityID() == id {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Delete removes id on the server and from the cache, clearing the
// selection if it was id.
func (s *Store[T, F]) Delete(ctx context.Context, id model.ID) error {
	s.begin()
	if _, err := s.client.Send(ctx, api.Request{Method: http.MethodDelete, Path: s.res.itemPath(id)}); err != nil {
		return s.fail(failureMessage(opDelete, s.res.Singular, err), err)
	}
	s.update(func(st *State[T]) {
		list := make([]T, 0, len(st.List))
		for _, v := range st.List {
			if v.EntityID() != id {
				list = append(list, v)
			}
		}
		st.List = list
		if st.Selected != nil && (*st.Selected).EntityID() == id {
			st.Selected = nil
		}
		st.Status = Idle
		st.LastError = ""
	})
	s.notify.Success(successMessage(opDelete, s.res.Singular))
	return nil
}

func (s *Store[T, F]) ClearSelected() {
	s.update(func(st *State[T]) { st.Selected = nil })
}

// bustImage appends a t=<millis> query parameter so a replaced image at the
// same URL is not served from cache.
func bustImage[T Entity[T]](v T, millis int64) T {
	u := v.ImageURL()
	if u == "" {
		return v
	}
	sep := "?"
	if strings.Contains(u, "?") {
		sep = "&"
	}
	return v.WithImageURL(fmt.Sprintf("%s%st=%d", u, sep, millis))
}

// replace swaps the first element with the given id for v and drops any
// later duplicates. A list without id is returned unchanged.
func replace[T Entity[T]](list []T, id model.ID, v T) []T {
	out := make([]T, 0, len(list))
	found := false
	for _, e := range list {
		if e.EntityID() != id {
			out = append(out, e)
			continue
		}
		if !found {
			out = append(out, v)
			found = true
		}
	}
	return out
}

// dedupe keeps one entry per id: the last one in list, at the position of
// the first.
func dedupe[T Entity[T]](list []T) []T {
	at := make(map[model.ID]int, len(list))
	out := make([]T, 0, len(list))
	for _, v := range list {
		if i, ok := at[v.EntityID()]; ok {
			out[i] = v
			continue
		}
		at[v.EntityID()] = len(out)
		out = append(out, v)
	}
	return out
}
