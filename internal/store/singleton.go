package store

import (
	"context"
	"net/http"

	"github.com/rogersnm/dolphin/internal/api"
	"github.com/rogersnm/dolphin/internal/codec"
	"github.com/rogersnm/dolphin/internal/model"
)

// SingletonResource describes a resource with exactly one record and
// dedicated endpoints for reading, saving and deleting it.
type SingletonResource struct {
	Name       string
	Path       string
	SavePath   string
	DeletePath string
}

// Singleton caches a single record. The record lives in State.Selected;
// State.List is unused.
type Singleton[T Entity[T], F any] struct {
	core[T]
	client Sender
	res    SingletonResource
}

func NewSingleton[T Entity[T], F any](client Sender, res SingletonResource, opts ...Option) *Singleton[T, F] {
	s := &Singleton[T, F]{client: client, res: res}
	s.options = buildOptions(opts)
	return s
}

// Current returns a copy of the cached record, or nil before a successful
// Fetch or Save.
func (s *Singleton[T, F]) Current() *T {
	return s.State().Selected
}

func (s *Singleton[T, F]) Fetch(ctx context.Context) (T, error) {
	var zero T
	s.begin()
	resp, err := s.client.Send(ctx, api.Request{Method: http.MethodGet, Path: s.res.Path})
	if err != nil {
		return zero, s.fail(failureMessage(opLoad, s.res.Name, err), err)
	}
	v, err := codec.DecodeOne[T](resp.Body)
	if err != nil {
		return zero, s.fail(failureMessage(opLoad, s.res.Name, err), err)
	}
	s.set(&v)
	return v, nil
}

// Save always posts multipart form data, with or without a file.
func (s *Singleton[T, F]) Save(ctx context.Context, d model.Draft[F]) (T, error) {
	var zero T
	s.begin()
	var (
		body codec.Body
		err  error
	)
	if d.Image.IsUpload() {
		body, err = codec.Encode(d.Fields, d.Image, codec.Options{})
	} else {
		body, err = codec.Form(d.Fields)
	}
	if err != nil {
		return zero, s.fail(failureMessage(opSave, s.res.Name, err), err)
	}
	resp, err := s.client.Send(ctx, api.Request{Method: http.MethodPost, Path: s.res.SavePath, Body: body})
	if err != nil {
		return zero, s.fail(failureMessage(opSave, s.res.Name, err), err)
	}
	v, err := codec.DecodeOne[T](resp.Body)
	if err != nil {
		return zero, s.fail(failureMessage(opSave, s.res.Name, err), err)
	}
	v = bustImage(v, s.now().UnixMilli())
	s.set(&v)
	s.notify.Success(successMessage(opSave, s.res.Name))
	return v, nil
}

func (s *Singleton[T, F]) Delete(ctx context.Context) error {
	s.begin()
	if _, err := s.client.Send(ctx, api.Request{Method: http.MethodDelete, Path: s.res.DeletePath}); err != nil {
		return s.fail(failureMessage(opDelete, s.res.Name, err), err)
	}
	s.set(nil)
	s.notify.Success(successMessage(opDelete, s.res.Name))
	return nil
}

func (s *Singleton[T, F]) set(v *T) {
	s.update(func(st *State[T]) {
		st.Selected = v
		st.Status = Idle
		st.LastError = ""
	})
}
