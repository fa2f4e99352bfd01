// Package service provides HTTP access to the models of a data
// container and their relationships.
//
//	GET  <prefix>/model/<provider>/<id>            the model
//	GET  <prefix>/model/<provider>/<id>/parent     its parent (null for roots)
//	GET  <prefix>/model/<provider>/<id>/siblings   its siblings ordered by the sorting property
//	GET  <prefix>/model/<provider>/<id>/children   its direct children (query parameter provider restricts)
//	GET  <prefix>/model/<provider>/<id>/ancestors  its ancestors, starting with the parent
//	POST <prefix>/renumber/<provider>/<id>         renumber the siblings of the model
//	POST <prefix>/paste                            move models, see PasteRequest
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/mandelsoft/datacontainer/pkg/collector"
	"github.com/mandelsoft/datacontainer/pkg/locks"
	"github.com/mandelsoft/datacontainer/pkg/model"
	"github.com/mandelsoft/datacontainer/pkg/paste"
	"github.com/mandelsoft/datacontainer/pkg/provider"
	"github.com/mandelsoft/datacontainer/pkg/server"
)

type Access struct {
	collector *collector.Collector
	paste     *paste.Controller
	prefix    string
	// rearrangements of the models of a provider are serialized
	locks *locks.ElementLocks[string]
	queue Queue
}

// Queue accepts serialized model ids whose siblings should be
// renumbered in the background.
type Queue interface {
	Enqueue(key string)
}

func New(c *collector.Collector, p *paste.Controller, prefix string) *Access {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &Access{
		collector: c,
		paste:     p,
		prefix:    prefix,
		locks:     locks.NewElementLocks[string](),
	}
}

// SetRenumberQueue sets a queue receiving the models whose
// paste shifted existing siblings. The queue should finally call
// RenumberSiblings.
func (a *Access) SetRenumberQueue(q Queue) *Access {
	a.queue = q
	return a
}

// RenumberSiblings renumbers the siblings of the model given by
// its serialized id. The provider is locked against concurrent
// rearrangements.
func (a *Access) RenumberSiblings(ctx context.Context, key string) error {
	id, err := model.ParseModelId(key)
	if err != nil {
		return err
	}
	if err := a.locks.Lock(ctx, id.GetProviderName()); err != nil {
		return err
	}
	defer a.locks.Unlock(id.GetProviderName())

	m, err := a.collector.GetModelById(id)
	if err != nil {
		return err
	}
	_, err = a.paste.RenumberSiblingsOf(m)
	return err
}

func (a *Access) RegisterHandler(srv *server.Server) {
	srv.Handle(a.prefix, a)
}

func (a *Access) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	log.Info("{{method}} {{url}}", "method", req.Method, "url", req.URL)

	path := strings.TrimPrefix(req.URL.Path, a.prefix)
	comps := strings.Split(strings.Trim(path, "/"), "/")

	var result any
	var err error
	status := http.StatusOK

	switch {
	case comps[0] == "model" && (len(comps) == 3 || len(comps) == 4):
		if status, err = checkMethod(req, http.MethodGet); err == nil {
			result, err = a.get(req, comps[1], comps[2], comps[3:]...)
		}
	case comps[0] == "renumber" && len(comps) == 3:
		if status, err = checkMethod(req, http.MethodPost); err == nil {
			result, err = a.renumber(req, comps[1], comps[2])
		}
	case comps[0] == "paste" && len(comps) == 1:
		if status, err = checkMethod(req, http.MethodPost); err == nil {
			result, err = a.pasteModels(req)
		}
	default:
		status = http.StatusNotFound
		err = model.InvalidArgument("invalid path %q", req.URL.Path)
	}

	if err != nil {
		if status == http.StatusOK {
			status = StatusFor(err)
		}
		log.Debug("request failed: {{error}}", "error", err)
		result = &Error{err.Error()}
	}
	data, err := json.Marshal(result)
	if err != nil {
		status = http.StatusInternalServerError
		data, _ = json.Marshal(&Error{err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func (a *Access) get(req *http.Request, providerName, id string, sub ...string) (any, error) {
	m, err := a.collector.GetModel(id, providerName)
	if err != nil {
		return nil, err
	}
	if len(sub) == 0 {
		return m, nil
	}
	switch sub[0] {
	case "parent":
		p, err := a.collector.ParentOf(m)
		if p == nil || err != nil {
			return nil, err
		}
		return p, nil
	case "siblings":
		return items(a.collector.CollectSiblingsOf(m, a.paste.SortingProperty()))
	case "children":
		return items(a.collector.CollectChildrenOf(m, req.URL.Query()["provider"]...))
	case "ancestors":
		return items(a.collector.AssembleParentsFor(m))
	default:
		return nil, model.InvalidArgument("unknown relation %q", sub[0])
	}
}

func (a *Access) renumber(req *http.Request, providerName, id string) (any, error) {
	if err := a.locks.Lock(req.Context(), providerName); err != nil {
		return nil, err
	}
	defer a.locks.Unlock(providerName)

	m, err := a.collector.GetModel(id, providerName)
	if err != nil {
		return nil, err
	}
	return items(a.paste.RenumberSiblingsOf(m))
}

func (a *Access) pasteModels(req *http.Request) (any, error) {
	t := req.Header.Get("Content-Type")
	if t != "" && t != "application/json" {
		return nil, model.InvalidArgument("unsupported content type %q", t)
	}
	data, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, err
	}
	var spec PasteRequest
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, model.InvalidArgument("invalid paste request: %s", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	first, err := model.ParseModelId(spec.Models[0])
	if err != nil {
		return nil, err
	}
	if err := a.locks.Lock(req.Context(), first.GetProviderName()); err != nil {
		return nil, err
	}
	defer a.locks.Unlock(first.GetProviderName())

	models := model.NewCollection()
	for _, id := range spec.Models {
		m, err := a.collector.GetModel(id)
		if err != nil {
			return nil, err
		}
		models.Push(m)
	}

	var saved *model.Collection
	switch {
	case spec.Root:
		saved, err = a.paste.IntoRoot(models)
	case spec.Into != "":
		var parent *model.Model
		parent, err = a.collector.GetModel(spec.Into)
		if err == nil {
			saved, err = a.paste.Into(models, parent)
		}
	default:
		var anchor *model.Model
		anchor, err = a.collector.GetModel(spec.After)
		if err == nil {
			saved, err = a.paste.After(models, anchor)
		}
	}
	if err != nil {
		return nil, err
	}
	if a.queue != nil && saved.Len() > models.Len() {
		log.Debug("siblings of {{model}} shifted", "model", models.First())
		a.queue.Enqueue(models.First().ModelId().Serialize())
	}
	return items(saved, nil)
}

// StatusFor maps the error kinds of the data container to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, provider.ErrNotExist), errors.Is(err, provider.ErrUnknownProvider):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func checkMethod(req *http.Request, method string) (int, error) {
	if req.Method != method {
		return http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", req.Method)
	}
	return http.StatusOK, nil
}

func items(col *model.Collection, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return &Items{Items: col.Models()}, nil
}
