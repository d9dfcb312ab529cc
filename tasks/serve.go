/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"dirpx.dev/kcerrors"
	"dirpx.dev/kcerrors/adapter"
	"dirpx.dev/kcerrors/apis"
	"dirpx.dev/kcerrors/httpx"
	"dirpx.dev/kcerrors/mapper"
	"dirpx.dev/kcerrors/report"
	"dirpx.dev/kcerrors/status"
)

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the defined errors over HTTP.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.catalog()
			if err != nil {
				return err
			}
			h, err := NewHandler(c, a.log)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), a.v.GetString("addr"), h, a.log)
		},
	}
	cmd.Flags().String("addr", ":8080", "Listen address.")
	a.bind(cmd, "addr")
	return cmd
}

func serve(ctx context.Context, addr string, h http.Handler, log logrus.FieldLogger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 10 * time.Second}
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe() }()
	log.WithField("addr", addr).Info("serving error definitions")

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			return err
		}
		if err := <-done; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// handler serves a read-only view of a frozen catalog.
type handler struct {
	snap     *kcerrors.Snapshot
	statuses *status.Catalog
	mapper   apis.Mapper
	writer   httpx.Writer
	notFound *kcerrors.Variant
	tree     string
	treeP    string
	stub     string
}

// NewHandler returns the HTTP introspection API for c:
//
//	GET /errors          descriptors of every variant
//	GET /errors/:name    one descriptor by qualified name
//	GET /tree            the tree listing, ?params=1 for parameters
//	GET /translations    the translation stub
//
// c is frozen by NewHandler.
func NewHandler(c *kcerrors.Catalog, log logrus.FieldLogger) (http.Handler, error) {
	c.Freeze()
	m, err := mapper.New()
	if err != nil {
		return nil, err
	}
	notFound, err := lookupErrors()
	if err != nil {
		return nil, err
	}

	var tree, treeP strings.Builder
	if err := report.List(&tree, c, false); err != nil {
		return nil, err
	}
	if err := report.List(&treeP, c, true); err != nil {
		return nil, err
	}
	stub, err := report.GenerateTranslationStub(c, "")
	if err != nil {
		return nil, err
	}

	h := &handler{
		snap:     c.Snapshot(),
		statuses: c.StatusCatalog(),
		mapper:   m,
		writer:   httpx.Writer{Mapper: m, Logger: log},
		notFound: notFound,
		tree:     tree.String(),
		treeP:    treeP.String(),
		stub:     stub,
	}

	r := httprouter.New()
	r.GET("/errors", h.writer.Handle(h.list))
	r.GET("/errors/:name", h.writer.Handle(h.get))
	r.GET("/tree", h.writer.Handle(h.printTree))
	r.GET("/translations", h.writer.Handle(h.translations))
	return r, nil
}

// lookupErrors defines the errors of the introspection API itself.
func lookupErrors() (*kcerrors.Variant, error) {
	b := kcerrors.NewBuilder(kcerrors.NewCatalog(kcerrors.WithStatusCatalog(status.HTTP())))
	root, err := b.Hierarchy(kcerrors.HierarchySpec{
		Class:    "Kcerror",
		Severity: kcerrors.SeverityDebug,
		Binding:  &kcerrors.BindPolicy{},
	})
	if err != nil {
		return nil, err
	}
	return b.Define(root, kcerrors.Spec{
		Key:    "variant_not_found",
		Status: status.Named("not_found", http.StatusNotFound),
		Params: []string{"name"},
	})
}

func (h *handler) descriptor(v *kcerrors.Variant) apis.VariantDescriptor {
	code := v.DefaultStatus().Int()
	if code == 0 {
		if st, ok := h.statuses.Lookup(v.DefaultStatus().Name()); ok {
			code = st.Int()
		}
	}
	return adapter.ToDescriptor(v, h.mapper.Status(v.Path(), code))
}

func (h *handler) list(rw http.ResponseWriter, _ *http.Request, _ httprouter.Params) error {
	variants := append([]*kcerrors.Variant{h.snap.Base()}, h.snap.Variants()...)
	out := make([]apis.VariantDescriptor, 0, len(variants))
	for _, v := range variants {
		out = append(out, h.descriptor(v))
	}
	return writeJSON(rw, out)
}

func (h *handler) get(rw http.ResponseWriter, r *http.Request, ps httprouter.Params) error {
	name := ps.ByName("name")
	v, ok := h.snap.Lookup(name)
	if !ok {
		return h.writer.WriteVariant(rw, r, h.notFound, kcerrors.WithParam("name", name))
	}
	return writeJSON(rw, h.descriptor(v))
}

func (h *handler) printTree(rw http.ResponseWriter, r *http.Request, _ httprouter.Params) error {
	text := h.tree
	if p := r.URL.Query().Get("params"); p == "1" || p == "true" {
		text = h.treeP
	}
	rw.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, err := rw.Write([]byte(text))
	return err
}

func (h *handler) translations(rw http.ResponseWriter, _ *http.Request, _ httprouter.Params) error {
	rw.Header().Set("Content-Type", "application/yaml")
	_, err := rw.Write([]byte(h.stub))
	return err
}

func writeJSON(rw http.ResponseWriter, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	rw.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, err = rw.Write(b)
	return err
}
