// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/perfdata/benchnorm/benchchart"
	"github.com/perfdata/benchnorm/benchfmt"
	"github.com/perfdata/benchnorm/benchresult"
	"github.com/perfdata/benchnorm/storage/db"
)

// loadResults returns the results of the upload named by the "upload"
// form value. On failure it writes an error response and returns nil.
func (a *App) loadResults(w http.ResponseWriter, r *http.Request) (string, *benchresult.Results) {
	ctx := requestContext(r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", nil
	}
	id := r.Form.Get("upload")
	if id == "" {
		http.Error(w, "missing upload parameter", http.StatusBadRequest)
		return "", nil
	}
	rs, err := a.DB.Results(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return "", nil
	}
	if err != nil {
		errorf(ctx, "%v", err)
		http.Error(w, err.Error(), 500)
		return "", nil
	}
	return id, rs
}

// results serves the stored results of an upload, either as a JSON
// object (format=json, the default) or in the Go benchmark format
// (format=text).
func (a *App) results(w http.ResponseWriter, r *http.Request) {
	id, rs := a.loadResults(w, r)
	if rs == nil {
		return
	}

	switch format := r.Form.Get("format"); format {
	case "", "json":
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(rs); err != nil {
			errorf(requestContext(r), "%v", err)
		}
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		bw := benchfmt.NewWriter(w)
		for _, res := range benchfmt.FromResults(rs, "uploadid", id) {
			if err := bw.Write(res); err != nil {
				errorf(requestContext(r), "%v", err)
				return
			}
		}
	default:
		http.Error(w, "unknown format "+format, http.StatusBadRequest)
	}
}

// chart serves a PNG bar chart of an upload's results.
func (a *App) chart(w http.ResponseWriter, r *http.Request) {
	id, rs := a.loadResults(w, r)
	if rs == nil {
		return
	}
	if rs.Len() == 0 {
		http.Error(w, benchchart.ErrEmpty.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := benchchart.WritePNG(w, rs, id); err != nil {
		errorf(requestContext(r), "%v", err)
	}
}
