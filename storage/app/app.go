// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package app implements the benchmark results storage server.
// Combine an App with a database and filesystem to get an HTTP server.
//
// Clients POST the raw output of a benchmarking tool to /upload. The
// server archives the raw text, normalizes it with the adapter
// package and stores the normalized results, which can then be read
// back from /results and /view.
package app

import (
	"errors"
	"net/http"
	"sync"

	"github.com/perfdata/benchnorm/storage/db"
	"github.com/perfdata/benchnorm/storage/fs"
)

// App manages the storage server logic. Construct an App instance
// using a literal with DB and FS objects and call RegisterOnMux to
// connect it with an HTTP server.
type App struct {
	DB *db.DB
	FS fs.FS

	// Auth obtains the username for the request.
	// If necessary, it can write its own response (e.g. a
	// redirect) and return ErrResponseWritten.
	// A nil Auth accepts every request anonymously.
	Auth func(http.ResponseWriter, *http.Request) (string, error)

	// ViewURLBase will be used to construct a URL to return as
	// "viewurl" in the response from /upload. If it is non-empty,
	// the upload ID will be appended to ViewURLBase.
	ViewURLBase string

	metricsOnce sync.Once
	metrics     *metrics
}

// ErrResponseWritten can be returned by App.Auth to abort the normal /upload handling.
var ErrResponseWritten = errors.New("response written")

// RegisterOnMux registers the app's URLs on mux.
func (a *App) RegisterOnMux(mux *http.ServeMux) {
	mux.HandleFunc("/upload", a.upload)
	mux.HandleFunc("/results", a.results)
	mux.HandleFunc("/view", a.view)
	mux.HandleFunc("/chart", a.chart)
	mux.Handle("/metrics", a.m().handler())
}

// m returns the app's metrics, creating them on first use.
func (a *App) m() *metrics {
	a.metricsOnce.Do(func() { a.metrics = newMetrics() })
	return a.metrics
}
