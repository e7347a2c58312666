// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Localserver runs the benchmark results storage server on the local
// machine. By default results are kept in memory and lost on exit.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"

	"github.com/perfdata/benchnorm/storage/app"
	"github.com/perfdata/benchnorm/storage/db"
	_ "github.com/perfdata/benchnorm/storage/db/sqlite3"
	"github.com/perfdata/benchnorm/storage/fs"
	"github.com/perfdata/benchnorm/storage/fs/gcs"
	"google.golang.org/api/option"
)

var (
	addr        = flag.String("addr", ":8080", "serve HTTP on `address`")
	dsn         = flag.String("dsn", ":memory:", "sqlite3 `database` to store results in")
	viewURLBase = flag.String("view_url_base", "", "/upload response with `URL` for viewing")
	bucket      = flag.String("gcs_bucket", "", "archive uploaded files to the Cloud Storage `bucket` instead of memory")
	credentials = flag.String("credentials", "", "service account credentials `file` for -gcs_bucket")
)

func main() {
	log.SetPrefix("localserver: ")
	flag.Parse()

	db, err := db.OpenSQL("sqlite3", *dsn)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	var files fs.FS = fs.NewMemFS()
	if *bucket != "" {
		var opts []option.ClientOption
		if *credentials != "" {
			opts = append(opts, option.WithCredentialsFile(*credentials))
		}
		files, err = gcs.NewFS(context.Background(), *bucket, opts...)
		if err != nil {
			log.Fatalf("gcs.NewFS: %v", err)
		}
	}

	app := &app.App{
		DB:          db,
		FS:          files,
		ViewURLBase: *viewURLBase,
		Auth:        func(http.ResponseWriter, *http.Request) (string, error) { return "", nil },
	}
	app.RegisterOnMux(http.DefaultServeMux)

	log.Printf("Listening on %s", *addr)

	log.Fatal(http.ListenAndServe(*addr, nil))
}
