// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchsave uploads benchmark results to a storage server.
//
// Usage:
//
//	benchsave [-v] [-adapter name] [-server url] file...
//
// Each input file should contain the complete output of one run of a
// supported benchmarking tool. The server detects the tool unless
// -adapter names it.
//
// Benchsave will upload the input files to the specified server and
// print the upload ID, or a URL where the results can be viewed if the
// server supplies one.
//
// The server is sent the OAuth2 bearer token found in the
// BENCHSAVE_TOKEN environment variable.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

var (
	server      = flag.String("server", "http://localhost:8080", "upload benchmarks to server at `url`")
	adapterName = flag.String("adapter", "", "parse files with adapter `name` instead of detecting it")
	verbose     = flag.Bool("v", false, "print verbose log messages")
)

type uploadStatus struct {
	// UploadID is the upload ID assigned to the upload.
	UploadID string `json:"uploadid"`
	// FileIDs is the list of file IDs assigned to the files in the upload.
	FileIDs []string `json:"fileids"`
	// Adapters names the format each file was parsed as.
	Adapters []string `json:"adapters"`
	// Results is the number of benchmark results stored.
	Results int `json:"results"`
	// ViewURL is a server-supplied URL to view the results.
	ViewURL string `json:"viewurl"`
}

// writeOneFile reads name and writes it to mpw.
func writeOneFile(mpw *multipart.Writer, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := mpw.CreateFormFile("file", filepath.Base(name))
	if err != nil {
		return err
	}

	if _, err := io.Copy(w, f); err != nil {
		return err
	}
	return nil
}

// writeForm writes the upload form for files to mpw. If a file cannot
// be read, it asks the server to abort the upload.
func writeForm(mpw *multipart.Writer, adapter string, files []string) {
	if adapter != "" {
		mpw.WriteField("adapter", adapter)
	}
	for _, name := range files {
		if err := writeOneFile(mpw, name); err != nil {
			log.Print(err)
			// Writing the 'abort' field will cause the server to send back an error response.
			mpw.WriteField("abort", "1")
			return
		}
	}
	mpw.WriteField("commit", "1")
}

// newClient returns an HTTP client that authenticates with the token
// in BENCHSAVE_TOKEN, or an unauthenticated client if it is unset.
func newClient(ctx context.Context) *http.Client {
	token := strings.TrimSpace(os.Getenv("BENCHSAVE_TOKEN"))
	if token == "" {
		return http.DefaultClient
	}
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}))
}

// upload sends files to the server and returns its response.
func upload(hc *http.Client, serverURL, adapter string, files []string) (*uploadStatus, error) {
	pr, pw := io.Pipe()
	mpw := multipart.NewWriter(pw)

	go func() {
		defer pw.Close()
		defer mpw.Close()
		writeForm(mpw, adapter, files)
	}()

	resp, err := hc.Post(serverURL+"/upload", mpw.FormDataContentType(), pr)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("upload failed: %v\n%s", resp.Status, body)
	}

	status := &uploadStatus{}
	if err := json.NewDecoder(resp.Body).Decode(status); err != nil {
		return nil, fmt.Errorf("cannot parse upload response: %v", err)
	}
	return status, nil
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage of benchsave:
	benchsave [flags] file...
`)
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetPrefix("benchsave: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		log.Fatal("no files to upload")
	}

	start := time.Now()

	status, err := upload(newClient(context.Background()), *server, *adapterName, files)
	if err != nil {
		log.Fatal(err)
	}

	if *verbose {
		s := ""
		if len(files) != 1 {
			s = "s"
		}
		log.Printf("%d file%s uploaded in %.2f seconds.\n", len(files), s, time.Since(start).Seconds())
		for i, id := range status.FileIDs {
			if i < len(status.Adapters) {
				log.Printf("%s: %s", id, status.Adapters[i])
			}
		}
		log.Printf("%d results stored.", status.Results)
	}
	if status.ViewURL != "" {
		fmt.Printf("%s\n", status.ViewURL)
	} else {
		fmt.Printf("%s\n", status.UploadID)
	}
}
