// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/perfdata/benchnorm/adapter"
	"github.com/perfdata/benchnorm/benchresult"
	"github.com/perfdata/benchnorm/storage/db"
	"golang.org/x/net/context"
)

// maxFieldSize limits the size of non-file form fields.
const maxFieldSize = 1 << 10

// upload is the handler for the /upload endpoint. It serves a form on
// GET requests and processes files in a multipart/x-form-data POST
// request.
func (a *App) upload(w http.ResponseWriter, r *http.Request) {
	ctx := requestContext(r)

	var user string
	if a.Auth != nil {
		var err error
		user, err = a.Auth(w, r)
		switch {
		case err == ErrResponseWritten:
			return
		case err != nil:
			errorf(ctx, "%v", err)
			http.Error(w, err.Error(), 500)
			return
		}
	}

	if r.Method == http.MethodGet {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := uploadTmpl.Execute(w, adapter.Formats()); err != nil {
			errorf(ctx, "%v", err)
		}
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "/upload must be called as a POST request", http.StatusMethodNotAllowed)
		return
	}

	// We use r.MultipartReader instead of r.ParseForm to avoid
	// storing uploaded data in memory.
	mr, err := r.MultipartReader()
	if err != nil {
		errorf(ctx, "%v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := a.processUpload(ctx, user, mr)
	if err != nil {
		errorf(ctx, "%v", err)
		code := 500
		var rerr *requestError
		if errors.As(err, &rerr) {
			code = http.StatusBadRequest
		}
		http.Error(w, err.Error(), code)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		errorf(ctx, "%v", err)
		http.Error(w, err.Error(), 500)
		return
	}
}

// uploadStatus is the response to an /upload POST served as JSON.
type uploadStatus struct {
	// UploadID is the upload ID assigned to the upload.
	UploadID string `json:"uploadid"`
	// FileIDs is the list of file IDs assigned to the files in the upload.
	FileIDs []string `json:"fileids"`
	// Adapters names the format each file was parsed as.
	Adapters []string `json:"adapters"`
	// Results is the number of benchmark results stored.
	Results int `json:"results"`
	// ViewURL is a URL that can be used to view the results.
	ViewURL string `json:"viewurl,omitempty"`
}

// A requestError is an upload failure caused by the content of the
// request rather than by the server.
type requestError struct {
	err error
}

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

func badRequest(format string, args ...interface{}) error {
	return &requestError{fmt.Errorf(format, args...)}
}

// errAborted is returned when the client sends an "abort" field.
var errAborted = errors.New("upload aborted by client")

// processUpload reads the parts of mr, in order:
//
//   - an optional "adapter" field naming the format of every file,
//     "magic" by default;
//   - one or more "file" parts, each the complete output of a
//     benchmarking tool;
//   - an optional "commit" or "abort" field.
//
// Each file is archived to the filesystem and its normalized results
// are added to a single upload. Benchmark names must be unique across
// the whole upload. Nothing is committed unless every file parses.
func (a *App) processUpload(ctx context.Context, user string, mr *multipart.Reader) (status *uploadStatus, err error) {
	m := a.m()

	format := adapter.Magic
	var upload *db.Upload
	defer func() {
		if err != nil && upload != nil {
			upload.Abort()
		}
	}()

	status = &uploadStatus{}
	names := benchresult.New()
	var counts []int // results per file
	created := time.Now().UTC()

parts:
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch name := p.FormName(); name {
		case "adapter":
			if upload != nil {
				return nil, badRequest("adapter field must precede all files")
			}
			v, err := readField(p)
			if err != nil {
				return nil, err
			}
			if format, err = adapter.ParseFormat(v); err != nil {
				return nil, &requestError{err}
			}
		case "commit":
			break parts
		case "abort":
			return nil, &requestError{errAborted}
		case "file":
			data, err := io.ReadAll(p)
			if err != nil {
				return nil, err
			}
			filename := p.FileName()
			if filename == "" {
				filename = fmt.Sprintf("file %d", len(status.FileIDs))
			}
			f, rs, err := parseFile(format, data)
			if err != nil {
				m.parseErrors.WithLabelValues(format.String(), errorKind(err)).Inc()
				return nil, &requestError{fmt.Errorf("%s: %w", filename, err)}
			}
			for _, e := range rs.Entries() {
				if err := names.Insert(e.Name, e.Metric); err != nil {
					return nil, badRequest("%s: %v", filename, err)
				}
			}

			if upload == nil {
				upload, err = a.DB.NewUpload(ctx, f.String())
				if err != nil {
					return nil, err
				}
				status.UploadID = upload.ID
			}

			meta := fileMetadata(ctx, upload.ID, len(status.FileIDs), f, user, created)
			if err := a.archive(ctx, meta, data); err != nil {
				return nil, err
			}
			if err := upload.InsertResults(rs); err != nil {
				return nil, err
			}

			status.FileIDs = append(status.FileIDs, meta["fileid"])
			status.Adapters = append(status.Adapters, f.String())
			status.Results += rs.Len()
			counts = append(counts, rs.Len())
		default:
			return nil, badRequest("unexpected field %q", name)
		}
	}

	if upload == nil {
		return nil, badRequest("no files uploaded")
	}
	if err := upload.Commit(); err != nil {
		return nil, err
	}
	m.uploads.WithLabelValues(upload.Adapter).Inc()
	for i, f := range status.Adapters {
		m.results.WithLabelValues(f).Add(float64(counts[i]))
	}
	if a.ViewURLBase != "" {
		status.ViewURL = a.ViewURLBase + status.UploadID
	}
	infof(ctx, "upload %s: %d file(s), %d result(s)", status.UploadID, len(status.FileIDs), status.Results)
	return status, nil
}

// parseFile parses data in format f. For Magic, it reports the
// format that was detected.
func parseFile(f adapter.Format, data []byte) (adapter.Format, *benchresult.Results, error) {
	if f != adapter.Magic || !utf8.Valid(data) {
		rs, err := adapter.ParseBytes(f, data)
		return f, rs, err
	}
	return adapter.Probe(string(data))
}

func readField(p *multipart.Part) (string, error) {
	b, err := io.ReadAll(io.LimitReader(p, maxFieldSize+1))
	if err != nil {
		return "", err
	}
	if len(b) > maxFieldSize {
		return "", badRequest("field %q too long", p.FormName())
	}
	return strings.TrimSpace(string(b)), nil
}

// archive stores the raw output of one file, preceded by its
// metadata as "key: value" lines.
func (a *App) archive(ctx context.Context, meta map[string]string, data []byte) error {
	fw, err := a.FS.NewWriter(ctx, fmt.Sprintf("uploads/%s.txt", meta["fileid"]), meta)
	if err != nil {
		return err
	}

	var keys []string
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(fw, "%s: %s\n", k, meta[k]); err != nil {
			fw.CloseWithError(err)
			return err
		}
	}
	if _, err := fmt.Fprintf(fw, "\n"); err != nil {
		fw.CloseWithError(err)
		return err
	}
	if _, err := fw.Write(data); err != nil {
		fw.CloseWithError(err)
		return err
	}
	return fw.Close()
}

// fileMetadata returns the extra metadata fields associated with an
// uploaded file.
func fileMetadata(_ context.Context, uploadid string, filenum int, f adapter.Format, user string, created time.Time) map[string]string {
	m := map[string]string{
		"uploadid":   uploadid,
		"fileid":     fmt.Sprintf("%s/%d", uploadid, filenum),
		"adapter":    f.String(),
		"uploadtime": created.Format(time.RFC3339),
	}
	if user != "" {
		m["by"] = user
	}
	return m
}
