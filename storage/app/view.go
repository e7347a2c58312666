// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"net/http"

	"github.com/google/safehtml/template"
	"github.com/perfdata/benchnorm/benchresult"
	"github.com/perfdata/benchnorm/benchunit"
	"github.com/shopspring/decimal"
)

// recentUploads is the number of uploads listed by /view.
const recentUploads = 50

var uploadTmpl = template.Must(template.New("upload").Parse(`<!DOCTYPE html>
<html>
<head><title>Upload benchmark results</title></head>
<body>
<form method="post" enctype="multipart/form-data">
<select name="adapter">{{range .}}<option>{{.}}</option>{{end}}</select>
<input type="file" name="file" multiple>
<input type="submit" value="Upload">
</form>
</body>
</html>
`))

var listTmpl = template.Must(template.New("list").Parse(`<!DOCTYPE html>
<html>
<head><title>Recent uploads</title></head>
<body>
<table>
<tr><th>upload</th><th>adapter</th><th>results</th><th>created</th></tr>
{{range .}}<tr><td>{{.ID}}</td><td>{{.Adapter}}</td><td>{{.Count}}</td><td>{{.Created}}</td></tr>
{{end}}</table>
</body>
</html>
`))

var viewTmpl = template.Must(template.New("view").Parse(`<!DOCTYPE html>
<html>
<head><title>Benchmark results</title></head>
<body>
<h1>{{.ID}}</h1>
{{if .Rows}}<table>
<tr><th>name</th><th>time/op</th><th>lower</th><th>upper</th></tr>
{{range .Rows}}<tr><td>{{.Name}}</td><td>{{.Value}}</td><td>{{.Lower}}</td><td>{{.Upper}}</td></tr>
{{end}}</table>
{{else}}<p>No results.</p>
{{end}}</body>
</html>
`))

// viewData is the data passed to viewTmpl.
type viewData struct {
	ID   string
	Rows []viewRow
}

type viewRow struct {
	Name, Value, Lower, Upper string
}

// newViewData formats rs for display. Every value in the table uses
// the same unit.
func newViewData(id string, rs *benchresult.Results) *viewData {
	entries := rs.Entries()
	var vals []decimal.Decimal
	for _, e := range entries {
		vals = append(vals, e.Metric.Value)
	}
	scale := benchunit.CommonScale(vals)
	bound := func(d decimal.NullDecimal) string {
		if !d.Valid {
			return "-"
		}
		return scale.Format(d.Decimal)
	}

	data := &viewData{ID: id}
	for _, e := range entries {
		data.Rows = append(data.Rows, viewRow{
			Name:  string(e.Name),
			Value: scale.Format(e.Metric.Value),
			Lower: bound(e.Metric.Lower),
			Upper: bound(e.Metric.Upper),
		})
	}
	return data
}

// view serves an HTML table of an upload's results. Without an
// "upload" parameter it lists the most recent uploads instead.
func (a *App) view(w http.ResponseWriter, r *http.Request) {
	ctx := requestContext(r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if r.Form.Get("upload") == "" {
		uploads, err := a.DB.ListUploads(ctx, recentUploads)
		if err != nil {
			errorf(ctx, "%v", err)
			http.Error(w, err.Error(), 500)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := listTmpl.Execute(w, uploads); err != nil {
			errorf(ctx, "%v", err)
		}
		return
	}

	id, rs := a.loadResults(w, r)
	if rs == nil {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := viewTmpl.Execute(w, newViewData(id, rs)); err != nil {
		errorf(ctx, "%v", err)
	}
}
