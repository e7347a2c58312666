// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff compares test output with expected output.
package diff

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Diff returns a human-readable description of the differences between
// got and want. If the "diff" command is available, it returns the
// output of unified diff. The result is empty if and only if the
// strings are equal.
func Diff(got, want string) string {
	if got == want {
		return ""
	}
	if _, err := exec.LookPath(diffCmd()); err != nil {
		return fmt.Sprintf("diff command unavailable\ngot:  %q\nwant: %q", got, want)
	}
	f1, err := writeTemp(got)
	if err != nil {
		return err.Error()
	}
	defer os.Remove(f1)
	f2, err := writeTemp(want)
	if err != nil {
		return err.Error()
	}
	defer os.Remove(f2)

	data, err := exec.Command(diffCmd(), "-u", f1, f2).CombinedOutput()
	if len(data) > 0 {
		// diff exits with a non-zero status when the files don't match.
		// Ignore that failure as long as we get output.
		err = nil
	}
	if err != nil {
		data = append(data, []byte(err.Error())...)
	}
	if len(data) == 0 {
		// The strings differ in a way diff doesn't show, such as
		// a missing final newline.
		return fmt.Sprintf("got:  %q\nwant: %q", got, want)
	}
	return string(data)
}

func diffCmd() string {
	if runtime.GOOS == "plan9" {
		return "/bin/ape/diff"
	}
	return "diff"
}

func writeTemp(s string) (string, error) {
	f, err := os.CreateTemp("", "benchnorm_test")
	if err != nil {
		return "", err
	}
	if _, err := f.WriteString(s); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
