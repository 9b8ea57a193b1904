// Copyright (c) 2026, The Previewmf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package preview

import (
	"log/slog"
	"os"
	"path/filepath"
)

// Renderer is the external rendering engine boundary: given placements
// and an output path, it produces a raster image file. Calls can block
// for seconds to minutes; a failure affects only the view being rendered.
type Renderer interface {
	Render(cam Camera, lights []Light, path string) error
}

// Status is the outcome of one view's render call.
type Status string

const (
	// StatusSuccess means the output file exists after the render call.
	StatusSuccess Status = "success"

	// StatusFailed means the render call returned without error but
	// produced no output file.
	StatusFailed Status = "failed"

	// StatusError means the render call returned an error.
	StatusError Status = "error"
)

// Result is the recorded outcome for one view.
type Result struct {
	View   string
	Path   string
	Status Status
	Err    error
}

// ValidViews filters the requested view names against the canonical set.
// Unknown names are reported and excluded, never fatal.
func ValidViews(views []string) []string {
	valid := make([]string, 0, len(views))
	for _, v := range views {
		if !ValidView(v) {
			slog.Warn("unknown view, skipping", "view", v)
			continue
		}
		valid = append(valid, v)
	}
	return valid
}

// Render renders each requested view in order: plan camera and lights,
// invoke the engine, record the outcome, continue regardless. Views are
// independent of each other; only the immutable framing is shared.
// Output files are named preview_<view>.png within outDir.
func Render(rend Renderer, fr Framing, views []string, outDir string) []Result {
	views = ValidViews(views)
	results := make([]Result, 0, len(views))
	for _, view := range views {
		res := Result{View: view, Path: filepath.Join(outDir, "preview_"+view+".png")}
		cam := PlanCamera(view, fr)
		lights := PlanLights(fr)
		slog.Info("rendering view", "view", view, "path", res.Path)
		err := rend.Render(cam, lights, res.Path)
		switch {
		case err != nil:
			res.Status = StatusError
			res.Err = err
			slog.Error("render failed", "view", view, "err", err)
		case !fileExists(res.Path):
			res.Status = StatusFailed
			slog.Error("render produced no output", "view", view, "path", res.Path)
		default:
			res.Status = StatusSuccess
		}
		results = append(results, res)
	}
	return results
}

// Succeeded returns how many results rendered successfully.
func Succeeded(results []Result) int {
	n := 0
	for _, res := range results {
		if res.Status == StatusSuccess {
			n++
		}
	}
	return n
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}
