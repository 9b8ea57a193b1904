// Copyright (c) 2026, The Previewmf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command previewmf renders annotated preview images of a 3MF model
// archive from the canonical views (iso, front, back, left, right, top,
// bottom), for automated visual inspection of generated models.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"cogentcore.org/core/cli"
	"github.com/previewmf/previewmf/engine"
	"github.com/previewmf/previewmf/preview"
	"github.com/previewmf/previewmf/threemf"
)

// Config is the configuration information for the previewmf cli.
type Config struct {

	// Input is the 3MF archive to render.
	Input string `posarg:"0"`

	// Output is the directory preview images are written into;
	// it is created if it does not exist.
	Output string `flag:"o,output" default:"."`

	// Views is the list of views to render; all canonical views
	// when empty.
	Views []string `flag:"views"`

	// Command is the external render command, run once per view with
	// a JSON job file as its argument.
	Command string `flag:"c,command"`

	// Resolution is the output image size in pixels.
	Resolution int `default:"500"`

	// Samples is the render sample count; 0 lets the engine decide.
	Samples int
}

func main() {
	opts := cli.DefaultOptions("previewmf", "Renders annotated preview images of a 3MF model archive from canonical views.")
	cli.Run(opts, &Config{}, Render)
}

// Render imports the archive, frames it, and renders every requested
// view. It returns an error (non-zero exit) only when nothing could be
// rendered at all; individual view failures are reported and tolerated.
func Render(c *Config) error {
	sc, err := threemf.Import(c.Input)
	if err != nil {
		return err
	}
	slog.Info("imported archive", "meshes", len(sc.Meshes), "dropped", sc.Dropped)

	if err := os.MkdirAll(c.Output, 0o755); err != nil {
		return err
	}

	fr := preview.NewFraming(sc.Bounds())
	slog.Info("model bounds", "center", fr.Center, "size", fr.Size, "maxDim", fr.MaxDim)

	views := c.Views
	if len(views) == 0 {
		views = preview.Views
	}

	en := engine.New(c.Command, engine.Options{
		Resolution:  c.Resolution,
		Samples:     c.Samples,
		Transparent: true,
	})
	results := preview.Render(en, fr, views, c.Output)

	for _, res := range results {
		slog.Info("render result", "view", res.View, "status", res.Status)
	}
	ok := preview.Succeeded(results)
	slog.Info(fmt.Sprintf("completed: %d/%d views rendered", ok, len(results)))
	if ok == 0 {
		return fmt.Errorf("previewmf: no views rendered successfully")
	}
	return nil
}
