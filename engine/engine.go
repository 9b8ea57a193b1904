// Copyright (c) 2026, The Previewmf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine bridges planned placements to an external rendering
// engine process. The engine contract is deliberately thin: it receives
// one JSON job file describing the camera, the light rig, and the render
// settings, and must write the raster image to the job's output path.
package engine

import (
	"errors"
	"strings"

	"cogentcore.org/core/base/exec"
	"cogentcore.org/core/base/iox/jsonx"
	"github.com/previewmf/previewmf/preview"
)

// ErrNoCommand indicates no external render command is configured.
var ErrNoCommand = errors.New("engine: no render command configured")

// Options are the render settings passed through to the engine.
type Options struct {

	// Resolution is the output image width and height in pixels.
	Resolution int `default:"500"`

	// Samples is the engine sample count; 0 lets the engine pick a
	// device-appropriate default.
	Samples int

	// Transparent renders on a transparent background.
	Transparent bool `default:"true"`
}

// Defaults sets the default options.
func (o *Options) Defaults() {
	if o.Resolution <= 0 {
		o.Resolution = 500
	}
}

// Job is the serialized unit of work handed to the engine, one per view.
type Job struct {
	Output      string
	Resolution  int
	Samples     int
	Transparent bool
	Camera      preview.Camera
	Lights      []preview.Light
}

// Engine invokes an external render command once per view, blocking
// until it returns. It implements [preview.Renderer].
type Engine struct {

	// Command is the external render command; it is run with the job
	// file path as its single argument.
	Command string

	// Options are the render settings included in every job.
	Options Options
}

// New returns an engine for the given command and options.
func New(command string, opts Options) *Engine {
	opts.Defaults()
	return &Engine{Command: command, Options: opts}
}

// Render writes the job file next to the output image and runs the
// configured command on it. The job file is left in place afterward;
// it is cheap and invaluable when debugging a bad render.
func (en *Engine) Render(cam preview.Camera, lights []preview.Light, path string) error {
	if en.Command == "" {
		return ErrNoCommand
	}
	job := &Job{
		Output:      path,
		Resolution:  en.Options.Resolution,
		Samples:     en.Options.Samples,
		Transparent: en.Options.Transparent,
		Camera:      cam,
		Lights:      lights,
	}
	jf := JobFile(path)
	if err := jsonx.Save(job, jf); err != nil {
		return err
	}
	return exec.Run(en.Command, jf)
}

// JobFile returns the job file path for a given output image path.
func JobFile(output string) string {
	return strings.TrimSuffix(output, ".png") + ".json"
}
