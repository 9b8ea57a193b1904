// Copyright (c) 2026, The Previewmf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"errors"
	"path/filepath"
	"testing"

	"cogentcore.org/core/base/iox/jsonx"
	"cogentcore.org/core/math32"
	"github.com/previewmf/previewmf/preview"
	"github.com/stretchr/testify/assert"
)

func TestJobFile(t *testing.T) {
	assert.Equal(t, "out/preview_iso.json", JobFile("out/preview_iso.png"))
}

func TestNoCommand(t *testing.T) {
	en := New("", Options{})
	err := en.Render(preview.Camera{}, nil, "out.png")
	assert.True(t, errors.Is(err, ErrNoCommand))
}

func TestDefaults(t *testing.T) {
	en := New("render", Options{})
	assert.Equal(t, 500, en.Options.Resolution)
}

func TestRenderWritesJob(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "preview_front.png")

	fr := preview.NewFraming(math32.B3(0, 0, 0, 1, 1, 1))
	cam := preview.PlanCamera(preview.Front, fr)
	lights := preview.PlanLights(fr)

	// "true" consumes the job file and exits 0 without producing output;
	// whether an image appeared is the orchestrator's concern, not ours.
	en := New("true", Options{Resolution: 800, Transparent: true})
	assert.NoError(t, en.Render(cam, lights, out))

	job := &Job{}
	assert.NoError(t, jsonx.Open(job, JobFile(out)))
	assert.Equal(t, out, job.Output)
	assert.Equal(t, 800, job.Resolution)
	assert.True(t, job.Transparent)
	assert.Equal(t, cam, job.Camera)
	assert.Equal(t, 4, len(job.Lights))
}
