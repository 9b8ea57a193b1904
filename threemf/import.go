// Copyright (c) 2026, The Previewmf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package threemf

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"cogentcore.org/core/base/ordmap"
	"cogentcore.org/core/math32"
)

var (
	// ErrNoModelDocument indicates the archive contains no entry ending
	// in the .model extension.
	ErrNoModelDocument = errors.New("threemf: no model document in archive")

	// ErrParse indicates the model document is not well-formed XML.
	ErrParse = errors.New("threemf: cannot parse model document")
)

// maxComponentDepth bounds component recursion so a cyclic archive
// cannot hang the importer.
const maxComponentDepth = 8

// defaultColor is opaque mid-gray, used when displaycolor is absent
// or malformed.
var defaultColor = math32.Vec4(0.8, 0.8, 0.8, 1)

// XML document structure. encoding/xml matches local element names, so
// the 3MF core namespace is tolerated but not required.

type xmlModel struct {
	XMLName   xml.Name     `xml:"model"`
	Resources xmlResources `xml:"resources"`
	Build     xmlBuild     `xml:"build"`
}

type xmlResources struct {
	BaseMaterials []xmlBaseMaterials `xml:"basematerials"`
	Objects       []xmlObject        `xml:"object"`
}

type xmlBaseMaterials struct {
	ID   string    `xml:"id,attr"`
	Base []xmlBase `xml:"base"`
}

type xmlBase struct {
	Name         string `xml:"name,attr"`
	DisplayColor string `xml:"displaycolor,attr"`
}

type xmlObject struct {
	ID         string         `xml:"id,attr"`
	Name       string         `xml:"name,attr"`
	PID        string         `xml:"pid,attr"`
	PIndex     string         `xml:"pindex,attr"`
	P1         string         `xml:"p1,attr"`
	Mesh       *xmlMesh       `xml:"mesh"`
	Components *xmlComponents `xml:"components"`
}

type xmlMesh struct {
	Vertices  *xmlVertices  `xml:"vertices"`
	Triangles *xmlTriangles `xml:"triangles"`
}

type xmlVertices struct {
	Vertex []xmlVertex `xml:"vertex"`
}

// attributes are kept as strings so that absent or malformed values
// default to 0 instead of failing the whole document.
type xmlVertex struct {
	X string `xml:"x,attr"`
	Y string `xml:"y,attr"`
	Z string `xml:"z,attr"`
}

type xmlTriangles struct {
	Triangle []xmlTriangle `xml:"triangle"`
}

type xmlTriangle struct {
	V1  string `xml:"v1,attr"`
	V2  string `xml:"v2,attr"`
	V3  string `xml:"v3,attr"`
	PID string `xml:"pid,attr"`
	P1  string `xml:"p1,attr"`
}

type xmlBuild struct {
	Items []xmlItem `xml:"item"`
}

type xmlItem struct {
	ObjectID  string `xml:"objectid,attr"`
	Transform string `xml:"transform,attr"`
}

type xmlComponents struct {
	Component []xmlComponent `xml:"component"`
}

type xmlComponent struct {
	ObjectID  string `xml:"objectid,attr"`
	Transform string `xml:"transform,attr"`
}

// resourceKey addresses exactly one material definition: the
// basematerials group id plus the zero-based position within the group,
// as a string. This is the only addressing key; display names are
// labels, never lookup keys.
type resourceKey struct {
	group string
	index string
}

// importer holds the per-call state of one import run. Nothing here
// survives the call; there is no global material registry.
type importer struct {
	materials map[resourceKey]*MaterialDefinition
	objects   map[string]*xmlObject
	scene     *Scene
}

// Import opens the 3MF archive at path and returns the imported scene.
// It fails when the archive is unreadable, contains no model document,
// or the document is not well-formed XML. Objects with missing or
// invalid geometry are skipped with a warning and counted in
// [Scene.Dropped]; they never abort the import.
func Import(path string) (*Scene, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("threemf: open archive %q: %w", path, err)
	}
	defer zr.Close()

	var doc *xmlModel
	for _, zf := range zr.File {
		if !strings.HasSuffix(zf.Name, ".model") {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return nil, fmt.Errorf("threemf: open %q: %w", zf.Name, err)
		}
		doc = &xmlModel{}
		d := xml.NewDecoder(rc)
		d.Strict = false
		err = d.Decode(doc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrParse, zf.Name, err)
		}
		break
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoModelDocument, path)
	}

	im := &importer{
		materials: map[resourceKey]*MaterialDefinition{},
		objects:   map[string]*xmlObject{},
		scene:     &Scene{},
	}
	im.addMaterials(doc.Resources.BaseMaterials)
	for i := range doc.Resources.Objects {
		ob := &doc.Resources.Objects[i]
		im.objects[ob.ID] = ob
	}

	if len(doc.Build.Items) > 0 {
		for _, it := range doc.Build.Items {
			im.addItem(it.ObjectID, parseTransform(it.Transform), 0)
		}
	} else {
		// No build section: place every mesh-bearing object at identity,
		// as the archive gives no placement information.
		for i := range doc.Resources.Objects {
			ob := &doc.Resources.Objects[i]
			if ob.Mesh != nil {
				im.addMesh(ob, math32.Identity4())
			}
		}
	}
	return im.scene, nil
}

// addMaterials decodes all basematerials groups, building the palette
// and the addressing map in a single pass with a running index per group.
func (im *importer) addMaterials(groups []xmlBaseMaterials) {
	for _, bg := range groups {
		mg := &MaterialGroup{ID: bg.ID}
		for i, base := range bg.Base {
			md := &MaterialDefinition{
				Name:      base.Name,
				Color:     decodeColor(base.DisplayColor),
				Roughness: 0.5,
				Metallic:  0.1,
			}
			if md.Name == "" {
				md.Name = fmt.Sprintf("Material_%s_%d", bg.ID, i)
			}
			// Many exporters write #RRGGBB00 for fully opaque intent.
			// An invisible preview material is never what was meant.
			if md.Color.W < 0.01 {
				slog.Warn("threemf: correcting zero alpha to opaque", "material", md.Name)
				md.Color.W = 1
			}
			mg.Materials = append(mg.Materials, md)
			im.materials[resourceKey{bg.ID, strconv.Itoa(i)}] = md
		}
		im.scene.Groups.Add(mg.ID, mg)
	}
}

// addItem places the object referenced by a build item (or component),
// recursing through component objects with composed transforms.
func (im *importer) addItem(objectID string, mat *math32.Matrix4, depth int) {
	if depth > maxComponentDepth {
		slog.Warn("threemf: component nesting too deep, skipping", "object", objectID)
		return
	}
	ob, ok := im.objects[objectID]
	if !ok {
		slog.Warn("threemf: build references unknown object", "object", objectID)
		return
	}
	if ob.Mesh != nil {
		im.addMesh(ob, mat)
		return
	}
	if ob.Components == nil {
		im.drop(ob, "no mesh or components")
		return
	}
	for _, comp := range ob.Components.Component {
		cm := &math32.Matrix4{}
		cm.MulMatrices(mat, parseTransform(comp.Transform))
		im.addItem(comp.ObjectID, cm, depth+1)
	}
}

// addMesh converts one mesh-bearing object into a placed [Mesh],
// resolving per-triangle materials into first-use order.
func (im *importer) addMesh(ob *xmlObject, mat *math32.Matrix4) {
	if ob.Mesh.Vertices == nil || ob.Mesh.Triangles == nil {
		im.drop(ob, "missing vertex or triangle list")
		return
	}
	verts := make([]math32.Vector3, len(ob.Mesh.Vertices.Vertex))
	for i, v := range ob.Mesh.Vertices.Vertex {
		verts[i] = math32.Vec3(parseFloat(v.X), parseFloat(v.Y), parseFloat(v.Z))
	}

	// Object-level default material reference, used when a triangle
	// specifies neither pid nor p1. Some exporters write p1 on the
	// object where the spec says pindex; accept either.
	obIndex := ob.P1
	if obIndex == "" {
		obIndex = ob.PIndex
	}

	used := ordmap.New[resourceKey, *MaterialDefinition]()
	dangling := false
	tris := make([]Triangle, len(ob.Mesh.Triangles.Triangle))
	for i, t := range ob.Mesh.Triangles.Triangle {
		tri := Triangle{
			V1: parseInt(t.V1),
			V2: parseInt(t.V2),
			V3: parseInt(t.V3),
		}
		if !validIndex(tri.V1, len(verts)) || !validIndex(tri.V2, len(verts)) || !validIndex(tri.V3, len(verts)) {
			im.drop(ob, fmt.Sprintf("triangle %d references vertex beyond %d", i, len(verts)))
			return
		}
		pid := t.PID
		if pid == "" {
			pid = ob.PID
		}
		pindex := t.P1
		if pindex == "" {
			pindex = obIndex
		}
		var md *MaterialDefinition
		if pid != "" && pindex != "" {
			md = im.materials[resourceKey{pid, pindex}]
			if md == nil && !dangling {
				dangling = true
				slog.Debug("threemf: material reference not in palette, treating as none",
					"object", ob.ID, "pid", pid, "pindex", pindex)
			}
		}
		if md != nil {
			key := resourceKey{pid, pindex}
			idx, ok := used.IndexByKeyTry(key)
			if !ok {
				idx = used.Len()
				used.Add(key, md)
			}
			tri.Material = idx
		}
		tris[i] = tri
	}
	if len(verts) == 0 || len(tris) == 0 {
		im.drop(ob, "empty vertex or triangle list")
		return
	}

	name := ob.Name
	if name == "" {
		name = "object-" + ob.ID
	}
	im.scene.Meshes = append(im.scene.Meshes, &Mesh{
		Name:      name,
		Vertices:  verts,
		Triangles: tris,
		Materials: used.Values(),
		Matrix:    *mat,
	})
}

// drop records a skipped object: a warning, never an abort.
func (im *importer) drop(ob *xmlObject, reason string) {
	im.scene.Dropped++
	slog.Warn("threemf: dropping object", "object", ob.ID, "reason", reason)
}

// decodeColor parses a #RRGGBB or #RRGGBBAA display color into RGBA
// in [0,1], returning opaque mid-gray for anything it cannot read.
func decodeColor(s string) math32.Vector4 {
	if !strings.HasPrefix(s, "#") {
		return defaultColor
	}
	hex := s[1:]
	if len(hex) != 6 && len(hex) != 8 {
		return defaultColor
	}
	var ch [4]float32
	ch[3] = 1
	for i := 0; i*2 < len(hex); i++ {
		n, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return defaultColor
		}
		ch[i] = float32(n) / 255
	}
	return math32.Vec4(ch[0], ch[1], ch[2], ch[3])
}

// parseTransform decodes a 3MF transform attribute: 12 floats forming a
// 3x4 row-major matrix, the last row being the translation. Anything
// else yields identity.
func parseTransform(s string) *math32.Matrix4 {
	if s == "" {
		return math32.Identity4()
	}
	fields := strings.Fields(s)
	if len(fields) != 12 {
		slog.Warn("threemf: malformed transform, using identity", "transform", s)
		return math32.Identity4()
	}
	var vals [12]float32
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			slog.Warn("threemf: malformed transform, using identity", "transform", s)
			return math32.Identity4()
		}
		vals[i] = float32(v)
	}
	m := math32.Identity4()
	for row := 0; row < 4; row++ {
		m[row*4+0] = vals[row*3+0]
		m[row*4+1] = vals[row*3+1]
		m[row*4+2] = vals[row*3+2]
	}
	m[3], m[7], m[11], m[15] = 0, 0, 0, 1
	return m
}

func validIndex(i, n int) bool {
	return i >= 0 && i < n
}

func parseFloat(s string) float32 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0
	}
	return float32(f)
}

func parseInt(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
