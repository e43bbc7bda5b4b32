// Package femdoc parses JSON dumps of a CAE document's object graph, the
// portable form hosts export for tooling. The parsed document satisfies
// the model interfaces, so everything that works against a live host
// adapter works against a dump.
package femdoc

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/danweiss/femstage/internal/core/geometry"
	"github.com/danweiss/femstage/internal/core/model"
)

// Document is a parsed document dump.
type Document struct {
	name    string
	path    string
	objects []*Object
}

func (d *Document) Name() string { return d.name }
func (d *Document) Path() string { return d.path }

func (d *Document) Objects() []model.Object {
	objs := make([]model.Object, len(d.objects))
	for i, o := range d.objects {
		objs[i] = o
	}
	return objs
}

// Find returns the object with the given internal name, nil if absent.
func (d *Document) Find(name string) *Object {
	for _, o := range d.objects {
		if o.name == name {
			return o
		}
	}
	return nil
}

// FindByLabel returns all objects with the given display label. Labels
// are not unique.
func (d *Document) FindByLabel(label string) []*Object {
	var matches []*Object
	for _, o := range d.objects {
		if o.label == label {
			matches = append(matches, o)
		}
	}
	return matches
}

// Object is one parsed document object.
type Object struct {
	name      string
	label     string
	typeID    string
	proxyType string
	children  []*Object
	part      *Object
	shapeRef  *Object
	shape     *geometry.Shape
	refs      []model.Reference
}

func (o *Object) Name() string  { return o.name }
func (o *Object) Label() string { return o.label }

// Kind returns the proxy tag for script-backed objects, the native type
// id otherwise.
func (o *Object) Kind() string {
	if o.proxyType != "" {
		return o.proxyType
	}
	return o.typeID
}

func (o *Object) DerivedFrom(kind string) bool {
	return model.NativeDerivedFrom(o.typeID, kind)
}

func (o *Object) Children() []model.Object {
	if len(o.children) == 0 {
		return nil
	}
	objs := make([]model.Object, len(o.children))
	for i, c := range o.children {
		objs[i] = c
	}
	return objs
}

func (o *Object) Part() model.Object {
	if o.part == nil {
		return nil
	}
	return o.part
}

func (o *Object) ShapeRef() model.Object {
	if o.shapeRef == nil {
		return nil
	}
	return o.shapeRef
}

func (o *Object) Shape() *geometry.Shape        { return o.shape }
func (o *Object) References() []model.Reference { return o.refs }

// rawDocument mirrors the dump format on disk.
type rawDocument struct {
	Name    string      `json:"name"`
	Path    string      `json:"path,omitempty"`
	Objects []rawObject `json:"objects"`
}

type rawObject struct {
	Name       string        `json:"name"`
	Label      string        `json:"label,omitempty"`
	TypeID     string        `json:"typeId"`
	ProxyType  string        `json:"proxyType,omitempty"`
	Group      []string      `json:"group,omitempty"`
	Part       string        `json:"part,omitempty"`
	ShapeRef   string        `json:"shapeRef,omitempty"`
	Shape      *rawShape     `json:"shape,omitempty"`
	References []rawReference `json:"references,omitempty"`
}

type rawShape struct {
	Type     string    `json:"type"`
	BoundBox []float64 `json:"boundBox,omitempty"` // xmin ymin zmin xmax ymax zmax
}

type rawReference struct {
	Object   string   `json:"object"`
	SubNames []string `json:"subNames"`
}

// ParseFile parses a document dump from disk.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document dump: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse parses a document dump. Malformed JSON fails; dangling object
// links (a group member or part reference naming an object that is not
// in the dump) only warn, so a partial export still loads.
func Parse(data []byte) (*Document, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse document dump: %w", err)
	}
	if raw.Name == "" {
		return nil, fmt.Errorf("document dump has no name")
	}

	doc := &Document{
		name: decodeText(raw.Name),
		path: decodeText(raw.Path),
	}

	// First pass: create all objects so links can be resolved by name
	byName := make(map[string]*Object, len(raw.Objects))
	for _, ro := range raw.Objects {
		if ro.Name == "" {
			return nil, fmt.Errorf("object without a name in document %q", raw.Name)
		}
		if _, dup := byName[ro.Name]; dup {
			return nil, fmt.Errorf("duplicate object name %q in document %q", ro.Name, raw.Name)
		}
		obj := &Object{
			name:      decodeText(ro.Name),
			label:     decodeText(ro.Label),
			typeID:    ro.TypeID,
			proxyType: ro.ProxyType,
		}
		if obj.label == "" {
			obj.label = obj.name
		}
		if ro.Shape != nil {
			obj.shape = parseShape(ro.Shape)
		}
		byName[ro.Name] = obj
		doc.objects = append(doc.objects, obj)
	}

	// Second pass: resolve links
	for i, ro := range raw.Objects {
		obj := doc.objects[i]
		for _, member := range ro.Group {
			child, ok := byName[member]
			if !ok {
				warnf("%s: group member %q not in dump, skipping", ro.Name, member)
				continue
			}
			obj.children = append(obj.children, child)
		}
		if ro.Part != "" {
			obj.part = lookupLink(byName, ro.Name, "part", ro.Part)
		}
		if ro.ShapeRef != "" {
			obj.shapeRef = lookupLink(byName, ro.Name, "shapeRef", ro.ShapeRef)
		}
		for _, rr := range ro.References {
			target, ok := byName[rr.Object]
			if !ok {
				warnf("%s: reference target %q not in dump, skipping", ro.Name, rr.Object)
				continue
			}
			obj.refs = append(obj.refs, model.Reference{Object: target, SubNames: rr.SubNames})
		}
	}

	return doc, nil
}

func lookupLink(byName map[string]*Object, owner, field, target string) *Object {
	obj, ok := byName[target]
	if !ok {
		warnf("%s: %s %q not in dump, skipping", owner, field, target)
		return nil
	}
	return obj
}

func parseShape(rs *rawShape) *geometry.Shape {
	shape := &geometry.Shape{Type: rs.Type}
	if len(rs.BoundBox) == 6 {
		shape.BoundBox = geometry.BoundBox{
			XMin: rs.BoundBox[0], YMin: rs.BoundBox[1], ZMin: rs.BoundBox[2],
			XMax: rs.BoundBox[3], YMax: rs.BoundBox[4], ZMax: rs.BoundBox[5],
		}
	} else {
		// No box in the dump: leave an inverted (invalid) box so union
		// code skips it
		shape.BoundBox = geometry.BoundBox{XMin: 1, XMax: -1}
	}
	return shape
}

// decodeText sanitizes string fields from the dump. Hosts on legacy
// encodings occasionally emit broken bytes; invalid sequences are
// replaced rather than propagated.
func decodeText(s string) string {
	return strings.ToValidUTF8(s, "�")
}

func warnf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}
