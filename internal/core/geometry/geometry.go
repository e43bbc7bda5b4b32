// Package geometry holds the small geometric conveniences femstage
// needs: bounding-box union over a document and single-face selection.
// There is no geometry kernel here; shapes and boxes come precomputed
// from the host.
package geometry

import (
	"fmt"

	"github.com/danweiss/femstage/internal/core/model"
)

// BoundBox is an axis-aligned bounding box.
type BoundBox struct {
	XMin, YMin, ZMin float64
	XMax, YMax, ZMax float64
}

// IsValid reports whether the box spans a non-inverted volume.
func (b BoundBox) IsValid() bool {
	return b.XMin <= b.XMax && b.YMin <= b.YMax && b.ZMin <= b.ZMax
}

// Add grows the box to enclose other.
func (b *BoundBox) Add(other BoundBox) {
	if other.XMin < b.XMin {
		b.XMin = other.XMin
	}
	if other.YMin < b.YMin {
		b.YMin = other.YMin
	}
	if other.ZMin < b.ZMin {
		b.ZMin = other.ZMin
	}
	if other.XMax > b.XMax {
		b.XMax = other.XMax
	}
	if other.YMax > b.YMax {
		b.YMax = other.YMax
	}
	if other.ZMax > b.ZMax {
		b.ZMax = other.ZMax
	}
}

func (b BoundBox) String() string {
	return fmt.Sprintf("[%g %g %g] - [%g %g %g]", b.XMin, b.YMin, b.ZMin, b.XMax, b.YMax, b.ZMax)
}

// Shape is the host's view of a geometric shape: its element type and
// bounding box.
type Shape struct {
	Type     string // "Solid", "Face", "Edge", "Vertex", ...
	BoundBox BoundBox
}

// Shaped is implemented by document objects that carry a shape. Mesh
// objects whose shape reference is another document object do not.
type Shaped interface {
	Shape() *Shape
}

// DocumentBoundBox returns the union of the bounding boxes of every
// shaped object in the document, skipping objects without a shape and
// shapes with an invalid box. Nil when nothing contributes.
func DocumentBoundBox(doc model.Document) *BoundBox {
	var overall *BoundBox
	for _, obj := range doc.Objects() {
		shaped, ok := obj.(Shaped)
		if !ok {
			continue
		}
		shape := shaped.Shape()
		if shape == nil || !shape.BoundBox.IsValid() {
			continue
		}
		if overall == nil {
			bb := shape.BoundBox
			overall = &bb
			continue
		}
		overall.Add(shape.BoundBox)
	}
	return overall
}

// Selection is one selected object together with its selected
// sub-elements.
type Selection struct {
	Object    model.Object
	SubShapes []Shape
}

// SelectedFace returns the single selected face from a selection set.
// Anything else - no selection, multiple objects, multiple elements, or
// a non-face element - yields nil plus a reason string for the user.
// None of those cases is an error; the caller just asked a question.
func SelectedFace(selection []Selection) (*Shape, string) {
	if len(selection) != 1 {
		return nil, "none or more than one object selected"
	}
	sel := selection[0]
	if len(sel.SubShapes) != 1 {
		return nil, "more than one element selected"
	}
	face := sel.SubShapes[0]
	if face.Type != "Face" {
		return nil, "selected element is not a face"
	}
	return &face, ""
}
