// Package engine defines the document-engine capability consumed by the
// render pipeline. The core issues primitive layout operations against a
// Container and owns no engine objects itself; actual page geometry, glyph
// shaping, and vector output live behind an implementation of this
// interface (the trace recorder in engine/trace is the reference one).
package engine

import (
	"fmt"

	"github.com/goliatone/go-docgen/pkg/style"
)

// Axis selects the dimension a size constraint applies to.
type Axis string

const (
	AxisWidth  Axis = "width"
	AxisHeight Axis = "height"
)

// AspectOption controls how an aspect-ratio constraint resolves against the
// available space.
type AspectOption string

const (
	AspectFitWidth  AspectOption = "fit-width"
	AspectFitHeight AspectOption = "fit-height"
	AspectFitArea   AspectOption = "fit-area"
)

// HAlign and VAlign position a child inside its box.
type HAlign string

const (
	AlignLeft   HAlign = "left"
	AlignCenter HAlign = "center"
	AlignRight  HAlign = "right"
)

type VAlign string

const (
	AlignTop    VAlign = "top"
	AlignMiddle VAlign = "middle"
	AlignBottom VAlign = "bottom"
)

// StackKind selects the layout direction of a multi-child composition.
type StackKind string

const (
	StackColumn  StackKind = "column"
	StackRow     StackKind = "row"
	StackLayers  StackKind = "layers"
	StackInlined StackKind = "inlined"
	StackList    StackKind = "list"
)

// ShowMode selects a paging visibility behaviour.
type ShowMode string

const (
	ShowOnce   ShowMode = "once"
	ShowEntire ShowMode = "entire"
	SkipOnce   ShowMode = "skip-once"
	StopPaging ShowMode = "stop-paging"
)

// FlipMode mirrors a child box.
type FlipMode string

const (
	FlipHorizontal FlipMode = "horizontal"
	FlipVertical   FlipMode = "vertical"
	FlipBoth       FlipMode = "both"
)

// ImageFit controls image scaling inside its box.
type ImageFit string

const (
	FitWidth          ImageFit = "width"
	FitHeight         ImageFit = "height"
	FitArea           ImageFit = "area"
	FitUnproportional ImageFit = "unproportional"
)

// Orientation selects the direction of a drawn rule.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// ColumnDef describes one table column: either a relative weight or a fixed
// width (points).
type ColumnDef struct {
	Weight float64
	Fixed  float64
}

// CellDef positions one table cell. Zero spans default to 1.
type CellDef struct {
	Row        int
	Column     int
	RowSpan    int
	ColumnSpan int
}

// Container is the drawing surface for exactly one node. Wrapper operations
// return the container the wrapped child renders into; composition
// operations return one slot per child; leaf operations terminate a slot.
//
// Implementations signal impossible layout constraints by panicking with a
// *LayoutError; the render pass converts the panic into a fatal error for
// that pass and propagates it unchanged.
type Container interface {
	// Wrapper primitives.
	Constrain(axis Axis, min, max float64) Container
	AspectRatio(ratio float64, option AspectOption) Container
	Align(h HAlign, v VAlign) Container
	Pad(top, right, bottom, left float64) Container
	Background(color string) Container
	Border(top, right, bottom, left float64, color string) Container
	Rotate(degrees float64) Container
	Scale(x, y float64) Container
	Translate(x, y float64) Container
	Flip(mode FlipMode) Container
	ScaleToFit() Container
	Unconstrained() Container
	Extend(horizontal, vertical bool) Container
	Shrink(horizontal, vertical bool) Container
	ZIndex(depth int) Container
	Section(name string) Container
	SectionLink(target string) Container
	Hyperlink(url string) Container
	Show(mode ShowMode) Container
	DebugArea(label, color string) Container

	// Composition primitives.
	Stack(kind StackKind, spacing float64, count int) []Container
	Grid(columns int, spacing float64, spans []int) []Container
	Table(columns []ColumnDef, cells []CellDef) []Container
	Decoration() (before, content, after Container)

	// Leaf primitives.
	Text(content string, textStyle style.Properties)
	Image(source string, fit ImageFit)
	Line(orientation Orientation, thickness float64, color string)
	PageBreak()
	PageNumber(format string, total bool, textStyle style.Properties)
	Barcode(symbology, value string, showText bool)
	Placeholder(label string)
	Spacer(size float64)
}

// LayoutError is raised by engine implementations when constraints cannot be
// satisfied, e.g. a fixed size larger than the remaining space. It aborts
// the render pass that triggered it.
type LayoutError struct {
	Op     string
	Detail string
}

func (e *LayoutError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("engine: impossible layout constraint in %s", e.Op)
	}
	return fmt.Sprintf("engine: impossible layout constraint in %s: %s", e.Op, e.Detail)
}
