// Package trace provides the reference engine.Container implementation: a
// recorder that captures every layout primitive as a tree of operations.
// The op tree backs golden tests, the CLI's trace output, and binary
// capture for replay tooling.
package trace

import (
	"encoding/json"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/goliatone/go-docgen/pkg/engine"
	"github.com/goliatone/go-docgen/pkg/style"
)

// Op is one recorded layout operation. Wrapper and composition ops carry
// children; leaf ops do not.
type Op struct {
	Name     string         `json:"name" msgpack:"name"`
	Args     map[string]any `json:"args,omitempty" msgpack:"args,omitempty"`
	Children []*Op          `json:"children,omitempty" msgpack:"children,omitempty"`
}

// Find returns the first op in the subtree with the given name, depth first.
func (o *Op) Find(name string) *Op {
	if o == nil {
		return nil
	}
	if o.Name == name {
		return o
	}
	for _, child := range o.Children {
		if hit := child.Find(name); hit != nil {
			return hit
		}
	}
	return nil
}

// Count returns the number of ops in the subtree with the given name.
func (o *Op) Count(name string) int {
	if o == nil {
		return 0
	}
	n := 0
	if o.Name == name {
		n = 1
	}
	for _, child := range o.Children {
		n += child.Count(name)
	}
	return n
}

// Recorder implements engine.Container by appending ops under a shared
// root. All containers cloned from one recorder share a mutex, so a single
// render pass may touch the tree from multiple goroutines.
type Recorder struct {
	mu *sync.Mutex
	op *Op
}

// NewRecorder returns a recorder positioned at a fresh root op.
func NewRecorder() *Recorder {
	return &Recorder{
		mu: &sync.Mutex{},
		op: &Op{Name: "document"},
	}
}

// Root returns the recorded op tree. Callers should treat it as read-only
// once the render pass finished.
func (r *Recorder) Root() *Op {
	return r.op
}

// JSON serialises the op tree for inspection.
func (r *Recorder) JSON() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return json.MarshalIndent(r.op, "", "  ")
}

// Capture serialises the op tree into its compact binary form.
func (r *Recorder) Capture() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return msgpack.Marshal(r.op)
}

// Decode restores an op tree produced by Capture.
func Decode(data []byte) (*Op, error) {
	var op Op
	if err := msgpack.Unmarshal(data, &op); err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *Recorder) child(name string, args map[string]any) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	op := &Op{Name: name, Args: args}
	r.op.Children = append(r.op.Children, op)
	return &Recorder{mu: r.mu, op: op}
}

func (r *Recorder) leaf(name string, args map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.op.Children = append(r.op.Children, &Op{Name: name, Args: args})
}

func (r *Recorder) slots(name string, args map[string]any, count int) []engine.Container {
	r.mu.Lock()
	defer r.mu.Unlock()
	op := &Op{Name: name, Args: args}
	r.op.Children = append(r.op.Children, op)
	out := make([]engine.Container, count)
	for i := range out {
		slot := &Op{Name: "slot", Args: map[string]any{"index": i}}
		op.Children = append(op.Children, slot)
		out[i] = &Recorder{mu: r.mu, op: slot}
	}
	return out
}

// Wrapper primitives.

func (r *Recorder) Constrain(axis engine.Axis, min, max float64) engine.Container {
	if max > 0 && min > max {
		panic(&engine.LayoutError{Op: "constrain", Detail: "min exceeds max"})
	}
	return r.child("constrain", map[string]any{"axis": string(axis), "min": min, "max": max})
}

func (r *Recorder) AspectRatio(ratio float64, option engine.AspectOption) engine.Container {
	if ratio <= 0 {
		panic(&engine.LayoutError{Op: "aspect-ratio", Detail: "ratio must be positive"})
	}
	return r.child("aspect-ratio", map[string]any{"ratio": ratio, "option": string(option)})
}

func (r *Recorder) Align(h engine.HAlign, v engine.VAlign) engine.Container {
	return r.child("align", map[string]any{"horizontal": string(h), "vertical": string(v)})
}

func (r *Recorder) Pad(top, right, bottom, left float64) engine.Container {
	return r.child("pad", map[string]any{"top": top, "right": right, "bottom": bottom, "left": left})
}

func (r *Recorder) Background(color string) engine.Container {
	return r.child("background", map[string]any{"color": color})
}

func (r *Recorder) Border(top, right, bottom, left float64, color string) engine.Container {
	return r.child("border", map[string]any{
		"top": top, "right": right, "bottom": bottom, "left": left, "color": color,
	})
}

func (r *Recorder) Rotate(degrees float64) engine.Container {
	return r.child("rotate", map[string]any{"degrees": degrees})
}

func (r *Recorder) Scale(x, y float64) engine.Container {
	if x == 0 || y == 0 {
		panic(&engine.LayoutError{Op: "scale", Detail: "zero scale factor"})
	}
	return r.child("scale", map[string]any{"x": x, "y": y})
}

func (r *Recorder) Translate(x, y float64) engine.Container {
	return r.child("translate", map[string]any{"x": x, "y": y})
}

func (r *Recorder) Flip(mode engine.FlipMode) engine.Container {
	return r.child("flip", map[string]any{"mode": string(mode)})
}

func (r *Recorder) ScaleToFit() engine.Container {
	return r.child("scale-to-fit", nil)
}

func (r *Recorder) Unconstrained() engine.Container {
	return r.child("unconstrained", nil)
}

func (r *Recorder) Extend(horizontal, vertical bool) engine.Container {
	return r.child("extend", map[string]any{"horizontal": horizontal, "vertical": vertical})
}

func (r *Recorder) Shrink(horizontal, vertical bool) engine.Container {
	return r.child("shrink", map[string]any{"horizontal": horizontal, "vertical": vertical})
}

func (r *Recorder) ZIndex(depth int) engine.Container {
	return r.child("z-index", map[string]any{"depth": depth})
}

func (r *Recorder) Section(name string) engine.Container {
	return r.child("section", map[string]any{"name": name})
}

func (r *Recorder) SectionLink(target string) engine.Container {
	return r.child("section-link", map[string]any{"target": target})
}

func (r *Recorder) Hyperlink(url string) engine.Container {
	return r.child("hyperlink", map[string]any{"url": url})
}

func (r *Recorder) Show(mode engine.ShowMode) engine.Container {
	return r.child("show", map[string]any{"mode": string(mode)})
}

func (r *Recorder) DebugArea(label, color string) engine.Container {
	return r.child("debug-area", map[string]any{"label": label, "color": color})
}

// Composition primitives.

func (r *Recorder) Stack(kind engine.StackKind, spacing float64, count int) []engine.Container {
	return r.slots("stack", map[string]any{"kind": string(kind), "spacing": spacing}, count)
}

func (r *Recorder) Grid(columns int, spacing float64, spans []int) []engine.Container {
	return r.slots("grid", map[string]any{"columns": columns, "spacing": spacing, "spans": spans}, len(spans))
}

func (r *Recorder) Table(columns []engine.ColumnDef, cells []engine.CellDef) []engine.Container {
	defs := make([]map[string]any, len(columns))
	for i, col := range columns {
		defs[i] = map[string]any{"weight": col.Weight, "fixed": col.Fixed}
	}
	slots := r.slots("table", map[string]any{"columns": defs}, len(cells))
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, cell := range cells {
		slot := slots[i].(*Recorder)
		slot.op.Args["row"] = cell.Row
		slot.op.Args["column"] = cell.Column
		slot.op.Args["rowSpan"] = cell.RowSpan
		slot.op.Args["colSpan"] = cell.ColumnSpan
	}
	return slots
}

func (r *Recorder) Decoration() (before, content, after engine.Container) {
	slots := r.slots("decoration", nil, 3)
	r.mu.Lock()
	for i, name := range []string{"before", "content", "after"} {
		slots[i].(*Recorder).op.Args = map[string]any{"slot": name}
	}
	r.mu.Unlock()
	return slots[0], slots[1], slots[2]
}

// Leaf primitives.

func (r *Recorder) Text(content string, textStyle style.Properties) {
	r.leaf("text", map[string]any{"content": content, "style": styleArgs(textStyle)})
}

func (r *Recorder) Image(source string, fit engine.ImageFit) {
	r.leaf("image", map[string]any{"source": source, "fit": string(fit)})
}

func (r *Recorder) Line(orientation engine.Orientation, thickness float64, color string) {
	r.leaf("line", map[string]any{"orientation": string(orientation), "thickness": thickness, "color": color})
}

func (r *Recorder) PageBreak() {
	r.leaf("page-break", nil)
}

func (r *Recorder) PageNumber(format string, total bool, textStyle style.Properties) {
	r.leaf("page-number", map[string]any{"format": format, "total": total, "style": styleArgs(textStyle)})
}

func (r *Recorder) Barcode(symbology, value string, showText bool) {
	r.leaf("barcode", map[string]any{"symbology": symbology, "value": value, "showText": showText})
}

func (r *Recorder) Placeholder(label string) {
	r.leaf("placeholder", map[string]any{"label": label})
}

func (r *Recorder) Spacer(size float64) {
	r.leaf("spacer", map[string]any{"size": size})
}

func styleArgs(s style.Properties) map[string]any {
	out := map[string]any{}
	if s.FontFamily != "" {
		out["fontFamily"] = s.FontFamily
	}
	if s.FontSize != 0 {
		out["fontSize"] = s.FontSize
	}
	if s.LineHeight != 0 {
		out["lineHeight"] = s.LineHeight
	}
	if s.LetterSpacing != 0 {
		out["letterSpacing"] = s.LetterSpacing
	}
	if s.FontColor != "" {
		out["fontColor"] = s.FontColor
	}
	if s.BackgroundColor != "" {
		out["backgroundColor"] = s.BackgroundColor
	}
	if s.Alignment != "" {
		out["alignment"] = s.Alignment
	}
	if s.Bold != nil && *s.Bold {
		out["bold"] = true
	}
	if s.Italic != nil && *s.Italic {
		out["italic"] = true
	}
	if s.Underline != nil && *s.Underline {
		out["underline"] = true
	}
	if s.Strikethrough != nil && *s.Strikethrough {
		out["strikethrough"] = true
	}
	return out
}
