package node

// Type identifies one of the closed set of layout component kinds a template
// tree may contain. The set is fixed at compile time; renderers are resolved
// against it and validation reports tags outside of it.
type Type string

// Content components draw directly onto the engine.
const (
	TypeText        Type = "text"
	TypeImage       Type = "image"
	TypeLine        Type = "line"
	TypeBarcode     Type = "barcode"
	TypeQRCode      Type = "qr-code"
	TypePlaceholder Type = "placeholder"
	TypePageNumber  Type = "page-number"
	TypeTotalPages  Type = "total-pages"
	TypeMarkdown    Type = "markdown"
	TypeSpacer      Type = "spacer"
)

// Size components constrain the box handed to their child.
const (
	TypeWidth         Type = "width"
	TypeHeight        Type = "height"
	TypeMinWidth      Type = "min-width"
	TypeMaxWidth      Type = "max-width"
	TypeMinHeight     Type = "min-height"
	TypeMaxHeight     Type = "max-height"
	TypeAspectRatio   Type = "aspect-ratio"
	TypeExtend        Type = "extend"
	TypeShrink        Type = "shrink"
	TypeUnconstrained Type = "unconstrained"
)

// Position components move or align their child.
const (
	TypePadding   Type = "padding"
	TypeAlignment Type = "alignment"
	TypeRotate    Type = "rotate"
	TypeScale     Type = "scale"
	TypeTranslate Type = "translate"
	TypeZIndex    Type = "z-index"
)

// Decoration components paint around their child.
const (
	TypeBackground       Type = "background"
	TypeBorder           Type = "border"
	TypeDefaultTextStyle Type = "default-text-style"
	TypeDebugArea        Type = "debug-area"
)

// Flow components control pagination and conditional output.
const (
	TypePageBreak  Type = "page-break"
	TypeShowIf     Type = "show-if"
	TypeShowOnce   Type = "show-once"
	TypeShowEntire Type = "show-entire"
	TypeSkipOnce   Type = "skip-once"
	TypeStopPaging Type = "stop-paging"
	TypeRepeat     Type = "repeat"
)

// Navigation components mark targets and links.
const (
	TypeSection     Type = "section"
	TypeSectionLink Type = "section-link"
	TypeHyperlink   Type = "hyperlink"
)

// Container components lay out multiple children, plus the geometry wrappers
// that historically shipped with them.
const (
	TypeColumn        Type = "column"
	TypeRow           Type = "row"
	TypeGrid          Type = "grid"
	TypeTable         Type = "table"
	TypeLayers        Type = "layers"
	TypeInlined       Type = "inlined"
	TypeDecorationBox Type = "decoration-box"
	TypeList          Type = "list"
	TypeScaleToFit    Type = "scale-to-fit"
	TypeFlip          Type = "flip"
)

// Category groups component types for diagnostics and registry reporting.
type Category string

const (
	CategoryContent    Category = "content"
	CategorySize       Category = "size"
	CategoryPosition   Category = "position"
	CategoryDecoration Category = "decoration"
	CategoryFlow       Category = "flow"
	CategoryNavigation Category = "navigation"
	CategoryContainer  Category = "container"
)

// Tier ranks how central a component is to everyday templates. Unknown-type
// errors carry it so callers can tell a typo in a core tag from a missing
// advanced extension.
type Tier string

const (
	TierCore     Tier = "core"
	TierExtended Tier = "extended"
	TierAdvanced Tier = "advanced"
)

// String implements fmt.Stringer.
func (t Type) String() string { return string(t) }

// Known reports whether the tag belongs to the closed component set.
func (t Type) Known() bool {
	_, ok := metadataTable[t]
	return ok
}
