package node

import "sort"

// ComponentMetadata describes one component type for diagnostics, registry
// completeness reporting, and editor tooling. The table is populated once at
// package init and is read-only afterwards.
type ComponentMetadata struct {
	Type        Type
	DisplayName string
	Description string
	Category    Category
	Tier        Tier
	// Required and Optional list the property names the component's schema
	// declares. They mirror the renderer schemas so tooling can describe a
	// component without instantiating its renderer.
	Required []string
	Optional []string
	// Capability names the document-engine primitive the component maps to.
	Capability string
}

var metadataTable = map[Type]ComponentMetadata{
	TypeText:        {Type: TypeText, DisplayName: "Text", Description: "Draws a run of text.", Category: CategoryContent, Tier: TierCore, Required: []string{"content"}, Capability: "text"},
	TypeImage:       {Type: TypeImage, DisplayName: "Image", Description: "Draws an image from a source reference.", Category: CategoryContent, Tier: TierCore, Required: []string{"source"}, Optional: []string{"fit"}, Capability: "image"},
	TypeLine:        {Type: TypeLine, DisplayName: "Line", Description: "Draws a horizontal or vertical rule.", Category: CategoryContent, Tier: TierCore, Optional: []string{"orientation", "thickness", "color"}, Capability: "line"},
	TypeBarcode:     {Type: TypeBarcode, DisplayName: "Barcode", Description: "Draws a one-dimensional barcode.", Category: CategoryContent, Tier: TierExtended, Required: []string{"value"}, Optional: []string{"symbology", "showText"}, Capability: "barcode"},
	TypeQRCode:      {Type: TypeQRCode, DisplayName: "QR Code", Description: "Draws a QR code.", Category: CategoryContent, Tier: TierExtended, Required: []string{"value"}, Optional: []string{"size"}, Capability: "barcode"},
	TypePlaceholder: {Type: TypePlaceholder, DisplayName: "Placeholder", Description: "Draws a labelled placeholder box.", Category: CategoryContent, Tier: TierExtended, Optional: []string{"label"}, Capability: "placeholder"},
	TypePageNumber:  {Type: TypePageNumber, DisplayName: "Page Number", Description: "Draws the current page number.", Category: CategoryContent, Tier: TierCore, Optional: []string{"format"}, Capability: "page-number"},
	TypeTotalPages:  {Type: TypeTotalPages, DisplayName: "Total Pages", Description: "Draws the total page count.", Category: CategoryContent, Tier: TierCore, Optional: []string{"format"}, Capability: "page-number"},
	TypeMarkdown:    {Type: TypeMarkdown, DisplayName: "Markdown", Description: "Renders markdown content as styled text.", Category: CategoryContent, Tier: TierAdvanced, Required: []string{"content"}, Capability: "text"},
	TypeSpacer:      {Type: TypeSpacer, DisplayName: "Spacer", Description: "Inserts empty space along the layout axis.", Category: CategoryContent, Tier: TierCore, Optional: []string{"size"}, Capability: "spacer"},

	TypeWidth:         {Type: TypeWidth, DisplayName: "Width", Description: "Fixes the child width.", Category: CategorySize, Tier: TierCore, Required: []string{"value"}, Capability: "constrain"},
	TypeHeight:        {Type: TypeHeight, DisplayName: "Height", Description: "Fixes the child height.", Category: CategorySize, Tier: TierCore, Required: []string{"value"}, Capability: "constrain"},
	TypeMinWidth:      {Type: TypeMinWidth, DisplayName: "Min Width", Description: "Sets a lower bound on child width.", Category: CategorySize, Tier: TierExtended, Required: []string{"value"}, Capability: "constrain"},
	TypeMaxWidth:      {Type: TypeMaxWidth, DisplayName: "Max Width", Description: "Sets an upper bound on child width.", Category: CategorySize, Tier: TierExtended, Required: []string{"value"}, Capability: "constrain"},
	TypeMinHeight:     {Type: TypeMinHeight, DisplayName: "Min Height", Description: "Sets a lower bound on child height.", Category: CategorySize, Tier: TierExtended, Required: []string{"value"}, Capability: "constrain"},
	TypeMaxHeight:     {Type: TypeMaxHeight, DisplayName: "Max Height", Description: "Sets an upper bound on child height.", Category: CategorySize, Tier: TierExtended, Required: []string{"value"}, Capability: "constrain"},
	TypeAspectRatio:   {Type: TypeAspectRatio, DisplayName: "Aspect Ratio", Description: "Constrains the child to a width/height ratio.", Category: CategorySize, Tier: TierCore, Required: []string{"ratio"}, Optional: []string{"option"}, Capability: "aspect-ratio"},
	TypeExtend:        {Type: TypeExtend, DisplayName: "Extend", Description: "Grows the child to fill available space.", Category: CategorySize, Tier: TierCore, Optional: []string{"horizontal", "vertical"}, Capability: "extend"},
	TypeShrink:        {Type: TypeShrink, DisplayName: "Shrink", Description: "Shrinks the child to its minimal size.", Category: CategorySize, Tier: TierExtended, Optional: []string{"horizontal", "vertical"}, Capability: "shrink"},
	TypeUnconstrained: {Type: TypeUnconstrained, DisplayName: "Unconstrained", Description: "Removes inherited size constraints.", Category: CategorySize, Tier: TierAdvanced, Capability: "unconstrained"},

	TypePadding:   {Type: TypePadding, DisplayName: "Padding", Description: "Pads the child on one or more edges.", Category: CategoryPosition, Tier: TierCore, Optional: []string{"all", "top", "right", "bottom", "left"}, Capability: "pad"},
	TypeAlignment: {Type: TypeAlignment, DisplayName: "Alignment", Description: "Aligns the child inside the available box.", Category: CategoryPosition, Tier: TierCore, Optional: []string{"horizontal", "vertical"}, Capability: "align"},
	TypeRotate:    {Type: TypeRotate, DisplayName: "Rotate", Description: "Rotates the child by an angle in degrees.", Category: CategoryPosition, Tier: TierExtended, Required: []string{"degrees"}, Capability: "rotate"},
	TypeScale:     {Type: TypeScale, DisplayName: "Scale", Description: "Scales the child by X/Y factors.", Category: CategoryPosition, Tier: TierExtended, Optional: []string{"x", "y"}, Capability: "scale"},
	TypeTranslate: {Type: TypeTranslate, DisplayName: "Translate", Description: "Offsets the child without affecting layout.", Category: CategoryPosition, Tier: TierAdvanced, Optional: []string{"x", "y"}, Capability: "translate"},
	TypeZIndex:    {Type: TypeZIndex, DisplayName: "Z Index", Description: "Changes the stacking depth of the child.", Category: CategoryPosition, Tier: TierAdvanced, Optional: []string{"depth"}, Capability: "z-index"},

	TypeBackground:       {Type: TypeBackground, DisplayName: "Background", Description: "Fills the child box with a color.", Category: CategoryDecoration, Tier: TierCore, Required: []string{"color"}, Capability: "background"},
	TypeBorder:           {Type: TypeBorder, DisplayName: "Border", Description: "Strokes the child box edges.", Category: CategoryDecoration, Tier: TierCore, Optional: []string{"thickness", "color", "top", "right", "bottom", "left"}, Capability: "border"},
	TypeDefaultTextStyle: {Type: TypeDefaultTextStyle, DisplayName: "Default Text Style", Description: "Sets the inherited text style for the subtree.", Category: CategoryDecoration, Tier: TierCore, Capability: "compose"},
	TypeDebugArea:        {Type: TypeDebugArea, DisplayName: "Debug Area", Description: "Outlines the child box with a labelled overlay.", Category: CategoryDecoration, Tier: TierAdvanced, Optional: []string{"label", "color"}, Capability: "debug-area"},

	TypePageBreak:  {Type: TypePageBreak, DisplayName: "Page Break", Description: "Forces the following content onto a new page.", Category: CategoryFlow, Tier: TierCore, Capability: "page-break"},
	TypeShowIf:     {Type: TypeShowIf, DisplayName: "Show If", Description: "Renders the child only when a condition holds.", Category: CategoryFlow, Tier: TierCore, Required: []string{"condition"}, Capability: "show"},
	TypeShowOnce:   {Type: TypeShowOnce, DisplayName: "Show Once", Description: "Renders the child on the first occurrence only.", Category: CategoryFlow, Tier: TierExtended, Capability: "show"},
	TypeShowEntire: {Type: TypeShowEntire, DisplayName: "Show Entire", Description: "Keeps the child unsplit across page breaks.", Category: CategoryFlow, Tier: TierExtended, Capability: "show"},
	TypeSkipOnce:   {Type: TypeSkipOnce, DisplayName: "Skip Once", Description: "Skips the child on its first occurrence.", Category: CategoryFlow, Tier: TierExtended, Capability: "show"},
	TypeStopPaging: {Type: TypeStopPaging, DisplayName: "Stop Paging", Description: "Renders only what fits on the current page.", Category: CategoryFlow, Tier: TierAdvanced, Capability: "show"},
	TypeRepeat:     {Type: TypeRepeat, DisplayName: "Repeat", Description: "Repeats the child for every element of a bound collection.", Category: CategoryFlow, Tier: TierExtended, Required: []string{"source"}, Optional: []string{"limit", "as"}, Capability: "compose"},

	TypeSection:     {Type: TypeSection, DisplayName: "Section", Description: "Begins a named document section.", Category: CategoryNavigation, Tier: TierCore, Required: []string{"name"}, Capability: "section"},
	TypeSectionLink: {Type: TypeSectionLink, DisplayName: "Section Link", Description: "Links the child to a named section.", Category: CategoryNavigation, Tier: TierExtended, Required: []string{"target"}, Capability: "section-link"},
	TypeHyperlink:   {Type: TypeHyperlink, DisplayName: "Hyperlink", Description: "Links the child to an external URL.", Category: CategoryNavigation, Tier: TierCore, Required: []string{"url"}, Capability: "hyperlink"},

	TypeColumn:        {Type: TypeColumn, DisplayName: "Column", Description: "Stacks children vertically.", Category: CategoryContainer, Tier: TierCore, Optional: []string{"spacing"}, Capability: "stack"},
	TypeRow:           {Type: TypeRow, DisplayName: "Row", Description: "Stacks children horizontally.", Category: CategoryContainer, Tier: TierCore, Optional: []string{"spacing"}, Capability: "stack"},
	TypeGrid:          {Type: TypeGrid, DisplayName: "Grid", Description: "Lays children out on a fixed column grid.", Category: CategoryContainer, Tier: TierExtended, Optional: []string{"columns", "spacing"}, Capability: "grid"},
	TypeTable:         {Type: TypeTable, DisplayName: "Table", Description: "Lays children out as table cells.", Category: CategoryContainer, Tier: TierExtended, Required: []string{"columns"}, Capability: "table"},
	TypeLayers:        {Type: TypeLayers, DisplayName: "Layers", Description: "Draws children on top of each other.", Category: CategoryContainer, Tier: TierAdvanced, Capability: "stack"},
	TypeInlined:       {Type: TypeInlined, DisplayName: "Inlined", Description: "Flows children like words in a paragraph.", Category: CategoryContainer, Tier: TierExtended, Optional: []string{"spacing", "alignment"}, Capability: "stack"},
	TypeDecorationBox: {Type: TypeDecorationBox, DisplayName: "Decoration", Description: "Renders before/after slots around repeating content.", Category: CategoryContainer, Tier: TierAdvanced, Capability: "decoration"},
	TypeList:          {Type: TypeList, DisplayName: "List", Description: "Stacks children with a leading marker.", Category: CategoryContainer, Tier: TierExtended, Optional: []string{"marker", "spacing"}, Capability: "stack"},
	TypeScaleToFit:    {Type: TypeScaleToFit, DisplayName: "Scale To Fit", Description: "Scales the child down until it fits.", Category: CategoryContainer, Tier: TierAdvanced, Capability: "scale-to-fit"},
	TypeFlip:          {Type: TypeFlip, DisplayName: "Flip", Description: "Mirrors the child horizontally or vertically.", Category: CategoryContainer, Tier: TierAdvanced, Optional: []string{"mode"}, Capability: "flip"},
}

var allTypes []Type

func init() {
	allTypes = make([]Type, 0, len(metadataTable))
	for t := range metadataTable {
		allTypes = append(allTypes, t)
	}
	sort.Slice(allTypes, func(i, j int) bool { return allTypes[i] < allTypes[j] })
}

// Metadata returns the metadata entry for a type tag.
func Metadata(t Type) (ComponentMetadata, bool) {
	meta, ok := metadataTable[t]
	return meta, ok
}

// AllTypes returns the closed component set in lexical order. Callers must
// not mutate the returned slice.
func AllTypes() []Type {
	return allTypes
}

// TypesInCategory returns the type tags belonging to a category, in lexical
// order.
func TypesInCategory(cat Category) []Type {
	var out []Type
	for _, t := range allTypes {
		if metadataTable[t].Category == cat {
			out = append(out, t)
		}
	}
	return out
}
