package model

// Glyphs drawn by the renderers themselves, as opposed to the per-entry
// icons looked up in the icon table.
const (
	TreeTee       = "├── " // sibling follows
	TreeCorner    = "└── " // last sibling
	TreeBar       = "│   " // continuation under a non-last sibling
	TreeBlank     = "    " // continuation under the last sibling
	SymlinkArrow  = "→"
	NoFiles       = "[no files]"
	UnknownColumn = "<unknown>"
	ErrorCell     = "<error>"
)

// Version of the xlsd binary.
const Version = "0.5.0"
