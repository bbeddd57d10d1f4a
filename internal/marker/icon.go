package marker

import (
	"bytes"
	"encoding/json"
)

// Defaults applied to image and SVG icons when the descriptor leaves the
// field unset.
var (
	DefaultIconSize        = [2]int{32, 32}
	DefaultIconAnchor      = [2]int{16, 32}
	DefaultIconPopupAnchor = [2]int{0, -32}
)

// Icon describes a custom marker icon. On the wire it is either a plain
// string (a remote image URL) or a structured descriptor.
type Icon struct {
	URL         string  `json:"url,omitempty"`
	SVG         string  `json:"svg,omitempty"`
	Size        *[2]int `json:"size,omitempty"`
	Anchor      *[2]int `json:"anchor,omitempty"`
	PopupAnchor *[2]int `json:"popupAnchor,omitempty"`
	ClassName   string  `json:"className,omitempty"`

	// raw preserves the original wire form so re-serialization is
	// byte-identical regardless of which shape was received.
	raw json.RawMessage
}

// UnmarshalJSON accepts both wire shapes: a bare string or an object.
func (ic *Icon) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var url string
		if err := json.Unmarshal(trimmed, &url); err != nil {
			return err
		}
		*ic = Icon{URL: url, raw: append(json.RawMessage(nil), data...)}
		return nil
	}

	type plain Icon
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*ic = Icon(p)
	ic.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON re-emits the original wire form when the icon came off the
// wire, otherwise encodes the descriptor object.
func (ic Icon) MarshalJSON() ([]byte, error) {
	if ic.raw != nil {
		return ic.raw, nil
	}
	type plain Icon
	return json.Marshal(plain(ic))
}

// ResolvedIcon is an icon with every field filled in, ready for rendering.
type ResolvedIcon struct {
	// Default marks the built-in marker glyph; all other fields are
	// meaningless when set.
	Default bool `json:"default,omitempty"`

	URL         string `json:"url,omitempty"`
	SVG         string `json:"svg,omitempty"`
	Size        [2]int `json:"size"`
	Anchor      [2]int `json:"anchor"`
	PopupAnchor [2]int `json:"popupAnchor"`
	ClassName   string `json:"className,omitempty"`
}

// Resolve applies the icon defaulting rules: a nil icon maps to the
// built-in glyph; a URL is preferred over SVG content; size, anchor and
// popup anchor each default independently when absent.
func Resolve(ic *Icon) ResolvedIcon {
	if ic == nil {
		return ResolvedIcon{Default: true}
	}
	if ic.URL == "" && ic.SVG == "" {
		// Descriptor with no content locator still renders something.
		return ResolvedIcon{Default: true}
	}

	r := ResolvedIcon{
		Size:        DefaultIconSize,
		Anchor:      DefaultIconAnchor,
		PopupAnchor: DefaultIconPopupAnchor,
		ClassName:   ic.ClassName,
	}
	if ic.URL != "" {
		r.URL = ic.URL
	} else {
		r.SVG = ic.SVG
	}
	if ic.Size != nil {
		r.Size = *ic.Size
	}
	if ic.Anchor != nil {
		r.Anchor = *ic.Anchor
	}
	if ic.PopupAnchor != nil {
		r.PopupAnchor = *ic.PopupAnchor
	}
	return r
}
