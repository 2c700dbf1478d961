package emailblocks

import (
	"regexp"
	"sort"
	"strings"
)

// SizeBucket is a named semantic size option. Buckets are resolved to concrete
// CSS values through fixed lookup tables, never interpreted as raw values.
type SizeBucket string

const (
	SizeNone SizeBucket = "none"
	SizeXS   SizeBucket = "xs"
	SizeSM   SizeBucket = "sm"
	SizeMD   SizeBucket = "md"
	SizeLG   SizeBucket = "lg"
	SizeXL   SizeBucket = "xl"
	Size2XL  SizeBucket = "2xl"
	SizeFull SizeBucket = "full" // border-radius only
)

// LineHeightBucket is a named line-height option.
type LineHeightBucket string

const (
	LineHeightTight   LineHeightBucket = "tight"
	LineHeightNormal  LineHeightBucket = "normal"
	LineHeightRelaxed LineHeightBucket = "relaxed"
	LineHeightLoose   LineHeightBucket = "loose"
)

// StyleOptions is the sparse semantic style record carried by every block.
// Bucketed options resolve through the scales below; direct-value fields are
// emitted as-is. Unset options are omitted from the CSS output.
type StyleOptions struct {
	Padding      SizeBucket       `json:"padding,omitempty"`
	Margin       SizeBucket       `json:"margin,omitempty"`
	FontSize     SizeBucket       `json:"fontSize,omitempty"`
	LineHeight   LineHeightBucket `json:"lineHeight,omitempty"`
	BorderWidth  SizeBucket       `json:"borderWidth,omitempty"`
	BorderRadius SizeBucket       `json:"borderRadius,omitempty"`

	TextColor      string `json:"textColor,omitempty"`
	BorderColor    string `json:"borderColor,omitempty"`
	FontFamily     string `json:"fontFamily,omitempty"`
	FontWeight     string `json:"fontWeight,omitempty"`
	TextAlign      string `json:"textAlign,omitempty"` // left, center, right
	BorderStyle    string `json:"borderStyle,omitempty"`
	TextDecoration string `json:"textDecoration,omitempty"`

	Width  string `json:"width,omitempty"`
	Height string `json:"height,omitempty"`
}

var spacingScale = map[SizeBucket]string{
	SizeNone: "0",
	SizeXS:   "4px",
	SizeSM:   "8px",
	SizeMD:   "16px",
	SizeLG:   "24px",
	SizeXL:   "32px",
	Size2XL:  "48px",
}

var fontSizeScale = map[SizeBucket]string{
	SizeXS:  "12px",
	SizeSM:  "14px",
	SizeMD:  "16px",
	SizeLG:  "20px",
	SizeXL:  "24px",
	Size2XL: "32px",
}

var lineHeightScale = map[LineHeightBucket]string{
	LineHeightTight:   "1.25",
	LineHeightNormal:  "1.5",
	LineHeightRelaxed: "1.75",
	LineHeightLoose:   "2",
}

var borderWidthScale = map[SizeBucket]string{
	SizeNone: "0",
	SizeXS:   "1px",
	SizeSM:   "2px",
	SizeMD:   "3px",
	SizeLG:   "4px",
	SizeXL:   "6px",
}

var borderRadiusScale = map[SizeBucket]string{
	SizeNone: "0",
	SizeXS:   "2px",
	SizeSM:   "4px",
	SizeMD:   "8px",
	SizeLG:   "12px",
	SizeXL:   "16px",
	Size2XL:  "24px",
	SizeFull: "9999px",
}

// dimensionRe matches explicit pixel or percent dimensions for width/height
// passthrough.
var dimensionRe = regexp.MustCompile(`^\d+(px|%)$`)

// ToCSS converts the semantic style options into a CSS property map.
// Unrecognized or unset options are omitted, never an error.
func ToCSS(s StyleOptions) map[string]string {
	css := make(map[string]string)

	if v, ok := spacingScale[s.Padding]; ok && s.Padding != "" {
		css["padding"] = v
	}
	if v, ok := spacingScale[s.Margin]; ok && s.Margin != "" {
		css["margin"] = v
	}
	if v, ok := fontSizeScale[s.FontSize]; ok && s.FontSize != "" {
		css["font-size"] = v
	}
	if v, ok := lineHeightScale[s.LineHeight]; ok && s.LineHeight != "" {
		css["line-height"] = v
	}
	if v, ok := borderWidthScale[s.BorderWidth]; ok && s.BorderWidth != "" {
		css["border-width"] = v
	}
	if v, ok := borderRadiusScale[s.BorderRadius]; ok && s.BorderRadius != "" {
		css["border-radius"] = v
	}

	if s.TextColor != "" {
		css["color"] = s.TextColor
	}
	if s.BorderColor != "" {
		css["border-color"] = s.BorderColor
	}
	if s.FontFamily != "" {
		css["font-family"] = s.FontFamily
	}
	if s.FontWeight != "" {
		css["font-weight"] = s.FontWeight
	}
	if s.TextAlign != "" {
		css["text-align"] = s.TextAlign
	}
	if s.BorderStyle != "" {
		css["border-style"] = s.BorderStyle
	}
	if s.TextDecoration != "" {
		css["text-decoration"] = s.TextDecoration
	}

	if isPassthroughDimension(s.Width) {
		css["width"] = s.Width
	}
	if isPassthroughDimension(s.Height) {
		css["height"] = s.Height
	}

	return css
}

// isPassthroughDimension reports whether a width/height value is accepted
// verbatim: the literals "auto" and "100%", or an explicit px/percent value.
func isPassthroughDimension(v string) bool {
	if v == "" {
		return false
	}
	if v == "auto" || v == "100%" {
		return true
	}
	return dimensionRe.MatchString(v)
}

// InlineStyle renders a CSS property map as an inline style string with
// sorted keys, so identical inputs always produce identical markup.
func InlineStyle(css map[string]string) string {
	if len(css) == 0 {
		return ""
	}
	keys := make([]string, 0, len(css))
	for k, v := range css {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteString(":")
		sb.WriteString(css[k])
		sb.WriteString(";")
	}
	return sb.String()
}

// mergeCSS copies entries from src into dst without overriding existing keys.
func mergeCSS(dst, src map[string]string) {
	for k, v := range src {
		if _, exists := dst[k]; !exists {
			dst[k] = v
		}
	}
}
