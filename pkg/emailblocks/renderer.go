package emailblocks

import (
	"fmt"
	"html"
	"strings"
)

// Default document chrome applied when global styles are unset.
const (
	defaultContainerWidth  = 600
	defaultFontFamily      = "Arial, Helvetica, sans-serif"
	defaultBackgroundColor = "#f4f4f4"
	defaultContainerColor  = "#ffffff"
)

// Button variant colors. A custom background color on the block always wins
// over the variant default.
const (
	accentBlue    = "#3B82F6"
	secondaryGray = "#6B7280"
	dividerGray   = "#E5E7EB"
)

var buttonVariantColors = map[ButtonStyle]string{
	ButtonStylePrimary:   accentBlue,
	ButtonStyleSecondary: secondaryGray,
	ButtonStyleOutline:   "transparent",
	ButtonStyleGhost:     "transparent",
}

// defaultAlignment returns the alignment applied when a block's styles carry
// none: left for body text, center for the structural variants.
func defaultAlignment(t BlockType) string {
	switch t {
	case BlockTypeText:
		return "left"
	default:
		return "center"
	}
}

// RenderDocument converts a Block Document into a complete email-client-safe
// HTML document. It is a pure function: same input, byte-identical output.
// Blocks render in orderId order; unknown block types are dropped silently.
func RenderDocument(doc *EmailDocument) string {
	if doc == nil {
		doc = &EmailDocument{}
	}

	width := doc.GlobalStyles.ContainerWidth
	if width <= 0 {
		width = defaultContainerWidth
	}
	fontFamily := doc.GlobalStyles.FontFamily
	if fontFamily == "" {
		fontFamily = defaultFontFamily
	}
	bgColor := doc.GlobalStyles.BackgroundColor
	if bgColor == "" {
		bgColor = defaultBackgroundColor
	}
	containerColor := doc.GlobalStyles.ContainerBackgroundColor
	if containerColor == "" {
		containerColor = defaultContainerColor
	}

	title := doc.Subject
	if title == "" {
		title = "Email"
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html>\n<head>\n")
	sb.WriteString("<meta charset=\"utf-8\" />\n")
	sb.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\" />\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", html.EscapeString(title))
	sb.WriteString("</head>\n")
	fmt.Fprintf(&sb, "<body style=\"margin:0;padding:0;background-color:%s;\">\n", bgColor)

	if doc.Preheader != "" {
		// Hidden preview text shown by inbox clients next to the subject.
		fmt.Fprintf(&sb, "<div style=\"display:none;font-size:1px;line-height:1px;max-height:0;max-width:0;opacity:0;overflow:hidden;\">%s</div>\n", html.EscapeString(doc.Preheader))
	}

	fmt.Fprintf(&sb, "<table role=\"presentation\" width=\"100%%\" cellpadding=\"0\" cellspacing=\"0\" border=\"0\" style=\"background-color:%s;\">\n", bgColor)
	sb.WriteString("<tr><td align=\"center\" style=\"padding:24px 0;\">\n")
	fmt.Fprintf(&sb, "<table role=\"presentation\" width=\"%d\" cellpadding=\"0\" cellspacing=\"0\" border=\"0\" style=\"background-color:%s;font-family:%s;max-width:%dpx;width:100%%;\">\n",
		width, containerColor, fontFamily, width)

	for _, block := range doc.SortedBlocks() {
		sb.WriteString(renderBlock(block))
	}

	sb.WriteString("</table>\n")
	sb.WriteString("</td></tr>\n")
	sb.WriteString("</table>\n")
	sb.WriteString("</body>\n</html>\n")
	return sb.String()
}

// renderBlock dispatches on the block type and emits one table row tagged
// with data-block-id and data-block-type on the <tr>. These two attributes
// are the round-trip contract with the parser. Unknown types render empty.
func renderBlock(b Block) string {
	var inner string
	extraAttrs := ""

	switch b.BlockType {
	case BlockTypeHeader:
		inner = renderHeader(b)
	case BlockTypeHero:
		inner = renderHero(b)
	case BlockTypeText:
		inner = renderText(b)
	case BlockTypeImage:
		inner = renderImage(b)
	case BlockTypeButton:
		inner = renderButton(b)
	case BlockTypeDivider:
		inner, extraAttrs = renderDivider(b)
	case BlockTypeFooter:
		inner = renderFooter(b)
	case BlockTypeFeatures:
		inner, extraAttrs = renderFeatures(b)
	default:
		return ""
	}

	return fmt.Sprintf("<tr data-block-id=\"%s\" data-block-type=\"%s\"%s>%s</tr>\n",
		attrEscape(b.ID), attrEscape(string(b.BlockType)), extraAttrs, inner)
}

// blockCSS resolves the block's semantic styles to CSS and applies the
// alignment default for its type when no alignment is set.
func blockCSS(b Block) map[string]string {
	css := ToCSS(b.Styles)
	if css["text-align"] == "" {
		css["text-align"] = defaultAlignment(b.BlockType)
	}
	return css
}

func renderHeader(b Block) string {
	var c HeaderContent
	if err := decodeContent(b, &c); err != nil {
		c = HeaderContent{}
	}

	css := blockCSS(b)
	if _, ok := css["padding"]; !ok {
		css["padding"] = spacingScale[SizeLG]
	}

	if c.ImageURL != "" {
		img := fmt.Sprintf("<img src=\"%s\" alt=\"%s\" style=\"display:inline-block;max-width:200px;height:auto;\" />",
			attrEscape(c.ImageURL), attrEscape(c.ImageAlt))
		return fmt.Sprintf("<td style=\"%s\">%s</td>", InlineStyle(css), img)
	}

	text := c.Text
	if text == "" {
		text = "Company Name"
	}
	return fmt.Sprintf("<td style=\"%s\"><h1 style=\"margin:0;\">%s</h1></td>", InlineStyle(css), text)
}

func renderHero(b Block) string {
	var c HeroContent
	if err := decodeContent(b, &c); err != nil {
		c = HeroContent{}
	}

	css := blockCSS(b)
	if _, ok := css["padding"]; !ok {
		css["padding"] = spacingScale[SizeXL]
	}

	var body strings.Builder
	fmt.Fprintf(&body, "<h1 style=\"margin:0;\">%s</h1>", c.Headline)
	if c.Subheadline != "" {
		fmt.Fprintf(&body, "<p style=\"margin:12px 0 0 0;\">%s</p>", c.Subheadline)
	}
	return fmt.Sprintf("<td style=\"%s\">%s</td>", InlineStyle(css), body.String())
}

func renderText(b Block) string {
	var c TextContent
	if err := decodeContent(b, &c); err != nil {
		c = TextContent{}
	}

	css := blockCSS(b)
	if _, ok := css["padding"]; !ok {
		css["padding"] = spacingScale[SizeMD]
	}

	// Body text is emitted literally; sanitization is the caller's concern.
	text := c.Text
	if c.LinkText != "" && c.LinkURL != "" && strings.Contains(text, c.LinkText) {
		link := fmt.Sprintf("<a href=\"%s\" style=\"color:%s;\">%s</a>", attrEscape(c.LinkURL), accentBlue, c.LinkText)
		text = strings.Replace(text, c.LinkText, link, 1)
	}
	return fmt.Sprintf("<td style=\"%s\"><p style=\"margin:0;\">%s</p></td>", InlineStyle(css), text)
}

func renderImage(b Block) string {
	var c ImageContent
	if err := decodeContent(b, &c); err != nil {
		c = ImageContent{}
	}

	css := blockCSS(b)
	if _, ok := css["padding"]; !ok {
		css["padding"] = spacingScale[SizeMD]
	}

	widthAttr := ""
	if c.Width != "" {
		widthAttr = fmt.Sprintf(" width=\"%s\"", attrEscape(c.Width))
	}
	heightAttr := ""
	if c.Height != "" {
		heightAttr = fmt.Sprintf(" height=\"%s\"", attrEscape(c.Height))
	}

	img := fmt.Sprintf("<img src=\"%s\" alt=\"%s\"%s%s style=\"display:inline-block;max-width:100%%;height:auto;\" />",
		attrEscape(c.URL), attrEscape(c.Alt), widthAttr, heightAttr)
	if c.LinkURL != "" {
		img = fmt.Sprintf("<a href=\"%s\">%s</a>", attrEscape(c.LinkURL), img)
	}
	return fmt.Sprintf("<td style=\"%s\">%s</td>", InlineStyle(css), img)
}

// resolveButtonColors returns the background, text and border colors for a
// button. Precedence: custom background color, then the variant default.
func resolveButtonColors(c ButtonContent) (background, text, border string) {
	background = c.BackgroundColor
	if background == "" {
		variant, ok := buttonVariantColors[c.ButtonStyle]
		if !ok {
			variant = buttonVariantColors[ButtonStylePrimary]
		}
		background = variant
	}

	text = "#ffffff"
	if background == "transparent" {
		text = accentBlue
	}

	border = background
	if c.ButtonStyle == ButtonStyleGhost {
		border = "transparent"
	} else if background == "transparent" {
		border = accentBlue
	}
	return background, text, border
}

func renderButton(b Block) string {
	var c ButtonContent
	if err := decodeContent(b, &c); err != nil {
		c = ButtonContent{}
	}

	css := blockCSS(b)
	if _, ok := css["padding"]; !ok {
		css["padding"] = spacingScale[SizeMD]
	}

	background, textColor, borderColor := resolveButtonColors(c)

	radius := "6px"
	if v, ok := borderRadiusScale[b.Styles.BorderRadius]; ok && b.Styles.BorderRadius != "" {
		radius = v
	}

	anchorCSS := map[string]string{
		"display":          "inline-block",
		"padding":          "12px 24px",
		"background-color": background,
		"color":            textColor,
		"text-decoration":  "none",
		"font-weight":      "bold",
		"border":           fmt.Sprintf("2px solid %s", borderColor),
		"border-radius":    radius,
	}

	anchor := fmt.Sprintf("<a href=\"%s\" style=\"%s\">%s</a>", attrEscape(c.URL), InlineStyle(anchorCSS), c.Text)
	return fmt.Sprintf("<td style=\"%s\">%s</td>", InlineStyle(css), anchor)
}

// renderDivider emits either a rule line or blank vertical space. The
// data-divider-type attribute on the row keeps the distinction recoverable by
// the parser; legacy markup without it parses as a 1px line.
func renderDivider(b Block) (string, string) {
	var c DividerContent
	if err := decodeContent(b, &c); err != nil {
		c = DividerContent{}
	}

	css := blockCSS(b)
	if _, ok := css["padding"]; !ok {
		css["padding"] = spacingScale[SizeMD]
	}

	if c.DividerType == DividerTypeSpace {
		height := c.Height
		if height <= 0 {
			height = 16
		}
		attrs := " data-divider-type=\"space\""
		inner := fmt.Sprintf("<td style=\"%s\"><div style=\"font-size:0;height:%dpx;line-height:%dpx;\">&nbsp;</div></td>",
			InlineStyle(css), height, height)
		return inner, attrs
	}

	thickness := c.Thickness
	if thickness <= 0 {
		thickness = 1
	}
	lineColor := b.Styles.BorderColor
	if lineColor == "" {
		lineColor = dividerGray
	}
	attrs := " data-divider-type=\"line\""
	inner := fmt.Sprintf("<td style=\"%s\"><hr style=\"border:none;border-top:%dpx solid %s;margin:0;\" /></td>",
		InlineStyle(css), thickness, lineColor)
	return inner, attrs
}

// renderFooter is force-centered regardless of the block's own alignment.
// Unsubscribe and privacy links are joined into a single " | " separated line.
func renderFooter(b Block) string {
	var c FooterContent
	if err := decodeContent(b, &c); err != nil {
		c = FooterContent{}
	}

	css := blockCSS(b)
	css["text-align"] = "center"
	if _, ok := css["padding"]; !ok {
		css["padding"] = spacingScale[SizeLG]
	}
	if _, ok := css["font-size"]; !ok {
		css["font-size"] = fontSizeScale[SizeXS]
	}

	var body strings.Builder
	if c.CompanyName != "" {
		fmt.Fprintf(&body, "<p style=\"font-weight:bold;margin:0 0 8px 0;\">%s</p>", c.CompanyName)
	}
	if c.Address != "" {
		address := strings.ReplaceAll(c.Address, "\n", "<br />")
		fmt.Fprintf(&body, "<p style=\"margin:0 0 8px 0;\">%s</p>", address)
	}

	var links []string
	if c.UnsubscribeText != "" && c.UnsubscribeURL != "" {
		links = append(links, fmt.Sprintf("<a href=\"%s\" style=\"color:%s;\">%s</a>", attrEscape(c.UnsubscribeURL), secondaryGray, c.UnsubscribeText))
	}
	if c.PrivacyPolicyText != "" && c.PrivacyPolicyURL != "" {
		links = append(links, fmt.Sprintf("<a href=\"%s\" style=\"color:%s;\">%s</a>", attrEscape(c.PrivacyPolicyURL), secondaryGray, c.PrivacyPolicyText))
	}
	if len(links) > 0 {
		fmt.Fprintf(&body, "<p style=\"margin:0 0 8px 0;\">%s</p>", strings.Join(links, " | "))
	}

	if len(c.SocialLinks) > 0 {
		var socials []string
		for _, s := range c.SocialLinks {
			socials = append(socials, fmt.Sprintf("<a href=\"%s\" style=\"color:%s;text-decoration:none;\">%s</a>", attrEscape(s.URL), secondaryGray, string(s.Platform)))
		}
		fmt.Fprintf(&body, "<p style=\"margin:0;\">%s</p>", strings.Join(socials, " &nbsp; "))
	}

	return fmt.Sprintf("<td style=\"%s\">%s</td>", InlineStyle(css), body.String())
}

// renderFeatures lays entries out as a stacked list or a two-column table.
// The data-features-layout attribute keeps the layout mode recoverable.
func renderFeatures(b Block) (string, string) {
	var c FeaturesContent
	if err := decodeContent(b, &c); err != nil {
		c = FeaturesContent{}
	}

	layout := c.Layout
	if layout == "" {
		layout = FeaturesLayoutList
	}

	css := blockCSS(b)
	if _, ok := css["padding"]; !ok {
		css["padding"] = spacingScale[SizeLG]
	}

	var body strings.Builder
	if c.Title != "" {
		fmt.Fprintf(&body, "<h2 style=\"margin:0 0 16px 0;\">%s</h2>", c.Title)
	}

	if layout == FeaturesLayoutGrid || layout == FeaturesLayoutColumns {
		body.WriteString("<table role=\"presentation\" width=\"100%\" cellpadding=\"0\" cellspacing=\"0\" border=\"0\">")
		for i := 0; i < len(c.Features); i += 2 {
			body.WriteString("<tr>")
			body.WriteString(renderFeatureCell(c.Features[i], "50%"))
			if i+1 < len(c.Features) {
				body.WriteString(renderFeatureCell(c.Features[i+1], "50%"))
			} else {
				body.WriteString("<td width=\"50%\"></td>")
			}
			body.WriteString("</tr>")
		}
		body.WriteString("</table>")
	} else {
		for _, f := range c.Features {
			body.WriteString(renderFeatureItem(f))
		}
	}

	attrs := fmt.Sprintf(" data-features-layout=\"%s\"", attrEscape(string(layout)))
	return fmt.Sprintf("<td style=\"%s\">%s</td>", InlineStyle(css), body.String()), attrs
}

func renderFeatureItem(f Feature) string {
	var sb strings.Builder
	sb.WriteString("<div class=\"feature-item\" style=\"margin:0 0 12px 0;text-align:left;\">")
	if f.Icon != "" {
		fmt.Fprintf(&sb, "<span style=\"margin-right:8px;\">%s</span>", f.Icon)
	}
	fmt.Fprintf(&sb, "<strong>%s</strong>", f.Title)
	if f.Description != "" {
		fmt.Fprintf(&sb, "<p style=\"margin:4px 0 0 0;\">%s</p>", f.Description)
	}
	sb.WriteString("</div>")
	return sb.String()
}

func renderFeatureCell(f Feature, width string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<td class=\"feature-item\" width=\"%s\" style=\"padding:8px;text-align:left;vertical-align:top;\">", width)
	if f.Icon != "" {
		fmt.Fprintf(&sb, "<span style=\"margin-right:8px;\">%s</span>", f.Icon)
	}
	fmt.Fprintf(&sb, "<strong>%s</strong>", f.Title)
	if f.Description != "" {
		fmt.Fprintf(&sb, "<p style=\"margin:4px 0 0 0;\">%s</p>", f.Description)
	}
	sb.WriteString("</td>")
	return sb.String()
}

// attrEscape escapes a value for use inside a double-quoted HTML attribute.
// Ampersands in http(s) URLs are left alone to preserve query parameters.
func attrEscape(value string) string {
	looksLikeURL := strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") || strings.HasPrefix(value, "//")
	if !looksLikeURL {
		value = strings.ReplaceAll(value, "&", "&amp;")
	}
	value = strings.ReplaceAll(value, "\"", "&quot;")
	value = strings.ReplaceAll(value, "<", "&lt;")
	value = strings.ReplaceAll(value, ">", "&gt;")
	return value
}
