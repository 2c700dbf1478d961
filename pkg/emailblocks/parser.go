package emailblocks

import (
	"fmt"
	"html"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
)

// ParseResult is the outcome of reconstructing a Block Document from HTML.
// NoBlocksFound is set when the markup carried no tagged block elements at
// all, so the caller can fall back to a raw-HTML view instead of the editor.
type ParseResult struct {
	Document      *EmailDocument `json:"document"`
	NoBlocksFound bool           `json:"noBlocksFound"`
}

var (
	// leadingSymbolRe splits a leading emoji or symbol run off a feature title.
	leadingSymbolRe = regexp.MustCompile(`^([^\p{L}\p{N}\s]+)\s*(.+)$`)
	// cssPixelRe extracts the leading pixel count of a CSS length.
	cssPixelRe = regexp.MustCompile(`^(\d+)px`)
	tagRe      = regexp.MustCompile(`<[^>]*>`)
	brRe       = regexp.MustCompile(`(?i)<br\s*/?>`)
	spaceRe    = regexp.MustCompile(`\s+`)
)

// ParseHTML reconstructs a best-effort Block Document from an HTML string.
// Block boundaries are recovered from elements tagged with both data-block-id
// and data-block-type; everything else is heuristic and degrades gracefully.
// It returns an error only when the input cannot be read as a document at all.
func ParseHTML(htmlStr string) (*ParseResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	emailDoc := &EmailDocument{
		Subject: strings.TrimSpace(doc.Find("title").First().Text()),
		Blocks:  []Block{},
		// Global styles and preheader are not recovered from markup; the
		// renderer defaults are reported instead.
		GlobalStyles: GlobalStyles{
			FontFamily:               defaultFontFamily,
			BackgroundColor:          defaultBackgroundColor,
			ContainerWidth:           defaultContainerWidth,
			ContainerBackgroundColor: defaultContainerColor,
		},
		Metadata: Metadata{
			Version:   FormatVersion,
			CreatedAt: time.Now().UTC(),
		},
	}

	orderID := 0
	doc.Find("[data-block-id][data-block-type]").Each(func(i int, sel *goquery.Selection) {
		id, _ := sel.Attr("data-block-id")
		rawType, _ := sel.Attr("data-block-type")
		blockType := BlockType(rawType)

		if !IsKnownBlockType(blockType) {
			// This package carries no injected logger; skipped blocks go
			// through the stdlib log like other leaf packages.
			log.Printf("Warning: skipping block %q with unrecognized type %q", id, rawType)
			return
		}
		if id == "" {
			id = uuid.New().String()
		}

		// Source order is authoritative; any orderId encoded in the markup's
		// past life is ignored.
		orderID++
		emailDoc.Blocks = append(emailDoc.Blocks, Block{
			ID:        id,
			BlockType: blockType,
			OrderID:   orderID,
			Styles:    extractStyles(sel),
			Content:   extractContent(blockType, sel),
		})
	})

	return &ParseResult{
		Document:      emailDoc,
		NoBlocksFound: len(emailDoc.Blocks) == 0,
	}, nil
}

// extractStyles recovers the block's style options from inline CSS. The
// tagged element's own style attribute wins; the renderer writes block styles
// on the row's cell, so the first descendant <td> is merged next, then the
// nearest ancestor <td> contributes text-align. Alignment defaults to center
// when absent everywhere. Size buckets are not recoverable from resolved CSS.
func extractStyles(sel *goquery.Selection) StyleOptions {
	css := parseInlineStyle(sel.AttrOr("style", ""))
	if td := sel.Find("td").First(); td.Length() > 0 {
		mergeCSS(css, parseInlineStyle(td.AttrOr("style", "")))
	}
	if css["text-align"] == "" {
		if ancestor := sel.Closest("td"); ancestor.Length() > 0 {
			if v := parseInlineStyle(ancestor.AttrOr("style", ""))["text-align"]; v != "" {
				css["text-align"] = v
			}
		}
	}
	if css["text-align"] == "" {
		css["text-align"] = "center"
	}

	return StyleOptions{
		TextAlign:      css["text-align"],
		TextColor:      css["color"],
		BorderColor:    css["border-color"],
		FontFamily:     css["font-family"],
		FontWeight:     css["font-weight"],
		TextDecoration: css["text-decoration"],
	}
}

// parseInlineStyle splits an inline style attribute into a property map.
func parseInlineStyle(style string) map[string]string {
	css := make(map[string]string)
	for _, decl := range strings.Split(style, ";") {
		parts := strings.SplitN(decl, ":", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.TrimSpace(parts[1])
		if key != "" && value != "" {
			css[key] = value
		}
	}
	return css
}

// extractContent dispatches to the per-type extraction heuristics. The
// heuristics are tuned to the shapes the renderer produces but tolerate
// hand-authored markup.
func extractContent(t BlockType, sel *goquery.Selection) interface{} {
	switch t {
	case BlockTypeHeader:
		return extractHeader(sel)
	case BlockTypeHero:
		return extractHero(sel)
	case BlockTypeText:
		return extractText(sel)
	case BlockTypeImage:
		return extractImage(sel)
	case BlockTypeButton:
		return extractButton(sel)
	case BlockTypeDivider:
		return extractDivider(sel)
	case BlockTypeFooter:
		return extractFooter(sel)
	case BlockTypeFeatures:
		return extractFeatures(sel)
	default:
		return nil
	}
}

func extractHeader(sel *goquery.Selection) HeaderContent {
	if img := sel.Find("img").First(); img.Length() > 0 {
		return HeaderContent{
			ImageURL:    img.AttrOr("src", ""),
			ImageAlt:    img.AttrOr("alt", ""),
			ImageWidth:  img.AttrOr("width", ""),
			ImageHeight: img.AttrOr("height", ""),
		}
	}
	return HeaderContent{Text: strings.TrimSpace(sel.Text())}
}

func extractHero(sel *goquery.Selection) HeroContent {
	if heading := sel.Find("h1, h2").First(); heading.Length() > 0 {
		return HeroContent{
			Headline:    strings.TrimSpace(heading.Text()),
			Subheadline: strings.TrimSpace(sel.Find("p").First().Text()),
		}
	}

	// No heading tags: first non-empty text line is the headline, the second
	// the subheadline.
	var lines []string
	for _, line := range strings.Split(sel.Text(), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	c := HeroContent{}
	if len(lines) > 0 {
		c.Headline = lines[0]
	}
	if len(lines) > 1 {
		c.Subheadline = lines[1]
	}
	return c
}

func extractText(sel *goquery.Selection) TextContent {
	c := TextContent{Text: strings.TrimSpace(sel.Text())}
	if a := sel.Find("a").First(); a.Length() > 0 {
		linkText := strings.TrimSpace(a.Text())
		if linkText != "" && strings.Contains(c.Text, linkText) {
			c.LinkText = linkText
			c.LinkURL = a.AttrOr("href", "")
		}
	}
	return c
}

func extractImage(sel *goquery.Selection) ImageContent {
	img := sel.Find("img").First()
	c := ImageContent{
		URL:    img.AttrOr("src", ""),
		Alt:    img.AttrOr("alt", ""),
		Width:  img.AttrOr("width", ""),
		Height: img.AttrOr("height", ""),
	}
	if a := sel.Find("a").First(); a.Length() > 0 {
		c.LinkURL = a.AttrOr("href", "")
	}
	return c
}

func extractButton(sel *goquery.Selection) ButtonContent {
	a := sel.Find("a").First()
	// The original variant is not recoverable from rendered markup and is
	// intentionally not guessed beyond the default.
	return ButtonContent{
		Text:        strings.TrimSpace(a.Text()),
		URL:         a.AttrOr("href", ""),
		ButtonStyle: ButtonStylePrimary,
	}
}

func extractDivider(sel *goquery.Selection) DividerContent {
	if sel.AttrOr("data-divider-type", "") == string(DividerTypeSpace) {
		height := 16
		if div := sel.Find("div").First(); div.Length() > 0 {
			if v := parseInlineStyle(div.AttrOr("style", ""))["height"]; v != "" {
				if px, ok := parsePixels(v); ok {
					height = px
				}
			}
		}
		return DividerContent{DividerType: DividerTypeSpace, Height: height}
	}

	// Legacy markup without the divider-type attribute parses as a 1px line.
	thickness := 1
	if hr := sel.Find("hr").First(); hr.Length() > 0 {
		if v := parseInlineStyle(hr.AttrOr("style", ""))["border-top"]; v != "" {
			if px, ok := parsePixels(v); ok {
				thickness = px
			}
		}
	}
	return DividerContent{DividerType: DividerTypeLine, Thickness: thickness}
}

func parsePixels(v string) (int, bool) {
	m := cssPixelRe.FindStringSubmatch(strings.TrimSpace(v))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// extractFooter recovers footer fields from <p> children when present and
// falls back to raw text splitting otherwise. Anchor text containing
// "unsubscribe" or "privacy" (case-insensitively) identifies those links.
func extractFooter(sel *goquery.Selection) FooterContent {
	c := FooterContent{}

	sel.Find("a").Each(func(i int, a *goquery.Selection) {
		text := strings.TrimSpace(a.Text())
		lower := strings.ToLower(text)
		switch {
		case strings.Contains(lower, "unsubscribe") && c.UnsubscribeURL == "":
			c.UnsubscribeText = text
			c.UnsubscribeURL = a.AttrOr("href", "")
		case strings.Contains(lower, "privacy") && c.PrivacyPolicyURL == "":
			c.PrivacyPolicyText = text
			c.PrivacyPolicyURL = a.AttrOr("href", "")
		default:
			if platform, ok := socialPlatformFromText(lower); ok {
				c.SocialLinks = append(c.SocialLinks, SocialLink{
					Platform: platform,
					URL:      a.AttrOr("href", ""),
				})
			}
		}
	})

	paragraphs := sel.Find("p")
	if paragraphs.Length() > 0 {
		// The company line never contains anchors and renders bold. Legacy
		// footers don't bold it, so fall back to the first anchor-free
		// single-line paragraph.
		companyIdx := -1
		for i := 0; i < paragraphs.Length(); i++ {
			p := paragraphs.Eq(i)
			if p.Find("a").Length() > 0 {
				continue
			}
			if strings.Contains(p.AttrOr("style", ""), "font-weight:bold") {
				companyIdx = i
				break
			}
		}
		if companyIdx == -1 {
			for i := 0; i < paragraphs.Length(); i++ {
				p := paragraphs.Eq(i)
				if p.Find("a").Length() > 0 || p.AttrOr("style", "") != "" {
					continue
				}
				if !strings.Contains(textWithNewlines(p), "\n") {
					companyIdx = i
					break
				}
			}
		}
		if companyIdx >= 0 {
			c.CompanyName = cleanCompanyName(paragraphs.Eq(companyIdx).Text(), c)
		}
		for i := 0; i < paragraphs.Length(); i++ {
			if i == companyIdx {
				continue
			}
			p := paragraphs.Eq(i)
			if p.Find("a").Length() == 0 {
				c.Address = textWithNewlines(p)
				break
			}
		}
		return c
	}

	// Raw text fallback: first non-empty line is the company name; the first
	// anchor, whatever its text, is treated as the unsubscribe link.
	for _, line := range strings.Split(sel.Text(), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			c.CompanyName = cleanCompanyName(trimmed, c)
			break
		}
	}
	if c.UnsubscribeURL == "" {
		if a := sel.Find("a").First(); a.Length() > 0 {
			c.UnsubscribeText = strings.TrimSpace(a.Text())
			c.UnsubscribeURL = a.AttrOr("href", "")
		}
	}
	return c
}

func socialPlatformFromText(text string) (SocialPlatform, bool) {
	platforms := []SocialPlatform{
		SocialPlatformTwitter,
		SocialPlatformFacebook,
		SocialPlatformInstagram,
		SocialPlatformLinkedIn,
		SocialPlatformYouTube,
		SocialPlatformTikTok,
	}
	for _, p := range platforms {
		if text == string(p) {
			return p, true
		}
	}
	return "", false
}

// cleanCompanyName strips link text that bled into the company name from
// loosely structured footers, collapses a doubled name, and normalizes
// whitespace.
func cleanCompanyName(name string, c FooterContent) string {
	name = spaceRe.ReplaceAllString(strings.TrimSpace(name), " ")
	if c.UnsubscribeText != "" {
		name = strings.ReplaceAll(name, c.UnsubscribeText, "")
	}
	if c.PrivacyPolicyText != "" {
		name = strings.ReplaceAll(name, c.PrivacyPolicyText, "")
	}
	// Separator residue left behind by the removed link texts.
	name = strings.Trim(name, " |•·")
	name = spaceRe.ReplaceAllString(strings.TrimSpace(name), " ")

	// "AcmeAcme" and "Acme Acme" artifacts collapse to a single copy.
	if half := len(name) / 2; half > 0 && len(name)%2 == 0 && name[:half] == name[half:] {
		name = name[:half]
	}
	if parts := strings.Fields(name); len(parts)%2 == 0 && len(parts) > 1 {
		half := len(parts) / 2
		if strings.Join(parts[:half], " ") == strings.Join(parts[half:], " ") {
			name = strings.Join(parts[:half], " ")
		}
	}
	return strings.TrimSpace(name)
}

// textWithNewlines returns the selection's text with <br> tags preserved as
// newlines, for fields where line structure matters.
func textWithNewlines(sel *goquery.Selection) string {
	raw, err := sel.Html()
	if err != nil {
		return strings.TrimSpace(sel.Text())
	}
	raw = brRe.ReplaceAllString(raw, "\n")
	raw = tagRe.ReplaceAllString(raw, "")
	return strings.TrimSpace(html.UnescapeString(raw))
}

// extractFeatures applies a tiered strategy: structured items first, then
// paragraph splitting, then a synthesized placeholder. The features list is
// never empty after parsing.
func extractFeatures(sel *goquery.Selection) FeaturesContent {
	c := FeaturesContent{
		Title:  strings.TrimSpace(sel.Find("h2").First().Text()),
		Layout: extractFeaturesLayout(sel),
	}

	c.Features = parseStructuredFeatures(sel)
	if len(c.Features) == 0 {
		c.Features = parseParagraphFeatures(sel)
	}
	if len(c.Features) == 0 {
		c.Features = []Feature{{Icon: "⭐", Title: "Feature"}}
	}
	return c
}

func extractFeaturesLayout(sel *goquery.Selection) FeaturesLayout {
	switch FeaturesLayout(sel.AttrOr("data-features-layout", "")) {
	case FeaturesLayoutGrid:
		return FeaturesLayoutGrid
	case FeaturesLayoutColumns:
		return FeaturesLayoutColumns
	case FeaturesLayoutList:
		return FeaturesLayoutList
	}
	if sel.Find("table td.feature-item").Length() > 0 {
		return FeaturesLayoutGrid
	}
	return FeaturesLayoutList
}

// parseStructuredFeatures reads <li> or class-hinted feature items.
func parseStructuredFeatures(sel *goquery.Selection) []Feature {
	var features []Feature
	sel.Find("li, .feature-item").Each(func(i int, item *goquery.Selection) {
		title := strings.TrimSpace(item.Find("strong, b, h3").First().Text())
		if title == "" {
			title = firstTextLine(item.Text())
		}
		icon := strings.TrimSpace(item.Find("span").First().Text())
		if icon == "" {
			icon, title = splitLeadingSymbol(title)
		}
		if title == "" {
			return
		}
		features = append(features, Feature{
			Icon:        icon,
			Title:       title,
			Description: strings.TrimSpace(item.Find("p").First().Text()),
		})
	})
	return features
}

// parseParagraphFeatures splits each <p> on the first separator into a
// title/description pair.
func parseParagraphFeatures(sel *goquery.Selection) []Feature {
	var features []Feature
	sel.Find("p").Each(func(i int, p *goquery.Selection) {
		text := strings.TrimSpace(p.Text())
		if text == "" {
			return
		}
		title, description := splitTitleDescription(text)
		icon, title := splitLeadingSymbol(title)
		if title == "" {
			return
		}
		features = append(features, Feature{Icon: icon, Title: title, Description: description})
	})
	return features
}

func splitTitleDescription(text string) (string, string) {
	for _, sep := range []string{":", " - ", "–", "—"} {
		if idx := strings.Index(text, sep); idx > 0 {
			return strings.TrimSpace(text[:idx]), strings.TrimSpace(text[idx+len(sep):])
		}
	}
	return text, ""
}

// splitLeadingSymbol peels a leading emoji or symbol run off a title.
func splitLeadingSymbol(title string) (string, string) {
	m := leadingSymbolRe.FindStringSubmatch(strings.TrimSpace(title))
	if m == nil {
		return "", strings.TrimSpace(title)
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
}

func firstTextLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
