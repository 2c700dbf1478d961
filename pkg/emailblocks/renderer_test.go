package emailblocks

import (
	"strings"
	"testing"
)

func textBlock(id string, orderID int, text string) Block {
	return Block{
		ID:        id,
		BlockType: BlockTypeText,
		OrderID:   orderID,
		Content:   TextContent{Text: text},
	}
}

func docWith(blocks ...Block) *EmailDocument {
	return &EmailDocument{Blocks: blocks}
}

func TestRenderDocument_BlockOrderFollowsOrderID(t *testing.T) {
	doc := docWith(
		textBlock("b1", 2, "Hello"),
		Block{ID: "b2", BlockType: BlockTypeHeader, OrderID: 1, Content: HeaderContent{Text: "Acme"}},
	)

	html := RenderDocument(doc)

	first := strings.Index(html, `data-block-id="b2"`)
	second := strings.Index(html, `data-block-id="b1"`)
	if first == -1 || second == -1 {
		t.Fatalf("expected both block rows in output, got:\n%s", html)
	}
	if first > second {
		t.Errorf("expected header b2 (orderId 1) before text b1 (orderId 2)")
	}
	if !strings.Contains(html, "Acme") || !strings.Contains(html, "Hello") {
		t.Errorf("expected block contents in output")
	}
}

func TestRenderDocument_Idempotent(t *testing.T) {
	doc := StarterDocument()
	first := RenderDocument(doc)
	second := RenderDocument(doc)
	if first != second {
		t.Errorf("repeated render calls must produce byte-identical output")
	}
}

func TestRenderDocument_DuplicateOrderIDKeepsArrayOrder(t *testing.T) {
	doc := docWith(
		textBlock("first", 1, "one"),
		textBlock("second", 1, "two"),
	)

	html := RenderDocument(doc)
	if strings.Index(html, `data-block-id="first"`) > strings.Index(html, `data-block-id="second"`) {
		t.Errorf("duplicate orderIds must tie-break on array order")
	}
}

func TestRenderDocument_DocumentWrapper(t *testing.T) {
	doc := docWith()
	doc.Subject = "Spring Sale"

	html := RenderDocument(doc)

	for _, want := range []string{
		"<!DOCTYPE html>",
		`<meta charset="utf-8" />`,
		`name="viewport"`,
		"<title>Spring Sale</title>",
		`width="600"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected wrapper to contain %q", want)
		}
	}
}

func TestRenderDocument_DefaultTitleAndCustomWidth(t *testing.T) {
	doc := docWith()
	doc.GlobalStyles.ContainerWidth = 480

	html := RenderDocument(doc)
	if !strings.Contains(html, "<title>Email</title>") {
		t.Errorf("expected default title %q", "Email")
	}
	if !strings.Contains(html, `width="480"`) {
		t.Errorf("expected container width 480")
	}
}

func TestRenderDocument_PreheaderHidden(t *testing.T) {
	doc := docWith()
	doc.Preheader = "Sneak peek"

	html := RenderDocument(doc)
	if !strings.Contains(html, "Sneak peek") || !strings.Contains(html, "display:none") {
		t.Errorf("expected hidden preheader div in output")
	}
}

func TestRenderDocument_UnknownBlockTypeDropped(t *testing.T) {
	doc := docWith(
		Block{ID: "mystery", BlockType: "carousel", OrderID: 1},
		textBlock("known", 2, "still here"),
	)

	html := RenderDocument(doc)
	if strings.Contains(html, "mystery") {
		t.Errorf("unknown block types must render as empty strings")
	}
	if !strings.Contains(html, "still here") {
		t.Errorf("known blocks must still render")
	}
}

func TestRenderHeader(t *testing.T) {
	tests := []struct {
		name        string
		content     interface{}
		wantSnippet string
	}{
		{
			name:        "text title",
			content:     HeaderContent{Text: "Acme Corp"},
			wantSnippet: "<h1 style=\"margin:0;\">Acme Corp</h1>",
		},
		{
			name:        "empty falls back to placeholder",
			content:     HeaderContent{},
			wantSnippet: "Company Name",
		},
		{
			name:        "image takes precedence over text",
			content:     HeaderContent{Text: "ignored", ImageURL: "https://example.com/logo.png", ImageAlt: "Logo"},
			wantSnippet: `<img src="https://example.com/logo.png" alt="Logo"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := RenderDocument(docWith(Block{ID: "h", BlockType: BlockTypeHeader, OrderID: 1, Content: tt.content}))
			if !strings.Contains(html, tt.wantSnippet) {
				t.Errorf("expected output to contain %q, got:\n%s", tt.wantSnippet, html)
			}
		})
	}
}

func TestRenderHeader_ImageCappedAt200(t *testing.T) {
	html := RenderDocument(docWith(Block{
		ID: "h", BlockType: BlockTypeHeader, OrderID: 1,
		Content: HeaderContent{ImageURL: "https://example.com/logo.png"},
	}))
	if !strings.Contains(html, "max-width:200px") {
		t.Errorf("header logo display width must be capped at 200px")
	}
}

func TestRenderHero(t *testing.T) {
	html := RenderDocument(docWith(Block{
		ID: "hero", BlockType: BlockTypeHero, OrderID: 1,
		Content: HeroContent{Headline: "Big News", Subheadline: "Details inside"},
	}))
	if !strings.Contains(html, "<h1 style=\"margin:0;\">Big News</h1>") {
		t.Errorf("expected hero headline h1")
	}
	if !strings.Contains(html, "Details inside") {
		t.Errorf("expected hero subheadline")
	}

	withoutSub := RenderDocument(docWith(Block{
		ID: "hero", BlockType: BlockTypeHero, OrderID: 1,
		Content: HeroContent{Headline: "Solo"},
	}))
	if strings.Contains(withoutSub, "<p style=\"margin:12px 0 0 0;\">") {
		t.Errorf("subheadline paragraph must be omitted when empty")
	}
}

func TestRenderText_EmbeddedLink(t *testing.T) {
	tests := []struct {
		name     string
		content  TextContent
		wantLink bool
	}{
		{
			name:     "link text is substring",
			content:  TextContent{Text: "Check our docs today", LinkText: "our docs", LinkURL: "https://example.com/docs"},
			wantLink: true,
		},
		{
			name:     "link text not in body",
			content:  TextContent{Text: "Check the manual", LinkText: "our docs", LinkURL: "https://example.com/docs"},
			wantLink: false,
		},
		{
			name:     "missing url",
			content:  TextContent{Text: "Check our docs", LinkText: "our docs"},
			wantLink: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := RenderDocument(docWith(Block{ID: "t", BlockType: BlockTypeText, OrderID: 1, Content: tt.content}))
			hasLink := strings.Contains(html, `<a href="https://example.com/docs"`)
			if hasLink != tt.wantLink {
				t.Errorf("link applied = %v, want %v, got:\n%s", hasLink, tt.wantLink, html)
			}
		})
	}
}

func TestRenderText_DefaultAlignmentLeft(t *testing.T) {
	html := RenderDocument(docWith(textBlock("t", 1, "body")))
	if !strings.Contains(html, "text-align:left") {
		t.Errorf("text blocks must default to left alignment explicitly")
	}
}

func TestRenderImage(t *testing.T) {
	html := RenderDocument(docWith(Block{
		ID: "img", BlockType: BlockTypeImage, OrderID: 1,
		Content: ImageContent{URL: "https://example.com/pic.png", Alt: "Pic", Width: "560", LinkURL: "https://example.com"},
	}))
	if !strings.Contains(html, `width="560"`) {
		t.Errorf("width attribute must be emitted when provided")
	}
	if !strings.Contains(html, `<a href="https://example.com">`) {
		t.Errorf("image must be wrapped in a link when linkUrl is set")
	}

	bare := RenderDocument(docWith(Block{
		ID: "img", BlockType: BlockTypeImage, OrderID: 1,
		Content: ImageContent{URL: "https://example.com/pic.png"},
	}))
	if strings.Contains(bare, `width="`) && strings.Contains(bare, `<img src="https://example.com/pic.png" alt="" width=`) {
		t.Errorf("width attribute must be omitted when not provided")
	}
}

func TestResolveButtonColors(t *testing.T) {
	tests := []struct {
		name           string
		content        ButtonContent
		wantBackground string
		wantText       string
		wantBorder     string
	}{
		{
			name:           "custom color beats variant",
			content:        ButtonContent{ButtonStyle: ButtonStyleSecondary, BackgroundColor: "#112233"},
			wantBackground: "#112233",
			wantText:       "#ffffff",
			wantBorder:     "#112233",
		},
		{
			name:           "primary default",
			content:        ButtonContent{ButtonStyle: ButtonStylePrimary},
			wantBackground: "#3B82F6",
			wantText:       "#ffffff",
			wantBorder:     "#3B82F6",
		},
		{
			name:           "secondary default",
			content:        ButtonContent{ButtonStyle: ButtonStyleSecondary},
			wantBackground: "#6B7280",
			wantText:       "#ffffff",
			wantBorder:     "#6B7280",
		},
		{
			name:           "outline is transparent with accent text",
			content:        ButtonContent{ButtonStyle: ButtonStyleOutline},
			wantBackground: "transparent",
			wantText:       "#3B82F6",
			wantBorder:     "#3B82F6",
		},
		{
			name:           "ghost has transparent border",
			content:        ButtonContent{ButtonStyle: ButtonStyleGhost},
			wantBackground: "transparent",
			wantText:       "#3B82F6",
			wantBorder:     "transparent",
		},
		{
			name:           "unknown variant falls back to primary",
			content:        ButtonContent{ButtonStyle: "neon"},
			wantBackground: "#3B82F6",
			wantText:       "#ffffff",
			wantBorder:     "#3B82F6",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			background, text, border := resolveButtonColors(tt.content)
			if background != tt.wantBackground {
				t.Errorf("background = %q, want %q", background, tt.wantBackground)
			}
			if text != tt.wantText {
				t.Errorf("text = %q, want %q", text, tt.wantText)
			}
			if border != tt.wantBorder {
				t.Errorf("border = %q, want %q", border, tt.wantBorder)
			}
		})
	}
}

func TestRenderButton_CustomColorInMarkup(t *testing.T) {
	html := RenderDocument(docWith(Block{
		ID: "btn", BlockType: BlockTypeButton, OrderID: 1,
		Content: ButtonContent{Text: "Go", URL: "https://example.com", ButtonStyle: ButtonStyleSecondary, BackgroundColor: "#112233"},
	}))
	if !strings.Contains(html, "background-color:#112233") {
		t.Errorf("custom background color must override the secondary variant")
	}
	if strings.Contains(html, "#6B7280") {
		t.Errorf("secondary gray must not appear when a custom color is set")
	}
}

func TestRenderDivider(t *testing.T) {
	line := RenderDocument(docWith(Block{
		ID: "d", BlockType: BlockTypeDivider, OrderID: 1,
		Content: DividerContent{DividerType: DividerTypeLine, Thickness: 3},
	}))
	if !strings.Contains(line, "border-top:3px solid") {
		t.Errorf("line divider must use content thickness")
	}
	if !strings.Contains(line, `data-divider-type="line"`) {
		t.Errorf("divider rows must carry data-divider-type")
	}

	defaulted := RenderDocument(docWith(Block{
		ID: "d", BlockType: BlockTypeDivider, OrderID: 1,
		Content: DividerContent{DividerType: DividerTypeLine},
	}))
	if !strings.Contains(defaulted, "border-top:1px solid") {
		t.Errorf("line thickness must default to 1px")
	}

	space := RenderDocument(docWith(Block{
		ID: "d", BlockType: BlockTypeDivider, OrderID: 1,
		Content: DividerContent{DividerType: DividerTypeSpace, Height: 32},
	}))
	if !strings.Contains(space, `data-divider-type="space"`) || !strings.Contains(space, "height:32px") {
		t.Errorf("space divider must emit its height and divider type")
	}
}

func TestRenderFooter(t *testing.T) {
	html := RenderDocument(docWith(Block{
		ID: "f", BlockType: BlockTypeFooter, OrderID: 1,
		Styles: StyleOptions{TextAlign: "left"},
		Content: FooterContent{
			CompanyName:       "Acme Inc.",
			Address:           "123 Main St\nSpringfield",
			UnsubscribeText:   "Unsubscribe",
			UnsubscribeURL:    "https://example.com/u",
			PrivacyPolicyText: "Privacy",
			PrivacyPolicyURL:  "https://example.com/p",
		},
	}))

	wantLine := `<a href="https://example.com/u" style="color:#6B7280;">Unsubscribe</a> | <a href="https://example.com/p" style="color:#6B7280;">Privacy</a>`
	if !strings.Contains(html, wantLine) {
		t.Errorf("expected single pipe-joined links line, got:\n%s", html)
	}
	if strings.Count(html, " | ") != 1 {
		t.Errorf("expected exactly one pipe separator")
	}
	if !strings.Contains(html, "text-align:center") || strings.Contains(html, "text-align:left") {
		t.Errorf("footer alignment must be force-centered regardless of block styles")
	}
	if !strings.Contains(html, "123 Main St<br />Springfield") {
		t.Errorf("address newlines must be preserved as <br />")
	}
}

func TestRenderFooter_SingleLink(t *testing.T) {
	html := RenderDocument(docWith(Block{
		ID: "f", BlockType: BlockTypeFooter, OrderID: 1,
		Content: FooterContent{
			CompanyName:     "Acme",
			UnsubscribeText: "Unsubscribe",
			UnsubscribeURL:  "https://example.com/u",
		},
	}))
	if strings.Contains(html, " | ") {
		t.Errorf("no pipe separator expected with a single link")
	}
}

func TestRenderFeatures(t *testing.T) {
	features := []Feature{
		{Icon: "🚀", Title: "Fast", Description: "Very fast"},
		{Icon: "🔒", Title: "Secure"},
		{Title: "Simple"},
	}

	list := RenderDocument(docWith(Block{
		ID: "ft", BlockType: BlockTypeFeatures, OrderID: 1,
		Content: FeaturesContent{Title: "Why us", Features: features, Layout: FeaturesLayoutList},
	}))
	if !strings.Contains(list, "<h2 style=\"margin:0 0 16px 0;\">Why us</h2>") {
		t.Errorf("expected section title heading")
	}
	if strings.Count(list, `class="feature-item"`) != 3 {
		t.Errorf("expected one feature item per entry")
	}
	if !strings.Contains(list, "<strong>Fast</strong>") || !strings.Contains(list, "Very fast") {
		t.Errorf("expected icon, bold title and description per feature")
	}

	grid := RenderDocument(docWith(Block{
		ID: "ft", BlockType: BlockTypeFeatures, OrderID: 1,
		Content: FeaturesContent{Features: features, Layout: FeaturesLayoutGrid},
	}))
	if !strings.Contains(grid, `data-features-layout="grid"`) {
		t.Errorf("grid layout must be recorded on the row")
	}
	// Three entries over two columns: two rows, one padding cell.
	if strings.Count(grid, `td class="feature-item"`) != 3 {
		t.Errorf("expected three feature cells in grid layout")
	}
}

func TestRenderDocument_NilAndMalformedContent(t *testing.T) {
	doc := docWith(
		Block{ID: "no-content", BlockType: BlockTypeText, OrderID: 1},
		Block{ID: "bad-content", BlockType: BlockTypeHero, OrderID: 2, Content: "not a struct"},
	)
	html := RenderDocument(doc)
	if !strings.Contains(html, `data-block-id="no-content"`) || !strings.Contains(html, `data-block-id="bad-content"`) {
		t.Errorf("blocks with missing or malformed content must still render rows")
	}
}

func TestRenderDocument_NilDocument(t *testing.T) {
	html := RenderDocument(nil)
	if !strings.Contains(html, "<!DOCTYPE html>") {
		t.Errorf("nil document must render an empty but valid wrapper")
	}
}
