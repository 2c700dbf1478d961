package emailblocks

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// FormatVersion identifies the Block Document format emitted by this package.
const FormatVersion = "1.0"

// BlockType discriminates the Block tagged union.
type BlockType string

const (
	BlockTypeHeader   BlockType = "header"
	BlockTypeHero     BlockType = "hero"
	BlockTypeText     BlockType = "text"
	BlockTypeImage    BlockType = "image"
	BlockTypeButton   BlockType = "button"
	BlockTypeDivider  BlockType = "divider"
	BlockTypeFooter   BlockType = "footer"
	BlockTypeFeatures BlockType = "features"
)

// KnownBlockTypes lists every recognized block variant.
var KnownBlockTypes = []BlockType{
	BlockTypeHeader,
	BlockTypeHero,
	BlockTypeText,
	BlockTypeImage,
	BlockTypeButton,
	BlockTypeDivider,
	BlockTypeFooter,
	BlockTypeFeatures,
}

// IsKnownBlockType reports whether t is one of the eight block variants.
func IsKnownBlockType(t BlockType) bool {
	for _, known := range KnownBlockTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ButtonStyle is the button style variant.
type ButtonStyle string

const (
	ButtonStylePrimary   ButtonStyle = "primary"
	ButtonStyleSecondary ButtonStyle = "secondary"
	ButtonStyleOutline   ButtonStyle = "outline"
	ButtonStyleGhost     ButtonStyle = "ghost"
)

// DividerType distinguishes a rule line from blank vertical space.
type DividerType string

const (
	DividerTypeLine  DividerType = "line"
	DividerTypeSpace DividerType = "space"
)

// FeaturesLayout selects how feature entries are laid out.
type FeaturesLayout string

const (
	FeaturesLayoutList    FeaturesLayout = "list"
	FeaturesLayoutGrid    FeaturesLayout = "grid"
	FeaturesLayoutColumns FeaturesLayout = "columns"
)

// SocialPlatform enumerates footer social link platforms.
type SocialPlatform string

const (
	SocialPlatformTwitter   SocialPlatform = "twitter"
	SocialPlatformFacebook  SocialPlatform = "facebook"
	SocialPlatformInstagram SocialPlatform = "instagram"
	SocialPlatformLinkedIn  SocialPlatform = "linkedin"
	SocialPlatformYouTube   SocialPlatform = "youtube"
	SocialPlatformTikTok    SocialPlatform = "tiktok"
)

// EmailDocument is the Block Document: the JSON source of truth for an email.
type EmailDocument struct {
	Subject      string       `json:"subject,omitempty"`
	Preheader    string       `json:"preheader,omitempty"`
	Blocks       []Block      `json:"blocks"`
	GlobalStyles GlobalStyles `json:"globalStyles"`
	Metadata     Metadata     `json:"metadata"`
}

// GlobalStyles holds the document-level style settings.
type GlobalStyles struct {
	FontFamily               string `json:"fontFamily,omitempty"`
	BackgroundColor          string `json:"backgroundColor,omitempty"`
	ContainerWidth           int    `json:"containerWidth,omitempty"`
	ContainerBackgroundColor string `json:"containerBackgroundColor,omitempty"`
}

// Metadata carries document provenance information.
type Metadata struct {
	Version   string    `json:"version,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Block is one addressable, typed unit of an email's content.
// ID is the round-trip anchor between the document and its rendered HTML and
// must stay stable across edits. Render order is defined by OrderID, not by
// array position.
type Block struct {
	ID        string       `json:"id"`
	BlockType BlockType    `json:"blockType"`
	OrderID   int          `json:"orderId"`
	Styles    StyleOptions `json:"styles"`
	Content   interface{}  `json:"content"`
}

// HeaderContent holds either a text title or a logo image. The image takes
// precedence when both are present.
type HeaderContent struct {
	Text        string `json:"text,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	ImageAlt    string `json:"imageAlt,omitempty"`
	ImageWidth  string `json:"imageWidth,omitempty"`
	ImageHeight string `json:"imageHeight,omitempty"`
}

// HeroContent holds a required headline and an optional subheadline.
type HeroContent struct {
	Headline    string `json:"headline"`
	Subheadline string `json:"subheadline,omitempty"`
}

// TextContent holds a body string with an optional embedded link. The link is
// only applied when LinkText is a literal substring of Text.
type TextContent struct {
	Text     string `json:"text"`
	LinkText string `json:"linkText,omitempty"`
	LinkURL  string `json:"linkUrl,omitempty"`
}

// ImageContent holds an image reference with optional dimensions and an
// optional wrapping link.
type ImageContent struct {
	URL     string `json:"url"`
	Alt     string `json:"alt,omitempty"`
	Width   string `json:"width,omitempty"`
	Height  string `json:"height,omitempty"`
	LinkURL string `json:"linkUrl,omitempty"`
}

// ButtonContent holds a call-to-action button. BackgroundColor, when set,
// overrides the style variant's default color.
type ButtonContent struct {
	Text            string      `json:"text"`
	URL             string      `json:"url"`
	ButtonStyle     ButtonStyle `json:"buttonStyle,omitempty"`
	BackgroundColor string      `json:"backgroundColor,omitempty"`
}

// DividerContent is either a rule line with a thickness or blank vertical
// space with a height, both in pixels.
type DividerContent struct {
	DividerType DividerType `json:"dividerType,omitempty"`
	Thickness   int         `json:"thickness,omitempty"`
	Height      int         `json:"height,omitempty"`
}

// SocialLink is a footer social media link.
type SocialLink struct {
	Platform SocialPlatform `json:"platform"`
	URL      string         `json:"url"`
}

// FooterContent holds the legally required footer fields. Address is free
// text with newlines preserved.
type FooterContent struct {
	CompanyName       string       `json:"companyName,omitempty"`
	Address           string       `json:"address,omitempty"`
	UnsubscribeText   string       `json:"unsubscribeText,omitempty"`
	UnsubscribeURL    string       `json:"unsubscribeUrl,omitempty"`
	PrivacyPolicyText string       `json:"privacyPolicyText,omitempty"`
	PrivacyPolicyURL  string       `json:"privacyPolicyUrl,omitempty"`
	SocialLinks       []SocialLink `json:"socialLinks,omitempty"`
}

// Feature is one entry of a features block.
type Feature struct {
	Icon        string `json:"icon,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// FeaturesContent holds an optional section title and an ordered list of
// feature entries.
type FeaturesContent struct {
	Title    string         `json:"title,omitempty"`
	Features []Feature      `json:"features"`
	Layout   FeaturesLayout `json:"layout,omitempty"`
}

// UnmarshalJSON decodes the content field into the typed struct matching the
// blockType discriminant. Content of unrecognized block types is preserved as
// a raw map so documents survive a decode/encode cycle unchanged.
func (b *Block) UnmarshalJSON(data []byte) error {
	type blockAlias struct {
		ID        string          `json:"id"`
		BlockType BlockType       `json:"blockType"`
		OrderID   int             `json:"orderId"`
		Styles    StyleOptions    `json:"styles"`
		Content   json.RawMessage `json:"content"`
	}

	var alias blockAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	b.ID = alias.ID
	b.BlockType = alias.BlockType
	b.OrderID = alias.OrderID
	b.Styles = alias.Styles

	if len(alias.Content) == 0 || string(alias.Content) == "null" {
		b.Content = nil
		return nil
	}

	content, err := decodeTypedContent(alias.BlockType, alias.Content)
	if err != nil {
		return fmt.Errorf("failed to decode content for block %q (type %q): %w", alias.ID, alias.BlockType, err)
	}
	b.Content = content
	return nil
}

// decodeTypedContent unmarshals raw content into the struct for the given
// block type. Unknown types fall back to a generic map.
func decodeTypedContent(t BlockType, raw json.RawMessage) (interface{}, error) {
	switch t {
	case BlockTypeHeader:
		var c HeaderContent
		err := json.Unmarshal(raw, &c)
		return c, err
	case BlockTypeHero:
		var c HeroContent
		err := json.Unmarshal(raw, &c)
		return c, err
	case BlockTypeText:
		var c TextContent
		err := json.Unmarshal(raw, &c)
		return c, err
	case BlockTypeImage:
		var c ImageContent
		err := json.Unmarshal(raw, &c)
		return c, err
	case BlockTypeButton:
		var c ButtonContent
		err := json.Unmarshal(raw, &c)
		return c, err
	case BlockTypeDivider:
		var c DividerContent
		err := json.Unmarshal(raw, &c)
		return c, err
	case BlockTypeFooter:
		var c FooterContent
		err := json.Unmarshal(raw, &c)
		return c, err
	case BlockTypeFeatures:
		var c FeaturesContent
		err := json.Unmarshal(raw, &c)
		return c, err
	default:
		var c map[string]interface{}
		err := json.Unmarshal(raw, &c)
		return c, err
	}
}

// decodeContent extracts a block's content into target regardless of whether
// the content was stored as a typed struct or a generic map. Nil content
// leaves target at its zero value.
func decodeContent(b Block, target interface{}) error {
	if b.Content == nil {
		return nil
	}
	raw, err := json.Marshal(b.Content)
	if err != nil {
		return fmt.Errorf("failed to marshal content for block %q (type %q): %w", b.ID, b.BlockType, err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("failed to decode content into %T for block %q (type %q): %w", target, b.ID, b.BlockType, err)
	}
	return nil
}

// UnmarshalEmailDocument parses a Block Document from JSON.
func UnmarshalEmailDocument(data []byte) (*EmailDocument, error) {
	var doc EmailDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal email document: %w", err)
	}
	return &doc, nil
}

// SortedBlocks returns the blocks in canonical render order: sorted by
// orderId ascending, preserving relative array order for duplicate orderIds.
func (d *EmailDocument) SortedBlocks() []Block {
	sorted := make([]Block, len(d.Blocks))
	copy(sorted, d.Blocks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OrderID < sorted[j].OrderID
	})
	return sorted
}

// BlockByID returns a pointer to the block with the given id, or nil.
func (d *EmailDocument) BlockByID(id string) *Block {
	for i := range d.Blocks {
		if d.Blocks[i].ID == id {
			return &d.Blocks[i]
		}
	}
	return nil
}
