package emailblocks

import (
	"fmt"
	"strings"

	"github.com/asaskevich/govalidator"
)

// ValidationResult reports invariant violations found in a Block Document.
// Errors break the renderer/parser contract; warnings are quality issues the
// host may surface without blocking a save. The renderer itself never blocks
// on validation failures.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (r *ValidationResult) addError(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Valid = false
}

func (r *ValidationResult) addWarning(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// ValidateDocument checks the document invariants: unique non-empty block
// ids, unique orderIds, known block types, and required content fields.
func ValidateDocument(doc *EmailDocument) *ValidationResult {
	result := &ValidationResult{Valid: true, Errors: []string{}, Warnings: []string{}}
	if doc == nil {
		result.addError("document is nil")
		return result
	}

	seenIDs := make(map[string]bool)
	seenOrders := make(map[int]string)

	for _, b := range doc.Blocks {
		if b.ID == "" {
			result.addError("block of type %q has an empty id", b.BlockType)
		} else if seenIDs[b.ID] {
			result.addError("duplicate block id %q", b.ID)
		}
		seenIDs[b.ID] = true

		if prev, ok := seenOrders[b.OrderID]; ok {
			result.addError("blocks %q and %q share orderId %d", prev, b.ID, b.OrderID)
		} else {
			seenOrders[b.OrderID] = b.ID
		}

		if !IsKnownBlockType(b.BlockType) {
			result.addWarning("block %q has unknown type %q and will not render", b.ID, b.BlockType)
			continue
		}

		validateContent(b, result)
	}

	if doc.GlobalStyles.ContainerWidth < 0 {
		result.addWarning("containerWidth %d is negative, the default of %d will be used", doc.GlobalStyles.ContainerWidth, defaultContainerWidth)
	}

	return result
}

func validateContent(b Block, result *ValidationResult) {
	switch b.BlockType {
	case BlockTypeHero:
		var c HeroContent
		if decodeContent(b, &c) == nil && strings.TrimSpace(c.Headline) == "" {
			result.addError("hero block %q is missing its headline", b.ID)
		}
	case BlockTypeImage:
		var c ImageContent
		if decodeContent(b, &c) == nil {
			if c.URL == "" {
				result.addError("image block %q is missing its image URL", b.ID)
			} else if !govalidator.IsURL(c.URL) {
				result.addWarning("image block %q has a malformed URL %q", b.ID, c.URL)
			}
		}
	case BlockTypeButton:
		var c ButtonContent
		if decodeContent(b, &c) == nil {
			if c.URL == "" {
				result.addError("button block %q is missing its target URL", b.ID)
			} else if !govalidator.IsURL(c.URL) {
				result.addWarning("button block %q has a malformed URL %q", b.ID, c.URL)
			}
			if strings.TrimSpace(c.Text) == "" {
				result.addWarning("button block %q has no label text", b.ID)
			}
			if c.BackgroundColor != "" && c.BackgroundColor != "transparent" && !govalidator.IsHexcolor(c.BackgroundColor) {
				result.addWarning("button block %q has a non-hex background color %q", b.ID, c.BackgroundColor)
			}
		}
	case BlockTypeFooter:
		var c FooterContent
		if decodeContent(b, &c) == nil {
			if c.UnsubscribeURL == "" {
				result.addWarning("footer block %q has no unsubscribe link", b.ID)
			}
			for _, s := range c.SocialLinks {
				if s.URL != "" && !govalidator.IsURL(s.URL) {
					result.addWarning("footer block %q has a malformed %s URL %q", b.ID, s.Platform, s.URL)
				}
			}
		}
	case BlockTypeFeatures:
		var c FeaturesContent
		if decodeContent(b, &c) == nil && len(c.Features) == 0 {
			result.addWarning("features block %q has no feature entries", b.ID)
		}
	}
}
