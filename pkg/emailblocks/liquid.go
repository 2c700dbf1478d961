package emailblocks

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/osteele/liquid"
)

// RenderDocumentWithData renders the document after running Liquid
// personalization over its text-bearing content: subject, preheader, text
// bodies, hero headlines and button labels. templateData is a JSON object of
// bindings. With empty templateData this is equivalent to RenderDocument.
func RenderDocumentWithData(doc *EmailDocument, templateData string) (string, error) {
	if doc == nil || templateData == "" {
		return RenderDocument(doc), nil
	}

	var bindings map[string]interface{}
	if err := json.Unmarshal([]byte(templateData), &bindings); err != nil {
		return "", fmt.Errorf("invalid template data JSON: %w", err)
	}

	engine := liquid.NewEngine()

	personalized := *doc
	personalized.Blocks = make([]Block, len(doc.Blocks))
	copy(personalized.Blocks, doc.Blocks)

	var err error
	if personalized.Subject, err = renderLiquid(engine, doc.Subject, bindings, "subject"); err != nil {
		return "", err
	}
	if personalized.Preheader, err = renderLiquid(engine, doc.Preheader, bindings, "preheader"); err != nil {
		return "", err
	}

	for i := range personalized.Blocks {
		if err := personalizeBlock(engine, &personalized.Blocks[i], bindings); err != nil {
			return "", err
		}
	}

	return RenderDocument(&personalized), nil
}

func personalizeBlock(engine *liquid.Engine, b *Block, bindings map[string]interface{}) error {
	var err error
	switch b.BlockType {
	case BlockTypeText:
		var c TextContent
		if decodeContent(*b, &c) != nil {
			return nil
		}
		if c.Text, err = renderLiquid(engine, c.Text, bindings, b.ID); err != nil {
			return err
		}
		b.Content = c
	case BlockTypeHero:
		var c HeroContent
		if decodeContent(*b, &c) != nil {
			return nil
		}
		if c.Headline, err = renderLiquid(engine, c.Headline, bindings, b.ID); err != nil {
			return err
		}
		if c.Subheadline, err = renderLiquid(engine, c.Subheadline, bindings, b.ID); err != nil {
			return err
		}
		b.Content = c
	case BlockTypeButton:
		var c ButtonContent
		if decodeContent(*b, &c) != nil {
			return nil
		}
		if c.Text, err = renderLiquid(engine, c.Text, bindings, b.ID); err != nil {
			return err
		}
		b.Content = c
	}
	return nil
}

// renderLiquid runs content through the Liquid engine when it carries
// template markup, and returns it untouched otherwise.
func renderLiquid(engine *liquid.Engine, content string, bindings map[string]interface{}, context string) (string, error) {
	if !strings.Contains(content, "{{") && !strings.Contains(content, "{%") {
		return content, nil
	}
	rendered, err := engine.ParseAndRenderString(content, bindings)
	if err != nil {
		return "", fmt.Errorf("liquid rendering failed for %s: %w", context, err)
	}
	return rendered, nil
}
