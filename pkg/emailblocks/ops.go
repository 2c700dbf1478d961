package emailblocks

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Editing operations mutate the document in place while preserving the two
// structural invariants: block ids stay unique and stable, orderIds stay
// unique and total. Every operation leaves blocks renumbered 1..n in
// canonical order.

// NormalizeOrder rewrites orderIds to 1..n following the canonical sort,
// using array order as the tie-break for duplicates.
func NormalizeOrder(doc *EmailDocument) {
	sorted := doc.SortedBlocks()
	for i := range sorted {
		sorted[i].OrderID = i + 1
	}
	doc.Blocks = sorted
}

// InsertBlock inserts a block at the given position in canonical order.
// Positions out of range clamp to the ends. A missing or colliding id is
// replaced with a fresh one.
func InsertBlock(doc *EmailDocument, block Block, position int) *Block {
	if block.ID == "" || doc.BlockByID(block.ID) != nil {
		block.ID = uuid.New().String()
	}

	sorted := doc.SortedBlocks()
	if position < 0 {
		position = 0
	}
	if position > len(sorted) {
		position = len(sorted)
	}

	sorted = append(sorted, Block{})
	copy(sorted[position+1:], sorted[position:])
	sorted[position] = block

	doc.Blocks = sorted
	for i := range doc.Blocks {
		doc.Blocks[i].OrderID = i + 1
	}
	return &doc.Blocks[position]
}

// DeleteBlock removes the block with the given id and renumbers the rest.
// It reports whether a block was removed.
func DeleteBlock(doc *EmailDocument, id string) bool {
	for i := range doc.Blocks {
		if doc.Blocks[i].ID == id {
			doc.Blocks = append(doc.Blocks[:i], doc.Blocks[i+1:]...)
			NormalizeOrder(doc)
			return true
		}
	}
	return false
}

// MoveBlock moves the block with the given id to the target position in
// canonical order. It reports whether the block was found.
func MoveBlock(doc *EmailDocument, id string, position int) bool {
	sorted := doc.SortedBlocks()
	from := -1
	for i := range sorted {
		if sorted[i].ID == id {
			from = i
			break
		}
	}
	if from == -1 {
		return false
	}

	block := sorted[from]
	sorted = append(sorted[:from], sorted[from+1:]...)
	if position < 0 {
		position = 0
	}
	if position > len(sorted) {
		position = len(sorted)
	}
	sorted = append(sorted, Block{})
	copy(sorted[position+1:], sorted[position:])
	sorted[position] = block

	doc.Blocks = sorted
	for i := range doc.Blocks {
		doc.Blocks[i].OrderID = i + 1
	}
	return true
}

// CloneBlock duplicates the block with the given id, giving the copy a fresh
// id and placing it immediately after the original.
func CloneBlock(doc *EmailDocument, id string) (*Block, error) {
	original := doc.BlockByID(id)
	if original == nil {
		return nil, fmt.Errorf("block %q not found", id)
	}

	clone := *original
	clone.ID = uuid.New().String()
	if original.Content != nil {
		// Deep-copy the content so edits to the clone never leak into the
		// original through shared slices.
		raw, err := json.Marshal(original.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to clone content of block %q: %w", id, err)
		}
		content, err := decodeTypedContent(original.BlockType, raw)
		if err != nil {
			return nil, fmt.Errorf("failed to clone content of block %q: %w", id, err)
		}
		clone.Content = content
	}

	sorted := doc.SortedBlocks()
	position := 0
	for i := range sorted {
		if sorted[i].ID == id {
			position = i + 1
			break
		}
	}
	return InsertBlock(doc, clone, position), nil
}
