// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data shared between the converter, the report
// writers, the session stores, and the CLI.
package types

import "strings"

// BlockKind identifies the structural role of a Block in a DocumentModel.
type BlockKind string

const (
	BlockHeading   BlockKind = "heading"
	BlockParagraph BlockKind = "paragraph"
	BlockBullet    BlockKind = "bullet"
	BlockBlank     BlockKind = "blank"
)

// Run is a contiguous span of text within a line sharing one style.
type Run struct {
	// Text is the visible text of the span with bold markers removed.
	Text string `json:"text" yaml:"text"`

	// Bold reports whether the span was wrapped in ** markers.
	Bold bool `json:"bold,omitempty" yaml:"bold,omitempty"`
}

// Block is one structural unit of a report document. A blank separator
// carries no runs.
type Block struct {
	// Kind is heading, paragraph, bullet, or blank.
	Kind BlockKind `json:"kind" yaml:"kind"`

	// Level is the heading level. Zero for every other kind.
	Level int `json:"level,omitempty" yaml:"level,omitempty"`

	// Runs are the ordered text spans of the block.
	Runs []Run `json:"runs,omitempty" yaml:"runs,omitempty"`
}

// Text concatenates the block's runs, ignoring their styles.
func (b Block) Text() string {
	var sb strings.Builder
	for _, r := range b.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// DocumentModel is the ordered sequence of blocks derived from a report's
// text. Block order mirrors line order in the source text.
type DocumentModel struct {
	Blocks []Block `json:"blocks" yaml:"blocks"`
}

// Len returns the number of blocks.
func (d DocumentModel) Len() int {
	return len(d.Blocks)
}

// Plain returns a Run with no styling.
func Plain(text string) Run {
	return Run{Text: text}
}

// Bold returns a bold Run.
func Bold(text string) Run {
	return Run{Text: text, Bold: true}
}

// Heading builds a heading block of the given level.
func Heading(level int, runs ...Run) Block {
	return Block{Kind: BlockHeading, Level: level, Runs: runs}
}

// Paragraph builds a paragraph block.
func Paragraph(runs ...Run) Block {
	return Block{Kind: BlockParagraph, Runs: runs}
}

// Bullet builds a bullet list item block.
func Bullet(runs ...Run) Block {
	return Block{Kind: BlockBullet, Runs: runs}
}

// BlankSeparator builds the empty block that preserves a paragraph break.
func BlankSeparator() Block {
	return Block{Kind: BlockBlank}
}
