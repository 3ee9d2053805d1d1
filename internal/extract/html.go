package extract

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/samvad-hq/board-monitor/pkg/boards"
)

// htmlStrategy extracts items from markup using goquery selectors.
type htmlStrategy struct{}

// NewHTMLStrategy builds the extraction strategy for html boards.
func NewHTMLStrategy() Strategy {
	return htmlStrategy{}
}

func (htmlStrategy) SourceType() string { return boards.SourceTypeHTML }

// Extract parses the document and collects titles. With item_selector set,
// every matched node with non-empty title text counts toward ExtractedTotal
// and the node's own full text becomes the row text of its first-seen title.
// Without item_selector, every hyperlink whose normalized text length falls
// inside the board's fallback bounds counts; no row text is recorded.
func (htmlStrategy) Extract(raw []byte, board boards.Board) (Result, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return Result{}, fmt.Errorf("parse html: %w", err)
	}

	titles := newDedup()
	rows := make(map[string]string)
	total := 0

	if board.ItemSelector != "" {
		doc.Find(board.ItemSelector).Each(func(_ int, node *goquery.Selection) {
			title := titleFromNode(node, board.TitleSelector)
			if title == "" {
				return
			}
			total++
			if !titles.Add(title) {
				return
			}
			if rowText := Normalize(node.Text()); rowText != "" {
				rows[title] = rowText
			}
		})
	} else {
		doc.Find("a").Each(func(_ int, anchor *goquery.Selection) {
			text := Normalize(anchor.Text())
			length := utf8.RuneCountInString(text)
			if length < board.FallbackMinLen || length > board.FallbackMaxLen {
				return
			}
			total++
			titles.Add(text)
		})
	}

	items, limitedRows := titles.Capped(board.MaxItems, rows)
	return Result{Items: items, ExtractedTotal: total, RowTextByTitle: limitedRows}, nil
}

// titleFromNode derives an item node's title text: the title_selector match
// wins, then the node itself when it is a hyperlink, then the first hyperlink
// descendant, then the node's full text.
func titleFromNode(node *goquery.Selection, titleSelector string) string {
	if titleSelector != "" {
		if titleNode := node.Find(titleSelector).First(); titleNode.Length() > 0 {
			return Normalize(titleNode.Text())
		}
	}

	if goquery.NodeName(node) == "a" {
		return Normalize(node.Text())
	}

	if anchor := node.Find("a").First(); anchor.Length() > 0 {
		return Normalize(anchor.Text())
	}

	return Normalize(node.Text())
}
