package cityrecord

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Notice is one parsed procurement award notice. Title is the only identity
// the source exposes.
type Notice struct {
	Agency      string
	Title       string
	AwardDate   string
	Description string
	Category    string
}

var ErrMissingTitle = errors.New("notice block has no title")

// ParsePage extracts notices from one listing page in document order. A page
// without notice containers yields an empty slice — that is what an expired
// cookie looks like, not an error. Blocks that fail structurally are skipped
// and counted.
func ParsePage(raw []byte) ([]Notice, int, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, 0, err
	}

	var notices []Notice
	failures := 0
	doc.Find("div.notice-container").Each(func(i int, block *goquery.Selection) {
		notice, err := ParseNotice(block)
		if err != nil {
			log.Printf("skipping notice block %d: %v", i, err)
			failures++
			return
		}
		notices = append(notices, notice)
	})

	return notices, failures, nil
}

// ParseNotice extracts the five fields from a single notice container.
// The title is mandatory; a block without one signals markup drift and is
// rejected. The remaining fields degrade to empty strings, matching how
// loosely the source renders them.
func ParseNotice(block *goquery.Selection) (Notice, error) {
	heading := block.Find("h1").First()
	if heading.Length() == 0 {
		return Notice{}, ErrMissingTitle
	}

	title := strings.TrimSpace(heading.Text())
	if title == "" {
		return Notice{}, fmt.Errorf("empty title text: %w", ErrMissingTitle)
	}

	return Notice{
		Title:       title,
		Agency:      strings.TrimSpace(block.Find("strong").First().Text()),
		AwardDate:   awardDateOf(block),
		Category:    categoryOf(block),
		Description: strings.TrimSpace(block.Find("p.short-description").First().Text()),
	}, nil
}

// awardDateOf takes the last small element and keeps only the segment after
// the final newline; the leading lines hold a label and the notice type.
func awardDateOf(block *goquery.Selection) string {
	small := block.Find("small").Last()
	if small.Length() == 0 {
		return ""
	}
	text := strings.TrimSpace(small.Text())
	parts := strings.Split(text, "\n")
	return strings.TrimSpace(parts[len(parts)-1])
}

// categoryOf reads the text node immediately following the tag icon.
func categoryOf(block *goquery.Selection) string {
	icon := block.Find("i.fa.fa-tag").First()
	if icon.Length() == 0 || len(icon.Nodes) == 0 {
		return ""
	}
	if node := icon.Nodes[0].NextSibling; node != nil && node.Type == html.TextNode {
		return strings.TrimSpace(node.Data)
	}
	return ""
}
