package scraper

import (
	"fmt"
	"net/url"
	"strings"

	"compass/compass/utils/types"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// BodyMode selects how body text is pulled out of a page.
type BodyMode string

const (
	// BodyParagraphs joins the raw text of every <p> element.
	BodyParagraphs BodyMode = "paragraphs"
	// BodyReadability uses the main article text found by go-readability.
	BodyReadability BodyMode = "readability"
)

// ExtractPage parses htmlContent into a ScrapedPage. Missing <title> or
// description meta tags leave the matching field empty.
func ExtractPage(htmlContent, pageURL string, mode BodyMode) (types.ScrapedPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return types.ScrapedPage{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	page := types.ScrapedPage{
		URL:   pageURL,
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}
	if content, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		page.MetaDescription = strings.TrimSpace(content)
	}

	switch mode {
	case BodyReadability:
		body, err := readableText(htmlContent, pageURL)
		if err != nil {
			return types.ScrapedPage{}, err
		}
		page.BodyText = body
	default:
		page.BodyText = paragraphText(doc)
	}
	return page, nil
}

// paragraphText joins the raw text of every <p>, in document order, with
// single spaces. Paragraph whitespace is kept as is.
func paragraphText(doc *goquery.Document) string {
	var parts []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		parts = append(parts, s.Text())
	})
	return strings.Join(parts, " ")
}

func readableText(htmlContent, pageURL string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("invalid page URL: %w", err)
	}
	article, err := readability.FromReader(strings.NewReader(htmlContent), parsed)
	if err != nil {
		return "", fmt.Errorf("readability extraction failed: %w", err)
	}
	return strings.Join(strings.Fields(article.TextContent), " "), nil
}
