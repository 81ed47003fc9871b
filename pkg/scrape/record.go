package scrape

import (
	"io"
	"net/http"
	"strings"

	// Packages
	goquery "github.com/PuerkitoBio/goquery"
	cascadia "github.com/andybalholm/cascadia"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Record is one matching element.
type Record struct {
	Text       string            `json:"text"`
	HTML       string            `json:"html"`
	Attributes map[string]string `json:"attributes"`
}

// page is the parsed response body
type page struct {
	*goquery.Document
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r Record) String() string {
	return types.Stringify(r)
}

///////////////////////////////////////////////////////////////////////////////
// UNMARSHALER

func (p *page) Unmarshal(header http.Header, body io.Reader) error {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return err
	}
	p.Document = doc
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (p *page) records(sel cascadia.Selector) []Record {
	result := []Record{}
	p.FindMatcher(sel).Each(func(_ int, s *goquery.Selection) {
		html, _ := s.Html()
		record := Record{
			Text:       strings.TrimSpace(s.Text()),
			HTML:       html,
			Attributes: make(map[string]string),
		}
		for _, node := range s.Nodes {
			for _, attr := range node.Attr {
				record.Attributes[attr.Key] = attr.Val
			}
		}
		result = append(result, record)
	})
	return result
}
