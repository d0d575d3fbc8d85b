package donor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/denisAlshanov/ytagent/internal/models"
)

const downloadButtonSelector = `button[onclick^="download("]`

var downloadCallRegex = regexp.MustCompile(`(?s)download\((.*)\)`)

// Descriptor is one convertible variant advertised by the analyze page.
type Descriptor struct {
	SourceURL  string
	Title      string
	ID         string
	Ext        string
	Quality    string
	FormatCode string
}

// Matches reports whether the descriptor satisfies the requested format:
// mp3 selects by extension, 720 selects by quality label.
func (d Descriptor) Matches(format models.Format) bool {
	switch format {
	case models.FormatMP3:
		return d.Ext == "mp3"
	case models.Format720:
		return d.Quality == "720p"
	default:
		return false
	}
}

// ParseDescriptor extracts a descriptor from an inline action of the form
// download('url','title','id','ext','x','quality','code'). It reports false
// for anything that does not carry exactly seven parameters.
func ParseDescriptor(action string) (Descriptor, bool) {
	m := downloadCallRegex.FindStringSubmatch(action)
	if len(m) < 2 || m[1] == "" {
		return Descriptor{}, false
	}

	params := strings.Split(m[1], ",")
	if len(params) != 7 {
		return Descriptor{}, false
	}
	for i, p := range params {
		p = strings.TrimSpace(p)
		p = strings.TrimPrefix(p, "'")
		p = strings.TrimSuffix(p, "'")
		params[i] = p
	}

	return Descriptor{
		SourceURL:  params[0],
		Title:      params[1],
		ID:         params[2],
		Ext:        params[3],
		Quality:    params[5],
		FormatCode: params[6],
	}, true
}

// FindDescriptor scans an HTML fragment for download buttons and returns the
// first descriptor matching format. Malformed buttons are skipped.
func FindDescriptor(fragment string, format models.Format) (Descriptor, bool, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return Descriptor{}, false, fmt.Errorf("parse html: %w", err)
	}

	var (
		found Descriptor
		ok    bool
	)
	doc.Find(downloadButtonSelector).EachWithBreak(func(i int, s *goquery.Selection) bool {
		action, exists := s.Attr("onclick")
		if !exists {
			return true
		}
		d, parsed := ParseDescriptor(action)
		if !parsed || !d.Matches(format) {
			return true
		}
		found, ok = d, true
		return false
	})

	return found, ok, nil
}
