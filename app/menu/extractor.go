package menu

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/PuerkitoBio/goquery"

	"github.com/stair-ch/foodstoffi/app/tree"
)

// PayloadID is the id of the script element carrying the embedded
// JSON payload on the source page.
const PayloadID = "__NEXT_DATA__"

// menuFragmentPath locates the raw menu document inside the payload.
const menuFragmentPath = "props.pageProps.organisation.outlet.menuCategory"

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Run locates the embedded payload in the fetched page and builds the
// Menu from it. A page without the payload, an unparsable payload or a
// payload without the menu fragment yields (nil, nil): no menu
// available, not an error.
func (e *Extractor) Run(data []byte) (*Menu, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("HTML data is empty")
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	sel := doc.Find("script#" + PayloadID)
	if sel.Length() == 0 {
		slog.Warn("Embedded payload not found in page", "marker", PayloadID)
		return nil, nil
	}

	root, err := tree.Parse([]byte(sel.First().Text()))
	if err != nil {
		slog.Warn("Failed to parse embedded payload", "error", err)
		return nil, nil
	}

	frag, err := tree.Map(root, menuFragmentPath)
	if err != nil {
		slog.Warn("Menu fragment missing from payload", "error", err)
		return nil, nil
	}

	m, err := BuildMenu(frag)
	if err != nil {
		return nil, err
	}

	slog.Debug("Menu extracted", "id", m.ID, "days", len(m.Days))

	return m, nil
}
