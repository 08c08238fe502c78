// Package affiliate builds retailer search links for shoes. Retailers
// handle the search query on their side; the engine only needs a name.
package affiliate

import (
	"net/url"

	"github.com/cinda/backend/internal/domain"
)

// retailer describes one outbound link target
type retailer struct {
	key           string
	label         string
	baseSearchURL string
}

var retailers = []retailer{
	{"sportsshoes", "Sportsshoes", "https://www.sportsshoes.com/search/?q="},
	{"startFitness", "Start Fitness", "https://www.startfitness.co.uk/catalogsearch/result/?q="},
	{"runningWarehouse", "Running Warehouse EU", "https://www.runningwarehouse.eu/search.html?search="},
	{"proDirect", "Pro:Direct Running", "https://www.prodirectrunning.com/lists/search.aspx?search="},
	{"runRepeat", "RunRepeat review", "https://runrepeat.com/search?q="},
}

// LinksForShoe generates the outbound links for a shoe name. An empty name
// yields no links.
func LinksForShoe(shoeName string) []domain.AffiliateLink {
	if shoeName == "" {
		return nil
	}
	query := url.QueryEscape(shoeName)

	links := make([]domain.AffiliateLink, 0, len(retailers))
	for _, site := range retailers {
		linkType := "retailer"
		if site.key == "runRepeat" {
			linkType = "resource"
		}
		links = append(links, domain.AffiliateLink{
			Key:   site.key,
			Label: site.label,
			URL:   site.baseSearchURL + query,
			Type:  linkType,
		})
	}
	return links
}
