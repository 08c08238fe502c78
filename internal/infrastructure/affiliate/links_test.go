package affiliate

import (
	"strings"
	"testing"
)

func TestLinksForShoe(t *testing.T) {
	t.Run("builds one link per retailer", func(t *testing.T) {
		links := LinksForShoe("Nike Pegasus 41")
		if len(links) != len(retailers) {
			t.Fatalf("got %d links, want %d", len(links), len(retailers))
		}
	})

	t.Run("query is URL escaped", func(t *testing.T) {
		links := LinksForShoe("Nike Pegasus 41")
		for _, link := range links {
			if strings.Contains(link.URL, " ") {
				t.Errorf("link %s contains unescaped space: %s", link.Key, link.URL)
			}
			if !strings.Contains(link.URL, "Nike+Pegasus+41") {
				t.Errorf("link %s missing escaped query: %s", link.Key, link.URL)
			}
		}
	})

	t.Run("review site is marked as resource", func(t *testing.T) {
		links := LinksForShoe("Novablast 4")
		for _, link := range links {
			want := "retailer"
			if link.Key == "runRepeat" {
				want = "resource"
			}
			if link.Type != want {
				t.Errorf("link %s type = %q, want %q", link.Key, link.Type, want)
			}
		}
	})

	t.Run("empty name yields no links", func(t *testing.T) {
		if links := LinksForShoe(""); links != nil {
			t.Errorf("got %v, want nil", links)
		}
	})

	t.Run("labels and keys are populated", func(t *testing.T) {
		for _, link := range LinksForShoe("Vaporfly 3") {
			if link.Key == "" || link.Label == "" || link.URL == "" {
				t.Errorf("incomplete link: %+v", link)
			}
		}
	})
}
