// Command refresh_offices is a manual verification tool for the permit
// office reference data. It fetches each jurisdiction's permit office page
// and flags entries whose pages no longer mention the address or phone
// number we have on file, so the static tables can be updated by hand.
//
// Usage:
//
//	go run cmd/tools/refresh_offices/main.go [-browser] [-timeout 30s]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/permit-engine/internal/fetch"
	"github.com/jonathan/permit-engine/internal/geodata"
)

// officePage pairs a jurisdiction's permit office record with the public
// page that documents it.
type officePage struct {
	Jurisdiction string
	Office       string
	URL          string
}

// officePages lists the public building department pages for each
// jurisdiction in the reference tables.
func officePages() []officePage {
	tables := geodata.Default()
	urls := map[string]string{
		"tampa":            "https://www.tampa.gov/construction-services",
		"st. petersburg":   "https://www.stpete.org/residents/building_permitting/index.php",
		"clearwater":       "https://www.myclearwater.com/government/city-departments/planning-development",
		"sarasota":         "https://www.sarasotafl.gov/government/development-services",
		"bradenton":        "https://www.cityofbradenton.com/269/Building-Division",
		"Hillsborough":     "https://hcfl.gov/businesses/permits-records-and-maps",
		"Pinellas":         "https://pinellas.gov/building-permits/",
		"Pasco":            "https://www.pascocountyfl.net/services/building_construction_services",
		"Manatee":          "https://www.mymanatee.org/departments/building___development_services",
		"Sarasota (cnty)":  "https://www.scgov.net/government/planning-and-development-services",
	}

	var pages []officePage
	for city, office := range tables.CityPermitOffices {
		if url, ok := urls[city]; ok {
			pages = append(pages, officePage{Jurisdiction: city, Office: office, URL: url})
		}
	}
	for county, office := range tables.CountyPermitOffices {
		key := county
		if county == "Sarasota" {
			key = "Sarasota (cnty)"
		}
		if url, ok := urls[key]; ok {
			pages = append(pages, officePage{Jurisdiction: county + " County", Office: office, URL: url})
		}
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Jurisdiction < pages[j].Jurisdiction })
	return pages
}

func main() {
	useBrowser := flag.Bool("browser", false, "Render JavaScript-heavy pages with a headless browser")
	timeout := flag.Duration("timeout", fetch.DefaultTimeout, "Per-page fetch timeout")
	flag.Parse()

	ctx := context.Background()
	opts := fetch.DefaultOptions()
	opts.Timeout = *timeout

	pages := officePages()
	fmt.Printf("Checking %d permit office pages...\n\n", len(pages))

	stale := 0
	for _, page := range pages {
		text, err := fetchPageText(ctx, page.URL, opts, *useBrowser, *timeout)
		if err != nil {
			fmt.Printf("ERROR  %-28s %v\n", page.Jurisdiction, err)
			stale++
			continue
		}

		if mentionsOffice(text, page.Office) {
			fmt.Printf("OK     %-28s %s\n", page.Jurisdiction, page.URL)
		} else {
			fmt.Printf("STALE  %-28s office record not found on page\n", page.Jurisdiction)
			fmt.Printf("       on file: %s\n", page.Office)
			stale++
		}
	}

	fmt.Printf("\n%d of %d entries need review\n", stale, len(pages))
	if stale > 0 {
		os.Exit(1)
	}
}

// fetchPageText retrieves the page and extracts its main content, retrying
// with a headless browser when the static fetch comes back thin.
func fetchPageText(ctx context.Context, url string, opts *fetch.Options, allowBrowser bool, timeout time.Duration) (string, error) {
	result, err := fetch.URL(ctx, url, opts)
	if err != nil {
		return "", err
	}

	text, err := fetch.ExtractMainText(result.HTML, fetch.PermitOfficeSelectors())
	if err != nil {
		return "", err
	}

	if allowBrowser && fetch.ShouldUseBrowser(text) {
		html, err := fetch.WithBrowser(ctx, url, timeout)
		if err != nil {
			return text, nil // keep the static text if the browser fails
		}
		if rendered, err := fetch.ExtractMainText(html, fetch.PermitOfficeSelectors()); err == nil && len(rendered) > len(text) {
			return rendered, nil
		}
	}
	return text, nil
}

// mentionsOffice reports whether the page text still references the office
// record. Matching on the street number and phone digits tolerates
// reformatting of the surrounding text.
func mentionsOffice(text, office string) bool {
	lower := strings.ToLower(text)
	matches := 0
	checks := 0
	for _, token := range strings.Fields(office) {
		token = strings.Trim(token, ",.()")
		// Street numbers and phone fragments are the stable parts
		if len(token) >= 4 && strings.IndexFunc(token, isDigit) >= 0 {
			checks++
			if strings.Contains(lower, strings.ToLower(token)) {
				matches++
			}
		}
	}
	if checks == 0 {
		return strings.Contains(lower, "permit")
	}
	return matches*2 >= checks
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
