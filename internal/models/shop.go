package models

import (
	"fmt"
	"strings"
)

// ShopInfo is the immutable snapshot of the store used by the Organization
// builder and for URL derivation. The fetch layer produces it.
type ShopInfo struct {
	Name        string            `json:"name"`
	Domain      string            `json:"domain"`
	Description string            `json:"description,omitempty"`
	Email       string            `json:"email,omitempty"`
	Phone       string            `json:"phone,omitempty"`
	Currency    string            `json:"currency,omitempty"`
	Address     ShopAddress       `json:"address,omitempty"`
	SocialLinks map[string]string `json:"social_links,omitempty"`
}

// ShopAddress holds the legal address fields of the store.
type ShopAddress struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Empty reports whether no address field is populated.
func (a ShopAddress) Empty() bool {
	return a.Street == "" && a.City == "" && a.Region == "" && a.PostalCode == "" && a.Country == ""
}

// Host returns the public hostname of the store. A bare platform handle is
// expanded to its hosted domain.
func (s *ShopInfo) Host() string {
	domain := strings.TrimSpace(s.Domain)
	if domain == "" {
		return ""
	}
	if strings.Contains(domain, ".") {
		return domain
	}
	return domain + ".myshopify.com"
}

// BaseURL returns the https URL of the storefront.
func (s *ShopInfo) BaseURL() string {
	return fmt.Sprintf("https://%s", s.Host())
}

// SocialProfileURLs derives full profile URLs from the configured handles.
// Values already shaped as URLs pass through untouched.
func (s *ShopInfo) SocialProfileURLs() []string {
	if len(s.SocialLinks) == 0 {
		return nil
	}

	prefixes := map[string]string{
		"twitter":   "https://twitter.com/",
		"facebook":  "https://facebook.com/",
		"instagram": "https://instagram.com/",
		"linkedin":  "https://linkedin.com/company/",
	}

	// Stable ordering keeps generated documents deterministic.
	order := []string{"twitter", "facebook", "instagram", "linkedin"}
	var urls []string
	for _, platform := range order {
		handle, ok := s.SocialLinks[platform]
		if !ok || handle == "" {
			continue
		}
		if strings.HasPrefix(handle, "http://") || strings.HasPrefix(handle, "https://") {
			urls = append(urls, handle)
			continue
		}
		urls = append(urls, prefixes[platform]+handle)
	}
	return urls
}
