package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Image is one product image descriptor. The API serves images either as a
// bare URL string or as an object with a URL and a featured flag; both forms
// decode into this type.
type Image struct {
	URL      string `json:"url"`
	Featured bool   `json:"featured,omitempty"`
}

// UnmarshalJSON accepts both the bare-string and the object encoding
func (i *Image) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		i.URL = s
		i.Featured = false
		return nil
	}

	type image Image
	var obj image
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("catalog: invalid image descriptor: %w", err)
	}
	*i = Image(obj)
	return nil
}

// Color is one product color option, either a plain name or a name with a
// swatch reference.
type Color struct {
	Name   string `json:"name"`
	Swatch string `json:"swatch,omitempty"`
}

// UnmarshalJSON accepts both the plain-string and the object encoding
func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Name = s
		c.Swatch = ""
		return nil
	}

	type color Color
	var obj color
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("catalog: invalid color descriptor: %w", err)
	}
	*c = Color(obj)
	return nil
}

// Product is a catalog item as seen by the client. Two identifier schemes
// coexist: CanonicalID is the stable catalog identifier, LegacyID the
// historical database identifier still present on older records.
type Product struct {
	CanonicalID string          `json:"prodId,omitempty"`
	LegacyID    string          `json:"_id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category,omitempty"`
	Images      []Image         `json:"images,omitempty"`
	Sizes       []string        `json:"sizes,omitempty"`
	Colors      []Color         `json:"colors,omitempty"`
	Stock       int             `json:"stock,omitempty"`
	Active      bool            `json:"isActive,omitempty"`
}

// Key resolves the product's single stable identifier: the canonical ID when
// present, else the legacy ID. This is the only place the two schemes are
// compared; every store keys exclusively on its output.
func (p *Product) Key() string {
	if p.CanonicalID != "" {
		return p.CanonicalID
	}
	return p.LegacyID
}

// HasKey reports whether the product carries any usable identifier
func (p *Product) HasKey() bool {
	return p.CanonicalID != "" || p.LegacyID != ""
}

// MatchesID reports whether id names this product under either identifier
// scheme. Deletes and lookups arrive keyed by whichever identifier the caller
// held, which is not necessarily the one Key resolves to.
func (p *Product) MatchesID(id string) bool {
	return id != "" && (id == p.CanonicalID || id == p.LegacyID)
}

// FeaturedImage returns the URL of the featured image, falling back to the
// first image, or empty when the product has none.
func (p *Product) FeaturedImage() string {
	for _, img := range p.Images {
		if img.Featured {
			return img.URL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}
