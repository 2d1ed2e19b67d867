package catalog

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductKey(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		want    string
	}{
		{
			name:    "canonical ID wins when both present",
			product: Product{CanonicalID: "SHIRT-001", LegacyID: "64a1b2c3"},
			want:    "SHIRT-001",
		},
		{
			name:    "falls back to legacy ID",
			product: Product{LegacyID: "64a1b2c3"},
			want:    "64a1b2c3",
		},
		{
			name:    "empty when neither present",
			product: Product{Name: "Mystery Shirt"},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.product.Key())
		})
	}
}

func TestProductHasKey(t *testing.T) {
	assert.True(t, (&Product{CanonicalID: "SHIRT-001"}).HasKey())
	assert.True(t, (&Product{LegacyID: "64a1b2c3"}).HasKey())
	assert.False(t, (&Product{Name: "Mystery Shirt"}).HasKey())
}

func TestProductMatchesID(t *testing.T) {
	p := &Product{CanonicalID: "SHIRT-001", LegacyID: "64a1b2c3"}

	assert.True(t, p.MatchesID("SHIRT-001"))
	assert.True(t, p.MatchesID("64a1b2c3"))
	assert.False(t, p.MatchesID("PANTS-001"))
	assert.False(t, (&Product{}).MatchesID(""))
}

func TestImageUnmarshalBothEncodings(t *testing.T) {
	t.Run("bare string", func(t *testing.T) {
		var img Image
		require.NoError(t, json.Unmarshal([]byte(`"https://cdn.example.com/a.jpg"`), &img))
		assert.Equal(t, "https://cdn.example.com/a.jpg", img.URL)
		assert.False(t, img.Featured)
	})

	t.Run("object", func(t *testing.T) {
		var img Image
		require.NoError(t, json.Unmarshal([]byte(`{"url":"https://cdn.example.com/b.jpg","featured":true}`), &img))
		assert.Equal(t, "https://cdn.example.com/b.jpg", img.URL)
		assert.True(t, img.Featured)
	})

	t.Run("invalid", func(t *testing.T) {
		var img Image
		assert.Error(t, json.Unmarshal([]byte(`42`), &img))
	})
}

func TestColorUnmarshalBothEncodings(t *testing.T) {
	t.Run("plain string", func(t *testing.T) {
		var c Color
		require.NoError(t, json.Unmarshal([]byte(`"Navy"`), &c))
		assert.Equal(t, "Navy", c.Name)
		assert.Empty(t, c.Swatch)
	})

	t.Run("object with swatch", func(t *testing.T) {
		var c Color
		require.NoError(t, json.Unmarshal([]byte(`{"name":"Navy","swatch":"#001f3f"}`), &c))
		assert.Equal(t, "Navy", c.Name)
		assert.Equal(t, "#001f3f", c.Swatch)
	})
}

func TestProductUnmarshalMixedImages(t *testing.T) {
	payload := `{
		"prodId": "SHIRT-001",
		"name": "Oxford Shirt",
		"price": "49.99",
		"images": ["https://cdn.example.com/a.jpg", {"url": "https://cdn.example.com/b.jpg", "featured": true}],
		"colors": ["White", {"name": "Navy", "swatch": "#001f3f"}]
	}`

	var p Product
	require.NoError(t, json.Unmarshal([]byte(payload), &p))
	assert.Equal(t, "SHIRT-001", p.Key())
	assert.True(t, p.Price.Equal(decimal.RequireFromString("49.99")))
	require.Len(t, p.Images, 2)
	assert.Equal(t, "https://cdn.example.com/b.jpg", p.FeaturedImage())
	require.Len(t, p.Colors, 2)
	assert.Equal(t, "Navy", p.Colors[1].Name)
}

func TestFeaturedImageFallsBackToFirst(t *testing.T) {
	p := Product{Images: []Image{{URL: "first.jpg"}, {URL: "second.jpg"}}}
	assert.Equal(t, "first.jpg", p.FeaturedImage())

	empty := Product{}
	assert.Empty(t, empty.FeaturedImage())
}
