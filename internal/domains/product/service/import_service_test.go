package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jewelstore-backend/internal/domains/product/model"
)

func TestParseImportRow(t *testing.T) {
	t.Run("full row", func(t *testing.T) {
		row := []string{
			"Kundan Bridal Necklace", "necklaces", "Gold", "22K", "Kundan",
			"45.5", "185000", "210000", "3", "yes", "Handcrafted bridal set",
		}

		p, err := parseImportRow(row)
		require.NoError(t, err)

		assert.Equal(t, "Kundan Bridal Necklace", p.Name)
		assert.Equal(t, "kundan-bridal-necklace", p.Slug)
		assert.Equal(t, model.CategoryNecklaces, p.Category)
		assert.Equal(t, "Gold", p.Metal)
		require.NotNil(t, p.Purity)
		assert.Equal(t, "22K", *p.Purity)
		assert.Equal(t, "185000", p.Price.String())
		assert.Equal(t, 3, p.StockCount)
		assert.True(t, p.IsActive)
		require.NotNil(t, p.Description)
	})

	t.Run("minimal row pads missing cells", func(t *testing.T) {
		p, err := parseImportRow([]string{"Silver Jhumka", "earrings", "Silver", "", "", "", "2499"})
		require.NoError(t, err)

		assert.Equal(t, 0, p.StockCount)
		assert.True(t, p.IsActive, "active defaults to true")
		assert.Nil(t, p.Purity)
		assert.Nil(t, p.CompareAtPrice)
	})

	t.Run("bad rows rejected", func(t *testing.T) {
		cases := map[string][]string{
			"empty name":    {"", "rings", "Gold", "", "", "", "100"},
			"bad category":  {"Ring", "hats", "Gold", "", "", "", "100"},
			"missing metal": {"Ring", "rings", "", "", "", "", "100"},
			"zero price":    {"Ring", "rings", "Gold", "", "", "", "0"},
			"bad price":     {"Ring", "rings", "Gold", "", "", "", "abc"},
			"bad stock":     {"Ring", "rings", "Gold", "", "", "", "100", "", "-2"},
		}
		for name, row := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := parseImportRow(row)
				assert.Error(t, err)
			})
		}
	})
}
