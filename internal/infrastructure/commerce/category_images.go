package commerce

import "github.com/techstore/storefront/internal/domain/storefront"

const imageQuery = "?w=300&h=200&fit=crop"

// DefaultCategoryImage is shown for categories outside the known set
const DefaultCategoryImage = "https://images.unsplash.com/photo-1441986300917-64674bd600d8" + imageQuery

var categoryImages = map[string]string{
	"Electronics": "https://images.unsplash.com/photo-1498049794561-7780e7231661" + imageQuery,
	"Clothing":    "https://images.unsplash.com/photo-1441986300917-64674bd600d8" + imageQuery,
	"Books":       "https://images.unsplash.com/photo-1544947950-fa07a98d237f" + imageQuery,
	"Sports":      "https://images.unsplash.com/photo-1544367567-0f2fcb009e0b" + imageQuery,
}

// CategoryImage returns the display image for a category name
func CategoryImage(name string) string {
	if img, ok := categoryImages[name]; ok {
		return img
	}
	return DefaultCategoryImage
}

// ToCategories attaches display images to category summaries
func ToCategories(summaries []storefront.CategorySummary) []storefront.Category {
	out := make([]storefront.Category, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, storefront.Category{
			Name:          s.Name,
			Image:         CategoryImage(s.Name),
			TotalProducts: s.TotalProducts,
		})
	}
	return out
}
