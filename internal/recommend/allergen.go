package recommend

import "strings"

// NoAllergens is the label recipes get when no allergen keyword matches.
const NoAllergens = "None"

type allergenCategory struct {
	name     string
	keywords []string
}

// Categories are checked in this order, so labels always list matches
// alphabetically ("dairy, eggs"). Keyword matching is substring-based,
// which catches compounds like buttermilk or soybean paste at the cost of
// the occasional eggplant.
var allergenCategories = []allergenCategory{
	{name: "dairy", keywords: []string{"milk", "cheese", "butter", "cream", "yogurt"}},
	{name: "eggs", keywords: []string{"egg", "eggs"}},
	{name: "nuts", keywords: []string{"peanut", "almond", "walnut", "cashew", "pecan", "hazelnut"}},
	{name: "soy", keywords: []string{"soy", "tofu", "edamame"}},
}

// Detector labels ingredient lists with the allergen categories they touch.
// The keyword table is fixed; detection is pure and deterministic.
type Detector struct {
	categories []allergenCategory
}

// NewDetector returns a Detector with the built-in category table.
func NewDetector() *Detector {
	return &Detector{categories: allergenCategories}
}

// Detect returns a label like "dairy, eggs" naming every category with at
// least one keyword occurring in at least one ingredient, or NoAllergens.
func (d *Detector) Detect(ingredients []string) string {
	var matched []string
	for _, cat := range d.categories {
		if d.matches(cat, ingredients) {
			matched = append(matched, cat.name)
		}
	}
	if len(matched) == 0 {
		return NoAllergens
	}
	return strings.Join(matched, ", ")
}

func (d *Detector) matches(cat allergenCategory, ingredients []string) bool {
	for _, ingredient := range ingredients {
		lower := strings.ToLower(ingredient)
		for _, kw := range cat.keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}

// CategoryKeywords describes one detectable category and its keyword list.
type CategoryKeywords struct {
	Category string
	Keywords []string
}

// Table returns the category table in label order. The keyword slices are
// copies, safe for callers to hold.
func (d *Detector) Table() []CategoryKeywords {
	table := make([]CategoryKeywords, len(d.categories))
	for i, cat := range d.categories {
		table[i] = CategoryKeywords{
			Category: cat.name,
			Keywords: append([]string(nil), cat.keywords...),
		}
	}
	return table
}

// Categories returns the detectable category names in label order.
func (d *Detector) Categories() []string {
	names := make([]string, len(d.categories))
	for i, cat := range d.categories {
		names[i] = cat.name
	}
	return names
}

// IsCategory reports whether name (any casing) is a known allergen category.
func (d *Detector) IsCategory(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, cat := range d.categories {
		if cat.name == name {
			return true
		}
	}
	return false
}
