package api

// RecommendRequest is the body of POST /api/v1/recommendations.
type RecommendRequest struct {
	// Ingredients is free text naming what the caller has on hand.
	Ingredients string `json:"ingredients" binding:"required"`
	// Count caps the number of results. Zero means the server default.
	Count int `json:"count"`
	// ExcludeAllergens drops recipes whose label contains any of these
	// categories. Values must be known categories.
	ExcludeAllergens []string `json:"exclude_allergens"`
	// Cuisines restricts results to these cuisines when non-empty.
	Cuisines []string `json:"cuisines"`
}

// RecipeResponse represents the response structure for recipe-related API endpoints
type RecipeResponse struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Cuisine     string   `json:"cuisine"`
	Ingredients []string `json:"ingredients"`
	Allergens   string   `json:"allergens"`
}

// RecommendationResponse is one ranked result.
type RecommendationResponse struct {
	RecipeResponse
	Similarity float64 `json:"similarity"`
}

// RecommendResponse is the body of a successful recommendation call.
// TotalRecipes is the corpus size, so clients can show result counts in
// context ("5 of 39774").
type RecommendResponse struct {
	Query        string                   `json:"query"`
	Count        int                      `json:"count"`
	TotalRecipes int                      `json:"total_recipes"`
	Results      []RecommendationResponse `json:"results"`
}

// AllergenCategoryResponse describes one detectable allergen category.
type AllergenCategoryResponse struct {
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
}

// StatsResponse summarizes the loaded corpus.
type StatsResponse struct {
	TotalRecipes    int    `json:"total_recipes"`
	VocabularyTerms int    `json:"vocabulary_terms"`
	Cuisines        int    `json:"cuisines"`
	Source          string `json:"source"`
	Fingerprint     string `json:"fingerprint"`
}
