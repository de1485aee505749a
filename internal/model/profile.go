package model

// ProfileStats are the counters shown on the profile screen.
// They are seed values, not derived from collection state.
type ProfileStats struct {
	SavedRecipes    int `json:"saved_recipes"`
	FavoriteRecipes int `json:"favorite_recipes"`
	CookingMinutes  int `json:"cooking_minutes"`
	RecipesCreated  int `json:"recipes_created"`
}

// Profile is the read-only profile header
type Profile struct {
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	ImageURL   string       `json:"image_url"`
	Membership string       `json:"membership"`
	Stats      ProfileStats `json:"stats"`
}

// SeedProfile returns the profile every new session starts with
func SeedProfile() Profile {
	return Profile{
		Name:       "BIG PUFFS",
		Email:      "default123@email.com",
		ImageURL:   "https://images.unsplash.com/photo-1494790108755-2616b612b602?w=150&h=150&fit=crop&crop=face",
		Membership: "Home Chef",
		Stats: ProfileStats{
			SavedRecipes:    47,
			FavoriteRecipes: 23,
			CookingMinutes:  156,
			RecipesCreated:  12,
		},
	}
}
