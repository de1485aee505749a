package model

// BrowseCategory is one of the fixed categories shown on the search screen
type BrowseCategory int

const (
	CategoryBreakfast BrowseCategory = iota + 1
	CategoryLunch
	CategoryDinner
	CategoryDessert
	CategorySnacks
	CategoryDrinks
)

// BrowseCategories lists every category in display order
var BrowseCategories = []BrowseCategory{
	CategoryBreakfast,
	CategoryLunch,
	CategoryDinner,
	CategoryDessert,
	CategorySnacks,
	CategoryDrinks,
}

// Name returns the display name
func (c BrowseCategory) Name() string {
	switch c {
	case CategoryBreakfast:
		return "Breakfast"
	case CategoryLunch:
		return "Lunch"
	case CategoryDinner:
		return "Dinner"
	case CategoryDessert:
		return "Dessert"
	case CategorySnacks:
		return "Snacks"
	case CategoryDrinks:
		return "Drinks"
	}
	return ""
}

// Icon returns the emoji shown next to the name
func (c BrowseCategory) Icon() string {
	switch c {
	case CategoryBreakfast:
		return "🥞"
	case CategoryLunch:
		return "🥗"
	case CategoryDinner:
		return "🍽️"
	case CategoryDessert:
		return "🍰"
	case CategorySnacks:
		return "🥨"
	case CategoryDrinks:
		return "🥤"
	}
	return ""
}

// CategoryView is the JSON shape of a browse category
type CategoryView struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// View renders the category for clients
func (c BrowseCategory) View() CategoryView {
	return CategoryView{ID: int(c), Name: c.Name(), Icon: c.Icon()}
}
