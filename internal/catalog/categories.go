package catalog

import "strings"

// Category is an incompatibility category tag such as "milk" or "sour_fruits".
type Category string

const (
	CategoryMilk        Category = "milk"
	CategoryFish        Category = "fish"
	CategoryMeat        Category = "meat"
	CategorySourFruits  Category = "sour_fruits"
	CategorySweetFruits Category = "sweet_fruits"
	CategoryBanana      Category = "banana"
	CategoryYogurt      Category = "yogurt"
	CategoryHoney       Category = "honey"
	CategoryJaggery     Category = "jaggery"
	CategoryHotFoods    Category = "hot_foods"
	CategoryColdFoods   Category = "cold_foods"
	CategoryRawFoods    Category = "raw_foods"
	CategoryCookedFoods Category = "cooked_foods"
	CategoryFermented   Category = "fermented"
	CategorySalt        Category = "salt"
	CategoryGhee        Category = "ghee"
	CategoryHotWater    Category = "hot_water"
)

type categoryKeywords struct {
	category Category
	keywords []string
}

// categoryTable is matched in order; a food may carry several tags.
var categoryTable = []categoryKeywords{
	{CategoryMilk, []string{"milk", "dairy", "cheese", "paneer"}},
	{CategoryFish, []string{"fish", "seafood", "prawns", "crab"}},
	{CategoryMeat, []string{"chicken", "mutton", "beef", "pork", "meat"}},
	{CategorySourFruits, []string{"lemon", "lime", "orange", "tamarind", "vinegar"}},
	{CategorySweetFruits, []string{"mango", "grapes", "dates", "figs"}},
	{CategoryBanana, []string{"banana", "plantain"}},
	{CategoryYogurt, []string{"yogurt", "curd", "dahi"}},
	{CategoryHoney, []string{"honey", "madhu"}},
	{CategoryJaggery, []string{"jaggery", "gur", "brown_sugar"}},
	{CategoryHotFoods, []string{"spicy", "chili", "pepper", "garlic", "onion"}},
	{CategoryColdFoods, []string{"ice", "cold_drinks", "cucumber", "watermelon"}},
	{CategoryRawFoods, []string{"salad", "raw_vegetables", "sprouts"}},
	{CategoryCookedFoods, []string{"rice", "dal", "curry", "soup"}},
	{CategoryFermented, []string{"pickle", "fermented_foods", "wine"}},
}

// Categories returns the incompatibility tags of a food in table order. A food
// matching no keyword is its own sole category, using its normalised name.
func Categories(name string) []Category {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
	var out []Category
	for _, ck := range categoryTable {
		for _, kw := range ck.keywords {
			if strings.Contains(n, kw) {
				out = append(out, ck.category)
				break
			}
		}
	}
	if len(out) == 0 {
		out = append(out, Category(n))
	}
	return out
}
