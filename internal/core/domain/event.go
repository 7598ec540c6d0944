package domain

import "errors"

// Category groups events on the dashboard.
type Category string

const (
	CategoryTech     Category = "Tech"
	CategoryCultural Category = "Cultural"
	CategorySports   Category = "Sports"
	CategoryOther    Category = "Other"
)

// CategoryOrder is the fixed order in which the dashboard lists categories.
var CategoryOrder = []Category{CategoryTech, CategoryCultural, CategorySports, CategoryOther}

var ErrEventNotFound = errors.New("event not found")

// Event is a catalog entry. Name is the stable key used by the seeder.
type Event struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

// DefaultCatalog is the set of events seeded at startup.
var DefaultCatalog = []Event{
	{Name: "Hackathon", Category: CategoryTech},
	{Name: "Coding Contest", Category: CategoryTech},
	{Name: "AI Workshop", Category: CategoryTech},
	{Name: "Dance", Category: CategoryCultural},
	{Name: "Music", Category: CategoryCultural},
	{Name: "Drama", Category: CategoryCultural},
	{Name: "Football", Category: CategorySports},
	{Name: "Cricket", Category: CategorySports},
	{Name: "Basketball", Category: CategorySports},
	{Name: "Photography", Category: CategoryOther},
	{Name: "Quiz", Category: CategoryOther},
	{Name: "Debate", Category: CategoryOther},
}
