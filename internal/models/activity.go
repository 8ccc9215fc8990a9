package models

// ActivityCategory groups self-care suggestions.
type ActivityCategory string

const (
	CategoryBreathing  ActivityCategory = "Breathing"
	CategoryJournaling ActivityCategory = "Journaling"
	CategoryMovement   ActivityCategory = "Movement"
	CategoryMusic      ActivityCategory = "Music"
	CategoryGames      ActivityCategory = "Games"
	CategorySurpriseMe ActivityCategory = "Surprise Me"
)

var ActivityCategories = []ActivityCategory{
	CategoryBreathing,
	CategoryJournaling,
	CategoryMovement,
	CategoryMusic,
	CategoryGames,
	CategorySurpriseMe,
}

func (c ActivityCategory) Valid() bool {
	for _, known := range ActivityCategories {
		if c == known {
			return true
		}
	}
	return false
}

// SelfCareActivity is one suggestion card returned by the generative service.
type SelfCareActivity struct {
	Title       string           `json:"title"`
	Category    ActivityCategory `json:"category"`
	Description string           `json:"description"`
}
