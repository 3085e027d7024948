package models

type Course struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	MediaURL    string  `json:"media_url"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}
