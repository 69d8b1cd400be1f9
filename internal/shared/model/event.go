package model

import "time"

// Event 城市活动
type Event struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Venue       string    `json:"venue" bson:"venue"`
	Date        time.Time `json:"date" bson:"date"`
	Category    string    `json:"category" bson:"category"`
	CityID      string    `json:"city_id" bson:"city_id"`
}
