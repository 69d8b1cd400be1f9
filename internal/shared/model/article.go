package model

import "time"

// Article 本地新闻
type Article struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Content     string    `json:"content" bson:"content"`
	PublishedAt time.Time `json:"published_at" bson:"published_at"`
	Source      string    `json:"source" bson:"source"`
	Category    string    `json:"category" bson:"category"`
	CityID      string    `json:"city_id" bson:"city_id"`
}
