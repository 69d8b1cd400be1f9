package model

import "fmt"

// City 城市
//
// 名称事实上唯一：解析流程总是先按名称查找再创建，
// 存储层用唯一索引兜底并发下的重复创建。
type City struct {
	ID          string `json:"id" bson:"_id"`
	Name        string `json:"name" bson:"name"`
	Coordinates string `json:"coordinates,omitempty" bson:"coordinates,omitempty"` // "lat,lon"
	Region      string `json:"region,omitempty" bson:"region,omitempty"`
	Population  int64  `json:"population,omitempty" bson:"population,omitempty"`
}

// FormatCoordinates 将坐标对格式化为存储形式 "lat,lon"
func FormatCoordinates(lat, lon float64) string {
	return fmt.Sprintf("%g,%g", lat, lon)
}
