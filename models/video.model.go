package models

import "gorm.io/gorm"

// Video is one lesson inside a chapter
type Video struct {
	gorm.Model
	ChapterID uint   `json:"chapterId" gorm:"index;not null"`
	Title     string `json:"title" gorm:"not null"`
	VideoURL  string `json:"videoUrl" gorm:"default:''"`
	Duration  int64  `json:"duration" gorm:"default:0"` // seconds
	Sort      int    `json:"sort" gorm:"default:0"`
	IsFree    bool   `json:"isFree" gorm:"default:false"`
}
