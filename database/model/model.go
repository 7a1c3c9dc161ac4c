// Package model defines the gorm models persisted by the quill blog.
package model

import "time"

// User is a registered author. Password holds the bcrypt hash, never the
// plain text.
type User struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"size:50;not null"`
	Email     string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"size:60;not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// Post is an immutable blog entry. Author is free text and is not linked to
// a User row.
type Post struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Title     string    `json:"title" gorm:"size:140"`
	Slug      string    `json:"slug" gorm:"size:140;uniqueIndex;not null"`
	CreatedAt time.Time `json:"createdAt"`
	Subtitle  string    `json:"subtitle" gorm:"size:140"`
	Author    string    `json:"author" gorm:"size:140"`
	Body      string    `json:"body" gorm:"type:text"`
}
