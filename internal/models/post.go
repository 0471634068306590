package models

import "time"

// Post is a blog entry written by a user.
type Post struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title     string    `json:"title" gorm:"type:varchar(30);not null" validate:"required,min=1,max=30"`
	Content   string    `json:"content" gorm:"type:text;not null" validate:"required,min=1,max=6000"`
	Author    string    `json:"author" gorm:"type:varchar(36);index;not null" validate:"required,uuid"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostPatch holds the post fields an update may touch. Nil fields are left as is.
type PostPatch struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,min=1,max=30"`
	Content *string `json:"content,omitempty" validate:"omitempty,min=1,max=6000"`
}

// PostFilter narrows post listings. The zero value matches every post.
type PostFilter struct {
	Author string
}
