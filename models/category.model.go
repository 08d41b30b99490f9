package models

import "gorm.io/gorm"

// Category forms a forest keyed by ParentID (0 = root). Names are unique
// among siblings, enforced in the controller on top of the index.
type Category struct {
	gorm.Model
	Name     string `json:"name" gorm:"not null;uniqueIndex:idx_category_parent_name"`
	ParentID uint   `json:"parentId" gorm:"default:0;uniqueIndex:idx_category_parent_name"`
	Sort     int    `json:"sort" gorm:"default:0"`
}
