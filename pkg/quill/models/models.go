package models

import "gorm.io/gorm"

// AllModels returns all models for migration
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Group{},
		&Post{},
		&Comment{},
		&Follow{},
	}
}

// AutoMigrate runs GORM auto-migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}

// RecentFirst orders a post query newest first, descending id breaking ties.
// Column names are qualified so the scope survives joins.
func RecentFirst(db *gorm.DB) *gorm.DB {
	return db.Order("posts.created_at DESC, posts.id DESC")
}

// PostByAuthor loads a post by id, but only if it belongs to the named
// author. Author and Group come preloaded.
func PostByAuthor(db *gorm.DB, username string, postID uint) (Post, error) {
	var post Post
	err := db.Preload("Author").Preload("Group").
		Joins("JOIN users ON users.id = posts.author_id").
		Where("posts.id = ? AND users.username = ?", postID, username).
		First(&post).Error
	return post, err
}

// Follows reports whether follower already follows followed.
func Follows(db *gorm.DB, followerID, followedID uint) bool {
	var n int64
	db.Model(&Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&n)
	return n > 0
}

// DeletePost removes a post together with its comments.
// The sqlite setup does not enforce foreign keys, so referential
// cleanup happens here, inside one transaction.
func DeletePost(db *gorm.DB, postID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Post{}, postID).Error
	})
}

// DeleteGroup removes a group. Posts filed under it survive with an
// absent group reference.
func DeleteGroup(db *gorm.DB, groupID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Post{}).Where("group_id = ?", groupID).
			Update("group_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&Group{}, groupID).Error
	})
}

// DeleteUser removes a user and everything hanging off them: their
// posts (with those posts' comments), their comments on other posts,
// and follow edges in both directions.
func DeleteUser(db *gorm.DB, userID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var postIDs []uint
		if err := tx.Model(&Post{}).Where("author_id = ?", userID).
			Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&Comment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("author_id = ?", userID).Delete(&Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", userID).Delete(&Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_id = ? OR followed_id = ?", userID, userID).
			Delete(&Follow{}).Error; err != nil {
			return err
		}
		return tx.Delete(&User{}, userID).Error
	})
}
