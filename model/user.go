package model

import "time"

type User struct {
	UserID      string     `firestore:"userid" json:"userId"`
	Name        string     `firestore:"name" json:"name"`
	Email       string     `firestore:"email" json:"email"`
	Password    string     `firestore:"password" json:"-"`
	Avatar      string     `firestore:"avatar" json:"avatar"`
	Points      int        `firestore:"points" json:"points"`
	StreakDays  int        `firestore:"streakdays" json:"streakDays"`
	LastLoginAt *time.Time `firestore:"lastloginat,omitempty" json:"lastLoginAt"`
	CreatedAt   time.Time  `firestore:"createdat" json:"createdAt"`
}
