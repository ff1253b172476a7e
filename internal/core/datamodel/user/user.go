package user

// User is the persisted credential row. Column names match the legacy visitor.db schema.
type User struct {
	ID           int64  `db:"id" gorm:"primaryKey"`
	Username     string `db:"username" gorm:"column:username;uniqueIndex;not null"`
	PasswordHash string `db:"password" gorm:"column:password;not null"`
	Role         string `db:"role" gorm:"column:role;not null;default:staff"`
}

func (User) TableName() string {
	return "users"
}
