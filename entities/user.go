package entities

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"size:150;uniqueIndex" json:"username"`
	Email    string `gorm:"size:254" json:"email"`
	Role     string `gorm:"size:20;default:user" json:"role"`

	Timestamp
}
