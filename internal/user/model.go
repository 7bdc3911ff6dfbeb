package user

import "time"

type User struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	AvatarURL string    `json:"profilePicUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

type UpdateProfileParams struct {
	UserID    uint
	Name      *string
	Phone     *string
	Address   *string
	AvatarURL *string
}
