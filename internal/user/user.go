package user

type User struct {
	ID        int     `json:"userId"`
	Email     string  `json:"email"`
	Password  string  `json:"password,omitempty"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Phone     string  `json:"phone"`
	Role      string  `json:"role,omitempty"`
	AvatarPic *string `json:"avatarPic,omitempty"`
	CreatedAt string  `json:"createdAt,omitempty"`
	UpdatedAt string  `json:"updatedAt,omitempty"`
}
