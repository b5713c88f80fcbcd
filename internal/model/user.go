package model

// User 用户模型

type User struct {
	BaseModel
	PublicID     int64  `gorm:"uniqueIndex;not null" json:"public_id"`
	Username     string `gorm:"uniqueIndex;type:varchar(64);not null" json:"username"`
	Email        string `gorm:"uniqueIndex;type:varchar(128);not null" json:"email"`
	PasswordHash []byte `gorm:"type:varbinary(128);not null" json:"-"` // bcrypt 哈希，不对外暴露
	Timezone     string `gorm:"type:varchar(64);not null;default:'Local'" json:"timezone"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
