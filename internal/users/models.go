package users

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hexauth/hexauth/internal/storage"
)

const (
	prefix = "user:"

	prefixByID    = prefix + "id:"
	prefixByEmail = prefix + "email:"
)

// userModel is the stored document shape for a user.
type userModel struct {
	storage.BaseEntity

	Email string `json:"email"`
	Name  string `json:"name"`
}

func newUserModel(user *User) *userModel {
	if user == nil {
		return nil
	}

	return &userModel{
		BaseEntity: storage.BaseEntity{
			ID:        user.ID,
			CreatedAt: user.CreatedAt,
			UpdatedAt: user.UpdatedAt,
		},
		Email: user.Email,
		Name:  user.Name,
	}
}

func (u *userModel) toDomain() *User {
	if u == nil {
		return nil
	}

	return &User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// StorageKey implements storage.Entity.
func (u *userModel) StorageKey() string {
	return prefixByID + u.ID.String()
}

// StorageIndexes implements storage.Entity.
func (u *userModel) StorageIndexes() []string {
	return []string{prefixByEmail + u.Email}
}

// MarshalStorage implements storage.Entity.
func (u *userModel) MarshalStorage() ([]byte, error) {
	data, err := json.Marshal(u)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user: %w", err)
	}

	return data, nil
}

// UnmarshalStorage implements storage.Entity.
func (u *userModel) UnmarshalStorage(data []byte) error {
	if err := json.Unmarshal(data, u); err != nil {
		return fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return nil
}

func (u *userModel) touch() {
	u.UpdatedAt = time.Now()
}
