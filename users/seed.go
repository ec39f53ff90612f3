package users

import "time"

// SeedUsers returns the fixed set of accounts the directory starts with when
// no persistent account store is configured. Times are relative to now.
// passwordHash is applied to every seeded account and may be empty.
func SeedUsers(now time.Time, passwordHash string) []User {
	return []User{
		{
			ID:           "1",
			Email:        "admin@stitchsmart.com",
			Name:         "Admin User",
			Role:         RoleAdministrator,
			PasswordHash: passwordHash,
			LastLogin:    now,
			CreatedAt:    time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:           "2",
			Email:        "user@example.com",
			Name:         "John Doe",
			Role:         RoleStandard,
			PasswordHash: passwordHash,
			LastLogin:    now.Add(-24 * time.Hour),
			CreatedAt:    time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:           "3",
			Email:        "jane@example.com",
			Name:         "Jane Smith",
			Role:         RoleStandard,
			PasswordHash: passwordHash,
			LastLogin:    now.Add(-48 * time.Hour),
			CreatedAt:    time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}
