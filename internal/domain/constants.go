package domain

// Account defaults applied at registration
const (
	DefaultBio            = "Joueur SAO"
	DefaultProfilePicture = "https://saofrance.net/assets/default-profile-picture.png"
)

// Field limits shared by validation tags and services
const (
	MinUsernameLength = 3
	MaxUsernameLength = 32
	MinPasswordLength = 8
	MaxPasswordLength = 72 // bcrypt ignores anything beyond 72 bytes
)
