package entity

// ProviderType identifies an external identity provider.
type ProviderType string

const (
	// ProviderTypeGoogle indicates Google OAuth2 login.
	ProviderTypeGoogle ProviderType = "google"
	// ProviderTypeNaver indicates Naver OAuth2 login.
	ProviderTypeNaver ProviderType = "naver"
	// ProviderTypeKakao indicates Kakao OAuth2 login.
	ProviderTypeKakao ProviderType = "kakao"
)

// String returns the string representation of the ProviderType.
func (p ProviderType) String() string {
	return string(p)
}

// IsValid checks if the ProviderType is a known provider.
func (p ProviderType) IsValid() bool {
	switch p {
	case ProviderTypeGoogle, ProviderTypeNaver, ProviderTypeKakao:
		return true
	default:
		return false
	}
}
