package impl

import (
	"fmt"
	"strings"
	"unicode"

	"speakit/config"
)

const defaultPasswordMinLength = 6

// validatePassword checks the candidate password against the configured policy
// and returns every violated rule, not just the first one.
func validatePassword(policy *config.PasswordStrengthConfig, password string) []string {
	minLength := defaultPasswordMinLength
	if policy != nil && policy.MinLength > 0 {
		minLength = policy.MinLength
	}

	var violations []string

	if len([]rune(password)) < minLength {
		violations = append(violations, fmt.Sprintf("%d자 이상의 비밀번호를 사용해 주세요.", minLength))
	}

	if policy == nil {
		return violations
	}

	if policy.MaxLength > 0 && len([]rune(password)) > policy.MaxLength {
		violations = append(violations, fmt.Sprintf("%d자 이하의 비밀번호를 사용해 주세요.", policy.MaxLength))
	}
	if policy.RequireUppercase && !strings.ContainsFunc(password, unicode.IsUpper) {
		violations = append(violations, "대문자를 1자 이상 포함해 주세요.")
	}
	if policy.RequireLowercase && !strings.ContainsFunc(password, unicode.IsLower) {
		violations = append(violations, "소문자를 1자 이상 포함해 주세요.")
	}
	if policy.RequireNumbers && !strings.ContainsFunc(password, unicode.IsDigit) {
		violations = append(violations, "숫자를 1자 이상 포함해 주세요.")
	}
	if policy.RequireSpecial && !strings.ContainsFunc(password, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	}) {
		violations = append(violations, "특수문자를 1자 이상 포함해 주세요.")
	}

	return violations
}
