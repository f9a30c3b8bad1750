package githubauth

import (
	"os"
	"strings"
)

// Environment variable names the GitHub CLI reads authentication tokens from.
const (
	EnvGitHubCLIToken        = "GH_TOKEN"
	EnvGitHubToken           = "GITHUB_TOKEN"
	EnvGitHubEnterpriseToken = "GH_ENTERPRISE_TOKEN"
)

var tokenPreference = []string{
	EnvGitHubCLIToken,
	EnvGitHubToken,
	EnvGitHubEnterpriseToken,
}

// Token describes an authentication token and the variable it was read from.
type Token struct {
	Value  string
	Source string
}

// ResolveToken returns the first non-empty token observed in the provided
// environment map or, failing that, the process environment.
func ResolveToken(environment map[string]string) (Token, bool) {
	for _, key := range tokenPreference {
		if value, ok := lookup(environment, key); ok {
			return Token{Value: value, Source: key}, true
		}
	}
	for _, key := range tokenPreference {
		if value, ok := os.LookupEnv(key); ok {
			value = strings.TrimSpace(value)
			if len(value) > 0 {
				return Token{Value: value, Source: key}, true
			}
		}
	}
	return Token{}, false
}

func lookup(environment map[string]string, key string) (string, bool) {
	if environment == nil {
		return "", false
	}
	value, exists := environment[key]
	if !exists {
		return "", false
	}
	value = strings.TrimSpace(value)
	if len(value) == 0 {
		return "", false
	}
	return value, true
}
