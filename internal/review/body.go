package review

import (
	"strings"
	"text/template"
)

// pullRequestBodyTemplate renders the pull request description from BodyDetails.
const pullRequestBodyTemplate = `## Java 8 to 11 Migration

This PR migrates the project from Java 8 to Java 11.

### Changes Made
- [x] Updated Java version to 11 in {{ .DescriptorFile }}
- [x] Applied OpenRewrite migration recipe ` + "`{{ .Recipe }}`" + `
- [x] Fixed deprecated APIs and compatibility issues
{{- if .RemediationApplied }}
- [x] Updated dependencies to Java 11 compatible versions after the initial build failed
{{- end }}

### Testing
- [x] Build successful
{{- if .TestsPassed }}
- [x] All tests passing
{{- else }}
- [ ] Some tests failing; continued after operator confirmation
{{- end }}

### Migration Tools Used
- OpenRewrite Maven Plugin
- Maven Versions Plugin

Please review and merge after approval.
`

var pullRequestBody = template.Must(template.New("pull_request_body").Parse(pullRequestBodyTemplate))

// BodyDetails are the run facts reflected in the pull request description.
type BodyDetails struct {
	DescriptorFile     string
	Recipe             string
	RemediationApplied bool
	TestsPassed        bool
}

// RenderBody renders the pull request description.
func RenderBody(details BodyDetails) (string, error) {
	renderedBody := &strings.Builder{}
	if executionError := pullRequestBody.Execute(renderedBody, details); executionError != nil {
		return "", executionError
	}
	return renderedBody.String(), nil
}
