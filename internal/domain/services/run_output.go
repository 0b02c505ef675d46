package services

import (
	"regexp"

	"github.com/ochairo/localcert/internal/domain/entities"
)

// mkcert reports success on stderr only
var confirmationPattern = regexp.MustCompile(
	`The certificate is at "\./` + regexp.QuoteMeta(entities.CertFileName) +
		`" and the key at "\./` + regexp.QuoteMeta(entities.KeyFileName) + `"`,
)

// ValidateRunOutput checks the streams of a "mkcert localhost" invocation.
// stderr must carry the confirmation sentence and stdout must be empty.
func ValidateRunOutput(stdout, stderr string) error {
	if !confirmationPattern.MatchString(stderr) {
		return entities.UnexpectedOutput("stderr", stderr)
	}
	return RequireSilent(stdout, "")
}

// RequireSilent fails when a command that should print nothing printed something.
// stderr is checked before stdout.
func RequireSilent(stdout, stderr string) error {
	if stderr != "" {
		return entities.UnexpectedOutput("stderr", stderr)
	}
	if stdout != "" {
		return entities.UnexpectedOutput("stdout", stdout)
	}
	return nil
}
