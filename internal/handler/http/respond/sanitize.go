package respond

import (
	"regexp"
)

var (
	// Provider API key patterns. The Anthropic pattern must run before the
	// OpenAI one since sk-ant- is a prefix of the broader sk- form.
	anthropicKeyPattern   = regexp.MustCompile(`sk-ant-[a-zA-Z0-9-_]+`)
	openaiKeyPattern      = regexp.MustCompile(`sk-[a-zA-Z0-9]{10,}`)
	huggingfaceKeyPattern = regexp.MustCompile(`hf_[a-zA-Z0-9]+`)

	// Google API keys travel as a query parameter on fact-check and
	// translate URLs, so they can appear inside wrapped HTTP errors.
	googleKeyPattern = regexp.MustCompile(`([?&]key=)[a-zA-Z0-9_-]+`)

	// Credentials embedded in URLs.
	urlCredentialPattern = regexp.MustCompile(`://([^:/@\s]+):([^@/\s]+)@`)
)

// SanitizeError returns the error message with secrets masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()

	msg = anthropicKeyPattern.ReplaceAllString(msg, "sk-ant-****")
	msg = openaiKeyPattern.ReplaceAllString(msg, "sk-****")
	msg = huggingfaceKeyPattern.ReplaceAllString(msg, "hf_****")
	msg = googleKeyPattern.ReplaceAllString(msg, "${1}****")
	msg = urlCredentialPattern.ReplaceAllString(msg, "://$1:****@")

	return msg
}
