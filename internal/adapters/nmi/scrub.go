package nmi

import "regexp"

// filteredMarker replaces every redacted value in a scrubbed transcript.
const filteredMarker = "[FILTERED]"

// Sensitive fields are matched wherever they appear in a captured exchange,
// independent of surrounding formatting. Values run until the next field
// separator or whitespace.
var scrubPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(ccnumber=)[^&\s]*`),
	regexp.MustCompile(`(cvv=)[^&\s]*`),
	regexp.MustCompile(`(password=)[^&\s]*`),
	regexp.MustCompile(`(checkaba=)[^&\s]*`),
	regexp.MustCompile(`(checkaccount=)[^&\s]*`),
}

// Scrub redacts card numbers, verification codes, passwords, and bank
// account details from a raw request/response transcript, leaving all other
// fields, field names, and separators untouched. Safe to apply to already
// scrubbed text.
func Scrub(transcript string) string {
	for _, pattern := range scrubPatterns {
		transcript = pattern.ReplaceAllString(transcript, "${1}"+filteredMarker)
	}
	return transcript
}
