package classify

import "regexp"

// lineRE extracts the password field from a raw input line. Credential dumps
// commonly use one of three layouts:
//
//	password
//	user:password
//	user:hash:password
//
// At most two leading colon-terminated prefixes are stripped, each ending at
// the first colon, so colons embedded in the password itself survive:
// "user:hash:pa:ss" yields "pa:ss".
var lineRE = regexp.MustCompile(`^(?:[^:]*:)?(?:[^:]*:)?(.*)$`)

// ExtractPassword returns the password component of a raw input line.
// The result may be empty (for example on blank lines or "user:" records);
// callers must drop empty candidates before classification.
func ExtractPassword(line string) string {
	m := lineRE.FindStringSubmatch(line)
	if m == nil {
		// lineRE matches every string, including the empty one.
		return line
	}
	return m[1]
}
