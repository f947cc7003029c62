package split

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxSlugLen = 100

// foldMarks decomposes accented characters and strips the combining marks,
// so "Résumé" slugs as "resume" instead of "rsum".
var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FilenameSlug derives a filesystem-safe name from the part title: lower
// case, accents folded, anything outside letters/digits/space/hyphen
// stripped, whitespace and hyphen runs collapsed to single hyphens, capped
// at 100 characters. An empty title yields "".
func (r Result) FilenameSlug() string {
	return slugify(r.Title)
}

func slugify(title string) string {
	if folded, _, err := transform.String(foldMarks, title); err == nil {
		title = folded
	}
	title = strings.ToLower(title)

	var sb strings.Builder
	pendingHyphen := false
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			if pendingHyphen && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			pendingHyphen = false
			sb.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			pendingHyphen = true
		}
	}

	slug := sb.String()
	if len(slug) > maxSlugLen {
		slug = strings.TrimRight(slug[:maxSlugLen], "-")
	}
	return slug
}
