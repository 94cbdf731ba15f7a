// Package lawname maps free-text Persian statute names to the canonical law
// codes used as the partition key of the articles table.
package lawname

import (
	"strings"
	"unicode"
)

// Code is the canonical identifier of a recognized statute.
type Code string

// Canonical codes, spelled exactly as they are stored in the articles table.
const (
	CivilProcedure     Code = "قانون_آیین_دادرسی_مدنی"
	CriminalProcedure  Code = "قانون_آیین_دادرسی_کیفری"
	JudgmentsExecution Code = "قانون_اجرای_احکام_مدنی"
	Commerce           Code = "قانون_تجارت"
	PenalBookFive      Code = "کتاب_پنجم_قانون_مجازات_اسلامی_(تعزیرات_و_مجازات\u200cهای_بازدارنده)"
	Penal              Code = "قانون_مجازات_اسلامی"
	Civil              Code = "قانون_مدنی"
)

// Rule classifies a normalized name. Every All token must be present, no None
// token may be present, and if Any is non-empty at least one of its tokens
// must be present.
type Rule struct {
	Name string
	Code Code
	All  []string
	None []string
	Any  []string
}

// Matches reports whether the normalized name satisfies the rule.
func (r Rule) Matches(name string) bool {
	for _, tok := range r.All {
		if !strings.Contains(name, tok) {
			return false
		}
	}

	for _, tok := range r.None {
		if strings.Contains(name, tok) {
			return false
		}
	}

	if len(r.Any) == 0 {
		return true
	}
	for _, tok := range r.Any {
		if strings.Contains(name, tok) {
			return true
		}
	}
	return false
}

// rules is evaluated top to bottom and the first match wins. Multi-token rules
// must stay ahead of the single-token fallbacks: "آیین دادرسی مدنی" also
// contains "مدنی", and the book-five name also contains "مجازات".
var rules = []Rule{
	{
		Name: "civil-procedure",
		Code: CivilProcedure,
		All:  []string{"آیین", "دادرسی", "مدنی"},
	},
	{
		Name: "criminal-procedure",
		Code: CriminalProcedure,
		All:  []string{"آیین", "دادرسی", "کیفری"},
	},
	{
		Name: "civil-judgments-execution",
		Code: JudgmentsExecution,
		All:  []string{"اجرای", "احکام", "مدنی"},
	},
	{
		Name: "commerce",
		Code: Commerce,
		All:  []string{"تجارت"},
		None: []string{"لایحه"},
	},
	{
		Name: "penal-book-five",
		Code: PenalBookFive,
		All:  []string{"مجازات"},
		Any:  []string{"کتابپنجم", "تعزیرات", "بازدارنده"},
	},
	{
		Name: "penal",
		Code: Penal,
		All:  []string{"مجازات"},
	},
	{
		Name: "civil",
		Code: Civil,
		All:  []string{"مدنی"},
	},
}

// Rules returns a copy of the ordered rule table.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// letters folds Arabic code points onto their Persian counterparts.
var letters = strings.NewReplacer(
	"ي", "ی", // Arabic yeh
	"ى", "ی", // alef maksura
	"ك", "ک", // Arabic kaf
)

// spelling rewrites orthographic variants to the spelling the rules use. It
// runs after letters so "آئين" is caught as well.
var spelling = strings.NewReplacer(
	"آئین", "آیین",
)

// Normalize trims the name, drops every whitespace rune along with ZWNJ and
// ZWJ, and rewrites spelling variants.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.TrimSpace(raw) {
		if unicode.IsSpace(r) || r == '\u200c' || r == '\u200d' {
			continue
		}
		b.WriteRune(r)
	}
	return spelling.Replace(letters.Replace(b.String()))
}

// Resolve returns the canonical code for raw, or false when no rule matches.
func Resolve(raw string) (Code, bool) {
	name := Normalize(raw)
	if name == "" {
		return "", false
	}

	for _, r := range rules {
		if r.Matches(name) {
			return r.Code, true
		}
	}
	return "", false
}
