package scheduler

import (
	"strings"

	"github.com/noah-isme/timetable-api/internal/models"
)

// facultyRule matches a faculty member when their department contains any of
// departments or any specialization contains any of specializations.
type facultyRule struct {
	departments     []string
	specializations []string
}

var (
	computingRule = facultyRule{
		departments:     []string{"computer"},
		specializations: []string{"artificial", "machine"},
	}

	prefixRules = map[string]facultyRule{
		"cs": computingRule,
		"ai": computingRule,
		"ma": {
			departments:     []string{"math"},
			specializations: []string{"algebra", "probability"},
		},
		"ee": {
			departments:     []string{"electrical"},
			specializations: []string{"embedded", "iot"},
		},
		"me": {
			departments:     []string{"mechanical"},
			specializations: []string{"thermodynamics"},
		},
	}
)

// pickFaculty returns the first faculty member matching the course code prefix.
// When no rule applies or nobody matches it falls back to faculty[0] and reports true.
// faculty must be non-empty.
func pickFaculty(code string, faculty []models.Faculty) (models.Faculty, bool) {
	if rule, ok := prefixRules[codePrefix(code)]; ok {
		for _, member := range faculty {
			if rule.matches(member) {
				return member, false
			}
		}
	}
	return faculty[0], true
}

func (r facultyRule) matches(member models.Faculty) bool {
	department := strings.ToLower(member.Department)
	for _, keyword := range r.departments {
		if strings.Contains(department, keyword) {
			return true
		}
	}
	for _, area := range member.Specializations {
		area = strings.ToLower(area)
		for _, keyword := range r.specializations {
			if strings.Contains(area, keyword) {
				return true
			}
		}
	}
	return false
}

func codePrefix(code string) string {
	runes := []rune(strings.ToLower(code))
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return string(runes)
}
