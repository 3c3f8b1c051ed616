package intelligence

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/metis/internal/contract"
	"github.com/alexanderramin/metis/internal/domain"
)

// Pattern-based extraction is the deterministic fallback when the LLM is
// unreachable. It scans line by line for task-type keywords and pulls due
// dates and grade weights out of the surrounding text. Coarse, but it
// keeps the pipeline producing usable records offline.

// Checked in order; the first keyword found in a line decides the type,
// so more specific keywords come before generic ones.
var taskKeywords = []struct {
	keyword  string
	taskType domain.TaskType
}{
	{"problem set", domain.TypeAssignment},
	{"assignment", domain.TypeAssignment},
	{"homework", domain.TypeAssignment},
	{"essay", domain.TypeAssignment},
	{"midterm", domain.TypeExam},
	{"exam", domain.TypeExam},
	{"quiz", domain.TypeQuiz},
	{"project", domain.TypeProject},
	{"presentation", domain.TypePresentation},
	{"discussion", domain.TypeDiscussion},
	{"reading", domain.TypeReading},
	{"chapter", domain.TypeReading},
	{"lab", domain.TypeLab},
	{"final", domain.TypeExam},
	{"test", domain.TypeExam},
}

var (
	isoDateRe    = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	slashDateRe  = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?\b`)
	wordDateRe   = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|sept|oct|nov|dec)\.?\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s+(\d{4}))?\b`)
	gradeRe      = regexp.MustCompile(`(\d{1,3}(?:\.\d+)?)\s*%`)
	bulletPrefix = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s*`)
)

var monthsByName = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may": time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// ExtractByPattern scans text for lines that look like task declarations.
func ExtractByPattern(text string) []contract.RawTask {
	var tasks []contract.RawTask
	now := time.Now()

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		taskType, ok := matchTaskType(line)
		if !ok {
			continue
		}

		task := contract.RawTask{
			Title:    cleanTitle(line),
			TaskType: string(taskType),
			DueDate:  extractDueDate(line, now),
		}
		if pct, ok := extractGradePct(line); ok {
			task.GradePercentage = &pct
		}
		if task.Title == "" {
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks
}

func matchTaskType(line string) (domain.TaskType, bool) {
	lower := strings.ToLower(line)
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	wordSet := make(map[string]bool, len(words))
	for _, w := range words {
		wordSet[w] = true
	}
	for _, k := range taskKeywords {
		if strings.Contains(k.keyword, " ") {
			if strings.Contains(lower, k.keyword) {
				return k.taskType, true
			}
		} else if wordSet[k.keyword] {
			return k.taskType, true
		}
	}
	return domain.TypeOther, false
}

// cleanTitle strips list markup and trailing metadata clauses, keeping
// the task name itself.
func cleanTitle(line string) string {
	title := bulletPrefix.ReplaceAllString(line, "")

	// "Essay 2 - due March 5 (20%)" keeps only "Essay 2".
	for _, sep := range []string{" due ", " Due ", " DUE ", "(", ",", ":"} {
		if idx := strings.Index(title, sep); idx > 0 {
			title = title[:idx]
		}
	}
	title = strings.Trim(title, " -–:\t")
	if len(title) > 120 {
		title = title[:120]
	}
	return title
}

func extractDueDate(line string, now time.Time) string {
	if m := isoDateRe.FindStringSubmatch(line); m != nil {
		if _, err := time.Parse("2006-01-02", m[0]); err == nil {
			return m[0]
		}
	}

	if m := slashDateRe.FindStringSubmatch(line); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year := now.Year()
		if m[3] != "" {
			y, _ := strconv.Atoi(m[3])
			if y < 100 {
				y += 2000
			}
			year = y
		}
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			return rollForward(year, time.Month(month), day, m[3] != "", now)
		}
	}

	if m := wordDateRe.FindStringSubmatch(line); m != nil {
		month := monthsByName[strings.ToLower(m[1])]
		day, _ := strconv.Atoi(m[2])
		year := now.Year()
		explicit := m[3] != ""
		if explicit {
			year, _ = strconv.Atoi(m[3])
		}
		if day >= 1 && day <= 31 {
			return rollForward(year, month, day, explicit, now)
		}
	}

	return ""
}

// rollForward resolves a yearless date to the next occurrence: a date that
// already passed this year is assumed to mean next year.
func rollForward(year int, month time.Month, day int, explicitYear bool, now time.Time) string {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if !explicitYear && d.Before(time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)) {
		d = d.AddDate(1, 0, 0)
	}
	return d.Format("2006-01-02")
}

func extractGradePct(line string) (float64, bool) {
	m := gradeRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	pct, err := strconv.ParseFloat(m[1], 64)
	if err != nil || pct <= 0 || pct > 100 {
		return 0, false
	}
	return pct, true
}
