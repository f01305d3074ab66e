package journal

import (
	"math"
	"sort"
	"strings"
	"time"
)

// Derived views: pure read-only computations over a journal snapshot.

type (
	// AttendanceRatio summarizes recorded attendance for one section.
	AttendanceRatio struct {
		Present int `json:"present"`
		Total   int `json:"total"`
		Percent int `json:"percent"`
	}

	// UpcomingClass is the next occurrence of a section's weekly slot.
	UpcomingClass struct {
		Section   Section   `json:"section"`
		NextDate  time.Time `json:"next_date"`
		DaysUntil int       `json:"days_until"`
	}

	// GradeEntry is one (section, date, grade) triple of the recent-grades feed.
	GradeEntry struct {
		Section Section `json:"section"`
		Date    string  `json:"date"`
		Grade   Grade   `json:"grade"`
	}
)

// AverageGrades computes, per enrolled section, the mean of recorded grades
// rounded to one decimal. Ungraded entries are excluded; a section with no
// graded entries yields the sentinel 0 (rendered as N/A).
func AverageGrades(student Student) map[SectionID]float64 {
	averages := make(map[SectionID]float64, len(student.Sections))
	for _, sectionID := range student.Sections {
		var sum, count int
		for _, grade := range student.Grades[sectionID] {
			if grade.Graded() {
				sum += int(grade)
				count++
			}
		}
		if count > 0 {
			averages[sectionID] = math.Round(float64(sum)/float64(count)*10) / 10
		} else {
			averages[sectionID] = 0
		}
	}
	return averages
}

// AttendanceRatios computes, per enrolled section, present/total as a whole
// percentage. No records means 0%.
func AttendanceRatios(student Student) map[SectionID]AttendanceRatio {
	ratios := make(map[SectionID]AttendanceRatio, len(student.Sections))
	for _, sectionID := range student.Sections {
		var ratio AttendanceRatio
		for _, present := range student.Attendance[sectionID] {
			ratio.Total++
			if present {
				ratio.Present++
			}
		}
		if ratio.Total > 0 {
			ratio.Percent = int(math.Round(float64(ratio.Present) / float64(ratio.Total) * 100))
		}
		ratios[sectionID] = ratio
	}
	return ratios
}

// ScheduleWeekday extracts the weekday token embedded in a section's schedule
// string ("Sunday, 10:00-12:00").
func ScheduleWeekday(schedule string) (time.Weekday, bool) {
	for day := time.Sunday; day <= time.Saturday; day++ {
		if strings.Contains(schedule, day.String()) {
			return day, true
		}
	}
	return 0, false
}

// UpcomingClasses lists the student's sections ordered by how soon their next
// slot occurs, relative to today. A class whose weekday is today rolls over to
// next week (offset 7, never 0): "already happened today" is never surfaced as
// "happening today". Sections with no parsable weekday are skipped.
func UpcomingClasses(student Student, sections map[SectionID]Section, today time.Time) []UpcomingClass {
	upcoming := make([]UpcomingClass, 0, len(student.Sections))
	for _, sectionID := range student.Sections {
		section, ok := sections[sectionID]
		if !ok {
			continue
		}
		day, ok := ScheduleWeekday(section.Schedule)
		if !ok {
			continue
		}
		daysUntil := int(day) - int(today.Weekday())
		if daysUntil <= 0 {
			daysUntil += 7
		}
		upcoming = append(upcoming, UpcomingClass{
			Section:   section,
			NextDate:  today.AddDate(0, 0, daysUntil),
			DaysUntil: daysUntil,
		})
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DaysUntil < upcoming[j].DaysUntil
	})
	return upcoming
}

// RecentGrades flattens every recorded grade across the student's sections
// into one feed, newest date first, capped at n (n <= 0 means no cap).
// Dates are ISO (YYYY-MM-DD) so the lexical order is the calendar order.
func RecentGrades(student Student, sections map[SectionID]Section, n int) []GradeEntry {
	var feed []GradeEntry
	for _, sectionID := range student.Sections {
		section, ok := sections[sectionID]
		if !ok {
			continue
		}
		for date, grade := range student.Grades[sectionID] {
			feed = append(feed, GradeEntry{Section: section, Date: date, Grade: grade})
		}
	}
	sort.Slice(feed, func(i, j int) bool {
		return feed[i].Date > feed[j].Date
	})
	if n > 0 && len(feed) > n {
		feed = feed[:n]
	}
	return feed
}

// VisibleStudents returns the students a teacher may see: those enrolled in at
// least one of the authorized sections, further filtered by a case-insensitive
// substring match on name.
func VisibleStudents(students []Student, authorized []SectionID, search string) []Student {
	search = strings.ToLower(strings.TrimSpace(search))
	visible := make([]Student, 0, len(students))
	for _, student := range students {
		var overlap bool
		for _, sectionID := range authorized {
			if student.EnrolledIn(sectionID) {
				overlap = true
				break
			}
		}
		if !overlap {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(student.Name), search) {
			continue
		}
		visible = append(visible, student)
	}
	return visible
}
