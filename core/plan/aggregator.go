package plan

import (
	"sort"

	"studycoach/core"
)

// upcomingHorizonDays bounds the "upcoming" bucket: tasks up to this many
// days after the given date are included, anything later is not.
const upcomingHorizonDays = 3

type (
	// TodayTask is a task due on the requested date, enriched with its
	// course name for display.
	TodayTask struct {
		Task
		CourseName string `json:"courseName"`
	}

	// UpcomingTask is a preview of a near-future task.
	UpcomingTask struct {
		ID         string    `json:"id"`
		CourseID   string    `json:"courseId"`
		CourseName string    `json:"courseName"`
		Date       core.Date `json:"date"`
		Title      string    `json:"title"`
		DaysAhead  int       `json:"daysAhead"`
	}

	// DayPlan partitions a learner's tasks relative to a calendar date.
	DayPlan struct {
		Date     core.Date      `json:"date"`
		Today    []TodayTask    `json:"today"`
		Upcoming []UpcomingTask `json:"upcoming"`
	}
)

// BuildDayPlan buckets tasks into "today" and "upcoming" relative to the
// caller-supplied date. The caller resolves the learner's locale; dates are
// compared as calendar dates, never as instants, so the buckets do not shift
// near midnight across timezones. Past tasks land in neither bucket. The
// function is a pure read over the snapshot it is given.
func BuildDayPlan(tasks []Task, courseNames map[string]string, today core.Date) DayPlan {
	dp := DayPlan{
		Date:     today,
		Today:    []TodayTask{},
		Upcoming: []UpcomingTask{},
	}

	for _, t := range tasks {
		switch ahead := t.Date.DaysSince(today); {
		case ahead == 0:
			dp.Today = append(dp.Today, TodayTask{Task: t, CourseName: courseNames[t.CourseID]})
		case ahead >= 1 && ahead <= upcomingHorizonDays:
			dp.Upcoming = append(dp.Upcoming, UpcomingTask{
				ID:         t.ID,
				CourseID:   t.CourseID,
				CourseName: courseNames[t.CourseID],
				Date:       t.Date,
				Title:      t.Title,
				DaysAhead:  ahead,
			})
		}
	}

	sort.SliceStable(dp.Today, func(i, j int) bool {
		if dp.Today[i].CourseName != dp.Today[j].CourseName {
			return dp.Today[i].CourseName < dp.Today[j].CourseName
		}
		return dp.Today[i].Title < dp.Today[j].Title
	})
	sort.SliceStable(dp.Upcoming, func(i, j int) bool {
		if dp.Upcoming[i].Date != dp.Upcoming[j].Date {
			return dp.Upcoming[i].Date.Before(dp.Upcoming[j].Date)
		}
		return dp.Upcoming[i].CourseName < dp.Upcoming[j].CourseName
	})
	return dp
}
