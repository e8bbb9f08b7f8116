package plan

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"studycoach/core"
)

// candidate is a session rendered into task form, before it is matched
// against persisted tasks.
type candidate struct {
	date        core.Date
	title       string
	description string
	sourceRef   string
}

// reconcileResult is the outcome of merging a candidate schedule with the
// previously persisted tasks: the full task set plus the delta to persist.
type reconcileResult struct {
	tasks      []Task
	inserted   []Task
	deletedIDs []string
}

// reconcile merges candidate sessions with existing tasks as a pure
// keyed-map diff over two immutable snapshots:
//
//   - an existing task that is completed and whose source content still
//     exists is kept verbatim, whatever the candidate says;
//   - an uncompleted existing task identical to its candidate is kept, which
//     is what makes back-to-back generation idempotent;
//   - an uncompleted existing task whose candidate differs (content or
//     window changed) is replaced under a fresh ID;
//   - an existing task whose source material is gone is dropped regardless
//     of completion, its description refers to missing content;
//   - a candidate with no prior match becomes a new task.
func reconcile(courseID string, existing []Task, sessions []Session, liveRefs map[string]bool, now time.Time) reconcileResult {
	byRef := make(map[string]Task)
	byTitle := make(map[string]Task) // tasks that lost their source linkage
	for _, t := range existing {
		if t.SourceRef != "" {
			byRef[t.SourceRef] = t
		} else {
			byTitle[t.Title] = t
		}
	}

	var res reconcileResult
	consumed := make(map[string]bool, len(existing))

	for _, s := range sessions {
		cand := candidate{
			date:        s.Date,
			title:       s.TaskTitle(),
			description: s.TaskDescription(),
			sourceRef:   s.TaskSourceRef(),
		}

		prior, ok := byRef[cand.sourceRef]
		if !ok {
			prior, ok = byTitle[cand.title]
		}
		if ok && !consumed[prior.ID] {
			consumed[prior.ID] = true
			switch {
			case prior.Completed && sourceLive(prior, liveRefs):
				res.tasks = append(res.tasks, prior)
				continue
			case !prior.Completed && sourceLive(prior, liveRefs) &&
				prior.Date == cand.date && prior.Title == cand.title && prior.Description == cand.description:
				res.tasks = append(res.tasks, prior)
				continue
			default:
				res.deletedIDs = append(res.deletedIDs, prior.ID)
			}
		}

		t := newTask(courseID, cand, now)
		res.tasks = append(res.tasks, t)
		res.inserted = append(res.inserted, t)
	}

	// existing tasks no candidate claimed: drop the sourceless ones, keep the
	// rest (this is where completed sessions survive a regeneration)
	for _, t := range existing {
		if consumed[t.ID] {
			continue
		}
		if !sourceLive(t, liveRefs) {
			res.deletedIDs = append(res.deletedIDs, t.ID)
			continue
		}
		res.tasks = append(res.tasks, t)
	}

	sort.SliceStable(res.tasks, func(i, j int) bool {
		if res.tasks[i].Date != res.tasks[j].Date {
			return res.tasks[i].Date.Before(res.tasks[j].Date)
		}
		return res.tasks[i].Title < res.tasks[j].Title
	})
	return res
}

// sourceLive reports whether every content unit the task covers still exists.
func sourceLive(t Task, liveRefs map[string]bool) bool {
	refs := t.SourceRefs()
	if len(refs) == 0 {
		return false
	}
	for _, ref := range refs {
		if !liveRefs[ref] {
			return false
		}
	}
	return true
}

func newTask(courseID string, cand candidate, now time.Time) Task {
	return Task{
		ID:          uuid.NewString(),
		CourseID:    courseID,
		Date:        cand.date,
		Title:       cand.title,
		Description: cand.description,
		SourceRef:   cand.sourceRef,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
