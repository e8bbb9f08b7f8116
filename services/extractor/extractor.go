// Package extractor turns stored material metadata into the ordered content
// units the scheduling engine consumes. The metadata itself (section titles,
// page numbers, word counts) comes from the external PDF analyzer at upload
// time; this package only performs the deterministic mapping to units.
package extractor

import (
	"encoding/json"
	"strings"

	"studycoach/core/material"
)

type (
	// metadata mirrors the analyzer's JSON outline.
	metadata struct {
		Sections []section `json:"sections"`
	}

	section struct {
		Title       string `json:"title"`
		Content     string `json:"content"`
		PageNumbers []int  `json:"pageNumbers"`
		WordCount   int    `json:"wordCount"`
	}
)

type Service struct {
	repo material.Repository
}

var _ interface {
	CourseContentUnits(courseID string) ([]material.ContentUnit, error)
} = (*Service)(nil)

func NewService(repo material.Repository) *Service {
	return &Service{repo: repo}
}

// CourseContentUnits returns one unit per outlined section of each of the
// course's materials, in extraction order. A material without a usable
// outline still yields a single whole-material unit, it is never dropped.
// Weights are word counts normalized so the mean unit weight is 1.
func (svc *Service) CourseContentUnits(courseID string) ([]material.ContentUnit, error) {
	mats, err := svc.repo.QueryCourseMaterials(courseID)
	if err != nil {
		return nil, err
	}

	var units []material.ContentUnit
	for _, m := range mats {
		units = append(units, materialUnits(m)...)
	}
	for i := range units {
		units[i].Order = i
	}
	return normalizeWeights(units), nil
}

func materialUnits(m material.Material) []material.ContentUnit {
	secs := parseSections(m.Metadata)
	if len(secs) == 0 {
		// weight 0 means "unmeasured"; normalizeWeights assigns the default
		return []material.ContentUnit{{
			Ref:           material.UnitRef(m.ID, 0),
			MaterialID:    m.ID,
			MaterialTitle: m.Title,
			Title:         m.Title,
		}}
	}

	units := make([]material.ContentUnit, 0, len(secs))
	for i, sec := range secs {
		title := strings.TrimSpace(sec.Title)
		if title == "" {
			title = m.Title
		}
		u := material.ContentUnit{
			Ref:           material.UnitRef(m.ID, i),
			MaterialID:    m.ID,
			MaterialTitle: m.Title,
			Title:         title,
			Weight:        float64(sectionWords(sec)),
		}
		u.PageStart, u.PageEnd = pageRange(sec.PageNumbers)
		units = append(units, u)
	}
	return units
}

func parseSections(meta string) []section {
	if meta == "" {
		return nil
	}
	var md metadata
	if err := json.Unmarshal([]byte(meta), &md); err != nil {
		// a malformed outline degrades to a whole-material unit
		return nil
	}
	return md.Sections
}

func sectionWords(sec section) int {
	if sec.WordCount > 0 {
		return sec.WordCount
	}
	return len(strings.Fields(sec.Content))
}

func pageRange(pages []int) (start, end int) {
	for _, p := range pages {
		if p <= 0 {
			continue
		}
		if start == 0 || p < start {
			start = p
		}
		if p > end {
			end = p
		}
	}
	return start, end
}

// normalizeWeights rescales raw word counts so the mean measured unit weight
// is 1; unmeasured units get the default weight 1.
func normalizeWeights(units []material.ContentUnit) []material.ContentUnit {
	var total float64
	var measured int
	for _, u := range units {
		if u.Weight > 0 {
			total += u.Weight
			measured++
		}
	}
	if measured == 0 {
		for i := range units {
			units[i].Weight = 1
		}
		return units
	}
	mean := total / float64(measured)
	for i := range units {
		if units[i].Weight <= 0 {
			units[i].Weight = 1
			continue
		}
		units[i].Weight /= mean
	}
	return units
}
