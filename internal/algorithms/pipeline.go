package algorithms

import (
	"sort"
	"strings"

	"safetyconnect_backend/internal/models"
	"safetyconnect_backend/internal/timeparse"
)

// SortKey selects the ordering of a request listing.
type SortKey string

const (
	SortNewest       SortKey = "newest"       // createdAt, newest first
	SortParticipants SortKey = "participants" // summed participants, largest first
	SortSoonest      SortKey = "soonest"      // parsed preferred month, earliest first
)

// FilterState is the conjunction of listing criteria. A zero-valued
// criterion is a no-op, so the zero FilterState passes everything through.
type FilterState struct {
	TrainingTypes   []string
	Provinces       []string
	ParticipantsMin int
	ParticipantsMax int
	Urgent          bool
	DateFrom        string
	DateTo          string
	Query           string
}

// FilterRequests applies every active criterion conjunctively to a snapshot
// of requests and returns the survivors in input order. The input slice is
// not modified.
func FilterRequests(requests []models.TrainingRequest, state FilterState) []models.TrainingRequest {
	out := make([]models.TrainingRequest, 0, len(requests))
	for _, r := range requests {
		if matchesFilter(&r, state) {
			out = append(out, r)
		}
	}
	return out
}

func matchesFilter(r *models.TrainingRequest, state FilterState) bool {
	if state.Urgent && !r.Urgent {
		return false
	}

	if len(state.TrainingTypes) > 0 && !overlaps(state.TrainingTypes, r.TrainingTypes()) {
		return false
	}

	// Province selection is substring containment against the free-text
	// location, so "KCN Thăng Long, Hà Nội" matches the "Hà Nội" filter.
	if len(state.Provinces) > 0 {
		found := false
		for _, province := range state.Provinces {
			if province != "" && strings.Contains(r.Location, province) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	total := r.TotalParticipants()
	if state.ParticipantsMin > 0 && total < state.ParticipantsMin {
		return false
	}
	if state.ParticipantsMax > 0 && total > state.ParticipantsMax {
		return false
	}

	if !timeparse.InRange(r.PreferredTime, state.DateFrom, state.DateTo) {
		return false
	}

	if state.Query != "" {
		needle := strings.ToLower(state.Query)
		if !strings.Contains(strings.ToLower(r.Description), needle) &&
			!strings.Contains(strings.ToLower(r.Location), needle) &&
			!containsTypeSubstring(r.TrainingTypes(), needle) {
			return false
		}
	}

	return true
}

func containsTypeSubstring(types []string, needle string) bool {
	for _, t := range types {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}

// SortRequests orders a copy of requests by the given key. Sorting is
// stable, so equal keys keep their input order and the same input always
// yields the same output. Unknown keys fall back to newest-first. For the
// soonest ordering, requests whose preferred time fails to parse always
// sort after every parsable one.
func SortRequests(requests []models.TrainingRequest, key SortKey) []models.TrainingRequest {
	out := make([]models.TrainingRequest, len(requests))
	copy(out, requests)

	switch key {
	case SortParticipants:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].TotalParticipants() > out[j].TotalParticipants()
		})
	case SortSoonest:
		sort.SliceStable(out, func(i, j int) bool {
			mi, oki := timeparse.ParseMonth(out[i].PreferredTime)
			mj, okj := timeparse.ParseMonth(out[j].PreferredTime)
			if oki != okj {
				return oki
			}
			if !oki {
				return false
			}
			return mi.Index() < mj.Index()
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}
