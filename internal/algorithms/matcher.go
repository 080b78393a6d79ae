// Package algorithms holds the pure decision logic of the platform: the
// capability matcher and the request filter/sort pipeline. Nothing here
// touches the database or produces side effects.
package algorithms

import (
	"safetyconnect_backend/internal/catalog"
	"safetyconnect_backend/internal/models"
)

// MatchPartners selects the partners to notify about a request with the
// given training types. A partner matches iff it is approved, subscribed to
// emails and shares at least one capability with the requested types.
// Capability comparison is an exact string match against the closed
// vocabulary. Requests carrying a custom (non-enumerated) type additionally
// match partners holding the general multi-field capability, so free-text
// requests are not silently dropped from fan-out.
//
// The result order is unspecified; callers treat it as a set.
func MatchPartners(requestTypes []string, partners []models.PartnerProfile) []models.PartnerProfile {
	if len(requestTypes) == 0 {
		return nil
	}

	wantGeneral := hasCustomType(requestTypes)

	var matched []models.PartnerProfile
	for _, p := range partners {
		if p.Status != models.PartnerStatusApproved || !p.SubscribesEmails {
			continue
		}
		capabilities := p.GetCapabilities()
		if overlaps(capabilities, requestTypes) {
			matched = append(matched, p)
			continue
		}
		if wantGeneral && containsString(capabilities, catalog.GeneralCapability) {
			matched = append(matched, p)
		}
	}
	return matched
}

// MatchedEmails maps the matcher result onto the distinct set of partner
// notification addresses.
func MatchedEmails(partners []models.PartnerProfile) []string {
	seen := make(map[string]bool, len(partners))
	var emails []string
	for _, p := range partners {
		if p.Email == "" || seen[p.Email] {
			continue
		}
		seen[p.Email] = true
		emails = append(emails, p.Email)
	}
	return emails
}

// hasCustomType reports whether any requested type is outside the
// enumerated training type vocabulary.
func hasCustomType(types []string) bool {
	for _, t := range types {
		if t != "" && !catalog.IsTrainingType(t) {
			return true
		}
	}
	return false
}

func overlaps(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, v := range a {
		set[v] = true
	}
	for _, v := range b {
		if set[v] {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
