package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"safetyconnect_backend/internal/catalog"
	"safetyconnect_backend/internal/models"
)

func partner(email string, status models.PartnerStatus, subscribed bool, capabilities ...string) models.PartnerProfile {
	p := models.PartnerProfile{
		Email:            email,
		Status:           status,
		SubscribesEmails: subscribed,
	}
	p.SetCapabilities(capabilities)
	return p
}

func TestMatchPartners(t *testing.T) {
	electric := "An toàn điện"
	chemical := "An toàn hóa chất"
	construction := "An toàn lao động trong xây dựng"

	partners := []models.PartnerProfile{
		partner("a@x.vn", models.PartnerStatusApproved, true, electric, chemical),
		partner("b@x.vn", models.PartnerStatusApproved, true, construction),
		partner("c@x.vn", models.PartnerStatusPending, true, electric),
		partner("d@x.vn", models.PartnerStatusApproved, false, electric),
		partner("e@x.vn", models.PartnerStatusRejected, true, electric),
		partner("f@x.vn", models.PartnerStatusApproved, true),
	}

	t.Run("approved and subscribed with overlap", func(t *testing.T) {
		matched := MatchPartners([]string{electric}, partners)
		assert.Equal(t, []string{"a@x.vn"}, MatchedEmails(matched))
	})

	t.Run("pending unsubscribed and rejected are excluded", func(t *testing.T) {
		matched := MatchPartners([]string{electric}, partners)
		for _, p := range matched {
			assert.Equal(t, models.PartnerStatusApproved, p.Status)
			assert.True(t, p.SubscribesEmails)
		}
	})

	t.Run("multiple types widen the match", func(t *testing.T) {
		matched := MatchPartners([]string{electric, construction}, partners)
		assert.ElementsMatch(t, []string{"a@x.vn", "b@x.vn"}, MatchedEmails(matched))
	})

	t.Run("no overlap means no match", func(t *testing.T) {
		matched := MatchPartners([]string{"Sơ cấp cứu"}, partners)
		assert.Empty(t, matched)
	})

	t.Run("empty request types match nothing", func(t *testing.T) {
		assert.Empty(t, MatchPartners(nil, partners))
	})

	t.Run("empty capability list matches nothing", func(t *testing.T) {
		matched := MatchPartners([]string{electric}, []models.PartnerProfile{
			partner("f@x.vn", models.PartnerStatusApproved, true),
		})
		assert.Empty(t, matched)
	})

	t.Run("matching is exact not fuzzy", func(t *testing.T) {
		matched := MatchPartners([]string{"an toàn điện"}, partners)
		assert.Empty(t, matched)
	})
}

func TestMatchPartnersCustomType(t *testing.T) {
	general := partner("general@x.vn", models.PartnerStatusApproved, true, catalog.GeneralCapability)
	electric := partner("electric@x.vn", models.PartnerStatusApproved, true, "An toàn điện")

	t.Run("custom type reaches general partners", func(t *testing.T) {
		matched := MatchPartners([]string{"Huấn luyện an toàn bức xạ"}, []models.PartnerProfile{general, electric})
		assert.Equal(t, []string{"general@x.vn"}, MatchedEmails(matched))
	})

	t.Run("enumerated type does not trigger the general fallback", func(t *testing.T) {
		matched := MatchPartners([]string{"An toàn điện"}, []models.PartnerProfile{general, electric})
		assert.Equal(t, []string{"electric@x.vn"}, MatchedEmails(matched))
	})

	t.Run("exact general capability still matches directly", func(t *testing.T) {
		matched := MatchPartners([]string{catalog.GeneralCapability}, []models.PartnerProfile{general})
		assert.Len(t, matched, 1)
	})
}

func TestMatchedEmailsDeduplicates(t *testing.T) {
	matched := []models.PartnerProfile{
		partner("dup@x.vn", models.PartnerStatusApproved, true),
		partner("dup@x.vn", models.PartnerStatusApproved, true),
		partner("", models.PartnerStatusApproved, true),
	}
	assert.Equal(t, []string{"dup@x.vn"}, MatchedEmails(matched))
}
