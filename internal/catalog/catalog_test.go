package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVocabularies(t *testing.T) {
	t.Run("general capability is registrable", func(t *testing.T) {
		assert.True(t, IsCapability(GeneralCapability))
	})

	t.Run("khac entry is a training type but not a capability", func(t *testing.T) {
		assert.True(t, IsTrainingType("Khác (Ghi rõ ở phần mô tả)"))
		assert.False(t, IsCapability("Khác (Ghi rõ ở phần mô tả)"))
	})

	t.Run("every capability except the general one is a training type", func(t *testing.T) {
		for _, c := range PartnerCapabilities {
			if c == GeneralCapability {
				continue
			}
			assert.True(t, IsTrainingType(c), c)
		}
	})

	t.Run("province lookup is exact", func(t *testing.T) {
		assert.True(t, IsProvince("Hà Nội"))
		assert.False(t, IsProvince("Ha Noi"))
	})

	t.Run("all 63 provinces present", func(t *testing.T) {
		assert.Len(t, Provinces, 63)
	})
}
