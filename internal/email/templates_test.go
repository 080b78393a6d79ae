package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *TemplateManager {
	t.Helper()
	tm, err := NewTemplateManager(Config{
		SMTPHost:  "localhost",
		SMTPPort:  587,
		FromEmail: "noreply@safetyconnect.vn",
	})
	require.NoError(t, err)
	return tm
}

func TestRenderPartnerNotification(t *testing.T) {
	tm := newTestManager(t)

	html, err := tm.Render(TemplatePartnerNotification, PartnerNotificationData{
		Urgent: true,
		Details: []TrainingLine{
			{Type: "Huấn luyện an toàn điện", Group: "Nhóm 3", Participants: 25},
		},
		Location:      "KCN Tân Bình, TP. Hồ Chí Minh",
		PreferredTime: "Tháng 11/2025",
		ClientName:    "Công ty TNHH ABC",
		LoginURL:      "https://atld.web.app/login",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "KHẨN CẤP")
	assert.Contains(t, html, "Huấn luyện an toàn điện")
	assert.Contains(t, html, "25 học viên")
	assert.Contains(t, html, "https://atld.web.app/login")
}

func TestRenderPartnerNotificationOmitsUrgentBadge(t *testing.T) {
	tm := newTestManager(t)

	html, err := tm.Render(TemplatePartnerNotification, PartnerNotificationData{
		Details:       []TrainingLine{{Type: "Sơ cấp cứu", Group: "Nhóm 6", Participants: 10}},
		Location:      "Hà Nội",
		PreferredTime: "T1/2026",
		LoginURL:      "https://atld.web.app/login",
	})
	require.NoError(t, err)

	assert.NotContains(t, html, "KHẨN CẤP")
}

func TestRenderQuoteNotificationFormatsPrice(t *testing.T) {
	tm := newTestManager(t)

	html, err := tm.Render(TemplateQuoteNotification, QuoteNotificationData{
		ClientName:  "Công ty TNHH ABC",
		PartnerName: "0312345678",
		Price:       15500000,
		Timeline:    "2 tuần",
		LoginURL:    "https://atld.web.app/login",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "15.500.000 ₫")
	assert.Contains(t, html, "0312345678")
}

func TestRenderUnknownTemplate(t *testing.T) {
	tm := newTestManager(t)

	_, err := tm.Render("nonexistent", nil)
	assert.Error(t, err)
}

func TestFormatVND(t *testing.T) {
	cases := []struct {
		amount int64
		want   string
	}{
		{0, "0 ₫"},
		{999, "999 ₫"},
		{1000, "1.000 ₫"},
		{1500000, "1.500.000 ₫"},
		{123456789, "123.456.789 ₫"},
		{-25000, "-25.000 ₫"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatVND(tc.amount))
	}
}
