package email

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
	"strconv"
)

// Template names known to the manager.
const (
	TemplatePartnerNotification = "partner_notification"
	TemplateQuoteNotification   = "quote_notification"
	TemplatePartnerApproved     = "partner_approved"
	TemplateWelcome             = "welcome"
)

// TemplateManager loads the HTML mail templates. Files in the configured
// templates directory override the builtin ones, so deployments can adjust
// wording without a rebuild.
type TemplateManager struct {
	templates map[string]*template.Template
	cfg       Config
}

func NewTemplateManager(cfg Config) (*TemplateManager, error) {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
		cfg:       cfg,
	}

	names := []string{
		TemplatePartnerNotification,
		TemplateQuoteNotification,
		TemplatePartnerApproved,
		TemplateWelcome,
	}

	for _, name := range names {
		tpl, err := tm.loadTemplate(name)
		if err != nil {
			return nil, fmt.Errorf("failed to load template %s: %w", name, err)
		}
		tm.templates[name] = tpl
	}

	return tm, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatVND": FormatVND,
	}
}

func (tm *TemplateManager) loadTemplate(name string) (*template.Template, error) {
	if tm.cfg.TemplatesDir != "" {
		path := filepath.Join(tm.cfg.TemplatesDir, name+".html")
		if tpl, err := template.New(name + ".html").Funcs(templateFuncs()).ParseFiles(path); err == nil {
			return tpl, nil
		}
	}
	return tm.builtinTemplate(name)
}

func (tm *TemplateManager) builtinTemplate(name string) (*template.Template, error) {
	var tplText string

	switch name {
	case TemplatePartnerNotification:
		tplText = partnerNotificationTemplate
	case TemplateQuoteNotification:
		tplText = quoteNotificationTemplate
	case TemplatePartnerApproved:
		tplText = partnerApprovedTemplate
	case TemplateWelcome:
		tplText = welcomeTemplate
	default:
		return nil, fmt.Errorf("unknown template: %s", name)
	}

	return template.New(name).Funcs(templateFuncs()).Parse(tplText)
}

// Render executes a template with the given data.
func (tm *TemplateManager) Render(name string, data interface{}) (string, error) {
	tpl, exists := tm.templates[name]
	if !exists {
		return "", fmt.Errorf("template not found: %s", name)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}

	return buf.String(), nil
}

// FormatVND renders an amount the Vietnamese way: dot-separated thousands
// with the đồng sign, e.g. 1500000 -> "1.500.000 ₫".
func FormatVND(amount int64) string {
	digits := strconv.FormatInt(amount, 10)
	negative := false
	if len(digits) > 0 && digits[0] == '-' {
		negative = true
		digits = digits[1:]
	}

	var buf bytes.Buffer
	if negative {
		buf.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead > 0 {
		buf.WriteString(digits[:lead])
		if len(digits) > lead {
			buf.WriteByte('.')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		buf.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			buf.WriteByte('.')
		}
	}
	buf.WriteString(" ₫")
	return buf.String()
}

// Builtin templates. Wording follows the notifications the platform sends
// to Vietnamese partners and clients.
const (
	partnerNotificationTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Yêu cầu đào tạo mới</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f4f6f8; margin: 0; padding: 20px;">
  <div style="max-width: 600px; margin: auto; background: #ffffff; border-radius: 8px; overflow: hidden;">
    <div style="background: #1d4ed8; color: #ffffff; padding: 20px 24px;">
      <h2 style="margin: 0;">🔔 Yêu cầu đào tạo mới trên SafetyConnect</h2>
    </div>
    <div style="padding: 24px;">
      {{if .Urgent}}
      <p style="background: #fee2e2; color: #b91c1c; padding: 8px 12px; border-radius: 4px; font-weight: bold;">⚠️ KHẨN CẤP - Khách hàng cần đào tạo gấp</p>
      {{end}}
      <p>Một khách hàng vừa gửi yêu cầu đào tạo phù hợp với năng lực của đơn vị bạn:</p>
      <table style="width: 100%; border-collapse: collapse;">
        {{range .Details}}
        <tr style="border-bottom: 1px solid #e5e7eb;">
          <td style="padding: 8px 0;"><strong>{{.Type}}</strong><br/><span style="color: #6b7280;">{{.Group}}</span></td>
          <td style="padding: 8px 0; text-align: right;">{{.Participants}} học viên</td>
        </tr>
        {{end}}
      </table>
      <div style="margin-top: 16px; background: #f9fafb; border-radius: 6px; padding: 12px 16px;">
        <p style="margin: 4px 0;"><strong>Địa điểm:</strong> {{.Location}}</p>
        <p style="margin: 4px 0;"><strong>Thời gian mong muốn:</strong> {{.PreferredTime}}</p>
        {{if .Duration}}<p style="margin: 4px 0;"><strong>Thời lượng:</strong> {{.Duration}}</p>{{end}}
        {{if .Description}}<p style="margin: 4px 0;"><strong>Mô tả:</strong> {{.Description}}</p>{{end}}
      </div>
      <p style="margin-top: 20px;">Đăng nhập để xem chi tiết và gửi báo giá:</p>
      <p style="text-align: center;">
        <a href="{{.LoginURL}}" style="background: #1d4ed8; color: #ffffff; padding: 12px 28px; border-radius: 6px; text-decoration: none; font-weight: bold;">Xem yêu cầu & báo giá</a>
      </p>
    </div>
    <div style="background: #f9fafb; color: #6b7280; text-align: center; padding: 14px; font-size: 12px;">
      Hệ thống kết nối đào tạo ATLD - SafetyConnect
    </div>
  </div>
</body>
</html>`

	quoteNotificationTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Báo giá mới</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f4f6f8; margin: 0; padding: 20px;">
  <div style="max-width: 600px; margin: auto; background: #ffffff; border-radius: 8px; overflow: hidden;">
    <div style="background: #059669; color: #ffffff; padding: 20px 24px;">
      <h2 style="margin: 0;">💰 Bạn nhận được báo giá mới</h2>
    </div>
    <div style="padding: 24px;">
      <p>Xin chào {{.ClientName}},</p>
      <p>Đơn vị đào tạo <strong>{{.PartnerName}}</strong> vừa gửi báo giá cho yêu cầu của bạn:</p>
      <div style="background: #ecfdf5; border-radius: 6px; padding: 16px; text-align: center;">
        <span style="font-size: 24px; font-weight: bold; color: #059669;">{{formatVND .Price}}</span>
        {{if .Timeline}}<p style="margin: 8px 0 0; color: #374151;">Thời gian thực hiện: {{.Timeline}}</p>{{end}}
      </div>
      {{if .Notes}}<p style="margin-top: 16px;"><strong>Ghi chú từ đơn vị:</strong> {{.Notes}}</p>{{end}}
      <p style="margin-top: 20px; text-align: center;">
        <a href="{{.LoginURL}}" style="background: #059669; color: #ffffff; padding: 12px 28px; border-radius: 6px; text-decoration: none; font-weight: bold;">Xem báo giá & trao đổi</a>
      </p>
    </div>
    <div style="background: #f9fafb; color: #6b7280; text-align: center; padding: 14px; font-size: 12px;">
      Hệ thống kết nối đào tạo ATLD - SafetyConnect
    </div>
  </div>
</body>
</html>`

	partnerApprovedTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Tài khoản được duyệt</title></head>
<body style="font-family: Arial, sans-serif;">
  <h2>Chúc mừng {{.PartnerName}}!</h2>
  <p>Tài khoản đối tác của bạn trên SafetyConnect đã được phê duyệt.</p>
  <p>Từ bây giờ bạn sẽ nhận được thông báo về các yêu cầu đào tạo phù hợp với năng lực đã đăng ký.</p>
  <p><a href="{{.LoginURL}}">Đăng nhập ngay</a></p>
  <p style="color: #6b7280; font-size: 12px;">Hệ thống kết nối đào tạo ATLD - SafetyConnect</p>
</body>
</html>`

	welcomeTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Chào mừng đến với SafetyConnect</title></head>
<body style="font-family: Arial, sans-serif;">
  <h2>Chào mừng {{.PartnerName}}!</h2>
  <p>Cảm ơn bạn đã đăng ký làm đối tác đào tạo trên SafetyConnect.</p>
  <p>Hồ sơ của bạn đang chờ quản trị viên phê duyệt. Chúng tôi sẽ thông báo ngay khi tài khoản được kích hoạt.</p>
  <p style="color: #6b7280; font-size: 12px;">Hệ thống kết nối đào tạo ATLD - SafetyConnect</p>
</body>
</html>`
)
