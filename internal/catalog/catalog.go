// Package catalog holds the closed vocabularies the platform operates on:
// training types, trainee groups, partner capabilities and province names.
// Validator rules, the capability matcher and the HTTP handlers all read
// from here, so a vocabulary change happens in exactly one place.
package catalog

// GeneralCapability is the umbrella capability a partner can carry to
// receive requests whose training type is a free-text "Khác" entry.
const GeneralCapability = "Huấn luyện chung (Nhiều lĩnh vực)"

// CustomTrainingType is the "other" option of the request form. A request
// line with this type carries the client's own wording, which replaces the
// type before persistence and matching.
const CustomTrainingType = "Khác (Ghi rõ ở phần mô tả)"

// TrainingTypes lists every enumerated occupational safety training type a
// client can request. A request may also carry a custom type entered under
// the "Khác" option; those are not members of this list.
var TrainingTypes = []string{
	"An toàn lao động trong xây dựng",
	"An toàn điện",
	"An toàn hóa chất",
	"An toàn làm việc trên cao",
	"An toàn làm việc trong không gian hạn chế",
	"An toàn vận hành thiết bị nâng",
	"An toàn vận hành nồi hơi, thiết bị áp lực",
	"An toàn phòng cháy chữa cháy",
	"Sơ cấp cứu",
	"An toàn vệ sinh lao động chung",
	CustomTrainingType,
}

// TrainingGroups lists the legal trainee groups (Nghị định 44/2016/NĐ-CP).
var TrainingGroups = []string{
	"Nhóm 1: Người quản lý phụ trách ATVSLĐ",
	"Nhóm 2: Người làm công tác ATVSLĐ",
	"Nhóm 3: Người làm công việc có yêu cầu nghiêm ngặt về ATVSLĐ",
	"Nhóm 4: Người lao động khác",
	"Nhóm 5: Người làm công tác y tế",
	"Nhóm 6: An toàn vệ sinh viên",
}

// PartnerCapabilities is the set of capabilities a partner may register.
// It mirrors TrainingTypes, with the "Khác" entry replaced by the general
// multi-field capability.
var PartnerCapabilities = []string{
	"An toàn lao động trong xây dựng",
	"An toàn điện",
	"An toàn hóa chất",
	"An toàn làm việc trên cao",
	"An toàn làm việc trong không gian hạn chế",
	"An toàn vận hành thiết bị nâng",
	"An toàn vận hành nồi hơi, thiết bị áp lực",
	"An toàn phòng cháy chữa cháy",
	"Sơ cấp cứu",
	"An toàn vệ sinh lao động chung",
	GeneralCapability,
}

// Provinces lists the 63 Vietnamese provinces and centrally governed cities
// used by the location filter.
var Provinces = []string{
	"Hà Nội", "TP. Hồ Chí Minh", "Đà Nẵng", "Hải Phòng", "Cần Thơ",
	"An Giang", "Bà Rịa - Vũng Tàu", "Bắc Giang", "Bắc Kạn", "Bạc Liêu",
	"Bắc Ninh", "Bến Tre", "Bình Định", "Bình Dương", "Bình Phước",
	"Bình Thuận", "Cà Mau", "Cao Bằng", "Đắk Lắk", "Đắk Nông",
	"Điện Biên", "Đồng Nai", "Đồng Tháp", "Gia Lai", "Hà Giang",
	"Hà Nam", "Hà Tĩnh", "Hải Dương", "Hậu Giang", "Hòa Bình",
	"Hưng Yên", "Khánh Hòa", "Kiên Giang", "Kon Tum", "Lai Châu",
	"Lâm Đồng", "Lạng Sơn", "Lào Cai", "Long An", "Nam Định",
	"Nghệ An", "Ninh Bình", "Ninh Thuận", "Phú Thọ", "Phú Yên",
	"Quảng Bình", "Quảng Nam", "Quảng Ngãi", "Quảng Ninh", "Quảng Trị",
	"Sóc Trăng", "Sơn La", "Tây Ninh", "Thái Bình", "Thái Nguyên",
	"Thanh Hóa", "Thừa Thiên Huế", "Tiền Giang", "Trà Vinh", "Tuyên Quang",
	"Vĩnh Long", "Vĩnh Phúc", "Yên Bái",
}

// IsTrainingType reports whether s is an enumerated training type.
func IsTrainingType(s string) bool { return contains(TrainingTypes, s) }

// IsTrainingGroup reports whether s is a known trainee group.
func IsTrainingGroup(s string) bool { return contains(TrainingGroups, s) }

// IsCapability reports whether s is a registrable partner capability.
func IsCapability(s string) bool { return contains(PartnerCapabilities, s) }

// IsProvince reports whether s is a known province name.
func IsProvince(s string) bool { return contains(Provinces, s) }

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
