package document

import "strings"

// Singleton tags are keyed by their own name; the first occurrence wins.
var singletonTags = map[string]bool{
	TagTypeCode:       true,
	TagPeriod:         true,
	TagTaxID:          true,
	TagTaxpayerName:   true,
	TagAddress:        true,
	TagDistrict:       true,
	TagProvince:       true,
	TagFilingKind:     true,
	TagFilingSequence: true,
	TagPeriodCycle:    true,
}

// Header tags present in every declaration.
const (
	TagTypeCode       = "maTKhai"
	TagPeriod         = "kyKKhai"
	TagTaxID          = "mst"
	TagTaxpayerName   = "tenNNT"
	TagAddress        = "dchiNNT"
	TagDistrict       = "tenHuyenNNT"
	TagProvince       = "tenTinhNNT"
	TagFilingKind     = "loaiTKhai"
	TagFilingSequence = "soLan"
	TagPeriodCycle    = "kieuKy" // M, Q or Y
)

// contextKey re-prefixes a tag found under an ambiguous container.
type contextKey struct {
	parent      string
	grandparent string // empty matches any
	prefix      string
	codesOnly   bool // only line-item tags ("ct...") are re-prefixed
}

// Entries are tried in order; the first match wins. Cash-flow containers come
// before the plain year columns because they nest the same NamNay/NamTruoc tags.
var contextKeys = []contextKey{
	{parent: "NamNay", grandparent: "LCTTTT", prefix: "lctt_nn_", codesOnly: true},
	{parent: "NamNay", grandparent: "LCTTGT", prefix: "lctt_nn_", codesOnly: true},
	{parent: "NamNay", grandparent: "PL_LCTTTT", prefix: "lctt_nn_", codesOnly: true},
	{parent: "NamNay", grandparent: "PL_LCTTGT", prefix: "lctt_nn_", codesOnly: true},
	{parent: "NamTruoc", grandparent: "LCTTTT", prefix: "lctt_nt_", codesOnly: true},
	{parent: "NamTruoc", grandparent: "LCTTGT", prefix: "lctt_nt_", codesOnly: true},
	{parent: "NamTruoc", grandparent: "PL_LCTTTT", prefix: "lctt_nt_", codesOnly: true},
	{parent: "NamTruoc", grandparent: "PL_LCTTGT", prefix: "lctt_nt_", codesOnly: true},

	{parent: "NamNay", prefix: "kqkd_nn_", codesOnly: true},
	{parent: "NamTruoc", prefix: "kqkd_nt_", codesOnly: true},
	{parent: "SoCuoiNam", prefix: "scn_", codesOnly: true},
	{parent: "SoDauNam", prefix: "sdn_", codesOnly: true},

	{parent: "No", grandparent: "SoPhatSinhTrongKy", prefix: "ps_no_"},
	{parent: "Co", grandparent: "SoPhatSinhTrongKy", prefix: "ps_co_"},
	{parent: "No", grandparent: "SoDuDauKy", prefix: "sddk_no_"},
	{parent: "Co", grandparent: "SoDuDauKy", prefix: "sddk_co_"},
	{parent: "No", grandparent: "SoDuCuoiKy", prefix: "sdck_no_"},
	{parent: "Co", grandparent: "SoDuCuoiKy", prefix: "sdck_co_"},
}

// DeriveKey maps a tag and its ancestor tags (local names, "" when absent) to
// the record key.
func DeriveKey(tag, parent, grandparent string) string {
	if singletonTags[tag] {
		return tag
	}
	for _, ck := range contextKeys {
		if ck.parent != parent {
			continue
		}
		if ck.grandparent != "" && ck.grandparent != grandparent {
			continue
		}
		if ck.codesOnly && !strings.HasPrefix(tag, "ct") {
			continue
		}
		return ck.prefix + tag
	}
	return tag
}

// IsSingleton reports whether tag is a header tag kept once per document.
func IsSingleton(tag string) bool {
	return singletonTags[tag]
}
