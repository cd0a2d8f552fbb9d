package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/taxaudit/internal/model"
)

// Item is one officially numbered line of a form.
type Item struct {
	Code  string
	Label string
	Key   string // record key without column prefix
}

// Catalog is a fixed list of items read from one declaration, one value
// column per key prefix.
type Catalog struct {
	Title    string
	Category model.Category
	Columns  []string
	Prefixes []string
	Items    []Item
	// SkipZero drops items whose every column is zero.
	SkipZero bool
}

// Build reads the catalog out of d.
func (c Catalog) Build(d model.Declaration) *model.DetailTable {
	t := &model.DetailTable{
		Title:   c.Title,
		Source:  d.Source,
		Period:  d.Period,
		Columns: c.Columns,
	}
	for _, it := range c.Items {
		values := make([]decimal.Decimal, len(c.Prefixes))
		nonZero := false
		for i, prefix := range c.Prefixes {
			values[i] = d.Record.Amount(prefix + it.Key)
			if !values[i].IsZero() {
				nonZero = true
			}
		}
		if c.SkipZero && !nonZero {
			continue
		}
		t.Rows = append(t.Rows, model.DetailRow{Code: it.Code, Label: it.Label, Values: values})
	}
	return t
}

// VATDetail lists every line of form 01/GTGT.
var VATDetail = Catalog{
	Title:    "Tờ khai 01/GTGT - chi tiết",
	Category: model.CategoryVAT,
	Columns:  []string{"Số tiền"},
	Prefixes: []string{""},
	Items: []Item{
		{"[21]", "Thuế GTGT còn được khấu trừ kỳ trước chưa hết", "ct21"},
		{"[22]", "Thuế GTGT còn được khấu trừ kỳ trước chuyển sang", "ct22"},
		{"[23]", "Giá trị của hàng hóa, dịch vụ mua vào", "ct23"},
		{"[24]", "Thuế GTGT của HHDV mua vào", "ct24"},
		{"[25]", "Thuế GTGT của HHDV mua vào được khấu trừ kỳ này", "ct25"},
		{"[26]", "HHDV bán ra không chịu thuế GTGT", "ct26"},
		{"[29]", "HHDV bán ra chịu thuế suất 0%", "ct29"},
		{"[30]", "Doanh thu HHDV bán ra chịu thuế suất 5%", "ct30"},
		{"[31]", "Thuế GTGT HHDV bán ra chịu thuế suất 5%", "ct31"},
		{"[32]", "Doanh thu HHDV bán ra chịu thuế suất 10%", "ct32"},
		{"[33]", "Thuế GTGT HHDV bán ra chịu thuế suất 10%", "ct33"},
		{"[32a]", "HHDV bán ra không phải kê khai, nộp thuế GTGT", "ct32a"},
		{"[34]", "Tổng doanh thu HHDV bán ra", "ct34"},
		{"[35]", "Tổng thuế GTGT của HHDV bán ra", "ct35"},
		{"[36]", "Thuế GTGT phát sinh trong kỳ", "ct36"},
		{"[37]", "Điều chỉnh giảm thuế GTGT phải nộp", "ct37"},
		{"[38]", "Điều chỉnh tăng thuế GTGT phải nộp", "ct38"},
		{"[39a]", "Thuế GTGT của dự án đầu tư được bù trừ", "ct39a"},
		{"[40a]", "Thuế GTGT phải nộp của HĐKD", "ct40a"},
		{"[40b]", "Thuế GTGT mua vào của dự án đầu tư cùng tỉnh", "ct40b"},
		{"[40]", "Thuế GTGT còn phải nộp trong kỳ", "ct40"},
		{"[41]", "Thuế GTGT chưa khấu trừ hết kỳ này", "ct41"},
		{"[42]", "Thuế GTGT đề nghị hoàn", "ct42"},
		{"[43]", "Thuế GTGT còn được khấu trừ chuyển kỳ sau", "ct43"},
	},
}

// CITMainForm lists the main 03/TNDN form.
var CITMainForm = Catalog{
	Title:    "Tờ khai 03/TNDN",
	Category: model.CategoryCIT,
	Columns:  []string{"Số tiền"},
	Prefixes: []string{""},
	Items: []Item{
		{"A1", "A1 - Tổng lợi nhuận kế toán trước thuế TNDN", "ctA1"},
		{"B1", "B1 - Các khoản điều chỉnh tăng tổng lợi nhuận trước thuế", "ctB1"},
		{"B2", "B2 - Các khoản chi không được trừ", "ctB2"},
		{"B3", "B3 - Thuế TNDN đã nộp cho phần thu nhập nhận được ở nước ngoài", "ctB3"},
		{"B4", "B4 - Điều chỉnh tăng doanh thu", "ctB4"},
		{"B7", "B7 - Các khoản điều chỉnh làm tăng lợi nhuận trước thuế khác", "ctB7"},
		{"B8", "B8 - Các khoản điều chỉnh giảm tổng lợi nhuận trước thuế", "ctB8"},
		{"B9", "B9 - Giảm trừ các khoản doanh thu đã điều chỉnh tăng", "ctB9"},
		{"B10", "B10 - Chi phí của phần doanh thu điều chỉnh giảm", "ctB10"},
		{"B11", "B11 - Các khoản điều chỉnh làm giảm lợi nhuận trước thuế khác", "ctB11"},
		{"B12", "B12 - Lợi nhuận từ hoạt động BĐS", "ctB12"},
		{"B13", "B13 - Tổng Thu nhập chịu thuế (TNCT)", "ctB13"},
		{"B14", "B14 - TNCT từ hoạt động sản xuất, kinh doanh", "ctB14"},
		{"C1", "C1 - Thu nhập chịu thuế", "ctC1"},
		{"C2", "C2 - Thu nhập chịu thuế từ HĐSXKD", "ctC2"},
		{"C3", "C3 - Thu nhập được miễn thuế", "ctC3"},
		{"C4", "C4 - Chuyển lỗ và bù trừ lãi, lỗ", "ctC4"},
		{"C6", "C6 - Tổng thu nhập tính thuế (TNTT)", "ctC6"},
		{"C7", "C7 - TNTT từ HĐSXKD", "ctC7"},
		{"C8", "C8 - Thuế TNDN từ HĐSXKD theo thuế suất 20%", "ctC8"},
		{"C9", "C9 - Thuế TNDN phải nộp từ HĐSXKD", "ctC9"},
		{"C10", "C10 - Thuế TNDN của hoạt động BĐS phải nộp", "ctC10"},
		{"C11", "C11 - Thuế TNDN đã nộp ở nước ngoài được trừ trong kỳ tính thuế", "ctC11"},
		{"C12", "C12 - Thuế TNDN đã tạm nộp", "ctC12"},
		{"C13", "C13 - Chênh lệch giữa số thuế TNDN phải nộp và đã tạm nộp", "ctC13"},
		{"C14", "C14 - Thuế TNDN còn phải nộp", "ctC14"},
		{"C15", "C15 - Thuế TNDN nộp thừa", "ctC15"},
		{"C16", "C16 - Tổng số thuế TNDN bù trừ cho các nghĩa vụ khác", "ctC16"},
	},
}

// CITAppendix lists appendix 03-1A of the CIT settlement.
var CITAppendix = Catalog{
	Title:    "Phụ lục 03-1A/TNDN",
	Category: model.CategoryCIT,
	Columns:  []string{"Số tiền"},
	Prefixes: []string{""},
	Items: []Item{
		{"[04]", "Tổng doanh thu bán hàng hóa, dịch vụ", "ct04"},
		{"[05]", "Doanh thu bán hàng hóa, dịch vụ xuất khẩu", "ct05"},
		{"[06]", "Các khoản giảm trừ doanh thu", "ct06"},
		{"[08]", "Doanh thu hoạt động tài chính", "ct08"},
		{"[09]", "Chi phí tài chính", "ct09"},
		{"[11]", "Chi phí sản xuất, kinh doanh hàng hóa, dịch vụ", "ct11"},
		{"[12]", "Giá vốn hàng bán", "ct12"},
		{"[13]", "Chi phí bán hàng", "ct13"},
		{"[14]", "Chi phí quản lý doanh nghiệp", "ct14"},
		{"[15]", "Lợi nhuận thuần từ hoạt động kinh doanh", "ct15"},
		{"[16]", "Thu nhập khác", "ct16"},
		{"[17]", "Chi phí khác", "ct17"},
		{"[18]", "Lợi nhuận khác", "ct18"},
		{"[19]", "Lợi nhuận từ HĐSXKD", "ct19"},
		{"[20]", "Lợi nhuận từ hoạt động chuyển nhượng BĐS", "ct20"},
		{"[21]", "Tổng lợi nhuận kế toán trước thuế TNDN", "ct21"},
		{"[22]", "Trích lập quỹ KH&CN (nếu có)", "ct22"},
	},
}

// BalanceSheet lists the balance sheet, closing then opening balance.
var BalanceSheet = Catalog{
	Title:    "Bảng cân đối kế toán",
	Category: model.CategoryFinancialStatements,
	Columns:  []string{"Số cuối năm", "Số đầu năm"},
	Prefixes: []string{"scn_", "sdn_"},
	Items: []Item{
		{"100", "A - TÀI SẢN NGẮN HẠN", "ct100"},
		{"110", "I. Tiền và các khoản tương đương tiền", "ct110"},
		{"120", "II. Đầu tư tài chính ngắn hạn", "ct120"},
		{"130", "III. Các khoản phải thu ngắn hạn", "ct130"},
		{"140", "IV. Hàng tồn kho", "ct140"},
		{"150", "V. Tài sản ngắn hạn khác", "ct150"},
		{"200", "B - TÀI SẢN DÀI HẠN", "ct200"},
		{"210", "I. Các khoản phải thu dài hạn", "ct210"},
		{"220", "II. Tài sản cố định", "ct220"},
		{"230", "III. Bất động sản đầu tư", "ct230"},
		{"240", "IV. Tài sản dở dang dài hạn", "ct240"},
		{"250", "V. Đầu tư tài chính dài hạn", "ct250"},
		{"260", "VI. Tài sản dài hạn khác", "ct260"},
		{"270", "TỔNG CỘNG TÀI SẢN", "ct270"},
		{"300", "C - NỢ PHẢI TRẢ", "ct300"},
		{"310", "I. Nợ ngắn hạn", "ct310"},
		{"330", "II. Nợ dài hạn", "ct330"},
		{"400", "D - VỐN CHỦ SỞ HỮU", "ct400"},
		{"410", "I. Vốn chủ sở hữu", "ct410"},
		{"440", "TỔNG CỘNG NGUỒN VỐN", "ct440"},
	},
}

// IncomeStatement lists the income statement, current then prior year.
var IncomeStatement = Catalog{
	Title:    "Báo cáo kết quả hoạt động kinh doanh",
	Category: model.CategoryFinancialStatements,
	Columns:  []string{"Năm nay", "Năm trước"},
	Prefixes: []string{"kqkd_nn_", "kqkd_nt_"},
	Items: []Item{
		{"01", "1. Doanh thu bán hàng và cung cấp dịch vụ", "ct01"},
		{"02", "2. Các khoản giảm trừ doanh thu", "ct02"},
		{"10", "3. Doanh thu thuần về bán hàng và cung cấp dịch vụ", "ct10"},
		{"11", "4. Giá vốn hàng bán", "ct11"},
		{"20", "5. Lợi nhuận gộp về bán hàng và cung cấp dịch vụ", "ct20"},
		{"21", "6. Doanh thu hoạt động tài chính", "ct21"},
		{"22", "7. Chi phí tài chính", "ct22"},
		{"23", "Trong đó: Chi phí lãi vay", "ct23"},
		{"25", "8. Chi phí bán hàng", "ct25"},
		{"26", "9. Chi phí quản lý doanh nghiệp", "ct26"},
		{"30", "10. Lợi nhuận thuần từ hoạt động kinh doanh", "ct30"},
		{"31", "11. Thu nhập khác", "ct31"},
		{"32", "12. Chi phí khác", "ct32"},
		{"40", "13. Lợi nhuận khác", "ct40"},
		{"50", "14. Tổng lợi nhuận kế toán trước thuế", "ct50"},
		{"51", "15. Chi phí thuế TNDN hiện hành", "ct51"},
		{"52", "16. Chi phí thuế TNDN hoãn lại", "ct52"},
		{"60", "17. Lợi nhuận sau thuế thu nhập doanh nghiệp", "ct60"},
	},
}

// PITSettlementDetail lists the totals of form 05/QTT-TNCN.
var PITSettlementDetail = Catalog{
	Title:    "Tờ khai 05/QTT-TNCN",
	Category: model.CategoryPITSettlement,
	Columns:  []string{"Số liệu"},
	Prefixes: []string{""},
	Items: []Item{
		{"[16]", "Tổng số lao động", "ct16"},
		{"[23]", "Tổng thu nhập chịu thuế trả cho cá nhân", "ct23"},
		{"[31]", "Tổng số thuế TNCN đã khấu trừ", "ct31"},
	},
}

// trialBalanceColumns pairs the six trial-balance columns with their key
// prefixes.
var (
	trialBalanceColumns = []string{
		"Số dư đầu kỳ - Nợ", "Số dư đầu kỳ - Có",
		"Số phát sinh trong kỳ - Nợ", "Số phát sinh trong kỳ - Có",
		"Số dư cuối kỳ - Nợ", "Số dư cuối kỳ - Có",
	}
	trialBalancePrefixes = []string{"sddk_no_", "sddk_co_", "ps_no_", "ps_co_", "sdck_no_", "sdck_co_"}
)

// TrialBalance returns the trial-balance catalog for a chart of accounts.
// Accounts without any movement or balance are left out.
func TrialBalance(chart []model.Account) Catalog {
	c := Catalog{
		Title:    "Bảng cân đối tài khoản",
		Category: model.CategoryFinancialStatements,
		Columns:  trialBalanceColumns,
		Prefixes: trialBalancePrefixes,
		SkipZero: true,
	}
	for _, a := range chart {
		c.Items = append(c.Items, Item{Code: a.Code, Label: a.Name, Key: "ct" + a.Code})
	}
	return c
}
