package accounts

import "github.com/cleared-dev/taxaudit/internal/model"

// DefaultChart returns the accounts shown in the trial balance, in the
// order of the national chart of accounts.
func DefaultChart() []model.Account {
	return []model.Account{
		{Code: "111", Name: "Tiền mặt", Type: model.AccountTypeAsset},
		{Code: "112", Name: "Tiền gửi ngân hàng", Type: model.AccountTypeAsset},
		{Code: "121", Name: "Chứng khoán kinh doanh", Type: model.AccountTypeAsset},
		{Code: "128", Name: "Đầu tư nắm giữ đến ngày đáo hạn", Type: model.AccountTypeAsset},
		{Code: "131", Name: "Phải thu của khách hàng", Type: model.AccountTypeAsset},
		{Code: "133", Name: "Thuế GTGT được khấu trừ", Type: model.AccountTypeAsset},
		{Code: "141", Name: "Tạm ứng", Type: model.AccountTypeAsset},
		{Code: "152", Name: "Nguyên liệu, vật liệu", Type: model.AccountTypeAsset},
		{Code: "153", Name: "Công cụ, dụng cụ", Type: model.AccountTypeAsset},
		{Code: "154", Name: "Chi phí SX, KD dở dang", Type: model.AccountTypeAsset},
		{Code: "155", Name: "Thành phẩm", Type: model.AccountTypeAsset},
		{Code: "156", Name: "Hàng hóa", Type: model.AccountTypeAsset},
		{Code: "157", Name: "Hàng gửi đi bán", Type: model.AccountTypeAsset},
		{Code: "211", Name: "TSCĐ hữu hình", Type: model.AccountTypeAsset},
		{Code: "214", Name: "Hao mòn TSCĐ", Type: model.AccountTypeAsset},
		{Code: "242", Name: "Chi phí trả trước", Type: model.AccountTypeAsset},
		{Code: "331", Name: "Phải trả cho người bán", Type: model.AccountTypeLiability},
		{Code: "333", Name: "Thuế và các khoản phải nộp NN", Type: model.AccountTypeLiability},
		{Code: "334", Name: "Phải trả người lao động", Type: model.AccountTypeLiability},
		{Code: "338", Name: "Phải trả, phải nộp khác", Type: model.AccountTypeLiability},
		{Code: "341", Name: "Vay và nợ thuê tài chính", Type: model.AccountTypeLiability},
		{Code: "411", Name: "Vốn đầu tư của chủ sở hữu", Type: model.AccountTypeEquity},
		{Code: "421", Name: "Lợi nhuận sau thuế chưa phân phối", Type: model.AccountTypeEquity},
		{Code: "511", Name: "Doanh thu bán hàng và CCDV", Type: model.AccountTypeRevenue},
		{Code: "632", Name: "Giá vốn hàng bán", Type: model.AccountTypeExpense},
		{Code: "641", Name: "Chi phí bán hàng", Type: model.AccountTypeExpense},
		{Code: "642", Name: "Chi phí quản lý doanh nghiệp", Type: model.AccountTypeExpense},
		{Code: "711", Name: "Thu nhập khác", Type: model.AccountTypeRevenue},
		{Code: "811", Name: "Chi phí khác", Type: model.AccountTypeExpense},
		{Code: "911", Name: "Xác định kết quả kinh doanh", Type: model.AccountTypeClosing},
	}
}
