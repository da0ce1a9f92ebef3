package domain

// ChartEntry is one row of the built-in standard chart of accounts used for
// bulk seeding. ParentCode refers to another entry earlier in the table.
type ChartEntry struct {
	Code       string
	Name       string
	Type       AccountType
	ParentCode string
	Level      int
	IsDetail   bool
}

// StandardChart is the built-in seed chart. The numbering convention drives
// the balance sheet grouping: first digit 1 = current assets, 2 = fixed
// assets, 3 = short-term liabilities, 4 = long-term liabilities, 5 = equity;
// 6 = revenue, 7 = costs and expenses.
var StandardChart = []ChartEntry{
	// Current assets (1xx)
	{Code: "100", Name: "Cash", Type: Asset, Level: LevelGroup},
	{Code: "100.01", Name: "Main Cash Register", Type: Asset, ParentCode: "100", Level: LevelSubgroup, IsDetail: true},
	{Code: "102", Name: "Banks", Type: Asset, Level: LevelGroup},
	{Code: "102.01", Name: "Bank - Checking Account", Type: Asset, ParentCode: "102", Level: LevelSubgroup, IsDetail: true},
	{Code: "120", Name: "Trade Receivables", Type: Asset, Level: LevelGroup},
	{Code: "120.01", Name: "Domestic Customers", Type: Asset, ParentCode: "120", Level: LevelSubgroup, IsDetail: true},
	{Code: "153", Name: "Merchandise Inventory", Type: Asset, Level: LevelGroup, IsDetail: true},
	{Code: "191", Name: "Deductible VAT", Type: Asset, Level: LevelGroup, IsDetail: true},

	// Fixed assets (2xx)
	{Code: "253", Name: "Machinery and Equipment", Type: Asset, Level: LevelGroup, IsDetail: true},
	{Code: "255", Name: "Furniture and Fixtures", Type: Asset, Level: LevelGroup, IsDetail: true},
	{Code: "257", Name: "Accumulated Depreciation", Type: Asset, Level: LevelGroup, IsDetail: true},

	// Short-term liabilities (3xx)
	{Code: "300", Name: "Bank Loans", Type: Liability, Level: LevelGroup, IsDetail: true},
	{Code: "320", Name: "Trade Payables", Type: Liability, Level: LevelGroup},
	{Code: "320.01", Name: "Domestic Suppliers", Type: Liability, ParentCode: "320", Level: LevelSubgroup, IsDetail: true},
	{Code: "360", Name: "Taxes and Duties Payable", Type: Liability, Level: LevelGroup, IsDetail: true},
	{Code: "391", Name: "VAT Payable", Type: Liability, Level: LevelGroup, IsDetail: true},

	// Long-term liabilities (4xx)
	{Code: "400", Name: "Long-Term Bank Loans", Type: Liability, Level: LevelGroup, IsDetail: true},

	// Equity (5xx)
	{Code: "500", Name: "Share Capital", Type: Equity, Level: LevelGroup, IsDetail: true},
	{Code: "570", Name: "Retained Earnings", Type: Equity, Level: LevelGroup, IsDetail: true},
	{Code: "591", Name: "Net Loss for the Period", Type: Equity, Level: LevelGroup, IsDetail: true},

	// Revenue (6xx)
	{Code: "600", Name: "Domestic Sales", Type: Revenue, Level: LevelGroup, IsDetail: true},
	{Code: "602", Name: "Other Revenue", Type: Revenue, Level: LevelGroup, IsDetail: true},
	{Code: "610", Name: "Sales Returns", Type: Revenue, Level: LevelGroup, IsDetail: true},

	// Costs and expenses (7xx)
	{Code: "710", Name: "Direct Material Costs", Type: Cost, Level: LevelGroup, IsDetail: true},
	{Code: "720", Name: "Direct Labor Costs", Type: Cost, Level: LevelGroup, IsDetail: true},
	{Code: "770", Name: "General Administrative Expenses", Type: Expense, Level: LevelGroup, IsDetail: true},
}
