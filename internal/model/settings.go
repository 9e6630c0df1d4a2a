package model

// Settings holds the scalar FIRE parameters of a store.
// It is overwritten wholesale on save.
type Settings struct {
	Expense    float64 `json:"expense"`
	Age        int     `json:"age"`
	Savings    float64 `json:"savings"`
	ReturnRate float64 `json:"returnRate"`
}

// Settings keys as stored in the settings table.
const (
	SettingExpense    = "expense"
	SettingAge        = "age"
	SettingSavings    = "savings"
	SettingReturnRate = "return_rate"
)

// DefaultSettings returns the values used when a store has never saved settings.
func DefaultSettings() Settings {
	return Settings{
		Expense:    850000,
		Age:        27,
		Savings:    325000,
		ReturnRate: 11.0,
	}
}
