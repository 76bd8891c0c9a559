package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Ledger() LedgerRepository
	Withdrawals() WithdrawalRepository
	RedeemCodes() RedeemCodeRepository
	Tasks() TaskRepository
	Settings() SettingsRepository
}
