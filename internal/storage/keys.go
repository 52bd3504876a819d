package storage

const keyPrefix = "wallet_watcher_"

const (
	// UsersKey holds every identity record.
	UsersKey = keyPrefix + "users"
	// SessionKey holds the logged in user, absent when logged out.
	SessionKey = keyPrefix + "user"
)

// Prefixes of the per-user keys; the username is appended.
const (
	TransactionsPrefix = keyPrefix + "transactions_"
	GoalsPrefix        = keyPrefix + "goals_"
	SettingsPrefix     = keyPrefix + "settings_"
)

func TransactionsKey(username string) string { return TransactionsPrefix + username }

func GoalsKey(username string) string { return GoalsPrefix + username }

func MonthlyLimitKey(username string) string {
	return SettingsPrefix + username + "_monthlyLimit"
}

func CustomCategoriesKey(username string) string {
	return SettingsPrefix + username + "_customCategories"
}

// UserKeys lists every per-user key of username, so that renames and account
// deletion treat all collections alike.
func UserKeys(username string) []string {
	return []string{
		TransactionsKey(username),
		GoalsKey(username),
		MonthlyLimitKey(username),
		CustomCategoriesKey(username),
	}
}
