package constants

// レスポンスメッセージ
const (
	MsgWelcome             = "Welcome home"
	MsgAllInputRequired    = "All input is required"
	MsgBadInput            = "Bad input"
	MsgInvalidCredentials  = "Invalid credentials"
	MsgInvalidToken        = "Invalid token"
	MsgUserExists          = "User already exists"
	MsgUserNotFound        = "User not found"
	MsgItemExists          = "Item with this name already exists"
	MsgItemNotFound        = "Item not found"
	MsgDetailNotFound      = "Item detail not found"
	MsgTooManyAttempts     = "Too many failed attempts"
	MsgUnexpectedErrPrefix = "Oops, something went wrong: "
)

// 一覧取得のデフォルト値
const (
	DefaultPageSize = 5
	MaxPageSize     = 100
	DefaultSortBy   = "name"
)

// SortColumns maps the public sort column names to database columns.
var SortColumns = map[string]string{
	"name":      "name",
	"type":      "type",
	"price":     "price",
	"createdAt": "created_at",
}
