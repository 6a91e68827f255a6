package services

// Click transaction states as stored in click_transactions.status.
const (
	TransactionStatePaid         = 1
	TransactionStatePending      = 0
	TransactionStateCanceled     = -1
	TransactionStatePaidCanceled = -2
)

// Click action codes.
const (
	ClickActionPrepare  = 0
	ClickActionComplete = 1
)

const clickProvider = "click"

// ClickErrorInfo describes a Click-compatible error.
type ClickErrorInfo struct {
	Name string
	Code int
	Note string
}

var (
	ClickErrorSuccess = ClickErrorInfo{
		Name: "Success",
		Code: 0,
		Note: "Success",
	}
	ClickErrorSignFailed = ClickErrorInfo{
		Name: "SignFailed",
		Code: -1,
		Note: "Invalid signature",
	}
	ClickErrorInvalidAmount = ClickErrorInfo{
		Name: "InvalidAmount",
		Code: -2,
		Note: "Incorrect parameter amount",
	}
	ClickErrorActionNotFound = ClickErrorInfo{
		Name: "ActionNotFound",
		Code: -3,
		Note: "Action not found",
	}
	ClickErrorAlreadyPaid = ClickErrorInfo{
		Name: "AlreadyPaid",
		Code: -4,
		Note: "Already paid",
	}
	ClickErrorUserNotFound = ClickErrorInfo{
		Name: "UserNotFound",
		Code: -5,
		Note: "User not found",
	}
	ClickErrorTransactionNotFound = ClickErrorInfo{
		Name: "TransactionNotFound",
		Code: -6,
		Note: "Transaction not found",
	}
	ClickErrorBadRequest = ClickErrorInfo{
		Name: "BadRequest",
		Code: -8,
		Note: "Product not found",
	}
	ClickErrorTransactionCanceled = ClickErrorInfo{
		Name: "TransactionCanceled",
		Code: -9,
		Note: "Transaction canceled",
	}
)

// IsCanceled reports whether status is one of the canceled states.
func IsCanceled(status int) bool {
	return status == TransactionStateCanceled || status == TransactionStatePaidCanceled
}
