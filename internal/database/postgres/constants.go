package postgres

// Error messages
const (
	ErrMsgFailedToInsertAccount      = "failed to insert account"
	ErrMsgFailedToListAccounts       = "failed to list accounts"
	ErrMsgFailedToDeleteAccounts     = "failed to delete accounts"
	ErrMsgFailedToBeginTransaction   = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction  = "failed to commit transaction"
	ErrMsgFailedToUpdateAccount      = "failed to update account"
	ErrMsgFailedToGetAccount         = "failed to get account"
	ErrMsgFailedToMarshalInventory   = "failed to marshal inventory"
	ErrMsgFailedToUnmarshalInventory = "failed to unmarshal inventory"
	ErrMsgFailedToMarshalEquipment   = "failed to marshal equipment"
	ErrMsgFailedToUnmarshalEquipment = "failed to unmarshal equipment"
)
