package constants

const (
	Create         = "CREATE"
	Update         = "UPDATE"
	Delete         = "DELETE"
	Register       = "REGISTER"
	Login          = "LOGIN"
	Borrow         = "BORROW"
	Return         = "RETURN"
	ChangePassword = "CHANGE_PASSWORD"
	ChangePhoto    = "CHANGE_PHOTO"
)
