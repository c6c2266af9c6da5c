package constants

// user_activity.action_type values written by the server.
const (
	ActivityLogin          = "login"
	ActivityLogout         = "logout"
	ActivityUpdateProfile  = "update_profile"
	ActivityUpdatePassword = "update_password"
	ActivityResetPassword  = "reset_password"
	ActivityCreateUser     = "create_user"
	ActivityUpdateUser     = "update_user"
	ActivityDeleteUser     = "delete_user"
)
