package user

type ApiGroup struct {
	AuthApi    AuthApi
	ProductApi ProductApi
	CartApi    CartApi
	ChatApi    ChatApi
}
