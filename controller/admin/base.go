package admin

type ApiGroup struct {
	ProductApi  ProductApi
	CategoryApi CategoryApi
	UploadApi   UploadApi
}
