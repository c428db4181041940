package user

type ServiceGroup struct {
	AuthService    AuthService
	ProductService ProductService
	CartService    CartService
	SearchService  SearchService
	ChatService    ChatService
	HistoryService HistoryService
	Validator      IValidator
}

func NewServiceGroup() ServiceGroup {
	searchService := NewSearchService()
	historyService := NewHistoryService()
	return ServiceGroup{
		AuthService:    NewAuthService(),
		ProductService: NewProductService(),
		CartService:    NewCartService(),
		SearchService:  searchService,
		ChatService:    NewChatService(searchService),
		HistoryService: historyService,
		Validator:      &Validator{},
	}
}
