package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Orders() OrderRepository
	Items() ItemRepository
	PushTokens() PushTokenRepository
	Documents() DocumentRepository
}
