package models

// Entity is implemented by every backend-owned record the console mirrors.
type Entity interface {
	EntityID() int64
	DisplayName() string
}
