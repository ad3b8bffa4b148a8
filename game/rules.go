package game

type Rules interface {
	// Pieces is the per-player allotment; board + hand + removed always sums to it
	Pieces() int
	// StalemateLimit is the shared non-capture streak that ends the game in a draw
	StalemateLimit() int
	// FlyingAt is the on-board count at which an empty-handed player may fly
	FlyingAt() int
	// SlideWithHand allows moving board pieces while pieces remain in hand
	SlideWithHand() bool
}
