package tags

import "github.com/yohamta/donburi"

var (
	Agent = donburi.NewTag().SetName("Agent")
	Bot   = donburi.NewTag().SetName("Bot")
)

// Resolv tags for the floor index
const (
	ResolvFloor = "floor"
	ResolvProbe = "probe"
)
