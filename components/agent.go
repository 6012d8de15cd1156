package components

import (
	"github.com/google/uuid"
	"github.com/yohamta/donburi"

	"github.com/automoto/burrow/shared/motion"
)

// AgentIDData is the stable handle of an agent. Seq is the spawn order and fixes the
// order in which systems visit agents.
type AgentIDData struct {
	ID  uuid.UUID
	Seq int
}

var AgentID = donburi.NewComponentType[AgentIDData]()

var Agent = donburi.NewComponentType[motion.Agent]()
