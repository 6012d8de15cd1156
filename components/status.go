package components

import (
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// StatusData is the simulation singleton. Once Err is set the world is halted.
type StatusData struct {
	Tick uint64
	Err  error
	Log  *zap.Logger
}

func (s *StatusData) Halted() bool {
	return s.Err != nil
}

var Status = donburi.NewComponentType[StatusData]()
